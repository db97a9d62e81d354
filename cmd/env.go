package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/db"
	"github.com/sells-group/finpsych/internal/store"
)

// loadCalibration loads the tables named by override, falling back to the
// configured overlay and then to the built-in defaults.
func loadCalibration(override string) (*calibration.Tables, error) {
	path := override
	if path == "" {
		path = cfg.Scoring.CalibrationFile
	}
	t, err := calibration.Load(path)
	if err != nil {
		return nil, eris.Wrap(err, "load calibration")
	}
	zap.L().Debug("calibration loaded",
		zap.String("path", path),
		zap.String("model_version", t.ModelVersion),
		zap.String("calibration_hash", t.Hash()),
	)
	return t, nil
}

// initStore opens and migrates the configured store.
func initStore(ctx context.Context) (store.Store, error) {
	if err := cfg.Validate("store"); err != nil {
		return nil, err
	}

	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, &db.PoolConfig{MaxConns: cfg.Store.MaxConns})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}

	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

// countryFor resolves the country for a submission: explicit flag, then the
// submission's own value, then the configured default.
func countryFor(flag, submitted string) string {
	switch {
	case flag != "":
		return flag
	case submitted != "":
		return submitted
	default:
		return cfg.Scoring.DefaultCountry
	}
}
