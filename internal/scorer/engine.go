package scorer

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/calibration"
	"github.com/sells-group/finpsych/internal/model"
)

// Engine runs the scoring pipeline against one calibration set. It holds no
// mutable state, so one Engine can score many submissions concurrently.
type Engine struct {
	tables *calibration.Tables
	hash   string
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for ScoredAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine for the given tables. The tables must not be
// modified afterwards.
func NewEngine(tables *calibration.Tables, opts ...Option) *Engine {
	e := &Engine{
		tables: tables,
		hash:   tables.Hash(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tables returns the calibration set the engine scores against.
func (e *Engine) Tables() *calibration.Tables { return e.tables }

// Score runs stages 1-8 for one submission. The only error is
// ErrLCAOverflow; malformed individual answers degrade to defaults.
func (e *Engine) Score(responses model.Responses, country string) (*model.ScoringResult, error) {
	t := e.tables

	constructs, err := Aggregate(t, responses)
	if err != nil {
		return nil, err
	}

	bucket, _ := t.CountryNorm(country)
	res := &model.ScoringResult{
		ConstructScores:    constructs,
		ConstructZScores:   Standardize(t, constructs),
		FiveCScores:        FiveCs(t, constructs),
		RiskBand:           model.RiskBandUnknown,
		NCI:                NCI(constructs),
		ModelVersion:       t.ModelVersion,
		CalibrationHash:    e.hash,
		Country:            country,
		CalibrationCountry: bucket,
		ScoredAt:           e.now().UTC(),
	}

	res.CWIRaw = CWIRaw(t, res.FiveCScores)
	if res.CWIRaw == nil {
		zap.L().Debug("scorer: no category data, cwi left null",
			zap.Int("responses", len(responses)),
			zap.Int("constructs", len(constructs)),
		)
		return res, nil
	}

	cs := NormalizeCountry(t, *res.CWIRaw, country)
	percentile := NormalCDF(cs.Z)
	res.CWINormalized = model.Float(cs.Z)
	res.CWI0100 = model.Float(cs.Score0100)
	res.RiskPercentile = model.Float(percentile)
	res.RiskBand = RiskBandFor(t, percentile)

	zap.L().Debug("scorer: scored submission",
		zap.String("country", bucket),
		zap.Float64("cwi_raw", *res.CWIRaw),
		zap.Float64("cwi_0_100", cs.Score0100),
		zap.String("risk_band", string(res.RiskBand)),
	)
	return res, nil
}
