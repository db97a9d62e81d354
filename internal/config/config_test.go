package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) }) //nolint:errcheck
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "finpsych.db", cfg.Store.DatabaseURL)
	assert.Equal(t, int32(10), cfg.Store.MaxConns)
	assert.Equal(t, "", cfg.Scoring.CalibrationFile)
	assert.Equal(t, "Other", cfg.Scoring.DefaultCountry)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	assert.Equal(t, 3, cfg.Batch.SaveAttempts)
	assert.Equal(t, 100, cfg.Batch.SaveBackoffMs)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "", cfg.Log.File.Path)
	assert.Equal(t, 100, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, 5, cfg.Log.File.MaxBackups)
	assert.Equal(t, 30, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
	assert.NoError(t, cfg.Validate("store"))
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: postgres
  database_url: postgres://localhost/finpsych
log:
  level: debug
  format: console
  file:
    path: /tmp/finpsych.log
scoring:
  calibration_file: calibration.yaml
  default_country: Kenya
batch:
  concurrency: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/finpsych", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/tmp/finpsych.log", cfg.Log.File.Path)
	assert.Equal(t, "calibration.yaml", cfg.Scoring.CalibrationFile)
	assert.Equal(t, "Kenya", cfg.Scoring.DefaultCountry)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	// Defaults still apply for unset values
	assert.Equal(t, 5, cfg.Log.File.MaxBackups)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("FINPSYCH_STORE_DRIVER", "postgres")
	t.Setenv("FINPSYCH_LOG_LEVEL", "warn")
	t.Setenv("FINPSYCH_BATCH_CONCURRENCY", "3")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Batch.Concurrency)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [unterminated"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

func TestInitLoggerRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "finpsych.log")
	err := InitLogger(LogConfig{
		Level:  "info",
		Format: "json",
		File:   LogFileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1},
	})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	zap.L().Info("scored submission", zap.String("submission_id", "abc"))
	_ = zap.L().Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"submission_id":"abc"`)
	assert.Contains(t, string(data), "scored submission")
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Log.Level = "info"
	cfg.Scoring.DefaultCountry = "Other"
	cfg.Batch.Concurrency = 8
	cfg.Store.Driver = "sqlite"
	cfg.Store.DatabaseURL = "finpsych.db"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{"defaults score", "score", func(c *Config) {}, nil},
		{"defaults store", "store", func(c *Config) {}, nil},
		{"bad level", "score", func(c *Config) { c.Log.Level = "loud" }, []string{"log.level is invalid"}},
		{"no country", "score", func(c *Config) { c.Scoring.DefaultCountry = " " }, []string{"scoring.default_country is required"}},
		{"zero concurrency", "score", func(c *Config) { c.Batch.Concurrency = 0 }, []string{"batch.concurrency must be positive"}},
		{"store ignored for score", "score", func(c *Config) { c.Store.Driver = "mysql" }, nil},
		{"bad driver", "store", func(c *Config) { c.Store.Driver = "mysql" }, []string{"store.driver must be sqlite or postgres"}},
		{"no url", "store", func(c *Config) { c.Store.DatabaseURL = "" }, []string{"store.database_url is required"}},
		{"accumulates", "store", func(c *Config) {
			c.Store.DatabaseURL = ""
			c.Batch.Concurrency = -1
		}, []string{"store.database_url is required", "batch.concurrency must be positive"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate(tt.mode)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
