package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finpsych/internal/config"
)

// useTestConfig points cfg at a fresh SQLite file for the duration of t.
func useTestConfig(t *testing.T) *config.Config {
	t.Helper()
	old := cfg
	cfg = &config.Config{
		Store: config.StoreConfig{
			Driver:      "sqlite",
			DatabaseURL: filepath.Join(t.TempDir(), "finpsych.db"),
			MaxConns:    2,
		},
		Scoring: config.ScoringConfig{DefaultCountry: "Other"},
		Batch:   config.BatchConfig{Concurrency: 2},
		Log:     config.LogConfig{Level: "info", Format: "json"},
	}
	t.Cleanup(func() { cfg = old })
	return cfg
}

// writeTemp writes content to a file in a temp dir and returns its path.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// captureOutput wires a buffer to cmd's stdout and a background context.
func captureOutput(t *testing.T, cmd *cobra.Command) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetContext(context.Background())
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetIn(nil)
		cmd.SetContext(context.TODO())
	})
	return &buf
}

const workedExample = `{"id": "sub-1", "country": "Other", "responses": {"q1": "Always", "q2": "Always", "q3": "Always", "q4": "Always"}}`
