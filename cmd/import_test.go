package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finpsych/internal/store"
)

func runImport(t *testing.T, path string) error {
	t.Helper()
	old := importFile
	importFile = path
	t.Cleanup(func() { importFile = old })
	captureOutput(t, importCmd)
	return importCmd.RunE(importCmd, nil)
}

func TestImportCmd_Metadata(t *testing.T) {
	assert.Equal(t, "import", importCmd.Use)
	assert.NotEmpty(t, importCmd.Short)
	require.NotNil(t, importCmd.Flags().Lookup("file"))
}

func TestImportCmd_BadPath(t *testing.T) {
	useTestConfig(t)
	err := runImport(t, "/nonexistent/path/to/subs.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import: read")
}

func TestImportCmd_InvalidDriver(t *testing.T) {
	c := useTestConfig(t)
	c.Store.Driver = "mysql"

	err := runImport(t, writeTemp(t, "subs.json", importBatch))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver must be sqlite or postgres")
}

func TestImportCmd_Idempotent(t *testing.T) {
	c := useTestConfig(t)
	path := writeTemp(t, "subs.json", importBatch)

	require.NoError(t, runImport(t, path))
	require.NoError(t, runImport(t, path))

	st, err := store.NewSQLite(c.Store.DatabaseURL)
	require.NoError(t, err)
	defer st.Close() //nolint:errcheck

	subs, err := st.ListSubmissions(context.Background(), store.SubmissionFilter{})
	require.NoError(t, err)
	assert.Len(t, subs, 3)
}
