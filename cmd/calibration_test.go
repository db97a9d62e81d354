package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/finpsych/internal/calibration"
)

func setCalibrationShowOpts(t *testing.T, file string, asYAML bool) {
	t.Helper()
	old := calibrationShowOpts
	calibrationShowOpts.file = file
	calibrationShowOpts.yaml = asYAML
	t.Cleanup(func() { calibrationShowOpts = old })
}

func TestCalibrationShow(t *testing.T) {
	useTestConfig(t)
	setCalibrationShowOpts(t, "", false)
	out := captureOutput(t, calibrationShowCmd)

	require.NoError(t, calibrationShowCmd.RunE(calibrationShowCmd, nil))

	def := calibration.Default()
	assert.Contains(t, out.String(), "model_version:    "+def.ModelVersion)
	assert.Contains(t, out.String(), "calibration_hash: "+def.Hash())
}

func TestCalibrationShow_YAMLRoundTrips(t *testing.T) {
	useTestConfig(t)
	setCalibrationShowOpts(t, "", true)
	out := captureOutput(t, calibrationShowCmd)

	require.NoError(t, calibrationShowCmd.RunE(calibrationShowCmd, nil))

	parsed, err := calibration.Parse(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, calibration.Default().Hash(), parsed.Hash())
}

func TestCalibrationValidate(t *testing.T) {
	useTestConfig(t)

	t.Run("valid overlay", func(t *testing.T) {
		path := writeTemp(t, "cal.yaml", "model_version: v9-test\n")
		out := captureOutput(t, calibrationValidateCmd)

		require.NoError(t, calibrationValidateCmd.RunE(calibrationValidateCmd, []string{path}))
		assert.Contains(t, out.String(), "ok (model_version v9-test")
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := writeTemp(t, "cal.yaml", "category_weights: [")
		captureOutput(t, calibrationValidateCmd)

		err := calibrationValidateCmd.RunE(calibrationValidateCmd, []string{path})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "calibration: decode yaml")
	})

	t.Run("missing file", func(t *testing.T) {
		captureOutput(t, calibrationValidateCmd)
		err := calibrationValidateCmd.RunE(calibrationValidateCmd, []string{"/nonexistent/cal.yaml"})
		require.Error(t, err)
	})
}
