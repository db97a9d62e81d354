package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func setValidateOpts(t *testing.T, responses, format string) {
	t.Helper()
	old := validateOpts
	validateOpts.responses = responses
	validateOpts.format = format
	validateOpts.calibration = ""
	t.Cleanup(func() { validateOpts = old })
}

func TestValidateCmd_JSON(t *testing.T) {
	useTestConfig(t)
	setValidateOpts(t, writeTemp(t, "sub.json", workedExample), "json")
	out := captureOutput(t, validateCmd)

	require.NoError(t, validateCmd.RunE(validateCmd, nil))

	res := gjson.Parse(out.String())
	assert.Equal(t, "sub-1", res.Get("submission_id").String())
	assert.Equal(t, int64(16), res.Get("validation.total_checks").Int())
	assert.Equal(t, int64(93), res.Get("validation.consistency_score").Int())
	assert.Equal(t, "MINOR", res.Get("validation.severity_level").String())
	assert.Equal(t, "PROCEED", res.Get("validation.recommendation").String())
	assert.False(t, res.Get("scoring").Exists(), "validate never scores")
}

func TestValidateCmd_EmptySubmissionIsClean(t *testing.T) {
	useTestConfig(t)
	setValidateOpts(t, writeTemp(t, "sub.json", `{}`), "json")
	out := captureOutput(t, validateCmd)

	require.NoError(t, validateCmd.RunE(validateCmd, nil))

	res := gjson.Parse(out.String())
	assert.Equal(t, int64(0), res.Get("validation.flag_count").Int())
	assert.True(t, res.Get("validation.flags").IsArray())
	assert.Equal(t, "MINIMAL", res.Get("gaming_risk").String())
	assert.Equal(t, "EXCELLENT", res.Get("badge.label").String())
}

func TestValidateCmd_Table(t *testing.T) {
	useTestConfig(t)
	setValidateOpts(t, writeTemp(t, "sub.json", workedExample), "table")
	out := captureOutput(t, validateCmd)

	require.NoError(t, validateCmd.RunE(validateCmd, nil))

	text := out.String()
	assert.Contains(t, text, "Submission:   sub-1")
	assert.Contains(t, text, "93/100, 1 of 16 checks flagged, MINOR -> PROCEED")
	assert.Contains(t, text, "C02")
	assert.NotContains(t, text, "Risk band")
}
