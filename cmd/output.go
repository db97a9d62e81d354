package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/finpsych/internal/model"
)

// openOutput returns the file at path, or w when path is empty. The returned
// close function is always safe to call.
func openOutput(path string, w io.Writer) (io.Writer, func() error, error) {
	if path == "" {
		return w, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return f, f.Close, nil
}

func checkFormat(format string) error {
	if format != "table" && format != "json" {
		return eris.Errorf("--format must be table or json (got %q)", format)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "write json")
}

func writeAssessmentTable(w io.Writer, a *model.Assessment) error {
	var b strings.Builder
	s := a.Scoring

	if a.SubmissionID != "" {
		fmt.Fprintf(&b, "Submission:   %s\n", a.SubmissionID)
	}
	if s == nil {
		fmt.Fprintf(&b, "Scoring:      halted (%s)\n", a.Fault)
		writeValidation(&b, a.Validation)
		fmt.Fprintf(&b, "Gaming risk:  %s\n", a.GamingRisk)
		fmt.Fprintf(&b, "Quality:      %s (%s)\n", a.Badge.Label, a.Badge.Color)
		_, err := io.WriteString(w, b.String())
		return eris.Wrap(err, "write table")
	}
	fmt.Fprintf(&b, "Country:      %s (calibration %s)\n", s.Country, s.CalibrationCountry)
	fmt.Fprintf(&b, "Model:        %s [%s]\n", s.ModelVersion, s.CalibrationHash)
	fmt.Fprintf(&b, "CWI:          %s / 100\n", formatOptional(s.CWI0100))
	fmt.Fprintf(&b, "CWI raw:      %s\n", formatOptional(s.CWIRaw))
	fmt.Fprintf(&b, "Percentile:   %s\n", formatPercent(s.RiskPercentile))
	fmt.Fprintf(&b, "Risk band:    %s\n", s.RiskBand)
	fmt.Fprintf(&b, "NCI:          %s\n", formatOptional(s.NCI))

	b.WriteString("\n5Cs:\n")
	for _, c := range model.Categories {
		fmt.Fprintf(&b, "  %-12s %s\n", c, formatOptional(s.FiveCScores.Get(c)))
	}

	writeValidation(&b, a.Validation)
	fmt.Fprintf(&b, "Gaming risk:  %s\n", a.GamingRisk)
	fmt.Fprintf(&b, "Quality:      %s (%s)\n", a.Badge.Label, a.Badge.Color)

	_, err := io.WriteString(w, b.String())
	return eris.Wrap(err, "write table")
}

func writeValidationTable(w io.Writer, v *model.ValidationResult, level model.GamingRiskLevel, badge model.QualityBadge) error {
	var b strings.Builder
	writeValidation(&b, v)
	fmt.Fprintf(&b, "Gaming risk:  %s\n", level)
	fmt.Fprintf(&b, "Quality:      %s (%s)\n", badge.Label, badge.Color)
	_, err := io.WriteString(w, b.String())
	return eris.Wrap(err, "write table")
}

func writeValidation(b *strings.Builder, v *model.ValidationResult) {
	if v == nil {
		return
	}
	fmt.Fprintf(b, "\nConsistency:  %d/100, %d of %d checks flagged, %s -> %s\n",
		v.ConsistencyScore, v.FlagCount, v.TotalChecks, v.SeverityLevel, v.Recommendation)
	for _, f := range v.Flags {
		fmt.Fprintf(b, "  %-4s %-7s %-34s %s\n", f.CheckID, f.Severity, f.Name, strings.Join(f.Questions, ","))
	}
}

func formatOptional(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", *v)
}

func formatPercent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
