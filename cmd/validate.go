package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/consistency"
	"github.com/sells-group/finpsych/internal/model"
	"github.com/sells-group/finpsych/internal/quality"
)

var validateOpts struct {
	responses   string
	calibration string
	format      string
}

// validationReport is the JSON shape of one validate result.
type validationReport struct {
	SubmissionID string                  `json:"submission_id,omitempty"`
	Validation   *model.ValidationResult `json:"validation"`
	GamingRisk   model.GamingRiskLevel   `json:"gaming_risk"`
	Badge        model.QualityBadge      `json:"badge"`
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run consistency checks without scoring",
	Long: `Run the consistency battery against one or more submissions and report
the flags raised, the consistency score, the gaming risk level and the
quality badge. No creditworthiness score is computed.`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVar(&validateOpts.responses, "responses", "", `path to a JSON submission file ("-" for stdin)`)
	f.StringVar(&validateOpts.calibration, "calibration", "", "calibration YAML overlay (overrides config)")
	f.StringVar(&validateOpts.format, "format", "table", "output format: table or json")
	_ = validateCmd.MarkFlagRequired("responses")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := checkFormat(validateOpts.format); err != nil {
		return eris.Wrap(err, "validate")
	}

	tables, err := loadCalibration(validateOpts.calibration)
	if err != nil {
		return err
	}
	subs, err := readSubmissions(validateOpts.responses, cmd.InOrStdin())
	if err != nil {
		return eris.Wrap(err, "validate")
	}

	validator := consistency.NewValidator(tables)
	w := cmd.OutOrStdout()
	reports := make([]validationReport, 0, len(subs))
	for _, sub := range subs {
		v := validator.Validate(sub.Responses)
		level, badge := quality.ForValidation(v)

		if validateOpts.format == "json" {
			reports = append(reports, validationReport{
				SubmissionID: sub.ID,
				Validation:   v,
				GamingRisk:   level,
				Badge:        badge,
			})
			continue
		}
		if sub.ID != "" {
			if _, err := w.Write([]byte("Submission:   " + sub.ID + "\n")); err != nil {
				return eris.Wrap(err, "validate: write")
			}
		}
		if err := writeValidationTable(w, v, level, badge); err != nil {
			return err
		}
	}

	zap.L().Info("validated submissions", zap.Int("count", len(subs)))

	if validateOpts.format != "json" {
		return nil
	}
	if len(reports) == 1 {
		return writeJSON(w, reports[0])
	}
	return writeJSON(w, reports)
}
