package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/model"
	"github.com/sells-group/finpsych/internal/pipeline"
)

var scoreOpts struct {
	responses   string
	country     string
	calibration string
	format      string
	output      string
	save        bool
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score questionnaire submissions",
	Long: `Score one or more questionnaire submissions and check them for
inconsistent answers.

The input file holds a single submission or an array of them. Each entry is
either {"id": ..., "country": ..., "responses": {...}} or a bare map of
question id to answer.

Examples:
  # Score a submission for Kenya
  finpsych score --responses answers.json --country Kenya

  # Score a batch with a calibration overlay and save the results
  finpsych score --responses batch.json --calibration cal.yaml --save

  # Read from stdin, write JSON
  cat answers.json | finpsych score --responses - --format json`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreOpts.responses, "responses", "", `path to a JSON submission file ("-" for stdin)`)
	f.StringVar(&scoreOpts.country, "country", "", "country used for normalization (overrides the file)")
	f.StringVar(&scoreOpts.calibration, "calibration", "", "calibration YAML overlay (overrides config)")
	f.StringVar(&scoreOpts.format, "format", "table", "output format: table or json")
	f.StringVar(&scoreOpts.output, "output", "", "output file path (default: stdout)")
	f.BoolVar(&scoreOpts.save, "save", false, "store submissions and assessments")
	_ = scoreCmd.MarkFlagRequired("responses")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}
	if err := checkFormat(scoreOpts.format); err != nil {
		return eris.Wrap(err, "score")
	}

	log := zap.L().With(zap.String("command", "score"))

	tables, err := loadCalibration(scoreOpts.calibration)
	if err != nil {
		return err
	}
	subs, err := readSubmissions(scoreOpts.responses, cmd.InOrStdin())
	if err != nil {
		return eris.Wrap(err, "score")
	}

	assessor := pipeline.NewAssessor(tables)
	assessments := make([]*model.Assessment, 0, len(subs))
	faulted := 0
	for i := range subs {
		subs[i].Country = countryFor(scoreOpts.country, subs[i].Country)
		if scoreOpts.save && subs[i].ID == "" {
			subs[i].ID = uuid.New().String()
		}
		a, err := assessor.Assess(subs[i])
		if err != nil {
			faulted++
			log.Warn("scoring halted for submission",
				zap.Int("index", i),
				zap.String("submission_id", subs[i].ID),
				zap.Error(err),
			)
			a = assessor.Faulted(subs[i], err)
		}
		assessments = append(assessments, a)
	}

	log.Info("scored submissions",
		zap.Int("count", len(assessments)),
		zap.Int("faulted", faulted),
		zap.String("model_version", tables.ModelVersion),
	)

	if scoreOpts.save {
		if err := saveAssessments(ctx, subs, assessments); err != nil {
			return err
		}
	}

	w, closeOut, err := openOutput(scoreOpts.output, cmd.OutOrStdout())
	if err != nil {
		return eris.Wrap(err, "score")
	}
	defer closeOut() //nolint:errcheck

	if scoreOpts.format == "json" {
		if len(assessments) == 1 {
			return writeJSON(w, assessments[0])
		}
		return writeJSON(w, assessments)
	}
	for _, a := range assessments {
		if err := writeAssessmentTable(w, a); err != nil {
			return err
		}
	}
	return nil
}

// saveAssessments upserts the submissions, then stores one assessment each.
func saveAssessments(ctx context.Context, subs []model.Submission, assessments []*model.Assessment) error {
	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	n, err := st.ImportSubmissions(ctx, subs)
	if err != nil {
		return eris.Wrap(err, "score: save submissions")
	}
	saved := 0
	for _, a := range assessments {
		if a.Scoring == nil {
			continue
		}
		saved++
		if _, err := st.SaveAssessment(ctx, a); err != nil {
			return eris.Wrapf(err, "score: save assessment for %s", a.SubmissionID)
		}
	}

	zap.L().Info("saved assessments",
		zap.Int64("submissions", n),
		zap.Int("assessments", saved),
		zap.String("driver", cfg.Store.Driver),
	)
	return nil
}
