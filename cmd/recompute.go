package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/finpsych/internal/model"
	"github.com/sells-group/finpsych/internal/pipeline"
	"github.com/sells-group/finpsych/internal/resilience"
	"github.com/sells-group/finpsych/internal/store"
)

// recomputePageSize is the number of submissions fetched per store query.
const recomputePageSize = 500

var recomputeOpts struct {
	country     string
	limit       int
	concurrency int
	calibration string
}

var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Re-score stored submissions with the current calibration",
	Long: `Re-score every stored submission (optionally filtered by country) with
the current calibration and save a new assessment for each. Earlier
assessments are kept, so results from different model versions can be
compared. Individual failures are logged and counted; they do not stop the
batch.`,
	RunE: runRecompute,
}

func init() {
	f := recomputeCmd.Flags()
	f.StringVar(&recomputeOpts.country, "country", "", "only recompute submissions from this country")
	f.IntVar(&recomputeOpts.limit, "limit", 0, "maximum number of submissions (0 = all)")
	f.IntVar(&recomputeOpts.concurrency, "concurrency", 0, "parallel workers (default: batch.concurrency)")
	f.StringVar(&recomputeOpts.calibration, "calibration", "", "calibration YAML overlay (overrides config)")

	rootCmd.AddCommand(recomputeCmd)
}

func runRecompute(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("store"); err != nil {
		return err
	}

	tables, err := loadCalibration(recomputeOpts.calibration)
	if err != nil {
		return err
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	subs, err := collectSubmissions(ctx, st, recomputeOpts.country, recomputeOpts.limit)
	if err != nil {
		return err
	}

	concurrency := recomputeOpts.concurrency
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}

	retry := resilience.FromConfig(cfg.Batch.SaveAttempts, cfg.Batch.SaveBackoffMs)
	retry.OnRetry = resilience.RetryLogger("save_assessment")

	assessor := pipeline.NewAssessor(tables)
	stats, err := assessor.Recompute(ctx, subs, concurrency, func(ctx context.Context, a *model.Assessment) error {
		return resilience.Do(ctx, retry, func(ctx context.Context) error {
			_, err := st.SaveAssessment(ctx, a)
			return err
		})
	})
	if err != nil {
		return err
	}

	zap.L().Info("recompute complete",
		zap.String("model_version", tables.ModelVersion),
		zap.Int64("succeeded", stats.Succeeded),
		zap.Int64("faulted", stats.Faulted),
		zap.Int64("failed", stats.Failed),
	)
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "recomputed %d submissions: %d succeeded, %d faulted, %d failed\n",
		stats.Total(), stats.Succeeded, stats.Faulted, stats.Failed)
	return eris.Wrap(err, "recompute: write summary")
}

// collectSubmissions pages through the store until it runs dry or limit is
// reached. A limit of zero means no limit.
func collectSubmissions(ctx context.Context, st store.Store, country string, limit int) ([]model.Submission, error) {
	var out []model.Submission
	for offset := 0; ; offset += recomputePageSize {
		size := recomputePageSize
		if limit > 0 && limit-len(out) < size {
			size = limit - len(out)
		}
		if size <= 0 {
			return out, nil
		}

		page, err := st.ListSubmissions(ctx, store.SubmissionFilter{
			Country: country,
			Limit:   size,
			Offset:  offset,
		})
		if err != nil {
			return nil, eris.Wrap(err, "recompute: list submissions")
		}
		out = append(out, page...)
		if len(page) < size {
			return out, nil
		}
	}
}
