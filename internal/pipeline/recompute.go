package pipeline

import (
	"context"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/finpsych/internal/model"
	"github.com/sells-group/finpsych/internal/scorer"
)

// SaveFunc persists a freshly computed assessment.
type SaveFunc func(ctx context.Context, a *model.Assessment) error

// RecomputeStats counts the outcome of a recompute batch.
type RecomputeStats struct {
	Succeeded int64 `json:"succeeded"`
	Faulted   int64 `json:"faulted"`
	Failed    int64 `json:"failed"`
}

// Total is the number of submissions processed.
func (s RecomputeStats) Total() int64 { return s.Succeeded + s.Faulted + s.Failed }

// Recompute re-feeds stored submissions through the current engine with at
// most concurrency in flight. Individual scoring faults and save errors are
// counted and logged; they never abort the batch. Only context
// cancellation stops it early.
func (a *Assessor) Recompute(ctx context.Context, subs []model.Submission, concurrency int, save SaveFunc) (RecomputeStats, error) {
	if len(subs) == 0 {
		zap.L().Info("no submissions to recompute")
		return RecomputeStats{}, nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	zap.L().Info("recomputing submissions",
		zap.Int("submissions", len(subs)),
		zap.Int("concurrency", concurrency),
		zap.String("model_version", a.engine.Tables().ModelVersion),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, faulted, failed atomic.Int64

	for _, sub := range subs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			log := zap.L().With(zap.String("submission_id", sub.ID))

			assessment, err := a.Assess(sub)
			if err != nil {
				if eris.Is(err, scorer.ErrLCAOverflow) {
					faulted.Add(1)
				} else {
					failed.Add(1)
				}
				log.Error("recompute failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			if err := save(gctx, assessment); err != nil {
				failed.Add(1)
				log.Error("save assessment failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			return nil
		})
	}

	err := g.Wait()
	stats := RecomputeStats{
		Succeeded: succeeded.Load(),
		Faulted:   faulted.Load(),
		Failed:    failed.Load(),
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return stats, eris.Wrap(err, "pipeline: recompute")
	}

	zap.L().Info("recompute complete",
		zap.Int64("succeeded", stats.Succeeded),
		zap.Int64("faulted", stats.Faulted),
		zap.Int64("failed", stats.Failed),
	)
	return stats, nil
}
