package score

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"handspan/internal/configuration"
	"handspan/internal/music"
	"handspan/internal/score/rule"
)

// EvaluateBatch scores many candidate assignments for the same piece and
// hand in parallel. Each worker owns its own evaluator, so the per-evaluator
// cache never crosses goroutines. Results are returned in candidate order.
func EvaluateBatch(ctx context.Context, config *configuration.Config, rules []rule.Rule,
	piece *music.Piece, hand music.Hand, candidates [][]music.Fingering) ([]float64, error) {
	scores := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return scores, nil
	}

	jobs := make(chan int)

	g, ctx := errgroup.WithContext(ctx)
	workers := runtime.NumCPU()
	if workers > len(candidates) {
		workers = len(candidates)
	}

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			evaluator := NewEvaluatorWithRules(config, rules)
			for i := range jobs {
				scores[i] = evaluator.Evaluate(piece, candidates[i], hand)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := range candidates {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}
