package runner

import (
	"context"

	"golang.org/x/sync/errgroup"

	"digital.vasic.typeassert/pkg/suite"
)

// RunParallel executes suites concurrently, at most the configured
// concurrency at a time. Dependencies are not consulted. Results
// keep the order of defs; suites that never started are left out.
// An interrupted suite cancels the remaining ones.
func (r *Runner) RunParallel(ctx context.Context, defs []*suite.Definition) ([]*suite.Result, error) {
	r.metrics.IncrementRunTotal()
	limit := r.concurrency
	if limit <= 0 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	ordered := make([]*suite.Result, len(defs))
	for i, def := range defs {
		if gctx.Err() != nil {
			break
		}
		i, def := i, def
		g.Go(func() error {
			res, err := r.execute(gctx, def)
			ordered[i] = res
			return err
		})
	}
	err := g.Wait()

	results := make([]*suite.Result, 0, len(defs))
	for _, res := range ordered {
		if res != nil {
			results = append(results, res)
		}
	}
	if err == nil && len(results) < len(defs) {
		err = ctx.Err()
	}
	return results, err
}
