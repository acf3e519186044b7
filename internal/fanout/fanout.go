// seolens-mcp: MCP scoring server for SEO and AI-visibility audits
// SPDX-License-Identifier: MIT
//
// Parallel fanout for scoring independent audit components.

package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Fanout runs fn concurrently over inputs and returns results in same order.
func Fanout[In, Out any](ctx context.Context, inputs []In, fn func(context.Context, In) (Out, error)) ([]Out, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]Out, len(inputs))
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			r, err := fn(ctx, in)
			if err != nil {
				var zero Out
				results[i] = zero
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
