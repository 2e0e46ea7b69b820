package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/doeshing/serpkit-go/internal/domain"
	"github.com/doeshing/serpkit-go/internal/ports"
)

// KeywordResult pairs one root keyword with its traversal outcome.
type KeywordResult struct {
	Keyword string
	Result  domain.ExpandResult
	Err     error
}

// BatchResult aggregates a multi-keyword run. Results preserve the
// input order regardless of completion order.
type BatchResult struct {
	Results []KeywordResult
	Failed  int
}

// Runner expands a batch of root keywords with bounded concurrency.
// One keyword failing never aborts the others; the per-keyword error
// is recorded and the batch continues.
type Runner struct {
	Expander    domain.Expander
	Concurrency int
	Logger      ports.Logger
}

// Run processes every keyword and returns when all are done or the
// context is cancelled. Cancellation is cooperative: in-flight
// traversals finish with partial results, queued keywords report the
// context error.
func (r *Runner) Run(ctx context.Context, keywords []string, locale domain.Locale, limits domain.TraversalLimits) (BatchResult, error) {
	if r.Expander == nil {
		return BatchResult{}, errors.New("services.Runner: Expander not set")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	concurrency := r.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]KeywordResult, len(keywords))

	var group errgroup.Group
	group.SetLimit(concurrency)
	for i, keyword := range keywords {
		i, keyword := i, keyword
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = KeywordResult{Keyword: keyword, Err: err}
				return nil
			}
			result, err := r.Expander.Expand(ctx, domain.ExpandRequest{
				RootKeyword: keyword,
				Locale:      locale,
				Limits:      limits,
			})
			results[i] = KeywordResult{Keyword: keyword, Result: result, Err: err}
			if err != nil && r.Logger != nil {
				r.Logger.Error("keyword expansion failed", err, map[string]interface{}{
					"keyword": keyword,
				})
			}
			return nil
		})
	}
	// Goroutines never return errors; Wait only synchronizes.
	_ = group.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	return BatchResult{Results: results, Failed: failed}, nil
}
