package pipeline

import (
	"context"

	"github.com/fwojciec/novelsrc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources searched at once.
const DefaultConcurrency = 4

// SearchResult is the outcome of a search on one source.
type SearchResult struct {
	SourceID string
	Page     *novelsrc.MangaPage
	Err      error
}

// SearchAll runs query against the first result page of every source
// with bounded concurrency. Results keep the order of sources and each
// failure stays in its own result without cancelling the others.
func SearchAll(ctx context.Context, sources []novelsrc.Source, query string, concurrency int) []SearchResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]SearchResult, len(sources))
	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	for i, src := range sources {
		g.Go(func() error {
			page, err := src.GetMangaList(ctx, novelsrc.ListQuery{Query: query}, 1)
			results[i] = SearchResult{SourceID: src.ID(), Page: page, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
