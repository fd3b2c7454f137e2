package pipeline

import (
	"context"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/bloom"
)

// itemsPerPage sizes the dedup filter for one listing page.
const itemsPerPage = 50

// Collect walks a listing from its first page up to maxPages pages (zero
// means until exhausted), dropping items whose key was already seen. A
// page with nothing new ends the walk. When a page fails the items
// collected so far are returned together with the error.
func Collect(ctx context.Context, src novelsrc.Source, q novelsrc.ListQuery, maxPages int) ([]novelsrc.MangaInfo, error) {
	seen := bloom.NewFilter(uint(max(maxPages, 20)*itemsPerPage), 0.001)

	p := &Paginator[novelsrc.MangaInfo]{
		Limit: maxPages,
		Fetch: func(ctx context.Context, page int) ([]novelsrc.MangaInfo, bool, error) {
			res, err := src.GetMangaList(ctx, q, page)
			if err != nil {
				return nil, false, err
			}
			fresh := make([]novelsrc.MangaInfo, 0, len(res.Items))
			for _, item := range res.Items {
				if seen.Seen(item.Key) {
					continue
				}
				fresh = append(fresh, item)
			}
			return fresh, res.HasNextPage, nil
		},
	}
	return p.Collect(ctx)
}
