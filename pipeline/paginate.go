package pipeline

import "context"

// PageState is the state of a pagination sequence.
type PageState int

// Pagination states.
const (
	StateFetching PageState = iota
	StateHasMore
	StateExhausted
)

// String returns the state name.
func (s PageState) String() string {
	switch s {
	case StateFetching:
		return "fetching"
	case StateHasMore:
		return "has_more"
	default:
		return "exhausted"
	}
}

// Advance decides the state after page was fetched and yielded items
// entries. A positive maxPage caps pagination and wins over the marker;
// an empty page ends the sequence even when a marker is present.
func Advance(page, maxPage, items int, hasMarker bool) PageState {
	switch {
	case maxPage > 0 && page >= maxPage:
		return StateExhausted
	case items == 0:
		return StateExhausted
	case hasMarker:
		return StateHasMore
	default:
		return StateExhausted
	}
}

// FetchPageFunc fetches and parses one page, reporting its items and
// whether it carried a "more pages" marker.
type FetchPageFunc[T any] func(ctx context.Context, page int) (items []T, hasMarker bool, err error)

// Paginator drives sequential fetch and parse cycles. Pages are never
// fetched in parallel.
type Paginator[T any] struct {
	// Start is the first page, 1 if unset.
	Start int

	// MaxPage caps the last page index. Zero means no cap.
	MaxPage int

	// Limit caps the number of pages fetched by one Collect. Zero means no limit.
	Limit int

	Fetch FetchPageFunc[T]
}

// Collect fetches pages until the sequence is exhausted. When a fetch
// fails, the items of earlier pages are returned together with the error.
func (p *Paginator[T]) Collect(ctx context.Context) ([]T, error) {
	page := max(p.Start, 1)

	var all []T
	for fetched := 1; ; fetched++ {
		if err := ctx.Err(); err != nil {
			return all, err
		}

		items, hasMarker, err := p.Fetch(ctx, page)
		if err != nil {
			return all, err
		}
		all = append(all, items...)

		if Advance(page, p.MaxPage, len(items), hasMarker) != StateHasMore {
			return all, nil
		}
		if p.Limit > 0 && fetched >= p.Limit {
			return all, nil
		}
		page++
	}
}
