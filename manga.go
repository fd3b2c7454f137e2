package novelsrc

import "context"

// Status is the publication status of a title.
type Status int

// Publication statuses.
const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
	StatusOnHiatus
	StatusCancelled
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	case StatusOnHiatus:
		return "hiatus"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ParseStatus returns the status named by s as produced by Status.String.
// Unrecognized names map to StatusUnknown.
func ParseStatus(s string) Status {
	switch s {
	case "ongoing":
		return StatusOngoing
	case "completed":
		return StatusCompleted
	case "hiatus":
		return StatusOnHiatus
	case "cancelled":
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// MangaInfo describes a single title offered by a source.
// It is a value type; enrichment produces a new value via Merge.
type MangaInfo struct {
	// Key identifies the title within its source and must be stable
	// across fetches. Usually the detail page URL.
	Key         string
	Title       string
	Cover       string
	Description string
	Author      string
	Genres      []string
	Status      Status
}

// Merge returns a copy of m with every non-empty field of update applied.
// The key is never changed and m is not modified.
func (m MangaInfo) Merge(update MangaInfo) MangaInfo {
	out := m
	out.Genres = append([]string(nil), m.Genres...)
	if update.Title != "" {
		out.Title = update.Title
	}
	if update.Cover != "" {
		out.Cover = update.Cover
	}
	if update.Description != "" {
		out.Description = update.Description
	}
	if update.Author != "" {
		out.Author = update.Author
	}
	if len(update.Genres) > 0 {
		out.Genres = append([]string(nil), update.Genres...)
	}
	if update.Status != StatusUnknown {
		out.Status = update.Status
	}
	return out
}

// ListQuery selects what GetMangaList returns. A non-empty query (or a
// title filter carrying text) switches the source to its search endpoint;
// otherwise Listing names the browsing view, empty meaning the first one.
type ListQuery struct {
	Listing string
	Query   string
	Filters FilterList
}

// SearchText returns the free-text query, preferring Query over a title filter.
func (q ListQuery) SearchText() string {
	if q.Query != "" {
		return q.Query
	}
	text, _ := q.Filters.Query()
	return text
}

// MangaPage is one page of listing results.
type MangaPage struct {
	Items       []MangaInfo
	HasNextPage bool
}

// Source is a site adapter exposing the retrieval operations of the pipeline.
type Source interface {
	// ID returns the unique source identifier.
	ID() string
	Name() string
	Lang() string
	BaseURL() string

	// Listings returns the names of the browsing views.
	Listings() []string

	// Filters returns the filters the source understands.
	Filters() FilterList

	// GetMangaList returns one page of a listing or of search results.
	GetMangaList(ctx context.Context, query ListQuery, page int) (*MangaPage, error)

	// GetMangaDetails enriches manga from its detail page.
	GetMangaDetails(ctx context.Context, manga MangaInfo, cmds Commands) (MangaInfo, error)

	// GetChapterList returns the chapters of manga in the source's
	// configured order. On a transport error part way through a paginated
	// chapter index the chapters gathered so far are returned with the error.
	GetChapterList(ctx context.Context, manga MangaInfo, cmds Commands) ([]ChapterInfo, error)

	// GetPageList returns the readable body of a chapter.
	GetPageList(ctx context.Context, chapter ChapterInfo, cmds Commands) ([]Page, error)
}

// SourceRegistry holds the sources known to the process, keyed by ID.
type SourceRegistry interface {
	// Register adds a source. Returns EINVALID if the ID is taken.
	Register(src Source) error

	// Get returns the source with the given ID or an ENOTFOUND error.
	Get(id string) (Source, error)

	// List returns all sources ordered by ID.
	List() []Source
}
