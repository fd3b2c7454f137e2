package novelsrc

import "time"

// ListResult is a parsed listing page.
type ListResult struct {
	Items []MangaInfo

	// HasNextMarker reports whether the page carries a "more pages" marker.
	HasNextMarker bool
}

// ChapterResult is a parsed page of a chapter index.
type ChapterResult struct {
	Chapters      []ChapterInfo
	HasNextMarker bool
}

// Parser turns one document into domain values according to a descriptor.
// Parsers are lenient: missing fields come back empty and malformed input
// never produces an error.
type Parser interface {
	ParseList(html, baseURL string, d ExploreDescriptor) ListResult
	ParseDetail(html, baseURL string, d DetailDescriptor) MangaInfo
	ParseChapters(html, baseURL string, d ChaptersDescriptor) ChapterResult
	ParseContent(html, baseURL string, d ContentDescriptor) []Page
}

// DateParser parses the relative and absolute dates sites print next to
// chapters ("3 days ago", "Jan 2, 2024", "hace 2 horas").
type DateParser interface {
	ParseDate(text string) (time.Time, error)
}

// EpochMillis converts t to epoch milliseconds, 0 for the zero time.
func EpochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
