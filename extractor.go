package novelsrc

// ExtractResult is the main content found on a page.
type ExtractResult struct {
	// Title comes from the page metadata and may be empty.
	Title string

	// ContentHTML holds the article body with navigation, comments and
	// ad blocks stripped.
	ContentHTML string
}

// Extractor finds the main content of a page without a selector. The
// content pipeline falls back to it when a chapter page no longer matches
// its configured container, which happens when a site changes its markup.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
