package novelsrc

import "context"

// PageKind distinguishes the forms a unit of chapter content takes.
type PageKind int

// Page kinds.
const (
	PageText PageKind = iota
	PageImage
)

// Page is a single unit of chapter content. A chapter's body is an
// ordered list of pages, most commonly one text page per paragraph.
type Page struct {
	Kind     PageKind
	Text     string
	ImageURL string
}

// TextPage returns a text page.
func TextPage(text string) Page {
	return Page{Kind: PageText, Text: text}
}

// ImagePage returns an image page.
func ImagePage(url string) Page {
	return Page{Kind: PageImage, ImageURL: url}
}

// TextPages wraps each paragraph in a text page.
func TextPages(paragraphs []string) []Page {
	pages := make([]Page, 0, len(paragraphs))
	for _, p := range paragraphs {
		pages = append(pages, TextPage(p))
	}
	return pages
}

// ChapterWriter exports chapter content outside the process.
type ChapterWriter interface {
	// WriteChapter stores the pages of one chapter of manga.
	WriteChapter(ctx context.Context, manga MangaInfo, chapter ChapterInfo, pages []Page) error
}
