package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelsrc"
)

// Ensure Detector implements novelsrc.ThemeDetector at compile time.
var _ novelsrc.ThemeDetector = (*Detector)(nil)

// Detector identifies novel site themes from HTML content.
// It checks for theme-specific CSS classes, feed links and structural
// markers that are shared by every site built on the same template.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect analyzes HTML and returns the identified theme.
// Returns ThemeUnknown if the theme cannot be determined.
func (d *Detector) Detect(html string) novelsrc.Theme {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return novelsrc.ThemeUnknown
	}

	// Madara (WP-Manga plugin) marks its pages and chapter lists with wp-manga classes
	if d.hasSelector(doc, "body.wp-manga-template") ||
		d.hasSelector(doc, "li.wp-manga-chapter") ||
		d.hasSelector(doc, ".c-tabs-item__content") ||
		d.hasSelector(doc, "div.summary_image") && d.hasSelector(doc, "div.post-title") {
		return novelsrc.ThemeMadara
	}

	// LightNovel WP uses eplister chapter lists and bsx listing cards
	if d.hasSelector(doc, "div.eplister") ||
		d.hasSelector(doc, "div.epcontent") ||
		d.hasSelector(doc, "div.listupd div.bsx") ||
		d.hasSelector(doc, "div.sertoinfo") {
		return novelsrc.ThemeLightNovelWP
	}

	// NovelFull-style sites share the "truyen" markup
	if d.hasSelector(doc, "#list-chapter") ||
		d.hasSelector(doc, "div.list-truyen") ||
		d.hasSelector(doc, "h3.truyen-title") ||
		d.hasSelector(doc, "#chapter-content") && d.hasSelector(doc, "a.chapter-title") {
		return novelsrc.ThemeNovelFull
	}

	// Plain WordPress blogs are read through their feeds
	if d.isWordPress(doc) && d.hasSelector(doc, "link[type='application/rss+xml']") {
		return novelsrc.ThemeWordPressFeed
	}

	return novelsrc.ThemeUnknown
}

// isWordPress checks the meta generator tag.
func (d *Detector) isWordPress(doc *goquery.Document) bool {
	generator := strings.ToLower(doc.Find("meta[name='generator']").AttrOr("content", ""))
	return strings.Contains(generator, "wordpress") || d.hasSelector(doc, "link[href*='/wp-content/']")
}

// hasSelector checks if the document contains at least one element matching the selector.
func (d *Detector) hasSelector(doc *goquery.Document, selector string) bool {
	return doc.Find(selector).Length() > 0
}
