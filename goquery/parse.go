package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelsrc"
	"golang.org/x/net/html"
)

// Ensure Parser implements novelsrc.Parser at compile time.
var _ novelsrc.Parser = (*Parser)(nil)

// Parser turns HTML documents into domain values by evaluating descriptors.
// All collaborators are optional.
type Parser struct {
	// Converter strips markup from content paragraphs when a content
	// descriptor sets ConvertHTML.
	Converter novelsrc.Converter

	// Extractor finds chapter text when the content container is missing.
	Extractor novelsrc.Extractor

	// Dates parses chapter upload dates. Without it dates are unknown.
	Dates novelsrc.DateParser
}

// NewParser creates a Parser without optional collaborators.
func NewParser() *Parser {
	return &Parser{}
}

// parseDocument parses html leniently. Parse failures yield an empty document.
func parseDocument(s string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return goquery.NewDocumentFromNode(&html.Node{Type: html.DocumentNode})
	}
	return doc
}

func attrOr(attr, fallback string) string {
	if attr == "" {
		return fallback
	}
	return attr
}

// link reads a link and optionally makes it absolute.
func link(s *goquery.Selection, selector, attr, baseURL string, absolute bool) string {
	v := Value(s, selector, attr)
	if absolute && v != "" {
		return novelsrc.AbsoluteURL(baseURL, v)
	}
	return v
}

// ParseList extracts the titles of a listing page. Items without a key
// are dropped since they cannot be fetched later.
func (p *Parser) ParseList(s, baseURL string, d novelsrc.ExploreDescriptor) novelsrc.ListResult {
	doc := parseDocument(s)

	var items []novelsrc.MangaInfo
	Select(doc.Selection, d.Selector).Each(func(_ int, item *goquery.Selection) {
		key := link(item, d.KeySelector, attrOr(d.KeyAttr, "href"), baseURL, d.AddBaseURLToLink)
		if key == "" {
			return
		}
		cover := link(item, d.CoverSelector, attrOr(d.CoverAttr, "src"), baseURL, d.AddBaseURLToCover)
		items = append(items, novelsrc.MangaInfo{
			Key:   key,
			Title: novelsrc.ApplyText(d.OnTitle, Value(item, d.TitleSelector, d.TitleAttr)),
			Cover: novelsrc.ApplyText(d.OnCover, cover),
		})
	})

	return novelsrc.ListResult{
		Items:         items,
		HasNextMarker: HasNextMarker(doc.Selection, d.NextPageSelector, d.NextPageAttr, d.NextPageValue),
	}
}

// ParseDetail extracts the fields of a detail page. The returned value
// has no key; callers merge it into the title they already hold.
func (p *Parser) ParseDetail(s, baseURL string, d novelsrc.DetailDescriptor) novelsrc.MangaInfo {
	root := parseDocument(s).Selection

	cover := link(root, d.CoverSelector, attrOr(d.CoverAttr, "src"), baseURL, d.AddBaseURLToCover)
	info := novelsrc.MangaInfo{
		Title:       novelsrc.ApplyText(d.OnTitle, Text(root, d.TitleSelector)),
		Cover:       novelsrc.ApplyText(d.OnCover, cover),
		Description: novelsrc.ApplyText(d.OnDescription, paragraphsText(root, d.DescriptionSelector)),
		Author:      Text(root, d.AuthorSelector),
		Genres:      splitGenres(Values(root, d.GenresSelector, "")),
	}
	if d.StatusSelector != "" {
		info.Status = novelsrc.ApplyStatus(d.OnStatus, Text(root, d.StatusSelector))
	}
	return info
}

// ParseChapters extracts one page of a chapter index in site order.
func (p *Parser) ParseChapters(s, baseURL string, d novelsrc.ChaptersDescriptor) novelsrc.ChapterResult {
	doc := parseDocument(s)

	var chapters []novelsrc.ChapterInfo
	Select(doc.Selection, d.Selector).Each(func(_ int, item *goquery.Selection) {
		key := link(item, d.KeySelector, attrOr(d.KeyAttr, "href"), baseURL, d.AddBaseURLToLink)
		if key == "" {
			return
		}
		name := novelsrc.ApplyText(d.OnName, Value(item, d.NameSelector, d.NameAttr))
		chapters = append(chapters, novelsrc.ChapterInfo{
			Key:        key,
			Name:       name,
			Number:     novelsrc.ChapterNumber(name),
			DateUpload: p.parseDate(Value(item, d.DateSelector, d.DateAttr)),
			Scanlator:  Text(item, d.ScanlatorSelector),
		})
	})

	return novelsrc.ChapterResult{
		Chapters:      chapters,
		HasNextMarker: HasNextMarker(doc.Selection, d.NextPageSelector, d.NextPageAttr, d.NextPageValue),
	}
}

func (p *Parser) parseDate(text string) int64 {
	if p.Dates == nil || text == "" {
		return 0
	}
	t, err := p.Dates.ParseDate(text)
	if err != nil {
		return 0
	}
	return novelsrc.EpochMillis(t)
}

// ParseContent runs the content normalization stages over a chapter page:
// select paragraphs (falling back to splitting the container on breaks,
// then to the Extractor), strip markup, drop blanks, apply OnContent and
// prepend the optional title.
func (p *Parser) ParseContent(s, baseURL string, d novelsrc.ContentDescriptor) []novelsrc.Page {
	root := parseDocument(s).Selection

	container := root.Find("body")
	if d.Selector != "" {
		container = Select(root, d.Selector)
	}
	if container.Length() == 0 && p.Extractor != nil {
		if res, err := p.Extractor.Extract(s); err == nil && strings.TrimSpace(res.ContentHTML) != "" {
			container = parseDocument(res.ContentHTML).Find("body")
		}
	}

	fragments, images := p.selectFragments(container, attrOr(d.Paragraphs, "p"), baseURL)
	paragraphs := novelsrc.Clean(p.stripFragments(fragments, d.ConvertHTML))
	paragraphs = novelsrc.Clean(novelsrc.ApplyContent(d.OnContent, paragraphs))

	var pages []novelsrc.Page
	if d.TitleSelector != "" {
		if title := novelsrc.ApplyText(d.OnTitle, Text(root, d.TitleSelector)); title != "" {
			pages = append(pages, novelsrc.TextPage(title))
		}
	}
	if len(paragraphs) == 0 && len(images) > 0 {
		for _, src := range images {
			pages = append(pages, novelsrc.ImagePage(src))
		}
		return pages
	}
	return append(pages, novelsrc.TextPages(paragraphs)...)
}

// selectFragments returns the raw HTML fragments of the container's
// paragraphs, or of the container split on breaks when no paragraph holds
// text. Image paragraphs are returned separately.
func (p *Parser) selectFragments(container *goquery.Selection, paragraphs, baseURL string) (fragments, images []string) {
	if container.Length() == 0 {
		return nil, nil
	}

	hasText := false
	Select(container, paragraphs).Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "img" {
			if src := link(s, SelfSelector, "src", baseURL, true); src != "" {
				images = append(images, src)
			}
			return
		}
		inner, err := s.Html()
		if err != nil {
			return
		}
		if strings.TrimSpace(s.Text()) != "" {
			hasText = true
		}
		fragments = append(fragments, novelsrc.SplitBreaks(inner)...)
	})
	if hasText {
		return fragments, images
	}

	var blob strings.Builder
	container.Each(func(_ int, s *goquery.Selection) {
		if inner, err := s.Html(); err == nil {
			blob.WriteString(inner)
			blob.WriteString("<br>")
		}
	})
	return novelsrc.SplitBreaks(blob.String()), images
}

// stripFragments removes markup with the Converter when requested,
// falling back to regular expressions per fragment.
func (p *Parser) stripFragments(fragments []string, convert bool) []string {
	out := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if convert && p.Converter != nil && strings.TrimSpace(f) != "" {
			if text, err := p.Converter.Convert(f); err == nil {
				out = append(out, text)
				continue
			}
		}
		out = append(out, novelsrc.StripTags(f))
	}
	return out
}

// HasNextMarker reports whether selector matches a non-blank element and,
// when want is set, whether one matching element's value equals want
// (trimmed, case-insensitive). Without want, an element counts when its
// value is non-blank or, for icon-only links, when it or a descendant
// carries an href or an icon.
func HasNextMarker(sel *goquery.Selection, selector, attr, want string) bool {
	if strings.TrimSpace(selector) == "" {
		return false
	}
	want = strings.TrimSpace(want)
	marks := func(s *goquery.Selection) bool {
		if want != "" {
			return strings.EqualFold(elementValue(s, attr), want)
		}
		return !blankMarker(s, attr)
	}
	for _, alt := range SplitChain(selector) {
		found := false
		find(sel, alt).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			found = marks(s)
			return !found
		})
		if found {
			return true
		}
	}
	return false
}

func blankMarker(s *goquery.Selection, attr string) bool {
	if elementValue(s, attr) != "" {
		return false
	}
	if attr != "" {
		return true
	}
	if strings.TrimSpace(s.AttrOr("href", "")) != "" {
		return false
	}
	linked := s.Find("[href]").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.TrimSpace(a.AttrOr("href", "")) != ""
	})
	return linked.Length() == 0 && s.Find("img, svg, i").Length() == 0
}

// paragraphsText joins the paragraphs of every element matched by the
// first productive alternative, keeping line breaks.
func paragraphsText(root *goquery.Selection, selector string) string {
	for _, alt := range SplitChain(selector) {
		var blocks []string
		find(root, alt).Each(func(_ int, s *goquery.Selection) {
			inner, err := s.Html()
			if err != nil {
				return
			}
			if lines := novelsrc.NormalizeFragments(novelsrc.SplitBreaks(inner)); len(lines) > 0 {
				blocks = append(blocks, strings.Join(lines, "\n"))
			}
		})
		if len(blocks) > 0 {
			return strings.Join(blocks, "\n\n")
		}
	}
	return ""
}

// splitGenres splits a single comma-separated genre string.
func splitGenres(values []string) []string {
	if len(values) != 1 || !strings.Contains(values[0], ",") {
		return values
	}
	return novelsrc.Clean(strings.Split(values[0], ","))
}
