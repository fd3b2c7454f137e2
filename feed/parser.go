// Package feed reads sources published as RSS or Atom feeds, typically
// Blogger and WordPress translation blogs, with gofeed.
//
// Listings and chapter indexes come from feed items. Detail and content
// pages that are not feeds are handed to an HTML parser, since such blogs
// link their feed items to ordinary post pages.
package feed

import (
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/mmcdole/gofeed"
)

// Ensure Parser implements novelsrc.Parser at compile time.
var _ novelsrc.Parser = (*Parser)(nil)

// Parser turns feed documents into domain values.
type Parser struct {
	html novelsrc.Parser
}

// NewParser creates a Parser that delegates non-feed documents to html.
// A nil html parser yields empty results for them.
func NewParser(html novelsrc.Parser) *Parser {
	return &Parser{html: html}
}

// parse returns the feed or nil when s is not a feed.
func parse(s string) *gofeed.Feed {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	f, err := gofeed.NewParser().ParseString(s)
	if err != nil {
		return nil
	}
	return f
}

// hasCategory reports whether item is tagged with category. An empty
// category matches every item.
func hasCategory(item *gofeed.Item, category string) bool {
	category = strings.TrimSpace(category)
	if category == "" {
		return true
	}
	for _, c := range item.Categories {
		if strings.EqualFold(strings.TrimSpace(c), category) {
			return true
		}
	}
	return false
}

// itemImage returns the item's image, falling back to an image enclosure.
func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}

func itemAuthor(item *gofeed.Item) string {
	if item.Author != nil && item.Author.Name != "" {
		return item.Author.Name
	}
	for _, a := range item.Authors {
		if a != nil && a.Name != "" {
			return a.Name
		}
	}
	return ""
}

func absolute(baseURL, link string, add bool) string {
	if add && link != "" {
		return novelsrc.AbsoluteURL(baseURL, link)
	}
	return link
}

// ParseList maps feed items to titles. The descriptor Selector, when set,
// names a category that items must carry.
func (p *Parser) ParseList(s, baseURL string, d novelsrc.ExploreDescriptor) novelsrc.ListResult {
	f := parse(s)
	if f == nil {
		if p.html != nil {
			return p.html.ParseList(s, baseURL, d)
		}
		return novelsrc.ListResult{}
	}

	var items []novelsrc.MangaInfo
	for _, item := range f.Items {
		if item == nil || item.Link == "" || !hasCategory(item, d.Selector) {
			continue
		}
		items = append(items, novelsrc.MangaInfo{
			Key:   absolute(baseURL, item.Link, d.AddBaseURLToLink),
			Title: novelsrc.ApplyText(d.OnTitle, strings.TrimSpace(item.Title)),
			Cover: novelsrc.ApplyText(d.OnCover, absolute(baseURL, itemImage(item), d.AddBaseURLToCover)),
		})
	}
	return novelsrc.ListResult{Items: items}
}

// ParseDetail reads the feed header as the title's details.
func (p *Parser) ParseDetail(s, baseURL string, d novelsrc.DetailDescriptor) novelsrc.MangaInfo {
	f := parse(s)
	if f == nil {
		if p.html != nil {
			return p.html.ParseDetail(s, baseURL, d)
		}
		return novelsrc.MangaInfo{}
	}

	info := novelsrc.MangaInfo{
		Title:       novelsrc.ApplyText(d.OnTitle, strings.TrimSpace(f.Title)),
		Description: novelsrc.ApplyText(d.OnDescription, strings.Join(novelsrc.NormalizeFragments(novelsrc.SplitBreaks(f.Description)), "\n")),
		Genres:      novelsrc.Clean(f.Categories),
	}
	if f.Image != nil {
		info.Cover = novelsrc.ApplyText(d.OnCover, absolute(baseURL, f.Image.URL, d.AddBaseURLToCover))
	}
	if f.Author != nil {
		info.Author = f.Author.Name
	}
	if len(f.Authors) > 0 && info.Author == "" && f.Authors[0] != nil {
		info.Author = f.Authors[0].Name
	}
	return info
}

// ParseChapters maps feed items to chapters in feed order, which is
// usually newest first. The descriptor Selector filters by category.
func (p *Parser) ParseChapters(s, baseURL string, d novelsrc.ChaptersDescriptor) novelsrc.ChapterResult {
	f := parse(s)
	if f == nil {
		if p.html != nil {
			return p.html.ParseChapters(s, baseURL, d)
		}
		return novelsrc.ChapterResult{}
	}

	var chapters []novelsrc.ChapterInfo
	for _, item := range f.Items {
		if item == nil || item.Link == "" || !hasCategory(item, d.Selector) {
			continue
		}
		name := novelsrc.ApplyText(d.OnName, strings.TrimSpace(item.Title))
		c := novelsrc.ChapterInfo{
			Key:       absolute(baseURL, item.Link, d.AddBaseURLToLink),
			Name:      name,
			Number:    novelsrc.ChapterNumber(name),
			Scanlator: itemAuthor(item),
		}
		switch {
		case item.PublishedParsed != nil:
			c.DateUpload = novelsrc.EpochMillis(*item.PublishedParsed)
		case item.UpdatedParsed != nil:
			c.DateUpload = novelsrc.EpochMillis(*item.UpdatedParsed)
		}
		chapters = append(chapters, c)
	}
	return novelsrc.ChapterResult{Chapters: chapters}
}

// ParseContent reads the text of the item linking to baseURL, or of the
// first item. Non-feed documents go to the HTML parser.
func (p *Parser) ParseContent(s, baseURL string, d novelsrc.ContentDescriptor) []novelsrc.Page {
	f := parse(s)
	if f == nil {
		if p.html != nil {
			return p.html.ParseContent(s, baseURL, d)
		}
		return nil
	}
	if len(f.Items) == 0 {
		return nil
	}

	item := f.Items[0]
	for _, it := range f.Items {
		if it != nil && it.Link == baseURL {
			item = it
			break
		}
	}
	if item == nil {
		return nil
	}

	body := item.Content
	if strings.TrimSpace(body) == "" {
		body = item.Description
	}
	paragraphs := novelsrc.NormalizeFragments(novelsrc.SplitBreaks(body))
	paragraphs = novelsrc.Clean(novelsrc.ApplyContent(d.OnContent, paragraphs))

	var pages []novelsrc.Page
	if d.TitleSelector != "" {
		if title := novelsrc.ApplyText(d.OnTitle, strings.TrimSpace(item.Title)); title != "" {
			pages = append(pages, novelsrc.TextPage(title))
		}
	}
	return append(pages, novelsrc.TextPages(paragraphs)...)
}
