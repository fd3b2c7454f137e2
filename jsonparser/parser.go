// Package jsonparser evaluates descriptors against JSON API responses with
// buger/jsonparser.
//
// Selectors are dot paths ("data.items", "result.0.title") instead of CSS.
// Comma-separated fallback chains and ":self" work as in HTML descriptors.
// Attribute fields are ignored. String values that contain markup are
// normalized like HTML text.
package jsonparser

import (
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/fwojciec/novelsrc"
)

// Ensure Parser implements novelsrc.Parser at compile time.
var _ novelsrc.Parser = (*Parser)(nil)

// SelfSelector selects the value the path is evaluated against.
const SelfSelector = ":self"

// Parser turns JSON documents into domain values.
type Parser struct {
	// Dates parses chapter dates that are not epoch numbers.
	Dates novelsrc.DateParser
}

// NewParser creates a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// splitChain splits a fallback chain into key paths.
func splitChain(selector string) [][]string {
	var paths [][]string
	for _, alt := range strings.Split(selector, ",") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			continue
		}
		if alt == SelfSelector {
			paths = append(paths, nil)
			continue
		}
		var keys []string
		for _, k := range strings.Split(alt, ".") {
			if _, err := strconv.Atoi(k); err == nil {
				k = "[" + k + "]"
			}
			keys = append(keys, k)
		}
		paths = append(paths, keys)
	}
	return paths
}

// scalar renders a value as text. Arrays of scalars are joined with ", ".
func scalar(v []byte, typ jsonparser.ValueType) string {
	switch typ {
	case jsonparser.String:
		s, err := jsonparser.ParseString(v)
		if err != nil {
			return string(v)
		}
		return s
	case jsonparser.Number, jsonparser.Boolean:
		return string(v)
	case jsonparser.Array:
		var parts []string
		_, _ = jsonparser.ArrayEach(v, func(item []byte, t jsonparser.ValueType, _ int, _ error) {
			if s := strings.TrimSpace(scalar(item, t)); s != "" {
				parts = append(parts, s)
			}
		})
		return strings.Join(parts, ", ")
	}
	return ""
}

// Value returns the first non-blank value of the fallback chain.
func Value(data []byte, selector string) string {
	for _, keys := range splitChain(selector) {
		v, typ, _, err := jsonparser.Get(data, keys...)
		if err != nil {
			continue
		}
		if s := strings.TrimSpace(scalar(v, typ)); s != "" {
			return s
		}
	}
	return ""
}

// Text is Value with markup stripped.
func Text(data []byte, selector string) string {
	return strings.TrimSpace(novelsrc.StripTags(Value(data, selector)))
}

// Values returns the elements of the first non-empty array in the chain,
// or a single value.
func Values(data []byte, selector string) []string {
	for _, keys := range splitChain(selector) {
		v, typ, _, err := jsonparser.Get(data, keys...)
		if err != nil {
			continue
		}
		var out []string
		if typ == jsonparser.Array {
			_, _ = jsonparser.ArrayEach(v, func(item []byte, t jsonparser.ValueType, _ int, _ error) {
				if t == jsonparser.Object {
					if name := Value(item, "name,title"); name != "" {
						out = append(out, name)
					}
					return
				}
				out = append(out, scalar(item, t))
			})
		} else {
			out = append(out, scalar(v, typ))
		}
		if out = novelsrc.Clean(out); len(out) > 0 {
			return out
		}
	}
	return nil
}

// Each calls fn for every element of the first array the chain resolves.
func Each(data []byte, selector string, fn func(item []byte)) {
	for _, keys := range splitChain(selector) {
		v, typ, _, err := jsonparser.Get(data, keys...)
		if err != nil || typ != jsonparser.Array {
			continue
		}
		_, _ = jsonparser.ArrayEach(v, func(item []byte, _ jsonparser.ValueType, _ int, _ error) {
			fn(item)
		})
		return
	}
}

func link(data []byte, selector, baseURL string, absolute bool) string {
	v := Value(data, selector)
	if absolute && v != "" {
		return novelsrc.AbsoluteURL(baseURL, v)
	}
	return v
}

// hasNext reports whether the next-page path holds a truthy value, or the
// wanted value when want is set.
func hasNext(data []byte, selector, want string) bool {
	if strings.TrimSpace(selector) == "" {
		return false
	}
	v := Value(data, selector)
	if want != "" {
		return strings.EqualFold(v, strings.TrimSpace(want))
	}
	switch strings.ToLower(v) {
	case "", "false", "0", "null":
		return false
	}
	return true
}

// ParseList extracts the titles of a listing response.
func (p *Parser) ParseList(s, baseURL string, d novelsrc.ExploreDescriptor) novelsrc.ListResult {
	data := []byte(s)

	var items []novelsrc.MangaInfo
	Each(data, d.Selector, func(item []byte) {
		key := link(item, d.KeySelector, baseURL, d.AddBaseURLToLink)
		if key == "" {
			return
		}
		cover := link(item, d.CoverSelector, baseURL, d.AddBaseURLToCover)
		items = append(items, novelsrc.MangaInfo{
			Key:   key,
			Title: novelsrc.ApplyText(d.OnTitle, Text(item, d.TitleSelector)),
			Cover: novelsrc.ApplyText(d.OnCover, cover),
		})
	})

	return novelsrc.ListResult{
		Items:         items,
		HasNextMarker: hasNext(data, d.NextPageSelector, d.NextPageValue),
	}
}

// ParseDetail extracts the fields of a detail response.
func (p *Parser) ParseDetail(s, baseURL string, d novelsrc.DetailDescriptor) novelsrc.MangaInfo {
	data := []byte(s)

	description := novelsrc.NormalizeFragments(novelsrc.SplitBreaks(Value(data, d.DescriptionSelector)))
	info := novelsrc.MangaInfo{
		Title:       novelsrc.ApplyText(d.OnTitle, Text(data, d.TitleSelector)),
		Cover:       novelsrc.ApplyText(d.OnCover, link(data, d.CoverSelector, baseURL, d.AddBaseURLToCover)),
		Description: novelsrc.ApplyText(d.OnDescription, strings.Join(description, "\n")),
		Author:      Text(data, d.AuthorSelector),
		Genres:      Values(data, d.GenresSelector),
	}
	if d.StatusSelector != "" {
		info.Status = novelsrc.ApplyStatus(d.OnStatus, Text(data, d.StatusSelector))
	}
	return info
}

// ParseChapters extracts one page of a chapter index in response order.
func (p *Parser) ParseChapters(s, baseURL string, d novelsrc.ChaptersDescriptor) novelsrc.ChapterResult {
	data := []byte(s)

	var chapters []novelsrc.ChapterInfo
	Each(data, d.Selector, func(item []byte) {
		key := link(item, d.KeySelector, baseURL, d.AddBaseURLToLink)
		if key == "" {
			return
		}
		name := novelsrc.ApplyText(d.OnName, Text(item, d.NameSelector))
		chapters = append(chapters, novelsrc.ChapterInfo{
			Key:        key,
			Name:       name,
			Number:     novelsrc.ChapterNumber(name),
			DateUpload: p.parseDate(Value(item, d.DateSelector)),
			Scanlator:  Text(item, d.ScanlatorSelector),
		})
	})

	return novelsrc.ChapterResult{
		Chapters:      chapters,
		HasNextMarker: hasNext(data, d.NextPageSelector, d.NextPageValue),
	}
}

// parseDate accepts epoch seconds, epoch milliseconds or any text the
// DateParser understands.
func (p *Parser) parseDate(text string) int64 {
	if text == "" {
		return 0
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n < 1e11 {
			return n * 1000
		}
		return n
	}
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return novelsrc.EpochMillis(t)
	}
	if p.Dates == nil {
		return 0
	}
	t, err := p.Dates.ParseDate(text)
	if err != nil {
		return 0
	}
	return novelsrc.EpochMillis(t)
}

// ParseContent reads chapter text from the container path. The value may
// be an HTML string or an array of paragraphs.
func (p *Parser) ParseContent(s, baseURL string, d novelsrc.ContentDescriptor) []novelsrc.Page {
	data := []byte(s)

	var fragments []string
	for _, v := range Values(data, d.Selector) {
		fragments = append(fragments, novelsrc.SplitBreaks(v)...)
	}
	paragraphs := novelsrc.NormalizeFragments(fragments)
	paragraphs = novelsrc.Clean(novelsrc.ApplyContent(d.OnContent, paragraphs))

	var pages []novelsrc.Page
	if d.TitleSelector != "" {
		if title := novelsrc.ApplyText(d.OnTitle, Text(data, d.TitleSelector)); title != "" {
			pages = append(pages, novelsrc.TextPage(title))
		}
	}
	return append(pages, novelsrc.TextPages(paragraphs)...)
}
