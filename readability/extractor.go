// Package readability extracts the article body of chapter pages with
// go-readability.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements novelsrc.Extractor at compile time.
var _ novelsrc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	pageURL *url.URL
}

// NewExtractor creates a new Extractor. When pageURL parses, relative links
// in the extracted content are resolved against it.
func NewExtractor(pageURL ...string) *Extractor {
	e := &Extractor{}
	if len(pageURL) > 0 {
		if u, err := url.Parse(pageURL[0]); err == nil && u.IsAbs() {
			e.pageURL = u
		}
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*novelsrc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, novelsrc.Errorf(novelsrc.ENOTFOUND, "no readable content: %v", err)
	}

	return &novelsrc.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
