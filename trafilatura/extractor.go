// Package trafilatura finds chapter text on pages whose configured content
// container no longer matches, using go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/novelsrc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements novelsrc.Extractor at compile time.
var _ novelsrc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	fallback novelsrc.Extractor
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback sets an extractor tried when trafilatura fails or finds no
// content.
func WithFallback(ext novelsrc.Extractor) Option {
	return func(e *Extractor) {
		e.fallback = ext
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*novelsrc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "empty HTML input")
	}

	res, err := e.extract(rawHTML)
	if (err != nil || strings.TrimSpace(res.ContentHTML) == "") && e.fallback != nil {
		if alt, altErr := e.fallback.Extract(rawHTML); altErr == nil {
			if res != nil && alt.Title == "" {
				alt.Title = res.Title
			}
			return alt, nil
		}
	}
	return res, err
}

func (e *Extractor) extract(rawHTML string) (*novelsrc.ExtractResult, error) {
	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, novelsrc.Errorf(novelsrc.ENOTFOUND, "no content found: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &novelsrc.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
