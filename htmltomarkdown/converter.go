// Package htmltomarkdown turns chapter paragraph fragments into readable
// text with html-to-markdown. Emphasis survives as Markdown, while links,
// images and escaping are removed so the result reads as prose.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/novelsrc"
)

// Ensure Converter implements novelsrc.Converter at compile time.
var _ novelsrc.Converter = (*Converter)(nil)

var (
	imageRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	escapeRe   = regexp.MustCompile(`\\([\\*_\[\]()#+\-.!>~|` + "`" + `])`)
	emphasisRe = regexp.MustCompile(`(\*\*|__|\*|_)(\S(?:.*?\S)?)(\*\*|__|\*|_)`)
	blankRe    = regexp.MustCompile(`\n{3,}`)
)

// Converter wraps html-to-markdown.
type Converter struct {
	conv     *converter.Converter
	emphasis bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithEmphasis controls whether bold and italic markers are kept in the
// output. They are kept by default.
func WithEmphasis(keep bool) Option {
	return func(c *Converter) {
		c.emphasis = keep
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	c := &Converter{conv: conv, emphasis: true}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms an HTML fragment into plain paragraph text.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", novelsrc.Errorf(novelsrc.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", novelsrc.Errorf(novelsrc.EINVALID, "convert HTML: %v", err)
	}

	md = imageRe.ReplaceAllString(md, "")
	md = linkRe.ReplaceAllString(md, "$1")
	if !c.emphasis {
		md = emphasisRe.ReplaceAllStringFunc(md, func(m string) string {
			parts := emphasisRe.FindStringSubmatch(m)
			if parts[1] != parts[3] {
				return m
			}
			return parts[2]
		})
	}
	md = escapeRe.ReplaceAllString(md, "$1")
	md = blankRe.ReplaceAllString(md, "\n\n")

	return strings.TrimSpace(md), nil
}
