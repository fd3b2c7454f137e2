// Package dateparser parses the upload dates novel sites print next to
// chapters, relative ("3 days ago", "hace 2 horas") or absolute
// ("Jan 2, 2024"), with go-dateparser.
package dateparser

import (
	"strings"
	"time"

	"github.com/fwojciec/novelsrc"
	dps "github.com/markusmobius/go-dateparser"
)

// Ensure Parser implements novelsrc.DateParser at compile time.
var _ novelsrc.DateParser = (*Parser)(nil)

// Parser parses chapter dates relative to a clock.
type Parser struct {
	languages []string
	location  *time.Location
	now       func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithLanguages limits parsing to the given language codes, typically the
// source's language. Restricting languages avoids ambiguous matches.
func WithLanguages(langs ...string) Option {
	return func(p *Parser) {
		p.languages = langs
	}
}

// WithLocation sets the timezone assumed for dates without one.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		p.location = loc
	}
}

// WithClock sets the reference time for relative dates.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// NewParser creates a Parser that resolves relative dates against the
// current time in UTC.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseDate parses text. Unparseable text is an EINVALID error.
func (p *Parser) ParseDate(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, novelsrc.Errorf(novelsrc.EINVALID, "empty date")
	}

	cfg := &dps.Configuration{
		Languages:       p.languages,
		CurrentTime:     p.now().In(p.location),
		DefaultTimezone: p.location,
	}
	dt, err := dps.Parse(cfg, text)
	if err != nil {
		return time.Time{}, novelsrc.Errorf(novelsrc.EINVALID, "unparseable date %q: %v", text, err)
	}
	if dt.Time.IsZero() {
		return time.Time{}, novelsrc.Errorf(novelsrc.EINVALID, "unparseable date %q", text)
	}
	return dt.Time, nil
}
