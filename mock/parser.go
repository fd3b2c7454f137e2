package mock

import (
	"time"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.Parser = (*Parser)(nil)

// Parser is a mock implementation of novelsrc.Parser.
type Parser struct {
	ParseListFn     func(html, baseURL string, d novelsrc.ExploreDescriptor) novelsrc.ListResult
	ParseDetailFn   func(html, baseURL string, d novelsrc.DetailDescriptor) novelsrc.MangaInfo
	ParseChaptersFn func(html, baseURL string, d novelsrc.ChaptersDescriptor) novelsrc.ChapterResult
	ParseContentFn  func(html, baseURL string, d novelsrc.ContentDescriptor) []novelsrc.Page
}

func (p *Parser) ParseList(html, baseURL string, d novelsrc.ExploreDescriptor) novelsrc.ListResult {
	return p.ParseListFn(html, baseURL, d)
}

func (p *Parser) ParseDetail(html, baseURL string, d novelsrc.DetailDescriptor) novelsrc.MangaInfo {
	return p.ParseDetailFn(html, baseURL, d)
}

func (p *Parser) ParseChapters(html, baseURL string, d novelsrc.ChaptersDescriptor) novelsrc.ChapterResult {
	return p.ParseChaptersFn(html, baseURL, d)
}

func (p *Parser) ParseContent(html, baseURL string, d novelsrc.ContentDescriptor) []novelsrc.Page {
	return p.ParseContentFn(html, baseURL, d)
}

var _ novelsrc.DateParser = (*DateParser)(nil)

// DateParser is a mock implementation of novelsrc.DateParser.
type DateParser struct {
	ParseDateFn func(text string) (time.Time, error)
}

func (d *DateParser) ParseDate(text string) (time.Time, error) {
	return d.ParseDateFn(text)
}

var _ novelsrc.ThemeDetector = (*ThemeDetector)(nil)

// ThemeDetector is a mock implementation of novelsrc.ThemeDetector.
type ThemeDetector struct {
	DetectFn func(html string) novelsrc.Theme
}

func (d *ThemeDetector) Detect(html string) novelsrc.Theme {
	return d.DetectFn(html)
}

var _ novelsrc.PresetRegistry = (*PresetRegistry)(nil)

// PresetRegistry is a mock implementation of novelsrc.PresetRegistry.
type PresetRegistry struct {
	GetFn        func(theme novelsrc.Theme) (novelsrc.Descriptors, bool)
	GetForHTMLFn func(html string) (novelsrc.Theme, novelsrc.Descriptors, bool)
	RegisterFn   func(theme novelsrc.Theme, preset novelsrc.Descriptors)
	ListFn       func() []novelsrc.Theme
}

func (r *PresetRegistry) Get(theme novelsrc.Theme) (novelsrc.Descriptors, bool) {
	return r.GetFn(theme)
}

func (r *PresetRegistry) GetForHTML(html string) (novelsrc.Theme, novelsrc.Descriptors, bool) {
	return r.GetForHTMLFn(html)
}

func (r *PresetRegistry) Register(theme novelsrc.Theme, preset novelsrc.Descriptors) {
	r.RegisterFn(theme, preset)
}

func (r *PresetRegistry) List() []novelsrc.Theme {
	return r.ListFn()
}
