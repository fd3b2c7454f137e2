// Package yaml loads source definitions and CLI settings from YAML files
// with gopkg.in/yaml.v3.
//
// A definition names an optional theme preset and states only what
// differs from it. Hooks that are code elsewhere are declared as data
// here: status phrase tables, paragraph strip patterns, query and page
// rewrites.
package yaml

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/pipeline"
	"gopkg.in/yaml.v3"
)

// ParserKind selects the document parser of a source.
type ParserKind string

// Parser kinds.
const (
	ParserHTML ParserKind = "html"
	ParserJSON ParserKind = "json"
	ParserFeed ParserKind = "feed"
)

// File is the content of a configuration file.
type File struct {
	Settings Settings    `yaml:"settings"`
	Sources  []SourceDef `yaml:"sources"`
}

// Settings configure the runtime shared by all sources. A negative
// CacheTTL disables the response cache.
type Settings struct {
	UserAgent      string        `yaml:"user_agent"`
	Timeout        time.Duration `yaml:"timeout"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	Concurrency    int           `yaml:"concurrency"`
	Render         bool          `yaml:"render"`
	BrowserDataDir string        `yaml:"browser_data_dir"`
	Proxy          string        `yaml:"proxy"`
	RateLimit      RateLimitDef  `yaml:"rate_limit"`
}

// RateLimitDef allows Permits requests per Period.
type RateLimitDef struct {
	Permits int           `yaml:"permits"`
	Period  time.Duration `yaml:"period"`
}

// Limit converts the definition.
func (r RateLimitDef) Limit() pipeline.Limit {
	return pipeline.Limit{Permits: r.Permits, Period: r.Period}
}

// SourceDef defines one source.
type SourceDef struct {
	ID        string            `yaml:"id"`
	Name      string            `yaml:"name"`
	Lang      string            `yaml:"lang"`
	BaseURL   string            `yaml:"base_url"`
	Theme     string            `yaml:"theme"`
	Parser    ParserKind        `yaml:"parser"`
	Headers   map[string]string `yaml:"headers"`
	RateLimit *RateLimitDef     `yaml:"rate_limit"`

	// TitleStrip patterns are removed from listing and detail titles.
	TitleStrip []string `yaml:"title_strip"`

	Listings []ExploreDef `yaml:"listings"`
	Search   *ExploreDef  `yaml:"search"`
	Detail   DetailDef    `yaml:"detail"`
	Chapters ChaptersDef  `yaml:"chapters"`
	Content  ContentDef   `yaml:"content"`
	Filters  []FilterDef  `yaml:"filters"`
}

// ExploreDef overrides a listing or search descriptor.
type ExploreDef struct {
	Name           string            `yaml:"name"`
	Endpoint       string            `yaml:"endpoint"`
	Method         string            `yaml:"method"`
	Form           map[string]string `yaml:"form"`
	Selector       string            `yaml:"selector"`
	Key            string            `yaml:"key"`
	KeyAttr        string            `yaml:"key_attr"`
	Title          string            `yaml:"title"`
	TitleAttr      string            `yaml:"title_attr"`
	Cover          string            `yaml:"cover"`
	CoverAttr      string            `yaml:"cover_attr"`
	NextPage       string            `yaml:"next_page"`
	NextPageAttr   string            `yaml:"next_page_attr"`
	NextPageValue  string            `yaml:"next_page_value"`
	MaxPage        int               `yaml:"max_page"`
	PageSize       int               `yaml:"page_size"`
	PageOffset     int               `yaml:"page_offset"`
	QuerySeparator string            `yaml:"query_separator"`
	QueryLower     bool              `yaml:"query_lower"`
	AbsoluteLinks  *bool             `yaml:"absolute_links"`
	AbsoluteCovers *bool             `yaml:"absolute_covers"`
}

// DetailDef overrides the detail descriptor.
type DetailDef struct {
	Title          string     `yaml:"title"`
	Cover          string     `yaml:"cover"`
	CoverAttr      string     `yaml:"cover_attr"`
	Description    string     `yaml:"description"`
	Author         string     `yaml:"author"`
	Genres         string     `yaml:"genres"`
	Status         string     `yaml:"status"`
	StatusTable    *StatusDef `yaml:"status_table"`
	AbsoluteCovers *bool      `yaml:"absolute_covers"`
}

// StatusDef adds site phrases to the default status table.
type StatusDef struct {
	Ongoing   []string `yaml:"ongoing"`
	Completed []string `yaml:"completed"`
	Hiatus    []string `yaml:"hiatus"`
	Cancelled []string `yaml:"cancelled"`
}

// ChaptersDef overrides the chapter index descriptor.
type ChaptersDef struct {
	Endpoint      string            `yaml:"endpoint"`
	Method        string            `yaml:"method"`
	Form          map[string]string `yaml:"form"`
	Selector      string            `yaml:"selector"`
	Key           string            `yaml:"key"`
	KeyAttr       string            `yaml:"key_attr"`
	Name          string            `yaml:"name"`
	NameAttr      string            `yaml:"name_attr"`
	Date          string            `yaml:"date"`
	DateAttr      string            `yaml:"date_attr"`
	Scanlator     string            `yaml:"scanlator"`
	NextPage      string            `yaml:"next_page"`
	NextPageAttr  string            `yaml:"next_page_attr"`
	NextPageValue string            `yaml:"next_page_value"`
	MaxPage       int               `yaml:"max_page"`
	PageSize      int               `yaml:"page_size"`
	PageOffset    int               `yaml:"page_offset"`
	Order         string            `yaml:"order"`
	AbsoluteLinks *bool             `yaml:"absolute_links"`
}

// ContentDef overrides the content descriptor.
type ContentDef struct {
	Selector    string   `yaml:"selector"`
	Paragraphs  string   `yaml:"paragraphs"`
	Title       string   `yaml:"title"`
	ConvertHTML *bool    `yaml:"convert_html"`
	Strip       []string `yaml:"strip"`
}

// FilterDef declares a search filter.
type FilterDef struct {
	Type     string      `yaml:"type"`
	Key      string      `yaml:"key"`
	Name     string      `yaml:"name"`
	Sep      string      `yaml:"sep"`
	Selected int         `yaml:"selected"`
	Options  []OptionDef `yaml:"options"`
}

// OptionDef is one option of a filter.
type OptionDef struct {
	Label   string `yaml:"label"`
	Value   string `yaml:"value"`
	Checked bool   `yaml:"checked"`
}

// Definition is a resolved source definition.
type Definition struct {
	Config pipeline.Config
	Parser ParserKind
}

// LoadConfig reads and decodes the file at path.
func LoadConfig(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return f, nil
}

// Decode decodes a configuration document. Unknown fields are errors.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "decode config: %v", err)
	}
	return &f, nil
}

// Definitions resolves every source against presets, which may be nil
// when no source names a theme.
func (f *File) Definitions(presets novelsrc.PresetRegistry) ([]Definition, error) {
	defs := make([]Definition, 0, len(f.Sources))
	for _, s := range f.Sources {
		d, err := s.Definition(presets, f.Settings.RateLimit)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// Definition resolves the source: it starts from the theme preset,
// overlays the declared fields and compiles the declarative hooks.
// fallback is the rate limit used when the source sets none.
func (s SourceDef) Definition(presets novelsrc.PresetRegistry, fallback RateLimitDef) (Definition, error) {
	var base novelsrc.Descriptors
	if s.Theme != "" {
		if presets == nil {
			return Definition{}, novelsrc.Errorf(novelsrc.EINVALID, "source %q: theme %q needs a preset registry", s.ID, s.Theme)
		}
		preset, ok := presets.Get(novelsrc.Theme(strings.ToLower(s.Theme)))
		if !ok {
			return Definition{}, novelsrc.Errorf(novelsrc.EINVALID, "source %q: unknown theme %q", s.ID, s.Theme)
		}
		base = preset
		base.Listings = slices.Clone(preset.Listings)
	}

	kind := s.Parser
	switch kind {
	case "":
		kind = ParserHTML
	case ParserHTML, ParserJSON, ParserFeed:
	default:
		return Definition{}, novelsrc.Errorf(novelsrc.EINVALID, "source %q: unknown parser %q", s.ID, s.Parser)
	}

	titleHook, err := stripText(s.TitleStrip)
	if err != nil {
		return Definition{}, novelsrc.Errorf(novelsrc.EINVALID, "source %q: title_strip: %v", s.ID, err)
	}

	for _, l := range s.Listings {
		i := slices.IndexFunc(base.Listings, func(d novelsrc.ExploreDescriptor) bool {
			return strings.EqualFold(d.Name, l.Name)
		})
		if i < 0 {
			base.Listings = append(base.Listings, l.apply(novelsrc.ExploreDescriptor{}))
			continue
		}
		base.Listings[i] = l.apply(base.Listings[i])
	}
	if s.Search != nil {
		base.Search = s.Search.apply(base.Search)
	}
	base.Detail = s.Detail.apply(base.Detail)
	if titleHook != nil {
		for i := range base.Listings {
			base.Listings[i].OnTitle = titleHook
		}
		base.Search.OnTitle = titleHook
		base.Detail.OnTitle = titleHook
	}

	base.Chapters, err = s.Chapters.apply(base.Chapters)
	if err != nil {
		return Definition{}, novelsrc.Errorf(novelsrc.EINVALID, "source %q: %s", s.ID, novelsrc.ErrorMessage(err))
	}

	base.Content, err = s.Content.apply(base.Content)
	if err != nil {
		return Definition{}, novelsrc.Errorf(novelsrc.EINVALID, "source %q: content strip: %v", s.ID, err)
	}

	filters, err := s.filters()
	if err != nil {
		return Definition{}, err
	}

	limit := fallback
	if s.RateLimit != nil {
		limit = *s.RateLimit
	}

	cfg := pipeline.Config{
		ID:          s.ID,
		Name:        s.Name,
		Lang:        s.Lang,
		BaseURL:     s.BaseURL,
		Header:      s.Headers,
		Descriptors: base,
		Filters:     filters,
		RateLimit:   limit.Limit(),
	}
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	if err := cfg.Validate(); err != nil {
		return Definition{}, err
	}
	return Definition{Config: cfg, Parser: kind}, nil
}

func set(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func pageOffset(offset int) novelsrc.PageFunc {
	if offset == 0 {
		return nil
	}
	return func(page int) int { return page + offset }
}

func compile(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, re)
	}
	return out, nil
}

// stripText returns a text hook removing every match of patterns.
func stripText(patterns []string) (novelsrc.TextFunc, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	res, err := compile(patterns)
	if err != nil {
		return nil, err
	}
	return func(s string) string {
		for _, re := range res {
			s = re.ReplaceAllString(s, "")
		}
		return strings.TrimSpace(s)
	}, nil
}

func (e ExploreDef) apply(d novelsrc.ExploreDescriptor) novelsrc.ExploreDescriptor {
	set(&d.Name, e.Name)
	set(&d.Endpoint, e.Endpoint)
	set(&d.Method, e.Method)
	if len(e.Form) > 0 {
		d.Form = e.Form
	}
	set(&d.Selector, e.Selector)
	set(&d.KeySelector, e.Key)
	set(&d.KeyAttr, e.KeyAttr)
	set(&d.TitleSelector, e.Title)
	set(&d.TitleAttr, e.TitleAttr)
	set(&d.CoverSelector, e.Cover)
	set(&d.CoverAttr, e.CoverAttr)
	set(&d.NextPageSelector, e.NextPage)
	set(&d.NextPageAttr, e.NextPageAttr)
	set(&d.NextPageValue, e.NextPageValue)
	setInt(&d.MaxPage, e.MaxPage)
	setInt(&d.PageSize, e.PageSize)
	setBool(&d.AddBaseURLToLink, e.AbsoluteLinks)
	setBool(&d.AddBaseURLToCover, e.AbsoluteCovers)
	if fn := pageOffset(e.PageOffset); fn != nil {
		d.OnPage = fn
	}
	if e.QuerySeparator != "" || e.QueryLower {
		encode, lower := novelsrc.EncodeQuery(e.QuerySeparator), e.QueryLower
		d.OnQuery = func(q string) string {
			if lower {
				q = strings.ToLower(q)
			}
			return encode(q)
		}
	}
	return d
}

func (e DetailDef) apply(d novelsrc.DetailDescriptor) novelsrc.DetailDescriptor {
	set(&d.TitleSelector, e.Title)
	set(&d.CoverSelector, e.Cover)
	set(&d.CoverAttr, e.CoverAttr)
	set(&d.DescriptionSelector, e.Description)
	set(&d.AuthorSelector, e.Author)
	set(&d.GenresSelector, e.Genres)
	set(&d.StatusSelector, e.Status)
	setBool(&d.AddBaseURLToCover, e.AbsoluteCovers)
	if e.StatusTable != nil {
		table := novelsrc.DefaultStatusTable
		table.Ongoing = append(slices.Clone(e.StatusTable.Ongoing), table.Ongoing...)
		table.Completed = append(slices.Clone(e.StatusTable.Completed), table.Completed...)
		table.Hiatus = append(slices.Clone(e.StatusTable.Hiatus), table.Hiatus...)
		table.Cancelled = append(slices.Clone(e.StatusTable.Cancelled), table.Cancelled...)
		d.OnStatus = table.Func()
	}
	return d
}

func (e ChaptersDef) apply(d novelsrc.ChaptersDescriptor) (novelsrc.ChaptersDescriptor, error) {
	set(&d.Endpoint, e.Endpoint)
	set(&d.Method, e.Method)
	if len(e.Form) > 0 {
		d.Form = e.Form
	}
	set(&d.Selector, e.Selector)
	set(&d.KeySelector, e.Key)
	set(&d.KeyAttr, e.KeyAttr)
	set(&d.NameSelector, e.Name)
	set(&d.NameAttr, e.NameAttr)
	set(&d.DateSelector, e.Date)
	set(&d.DateAttr, e.DateAttr)
	set(&d.ScanlatorSelector, e.Scanlator)
	set(&d.NextPageSelector, e.NextPage)
	set(&d.NextPageAttr, e.NextPageAttr)
	set(&d.NextPageValue, e.NextPageValue)
	setInt(&d.MaxPage, e.MaxPage)
	setInt(&d.PageSize, e.PageSize)
	setBool(&d.AddBaseURLToLink, e.AbsoluteLinks)
	if fn := pageOffset(e.PageOffset); fn != nil {
		d.OnPage = fn
	}
	if e.Order != "" {
		order, err := novelsrc.ParseChapterOrder(strings.ToLower(e.Order))
		if err != nil {
			return d, err
		}
		d.Order = order
	}
	return d, nil
}

func (e ContentDef) apply(d novelsrc.ContentDescriptor) (novelsrc.ContentDescriptor, error) {
	set(&d.Selector, e.Selector)
	set(&d.Paragraphs, e.Paragraphs)
	set(&d.TitleSelector, e.Title)
	setBool(&d.ConvertHTML, e.ConvertHTML)
	if len(e.Strip) > 0 {
		res, err := compile(e.Strip)
		if err != nil {
			return d, err
		}
		d.OnContent = novelsrc.StripMatching(res...)
	}
	return d, nil
}

func (s SourceDef) filters() (novelsrc.FilterList, error) {
	var list novelsrc.FilterList
	for _, f := range s.Filters {
		options := make([]novelsrc.FilterOption, 0, len(f.Options))
		for _, o := range f.Options {
			options = append(options, novelsrc.FilterOption{Label: o.Label, Value: o.Value})
		}
		switch strings.ToLower(f.Type) {
		case "title", "text":
			list = append(list, novelsrc.TitleFilter{Key: f.Key, Name: f.Name})
		case "sort":
			list = append(list, novelsrc.SortFilter{Key: f.Key, Name: f.Name, Options: options, Selected: f.Selected})
		case "select":
			list = append(list, novelsrc.SelectFilter{Key: f.Key, Name: f.Name, Options: options, Selected: f.Selected})
		case "group", "checkbox":
			checks := make([]novelsrc.CheckFilter, 0, len(f.Options))
			for _, o := range f.Options {
				checks = append(checks, novelsrc.CheckFilter{Name: o.Label, Value: o.Value, Checked: o.Checked})
			}
			list = append(list, novelsrc.GroupFilter{Key: f.Key, Name: f.Name, Sep: f.Sep, Filters: checks})
		default:
			return nil, novelsrc.Errorf(novelsrc.EINVALID, "source %q: filter %q has unknown type %q", s.ID, f.Name, f.Type)
		}
	}
	return list, nil
}
