// Package pipeline turns declarative descriptors into a working source:
// it resolves endpoint templates, waits on the rate governor, fetches
// with retry, hands documents to parse strategies and drives pagination.
package pipeline

import (
	"context"
	"maps"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/novelsrc"
)

var _ novelsrc.Source = (*Source)(nil)

// Config is the declarative definition of a source.
type Config struct {
	ID      string
	Name    string
	Lang    string
	BaseURL string

	// Header is sent with every request of the source.
	Header map[string]string

	novelsrc.Descriptors

	Filters   novelsrc.FilterList
	RateLimit Limit
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.ID == "" {
		return novelsrc.Errorf(novelsrc.EINVALID, "source id required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return novelsrc.Errorf(novelsrc.EINVALID, "source %q: base URL %q must be absolute", c.ID, c.BaseURL)
	}
	for i, l := range c.Listings {
		if l.Name == "" {
			return novelsrc.Errorf(novelsrc.EINVALID, "source %q: listing %d has no name", c.ID, i)
		}
	}
	if err := c.Chapters.Validate(); err != nil {
		return novelsrc.Errorf(novelsrc.EINVALID, "source %q: %s", c.ID, novelsrc.ErrorMessage(err))
	}
	return nil
}

// Parse strategies replace the declarative parser for a single phase.
type (
	ListStrategy     func(html, baseURL string, d novelsrc.ExploreDescriptor) novelsrc.ListResult
	DetailStrategy   func(html, baseURL string, d novelsrc.DetailDescriptor) novelsrc.MangaInfo
	ChaptersStrategy func(html, baseURL string, d novelsrc.ChaptersDescriptor) novelsrc.ChapterResult
	ContentStrategy  func(html, baseURL string, d novelsrc.ContentDescriptor) []novelsrc.Page
)

// ChapterFetchStrategy replaces the whole chapter index phase, network
// included. The result is still deduplicated and ordered by the source.
type ChapterFetchStrategy func(ctx context.Context, s *Source, manga novelsrc.MangaInfo, cmds novelsrc.Commands) ([]novelsrc.ChapterInfo, error)

// Source is a novelsrc.Source driven by a Config.
type Source struct {
	cfg     Config
	fetcher novelsrc.Fetcher

	governor    novelsrc.RateGovernor
	retryDelays []time.Duration
	logf        LogFunc

	parseList     ListStrategy
	parseDetail   DetailStrategy
	parseChapters ChaptersStrategy
	parseContent  ContentStrategy
	fetchChapters ChapterFetchStrategy
}

// Option configures a Source.
type Option func(*Source)

// WithGovernor sets the rate governor consulted before every request.
func WithGovernor(g novelsrc.RateGovernor) Option {
	return func(s *Source) {
		s.governor = g
	}
}

// WithRetryDelays sets the backoff between fetch attempts.
// An empty slice disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(s *Source) {
		s.retryDelays = delays
	}
}

// WithLogFunc sets the function receiving retry reports.
func WithLogFunc(fn LogFunc) Option {
	return func(s *Source) {
		s.logf = fn
	}
}

// WithListParser overrides listing and search parsing.
func WithListParser(fn ListStrategy) Option {
	return func(s *Source) {
		s.parseList = fn
	}
}

// WithDetailParser overrides detail parsing.
func WithDetailParser(fn DetailStrategy) Option {
	return func(s *Source) {
		s.parseDetail = fn
	}
}

// WithChaptersParser overrides chapter index parsing.
func WithChaptersParser(fn ChaptersStrategy) Option {
	return func(s *Source) {
		s.parseChapters = fn
	}
}

// WithContentParser overrides chapter content parsing.
func WithContentParser(fn ContentStrategy) Option {
	return func(s *Source) {
		s.parseContent = fn
	}
}

// WithChapterFetcher overrides chapter index fetching entirely.
func WithChapterFetcher(fn ChapterFetchStrategy) Option {
	return func(s *Source) {
		s.fetchChapters = fn
	}
}

// New validates cfg and creates a Source fetching with fetcher and
// parsing with parser unless a phase strategy overrides it.
func New(cfg Config, fetcher novelsrc.Fetcher, parser novelsrc.Parser, opts ...Option) (*Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if fetcher == nil || parser == nil {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "source %q: fetcher and parser required", cfg.ID)
	}

	s := &Source{
		cfg:           cfg,
		fetcher:       fetcher,
		retryDelays:   DefaultRetryDelays(),
		parseList:     parser.ParseList,
		parseDetail:   parser.ParseDetail,
		parseChapters: parser.ParseChapters,
		parseContent:  parser.ParseContent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Source) ID() string      { return s.cfg.ID }
func (s *Source) Name() string    { return s.cfg.Name }
func (s *Source) Lang() string    { return s.cfg.Lang }
func (s *Source) BaseURL() string { return s.cfg.BaseURL }

// Listings returns the names of the browsing views.
func (s *Source) Listings() []string {
	names := make([]string, 0, len(s.cfg.Listings))
	for _, l := range s.cfg.Listings {
		names = append(names, l.Name)
	}
	return names
}

func (s *Source) Filters() novelsrc.FilterList { return s.cfg.Filters }

// GetMangaList fetches one page of a listing or of search results.
func (s *Source) GetMangaList(ctx context.Context, q novelsrc.ListQuery, page int) (*novelsrc.MangaPage, error) {
	d, err := s.explore(q)
	if err != nil {
		return nil, err
	}
	page = max(page, 1)
	if d.MaxPage > 0 && page > d.MaxPage {
		return &novelsrc.MangaPage{Items: []novelsrc.MangaInfo{}}, nil
	}

	items, hasMarker, err := s.listPage(ctx, d, q, page)
	if err != nil {
		return nil, err
	}
	return &novelsrc.MangaPage{
		Items:       items,
		HasNextPage: Advance(page, d.MaxPage, len(items), hasMarker) == StateHasMore,
	}, nil
}

func (s *Source) explore(q novelsrc.ListQuery) (novelsrc.ExploreDescriptor, error) {
	if q.SearchText() != "" || (q.Listing == "" && hasFilterValues(q.Filters)) {
		if s.cfg.Search.Endpoint == "" {
			return novelsrc.ExploreDescriptor{}, novelsrc.Unsupported(s.cfg.ID, "search")
		}
		return s.cfg.Search, nil
	}
	if len(s.cfg.Listings) == 0 {
		return novelsrc.ExploreDescriptor{}, novelsrc.Unsupported(s.cfg.ID, "listings")
	}
	if q.Listing == "" {
		return s.cfg.Listings[0], nil
	}
	for _, l := range s.cfg.Listings {
		if strings.EqualFold(l.Name, q.Listing) {
			return l, nil
		}
	}
	return novelsrc.ExploreDescriptor{}, novelsrc.Errorf(novelsrc.ENOTFOUND, "source %q has no listing %q", s.cfg.ID, q.Listing)
}

func hasFilterValues(filters novelsrc.FilterList) bool {
	for _, v := range filters.Params() {
		if v != "" {
			return true
		}
	}
	return false
}

func (s *Source) listPage(ctx context.Context, d novelsrc.ExploreDescriptor, q novelsrc.ListQuery, page int) ([]novelsrc.MangaInfo, bool, error) {
	params := novelsrc.ListParams(d, page, q.SearchText(), q.Filters)
	u, err := novelsrc.ExpandTemplate(s.cfg.BaseURL, d.Endpoint, params)
	if err != nil {
		return nil, false, err
	}

	html, err := s.fetch(ctx, &novelsrc.Request{
		Method: d.Method,
		URL:    u,
		Form:   novelsrc.ExpandForm(d.Form, params),
	})
	if err != nil {
		return nil, false, err
	}

	res := s.parseList(html, u, d)
	return res.Items, pageMarker(res.HasNextMarker, d.NextPageSelector, d.PageSize, len(res.Items)), nil
}

// pageMarker applies the page size rule to descriptors without a
// next-page selector: a full page means more pages may follow.
func pageMarker(parsed bool, nextSelector string, pageSize, items int) bool {
	if nextSelector == "" && pageSize > 0 {
		return items >= pageSize
	}
	return parsed
}

// GetMangaDetails fetches the detail page of manga, or parses the
// DetailFetch command when one is supplied, and merges the result into
// manga.
func (s *Source) GetMangaDetails(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) (novelsrc.MangaInfo, error) {
	u := s.absolute(manga.Key)
	html, err := s.phaseHTML(ctx, cmds, novelsrc.DetailFetch, &novelsrc.Request{URL: u})
	if err != nil {
		return manga, err
	}
	return manga.Merge(s.parseDetail(html, u, s.cfg.Detail)), nil
}

// GetChapterList returns the chapter index of manga in the configured
// order. A ChapterFetch command replaces the first index page only.
// When a later page fails, the chapters gathered so far are returned
// together with the error.
func (s *Source) GetChapterList(ctx context.Context, manga novelsrc.MangaInfo, cmds novelsrc.Commands) ([]novelsrc.ChapterInfo, error) {
	if s.fetchChapters != nil {
		chapters, err := s.fetchChapters(ctx, s, manga, cmds)
		return s.finishChapters(chapters), err
	}

	d := s.cfg.Chapters
	p := &Paginator[novelsrc.ChapterInfo]{
		MaxPage: d.MaxPage,
		Fetch: func(ctx context.Context, page int) ([]novelsrc.ChapterInfo, bool, error) {
			return s.chapterPage(ctx, d, manga, cmds, page)
		},
	}
	chapters, err := p.Collect(ctx)
	return s.finishChapters(chapters), err
}

func (s *Source) chapterPage(ctx context.Context, d novelsrc.ChaptersDescriptor, manga novelsrc.MangaInfo, cmds novelsrc.Commands, page int) ([]novelsrc.ChapterInfo, bool, error) {
	if page > 1 && !strings.Contains(d.Endpoint, "{page}") && !formHasPage(d.Form) {
		return nil, false, nil
	}

	req, err := s.ChapterRequest(manga, page)
	if err != nil {
		return nil, false, err
	}

	var html string
	if page == 1 {
		html, err = s.phaseHTML(ctx, cmds, novelsrc.ChapterFetch, req)
	} else {
		html, err = s.fetch(ctx, req)
	}
	if err != nil {
		return nil, false, err
	}

	res := s.parseChapters(html, req.URL, d)
	return res.Chapters, pageMarker(res.HasNextMarker, d.NextPageSelector, d.PageSize, len(res.Chapters)), nil
}

func formHasPage(form map[string]string) bool {
	for _, v := range form {
		if strings.Contains(v, "{page}") {
			return true
		}
	}
	return false
}

// ChapterRequest builds the request for one page of the chapter index
// of manga. Without an endpoint the manga page itself is used.
func (s *Source) ChapterRequest(manga novelsrc.MangaInfo, page int) (*novelsrc.Request, error) {
	d := s.cfg.Chapters
	key := s.absolute(manga.Key)
	if d.Endpoint == "" {
		return &novelsrc.Request{Method: d.Method, URL: key}, nil
	}

	params := novelsrc.ChapterParams(d, key, page)
	u, err := novelsrc.ExpandTemplate(s.cfg.BaseURL, d.Endpoint, params)
	if err != nil {
		return nil, err
	}
	return &novelsrc.Request{
		Method: d.Method,
		URL:    u,
		Form:   novelsrc.ExpandForm(d.Form, params),
	}, nil
}

func (s *Source) finishChapters(chapters []novelsrc.ChapterInfo) []novelsrc.ChapterInfo {
	seen := make(map[string]struct{}, len(chapters))
	out := make([]novelsrc.ChapterInfo, 0, len(chapters))
	for _, c := range chapters {
		if c.Key == "" {
			continue
		}
		if _, ok := seen[c.Key]; ok {
			continue
		}
		seen[c.Key] = struct{}{}
		if c.Number <= 0 {
			c.Number = novelsrc.ChapterNumber(c.Name)
		}
		out = append(out, c)
	}
	return s.cfg.Chapters.Order.Apply(out)
}

// GetPageList fetches the content of chapter, or parses the ContentFetch
// command when one is supplied.
func (s *Source) GetPageList(ctx context.Context, chapter novelsrc.ChapterInfo, cmds novelsrc.Commands) ([]novelsrc.Page, error) {
	u := s.absolute(chapter.Key)
	html, err := s.phaseHTML(ctx, cmds, novelsrc.ContentFetch, &novelsrc.Request{URL: u})
	if err != nil {
		return nil, err
	}
	return s.parseContent(html, u, s.cfg.Content), nil
}

// Fetch performs a governed, retried request with the source headers.
// Strategies use it to reach endpoints the descriptors do not describe.
func (s *Source) Fetch(ctx context.Context, req *novelsrc.Request) (string, error) {
	return s.fetch(ctx, req)
}

// phaseHTML returns the command HTML for kind when present and otherwise
// fetches req. A command hit never touches the governor or the network.
func (s *Source) phaseHTML(ctx context.Context, cmds novelsrc.Commands, kind novelsrc.CommandKind, req *novelsrc.Request) (string, error) {
	if html, ok := cmds.HTML(kind); ok {
		return html, nil
	}
	return s.fetch(ctx, req)
}

func (s *Source) fetch(ctx context.Context, req *novelsrc.Request) (string, error) {
	if len(s.cfg.Header) > 0 {
		header := maps.Clone(s.cfg.Header)
		maps.Copy(header, req.Header)
		r := *req
		r.Header = header
		req = &r
	}

	attempt := func(ctx context.Context, req *novelsrc.Request) (string, error) {
		if s.governor != nil {
			if err := s.governor.Wait(ctx, s.cfg.ID); err != nil {
				return "", err
			}
		}
		return s.fetcher.Fetch(ctx, req)
	}

	html, err := Retry(ctx, req, attempt, s.logf, s.retryDelays)
	if err != nil {
		return "", novelsrc.TransportError(req.URL, err)
	}
	return html, nil
}

func (s *Source) absolute(key string) string {
	if u := novelsrc.AbsoluteURL(s.cfg.BaseURL, key); u != "" {
		return u
	}
	return key
}
