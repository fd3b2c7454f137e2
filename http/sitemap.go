package http

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/novelsrc"
)

// Ensure SitemapService implements novelsrc.SitemapService.
var _ novelsrc.SitemapService = (*SitemapService)(nil)

// wellKnownSitemaps are tried in order when robots.txt names none. WordPress
// core and Yoast publish the index names, and most novel themes run on them.
var wellKnownSitemaps = []string{"/sitemap.xml", "/sitemap_index.xml", "/wp-sitemap.xml"}

// maxSitemapSize bounds a single sitemap document after decompression.
const maxSitemapSize = 50 << 20

// SitemapService discovers title URLs from sitemaps over HTTP.
type SitemapService struct {
	client    *http.Client
	userAgent string
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithSitemapClient sets the HTTP client. Defaults to http.DefaultClient.
func WithSitemapClient(c *http.Client) SitemapOption {
	return func(s *SitemapService) {
		s.client = c
	}
}

// WithSitemapUserAgent sets the User-Agent header. Defaults to DefaultUserAgent.
func WithSitemapUserAgent(ua string) SitemapOption {
	return func(s *SitemapService) {
		s.userAgent = ua
	}
}

// NewSitemapService creates a SitemapService.
func NewSitemapService(opts ...SitemapOption) *SitemapService {
	s := &SitemapService{client: http.DefaultClient, userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs returns the page URLs of the sitemaps of baseURL, in
// document order and without duplicates. It never returns nil on success.
//
// A baseURL with a path, such as https://example.com/novel/, keeps only
// URLs below that path, which is the usual way to keep title pages and drop
// chapter or tag pages. Child sitemaps that fail to load are skipped; only
// a failure of the top-level sitemap is an error.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *novelsrc.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "invalid base URL %q", baseURL)
	}

	w := &sitemapWalk{
		svc:     s,
		filter:  filter,
		prefix:  strings.TrimSuffix(base.Path, "/"),
		visited: make(map[string]bool),
		seen:    make(map[string]bool),
		urls:    []string{},
	}

	root := &url.URL{Scheme: base.Scheme, Host: base.Host}
	for _, sitemapURL := range s.sitemapsFromRobots(ctx, root) {
		if err := w.visit(ctx, sitemapURL, 0); err != nil {
			return nil, err
		}
	}
	if len(w.visited) > 0 {
		return w.urls, nil
	}

	for _, p := range wellKnownSitemaps {
		err := w.visit(ctx, root.JoinPath(p).String(), 0)
		if err == nil {
			return w.urls, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}
	}
	return w.urls, nil
}

// sitemapWalk is the state of one discovery.
type sitemapWalk struct {
	svc     *SitemapService
	filter  *novelsrc.URLFilter
	prefix  string
	visited map[string]bool
	seen    map[string]bool
	urls    []string
}

// visit loads one sitemap document. Errors of nested documents are
// swallowed unless the context is done.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string, depth int) error {
	if w.visited[sitemapURL] {
		return nil
	}
	w.visited[sitemapURL] = true

	root, err := w.svc.load(ctx, sitemapURL)
	if err == nil && root.Tag != "sitemapindex" && root.Tag != "urlset" {
		err = novelsrc.Errorf(novelsrc.EINVALID, "%s is not a sitemap (root element <%s>)", sitemapURL, root.Tag)
	}
	if err != nil {
		if depth > 0 && ctx.Err() == nil {
			return nil
		}
		return err
	}

	switch root.Tag {
	case "sitemapindex":
		for _, entry := range root.SelectElements("sitemap") {
			loc, lastmod := entryFields(entry)
			if loc == "" || isMediaSitemap(loc) || !w.filter.Fresh(lastmod) {
				continue
			}
			if err := w.visit(ctx, loc, depth+1); err != nil {
				return err
			}
		}
	case "urlset":
		for _, entry := range root.SelectElements("url") {
			loc, lastmod := entryFields(entry)
			w.add(loc, lastmod)
		}
	}
	return nil
}

func (w *sitemapWalk) add(loc string, lastmod time.Time) {
	if loc == "" || w.seen[loc] {
		return
	}
	w.seen[loc] = true
	if w.prefix != "" && !underPath(loc, w.prefix) {
		return
	}
	if !w.filter.Match(loc) || !w.filter.Fresh(lastmod) {
		return
	}
	w.urls = append(w.urls, loc)
}

// entryFields reads the <loc> and <lastmod> children of a sitemap entry.
func entryFields(entry *etree.Element) (string, time.Time) {
	var loc string
	if el := entry.SelectElement("loc"); el != nil {
		loc = strings.TrimSpace(el.Text())
	}
	var lastmod time.Time
	if el := entry.SelectElement("lastmod"); el != nil {
		lastmod = parseLastmod(strings.TrimSpace(el.Text()))
	}
	return loc, lastmod
}

// parseLastmod accepts the W3C datetime forms sitemaps use. Unparseable
// values count as unknown.
func parseLastmod(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z07:00", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// underPath reports whether rawURL lies below prefix, respecting segment
// boundaries: /novel matches /novel and /novel/a but not /novels.
func underPath(rawURL, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.TrimSuffix(u.Path, "/")
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

func isMediaSitemap(u string) bool {
	u = strings.ToLower(u)
	for _, kind := range []string{"image-sitemap", "video-sitemap", "news-sitemap"} {
		if strings.Contains(u, kind) {
			return true
		}
	}
	return false
}

// sitemapsFromRobots returns the Sitemap: directives of robots.txt. A
// missing or unreadable robots.txt yields none.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, root *url.URL) []string {
	body, err := s.get(ctx, root.JoinPath("robots.txt").String())
	if err != nil {
		return nil
	}

	var sitemaps []string
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			sitemaps = append(sitemaps, v)
		}
	}
	return sitemaps
}

// load fetches and parses a sitemap document, gunzipping it when the
// payload is still compressed. Servers often send .xml.gz files with a
// gzip Content-Encoding, which the transport has already undone.
func (s *SitemapService) load(ctx context.Context, sitemapURL string) (*etree.Element, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(body, gzipMagic) {
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("opening gzipped sitemap %s: %w", sitemapURL, err)
		}
		defer gz.Close()
		if body, err = io.ReadAll(io.LimitReader(gz, maxSitemapSize)); err != nil {
			return nil, fmt.Errorf("reading gzipped sitemap %s: %w", sitemapURL, err)
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "empty sitemap %s", sitemapURL)
	}
	return root, nil
}

var gzipMagic = []byte{0x1f, 0x8b}

func (s *SitemapService) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, novelsrc.TransportError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &novelsrc.StatusError{URL: target, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxSitemapSize))
}
