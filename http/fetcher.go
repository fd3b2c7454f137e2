// Package http provides an HTTP-based implementation of novelsrc.Fetcher
// for sites that serve their listings and chapters without JavaScript,
// plus sitemap discovery and a short-lived response cache.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/novelsrc"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultRenderTimeout.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent is sent unless a request or option overrides it.
// Several novel sites reject Go's default agent outright.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// maxBodySize caps response bodies; chapter index pages can be large
// but never this large.
const maxBodySize = 32 << 20

// Ensure Fetcher implements novelsrc.Fetcher at compile time.
var _ novelsrc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents with plain HTTP requests. Unlike
// rod.Renderer, it does not execute JavaScript. Cookies set by a site
// are kept for later requests, which some sites require between the
// listing and the AJAX chapter endpoint.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	header    map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHeader adds a header sent with every request. Request headers win.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header[key] = value
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		header:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}

	jar, _ := cookiejar.New(nil)
	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// Fetch performs req and returns the decoded body. Requests with a form
// are sent as application/x-www-form-urlencoded POSTs. Non-2xx statuses
// are errors.
func (f *Fetcher) Fetch(ctx context.Context, req *novelsrc.Request) (string, error) {
	httpReq, err := f.newRequest(ctx, req)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &novelsrc.StatusError{
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			RetryAfter: retryAfter(resp.Header.Get("Retry-After")),
		}
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", req.URL, err)
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (f *Fetcher) newRequest(ctx context.Context, req *novelsrc.Request) (*http.Request, error) {
	var body io.Reader
	if len(req.Form) > 0 {
		values := url.Values{}
		for k, v := range req.Form {
			values.Set(k, v)
		}
		body = strings.NewReader(values.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.HTTPMethod(), req.URL, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("User-Agent", f.userAgent)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
		httpReq.Header.Set("X-Requested-With", "XMLHttpRequest")
	}
	for k, v := range f.header {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Header {
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// retryAfter parses a Retry-After header given in seconds. HTTP dates
// are rare on novel sites and count as no hint.
func retryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
