package http

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/novelsrc"
)

// DefaultCacheTTL is how long a cached response stays fresh.
const DefaultCacheTTL = 2 * time.Minute

var _ novelsrc.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher serves repeated requests from memory for a short time.
// Detail and chapter phases often load the same page back to back.
// Failed fetches are never cached.
type CachingFetcher struct {
	next novelsrc.Fetcher
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[uint64]cacheEntry
}

type cacheEntry struct {
	body    string
	expires time.Time
}

// CacheOption configures a CachingFetcher.
type CacheOption func(*CachingFetcher)

// WithTTL sets how long responses stay cached.
func WithTTL(d time.Duration) CacheOption {
	return func(c *CachingFetcher) {
		c.ttl = d
	}
}

// WithClock replaces the time source. Used in tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *CachingFetcher) {
		c.now = now
	}
}

// NewCachingFetcher wraps next with an in-memory response cache.
func NewCachingFetcher(next novelsrc.Fetcher, opts ...CacheOption) *CachingFetcher {
	c := &CachingFetcher{
		next:    next,
		ttl:     DefaultCacheTTL,
		now:     time.Now,
		entries: make(map[uint64]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns a fresh cached body for req or fetches it.
func (c *CachingFetcher) Fetch(ctx context.Context, req *novelsrc.Request) (string, error) {
	key := cacheKey(req)
	now := c.now()

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && now.Before(e.expires) {
		c.mu.Unlock()
		return e.body, nil
	}
	c.mu.Unlock()

	body, err := c.next.Fetch(ctx, req)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, expires: now.Add(c.ttl)}
	c.evictExpired(now)

	return body, nil
}

func (c *CachingFetcher) evictExpired(now time.Time) {
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
}

// Close drops the cache and closes the wrapped fetcher.
func (c *CachingFetcher) Close() error {
	c.mu.Lock()
	clear(c.entries)
	c.mu.Unlock()
	return c.next.Close()
}

// cacheKey hashes method, URL and the sorted form of req.
func cacheKey(req *novelsrc.Request) uint64 {
	var b strings.Builder
	b.WriteString(req.HTTPMethod())
	b.WriteByte(' ')
	b.WriteString(req.URL)
	for _, k := range slices.Sorted(maps.Keys(req.Form)) {
		b.WriteByte('\n')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(req.Form[k])
	}
	return xxhash.Sum64String(b.String())
}
