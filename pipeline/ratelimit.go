package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/novelsrc"
	"golang.org/x/time/rate"
)

var _ novelsrc.RateGovernor = (*Governor)(nil)

// Limit allows Permits requests per Period.
type Limit struct {
	Permits int
	Period  time.Duration
}

// Unlimited reports whether the limit throttles nothing.
func (l Limit) Unlimited() bool {
	return l.Permits <= 0 || l.Period <= 0
}

func (l Limit) newLimiter() *rate.Limiter {
	if l.Unlimited() {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(l.Period/time.Duration(l.Permits)), l.Permits)
}

// Governor provides per-source rate limiting using token buckets.
// It creates a separate limiter for each source on first use, allowing
// concurrent requests to different sources while enforcing each source's
// configured (permits, period) pair.
type Governor struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limits   map[string]Limit
	fallback Limit
}

// NewGovernor creates a Governor applying fallback to sources without
// their own limit.
func NewGovernor(fallback Limit) *Governor {
	return &Governor{
		limiters: make(map[string]*rate.Limiter),
		limits:   make(map[string]Limit),
		fallback: fallback,
	}
}

// SetLimit configures the limit of a source, replacing any bucket it had.
func (g *Governor) SetLimit(sourceID string, limit Limit) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.limits[sourceID] = limit
	delete(g.limiters, sourceID)
}

// Wait blocks until the rate limit allows a request to the source.
// Returns an error if the context is canceled before the wait completes.
func (g *Governor) Wait(ctx context.Context, sourceID string) error {
	g.mu.Lock()
	limiter, ok := g.limiters[sourceID]
	if !ok {
		limit, ok := g.limits[sourceID]
		if !ok {
			limit = g.fallback
		}
		limiter = limit.newLimiter()
		g.limiters[sourceID] = limiter
	}
	g.mu.Unlock()

	return limiter.Wait(ctx)
}

// Close drops every bucket. The Governor stays usable and starts fresh.
func (g *Governor) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.limiters)
	return nil
}
