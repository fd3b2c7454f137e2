package novelsrc

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Request describes an outbound page request.
type Request struct {
	// Method defaults to GET, or POST when Form is set.
	Method string
	URL    string
	Header map[string]string

	// Form is sent form-encoded in the request body.
	Form map[string]string
}

// HTTPMethod returns the effective method of the request.
func (r *Request) HTTPMethod() string {
	if r.Method != "" {
		return strings.ToUpper(r.Method)
	}
	if len(r.Form) > 0 {
		return http.MethodPost
	}
	return http.MethodGet
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int

	// RetryAfter is the wait the server asked for, zero if none.
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d for %s", e.StatusCode, e.URL)
}

// Temporary reports whether the same request may succeed later. Rate
// limits, timeouts and server errors are temporary; a missing or
// forbidden page is not.
func (e *StatusError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	}
	return e.StatusCode >= 500
}

// Fetcher retrieves HTML for requests.
type Fetcher interface {
	// Fetch performs the request and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, req *Request) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Renderer retrieves HTML after executing the page's JavaScript.
// Renders are expensive; implementations run at most one at a time.
type Renderer interface {
	Render(ctx context.Context, url string) (html string, err error)
	Close() error
}

// RateGovernor throttles outbound requests per source.
type RateGovernor interface {
	// Wait blocks until the source may issue another request.
	// Returns an error only if the context is canceled.
	Wait(ctx context.Context, sourceID string) error
}
