package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/novelsrc"
)

// FetchFunc performs one fetch attempt.
type FetchFunc func(ctx context.Context, req *novelsrc.Request) (string, error)

// LogFunc receives progress lines in fmt.Printf form.
type LogFunc func(format string, args ...any)

// maxRetryAfter caps the wait a server may impose through Retry-After.
const maxRetryAfter = 30 * time.Second

// DefaultRetryDelays returns the waits before the second, third and fourth
// attempt of a fetch.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
}

// Retry runs fetch until it succeeds, fails permanently or the delays run
// out, making len(delays)+1 attempts at most. A response status that will
// not change on its own, such as 404 or 403, is returned without retrying.
// A Retry-After hint longer than the scheduled delay replaces it.
func Retry(ctx context.Context, req *novelsrc.Request, fetch FetchFunc, logf LogFunc, delays []time.Duration) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, req)
		if err == nil {
			return html, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if attempt >= len(delays) || !retryable(err) {
			return "", err
		}

		wait := delays[attempt]
		var statusErr *novelsrc.StatusError
		if errors.As(err, &statusErr) && statusErr.RetryAfter > wait {
			wait = min(statusErr.RetryAfter, maxRetryAfter)
		}
		if logf != nil {
			logf("  retry %s in %s (attempt %d): %v", req.URL, wait, attempt+2, err)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *novelsrc.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
