package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	req := &novelsrc.Request{URL: "https://example.com/novel/a/"}

	// failing returns a fetch that fails with err and counts its calls.
	failing := func(err error, calls *int) pipeline.FetchFunc {
		return func(context.Context, *novelsrc.Request) (string, error) {
			*calls++
			return "", err
		}
	}

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := pipeline.Retry(context.Background(), req,
			func(context.Context, *novelsrc.Request) (string, error) {
				calls++
				return "<html/>", nil
			}, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html/>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries server errors and logs each attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var logs []string
		unavailable := &novelsrc.StatusError{URL: req.URL, StatusCode: 503}
		_, err := pipeline.Retry(context.Background(), req,
			failing(unavailable, &calls),
			func(format string, args ...any) { logs = append(logs, fmt.Sprintf(format, args...)) },
			[]time.Duration{0, 0})

		assert.ErrorIs(t, err, unavailable)
		assert.Equal(t, 3, calls)
		require.Len(t, logs, 2)
		assert.Contains(t, logs[0], "attempt 2")
	})

	t.Run("retries network errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := pipeline.Retry(context.Background(), req,
			failing(errors.New("connection reset"), &calls), nil, []time.Duration{0})

		assert.EqualError(t, err, "connection reset")
		assert.Equal(t, 2, calls)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := pipeline.Retry(context.Background(), req,
			failing(&novelsrc.StatusError{URL: req.URL, StatusCode: 404}, &calls), nil, []time.Duration{0, 0})

		var statusErr *novelsrc.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 404, statusErr.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries rate limits", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, err := pipeline.Retry(context.Background(), req,
			func(context.Context, *novelsrc.Request) (string, error) {
				calls++
				if calls == 1 {
					return "", &novelsrc.StatusError{URL: req.URL, StatusCode: 429}
				}
				return "<html/>", nil
			}, nil, []time.Duration{0})

		require.NoError(t, err)
		assert.Equal(t, "<html/>", html)
		assert.Equal(t, 2, calls)
	})

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := pipeline.Retry(ctx, req,
			func(context.Context, *novelsrc.Request) (string, error) {
				calls++
				cancel()
				return "", errors.New("timeout")
			}, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops while waiting when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		calls := 0
		_, err := pipeline.Retry(ctx, req,
			failing(errors.New("timeout"), &calls), nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, calls)
	})
}

func TestStatusError_Temporary(t *testing.T) {
	t.Parallel()

	for code, want := range map[int]bool{
		403: false,
		404: false,
		408: true,
		429: true,
		500: true,
		503: true,
	} {
		err := &novelsrc.StatusError{StatusCode: code}
		assert.Equal(t, want, err.Temporary(), "status %d", code)
	}
}
