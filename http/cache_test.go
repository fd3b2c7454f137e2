package http_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	novelhttp "github.com/fwojciec/novelsrc/http"
	"github.com/fwojciec/novelsrc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingFetcher(t *testing.T) {
	t.Parallel()

	newCounting := func() (*mock.Fetcher, *int) {
		calls := 0
		return &mock.Fetcher{
			FetchFn: func(_ context.Context, req *novelsrc.Request) (string, error) {
				calls++
				return req.URL, nil
			},
			CloseFn: func() error { return nil },
		}, &calls
	}

	t.Run("serves repeated requests from cache", func(t *testing.T) {
		t.Parallel()

		next, calls := newCounting()
		c := novelhttp.NewCachingFetcher(next)

		for range 3 {
			body, err := c.Fetch(context.Background(), &novelsrc.Request{URL: "https://example.com/novel/a/"})
			require.NoError(t, err)
			assert.Equal(t, "https://example.com/novel/a/", body)
		}
		assert.Equal(t, 1, *calls)
	})

	t.Run("keys by method and form", func(t *testing.T) {
		t.Parallel()

		next, calls := newCounting()
		c := novelhttp.NewCachingFetcher(next)
		ctx := context.Background()

		_, _ = c.Fetch(ctx, &novelsrc.Request{URL: "https://example.com/ajax"})
		_, _ = c.Fetch(ctx, &novelsrc.Request{URL: "https://example.com/ajax", Form: map[string]string{"p": "1"}})
		_, _ = c.Fetch(ctx, &novelsrc.Request{URL: "https://example.com/ajax", Form: map[string]string{"p": "2"}})
		_, _ = c.Fetch(ctx, &novelsrc.Request{URL: "https://example.com/ajax", Form: map[string]string{"p": "2"}})

		assert.Equal(t, 3, *calls)
	})

	t.Run("refetches after ttl", func(t *testing.T) {
		t.Parallel()

		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		next, calls := newCounting()
		c := novelhttp.NewCachingFetcher(next,
			novelhttp.WithTTL(time.Minute),
			novelhttp.WithClock(func() time.Time { return now }),
		)
		req := &novelsrc.Request{URL: "https://example.com/"}

		_, _ = c.Fetch(context.Background(), req)
		now = now.Add(30 * time.Second)
		_, _ = c.Fetch(context.Background(), req)
		now = now.Add(time.Minute)
		_, _ = c.Fetch(context.Background(), req)

		assert.Equal(t, 2, *calls)
	})

	t.Run("does not cache failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		c := novelhttp.NewCachingFetcher(&mock.Fetcher{
			FetchFn: func(context.Context, *novelsrc.Request) (string, error) {
				calls++
				if calls == 1 {
					return "", errors.New("HTTP 503")
				}
				return "ok", nil
			},
		})
		req := &novelsrc.Request{URL: "https://example.com/"}

		_, err := c.Fetch(context.Background(), req)
		require.Error(t, err)
		body, err := c.Fetch(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "ok", body)
	})

	t.Run("close closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		closed := false
		c := novelhttp.NewCachingFetcher(&mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		})

		require.NoError(t, c.Close())
		assert.True(t, closed)
	})
}
