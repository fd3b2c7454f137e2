//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/fwojciec/novelsrc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Renderer implements novelsrc.Renderer.
var _ novelsrc.Renderer = (*rod.Renderer)(nil)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("returns chapter list filled in by javascript", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body>
<ul id="chapters"><li>Loading...</li></ul>
<script>
document.getElementById('chapters').innerHTML =
  '<li class="wp-manga-chapter"><a href="/novel/a/chapter-1/">Chapter 1</a></li>';
</script>
</body></html>`))
		}))
		defer srv.Close()

		r, err := rod.NewRenderer()
		require.NoError(t, err)
		defer r.Close()

		html, err := r.Render(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, `class="wp-manga-chapter"`)
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		r, err := rod.NewRenderer()
		require.NoError(t, err)
		defer r.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = r.Render(ctx, "http://example.com")

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("times out on slow pages", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
		}))
		defer srv.Close()

		r, err := rod.NewRenderer(rod.WithRenderTimeout(100 * time.Millisecond))
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Render(context.Background(), srv.URL)

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns invalid error after close", func(t *testing.T) {
		t.Parallel()

		r, err := rod.NewRenderer()
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.NoError(t, r.Close())

		_, err = r.Render(context.Background(), "http://example.com")

		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
		assert.Contains(t, novelsrc.ErrorMessage(err), "closed")
	})
}
