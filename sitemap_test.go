package novelsrc_test

import (
	"testing"
	"time"

	"github.com/fwojciec/novelsrc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURLFilter_Match(t *testing.T) {
	t.Parallel()

	f, err := novelsrc.CompileURLFilter([]string{`/novel/`, `/series/`}, []string{`/chapter-\d+`})
	require.NoError(t, err)

	assert.True(t, f.Match("https://example.com/novel/martial-peak/"))
	assert.True(t, f.Match("https://example.com/series/solo-leveling/"))
	assert.False(t, f.Match("https://example.com/tag/action/"))
	assert.False(t, f.Match("https://example.com/novel/martial-peak/chapter-12/"))

	var nilFilter *novelsrc.URLFilter
	assert.True(t, nilFilter.Match("https://example.com/anything"))
}

func TestURLFilter_Fresh(t *testing.T) {
	t.Parallel()

	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f := &novelsrc.URLFilter{Since: since}

	assert.True(t, f.Fresh(since))
	assert.True(t, f.Fresh(since.Add(time.Hour)))
	assert.False(t, f.Fresh(since.Add(-time.Hour)))
	assert.True(t, f.Fresh(time.Time{}))
	assert.True(t, (&novelsrc.URLFilter{}).Fresh(since.Add(-time.Hour)))
}

func TestCompileURLFilter(t *testing.T) {
	t.Parallel()

	t.Run("returns nil without patterns", func(t *testing.T) {
		t.Parallel()

		f, err := novelsrc.CompileURLFilter(nil, nil)

		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("rejects bad exclude pattern", func(t *testing.T) {
		t.Parallel()

		_, err := novelsrc.CompileURLFilter(nil, []string{"[a-"})

		require.Error(t, err)
		assert.Equal(t, novelsrc.EINVALID, novelsrc.ErrorCode(err))
		assert.Contains(t, novelsrc.ErrorMessage(err), "exclude")
	})
}
