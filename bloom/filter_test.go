package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/novelsrc/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/novel/a/"))

	f.Add("https://example.com/novel/a/")

	assert.True(t, f.Test("https://example.com/novel/a/"))
	assert.False(t, f.Test("https://example.com/novel/b/"))
}

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	t.Run("reports first sighting as unseen", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, 0.01)

		assert.False(t, f.Seen("https://example.com/novel/a/"))
		assert.True(t, f.Seen("https://example.com/novel/a/"))
	})

	t.Run("ignores fragments and trailing slashes", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(100, 0.01)
		f.Add("https://example.com/novel/a/")

		assert.True(t, f.Seen("https://example.com/novel/a"))
		assert.True(t, f.Seen("https://example.com/novel/a/#comments"))
	})
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("/novel/a")
	f.Add("/novel/b")
	f.Add("/novel/c")
	f.Add("/novel/c/")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/novel/%d/", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://example.com/chapter/%d/", i)) {
			falsePositives++
		}
	}

	// Allow 3x the configured rate.
	assert.Less(t, float64(falsePositives)/testProbes, fpRate*3)
}
