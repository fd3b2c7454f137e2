// Package bloom provides manga and chapter key deduplication using Bloom filters.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter wraps a Bloom filter for key deduplication. Keys differing only
// by fragment or a trailing slash are the same key.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected keys
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds a key to the filter.
func (f *Filter) Add(key string) {
	f.f.AddString(normalize(key))
}

// Test returns true if the key might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(normalize(key))
}

// Seen reports whether key might have been added before and adds it.
func (f *Filter) Seen(key string) bool {
	return f.f.TestAndAddString(normalize(key))
}

// EstimatedCount returns the approximate number of keys in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func normalize(key string) string {
	if i := strings.IndexByte(key, '#'); i != -1 {
		key = key[:i]
	}
	return strings.TrimSuffix(key, "/")
}
