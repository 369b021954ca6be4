// Package bloom provides content id deduplication using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/madara"
)

var _ madara.Deduplicator = (*Filter)(nil)

// Filter wraps a Bloom filter for id deduplication. It is not safe for
// concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected ids
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records id and reports whether it might have been recorded before.
// False positives are possible; false negatives are not.
func (f *Filter) Seen(id string) bool {
	return f.f.TestAndAddString(id)
}

// Test reports whether id might have been recorded, without recording it.
func (f *Filter) Test(id string) bool {
	return f.f.TestString(id)
}

// EstimatedCount returns the approximate number of ids in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
