// Package bloom provides URL sets fronted by a Bloom filter.
//
// A Bloom filter alone can report false positives, which for a crawler
// means silently skipping pages that were never fetched. Set therefore
// keeps an exact map and uses the filter only as a fast negative check.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is used when NewSet is given a non-positive rate.
const DefaultFalsePositiveRate = 0.01

// Set is an exact set of URLs with a Bloom prefilter.
// It is not safe for concurrent use.
type Set struct {
	filter  *bloom.BloomFilter
	members map[string]struct{}
}

// NewSet creates a set sized for n expected URLs.
func NewSet(n uint, fpRate float64) *Set {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Set{
		filter:  bloom.NewWithEstimates(n, fpRate),
		members: make(map[string]struct{}),
	}
}

// Add inserts url and reports whether it was not already present.
func (s *Set) Add(url string) bool {
	if s.Has(url) {
		return false
	}
	s.filter.AddString(url)
	s.members[url] = struct{}{}
	return true
}

// Has reports whether url is in the set.
func (s *Set) Has(url string) bool {
	if !s.filter.TestString(url) {
		return false
	}
	_, ok := s.members[url]
	return ok
}

// Remove deletes url from the exact set. The filter keeps its bits,
// so a later Has pays for one map lookup.
func (s *Set) Remove(url string) {
	delete(s.members, url)
}

// Len returns the exact number of URLs in the set.
func (s *Set) Len() int {
	return len(s.members)
}

// EstimatedCount returns the filter's approximation of inserted URLs.
func (s *Set) EstimatedCount() uint {
	return uint(s.filter.ApproximatedSize())
}
