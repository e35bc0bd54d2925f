// Package bloom provides the crawl's seen-URL set backed by a Bloom filter.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is used when a caller passes a non-positive rate.
const DefaultFalsePositiveRate = 0.001

// SeenSet records canonical URLs the crawl has queued or fetched.
// A false positive skips a URL that was never visited; a URL once added
// is always reported as seen. Safe for concurrent use.
type SeenSet struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
	n  uint
}

// NewSeenSet creates a set sized for capacity URLs.
func NewSeenSet(capacity uint, fpRate float64) *SeenSet {
	if capacity == 0 {
		capacity = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &SeenSet{f: bloom.NewWithEstimates(capacity, fpRate)}
}

// Visit marks url as seen and reports whether it was new.
func (s *SeenSet) Visit(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.f.TestOrAddString(url) {
		return false
	}
	s.n++
	return true
}

// Seen reports whether url may have been visited.
func (s *SeenSet) Seen(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestString(url)
}

// Len returns the number of URLs that Visit accepted as new.
func (s *SeenSet) Len() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
