package crawl

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/litcrawl"
)

// popularityShards is the number of independently locked partitions.
const popularityShards = 64

// Compile-time interface verification.
var _ litcrawl.PopularityTable = (*PopularityTable)(nil)

// PopularityTable counts link observations per URL. Keys are partitioned
// across mutex-guarded shards by hash so that concurrent pages rarely
// contend. Counts only grow and are never reset.
type PopularityTable struct {
	shards [popularityShards]popularityShard
}

type popularityShard struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewPopularityTable creates an empty table.
func NewPopularityTable() *PopularityTable {
	t := &PopularityTable{}
	for i := range t.shards {
		t.shards[i].counts = make(map[string]int)
	}
	return t
}

// Increment adds one observation for url and returns the new count.
func (t *PopularityTable) Increment(url string) int {
	s := t.shard(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[url]++
	return s.counts[url]
}

// Count returns the number of observations for url.
func (t *PopularityTable) Count(url string) int {
	s := t.shard(url)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[url]
}

// Len returns the number of distinct URLs observed.
func (t *PopularityTable) Len() int {
	n := 0
	for i := range t.shards {
		s := &t.shards[i]
		s.mu.Lock()
		n += len(s.counts)
		s.mu.Unlock()
	}
	return n
}

func (t *PopularityTable) shard(url string) *popularityShard {
	return &t.shards[xxhash.Sum64String(url)%popularityShards]
}
