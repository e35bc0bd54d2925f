package crawl

import (
	"container/heap"
	"sync"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/bloom"
)

// Compile-time interface verification.
var _ litcrawl.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with priority queue and Bloom filter deduplication.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.SeenSet
	queue *linkHeap
	seq   uint64
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewSeenSet(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier.
// Returns false if the URL has already been seen.
// URLs differing only by fragment are considered duplicates.
func (f *Frontier) Push(link litcrawl.DiscoveredLink) bool {
	link.URL = litcrawl.CanonicalURL(link.URL)

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.seen.Visit(link.URL) {
		return false
	}
	f.seq++
	heap.Push(f.queue, queuedLink{DiscoveredLink: link, seq: f.seq})
	return true
}

// Pop returns the next link: highest priority first, then shallowest,
// then in insertion order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (litcrawl.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.queue.Len() == 0 {
		return litcrawl.DiscoveredLink{}, false
	}
	item, _ := heap.Pop(f.queue).(queuedLink)
	return item.DiscoveredLink, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	return f.seen.Seen(litcrawl.CanonicalURL(rawURL))
}

// queuedLink carries the insertion sequence used to break ties.
type queuedLink struct {
	litcrawl.DiscoveredLink
	seq uint64
}

// linkHeap implements heap.Interface for the frontier priority queue.
type linkHeap []queuedLink

func (h linkHeap) Len() int { return len(h) }

func (h linkHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	if h[i].Depth != h[j].Depth {
		return h[i].Depth < h[j].Depth
	}
	return h[i].seq < h[j].seq
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	link, _ := x.(queuedLink)
	*h = append(*h, link)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
