package crawl

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/litcrawl"
	"golang.org/x/time/rate"
)

var _ litcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out requests to the same host by a fixed download
// delay. Each host gets its own token bucket with a burst of 1, so
// different hosts are fetched concurrently.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a limiter allowing one request per delay to
// each host. A non-positive delay disables limiting.
func NewDomainLimiter(delay time.Duration) *DomainLimiter {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	domain = strings.ToLower(domain)

	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}
