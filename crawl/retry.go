package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/litcrawl"
)

// Compile-time interface verification.
var _ litcrawl.Fetcher = (*RetryFetcher)(nil)

// DefaultRetryDelays returns n backoff delays doubling from one second:
// 1s, 2s, 4s, ...
func DefaultRetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	d := time.Second
	for i := range delays {
		delays[i] = d
		d *= 2
	}
	return delays
}

// RetryFetcher retries transport errors and retryable status codes.
// When every attempt returns a retryable status, the last page is
// returned so that the caller still sees it.
type RetryFetcher struct {
	next   litcrawl.Fetcher
	delays []time.Duration
	codes  map[int]bool
	logger *slog.Logger
}

// NewRetryFetcher wraps next with one retry per delay. Pages with a status
// in codes are retried like transport errors.
func NewRetryFetcher(next litcrawl.Fetcher, delays []time.Duration, codes []int, logger *slog.Logger) *RetryFetcher {
	set := make(map[int]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return &RetryFetcher{next: next, delays: delays, codes: set, logger: logger}
}

// Fetch attempts the URL up to len(delays)+1 times.
func (f *RetryFetcher) Fetch(ctx context.Context, url string) (*litcrawl.Page, error) {
	maxAttempts := len(f.delays) + 1 // 1 initial + N retries

	var (
		page    *litcrawl.Page
		lastErr error
	)
	for attempt := 0; attempt < maxAttempts; attempt++ {
		page, lastErr = f.next.Fetch(ctx, url)
		if lastErr == nil && !f.codes[page.StatusCode] {
			return page, nil
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		status := 0
		if page != nil {
			status = page.StatusCode
		}
		f.logger.Debug("retrying fetch",
			"url", url,
			"attempt", attempt+2,
			"status", status,
			"err", lastErr,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delays[attempt]):
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return page, nil
}
