// Package slog provides logging decorators for litcrawl services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/litcrawl"
)

// Ensure LoggingFetcher implements litcrawl.Fetcher.
var _ litcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   litcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next litcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the request.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *litcrawl.Page, err error) {
	defer func(begin time.Time) {
		var status, size int
		if page != nil {
			status, size = page.StatusCode, len(page.Body)
		}
		f.logger.Debug("fetch",
			"url", url,
			"status", status,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}
