package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/litcrawl"
)

// Ensure LoggingProcessor implements litcrawl.ArticleProcessor.
var _ litcrawl.ArticleProcessor = (*LoggingProcessor)(nil)

// LoggingProcessor wraps an ArticleProcessor and logs every verdict.
type LoggingProcessor struct {
	next   litcrawl.ArticleProcessor
	logger *slog.Logger
}

// NewLoggingProcessor creates a new LoggingProcessor.
func NewLoggingProcessor(next litcrawl.ArticleProcessor, logger *slog.Logger) *LoggingProcessor {
	return &LoggingProcessor{next: next, logger: logger}
}

// Process delegates to the wrapped processor. Accepted pages are logged at
// Info, rejections at Debug and errors at Error.
func (p *LoggingProcessor) Process(ctx context.Context, page *litcrawl.Page) (verdict litcrawl.Verdict, err error) {
	defer func(begin time.Time) {
		level := slog.LevelDebug
		switch {
		case err != nil:
			level = slog.LevelError
		case verdict.Accepted():
			level = slog.LevelInfo
		}
		p.logger.Log(ctx, level, "process",
			"url", page.URL,
			"accepted", verdict.Accepted(),
			"reason", string(verdict.Reason),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Process(ctx, page)
}
