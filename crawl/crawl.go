// Package crawl provides the crawl engine: it walks the allowed domain from
// a start URL, hands every fetched page to the article processor and stores
// the accepted articles.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/litcrawl"
	"github.com/google/uuid"
)

// Frontier sizing for the seen-URL filter.
const (
	// frontierLinksPerPage estimates distinct links discovered per page.
	frontierLinksPerPage = 50
	// frontierMinExpectedURLs is the smallest expected URL count.
	frontierMinExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for deduplication.
	frontierFalsePositiveRate = 0.001
	// defaultConcurrency is used when Concurrency is not set.
	defaultConcurrency = 16
)

// Crawler orchestrates a crawl run.
type Crawler struct {
	Fetcher      litcrawl.Fetcher
	Processor    litcrawl.ArticleProcessor
	Articles     litcrawl.ArticleWriter
	LinkSelector litcrawl.LinkSelector
	RateLimiter  litcrawl.DomainLimiter

	// Robots, if set, is consulted before every fetch.
	Robots litcrawl.RobotsPolicy

	Logger *slog.Logger

	// MaxDepth bounds link hops from the start URL. Zero means unlimited.
	MaxDepth int
	// MaxPages bounds the number of URLs fetched. Zero means unlimited.
	MaxPages    int
	Concurrency int
}

// Result holds the outcome of a crawl run.
type Result struct {
	RunID         string
	Fetched       int
	Accepted      int
	Failed        int
	RobotsBlocked int
	Rejected      map[litcrawl.RejectionReason]int
}

// RejectedTotal returns the number of pages rejected for any reason.
func (r *Result) RejectedTotal() int {
	n := 0
	for _, c := range r.Rejected {
		n += c
	}
	return n
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	URL       string
	Reason    litcrawl.RejectionReason
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressAccepted ProgressType = iota
	ProgressRejected
	ProgressFailed
	ProgressBlocked
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl walks from startURL until the frontier is exhausted or a bound is
// reached. The progress callback, if provided, receives an event per URL.
// A processor error aborts the run and is returned with the partial result.
func (c *Crawler) Crawl(ctx context.Context, startURL string, progress ProgressFunc) (*Result, error) {
	seed, err := url.Parse(startURL)
	if err != nil || seed.Host == "" {
		return nil, litcrawl.Errorf(litcrawl.EINVALID, "invalid start URL %q", startURL)
	}

	result := &Result{
		RunID:    uuid.NewString(),
		Rejected: make(map[litcrawl.RejectionReason]int),
	}
	logger := c.logger().With("run", result.RunID)
	logger.Info("crawl started", "url", startURL, "max_depth", c.MaxDepth, "max_pages", c.MaxPages)

	err = c.walk(ctx, litcrawl.CanonicalURL(startURL), logger, func(res *pageResult) {
		c.record(ctx, res, result, logger, progress)
	})

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: result.Fetched})
	}
	logger.Info("crawl finished",
		"fetched", result.Fetched,
		"accepted", result.Accepted,
		"rejected", result.RejectedTotal(),
		"failed", result.Failed,
		"robots_blocked", result.RobotsBlocked,
		"err", err,
	)
	if err != nil {
		return result, fmt.Errorf("crawl %s: %w", startURL, err)
	}
	return result, nil
}

// pageResult holds the outcome of visiting a single URL.
type pageResult struct {
	url        string
	blocked    bool
	verdict    litcrawl.Verdict
	discovered []litcrawl.DiscoveredLink
	err        error
}

// record folds a page outcome into the run result and stores accepted
// articles.
func (c *Crawler) record(ctx context.Context, res *pageResult, result *Result, logger *slog.Logger, progress ProgressFunc) {
	event := ProgressEvent{URL: res.url}

	switch {
	case res.blocked:
		result.RobotsBlocked++
		event.Type = ProgressBlocked
		logger.Debug("blocked by robots.txt", "url", res.url)
	case res.err != nil:
		result.Failed++
		event.Type = ProgressFailed
		event.Error = res.err
		logger.Warn("fetch failed", "url", res.url, "err", res.err)
	case res.verdict.Accepted():
		result.Fetched++
		if err := c.Articles.UpsertArticle(ctx, res.verdict.Article); err != nil {
			result.Failed++
			event.Type = ProgressFailed
			event.Error = err
			logger.Error("store article failed", "url", res.url, "err", err)
			break
		}
		result.Accepted++
		event.Type = ProgressAccepted
	default:
		result.Fetched++
		result.Rejected[res.verdict.Reason]++
		event.Type = ProgressRejected
		event.Reason = res.verdict.Reason
	}

	event.Completed = result.Fetched
	if progress != nil {
		progress(event)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
