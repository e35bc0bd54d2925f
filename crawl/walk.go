package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/litcrawl"
	"golang.org/x/sync/errgroup"
)

// walk runs the frontier from seedURL with a pool of workers. Workers
// fetch and process pages; the coordinator owns the frontier, dispatches
// work within the page budget and hands each outcome to handle.
// A worker error cancels the remaining work and is returned.
func (c *Crawler) walk(ctx context.Context, seedURL string, logger *slog.Logger, handle func(res *pageResult)) error {
	expected := uint(frontierMinExpectedURLs)
	if c.MaxPages > 0 {
		expected = max(expected, uint(c.MaxPages*frontierLinksPerPage))
	}
	frontier := NewFrontier(expected, frontierFalsePositiveRate)
	frontier.Push(litcrawl.DiscoveredLink{
		URL:      seedURL,
		Priority: litcrawl.PrioritySeed,
	})

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	workCh := make(chan litcrawl.DiscoveredLink)
	resultCh := make(chan pageResult)

	for range concurrency {
		g.Go(func() error {
			for link := range workCh {
				res, err := c.visit(gctx, link, link.URL == seedURL, logger)
				if err != nil {
					return err
				}
				select {
				case resultCh <- res:
				case <-gctx.Done():
					return nil
				}
			}
			return nil
		})
	}

	// Coordinator loop
	dispatched := 0 // URLs handed to workers
	pending := 0    // URLs currently being processed
	var next litcrawl.DiscoveredLink
	hasNext := false

coordinatorLoop:
	for {
		if !hasNext && c.withinBudget(dispatched) {
			next, hasNext = frontier.Pop()
		}
		if !hasNext && pending == 0 {
			break coordinatorLoop
		}

		// A nil channel disables the send case while nothing is queued.
		var work chan<- litcrawl.DiscoveredLink
		if hasNext {
			work = workCh
		}

		select {
		case <-gctx.Done():
			break coordinatorLoop
		case work <- next:
			dispatched++
			pending++
			hasNext = false
		case res := <-resultCh:
			pending--
			handle(&res)
			for _, link := range res.discovered {
				frontier.Push(link)
			}
		}
	}

	close(workCh)
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (c *Crawler) withinBudget(dispatched int) bool {
	return c.MaxPages <= 0 || dispatched < c.MaxPages
}

// visit fetches and processes a single URL. Fetch failures are reported
// in the result; only processor errors are returned.
func (c *Crawler) visit(ctx context.Context, link litcrawl.DiscoveredLink, seed bool, logger *slog.Logger) (pageResult, error) {
	res := pageResult{url: link.URL}

	if c.Robots != nil && !c.Robots.Allowed(ctx, link.URL) {
		res.blocked = true
		return res, nil
	}

	u, err := url.Parse(link.URL)
	if err != nil {
		res.err = err
		return res, nil
	}

	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, u.Hostname()); err != nil {
			res.err = err
			return res, nil
		}
	}

	page, err := c.Fetcher.Fetch(ctx, link.URL)
	if err != nil {
		res.err = err
		return res, nil
	}
	page.Seed = seed

	verdict, err := c.Processor.Process(ctx, page)
	if err != nil {
		return res, fmt.Errorf("process %s: %w", link.URL, err)
	}
	res.verdict = verdict

	if !isSuccess(page.StatusCode) || (c.MaxDepth > 0 && link.Depth >= c.MaxDepth) {
		return res, nil
	}

	links, err := c.LinkSelector.ExtractLinks(string(page.Body), page.URL)
	if err != nil {
		logger.Debug("link extraction failed", "url", page.URL, "err", err)
		return res, nil
	}
	for i := range links {
		links[i].Depth = link.Depth + 1
	}
	res.discovered = links
	return res, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
