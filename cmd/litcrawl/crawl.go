package main

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Crawling %s\n", deps.Config.StartURL)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressAccepted:
			fmt.Fprintf(deps.Stdout, "  [%d] accepted %s\n", event.Completed, event.URL)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.Crawler.Crawl(deps.Ctx, deps.Config.StartURL, progress)
	if result != nil {
		printSummary(deps.Stdout, result)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", litcrawl.ErrorMessage(err))
		return err
	}
	return nil
}

func printSummary(w io.Writer, result *crawl.Result) {
	fmt.Fprintf(w, "\nRun %s\n", result.RunID)
	fmt.Fprintf(w, "  fetched         %d\n", result.Fetched)
	fmt.Fprintf(w, "  accepted        %d\n", result.Accepted)
	fmt.Fprintf(w, "  rejected        %d\n", result.RejectedTotal())
	fmt.Fprintf(w, "  failed          %d\n", result.Failed)
	fmt.Fprintf(w, "  robots blocked  %d\n", result.RobotsBlocked)

	reasons := slices.SortedFunc(maps.Keys(result.Rejected), func(a, b litcrawl.RejectionReason) int {
		return cmp.Or(
			cmp.Compare(result.Rejected[b], result.Rejected[a]),
			cmp.Compare(a, b),
		)
	})
	for _, reason := range reasons {
		fmt.Fprintf(w, "    %-34s %d\n", reason, result.Rejected[reason])
	}
}
