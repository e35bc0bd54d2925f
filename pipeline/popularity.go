package pipeline

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/litcrawl"
	litquery "github.com/fwojciec/litcrawl/goquery"
)

// PopularityTracker counts in-domain link targets of every page that
// reaches it, whether or not the page is accepted later.
type PopularityTracker struct {
	table  litcrawl.PopularityTable
	domain string
}

// NewPopularityTracker creates a tracker counting links into domain.
func NewPopularityTracker(table litcrawl.PopularityTable, domain string) *PopularityTracker {
	return &PopularityTracker{table: table, domain: domain}
}

// Name returns the stage identifier.
func (t *PopularityTracker) Name() string { return "popularity" }

// Run records the page's outbound links. It never rejects.
func (t *PopularityTracker) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	t.Observe(doc.DOM, doc.URL)
	return litcrawl.ReasonNone, nil
}

// Observe increments the counter of each distinct in-domain link target
// of dom, resolved against base.
func (t *PopularityTracker) Observe(dom *goquery.Document, base *url.URL) {
	for _, u := range litquery.ResolveLinks(dom, base) {
		if litcrawl.MatchesDomain(u.Hostname(), t.domain) {
			t.table.Increment(u.String())
		}
	}
}
