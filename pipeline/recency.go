package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fwojciec/litcrawl"
)

// publicationDateSelector locates the page's publication date.
const publicationDateSelector = `meta[name="citation_publication_date"]`

// citationLayouts are date forms common in citation metadata. dateparse
// cannot read the year-first ones. A missing day resolves to the first of
// the month.
var citationLayouts = []string{
	"2006 Jan 2",
	"2006 Jan _2",
	"2006 January 2",
	"2006 Jan",
	"2006 January",
	"Jan 2, 2006",
	"January 2, 2006",
}

// RecencyGate rejects pages published outside the recency window.
//
// A missing date rejects the page, but a date that cannot be parsed only
// logs a warning and lets the page through.
type RecencyGate struct {
	maxAgeDays int
	earliest   time.Time
	now        func() time.Time
	logger     *slog.Logger
}

// NewRecencyGate creates a gate accepting pages published within
// maxAgeDays of today and not before earliest. A zero earliest disables
// that check.
func NewRecencyGate(maxAgeDays int, earliest time.Time, now func() time.Time, logger *slog.Logger) *RecencyGate {
	if now == nil {
		now = time.Now
	}
	return &RecencyGate{
		maxAgeDays: maxAgeDays,
		earliest:   earliest,
		now:        now,
		logger:     logger,
	}
}

// Name returns the stage identifier.
func (g *RecencyGate) Name() string { return "recency" }

// Run reads the publication date and passes the raw string forward.
func (g *RecencyGate) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	raw, _ := doc.DOM.Find(publicationDateSelector).First().Attr("content")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return litcrawl.ReasonMissingDate, nil
	}
	doc.Article.PublicationDate = raw

	published, err := ParsePublicationDate(raw)
	if err != nil {
		g.logger.Warn("invalid publication date",
			"url", doc.Page.URL,
			"date", raw,
			"err", err,
		)
		return litcrawl.ReasonNone, nil
	}

	if g.TooOld(published) {
		return litcrawl.ReasonTooOld, nil
	}
	return litcrawl.ReasonNone, nil
}

// ParsePublicationDate parses a citation date in UTC. The citation
// layouts are tried first, then dateparse's format detection.
func ParsePublicationDate(raw string) (time.Time, error) {
	for _, layout := range citationLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return dateparse.ParseIn(raw, time.UTC)
}

// Cutoff returns the earliest accepted publication day.
func (g *RecencyGate) Cutoff() time.Time {
	return startOfDay(g.now().UTC()).AddDate(0, 0, -g.maxAgeDays)
}

// TooOld reports whether a page published at t falls outside the window.
// Comparison is by calendar day and the cutoff day itself is accepted.
func (g *RecencyGate) TooOld(t time.Time) bool {
	day := startOfDay(t)
	if day.Before(g.Cutoff()) {
		return true
	}
	return !g.earliest.IsZero() && day.Before(startOfDay(g.earliest))
}

// startOfDay returns midnight UTC of t's calendar date.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
