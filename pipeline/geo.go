package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fwojciec/litcrawl"
)

// GeoGate rejects pages whose server is outside the allowed country.
// Any lookup failure rejects the page.
type GeoGate struct {
	locator litcrawl.HostLocator
	allowed string
	logger  *slog.Logger
}

// NewGeoGate creates a gate accepting hosts located in allowed, given as
// an English country name or an ISO code.
func NewGeoGate(locator litcrawl.HostLocator, allowed string, logger *slog.Logger) *GeoGate {
	return &GeoGate{
		locator: locator,
		allowed: strings.TrimSpace(allowed),
		logger:  logger,
	}
}

// Name returns the stage identifier.
func (g *GeoGate) Name() string { return "geo" }

// Run locates the page's host. Only a canceled context is returned as an
// error; every other failure is a wrong_location rejection.
func (g *GeoGate) Run(ctx context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	host := doc.URL.Hostname()
	loc, err := g.locator.LocateHost(ctx, host)
	if err != nil {
		if ctx.Err() != nil {
			return litcrawl.ReasonNone, ctx.Err()
		}
		g.logger.Error("host location failed",
			"url", doc.Page.URL,
			"host", host,
			"err", err,
		)
		return litcrawl.ReasonWrongLocation, nil
	}

	if !strings.EqualFold(loc.Country, g.allowed) && !strings.EqualFold(loc.CountryCode, g.allowed) {
		g.logger.Debug("host outside allowed location",
			"url", doc.Page.URL,
			"ip", loc.IP,
			"country", loc.Country,
			"allowed", g.allowed,
		)
		return litcrawl.ReasonWrongLocation, nil
	}
	return litcrawl.ReasonNone, nil
}
