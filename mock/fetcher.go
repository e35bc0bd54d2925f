package mock

import (
	"context"

	"github.com/fwojciec/litcrawl"
)

var _ litcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of litcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*litcrawl.Page, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*litcrawl.Page, error) {
	return f.FetchFn(ctx, url)
}

var _ litcrawl.RobotsPolicy = (*RobotsPolicy)(nil)

// RobotsPolicy is a mock implementation of litcrawl.RobotsPolicy.
type RobotsPolicy struct {
	AllowedFn func(ctx context.Context, url string) bool
}

func (p *RobotsPolicy) Allowed(ctx context.Context, url string) bool {
	return p.AllowedFn(ctx, url)
}
