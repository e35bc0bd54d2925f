package mock

import (
	"context"

	"github.com/fwojciec/litcrawl"
)

var _ litcrawl.ArticleProcessor = (*ArticleProcessor)(nil)

// ArticleProcessor is a mock implementation of litcrawl.ArticleProcessor.
type ArticleProcessor struct {
	ProcessFn func(ctx context.Context, page *litcrawl.Page) (litcrawl.Verdict, error)
}

func (p *ArticleProcessor) Process(ctx context.Context, page *litcrawl.Page) (litcrawl.Verdict, error) {
	return p.ProcessFn(ctx, page)
}

var _ litcrawl.HostLocator = (*HostLocator)(nil)

// HostLocator is a mock implementation of litcrawl.HostLocator.
type HostLocator struct {
	LocateHostFn func(ctx context.Context, host string) (*litcrawl.Location, error)
}

func (l *HostLocator) LocateHost(ctx context.Context, host string) (*litcrawl.Location, error) {
	return l.LocateHostFn(ctx, host)
}

var _ litcrawl.LanguageClassifier = (*LanguageClassifier)(nil)

// LanguageClassifier is a mock implementation of litcrawl.LanguageClassifier.
type LanguageClassifier struct {
	ClassifyFn func(ctx context.Context, text string) (string, error)
}

func (c *LanguageClassifier) Classify(ctx context.Context, text string) (string, error) {
	return c.ClassifyFn(ctx, text)
}

var _ litcrawl.PopularityTable = (*PopularityTable)(nil)

// PopularityTable is a mock implementation of litcrawl.PopularityTable.
type PopularityTable struct {
	IncrementFn func(url string) int
	CountFn     func(url string) int
}

func (t *PopularityTable) Increment(url string) int {
	return t.IncrementFn(url)
}

func (t *PopularityTable) Count(url string) int {
	return t.CountFn(url)
}
