// Package pipeline decides whether a fetched page is a qualifying research
// article and extracts its metadata record.
//
// A page runs through an ordered chain of stages. Each stage either passes
// the page on or rejects it with a reason; the first rejection ends the
// chain and no article is produced. Stages share a Document that holds the
// parsed DOM and the article being assembled.
package pipeline

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/litcrawl"
	litquery "github.com/fwojciec/litcrawl/goquery"
)

// Ensure Pipeline implements litcrawl.ArticleProcessor.
var _ litcrawl.ArticleProcessor = (*Pipeline)(nil)

// Document is the per-page state threaded through the stages.
type Document struct {
	Page *litcrawl.Page
	URL  *url.URL
	DOM  *goquery.Document

	// Article accumulates the fields extracted so far.
	Article litcrawl.Article
}

// NewDocument parses a fetched page.
// Returns EEXTRACT if the URL or the body cannot be parsed.
func NewDocument(page *litcrawl.Page) (*Document, error) {
	u, err := url.Parse(page.URL)
	if err != nil {
		return nil, litcrawl.Errorf(litcrawl.EEXTRACT, "invalid page URL %q: %v", page.URL, err)
	}
	dom, err := litquery.ParseDocument(string(page.Body))
	if err != nil {
		return nil, err
	}
	return &Document{
		Page:    page,
		URL:     u,
		DOM:     dom,
		Article: litcrawl.Article{URL: page.URL},
	}, nil
}

// Stage is one step of the qualification chain.
type Stage interface {
	// Name identifies the stage in logs.
	Name() string

	// Run inspects the document and may add to its article. A non-empty
	// reason rejects the page. Errors tagged EEXTRACT reject the page as
	// extraction_failed; any other error aborts the run.
	Run(ctx context.Context, doc *Document) (litcrawl.RejectionReason, error)
}

// Pipeline runs the qualification chain over fetched pages. It is safe for
// concurrent use; the only shared mutable state is the popularity table.
type Pipeline struct {
	stages []Stage
	geo    Stage
	table  litcrawl.PopularityTable
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for rejections and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithClock sets the time source used by the recency check.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

// New builds the standard chain from cfg: auth, geo, size, structure,
// popularity, content, recency, metadata, language, keyword.
func New(
	cfg *litcrawl.Config,
	locator litcrawl.HostLocator,
	classifier litcrawl.LanguageClassifier,
	table litcrawl.PopularityTable,
	opts ...Option,
) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		table:  table,
		logger: slog.New(slog.DiscardHandler),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}

	keywords, err := NewKeywordMatcher(cfg.Keywords)
	if err != nil {
		return nil, err
	}

	p.geo = NewGeoGate(locator, cfg.AllowedLocation, p.logger)
	p.stages = []Stage{
		NewAuthGate(cfg.AuthKeywords),
		p.geo,
		NewSizeGate(cfg.MaxPageSize),
		NewStructureGate(cfg.RequiredMarkers),
		NewPopularityTracker(table, cfg.AllowedDomain),
		NewContentDetector(cfg.RequiredContent, cfg.AllowedDomain),
		NewRecencyGate(cfg.MaxAgeDays, cfg.EarliestPublication, p.now, p.logger),
		NewMetadataExtractor(),
		NewLanguageGate(classifier, cfg.AllowedLanguages),
		keywords,
	}
	return p, nil
}

// Process runs the chain for page. The seed page is location-checked before
// any other stage.
func (p *Pipeline) Process(ctx context.Context, page *litcrawl.Page) (litcrawl.Verdict, error) {
	doc, err := NewDocument(page)
	if err != nil {
		return p.fail(page, "parse", err)
	}

	if page.Seed {
		if verdict, done, err := p.run(ctx, p.geo, doc); done {
			return verdict, err
		}
	}

	for _, stage := range p.stages {
		if verdict, done, err := p.run(ctx, stage, doc); done {
			return verdict, err
		}
	}

	article := doc.Article
	article.InLinkPopularity = p.table.Count(litcrawl.CanonicalURL(page.URL))
	p.logger.Debug("page accepted",
		"url", page.URL,
		"keywords", article.MatchedKeywords,
		"popularity", article.InLinkPopularity,
	)
	return litcrawl.Accept(&article), nil
}

// run executes one stage and reports whether the chain ends here.
func (p *Pipeline) run(ctx context.Context, stage Stage, doc *Document) (litcrawl.Verdict, bool, error) {
	reason, err := stage.Run(ctx, doc)
	if err != nil {
		verdict, err := p.fail(doc.Page, stage.Name(), err)
		return verdict, true, err
	}
	if reason != litcrawl.ReasonNone {
		p.logger.Info("page rejected",
			"url", doc.Page.URL,
			"stage", stage.Name(),
			"reason", reason,
		)
		return litcrawl.Reject(reason), true, nil
	}
	return litcrawl.Verdict{}, false, nil
}

// fail turns extraction errors into a rejection and propagates the rest.
func (p *Pipeline) fail(page *litcrawl.Page, stage string, err error) (litcrawl.Verdict, error) {
	if litcrawl.ErrorCode(err) == litcrawl.EEXTRACT {
		p.logger.Warn("extraction failed",
			"url", page.URL,
			"stage", stage,
			"err", err,
		)
		return litcrawl.Reject(litcrawl.ReasonExtractionFailed), nil
	}
	return litcrawl.Verdict{}, err
}
