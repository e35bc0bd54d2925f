package pipeline_test

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/crawl"
	"github.com/fwojciec/litcrawl/mock"
	"github.com/fwojciec/litcrawl/pipeline"
	"github.com/stretchr/testify/require"
)

const articleURL = "https://pubmed.ncbi.nlm.nih.gov/11111/"

// fixedNow is the clock used by every test in this package.
var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

// fixture renders an article page that passes every default gate.
type fixture struct {
	Title     string
	Date      string
	OmitDate  bool
	Paragraph string
	Content   string
	Extra     string
}

func newFixture() fixture {
	return fixture{
		Title:     "Diabetes cohort study",
		Date:      "2024-05-01",
		Paragraph: "This cohort study examines long-term treatment outcome in adults with type 2 diabetes across ten clinics.",
		Content:   `<img src="/fig1.png">`,
		Extra:     `<a href="/12345/">Related</a><a href="/67890/#abstract">Other</a>`,
	}
}

func (f fixture) html() string {
	var b strings.Builder
	b.WriteString("<html><head>")
	fmt.Fprintf(&b, "<title>%s</title>", f.Title)
	b.WriteString(`<meta name="description" content="Article">`)
	if !f.OmitDate {
		fmt.Fprintf(&b, `<meta name="citation_publication_date" content="%s">`, f.Date)
	}
	b.WriteString(`<meta name="citation_author" content="Jane Roe">`)
	b.WriteString(`<meta name="citation_author" content="John Doe">`)
	b.WriteString("</head><body><h1>Diabetes outcomes</h1>")
	fmt.Fprintf(&b, "<p>%s</p>", f.Paragraph)
	b.WriteString(f.Content)
	b.WriteString(f.Extra)
	b.WriteString("</body></html>")
	return b.String()
}

func (f fixture) page(url string) *litcrawl.Page {
	return &litcrawl.Page{URL: url, StatusCode: 200, Body: []byte(f.html())}
}

func newDoc(t *testing.T, url, html string) *pipeline.Document {
	t.Helper()
	doc, err := pipeline.NewDocument(&litcrawl.Page{URL: url, StatusCode: 200, Body: []byte(html)})
	require.NoError(t, err)
	return doc
}

func usLocator() *mock.HostLocator {
	return &mock.HostLocator{
		LocateHostFn: func(_ context.Context, _ string) (*litcrawl.Location, error) {
			return &litcrawl.Location{IP: "130.14.29.110", Country: "United States", CountryCode: "US"}, nil
		},
	}
}

func englishClassifier() *mock.LanguageClassifier {
	return &mock.LanguageClassifier{
		ClassifyFn: func(_ context.Context, _ string) (string, error) {
			return "en", nil
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newPipeline(t *testing.T, locator litcrawl.HostLocator, classifier litcrawl.LanguageClassifier) (*pipeline.Pipeline, *crawl.PopularityTable) {
	t.Helper()
	table := crawl.NewPopularityTable()
	p, err := pipeline.New(litcrawl.DefaultConfig(), locator, classifier, table,
		pipeline.WithLogger(discardLogger()),
		pipeline.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	return p, table
}
