package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/crawl"
	"github.com/fwojciec/litcrawl/mock"
	"github.com/fwojciec/litcrawl/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid config", func(t *testing.T) {
		t.Parallel()

		cfg := litcrawl.DefaultConfig()
		cfg.MaxPageSize = 0

		_, err := pipeline.New(cfg, usLocator(), englishClassifier(), crawl.NewPopularityTable())

		require.Error(t, err)
		assert.Equal(t, litcrawl.EINVALID, litcrawl.ErrorCode(err))
	})
}

func TestPipeline_Process(t *testing.T) {
	t.Parallel()

	t.Run("accepts a qualifying article", func(t *testing.T) {
		t.Parallel()

		p, _ := newPipeline(t, usLocator(), englishClassifier())

		verdict, err := p.Process(context.Background(), newFixture().page(articleURL))

		require.NoError(t, err)
		require.True(t, verdict.Accepted())
		article := verdict.Article
		assert.Equal(t, articleURL, article.URL)
		assert.Equal(t, "Diabetes cohort study", article.Title)
		assert.Equal(t, "2024-05-01", article.PublicationDate)
		assert.Equal(t, []string{"Jane Roe", "John Doe"}, article.Authors)
		assert.Equal(t, []string{"treatment outcome", "cohort study", "diabetes"}, article.MatchedKeywords)
		assert.Equal(t, []litcrawl.ContentCategory{litcrawl.ContentImage}, article.ContentTypesFound)
		assert.Equal(t, newFixture().Paragraph, article.Snippet)
		assert.Equal(t, 0, article.InLinkPopularity)
	})

	t.Run("page without any required content is rejected", func(t *testing.T) {
		t.Parallel()

		p, _ := newPipeline(t, usLocator(), englishClassifier())
		f := newFixture()
		f.Content = ""
		f.Extra = `<a href="/12345/">Related</a>`

		verdict, err := p.Process(context.Background(), f.page(articleURL))

		require.NoError(t, err)
		assert.False(t, verdict.Accepted())
		assert.Nil(t, verdict.Article)
		assert.Equal(t, litcrawl.ReasonNoRequiredContent, verdict.Reason)
	})

	t.Run("auth keyword in URL rejects before any lookup", func(t *testing.T) {
		t.Parallel()

		var lookups atomic.Int32
		locator := &mock.HostLocator{
			LocateHostFn: func(_ context.Context, _ string) (*litcrawl.Location, error) {
				lookups.Add(1)
				return &litcrawl.Location{Country: "United States", CountryCode: "US"}, nil
			},
		}
		p, _ := newPipeline(t, locator, englishClassifier())

		verdict, err := p.Process(context.Background(), newFixture().page("https://pubmed.ncbi.nlm.nih.gov/account/settings"))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonAuthWall, verdict.Reason)
		assert.Equal(t, int32(0), lookups.Load())
	})

	t.Run("concurrent pages linking the same URL count twice", func(t *testing.T) {
		t.Parallel()

		p, table := newPipeline(t, usLocator(), englishClassifier())
		f := newFixture()
		f.Extra = `<a href="https://pubmed.ncbi.nlm.nih.gov/target/">Target</a>`

		var wg sync.WaitGroup
		for _, u := range []string{"https://pubmed.ncbi.nlm.nih.gov/a/", "https://pubmed.ncbi.nlm.nih.gov/b/"} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := p.Process(context.Background(), f.page(u))
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		assert.Equal(t, 2, table.Count("https://pubmed.ncbi.nlm.nih.gov/target/"))
	})

	t.Run("popularity is counted for pages rejected after structure check", func(t *testing.T) {
		t.Parallel()

		p, table := newPipeline(t, usLocator(), englishClassifier())
		f := newFixture()
		f.OmitDate = true
		f.Extra = `<a href="/target/">Target</a>`

		verdict, err := p.Process(context.Background(), f.page(articleURL))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonMissingDate, verdict.Reason)
		assert.Equal(t, 1, table.Count("https://pubmed.ncbi.nlm.nih.gov/target/"))
	})

	t.Run("accepted article embeds popularity of its own URL", func(t *testing.T) {
		t.Parallel()

		p, table := newPipeline(t, usLocator(), englishClassifier())
		table.Increment(articleURL)
		table.Increment(articleURL)
		table.Increment(articleURL)

		verdict, err := p.Process(context.Background(), newFixture().page(articleURL+"#abstract"))

		require.NoError(t, err)
		require.True(t, verdict.Accepted())
		assert.Equal(t, 3, verdict.Article.InLinkPopularity)
	})

	t.Run("recency cutoff day is accepted and the day before is too old", func(t *testing.T) {
		t.Parallel()

		p, _ := newPipeline(t, usLocator(), englishClassifier())
		cutoff := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -180)

		f := newFixture()
		f.Date = cutoff.Format("2006-01-02")
		verdict, err := p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		assert.True(t, verdict.Accepted())

		f.Date = cutoff.AddDate(0, 0, -1).Format("2006-01-02")
		verdict, err = p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonTooOld, verdict.Reason)
	})

	t.Run("49 character snippet is too short and 50 proceeds", func(t *testing.T) {
		t.Parallel()

		p, _ := newPipeline(t, usLocator(), englishClassifier())

		f := newFixture()
		f.Title = "cancer"
		f.Paragraph = strings.Repeat("x", 49)
		verdict, err := p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonTooShortForLanguage, verdict.Reason)

		f.Paragraph = strings.Repeat("x", 50)
		verdict, err = p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		assert.True(t, verdict.Accepted())
		assert.Equal(t, []string{"cancer", "diabetes"}, verdict.Article.MatchedKeywords)
	})

	t.Run("keywords match case-insensitively as whole words", func(t *testing.T) {
		t.Parallel()

		p, _ := newPipeline(t, usLocator(), englishClassifier())

		f := newFixture()
		f.Title = "Report"
		f.Paragraph = "CANCER screening results from the national registry across many hospitals."
		verdict, err := p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		require.True(t, verdict.Accepted())
		assert.Contains(t, verdict.Article.MatchedKeywords, "cancer")

		f.Paragraph = "Cancerous lesion screening results from the national registry across many sites."
		verdict, err = p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		require.True(t, verdict.Accepted())
		assert.NotContains(t, verdict.Article.MatchedKeywords, "cancer")
	})

	t.Run("re-processing a page yields the same article apart from popularity", func(t *testing.T) {
		t.Parallel()

		p, table := newPipeline(t, usLocator(), englishClassifier())
		page := newFixture().page(articleURL)

		first, err := p.Process(context.Background(), page)
		require.NoError(t, err)
		require.True(t, first.Accepted())

		table.Increment(articleURL)

		second, err := p.Process(context.Background(), page)
		require.NoError(t, err)
		require.True(t, second.Accepted())

		assert.Equal(t, first.Article.InLinkPopularity+1, second.Article.InLinkPopularity)
		a, b := *first.Article, *second.Article
		a.InLinkPopularity, b.InLinkPopularity = 0, 0
		assert.Equal(t, a, b)
	})

	t.Run("missing date is rejected but unparsable date passes", func(t *testing.T) {
		t.Parallel()

		p, _ := newPipeline(t, usLocator(), englishClassifier())

		f := newFixture()
		f.OmitDate = true
		verdict, err := p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonMissingDate, verdict.Reason)

		f.OmitDate = false
		f.Date = "not a date"
		verdict, err = p.Process(context.Background(), f.page(articleURL))
		require.NoError(t, err)
		require.True(t, verdict.Accepted())
		assert.Equal(t, "not a date", verdict.Article.PublicationDate)
	})

	t.Run("seed page is location checked first", func(t *testing.T) {
		t.Parallel()

		locator := locatorReturning(&litcrawl.Location{Country: "Canada", CountryCode: "CA"}, nil)
		p, _ := newPipeline(t, locator, englishClassifier())
		page := newFixture().page("https://pubmed.ncbi.nlm.nih.gov/login")

		page.Seed = true
		verdict, err := p.Process(context.Background(), page)
		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonWrongLocation, verdict.Reason)

		page.Seed = false
		verdict, err = p.Process(context.Background(), page)
		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonAuthWall, verdict.Reason)
	})

	t.Run("extraction errors reject the page", func(t *testing.T) {
		t.Parallel()

		classifier := &mock.LanguageClassifier{
			ClassifyFn: func(_ context.Context, _ string) (string, error) {
				return "", fmt.Errorf("sample: %w", litcrawl.Errorf(litcrawl.EEXTRACT, "no text"))
			},
		}
		p, _ := newPipeline(t, usLocator(), classifier)

		verdict, err := p.Process(context.Background(), newFixture().page(articleURL))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonExtractionFailed, verdict.Reason)
	})

	t.Run("unexpected errors are returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		classifier := &mock.LanguageClassifier{
			ClassifyFn: func(_ context.Context, _ string) (string, error) {
				return "", boom
			},
		}
		p, _ := newPipeline(t, usLocator(), classifier)

		_, err := p.Process(context.Background(), newFixture().page(articleURL))

		require.ErrorIs(t, err, boom)
	})

	t.Run("unparsable page URL is an extraction failure", func(t *testing.T) {
		t.Parallel()

		p, _ := newPipeline(t, usLocator(), englishClassifier())

		verdict, err := p.Process(context.Background(), newFixture().page("http://[::1"))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonExtractionFailed, verdict.Reason)
	})
}
