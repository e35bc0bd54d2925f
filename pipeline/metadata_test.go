package pipeline_test

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataExtractor(t *testing.T) {
	t.Parallel()

	extractor := pipeline.NewMetadataExtractor()

	t.Run("extracts title authors and snippet", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, articleURL, newFixture().html())

		reason, err := extractor.Run(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonNone, reason)
		assert.Equal(t, "Diabetes cohort study", doc.Article.Title)
		assert.Equal(t, []string{"Jane Roe", "John Doe"}, doc.Article.Authors)
		assert.Equal(t, newFixture().Paragraph, doc.Article.Snippet)
	})

	t.Run("defaults to N/A when fields are absent", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, articleURL, `<html><body><div>no paragraphs</div></body></html>`)

		_, err := extractor.Run(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, litcrawl.NotAvailable, doc.Article.Title)
		assert.Empty(t, doc.Article.Authors)
		assert.Equal(t, litcrawl.NotAvailable, doc.Article.Snippet)
	})

	t.Run("snippet joins direct paragraph text only", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, articleURL, `<html><body><p>  First <b>bold</b> part.</p><p>Second.  </p></body></html>`)

		_, err := extractor.Run(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, "First   part. Second.", doc.Article.Snippet)
	})

	t.Run("uses the first title only", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, articleURL, `<html><head><title>One</title></head><body><svg><title>Two</title></svg></body></html>`)

		_, err := extractor.Run(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, "One", doc.Article.Title)
	})
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	t.Run("truncates to 200 characters", func(t *testing.T) {
		t.Parallel()

		got := pipeline.Snippet(strings.Repeat("é", 250))

		assert.Equal(t, 200, utf8.RuneCountInString(got))
	})

	t.Run("keeps short text", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "short", pipeline.Snippet("  short  "))
	})

	t.Run("empty text is N/A", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, litcrawl.NotAvailable, pipeline.Snippet("   "))
	})
}
