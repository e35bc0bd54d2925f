package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/mock"
	"github.com/fwojciec/litcrawl/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snippetDoc(t *testing.T, snippet string) *pipeline.Document {
	t.Helper()
	doc := newDoc(t, articleURL, "<html></html>")
	doc.Article.Snippet = snippet
	return doc
}

func TestLanguageGate(t *testing.T) {
	t.Parallel()

	t.Run("rejects snippet shorter than 50 characters without classifying", func(t *testing.T) {
		t.Parallel()

		classifier := &mock.LanguageClassifier{
			ClassifyFn: func(_ context.Context, _ string) (string, error) {
				t.Fatal("classifier should not be called")
				return "", nil
			},
		}
		gate := pipeline.NewLanguageGate(classifier, []string{"en"})

		reason, err := gate.Run(context.Background(), snippetDoc(t, strings.Repeat("a", 49)))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonTooShortForLanguage, reason)
	})

	t.Run("N/A snippet is too short", func(t *testing.T) {
		t.Parallel()

		gate := pipeline.NewLanguageGate(englishClassifier(), []string{"en"})

		reason, err := gate.Run(context.Background(), snippetDoc(t, litcrawl.NotAvailable))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonTooShortForLanguage, reason)
	})

	t.Run("classifies snippet of exactly 50 characters", func(t *testing.T) {
		t.Parallel()

		var got string
		classifier := &mock.LanguageClassifier{
			ClassifyFn: func(_ context.Context, text string) (string, error) {
				got = text
				return "en", nil
			},
		}
		gate := pipeline.NewLanguageGate(classifier, []string{"en"})
		snippet := strings.Repeat("a", 50)

		reason, err := gate.Run(context.Background(), snippetDoc(t, snippet))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonNone, reason)
		assert.Equal(t, snippet, got)
	})

	t.Run("rejects language outside the allowed set", func(t *testing.T) {
		t.Parallel()

		classifier := &mock.LanguageClassifier{
			ClassifyFn: func(_ context.Context, _ string) (string, error) {
				return "es", nil
			},
		}
		gate := pipeline.NewLanguageGate(classifier, []string{"en"})

		reason, err := gate.Run(context.Background(), snippetDoc(t, strings.Repeat("palabra ", 10)))

		require.NoError(t, err)
		assert.Equal(t, litcrawl.ReasonWrongLanguage, reason)
	})

	t.Run("returns classifier errors", func(t *testing.T) {
		t.Parallel()

		classifier := &mock.LanguageClassifier{
			ClassifyFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("model unavailable")
			},
		}
		gate := pipeline.NewLanguageGate(classifier, []string{"en"})

		_, err := gate.Run(context.Background(), snippetDoc(t, strings.Repeat("word ", 20)))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "model unavailable")
	})
}
