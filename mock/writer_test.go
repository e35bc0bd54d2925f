package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/litcrawl"
	"github.com/fwojciec/litcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleWriter_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where ArticleWriter is expected
	var _ litcrawl.ArticleWriter = &mock.ArticleWriter{}
}

func TestArticleWriter_UpsertArticle(t *testing.T) {
	t.Parallel()

	t.Run("delegates to UpsertArticleFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *litcrawl.Article
		w := &mock.ArticleWriter{
			UpsertArticleFn: func(_ context.Context, article *litcrawl.Article) error {
				calledWith = article
				return nil
			},
		}

		article := &litcrawl.Article{
			URL:   "https://pubmed.ncbi.nlm.nih.gov/12345/",
			Title: "Cohort study of diabetes outcomes",
		}

		err := w.UpsertArticle(context.Background(), article)

		require.NoError(t, err)
		assert.Equal(t, article, calledWith)
	})
}
