package mock

import (
	"context"

	"github.com/fwojciec/litcrawl"
)

var _ litcrawl.ArticleWriter = (*ArticleWriter)(nil)

// ArticleWriter is a mock implementation of litcrawl.ArticleWriter.
type ArticleWriter struct {
	UpsertArticleFn func(ctx context.Context, article *litcrawl.Article) error
}

func (w *ArticleWriter) UpsertArticle(ctx context.Context, article *litcrawl.Article) error {
	return w.UpsertArticleFn(ctx, article)
}

var _ litcrawl.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of litcrawl.ArticleService.
type ArticleService struct {
	UpsertArticleFn    func(ctx context.Context, article *litcrawl.Article) error
	FindArticleByURLFn func(ctx context.Context, url string) (*litcrawl.Article, error)
	FindArticlesFn     func(ctx context.Context, filter litcrawl.ArticleFilter) ([]*litcrawl.Article, error)
	CountArticlesFn    func(ctx context.Context) (int, error)
}

func (s *ArticleService) UpsertArticle(ctx context.Context, article *litcrawl.Article) error {
	return s.UpsertArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*litcrawl.Article, error) {
	return s.FindArticleByURLFn(ctx, url)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter litcrawl.ArticleFilter) ([]*litcrawl.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) CountArticles(ctx context.Context) (int, error) {
	return s.CountArticlesFn(ctx)
}
