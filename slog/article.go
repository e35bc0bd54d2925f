package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/litcrawl"
)

// Ensure LoggingArticleService implements litcrawl.ArticleService.
var _ litcrawl.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService and logs writes. Reads
// are passed through.
type LoggingArticleService struct {
	next   litcrawl.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next litcrawl.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// UpsertArticle delegates to the wrapped service and logs the write.
func (s *LoggingArticleService) UpsertArticle(ctx context.Context, article *litcrawl.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("article stored",
			"url", article.URL,
			"title", article.Title,
			"popularity", article.InLinkPopularity,
			"keywords", len(article.MatchedKeywords),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertArticle(ctx, article)
}

func (s *LoggingArticleService) FindArticleByURL(ctx context.Context, url string) (*litcrawl.Article, error) {
	return s.next.FindArticleByURL(ctx, url)
}

func (s *LoggingArticleService) FindArticles(ctx context.Context, filter litcrawl.ArticleFilter) ([]*litcrawl.Article, error) {
	return s.next.FindArticles(ctx, filter)
}

func (s *LoggingArticleService) CountArticles(ctx context.Context) (int, error) {
	return s.next.CountArticles(ctx)
}
