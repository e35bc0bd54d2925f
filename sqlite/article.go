package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/litcrawl"
)

// Compile-time interface verification.
var _ litcrawl.ArticleService = (*ArticleService)(nil)

// ArticleService implements litcrawl.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

const articleColumns = `url, title, publication_date, authors, matched_keywords,
	content_snippet, content_types_found, in_link_popularity, crawled_at`

// UpsertArticle inserts the article or replaces the stored record with the
// same URL. Empty authors are stored as N/A.
func (s *ArticleService) UpsertArticle(ctx context.Context, article *litcrawl.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	title := article.Title
	if title == "" {
		title = litcrawl.NotAvailable
	}
	snippet := article.Snippet
	if snippet == "" {
		snippet = litcrawl.NotAvailable
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			publication_date = excluded.publication_date,
			authors = excluded.authors,
			matched_keywords = excluded.matched_keywords,
			content_snippet = excluded.content_snippet,
			content_types_found = excluded.content_types_found,
			in_link_popularity = excluded.in_link_popularity,
			crawled_at = excluded.crawled_at
	`, article.URL, title, article.PublicationDate,
		joinList(article.Authors, litcrawl.NotAvailable),
		joinList(article.MatchedKeywords, ""),
		snippet,
		joinList(categoryStrings(article.ContentTypesFound), ""),
		article.InLinkPopularity,
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// FindArticleByURL retrieves an article by URL.
func (s *ArticleService) FindArticleByURL(ctx context.Context, url string) (*litcrawl.Article, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+articleColumns+` FROM articles WHERE url = ?`, url)

	article, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, litcrawl.Errorf(litcrawl.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter. Results are ordered
// by popularity unless the filter asks for crawl time.
func (s *ArticleService) FindArticles(ctx context.Context, filter litcrawl.ArticleFilter) ([]*litcrawl.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + articleColumns + ` FROM articles WHERE 1=1`)

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.MinPopularity != nil {
		query.WriteString(" AND in_link_popularity >= ?")
		args = append(args, *filter.MinPopularity)
	}

	switch filter.SortBy {
	case litcrawl.SortByCrawledAt:
		query.WriteString(" ORDER BY crawled_at DESC, url ASC")
	default:
		query.WriteString(" ORDER BY in_link_popularity DESC, url ASC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*litcrawl.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	return articles, rows.Err()
}

// CountArticles returns the number of stored articles.
func (s *ArticleService) CountArticles(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*litcrawl.Article, error) {
	var (
		a                             litcrawl.Article
		authors, keywords, categories string
		crawledAt                     string
	)
	if err := row.Scan(&a.URL, &a.Title, &a.PublicationDate, &authors, &keywords,
		&a.Snippet, &categories, &a.InLinkPopularity, &crawledAt); err != nil {
		return nil, err
	}

	a.Authors = splitList(authors, litcrawl.NotAvailable)
	a.MatchedKeywords = splitList(keywords, "")
	a.ContentTypesFound = parseCategories(categories)

	var err error
	a.CrawledAt, err = parseRFC3339(crawledAt, "crawled_at")
	if err != nil {
		return nil, err
	}
	return &a, nil
}
