package litcrawl

import (
	"context"
	"time"
)

// NotAvailable is stored for text fields the page did not provide.
const NotAvailable = "N/A"

// Article is the metadata record of an accepted page. It is created by the
// pipeline and not modified afterwards.
type Article struct {
	URL               string            `json:"url"`
	Title             string            `json:"title"`
	PublicationDate   string            `json:"publicationDate"`
	Authors           []string          `json:"authors"`
	MatchedKeywords   []string          `json:"matchedKeywords"`
	ContentTypesFound []ContentCategory `json:"contentTypesFound"`
	Snippet           string            `json:"snippet"`
	InLinkPopularity  int               `json:"inLinkPopularity"`

	// CrawledAt is set by storage when the record is read back.
	CrawledAt time.Time `json:"crawledAt,omitzero"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	if a.InLinkPopularity < 0 {
		return Errorf(EINVALID, "article popularity must not be negative")
	}
	return nil
}

// ArticleWriter persists accepted articles.
type ArticleWriter interface {
	// UpsertArticle stores the article keyed by URL, replacing any prior
	// record for the same URL.
	UpsertArticle(ctx context.Context, article *Article) error
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	ArticleWriter

	// FindArticleByURL retrieves an article by URL.
	// Returns ENOTFOUND if the article does not exist.
	FindArticleByURL(ctx context.Context, url string) (*Article, error)

	// FindArticles retrieves articles matching the filter.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// CountArticles returns the number of stored articles.
	CountArticles(ctx context.Context) (int, error)
}

// ArticleSort represents the sort order for article queries.
type ArticleSort string

// ArticleSort constants for ArticleFilter.
const (
	SortByPopularity ArticleSort = "popularity"
	SortByCrawledAt  ArticleSort = "crawled_at"
)

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	URL           *string `json:"url"`
	MinPopularity *int    `json:"minPopularity"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy ArticleSort `json:"sortBy"`
}
