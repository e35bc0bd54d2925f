package litcrawl

import "context"

// RejectionReason names the gate that turned a page down. It is used for
// observability only and is never persisted.
type RejectionReason string

// Rejection reasons, one per gate outcome. The empty reason means the page
// passed.
const (
	ReasonNone                RejectionReason = ""
	ReasonAuthWall            RejectionReason = "auth_wall"
	ReasonWrongLocation       RejectionReason = "wrong_location"
	ReasonTooLarge            RejectionReason = "too_large"
	ReasonMissingStructure    RejectionReason = "missing_structure"
	ReasonNoRequiredContent   RejectionReason = "no_required_content"
	ReasonTooOld              RejectionReason = "too_old"
	ReasonMissingDate         RejectionReason = "missing_date"
	ReasonTooShortForLanguage RejectionReason = "too_short_for_language_detection"
	ReasonWrongLanguage       RejectionReason = "wrong_language"
	ReasonNoKeywordMatch      RejectionReason = "no_keyword_match"
	ReasonExtractionFailed    RejectionReason = "extraction_failed"
)

// Verdict is the outcome of processing one page. Exactly one of Article
// and Reason is set.
type Verdict struct {
	Article *Article
	Reason  RejectionReason
}

// Accepted reports whether the page produced an article.
func (v Verdict) Accepted() bool {
	return v.Article != nil && v.Reason == ReasonNone
}

// Reject returns a verdict for a page turned down for reason.
func Reject(reason RejectionReason) Verdict {
	return Verdict{Reason: reason}
}

// Accept returns a verdict carrying an article.
func Accept(article *Article) Verdict {
	return Verdict{Article: article}
}

// ArticleProcessor decides whether a page is a qualifying article.
type ArticleProcessor interface {
	// Process runs the qualification chain for a fetched page.
	// Rejections are reported in the verdict, not as errors. A returned
	// error is unexpected and should abort the crawl run.
	Process(ctx context.Context, page *Page) (Verdict, error)
}

// HostLocator resolves a hostname and reports the country its server is in.
type HostLocator interface {
	// LocateHost returns the country of the host's first resolved address.
	// Returns ENOTFOUND if the address is not in the geolocation database.
	LocateHost(ctx context.Context, host string) (*Location, error)
}

// Location is the geolocation of a resolved host.
type Location struct {
	IP          string
	Country     string // English name, e.g. "United States"
	CountryCode string // ISO 3166-1 alpha-2, e.g. "US"
}

// LanguageClassifier identifies the language of a text.
type LanguageClassifier interface {
	// Classify returns the ISO 639-1 code of the most likely language,
	// or an empty string if none could be determined.
	Classify(ctx context.Context, text string) (string, error)
}

// PopularityTable counts how often each URL has been seen as a link target.
// Implementations must be safe for concurrent use.
type PopularityTable interface {
	// Increment adds one observation for url and returns the new count.
	Increment(url string) int

	// Count returns the current count for url.
	Count(url string) int
}
