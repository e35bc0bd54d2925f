package litcrawl

import "context"

// Page is a fetched document handed to the pipeline. It is read-only to
// the pipeline and discarded after processing.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte

	// Seed marks the crawl's start page, which is location-checked before
	// any other gate runs.
	Seed bool
}

// Fetcher retrieves pages over the network.
type Fetcher interface {
	// Fetch requests the URL and returns the page for any HTTP status.
	// Transport failures are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Page, error)
}

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityIgnore   LinkPriority = 0
	PriorityExternal LinkPriority = 10
	PriorityInternal LinkPriority = 50
	PrioritySeed     LinkPriority = 100
)

// DiscoveredLink represents a URL to follow with priority metadata.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Depth    int
}

// LinkSelector chooses the links of a page the crawl engine should follow.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns follow candidates with priority.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// Pop returns the next URL by priority.
	// Returns false if the frontier is empty.
	Pop() (DiscoveredLink, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// RobotsPolicy decides whether robots.txt permits fetching a URL.
type RobotsPolicy interface {
	Allowed(ctx context.Context, url string) bool
}
