// Package http provides an HTTP-based implementation of litcrawl.Fetcher.
// Research pages are served as static HTML, so no JavaScript is executed.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/litcrawl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultUserAgent identifies the crawler when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (compatible; MedCrawlerBot/1.0)"

// Ensure Fetcher implements litcrawl.Fetcher at compile time.
var _ litcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using HTTP GET requests. Every status code is
// returned as a page; only transport failures are errors.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize caps how much of a body is read. One byte beyond the
// limit is kept so an oversize page can still be recognized as such.
// Zero reads the whole body.
func WithMaxBodySize(n int) Option {
	return func(f *Fetcher) {
		f.maxBodySize = int64(n)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch requests the URL and returns the page. The page URL is the final
// URL after redirects.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*litcrawl.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, litcrawl.Errorf(litcrawl.EINVALID, "invalid request URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.maxBodySize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	return &litcrawl.Page{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
