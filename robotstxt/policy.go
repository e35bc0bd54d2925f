// Package robotstxt implements litcrawl.RobotsPolicy by fetching and
// caching each host's robots.txt.
package robotstxt

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/litcrawl"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

var _ litcrawl.RobotsPolicy = (*Policy)(nil)

// DefaultTimeout bounds a robots.txt request.
const DefaultTimeout = 10 * time.Second

// Policy answers robots.txt queries for a user agent. Rules are fetched
// once per scheme and host. An unreachable robots.txt allows everything;
// status codes are interpreted by robotstxt.FromResponse (4xx allows, 5xx
// disallows).
type Policy struct {
	client    *http.Client
	userAgent string
	logger    *slog.Logger

	mu    sync.RWMutex
	rules map[string]*robotstxt.RobotsData
	group singleflight.Group
}

// NewPolicy returns a policy for userAgent. A nil client uses a client
// with DefaultTimeout; a nil logger discards output.
func NewPolicy(client *http.Client, userAgent string, logger *slog.Logger) *Policy {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Policy{
		client:    client,
		userAgent: userAgent,
		logger:    logger,
		rules:     make(map[string]*robotstxt.RobotsData),
	}
}

// Allowed reports whether the user agent may fetch rawURL. Unparseable
// URLs are allowed and left for the fetcher to reject.
func (p *Policy) Allowed(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}
	rules := p.rulesFor(ctx, u.Scheme+"://"+u.Host)
	if rules == nil {
		return true
	}
	return rules.TestAgent(u.RequestURI(), p.userAgent)
}

func (p *Policy) rulesFor(ctx context.Context, origin string) *robotstxt.RobotsData {
	p.mu.RLock()
	rules, ok := p.rules[origin]
	p.mu.RUnlock()
	if ok {
		return rules
	}

	v, _, _ := p.group.Do(origin, func() (any, error) {
		p.mu.RLock()
		rules, ok := p.rules[origin]
		p.mu.RUnlock()
		if ok {
			return rules, nil
		}

		rules = p.fetch(ctx, origin)
		p.mu.Lock()
		p.rules[origin] = rules
		p.mu.Unlock()
		return rules, nil
	})
	return v.(*robotstxt.RobotsData)
}

// fetch downloads and parses robots.txt. A nil result allows everything.
func (p *Policy) fetch(ctx context.Context, origin string) *robotstxt.RobotsData {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("robots.txt unavailable", "origin", origin, "err", err)
		return nil
	}
	defer resp.Body.Close()

	rules, err := robotstxt.FromResponse(resp)
	if err != nil {
		p.logger.Debug("robots.txt unparseable", "origin", origin, "err", err)
		return nil
	}
	return rules
}
