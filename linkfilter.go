package litcrawl

import (
	"net/url"
	"regexp"
	"strings"
)

// LinkMode selects which discovered links the crawl engine follows.
type LinkMode string

// Supported link modes.
const (
	LinkInternal LinkMode = "internal"
	LinkExternal LinkMode = "external"
	LinkBoth     LinkMode = "both"
)

// Valid reports whether m is a known link mode.
func (m LinkMode) Valid() bool {
	switch m {
	case LinkInternal, LinkExternal, LinkBoth:
		return true
	}
	return false
}

// LinkFilter reports whether an absolute link should be followed.
type LinkFilter func(u *url.URL) bool

// NewLinkFilter selects the follow strategy for mode once, so no mode
// branching remains on the hot path. Every strategy also requires the
// link to match pattern; a nil pattern matches everything.
func NewLinkFilter(mode LinkMode, domain string, pattern *regexp.Regexp) (LinkFilter, error) {
	matchPattern := func(u *url.URL) bool {
		return pattern == nil || pattern.MatchString(u.String())
	}

	switch mode {
	case LinkInternal:
		return func(u *url.URL) bool {
			return MatchesDomain(u.Hostname(), domain) && matchPattern(u)
		}, nil
	case LinkExternal:
		return func(u *url.URL) bool {
			return !MatchesDomain(u.Hostname(), domain) && matchPattern(u)
		}, nil
	case LinkBoth:
		return matchPattern, nil
	}
	return nil, Errorf(EINVALID, "invalid link mode %q", mode)
}

// MatchesDomain reports whether host is domain or one of its subdomains.
func MatchesDomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	domain = strings.ToLower(strings.TrimSuffix(domain, "."))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// CanonicalURL strips the fragment so that links differing only by anchor
// share a popularity counter. Unparsable input is returned unchanged.
func CanonicalURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

// CompileURLPattern compiles the allowed URL pattern. An empty pattern
// yields nil, which matches every URL.
func CompileURLPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid URL pattern %q: %v", pattern, err)
	}
	return re, nil
}
