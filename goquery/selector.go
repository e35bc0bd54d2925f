package goquery

import (
	"net/url"

	"github.com/fwojciec/litcrawl"
)

// Ensure FollowSelector implements litcrawl.LinkSelector.
var _ litcrawl.LinkSelector = (*FollowSelector)(nil)

// FollowSelector picks the links of a page the crawl engine follows.
// Links accepted by the filter are prioritized internal first, so the
// allowed domain is explored before any external site.
type FollowSelector struct {
	filter litcrawl.LinkFilter
	domain string
}

// NewFollowSelector creates a selector that follows links accepted by
// filter. The domain decides which followed links count as internal.
func NewFollowSelector(filter litcrawl.LinkFilter, domain string) *FollowSelector {
	return &FollowSelector{filter: filter, domain: domain}
}

// ExtractLinks parses HTML and returns the links to follow with priority.
func (s *FollowSelector) ExtractLinks(html string, baseURL string) ([]litcrawl.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, litcrawl.Errorf(litcrawl.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}

	var links []litcrawl.DiscoveredLink
	for _, u := range ResolveLinks(doc, base) {
		if !s.filter(u) {
			continue
		}
		priority := litcrawl.PriorityExternal
		if litcrawl.MatchesDomain(u.Hostname(), s.domain) {
			priority = litcrawl.PriorityInternal
		}
		links = append(links, litcrawl.DiscoveredLink{
			URL:      u.String(),
			Priority: priority,
		})
	}
	return links, nil
}
