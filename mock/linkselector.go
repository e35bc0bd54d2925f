package mock

import "github.com/fwojciec/litcrawl"

var _ litcrawl.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of litcrawl.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]litcrawl.DiscoveredLink, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]litcrawl.DiscoveredLink, error) {
	return s.ExtractLinksFn(html, baseURL)
}
