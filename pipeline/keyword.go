package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/fwojciec/litcrawl"
	litquery "github.com/fwojciec/litcrawl/goquery"
)

const (
	wordBoundary    = `(?:^|[^\p{L}\p{N}_])`
	wordBoundaryEnd = `(?:$|[^\p{L}\p{N}_])`
)

// KeywordMatcher rejects pages that mention none of the topic keywords.
//
// An Aho-Corasick automaton finds candidate keywords in one pass over the
// page text; each candidate is then confirmed with a word-boundary
// expression so that "cancer" does not match "cancerous". Boundaries
// treat any Unicode letter or digit as part of a word.
type KeywordMatcher struct {
	keywords []string
	patterns []*regexp.Regexp
	matcher  *ahocorasick.Matcher
}

// NewKeywordMatcher creates a matcher for keywords. Keywords are
// lower-cased and de-duplicated, keeping their configured order.
// Returns EINVALID if no keyword remains.
func NewKeywordMatcher(keywords []string) (*KeywordMatcher, error) {
	seen := make(map[string]bool, len(keywords))
	m := &KeywordMatcher{}
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		m.keywords = append(m.keywords, kw)
		m.patterns = append(m.patterns, regexp.MustCompile(wordBoundary+regexp.QuoteMeta(kw)+wordBoundaryEnd))
	}
	if len(m.keywords) == 0 {
		return nil, litcrawl.Errorf(litcrawl.EINVALID, "at least one keyword required")
	}
	m.matcher = ahocorasick.NewStringMatcher(m.keywords)
	return m, nil
}

// Name returns the stage identifier.
func (m *KeywordMatcher) Name() string { return "keyword" }

// Run matches the page's visible text and records the keywords found.
func (m *KeywordMatcher) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	found := m.Match(strings.ToLower(litquery.VisibleText(doc.DOM)))
	if len(found) == 0 {
		return litcrawl.ReasonNoKeywordMatch, nil
	}
	doc.Article.MatchedKeywords = found
	return litcrawl.ReasonNone, nil
}

// Match returns the keywords occurring in text as whole words, in
// configured order. Text must already be lower-cased.
func (m *KeywordMatcher) Match(text string) []string {
	hits := m.matcher.MatchThreadSafe([]byte(text))
	if len(hits) == 0 {
		return nil
	}

	candidate := make([]bool, len(m.keywords))
	for _, i := range hits {
		if i < len(candidate) {
			candidate[i] = true
		}
	}

	var found []string
	for i, kw := range m.keywords {
		if candidate[i] && m.patterns[i].MatchString(text) {
			found = append(found, kw)
		}
	}
	return found
}
