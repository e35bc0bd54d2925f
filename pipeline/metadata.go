package pipeline

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/litcrawl"
	litquery "github.com/fwojciec/litcrawl/goquery"
)

// SnippetLength is the maximum snippet length in characters.
const SnippetLength = 200

// MetadataExtractor fills in title, authors and snippet. It never rejects.
type MetadataExtractor struct{}

// NewMetadataExtractor creates a MetadataExtractor.
func NewMetadataExtractor() *MetadataExtractor {
	return &MetadataExtractor{}
}

// Name returns the stage identifier.
func (e *MetadataExtractor) Name() string { return "metadata" }

// Run extracts the metadata fields into the article.
func (e *MetadataExtractor) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	title := strings.TrimSpace(doc.DOM.Find("title").First().Text())
	if title == "" {
		title = litcrawl.NotAvailable
	}
	doc.Article.Title = title

	var authors []string
	doc.DOM.Find(`meta[name="citation_author"]`).Each(func(_ int, sel *goquery.Selection) {
		if name := strings.TrimSpace(sel.AttrOr("content", "")); name != "" {
			authors = append(authors, name)
		}
	})
	doc.Article.Authors = authors

	doc.Article.Snippet = Snippet(strings.Join(litquery.OwnText(doc.DOM.Find("p")), " "))
	return litcrawl.ReasonNone, nil
}

// Snippet trims text and cuts it to SnippetLength characters. Empty text
// yields N/A.
func Snippet(text string) string {
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > SnippetLength {
		text = string(runes[:SnippetLength])
	}
	if text == "" {
		return litcrawl.NotAvailable
	}
	return text
}
