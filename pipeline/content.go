package pipeline

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/litcrawl"
)

// contentCheck reports whether a page contains one content category.
type contentCheck func(dom *goquery.Document) bool

// ContentDetector records which content categories a page contains and
// rejects pages with none of the configured ones.
type ContentDetector struct {
	categories []litcrawl.ContentCategory
	checks     map[litcrawl.ContentCategory]contentCheck
}

// NewContentDetector creates a detector for categories, evaluated in the
// given order. Links outside domain count as external.
func NewContentDetector(categories []litcrawl.ContentCategory, domain string) *ContentDetector {
	return &ContentDetector{
		categories: categories,
		checks: map[litcrawl.ContentCategory]contentCheck{
			litcrawl.ContentImage:        hasElement("img[src]"),
			litcrawl.ContentVideo:        hasElement("video, iframe"),
			litcrawl.ContentPDF:          hasPDFLink,
			litcrawl.ContentTable:        hasElement("table"),
			litcrawl.ContentFigure:       hasElement("figure"),
			litcrawl.ContentExternalLink: hasExternalLink(domain),
		},
	}
}

// Name returns the stage identifier.
func (d *ContentDetector) Name() string { return "content" }

// Run sets the article's content types and rejects if none matched.
func (d *ContentDetector) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	found := d.Detect(doc.DOM)
	if len(found) == 0 {
		return litcrawl.ReasonNoRequiredContent, nil
	}
	doc.Article.ContentTypesFound = found
	return litcrawl.ReasonNone, nil
}

// Detect returns the configured categories present in dom.
func (d *ContentDetector) Detect(dom *goquery.Document) []litcrawl.ContentCategory {
	var found []litcrawl.ContentCategory
	for _, c := range d.categories {
		if check, ok := d.checks[c]; ok && check(dom) {
			found = append(found, c)
		}
	}
	return found
}

func hasElement(selector string) contentCheck {
	return func(dom *goquery.Document) bool {
		return dom.Find(selector).Length() > 0
	}
}

func hasPDFLink(dom *goquery.Document) bool {
	return dom.Find("a[href]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		return strings.HasSuffix(strings.ToLower(strings.TrimSpace(href)), ".pdf")
	}).Length() > 0
}

func hasExternalLink(domain string) contentCheck {
	return func(dom *goquery.Document) bool {
		return dom.Find("a[href]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			u, err := url.Parse(strings.TrimSpace(href))
			if err != nil || u.Host == "" {
				return false
			}
			scheme := strings.ToLower(u.Scheme)
			if scheme != "http" && scheme != "https" {
				return false
			}
			return !litcrawl.MatchesDomain(u.Hostname(), domain)
		}).Length() > 0
	}
}
