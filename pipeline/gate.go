package pipeline

import (
	"context"
	"net/http"
	"strings"

	"github.com/fwojciec/litcrawl"
)

// loginSelector matches password fields and login forms.
const loginSelector = `input[type="password"], form[id*="login"], form[class*="login"]`

// AuthGate rejects pages that sit behind authentication.
type AuthGate struct {
	keywords []string
}

// NewAuthGate creates a gate that treats any URL containing one of
// keywords as an authentication page.
func NewAuthGate(keywords []string) *AuthGate {
	lower := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			lower = append(lower, kw)
		}
	}
	return &AuthGate{keywords: lower}
}

// Name returns the stage identifier.
func (g *AuthGate) Name() string { return "auth" }

// Run rejects on an auth keyword in the URL, a 401 or 403 status, or a
// login form in the page.
func (g *AuthGate) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	u := strings.ToLower(doc.Page.URL)
	for _, kw := range g.keywords {
		if strings.Contains(u, kw) {
			return litcrawl.ReasonAuthWall, nil
		}
	}
	switch doc.Page.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return litcrawl.ReasonAuthWall, nil
	}
	if doc.DOM.Find(loginSelector).Length() > 0 {
		return litcrawl.ReasonAuthWall, nil
	}
	return litcrawl.ReasonNone, nil
}

// SizeGate rejects oversized pages.
type SizeGate struct {
	maxBytes int
}

// NewSizeGate creates a gate rejecting bodies longer than maxBytes.
func NewSizeGate(maxBytes int) *SizeGate {
	return &SizeGate{maxBytes: maxBytes}
}

// Name returns the stage identifier.
func (g *SizeGate) Name() string { return "size" }

// Run rejects when the body exceeds the limit.
func (g *SizeGate) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	if len(doc.Page.Body) > g.maxBytes {
		return litcrawl.ReasonTooLarge, nil
	}
	return litcrawl.ReasonNone, nil
}

// StructureGate rejects pages missing a required element.
type StructureGate struct {
	markers []litcrawl.Marker
}

// NewStructureGate creates a gate requiring every marker, checked in order.
func NewStructureGate(markers []litcrawl.Marker) *StructureGate {
	return &StructureGate{markers: markers}
}

// Name returns the stage identifier.
func (g *StructureGate) Name() string { return "structure" }

// Run rejects at the first marker with no matching element.
func (g *StructureGate) Run(_ context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	for _, m := range g.markers {
		if doc.DOM.Find(m.Selector()).Length() == 0 {
			return litcrawl.ReasonMissingStructure, nil
		}
	}
	return litcrawl.ReasonNone, nil
}
