package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/litcrawl"
)

// MinLanguageSample is the shortest snippet, in characters, that is
// classified.
const MinLanguageSample = 50

// LanguageGate rejects pages whose snippet is not in an allowed language.
type LanguageGate struct {
	classifier litcrawl.LanguageClassifier
	allowed    map[string]bool
}

// NewLanguageGate creates a gate accepting the given ISO 639-1 codes.
func NewLanguageGate(classifier litcrawl.LanguageClassifier, allowed []string) *LanguageGate {
	set := make(map[string]bool, len(allowed))
	for _, code := range allowed {
		set[strings.ToLower(strings.TrimSpace(code))] = true
	}
	return &LanguageGate{classifier: classifier, allowed: set}
}

// Name returns the stage identifier.
func (g *LanguageGate) Name() string { return "language" }

// Run classifies the snippet extracted by the metadata stage.
func (g *LanguageGate) Run(ctx context.Context, doc *Document) (litcrawl.RejectionReason, error) {
	snippet := doc.Article.Snippet
	if utf8.RuneCountInString(snippet) < MinLanguageSample {
		return litcrawl.ReasonTooShortForLanguage, nil
	}

	lang, err := g.classifier.Classify(ctx, snippet)
	if err != nil {
		return litcrawl.ReasonNone, fmt.Errorf("classify language: %w", err)
	}
	if !g.allowed[strings.ToLower(lang)] {
		return litcrawl.ReasonWrongLanguage, nil
	}
	return litcrawl.ReasonNone, nil
}
