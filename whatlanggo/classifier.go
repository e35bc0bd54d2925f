// Package whatlanggo implements litcrawl.LanguageClassifier using
// trigram-based language detection.
package whatlanggo

import (
	"context"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/litcrawl"
)

var _ litcrawl.LanguageClassifier = (*Classifier)(nil)

// Classifier identifies the language of a text.
type Classifier struct {
	// MinConfidence discards detections below this confidence in [0, 1].
	MinConfidence float64
}

// NewClassifier returns a classifier accepting any detection.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the ISO 639-1 code of the detected language, or an
// empty string when detection fails or is not confident enough.
func (c *Classifier) Classify(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	info := whatlanggo.Detect(text)
	if info.Confidence < c.MinConfidence {
		return "", nil
	}
	return info.Lang.Iso6391(), nil
}
