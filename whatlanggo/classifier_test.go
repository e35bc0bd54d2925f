package whatlanggo_test

import (
	"context"
	"testing"

	"github.com/fwojciec/litcrawl/whatlanggo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	t.Run("detects English", func(t *testing.T) {
		t.Parallel()

		text := "This randomized controlled trial evaluated the efficacy of a new treatment " +
			"for patients with type 2 diabetes over a follow-up period of twelve months."

		lang, err := whatlanggo.NewClassifier().Classify(context.Background(), text)

		require.NoError(t, err)
		assert.Equal(t, "en", lang)
	})

	t.Run("detects German", func(t *testing.T) {
		t.Parallel()

		text := "Diese randomisierte kontrollierte Studie untersuchte die Wirksamkeit einer neuen " +
			"Behandlung bei Patienten mit Diabetes über einen Zeitraum von zwölf Monaten."

		lang, err := whatlanggo.NewClassifier().Classify(context.Background(), text)

		require.NoError(t, err)
		assert.Equal(t, "de", lang)
	})

	t.Run("returns empty code below minimum confidence", func(t *testing.T) {
		t.Parallel()

		c := &whatlanggo.Classifier{MinConfidence: 1.1}

		lang, err := c.Classify(context.Background(), "This is clearly an English sentence about clinical trials.")

		require.NoError(t, err)
		assert.Empty(t, lang)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := whatlanggo.NewClassifier().Classify(ctx, "some text")

		require.ErrorIs(t, err, context.Canceled)
	})
}
