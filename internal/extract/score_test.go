package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalKK/docbrain/internal/domain"
)

func TestScoreSentences(t *testing.T) {
	t.Run("Should score every input sentence and preserve positions", func(t *testing.T) {
		sentences, err := segmentSentences(&fakeToolkit{}, mlCorpus)
		require.NoError(t, err)
		scored := scoreSentences(sentences)
		require.Len(t, scored, len(sentences))
		for i, sc := range scored {
			assert.Equal(t, i, sc.pos)
			assert.Equal(t, sentences[i].Text, sc.sentence.Text)
			assert.GreaterOrEqual(t, sc.score, 0.0)
		}
	})

	t.Run("Should give token-free sentences a zero score", func(t *testing.T) {
		scored := scoreSentences([]domain.Sentence{{Text: "so it is", Index: 0}})
		require.Len(t, scored, 1)
		assert.Zero(t, scored[0].score)
	})

	t.Run("Should boost definitional sentences over equivalents", func(t *testing.T) {
		defText := "An engine is a machine that converts torque into piston motion for work."
		plainText := "Engines convert torque into piston motion to perform mechanical work daily."
		tokens := []string{"engine", "torque", "piston", "motion", "work"}

		sentences := make([]domain.Sentence, 8)
		for i := range sentences {
			sentences[i] = domain.Sentence{Text: "Filler sentence about unrelated background material for scoring context here.", Index: i, Tokens: []string{"filler", "background", "material"}}
		}
		sentences[3] = domain.Sentence{Text: plainText, Index: 3, Tokens: tokens}
		sentences[4] = domain.Sentence{Text: defText, Index: 4, Tokens: tokens}

		scored := scoreSentences(sentences)
		assert.Greater(t, scored[4].score, scored[3].score)
	})

	t.Run("Should boost opening sentences", func(t *testing.T) {
		text := "Shared tokens appear in matching proportion across both sentences here today."
		tokens := []string{"shared", "tokens", "matching", "proportion"}
		sentences := make([]domain.Sentence, 10)
		for i := range sentences {
			sentences[i] = domain.Sentence{Text: text, Index: i, Tokens: tokens}
		}
		scored := scoreSentences(sentences)
		assert.Greater(t, scored[0].score, scored[5].score)
	})
}
