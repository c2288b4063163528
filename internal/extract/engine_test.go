package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineExtract(t *testing.T) {
	t.Run("Should produce a full result with consistent stats", func(t *testing.T) {
		engine := New(mlToolkit(), WithSeed(42))
		result, err := engine.Extract(mlCorpus)
		require.NoError(t, err)

		assert.NotEmpty(t, result.Summary)
		assert.NotEmpty(t, result.SummarySections)
		assert.NotEmpty(t, result.Questions)
		assert.NotEmpty(t, result.Flashcards)
		assert.NotEmpty(t, result.Topics)

		assert.Equal(t, 10, result.Stats.TotalSentences)
		assert.Equal(t, len(result.Questions), result.Stats.TotalQuestions)
		assert.Equal(t, len(result.Flashcards), result.Stats.TotalFlashcards)
		assert.Equal(t, len(result.Topics), result.Stats.TotalTopics)
		assert.Positive(t, result.Stats.CharacterCount)
		assert.Equal(t, len(strings.Fields(Normalize(mlCorpus))), result.Stats.WordCount)
	})

	t.Run("Should be deterministic for a fixed seed", func(t *testing.T) {
		a, err := New(mlToolkit(), WithSeed(7)).Extract(mlCorpus)
		require.NoError(t, err)
		b, err := New(mlToolkit(), WithSeed(7)).Extract(mlCorpus)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("Should vary only the MCQ option order across seeds", func(t *testing.T) {
		a, err := New(mlToolkit(), WithSeed(1)).Extract(mlCorpus)
		require.NoError(t, err)
		b, err := New(mlToolkit(), WithSeed(2)).Extract(mlCorpus)
		require.NoError(t, err)

		assert.Equal(t, a.Summary, b.Summary)
		assert.Equal(t, a.Topics, b.Topics)
		require.Equal(t, len(a.Questions), len(b.Questions))
		for i := range a.Questions {
			assert.Equal(t, a.Questions[i].Question, b.Questions[i].Question)
		}
	})

	t.Run("Should return an empty result for empty input", func(t *testing.T) {
		result, err := New(&fakeToolkit{}).Extract("")
		require.NoError(t, err)
		assert.Equal(t, emptySummaryText, result.Summary)
		assert.Empty(t, result.SummarySections)
		assert.Empty(t, result.Questions)
		assert.Empty(t, result.Flashcards)
		assert.Empty(t, result.Topics)
		assert.Zero(t, result.Stats.TotalSentences)
		assert.Zero(t, result.Stats.WordCount)
	})

	t.Run("Should fall back gracefully when no sentence qualifies", func(t *testing.T) {
		result, err := New(&fakeToolkit{}).Extract("Short. Tiny note. Headers only.")
		require.NoError(t, err)
		assert.Equal(t, emptySummaryText, result.Summary)
		assert.NotNil(t, result.Questions)
		assert.NotNil(t, result.Flashcards)
		assert.NotNil(t, result.Topics)
		assert.Zero(t, result.Stats.TotalSentences)
		assert.Positive(t, result.Stats.WordCount)
		assert.Positive(t, result.Stats.CharacterCount)
	})

	t.Run("Should marshal empty collections as arrays", func(t *testing.T) {
		result, err := New(&fakeToolkit{}).Extract("")
		require.NoError(t, err)
		assert.NotNil(t, result.Questions)
		assert.NotNil(t, result.Flashcards)
		assert.NotNil(t, result.Topics)
	})
}
