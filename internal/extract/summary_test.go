package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalKK/docbrain/internal/domain"
)

func TestGenerateSummary(t *testing.T) {
	t.Run("Should fall back to a fixed message for no sentences", func(t *testing.T) {
		text, sections := generateSummary(nil)
		assert.Equal(t, emptySummaryText, text)
		assert.Empty(t, sections)
	})

	t.Run("Should return one overview section for five or fewer sentences", func(t *testing.T) {
		sentences := []domain.Sentence{
			mkSentence(0, "First fact about the subject"),
			mkSentence(1, "Second fact about the subject."),
		}
		text, sections := generateSummary(sentences)
		require.Len(t, sections, 1)
		assert.Equal(t, "Overview", sections[0].Heading)
		assert.Equal(t, "First fact about the subject. Second fact about the subject.", text)
		assert.Equal(t, text, sections[0].Content)
	})

	t.Run("Should build themed sections for longer documents", func(t *testing.T) {
		sentences, err := segmentSentences(&fakeToolkit{}, mlCorpus)
		require.NoError(t, err)
		text, sections := generateSummary(sentences)

		require.NotEmpty(t, sections)
		contents := make([]string, len(sections))
		for i, s := range sections {
			assert.NotEmpty(t, s.Heading)
			assert.NotEmpty(t, s.Content)
			contents[i] = s.Content
		}
		assert.Equal(t, strings.Join(contents, "\n\n"), text)
	})

	t.Run("Should keep selected sentences in document order within a section", func(t *testing.T) {
		sentences, err := segmentSentences(&fakeToolkit{}, mlCorpus)
		require.NoError(t, err)
		_, sections := generateSummary(sentences)

		for _, section := range sections {
			lastOffset := -1
			for _, s := range sentences {
				offset := strings.Index(section.Content, s.Text)
				if offset < 0 {
					continue
				}
				assert.Greater(t, offset, lastOffset,
					"sentence %d out of order in section %q", s.Index, section.Heading)
				lastOffset = offset
			}
		}
	})
}
