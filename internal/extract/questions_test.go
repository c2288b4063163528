package extract

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalKK/docbrain/internal/domain"
)

func generateCorpusQuestions(t *testing.T, seed int64) []domain.Question {
	t.Helper()
	tk := mlToolkit()
	sentences, err := segmentSentences(tk, mlCorpus)
	require.NoError(t, err)
	topics, err := extractTopics(tk, mlCorpus, sentences)
	require.NoError(t, err)
	questions, err := generateQuestions(tk, sentences, topics, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return questions
}

func findQuestion(questions []domain.Question, substr string) (domain.Question, bool) {
	for _, q := range questions {
		if strings.Contains(q.Question, substr) {
			return q, true
		}
	}
	return domain.Question{}, false
}

func TestGenerateQuestions(t *testing.T) {
	questions := generateCorpusQuestions(t, 1)

	t.Run("Should build one question per qualifying sentence plus derived phases", func(t *testing.T) {
		// 10 pattern questions, 1 surviving MCQ, 2 synthesis, 1 topic probe.
		assert.Len(t, questions, 14)
	})

	t.Run("Should build a definition question with the sentence as answer", func(t *testing.T) {
		q, ok := findQuestion(questions, `Define "Machine learning"`)
		require.True(t, ok)
		assert.Equal(t, "Machine learning is a subset of artificial intelligence.", q.Answer)
		assert.Equal(t, domain.DifficultyBasic, q.Difficulty)
		assert.Equal(t, domain.FormatShortAnswer, q.Format)
		assert.Equal(t, "definition", q.Type)
		assert.Equal(t, "Machine learning", q.Topic)
		assert.Contains(t, q.Solution, "**Step 1")
	})

	t.Run("Should read a works-by sentence as a process even when because follows", func(t *testing.T) {
		q, ok := findQuestion(questions, "process by which the engine operates")
		require.True(t, ok)
		assert.Equal(t, "process", q.Type)
		assert.Equal(t, domain.DifficultyAdvanced, q.Difficulty)
		assert.Contains(t, q.Answer, "The engine works by")

		_, causal := findQuestion(questions, "Why does the engine")
		assert.False(t, causal, "works-by sentence must not also yield a causal question")
	})

	t.Run("Should build a causal question from a plain because sentence", func(t *testing.T) {
		q, ok := findQuestion(questions, "Why does overfitting occurs")
		require.True(t, ok)
		assert.Equal(t, "analytical", q.Type)
		assert.Equal(t, "Because the model memorizes noise in the training data.", q.Answer)
	})

	t.Run("Should build a refers-to question with a capitalized answer", func(t *testing.T) {
		q, ok := findQuestion(questions, `"Supervised learning" refer to`)
		require.True(t, ok)
		assert.Equal(t, "Training models on labeled examples provided by humans.", q.Answer)
	})

	t.Run("Should keep only one MCQ per shared stem", func(t *testing.T) {
		var mcqs []domain.Question
		for _, q := range questions {
			if q.Format == domain.FormatMCQ {
				mcqs = append(mcqs, q)
			}
		}
		require.Len(t, mcqs, 1)
		mcq := mcqs[0]
		assert.Contains(t, mcq.Question, `best describes "Machine learning"`)

		require.Len(t, mcq.Options, 4)
		correct := 0
		letters := make([]string, len(mcq.Options))
		for i, o := range mcq.Options {
			letters[i] = o.Letter
			if o.Correct {
				correct++
				assert.Equal(t, "A subset of artificial intelligence.", o.Text)
				assert.True(t, strings.HasPrefix(mcq.Answer, o.Letter+")"))
			}
		}
		assert.Equal(t, 1, correct)
		assert.Equal(t, []string{"A", "B", "C", "D"}, letters)
	})

	t.Run("Should draw MCQ distractors from other definitional sentences", func(t *testing.T) {
		mcq, ok := findQuestion(questions, "best describes")
		require.True(t, ok)
		var texts []string
		for _, o := range mcq.Options {
			if !o.Correct {
				texts = append(texts, o.Text)
			}
		}
		joined := strings.Join(texts, " ")
		assert.Contains(t, joined, "Branch of machine learning")
		assert.Contains(t, joined, "Optimization algorithm")
	})

	t.Run("Should synthesize compare and overview questions for longer documents", func(t *testing.T) {
		compare, ok := findQuestion(questions, "Compare and contrast machine learning and deep learning")
		require.True(t, ok)
		assert.Equal(t, domain.DifficultyAdvanced, compare.Difficulty)
		assert.Contains(t, compare.Solution, "**Machine learning:**")

		overview, ok := findQuestion(questions, "Summarize the main concepts")
		require.True(t, ok)
		assert.Contains(t, overview.Answer, "Machine Learning")
	})

	t.Run("Should probe recognized entities for comprehension", func(t *testing.T) {
		q, ok := findQuestion(questions, "role and significance of Machine Learning")
		require.True(t, ok)
		assert.Equal(t, "Machine learning is a subset of artificial intelligence.", q.Answer)
		assert.Equal(t, domain.DifficultyIntermediate, q.Difficulty)
	})

	t.Run("Should order questions by ascending difficulty", func(t *testing.T) {
		last := 0
		for _, q := range questions {
			rank := domain.DifficultyRank(q.Difficulty)
			assert.GreaterOrEqual(t, rank, last)
			last = rank
		}
	})

	t.Run("Should never emit two questions with the same stem", func(t *testing.T) {
		seen := make(map[string]struct{})
		for _, q := range questions {
			stem := questionStem(q.Question)
			_, dup := seen[stem]
			assert.False(t, dup, "duplicate stem %q", stem)
			seen[stem] = struct{}{}
		}
	})
}

func TestQuestionStemDedup(t *testing.T) {
	t.Run("Should reject exact repeats", func(t *testing.T) {
		d := newStemSet()
		assert.False(t, d.seen("What is the purpose of testing?"))
		assert.True(t, d.seen("What is the purpose of testing?"))
	})

	t.Run("Should reject stems that contain an accepted stem", func(t *testing.T) {
		d := newStemSet()
		assert.False(t, d.seen("Define gravity"))
		assert.True(t, d.seen("Define gravity and explain its significance"))
	})

	t.Run("Should reject stems contained by an accepted stem", func(t *testing.T) {
		d := newStemSet()
		assert.False(t, d.seen("Define gravity and explain its significance"))
		assert.True(t, d.seen("Define gravity"))
	})

	t.Run("Should ignore punctuation and case", func(t *testing.T) {
		d := newStemSet()
		assert.False(t, d.seen(`Define "Machine Learning" and explain its significance.`))
		assert.True(t, d.seen("define machine learning and explain its role"))
	})

	t.Run("Should compare only the first six words", func(t *testing.T) {
		d := newStemSet()
		assert.False(t, d.seen("one two three four five six seven"))
		assert.True(t, d.seen("one two three four five six eight"))
	})
}

func TestGenerateQuestionsCausalPrecedence(t *testing.T) {
	t.Run("Should read an includes sentence with a because clause as causal", func(t *testing.T) {
		tk := &fakeToolkit{}
		text := "The deployment pipeline includes automated smoke checks because regressions must surface early."
		sentences, err := segmentSentences(tk, text)
		require.NoError(t, err)
		require.Len(t, sentences, 1)

		questions, err := generateQuestions(tk, sentences, nil, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "analytical", questions[0].Type)
		assert.Equal(t, domain.DifficultyAdvanced, questions[0].Difficulty)
		assert.Equal(t, "Because regressions must surface early.", questions[0].Answer)
		assert.NotContains(t, questions[0].Question, "components that make up")
	})
}

func TestGenerateQuestionsShortDocument(t *testing.T) {
	t.Run("Should skip synthesis below the sentence floor", func(t *testing.T) {
		tk := &fakeToolkit{}
		text := "Machine learning is a subset of artificial intelligence. " +
			"Deep learning is a branch of machine learning that uses layered neural networks."
		sentences, err := segmentSentences(tk, text)
		require.NoError(t, err)
		require.Len(t, sentences, 2)

		questions, err := generateQuestions(tk, sentences, []string{"Machine learning"}, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		for _, q := range questions {
			assert.NotContains(t, q.Question, "Compare and contrast")
			assert.NotContains(t, q.Question, "Summarize the main concepts")
		}
	})
}
