// Package extract turns plain document text into structured study material:
// a themed summary, exam-style questions with worked solutions, and a deck of
// flashcards, all annotated with topic and difficulty metadata.
//
// The engine is a pure, stateless function from text to structured output; it
// performs no I/O and keeps no state across invocations. The MCQ option
// shuffle is the only nondeterminism and draws from an injectable random
// source, so a seeded Engine is fully deterministic.
package extract

import (
	"math/rand"
	"strings"
	"time"

	"github.com/CalKK/docbrain/internal/domain"
)

// Engine runs the extraction pipeline. An Engine is cheap to construct; use
// one per call when calls run concurrently, since the random source is not
// synchronized.
type Engine struct {
	toolkit domain.Toolkit
	rng     *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed makes the MCQ option shuffle deterministic.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New creates an Engine backed by the given language toolkit.
func New(toolkit domain.Toolkit, opts ...Option) *Engine {
	e := &Engine{
		toolkit: toolkit,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs normalize, segment, topics, summary, questions and flashcards
// over the given text and assembles the result. A document yielding zero
// qualifying sentences produces a minimal result with a readable summary
// fallback, not an error; errors only surface from the toolkit itself.
func (e *Engine) Extract(text string) (*domain.ExtractionResult, error) {
	cleaned := Normalize(text)

	sentences, err := segmentSentences(e.toolkit, cleaned)
	if err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return &domain.ExtractionResult{
			Summary:         emptySummaryText,
			SummarySections: []domain.SummarySection{},
			Questions:       []domain.Question{},
			Flashcards:      []domain.Flashcard{},
			Topics:          []string{},
			Stats: domain.Stats{
				CharacterCount: len([]rune(cleaned)),
				WordCount:      len(strings.Fields(cleaned)),
			},
		}, nil
	}

	topics, err := extractTopics(e.toolkit, cleaned, sentences)
	if err != nil {
		return nil, err
	}
	summary, sections := generateSummary(sentences)
	questions, err := generateQuestions(e.toolkit, sentences, topics, e.rng)
	if err != nil {
		return nil, err
	}
	flashcards := generateFlashcards(sentences, topics, questions)

	// Empty collections serialize as [] rather than null.
	if topics == nil {
		topics = []string{}
	}
	if questions == nil {
		questions = []domain.Question{}
	}
	if flashcards == nil {
		flashcards = []domain.Flashcard{}
	}

	return &domain.ExtractionResult{
		Summary:         summary,
		SummarySections: sections,
		Questions:       questions,
		Flashcards:      flashcards,
		Topics:          topics,
		Stats: domain.Stats{
			TotalSentences:  len(sentences),
			TotalQuestions:  len(questions),
			TotalFlashcards: len(flashcards),
			TotalTopics:     len(topics),
			CharacterCount:  len([]rune(cleaned)),
			WordCount:       len(strings.Fields(cleaned)),
		},
	}, nil
}
