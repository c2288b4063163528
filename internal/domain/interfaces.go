package domain

// Toolkit is the language-analysis capability the engine depends on.
// Implementations must be safe for concurrent use.
type Toolkit interface {
	// Sentences splits text at sentence boundaries.
	Sentences(text string) ([]string, error)
	// NounPhrases returns candidate noun phrases in document order.
	NounPhrases(text string) ([]string, error)
	// Entities returns named entities (people, places, organizations,
	// topic-tagged spans) in document order.
	Entities(text string) ([]string, error)
}

// Extractor turns plain document text into structured study material.
type Extractor interface {
	Extract(text string) (*ExtractionResult, error)
}
