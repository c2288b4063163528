package extract

import (
	"strings"

	"github.com/CalKK/docbrain/internal/domain"
)

const (
	minSentenceLen   = 25
	maxSentenceLen   = 800
	minSentenceWords = 5
)

// segmentSentences splits normalized text into qualifying sentences using the
// toolkit's boundary detection. Headers, captions and fragments are dropped by
// the length and word-count filter. Zero qualifying sentences is a valid
// outcome, not an error.
func segmentSentences(tk domain.Toolkit, text string) ([]domain.Sentence, error) {
	raw, err := tk.Sentences(text)
	if err != nil {
		return nil, err
	}
	var out []domain.Sentence
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if len(s) < minSentenceLen || len(s) > maxSentenceLen {
			continue
		}
		if len(strings.Fields(s)) < minSentenceWords {
			continue
		}
		out = append(out, domain.Sentence{
			Text:   s,
			Index:  len(out),
			Tokens: tokenize(s),
		})
	}
	return out, nil
}
