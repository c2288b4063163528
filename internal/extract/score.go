package extract

import (
	"math"

	"github.com/CalKK/docbrain/internal/domain"
)

type scoredSentence struct {
	sentence domain.Sentence
	score    float64
	pos      int // position within the scored set
}

// scoreSentences ranks a set of sentences (typically one cluster) by a
// TF-IDF-style importance heuristic with position, length and definitional
// biases. The original document index survives on the sentence for stable
// re-ordering after selection.
func scoreSentences(sentences []domain.Sentence) []scoredSentence {
	tf := make(map[string]int)
	for _, s := range sentences {
		for _, w := range s.Tokens {
			tf[w]++
		}
	}
	df := make(map[string]int)
	for _, s := range sentences {
		seen := make(map[string]struct{}, len(s.Tokens))
		for _, w := range s.Tokens {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			df[w]++
		}
	}

	n := float64(len(sentences))
	out := make([]scoredSentence, 0, len(sentences))
	for i, s := range sentences {
		if len(s.Tokens) == 0 {
			out = append(out, scoredSentence{sentence: s, pos: i})
			continue
		}
		var sum float64
		for _, w := range s.Tokens {
			idf := math.Log((n + 1) / float64(df[w]+1))
			sum += float64(tf[w]) * idf
		}
		tfidf := sum / float64(len(s.Tokens))

		relPos := float64(i) / n
		positionBias := 1.0
		switch {
		case relPos < 0.15:
			positionBias = 1.4 // topic-sentence position
		case relPos > 0.9:
			positionBias = 1.2 // conclusion position
		}
		length := len(s.Text)
		lengthBias := 0.85
		switch {
		case length >= 60 && length <= 250:
			lengthBias = 1.3
		case length > 250 && length <= 400:
			lengthBias = 1.1
		}
		defBonus := 1.0
		if definitionalCueRe.MatchString(s.Text) {
			defBonus = 1.3
		}
		out = append(out, scoredSentence{
			sentence: s,
			score:    tfidf * positionBias * lengthBias * defBonus,
			pos:      i,
		})
	}
	return out
}
