package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/CalKK/docbrain/internal/domain"
)

const (
	topicMergeCap = 20
	topicFinalCap = 15
	maxPhraseLen  = 4
)

type scoredPhrase struct {
	phrase string
	score  float64
}

// extractTopics merges named entities with salience-scored noun phrases into
// a ranked topic list. Entities come first in discovery order; phrases fill
// the remaining slots. Deduplication is case-insensitive.
func extractTopics(tk domain.Toolkit, text string, sentences []domain.Sentence) ([]string, error) {
	entities, err := tk.Entities(text)
	if err != nil {
		return nil, err
	}
	var orderedEntities []string
	seenEntities := make(map[string]struct{})
	for _, e := range entities {
		e = strings.TrimSpace(e)
		if len(e) <= 2 {
			continue
		}
		if _, ok := seenEntities[e]; ok {
			continue
		}
		seenEntities[e] = struct{}{}
		orderedEntities = append(orderedEntities, e)
	}

	phrases, err := tk.NounPhrases(text)
	if err != nil {
		return nil, err
	}
	phraseFreq := make(map[string]int)
	var phraseOrder []string
	for _, np := range phrases {
		key := strings.TrimSpace(strings.ToLower(np))
		if len(key) > 2 && len(strings.Fields(key)) <= maxPhraseLen && !isStopWord(key) {
			if _, ok := phraseFreq[key]; !ok {
				phraseOrder = append(phraseOrder, key)
			}
			phraseFreq[key]++
		}
	}
	totalPhrases := 0
	for _, c := range phraseFreq {
		totalPhrases += c
	}
	if totalPhrases == 0 {
		totalPhrases = 1
	}

	// Frequency-normalized, length-penalized salience: common within the
	// document but not trivially everywhere.
	scored := make([]scoredPhrase, 0, len(phraseFreq))
	for _, key := range phraseOrder {
		count := phraseFreq[key]
		scored = append(scored, scoredPhrase{
			phrase: capitalize(key),
			score:  float64(count) / float64(totalPhrases) * math.Log(1+float64(len(sentences))/float64(count+1)),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	merged := make(map[string]struct{})
	var result []string
	for _, e := range orderedEntities {
		key := strings.ToLower(e)
		if _, ok := merged[key]; !ok {
			merged[key] = struct{}{}
			result = append(result, capitalize(e))
		}
	}
	for _, sp := range scored {
		key := strings.ToLower(sp.phrase)
		if _, ok := merged[key]; !ok && len(result) < topicMergeCap {
			merged[key] = struct{}{}
			result = append(result, sp.phrase)
		}
	}
	if len(result) > topicFinalCap {
		result = result[:topicFinalCap]
	}
	return result, nil
}
