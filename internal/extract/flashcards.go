package extract

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/CalKK/docbrain/internal/domain"
)

const (
	defCardCap     = 20
	topicCardCap   = 30
	processCardCap = 35
	totalCardCap   = 40
	condenseLen    = 220
)

var (
	cardDefRe       = regexp.MustCompile(`(?i)^(.{3,60}?)\s+(?:is|are)\s+(?:a|an|the)\s+(.{15,}?)\.?\s*$`)
	processCueRe    = regexp.MustCompile(`(?i)\b(?:used\s+(?:for|to|in)|works?\s+by|process|method)\b`)
	causalCueRe     = regexp.MustCompile(`(?i)\b(?:because|therefore|in\s+order\s+to)\b`)
	cardSubjectRe   = regexp.MustCompile(`(?i)^(.{5,50}?)\s+(?:is|are|can|works?|provides?|enables?)`)
	comparisonCueRe = regexp.MustCompile(`(?i)\b(?:compared|unlike|whereas|difference|versus|vs)\b`)
	exampleCueRe    = regexp.MustCompile(`(?i)\b(?:example|instance|such as|e\.g\.|for instance)\b`)
	keyConceptCueRe = regexp.MustCompile(`(?i)\b(?:important|significant|critical|essential|key|fundamental)\b`)
	processWordRe   = regexp.MustCompile(`(?i)\b(?:process|step|method|procedure|technique|algorithm|approach)\b`)
	basicCueRe      = regexp.MustCompile(`(?i)\b(?:is a|are a|means|defined as)\b`)
	advancedCueRe   = regexp.MustCompile(`(?i)\b(?:because|therefore|consequently|results? in)\b`)
)

// condense re-matches a sentence against definitional patterns for the given
// term and returns the definition span, falling back to the truncated raw
// sentence.
func condense(sentence, term string) string {
	safeTerm := regexp.QuoteMeta(strings.ToLower(term))
	defPatterns := []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + safeTerm + `\s+(?:is|are)\s+(?:a|an|the)?\s*(.+?)\s*\.?\s*$`),
		regexp.MustCompile(`(?i)` + safeTerm + `\s+(?:refers?\s+to|means|is defined as)\s+(.+?)\s*\.?\s*$`),
	}
	for _, pat := range defPatterns {
		if m := pat.FindStringSubmatch(sentence); m != nil && len(m[1]) > 10 {
			return ensurePeriod(capitalize(strings.TrimSpace(m[1])))
		}
	}
	return ensurePeriod(truncate(strings.TrimSpace(sentence), condenseLen))
}

// categorizeCard sniffs a sentence for category keywords.
func categorizeCard(sentence string) string {
	switch {
	case definitionalCueRe.MatchString(sentence):
		return "definition"
	case processWordRe.MatchString(sentence):
		return "process"
	case comparisonCueRe.MatchString(sentence):
		return "comparison"
	case exampleCueRe.MatchString(sentence):
		return "example"
	case keyConceptCueRe.MatchString(sentence):
		return "key concept"
	default:
		return "key fact"
	}
}

// cardDifficulty sniffs a sentence for difficulty cues: definitional reads as
// basic, causal as advanced.
func cardDifficulty(sentence string) string {
	switch {
	case basicCueRe.MatchString(sentence):
		return domain.DifficultyBasic
	case advancedCueRe.MatchString(sentence):
		return domain.DifficultyAdvanced
	default:
		return domain.DifficultyIntermediate
	}
}

// generateFlashcards runs four strategies in fixed order over one shared
// dedup set: definitional extraction, topic lookup, process/causal cues, and
// cards derived from the generated questions. Output is stably sorted by
// ascending difficulty.
func generateFlashcards(sentences []domain.Sentence, topics []string, questions []domain.Question) []domain.Flashcard {
	var flashcards []domain.Flashcard
	seenTerms := make(map[string]struct{})

	// Strategy 1: definition-based cards.
	for _, s := range sentences {
		if m := cardDefRe.FindStringSubmatch(s.Text); m != nil {
			term := strings.TrimSpace(m[1])
			termKey := strings.ToLower(term)
			if _, ok := seenTerms[termKey]; !ok && len(term) > 2 {
				seenTerms[termKey] = struct{}{}
				flashcards = append(flashcards, domain.Flashcard{
					Front:      capitalize(term),
					Back:       condense(s.Text, term),
					Category:   "definition",
					Difficulty: domain.DifficultyBasic,
					Topic:      capitalize(term),
				})
			}
		}
		if len(flashcards) >= defCardCap {
			break
		}
	}

	// Strategy 2: topic-based cards.
	for _, topic := range topics {
		topicKey := strings.ToLower(topic)
		if _, ok := seenTerms[topicKey]; ok {
			continue
		}
		var candidates []string
		for _, s := range sentences {
			if strings.Contains(strings.ToLower(s.Text), topicKey) && len(s.Text) > 30 {
				candidates = append(candidates, s.Text)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		best := candidates[0]
		for _, c := range candidates {
			if topicDefCueRe.MatchString(c) {
				best = c
				break
			}
		}
		seenTerms[topicKey] = struct{}{}
		flashcards = append(flashcards, domain.Flashcard{
			Front:      capitalize(topic),
			Back:       condense(best, topic),
			Category:   categorizeCard(best),
			Difficulty: cardDifficulty(best),
			Topic:      capitalize(topic),
		})
		if len(flashcards) >= topicCardCap {
			break
		}
	}

	// Strategy 3: process/causal cards.
	for _, s := range sentences {
		if len(flashcards) >= processCardCap {
			break
		}
		isProcess := processCueRe.MatchString(s.Text)
		isCausal := causalCueRe.MatchString(s.Text)
		if !isProcess && !isCausal {
			continue
		}
		m := cardSubjectRe.FindStringSubmatch(s.Text)
		if m == nil {
			continue
		}
		subject := stripPeriod(strings.TrimSpace(m[1]))
		subjectKey := strings.ToLower(subject)
		if _, ok := seenTerms[subjectKey]; ok {
			continue
		}
		seenTerms[subjectKey] = struct{}{}
		front := fmt.Sprintf("Why is %s important?", strings.ToLower(subject))
		category := "key concept"
		if isProcess {
			front = fmt.Sprintf("How does %s work?", strings.ToLower(subject))
			category = "process"
		}
		flashcards = append(flashcards, domain.Flashcard{
			Front:      front,
			Back:       ensurePeriod(truncate(strings.TrimSpace(s.Text), condenseLen)),
			Category:   category,
			Difficulty: domain.DifficultyIntermediate,
			Topic:      capitalize(subject),
		})
	}

	// Strategy 4: cards from the first generated questions; MCQs don't work
	// well as flashcards.
	limit := 8
	if limit > len(questions) {
		limit = len(questions)
	}
	for _, qa := range questions[:limit] {
		if len(flashcards) >= totalCardCap {
			break
		}
		if qa.Format == domain.FormatMCQ {
			continue
		}
		qKey := strings.ToLower(qa.Question)
		if r := []rune(qKey); len(r) > 30 {
			qKey = string(r[:30])
		}
		if _, ok := seenTerms[qKey]; ok {
			continue
		}
		seenTerms[qKey] = struct{}{}
		category := qa.Type
		if category == "" {
			category = "key fact"
		}
		difficulty := qa.Difficulty
		if difficulty == "" {
			difficulty = domain.DifficultyIntermediate
		}
		topic := qa.Topic
		if topic == "" {
			topic = "General"
		}
		flashcards = append(flashcards, domain.Flashcard{
			Front:      qa.Question,
			Back:       qa.Answer,
			Category:   category,
			Difficulty: difficulty,
			Topic:      topic,
		})
	}

	sort.SliceStable(flashcards, func(i, j int) bool {
		return domain.DifficultyRank(flashcards[i].Difficulty) < domain.DifficultyRank(flashcards[j].Difficulty)
	})
	return flashcards
}
