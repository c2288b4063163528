package extract

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/CalKK/docbrain/internal/domain"
)

var (
	distractorCueRe = regexp.MustCompile(`(?i)\b(?:is|are|refers|means)\b`)
	distractorDefRe = regexp.MustCompile(`(?i)\b(?:is|are)\s+(?:a|an|the)\s+(.{15,80}?)(?:\.|,|$)`)
)

// genericDistractors fill in when the document yields fewer than three
// usable distractors.
var genericDistractors = []string{
	"A type of data structure used exclusively in databases",
	"A hardware component designed for physical computing",
	"A mathematical theorem with no practical applications",
	"A methodology primarily used in manual testing processes",
}

// buildMCQ synthesizes a multiple-choice variant of a definition question.
// Distractors come from other topics' own definitional sentences; the four
// options are shuffled with the injected random source and the correct
// letter recomputed afterwards.
func buildMCQ(subject, correctAnswer string, topics []string, sentences []domain.Sentence, rng *rand.Rand) domain.Question {
	subjectLower := strings.ToLower(subject)
	var otherTopics []string
	for _, t := range topics {
		if strings.ToLower(t) != subjectLower {
			otherTopics = append(otherTopics, t)
			if len(otherTopics) >= 6 {
				break
			}
		}
	}

	var distractors []string
	for _, topic := range otherTopics {
		topicLower := strings.ToLower(topic)
		for _, s := range sentences {
			if !strings.Contains(strings.ToLower(s.Text), topicLower) || !distractorCueRe.MatchString(s.Text) {
				continue
			}
			if m := distractorDefRe.FindStringSubmatch(s.Text); m != nil {
				distractors = append(distractors, capitalize(stripPeriod(strings.TrimSpace(m[1]))))
			}
			break
		}
		if len(distractors) >= 3 {
			break
		}
	}
	for len(distractors) < 3 {
		distractors = append(distractors, genericDistractors[len(distractors)])
	}

	type option struct {
		text    string
		correct bool
	}
	options := []option{{text: correctAnswer, correct: true}}
	for _, d := range distractors[:3] {
		options = append(options, option{text: ensurePeriod(d)})
	}

	// Fisher-Yates shuffle; the engine's only nondeterminism.
	for i := len(options) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		options[i], options[j] = options[j], options[i]
	}

	out := make([]domain.QuestionOption, len(options))
	correctLetter := ""
	for i, o := range options {
		letter := string(rune('A' + i))
		out[i] = domain.QuestionOption{Letter: letter, Text: o.text, Correct: o.correct}
		if o.correct {
			correctLetter = letter
		}
	}

	var wrong []string
	for _, o := range out {
		if !o.Correct {
			wrong = append(wrong, fmt.Sprintf("- Option %s: This describes a different concept and does not match the definition of %s.",
				o.Letter, subjectLower))
		}
	}

	return domain.Question{
		Question: fmt.Sprintf("Which of the following best describes \"%s\"?", subject),
		Options:  out,
		Answer:   fmt.Sprintf("%s) %s", correctLetter, correctAnswer),
		Solution: fmt.Sprintf("**Correct answer: %s**\n\n**Explanation:** %s is defined as: %s\n\n**Why other options are incorrect:**\n%s",
			correctLetter, capitalize(subject), correctAnswer, strings.Join(wrong, "\n")),
		Difficulty: domain.DifficultyBasic,
		Type:       typeDefinition,
		Format:     domain.FormatMCQ,
		Topic:      subject,
	}
}
