package extract

import (
	"fmt"
	"math/rand"
	"regexp"
	"sort"
	"strings"

	"github.com/CalKK/docbrain/internal/domain"
)

// Question type tags.
const (
	typeDefinition  = "definition"
	typeExplanation = "explanation"
	typeApplication = "application"
	typeAnalytical  = "analytical"
	typeFactual     = "factual"
	typeProcess     = "process"
)

// stemSet is the shared deduplication state threaded through question
// generation. A question is rejected when its normalized first-6-word stem
// equals, contains, or is contained by a previously accepted stem; this
// catches near-duplicate phrasings across rules, not just exact repeats.
type stemSet struct {
	stems []string
	index map[string]struct{}
}

func newStemSet() *stemSet {
	return &stemSet{index: make(map[string]struct{})}
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

func questionStem(q string) string {
	clean := nonAlnumRe.ReplaceAllString(strings.ToLower(q), "")
	words := strings.Fields(clean)
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, " ")
}

// seen reports whether the question duplicates an accepted one, recording
// its stem when it does not.
func (d *stemSet) seen(question string) bool {
	stem := questionStem(question)
	if _, ok := d.index[stem]; ok {
		return true
	}
	for _, existing := range d.stems {
		if strings.Contains(stem, existing) || strings.Contains(existing, stem) {
			return true
		}
	}
	d.index[stem] = struct{}{}
	d.stems = append(d.stems, stem)
	return false
}

// questionPattern pairs a trigger regex with a builder that synthesizes a
// question/answer/solution tuple from its capture groups. Builders return
// ok=false for malformed extractions; the sentence is then skipped for that
// rule without surfacing an error.
type questionPattern struct {
	name  string
	regex *regexp.Regexp
	build func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool)
}

var definitionIsRe = regexp.MustCompile(`(?i)^(.{5,80}?)\s+(?:is|are)\s+(?:a|an|the)\s+(.{15,}?)\.?\s*$`)

// questionPatterns is the ordered rule grammar: the first matching rule wins.
// process_by precedes because, so a sentence carrying both cues reads as a
// mechanism description rather than a causal claim.
var questionPatterns = []questionPattern{
	{
		name:  "definition_is",
		regex: definitionIsRe,
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			definition := stripPeriod(strings.TrimSpace(m[2]))
			if subject == "" || definition == "" {
				return domain.Question{}, false
			}
			related := supportingSentences(all, subject, sentence, 2)
			context := ""
			if len(related) > 0 {
				context = "\n\nAdditional context: " + joinPeriods(related)
			}
			return domain.Question{
				Question: fmt.Sprintf("Define \"%s\" and explain its significance.", subject),
				Answer:   fmt.Sprintf("%s is a %s.", capitalize(subject), definition),
				Solution: fmt.Sprintf("**Step 1 — Identify the concept:** The term \"%s\" is a key concept in this material.\n\n"+
					"**Step 2 — Core definition:** %s is a %s.\n\n"+
					"**Step 3 — Context & significance:** This concept is important because it establishes the foundation for understanding related ideas.%s",
					subject, capitalize(subject), definition, context),
				Difficulty: domain.DifficultyBasic,
				Type:       typeDefinition,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "definition_refers",
		regex: regexp.MustCompile(`(?i)^(.{5,80}?)\s+(?:refers?\s+to|is\s+defined\s+as|is\s+known\s+as|means)\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			definition := capitalize(stripPeriod(strings.TrimSpace(m[2])))
			if subject == "" || definition == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("What does the term \"%s\" refer to?", subject),
				Answer:   definition + ".",
				Solution: fmt.Sprintf("**Definition:** \"%s\" refers to %s.\n\n"+
					"**Key takeaway:** Understanding this term is essential for grasping the broader concepts discussed in the material.",
					subject, definition),
				Difficulty: domain.DifficultyBasic,
				Type:       typeDefinition,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "provides_verb",
		regex: regexp.MustCompile(`(?i)^(.{5,70}?)\s+(provides?|enables?|allows?|facilitates?|offers?|ensures?|supports?|delivers?)\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			verb := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(m[2])), "s")
			object := stripPeriod(strings.TrimSpace(m[3]))
			if subject == "" || object == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("Explain what %s %ss and why this is important.", strings.ToLower(subject), verb),
				Answer:   fmt.Sprintf("%s %ss %s.", capitalize(subject), verb, object),
				Solution: fmt.Sprintf("**What it %ss:** %s %ss %s.\n\n"+
					"**Why it matters:** This capability is significant because it directly impacts the functionality and effectiveness of the system or concept being discussed.",
					verb, capitalize(subject), verb, object),
				Difficulty: domain.DifficultyIntermediate,
				Type:       typeExplanation,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "purpose_of",
		regex: regexp.MustCompile(`(?i)^(?:the\s+)?(?:purpose|goal|aim|objective|role|function)\s+of\s+(.{5,70}?)\s+is\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			purpose := capitalize(stripPeriod(strings.TrimSpace(m[2])))
			if subject == "" || purpose == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("What is the primary purpose of %s, and how does it achieve this goal?", strings.ToLower(subject)),
				Answer:   fmt.Sprintf("The purpose of %s is %s.", strings.ToLower(subject), purpose),
				Solution: fmt.Sprintf("**Primary purpose:** %s.\n\n"+
					"**How it works:** %s achieves this by providing structured mechanisms that address the specific needs outlined in the material.\n\n"+
					"**Real-world relevance:** Understanding this purpose helps contextualize why %s is designed the way it is.",
					purpose, capitalize(subject), strings.ToLower(subject)),
				Difficulty: domain.DifficultyIntermediate,
				Type:       typeExplanation,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "used_for",
		regex: regexp.MustCompile(`(?i)^(.{5,70}?)\s+(?:is|are)\s+used\s+(for|to|in)\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			usage := stripPeriod(strings.TrimSpace(m[3]))
			if subject == "" || usage == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("How is %s used in practice? Provide specific applications.", strings.ToLower(subject)),
				Answer:   fmt.Sprintf("%s is used %s %s.", capitalize(subject), m[2], usage),
				Solution: fmt.Sprintf("**Application:** %s is used %s %s.\n\n"+
					"**Practical significance:** This application demonstrates the real-world utility of the concept and shows how theoretical knowledge translates into practical outcomes.",
					capitalize(subject), m[2], usage),
				Difficulty: domain.DifficultyIntermediate,
				Type:       typeApplication,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "process_by",
		regex: regexp.MustCompile(`(?i)^(.{5,70}?)\s+(?:works?\s+by|operates?\s+by|functions?\s+by|achieves?\s+this\s+by)\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			process := capitalize(stripPeriod(strings.TrimSpace(m[2])))
			if subject == "" || process == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("Describe the process by which %s operates. What are the key mechanisms?", strings.ToLower(subject)),
				Answer:   fmt.Sprintf("%s works by %s.", capitalize(subject), process),
				Solution: fmt.Sprintf("**Process overview:** %s.\n\n"+
					"**Key mechanisms:** The operation of %s relies on the following principle: %s.\n\n"+
					"**Step-by-step breakdown:**\n1. The system initiates the process described\n2. The mechanism operates as outlined above\n3. The result is achieved through this systematic approach",
					process, strings.ToLower(subject), process),
				Difficulty: domain.DifficultyAdvanced,
				Type:       typeProcess,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "because",
		regex: regexp.MustCompile(`(?i)^(.{15,120}?)\s+because\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			effect := stripPeriod(strings.TrimSpace(m[1]))
			cause := stripPeriod(strings.TrimSpace(m[2]))
			if effect == "" || cause == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("Why does %s? Explain the underlying reasoning.", lowerFirst(effect)),
				Answer:   fmt.Sprintf("Because %s.", cause),
				Solution: fmt.Sprintf("**Cause:** %s.\n\n**Effect:** %s.\n\n"+
					"**Reasoning chain:** The relationship here is causal — the condition described (%s) directly leads to the outcome (%s). This is important for understanding the \"why\" behind this concept.",
					capitalize(cause), capitalize(effect), cause, strings.ToLower(effect)),
				Difficulty: domain.DifficultyAdvanced,
				Type:       typeAnalytical,
				Format:     domain.FormatShortAnswer,
			}, true
		},
	},
	{
		name:  "consists_of",
		regex: regexp.MustCompile(`(?i)^(.{5,70}?)\s+(?:consists?\s+of|is\s+composed\s+of|is\s+made\s+up\s+of|comprises?|includes?)\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			components := capitalize(stripPeriod(strings.TrimSpace(m[2])))
			if subject == "" || components == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("List and explain the components that make up %s.", strings.ToLower(subject)),
				Answer:   fmt.Sprintf("%s consists of %s.", capitalize(subject), components),
				Solution: fmt.Sprintf("**Components of %s:**\n\n%s.\n\n"+
					"**Why this matters:** Understanding the individual components helps break down a complex concept into manageable parts, making it easier to study and apply.",
					subject, components),
				Difficulty: domain.DifficultyIntermediate,
				Type:       typeFactual,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "subset_of",
		regex: regexp.MustCompile(`(?i)^(.{5,70}?)\s+is\s+a\s+(?:subset|type|kind|form|branch|part|category|subfield|area)\s+of\s+(.{5,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			child := stripPeriod(strings.TrimSpace(m[1]))
			parent := stripPeriod(strings.TrimSpace(m[2]))
			if child == "" || parent == "" {
				return domain.Question{}, false
			}
			siblings := supportingSentences(all, parent, sentence, 2)
			related := ""
			if len(siblings) > 0 {
				related = "\n\n**Related areas:** " + joinPeriods(siblings)
			}
			return domain.Question{
				Question: fmt.Sprintf("What broader field does %s belong to, and how does it relate to that field?", strings.ToLower(child)),
				Answer:   fmt.Sprintf("%s is a subfield of %s.", capitalize(child), parent),
				Solution: fmt.Sprintf("**Classification:** %s is a subfield/subset of %s.\n\n"+
					"**Relationship:** As a subdivision, %s focuses on specific aspects while inheriting the foundational principles of %s.%s",
					capitalize(child), parent, strings.ToLower(child), parent, related),
				Difficulty: domain.DifficultyBasic,
				Type:       typeDefinition,
				Format:     domain.FormatShortAnswer,
				Topic:      child,
			}, true
		},
	},
	{
		name:  "concerned_with",
		regex: regexp.MustCompile(`(?i)^(.{5,70}?)\s+(?:is\s+)?(?:concerned\s+with|focused\s+on|deals?\s+with|involves?)\s+(.{15,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			subject := stripPeriod(strings.TrimSpace(m[1]))
			focus := capitalize(stripPeriod(strings.TrimSpace(m[2])))
			if subject == "" || focus == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("What is the primary focus of %s? Describe its scope and areas of concern.", strings.ToLower(subject)),
				Answer:   fmt.Sprintf("%s is concerned with %s.", capitalize(subject), focus),
				Solution: fmt.Sprintf("**Scope:** %s focuses on %s.\n\n"+
					"**Areas of concern:** The field addresses specific challenges and problems related to this focus area, making it a critical domain of study.",
					capitalize(subject), focus),
				Difficulty: domain.DifficultyIntermediate,
				Type:       typeExplanation,
				Format:     domain.FormatShortAnswer,
				Topic:      subject,
			}, true
		},
	},
	{
		name:  "in_order_to",
		regex: regexp.MustCompile(`(?i)^(.{10,100}?)\s+in\s+order\s+to\s+(.{10,}?)\.?\s*$`),
		build: func(m []string, sentence string, all []domain.Sentence) (domain.Question, bool) {
			action := stripPeriod(strings.TrimSpace(m[1]))
			goal := stripPeriod(strings.TrimSpace(m[2]))
			if action == "" || goal == "" {
				return domain.Question{}, false
			}
			return domain.Question{
				Question: fmt.Sprintf("What is the goal of %s?", lowerFirst(action)),
				Answer:   fmt.Sprintf("The goal is to %s.", goal),
				Solution: fmt.Sprintf("**Goal:** To %s.\n\n**Approach:** This is achieved by %s.\n\n"+
					"**Reasoning:** The action-goal relationship here shows purposeful design — the method was chosen specifically to achieve the desired outcome.",
					goal, strings.ToLower(action)),
				Difficulty: domain.DifficultyIntermediate,
				Type:       typeExplanation,
				Format:     domain.FormatShortAnswer,
			}, true
		},
	},
}

// supportingSentences returns up to limit sentences that mention term,
// excluding the sentence the term came from.
func supportingSentences(all []domain.Sentence, term, exclude string, limit int) []string {
	lower := strings.ToLower(term)
	var out []string
	for _, s := range all {
		if s.Text == exclude {
			continue
		}
		if strings.Contains(strings.ToLower(s.Text), lower) {
			out = append(out, s.Text)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

func joinPeriods(sentences []string) string {
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		parts[i] = ensurePeriod(s)
	}
	return strings.Join(parts, " ")
}

var (
	mcqCandidateRe  = regexp.MustCompile(`(?i)^.{5,80}\s+(?:is|are)\s+(?:a|an|the)\s+.{15,}`)
	compareSubjRe   = regexp.MustCompile(`(?i)^(.{5,60}?)\s+(?:is|are)\s+(?:a|an|the)\s+`)
	topicDefCueRe   = regexp.MustCompile(`(?i)\b(?:is a|are a|refers? to|defined as)\b`)
	overviewStemQ   = "Summarize the main concepts covered in this document and explain how they relate to each other."
	synthesisFloor  = 8
	maxMCQ          = 5
	maxTopicProbeQs = 6
)

// generateQuestions applies the rule grammar, the MCQ phase, the synthesis
// phase (documents of more than 8 sentences) and the topic-comprehension
// phase, deduplicating through one shared stem set, and returns the result
// stably sorted by ascending difficulty.
func generateQuestions(tk domain.Toolkit, sentences []domain.Sentence, topics []string, rng *rand.Rand) ([]domain.Question, error) {
	var questions []domain.Question
	dedup := newStemSet()

	// Phase 1: pattern-based short-answer questions; first matching rule wins.
	for _, s := range sentences {
		for _, p := range questionPatterns {
			m := p.regex.FindStringSubmatch(s.Text)
			if m == nil {
				continue
			}
			if q, ok := p.build(m, s.Text, sentences); ok {
				if len(q.Question) > 10 && len(q.Answer) > 10 && !dedup.seen(q.Question) {
					questions = append(questions, q)
				}
			}
			break
		}
	}

	// Phase 2: multiple-choice variants from canonical definition sentences.
	mcqCount := 0
	for _, s := range sentences {
		if mcqCount >= maxMCQ {
			break
		}
		if !mcqCandidateRe.MatchString(s.Text) {
			continue
		}
		mcqCount++
		m := definitionIsRe.FindStringSubmatch(s.Text)
		if m == nil {
			continue
		}
		subject := stripPeriod(strings.TrimSpace(m[1]))
		correct := ensurePeriod("A " + stripPeriod(strings.TrimSpace(m[2])))
		mcq := buildMCQ(subject, correct, topics, sentences, rng)
		if !dedup.seen(mcq.Question) {
			questions = append(questions, mcq)
		}
	}

	// Phase 3: synthesis questions for longer documents.
	if len(sentences) > synthesisFloor {
		var defSubjects []string
		for _, s := range sentences {
			if m := compareSubjRe.FindStringSubmatch(s.Text); m != nil {
				defSubjects = append(defSubjects, stripPeriod(strings.TrimSpace(m[1])))
			}
		}
		if len(defSubjects) >= 2 {
			a, b := defSubjects[0], defSubjects[1]
			q := fmt.Sprintf("Compare and contrast %s and %s. What are their key similarities and differences?",
				strings.ToLower(a), strings.ToLower(b))
			if !dedup.seen(q) {
				aText := joinPeriods(supportingSentences(sentences, a, "", 2))
				bText := joinPeriods(supportingSentences(sentences, b, "", 2))
				if aText == "" {
					aText = "See source material."
				}
				if bText == "" {
					bText = "See source material."
				}
				questions = append(questions, domain.Question{
					Question: q,
					Answer: fmt.Sprintf("Both %s and %s are related concepts, but they differ in scope and application.",
						strings.ToLower(a), strings.ToLower(b)),
					Solution: fmt.Sprintf("**%s:**\n%s\n\n**%s:**\n%s\n\n"+
						"**Similarities:** Both concepts are part of the broader domain discussed in the material.\n\n"+
						"**Differences:** They differ in their specific focus, methods, and applications.",
						capitalize(a), aText, capitalize(b), bText),
					Difficulty: domain.DifficultyAdvanced,
					Type:       typeAnalytical,
					Format:     domain.FormatShortAnswer,
				})
			}
		}

		if !dedup.seen(overviewStemQ) {
			top := topics
			if len(top) > 8 {
				top = top[:8]
			}
			list := strings.Join(top, ", ")
			questions = append(questions, domain.Question{
				Question: overviewStemQ,
				Answer:   fmt.Sprintf("The document covers: %s.", list),
				Solution: fmt.Sprintf("**Main concepts:** %s.\n\n"+
					"**Relationships:** These concepts form an interconnected framework where each builds upon or complements the others. Understanding them together provides a comprehensive view of the subject matter.\n\n"+
					"**Key connections:** The foundational concepts establish definitions, while the applied concepts demonstrate real-world implementation.", list),
				Difficulty: domain.DifficultyAdvanced,
				Type:       typeAnalytical,
				Format:     domain.FormatShortAnswer,
			})
		}
	}

	// Phase 4: topic-comprehension questions over entity-tagged topics.
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text
	}
	entityTopics, err := tk.Entities(strings.Join(texts, ". "))
	if err != nil {
		return nil, err
	}
	seenTopics := make(map[string]struct{})
	probes := 0
	for _, topic := range entityTopics {
		if probes >= maxTopicProbeQs {
			break
		}
		topic = strings.TrimSpace(topic)
		if len(topic) <= 2 {
			continue
		}
		if _, ok := seenTopics[topic]; ok {
			continue
		}
		seenTopics[topic] = struct{}{}
		probes++

		q := fmt.Sprintf("What is the role and significance of %s as discussed in the material?", topic)
		if dedup.seen(q) {
			continue
		}
		var candidates []string
		lower := strings.ToLower(topic)
		for _, s := range sentences {
			if strings.Contains(strings.ToLower(s.Text), lower) {
				candidates = append(candidates, s.Text)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		context := candidates[0]
		for _, c := range candidates {
			if topicDefCueRe.MatchString(c) {
				context = c
				break
			}
		}
		var additional []string
		for _, c := range candidates {
			if c != context {
				additional = append(additional, c)
				if len(additional) >= 2 {
					break
				}
			}
		}
		details := ""
		if len(additional) > 0 {
			details = "\n\n**Further details:** " + joinPeriods(additional)
		}
		questions = append(questions, domain.Question{
			Question: q,
			Answer:   ensurePeriod(context),
			Solution: fmt.Sprintf("**Definition/Role:** %s%s\n\n"+
				"**Significance:** %s plays a critical role in the subject matter because it provides foundational understanding necessary for more advanced concepts.",
				ensurePeriod(context), details, topic),
			Difficulty: domain.DifficultyIntermediate,
			Type:       typeExplanation,
			Format:     domain.FormatShortAnswer,
			Topic:      topic,
		})
	}

	sort.SliceStable(questions, func(i, j int) bool {
		return domain.DifficultyRank(questions[i].Difficulty) < domain.DifficultyRank(questions[j].Difficulty)
	})
	return questions, nil
}
