package extract

import (
	"regexp"
	"strings"
	"unicode"
)

var stopWords = func() map[string]struct{} {
	words := []string{
		"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "could",
		"should", "may", "might", "shall", "can", "need", "dare", "ought",
		"used", "to", "of", "in", "for", "on", "with", "at", "by", "from",
		"as", "into", "through", "during", "before", "after", "above", "below",
		"between", "out", "off", "over", "under", "again", "further", "then",
		"once", "here", "there", "when", "where", "why", "how", "all", "both",
		"each", "few", "more", "most", "other", "some", "such", "no", "nor",
		"not", "only", "own", "same", "so", "than", "too", "very", "just",
		"because", "but", "and", "or", "if", "while", "although", "that",
		"which", "who", "whom", "this", "these", "those", "it", "its", "they",
		"them", "their", "what", "about", "also", "many", "much", "well",
		"back", "even", "still", "new", "one", "two", "first", "last",
		"long", "great", "little", "old", "right", "big", "high",
		"different", "small", "large", "next", "early", "young", "important",
		"public", "bad", "good", "make", "made", "like", "use", "her", "him",
		"his", "she", "he", "we", "you", "me", "my", "our", "your",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

func isStopWord(w string) bool {
	_, ok := stopWords[strings.ToLower(w)]
	return ok
}

var nonWordRe = regexp.MustCompile(`\W+`)

// tokenize lowercases text and returns words longer than two characters,
// stop words excluded.
func tokenize(text string) []string {
	var out []string
	for _, w := range nonWordRe.Split(strings.ToLower(text), -1) {
		if len(w) > 2 && !isStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// capitalize uppercases the first rune only.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// lowerFirst lowercases the first rune only.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

var trailingPeriodRe = regexp.MustCompile(`\.\s*$`)

func stripPeriod(s string) string {
	return strings.TrimSpace(trailingPeriodRe.ReplaceAllString(s, ""))
}

func ensurePeriod(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || !strings.ContainsAny(s[len(s)-1:], ".!?") {
		s += "."
	}
	return s
}

var trailingPartialWordRe = regexp.MustCompile(`\s+\S*$`)

// truncate cuts text at maxLen runes, dropping any trailing partial word.
func truncate(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	return trailingPartialWordRe.ReplaceAllString(string(r[:maxLen]), "") + "…"
}

// definitionalCueRe marks sentences that state a definition.
var definitionalCueRe = regexp.MustCompile(`(?i)\b(?:is a|are a|refers? to|defined as|known as|means)\b`)
