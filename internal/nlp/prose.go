// Package nlp adapts the prose toolkit to the narrow language-analysis
// capability the extraction engine depends on.
package nlp

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// ProseToolkit implements domain.Toolkit with jdkato/prose: statistical
// sentence segmentation, POS-tag-based noun phrase chunking, and named
// entity recognition.
type ProseToolkit struct{}

// New returns a ready ProseToolkit.
func New() *ProseToolkit { return &ProseToolkit{} }

// Sentences splits text at sentence boundaries.
func (t *ProseToolkit) Sentences(text string) ([]string, error) {
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	sents := doc.Sentences()
	out := make([]string, 0, len(sents))
	for _, s := range sents {
		out = append(out, s.Text)
	}
	return out, nil
}

// nounPhraseTags are the POS tags allowed inside a noun phrase run. A run
// only qualifies when it contains at least one noun tag.
var nounPhraseTags = map[string]bool{
	"JJ": true, "JJR": true, "JJS": true,
	"NN": true, "NNS": true, "NNP": true, "NNPS": true,
}

func isNounTag(tag string) bool { return strings.HasPrefix(tag, "NN") }

// NounPhrases chunks consecutive adjective/noun token runs into candidate
// phrases, in document order.
func (t *ProseToolkit) NounPhrases(text string) ([]string, error) {
	doc, err := prose.NewDocument(text, prose.WithExtraction(false))
	if err != nil {
		return nil, err
	}
	var phrases []string
	var run []string
	hasNoun := false
	flush := func() {
		if hasNoun && len(run) > 0 {
			phrases = append(phrases, strings.Join(run, " "))
		}
		run = nil
		hasNoun = false
	}
	for _, tok := range doc.Tokens() {
		if nounPhraseTags[tok.Tag] {
			run = append(run, tok.Text)
			if isNounTag(tok.Tag) {
				hasNoun = true
			}
			continue
		}
		flush()
	}
	flush()
	return phrases, nil
}

// Entities returns named entity spans (people, places, organizations) in
// document order.
func (t *ProseToolkit) Entities(text string) ([]string, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, err
	}
	ents := doc.Entities()
	out := make([]string, 0, len(ents))
	for _, e := range ents {
		out = append(out, e.Text)
	}
	return out, nil
}
