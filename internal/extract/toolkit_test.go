package extract

import (
	"regexp"
	"strings"
)

// fakeToolkit is a deterministic stand-in for the language toolkit: regex
// sentence boundaries and fixed entity/phrase lists.
type fakeToolkit struct {
	entities []string
	phrases  []string
}

var fakeSentenceRe = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)

func (f *fakeToolkit) Sentences(text string) ([]string, error) {
	parts := fakeSentenceRe.FindAllString(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out, nil
}

func (f *fakeToolkit) NounPhrases(text string) ([]string, error) { return f.phrases, nil }

func (f *fakeToolkit) Entities(text string) ([]string, error) { return f.entities, nil }

// mlCorpus has ten qualifying sentences exercising every pattern rule plus
// the MCQ, synthesis and topic-comprehension phases.
const mlCorpus = `Machine learning is a subset of artificial intelligence.
Deep learning is a branch of machine learning that uses layered neural networks.
Supervised learning refers to training models on labeled examples provided by humans.
The engine works by compressing air because pressure rises quickly.
Neural networks are used for recognizing complex patterns in large datasets.
Gradient descent is an optimization algorithm for finding minima of functions.
Overfitting occurs because the model memorizes noise in the training data.
Regularization provides a penalty that discourages overly complex models.
The purpose of cross validation is to estimate model performance on unseen data.
Data pipelines consist of ingestion, transformation, and storage stages.`

func mlToolkit() *fakeToolkit {
	return &fakeToolkit{
		entities: []string{"Machine Learning"},
		phrases: []string{
			"machine learning", "machine learning", "machine learning",
			"neural networks", "neural networks",
			"gradient descent", "gradient descent",
			"training data",
			"cross validation",
		},
	}
}

