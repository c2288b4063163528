package extract

import (
	"sort"

	"github.com/CalKK/docbrain/internal/domain"
)

const maxClusters = 6

// clusterByTheme partitions sentences into topic-coherent buckets using
// shared-vocabulary co-occurrence. Documents of three or fewer sentences
// collapse to a single "Overview" cluster. Every sentence is assigned to
// exactly one cluster.
func clusterByTheme(sentences []domain.Sentence) []domain.ThemeCluster {
	if len(sentences) <= 3 {
		return []domain.ThemeCluster{{Theme: "Overview", Sentences: sentences}}
	}

	// Inverted index: token -> sentence positions containing it.
	termSentences := make(map[string][]int)
	var termOrder []string
	for i, s := range sentences {
		seen := make(map[string]struct{}, len(s.Tokens))
		for _, w := range s.Tokens {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			if _, ok := termSentences[w]; !ok {
				termOrder = append(termOrder, w)
			}
			termSentences[w] = append(termSentences[w], i)
		}
	}

	// Theme candidates: present in at least 2 sentences but at most 60% of
	// them. Ordered by descending document frequency; ties keep first-seen
	// order for determinism.
	firstSeen := make(map[string]int, len(termOrder))
	for i, t := range termOrder {
		firstSeen[t] = i
	}
	var themeTerms []string
	for _, t := range termOrder {
		n := len(termSentences[t])
		if n >= 2 && float64(n) <= float64(len(sentences))*0.6 {
			themeTerms = append(themeTerms, t)
		}
	}
	sort.SliceStable(themeTerms, func(i, j int) bool {
		di, dj := len(termSentences[themeTerms[i]]), len(termSentences[themeTerms[j]])
		if di != dj {
			return di > dj
		}
		return firstSeen[themeTerms[i]] < firstSeen[themeTerms[j]]
	})

	var clusters []domain.ThemeCluster
	assigned := make(map[int]struct{})
	for _, term := range themeTerms {
		var unassigned []int
		for _, i := range termSentences[term] {
			if _, ok := assigned[i]; !ok {
				unassigned = append(unassigned, i)
			}
		}
		if len(unassigned) < 2 {
			continue
		}
		members := make([]domain.Sentence, 0, len(unassigned))
		for _, i := range unassigned {
			members = append(members, sentences[i])
			assigned[i] = struct{}{}
		}
		clusters = append(clusters, domain.ThemeCluster{Theme: capitalize(term), Sentences: members})
		if len(clusters) >= maxClusters {
			break
		}
	}

	var remaining []domain.Sentence
	for i, s := range sentences {
		if _, ok := assigned[i]; !ok {
			remaining = append(remaining, s)
		}
	}
	if len(remaining) > 0 {
		theme := "Additional Details"
		if len(clusters) == 0 {
			theme = "Overview"
		}
		clusters = append(clusters, domain.ThemeCluster{Theme: theme, Sentences: remaining})
	}
	return clusters
}
