package extract

import (
	"math"
	"sort"
	"strings"

	"github.com/CalKK/docbrain/internal/domain"
)

const emptySummaryText = "The document did not contain enough text to generate a summary."

// generateSummary composes theme clusters and per-cluster sentence scores
// into headed sections plus a flat summary text.
func generateSummary(sentences []domain.Sentence) (string, []domain.SummarySection) {
	if len(sentences) == 0 {
		return emptySummaryText, nil
	}

	// Too little content to subdivide: return everything as one section.
	if len(sentences) <= 5 {
		parts := make([]string, len(sentences))
		for i, s := range sentences {
			parts[i] = ensurePeriod(s.Text)
		}
		text := strings.Join(parts, " ")
		return text, []domain.SummarySection{{Heading: "Overview", Content: text}}
	}

	clusters := clusterByTheme(sentences)
	sections := make([]domain.SummarySection, 0, len(clusters))
	for _, cluster := range clusters {
		scored := scoreSentences(cluster.Sentences)
		sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

		// Proportional cap keeps sections digestible while scaling with
		// cluster richness.
		take := int(math.Ceil(float64(len(cluster.Sentences)) * 0.6))
		if take < 2 {
			take = 2
		}
		if take > 5 {
			take = 5
		}
		if take > len(scored) {
			take = len(scored)
		}
		top := scored[:take]

		// Selection was score-driven; restore narrative order within the theme.
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].sentence.Index < top[j].sentence.Index
		})

		parts := make([]string, len(top))
		for i, sc := range top {
			parts[i] = ensurePeriod(sc.sentence.Text)
		}
		sections = append(sections, domain.SummarySection{
			Heading: cluster.Theme,
			Content: strings.Join(parts, " "),
		})
	}

	contents := make([]string, len(sections))
	for i, s := range sections {
		contents[i] = s.Content
	}
	return strings.Join(contents, "\n\n"), sections
}
