package domain

// Difficulty tiers, in ascending order of demand on the learner.
const (
	DifficultyBasic        = "basic"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Question formats.
const (
	FormatShortAnswer = "short-answer"
	FormatMCQ         = "mcq"
)

// DifficultyRank maps a difficulty tier to its sort order.
// Unknown tiers rank alongside basic.
func DifficultyRank(d string) int {
	switch d {
	case DifficultyIntermediate:
		return 1
	case DifficultyAdvanced:
		return 2
	default:
		return 0
	}
}

// Sentence is a segmented sentence with its position in document order and
// its lowercased, stop-word-filtered tokens. Never mutated after segmentation.
type Sentence struct {
	Text   string
	Index  int
	Tokens []string
}

// ThemeCluster groups sentences that share a salient vocabulary term.
type ThemeCluster struct {
	Theme     string
	Sentences []Sentence
}

// SummarySection is one headed part of the generated summary.
type SummarySection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

// QuestionOption is a single multiple-choice option.
type QuestionOption struct {
	Letter  string `json:"letter"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is a generated exam-style question with its answer and a worked
// solution. Topic is empty when no single subject applies. Options is only
// populated for MCQ-format questions.
type Question struct {
	Question   string           `json:"question"`
	Answer     string           `json:"answer"`
	Solution   string           `json:"solution"`
	Difficulty string           `json:"difficulty"`
	Type       string           `json:"type"`
	Format     string           `json:"questionFormat"`
	Topic      string           `json:"topic,omitempty"`
	Options    []QuestionOption `json:"options,omitempty"`
}

// Flashcard is a front/back study card.
type Flashcard struct {
	Front      string `json:"front"`
	Back       string `json:"back"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Topic      string `json:"topic"`
}

// Stats holds counts measured from the other ExtractionResult fields.
type Stats struct {
	TotalSentences  int `json:"totalSentences"`
	TotalQuestions  int `json:"totalQuestions"`
	TotalFlashcards int `json:"totalFlashcards"`
	TotalTopics     int `json:"totalTopics"`
	CharacterCount  int `json:"characterCount"`
	WordCount       int `json:"wordCount"`
}

// ExtractionResult is the terminal aggregate produced by one engine call.
type ExtractionResult struct {
	Summary         string           `json:"summary"`
	SummarySections []SummarySection `json:"summarySections"`
	Questions       []Question       `json:"questions"`
	Flashcards      []Flashcard      `json:"flashcards"`
	Topics          []string         `json:"topics"`
	Stats           Stats            `json:"stats"`
}
