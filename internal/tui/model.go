package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/CalKK/docbrain/internal/domain"
)

// view identifiers, in tab order.
const (
	viewSummary = iota
	viewQuestions
	viewFlashcards
	viewCount
)

var viewNames = [viewCount]string{"Summary", "Questions", "Flashcards"}

// Model is the Bubble Tea model for browsing an extraction result.
type Model struct {
	result   *domain.ExtractionResult
	filename string
	viewport viewport.Model
	view     int
	cursor   [viewCount]int
	flipped  bool
	solution bool
	status   string
	ready    bool
}

// New creates a TUI model for the given extraction result.
func New(result *domain.ExtractionResult, filename string) Model {
	vp := viewport.New(0, 0)
	return Model{
		result:   result,
		filename: filename,
		viewport: vp,
		status:   "tab: switch view · ←/→: navigate · enter: flip/reveal · q: quit",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, bh := boxStyle.GetFrameSize()
		reserved := 3 + bh // header, tabs, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "tab":
			m.view = (m.view + 1) % viewCount
			m.flipped, m.solution = false, false
			m.viewport.SetContent(m.renderCurrent())
			m.viewport.GotoTop()
			return m, nil
		case "shift+tab":
			m.view = (m.view - 1 + viewCount) % viewCount
			m.flipped, m.solution = false, false
			m.viewport.SetContent(m.renderCurrent())
			m.viewport.GotoTop()
			return m, nil
		case "right", "l":
			if n := m.itemCount(); n > 0 {
				m.cursor[m.view] = (m.cursor[m.view] + 1) % n
				m.flipped, m.solution = false, false
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
			}
			return m, nil
		case "left", "h":
			if n := m.itemCount(); n > 0 {
				m.cursor[m.view] = (m.cursor[m.view] - 1 + n) % n
				m.flipped, m.solution = false, false
				m.viewport.SetContent(m.renderCurrent())
				m.viewport.GotoTop()
			}
			return m, nil
		case "enter", " ":
			switch m.view {
			case viewFlashcards:
				m.flipped = !m.flipped
			case viewQuestions:
				m.solution = !m.solution
			}
			m.viewport.SetContent(m.renderCurrent())
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the header, tabs, active panel and status line.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("docbrain · " + m.filename)
	var tabs []string
	for i, name := range viewNames {
		if i == m.view {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, tabStyle.Render(name))
		}
	}
	status := statusStyle.Render(m.status)
	return header + "\n" + strings.Join(tabs, " ") + "\n" + boxStyle.Render(m.viewport.View()) + "\n" + status
}

func (m Model) itemCount() int {
	switch m.view {
	case viewQuestions:
		return len(m.result.Questions)
	case viewFlashcards:
		return len(m.result.Flashcards)
	default:
		return 0
	}
}

func (m Model) renderCurrent() string {
	switch m.view {
	case viewQuestions:
		return m.renderQuestion()
	case viewFlashcards:
		return m.renderFlashcard()
	default:
		return m.renderSummary()
	}
}

func (m Model) renderSummary() string {
	var sb strings.Builder
	for i, sec := range m.result.SummarySections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(sectionHeadingStyle.Render(sec.Heading))
		sb.WriteString("\n")
		sb.WriteString(sec.Content)
	}
	if sb.Len() == 0 {
		sb.WriteString(m.result.Summary)
	}
	if len(m.result.Topics) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(sectionHeadingStyle.Render("Topics"))
		sb.WriteString("\n")
		sb.WriteString(strings.Join(m.result.Topics, " · "))
	}
	return sb.String()
}

func (m Model) renderQuestion() string {
	qs := m.result.Questions
	if len(qs) == 0 {
		return "No questions were generated."
	}
	q := qs[m.cursor[viewQuestions]]
	title := fmt.Sprintf("Question %d/%d · %s · %s", m.cursor[viewQuestions]+1, len(qs), q.Difficulty, q.Type)

	var sb strings.Builder
	sb.WriteString(sectionHeadingStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(q.Question)
	if len(q.Options) > 0 {
		sb.WriteString("\n")
		for _, o := range q.Options {
			sb.WriteString(fmt.Sprintf("\n  %s) %s", o.Letter, o.Text))
		}
	}
	if m.solution {
		sb.WriteString("\n\n")
		sb.WriteString(answerStyle.Render("Answer: " + q.Answer))
		sb.WriteString("\n\n")
		sb.WriteString(q.Solution)
	} else {
		sb.WriteString("\n\n")
		sb.WriteString(statusStyle.Render("(enter to reveal the answer and solution)"))
	}
	return sb.String()
}

func (m Model) renderFlashcard() string {
	cards := m.result.Flashcards
	if len(cards) == 0 {
		return "No flashcards were generated."
	}
	c := cards[m.cursor[viewFlashcards]]
	side, text := "front", c.Front
	if m.flipped {
		side, text = "back", c.Back
	}
	title := fmt.Sprintf("Card %d/%d · %s · %s · %s", m.cursor[viewFlashcards]+1, len(cards), c.Category, c.Difficulty, side)
	return sectionHeadingStyle.Render(title) + "\n\n" + text
}

var (
	headerStyle         = lipgloss.NewStyle().Bold(true)
	boxStyle            = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	tabStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeTabStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sectionHeadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	answerStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
