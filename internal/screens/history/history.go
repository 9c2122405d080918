package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// maxAttempts is how many finished attempts are listed.
const maxAttempts = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptEventRecord
	Answers  map[string][]store.AnswerEventRecord // attemptID → answers
	Err      error
}

// HistoryScreen displays past level attempts and their answers.
type HistoryScreen struct {
	eventRepo    store.EventRepo
	attempts     []store.AttemptEventRecord
	answers      map[string][]store.AnswerEventRecord
	selected     int
	scrollOffset int
	expanded     map[int]bool
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		events, err := repo.QueryAttemptEvents(ctx, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		var attempts []store.AttemptEventRecord
		for _, e := range events {
			if e.Action != "complete" && e.Action != "abandon" {
				continue
			}
			attempts = append(attempts, e)
			if len(attempts) == maxAttempts {
				break
			}
		}

		byAttempt := make(map[string][]store.AnswerEventRecord)
		if len(attempts) == 0 {
			return historyLoadedMsg{Answers: byAttempt}
		}
		// Answers follow the start event of the oldest listed attempt.
		oldest := attempts[len(attempts)-1]
		after := int64(0)
		for _, e := range events {
			if e.AttemptID == oldest.AttemptID && e.Action == "start" {
				after = e.Sequence
			}
		}
		answers, err := repo.QueryAnswerEvents(ctx, store.QueryOpts{After: after})
		if err != nil {
			return historyLoadedMsg{Attempts: attempts, Answers: byAttempt}
		}
		for _, a := range answers {
			byAttempt[a.AttemptID] = append(byAttempt[a.AttemptID], a)
		}
		return historyLoadedMsg{Attempts: attempts, Answers: byAttempt}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.answers = msg.Answers
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Start practicing!")
	}

	// Each attempt is rendered as a block so the selected one can be
	// scrolled into view together with its details.
	blocks := make([][]string, len(s.attempts))
	for i, a := range s.attempts {
		blocks[i] = s.renderAttempt(i, a, width)
	}
	s.adjustScroll(blocks, height-1)

	var lines []string
	lines = append(lines, "")
	for i := s.scrollOffset; i < len(blocks); i++ {
		if len(lines)+len(blocks[i]) > height && i > s.scrollOffset {
			break
		}
		lines = append(lines, blocks[i]...)
	}
	return strings.Join(lines, "\n")
}

func (s *HistoryScreen) adjustScroll(blocks [][]string, height int) {
	if s.selected < s.scrollOffset {
		s.scrollOffset = s.selected
		return
	}
	for {
		used := 0
		for i := s.scrollOffset; i <= s.selected; i++ {
			used += len(blocks[i])
		}
		if used <= height || s.scrollOffset == s.selected {
			return
		}
		s.scrollOffset++
	}
}

func (s *HistoryScreen) renderAttempt(i int, a store.AttemptEventRecord, width int) []string {
	dateStr := a.Timestamp.Local().Format("Jan 02 15:04")
	answers := s.answers[a.AttemptID]

	correct := 0
	for _, ans := range answers {
		if ans.Correct {
			correct++
		}
	}

	mode := a.Mode
	if m, err := mastery.ParseMode(a.Mode); err == nil {
		mode = m.Label()
	}

	result := "completed"
	if a.Action == "abandon" {
		result = "quit"
	}

	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}

	line := fmt.Sprintf("%s%s  %-19s  Level %-3d  %d/%d correct  %s",
		prefix, dateStr, mode, a.Level, correct, len(answers), result)

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if a.Action == "abandon" {
		style = style.Foreground(theme.TextDim)
	}
	if i == s.selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}

	out := []string{lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line))}
	if !s.expanded[i] {
		return out
	}

	if len(answers) == 0 {
		return append(out, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("    No answers recorded")))
	}
	// Answers are stored newest first; show them in answer order.
	for j := len(answers) - 1; j >= 0; j-- {
		out = append(out, lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAnswer(answers[j])))
	}
	return out
}

func renderAnswer(a store.AnswerEventRecord) string {
	mark := theme.Correct.Render("✓")
	if !a.Correct {
		mark = theme.Incorrect.Render("✗")
	}
	text := fmt.Sprintf("    %s %-8s %s", mark, a.ItemID, a.Given)
	if !a.Correct {
		text += fmt.Sprintf("  → %s", a.Expected)
		if a.Mistake != "" {
			text += fmt.Sprintf(" (%s)", a.Mistake)
		}
	}
	return lipgloss.NewStyle().Foreground(answerColor(a)).Render(text)
}

func answerColor(a store.AnswerEventRecord) color.Color {
	switch {
	case a.Correct && a.Phase == "review-pass":
		return theme.Secondary
	case a.Correct:
		return theme.Success
	default:
		return theme.Error
	}
}
