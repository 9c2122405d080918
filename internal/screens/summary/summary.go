package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// Result describes a completed level attempt.
type Result struct {
	Mode             mastery.Mode
	Level            int
	TotalItems       int
	FirstPassCorrect int
	Answers          int
	Cycles           int // review cycles needed, 0 for a perfect first pass
	NextLevel        int // 0 when this was the last level
	SaveErr          error
}

// Actions builds the follow-up screens. Nil builders hide their button.
type Actions struct {
	Retry func() screen.Screen
	Next  func() screen.Screen

	// Save retries persisting the result after SaveErr.
	Save func(ctx context.Context) error
}

type button int

const (
	buttonRetry button = iota
	buttonNext
	buttonLevels
)

// SummaryScreen displays the result of a level attempt and offers to
// retry it or move on. It sits on top of the practice screen.
type SummaryScreen struct {
	result   Result
	actions  Actions
	buttons  []button
	selected int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result, actions Actions) *SummaryScreen {
	s := &SummaryScreen{result: result, actions: actions}
	if actions.Next != nil && result.NextLevel > 0 {
		s.buttons = append(s.buttons, buttonNext)
	}
	if actions.Retry != nil {
		s.buttons = append(s.buttons, buttonRetry)
	}
	s.buttons = append(s.buttons, buttonLevels)
	return s
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Level Complete"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
	}
	if s.result.SaveErr != nil && s.actions.Save != nil {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Retry save"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Levels"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case saveResultMsg:
		s.result.SaveErr = msg.Err
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			if s.selected > 0 {
				s.selected--
			}
		case "right", "l", "tab":
			if s.selected < len(s.buttons)-1 {
				s.selected++
			}
		case "r":
			return s, s.activate(buttonRetry)
		case "n":
			return s, s.activate(buttonNext)
		case "s":
			if s.result.SaveErr != nil && s.actions.Save != nil {
				return s, s.retrySave()
			}
		case "enter":
			return s, s.activate(s.buttons[s.selected])
		case "esc", "q":
			return s, s.activate(buttonLevels)
		}
	}
	return s, nil
}

type saveResultMsg struct {
	Err error
}

func (s *SummaryScreen) retrySave() tea.Cmd {
	save := s.actions.Save
	return func() tea.Msg {
		return saveResultMsg{Err: save(context.Background())}
	}
}

// activate pops the summary and swaps the practice screen below it, or
// pops both to return to the level list.
func (s *SummaryScreen) activate(b button) tea.Cmd {
	var build func() screen.Screen
	switch b {
	case buttonRetry:
		build = s.actions.Retry
	case buttonNext:
		if s.result.NextLevel > 0 {
			build = s.actions.Next
		}
	case buttonLevels:
		return func() tea.Msg { return router.PopScreenMsg{Count: 2} }
	}
	if build == nil {
		return nil
	}
	next := build()
	return tea.Sequence(
		func() tea.Msg { return router.PopScreenMsg{} },
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} },
	)
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	cw := components.ContentWidth(width)

	var b strings.Builder

	title := "Level complete!"
	if r.Cycles == 0 {
		title = "Perfect run!"
	}
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · Level %d", r.Mode.Label(), r.Level)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("First try: %d/%d    Answers: %d    Review cycles: %d",
		r.FirstPassCorrect, r.TotalItems, r.Answers, r.Cycles)
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine))
	b.WriteString("\n\n")

	var accuracy float64
	if r.TotalItems > 0 {
		accuracy = float64(r.FirstPassCorrect) / float64(r.TotalItems)
	}
	b.WriteString(components.ProgressBar("First try", accuracy, true, cw-8))
	b.WriteString("\n")

	if r.NextLevel > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Success).
			Render(fmt.Sprintf("Level %d unlocked", r.NextLevel)))
		b.WriteString("\n")
	} else {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("That was the last level!"))
		b.WriteString("\n")
	}

	if r.SaveErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Error).
			Render(fmt.Sprintf("Progress not saved: %v", r.SaveErr)))
		b.WriteString("\n")
	}

	labels := make([]string, len(s.buttons))
	for i, btn := range s.buttons {
		labels[i] = buttonLabel(btn)
	}
	content := components.Card(b.String(), cw) + "\n\n" + components.ButtonRow(labels, s.selected, cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func buttonLabel(b button) string {
	switch b {
	case buttonRetry:
		return "RETRY"
	case buttonNext:
		return "NEXT LEVEL"
	default:
		return "LEVELS"
	}
}
