package levels

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/source"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

type overviewLoadedMsg struct {
	Levels []mastery.LevelSummary
	Status source.Status
	Err    error
}

type resetDoneMsg struct {
	Level int
	Err   error
}

// LevelsScreen lists every level with its merged progress across modes
// and starts attempts in the chosen mode.
type LevelsScreen struct {
	svc          *screen.Services
	mode         mastery.Mode
	levels       []mastery.LevelSummary
	status       source.Status
	cursor       int
	scrollOffset int
	loaded       bool
	confirmReset bool
	flash        string
	errMsg       string
}

var _ screen.Screen = (*LevelsScreen)(nil)
var _ screen.KeyHintProvider = (*LevelsScreen)(nil)
var _ screen.Resumer = (*LevelsScreen)(nil)
var _ screen.EscapeHandler = (*LevelsScreen)(nil)
var _ screen.StatusProvider = (*LevelsScreen)(nil)

// New creates a level list for mode.
func New(svc *screen.Services, mode mastery.Mode) *LevelsScreen {
	return &LevelsScreen{svc: svc, mode: mode}
}

func (s *LevelsScreen) Init() tea.Cmd {
	return s.load()
}

// Resume reloads the overview after an attempt.
func (s *LevelsScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *LevelsScreen) load() tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		if svc == nil || svc.Sentences == nil || svc.Mastery == nil {
			return overviewLoadedMsg{Err: errors.New("no sentence source configured")}
		}
		ctx := context.Background()
		set, err := svc.Sentences.Sentences(ctx)
		if err != nil {
			return overviewLoadedMsg{Err: err}
		}
		levels, err := svc.Mastery.Overview(ctx, set)
		if err != nil {
			return overviewLoadedMsg{Err: err}
		}
		return overviewLoadedMsg{Levels: levels, Status: svc.Sentences.Status()}
	}
}

func (s *LevelsScreen) Title() string {
	return s.mode.Label() + " · Levels"
}

// Status reports completed levels, e.g. "★ 2/5".
func (s *LevelsScreen) Status() string {
	if !s.loaded {
		return ""
	}
	done := 0
	for _, l := range s.levels {
		if l.Completed {
			done++
		}
	}
	return fmt.Sprintf("★ %d/%d", done, len(s.levels))
}

func (s *LevelsScreen) HandlesEscape() bool {
	return s.confirmReset
}

func (s *LevelsScreen) KeyHints() []layout.KeyHint {
	if s.confirmReset {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
		{Key: "R", Description: "Reset level"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LevelsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.levels = msg.Levels
		s.status = msg.Status
		if s.cursor >= len(s.levels) {
			s.cursor = max(0, len(s.levels)-1)
		}
		return s, nil

	case resetDoneMsg:
		if msg.Err != nil {
			s.flash = fmt.Sprintf("Reset failed: %v", msg.Err)
			s.svc.Log().Error("reset level", slog.Int("level", msg.Level), slog.Any("error", msg.Err))
			return s, nil
		}
		s.flash = fmt.Sprintf("Level %d reset.", msg.Level)
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LevelsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			return s, s.resetLevel()
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		s.flash = ""
	case "down", "j":
		if s.cursor < len(s.levels)-1 {
			s.cursor++
		}
		s.flash = ""
	case "r":
		if len(s.levels) > 0 {
			s.confirmReset = true
		}
	case "enter":
		return s, s.selectLevel()
	case "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// selectLevel starts an attempt on the highlighted level if unlocked.
func (s *LevelsScreen) selectLevel() tea.Cmd {
	if s.cursor >= len(s.levels) {
		return nil
	}
	l := s.levels[s.cursor]
	if !l.Unlocked {
		s.flash = "Complete the previous level to unlock this one."
		return nil
	}
	p := practice.New(s.svc, s.mode, l.Level)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: p}
	}
}

func (s *LevelsScreen) resetLevel() tea.Cmd {
	if s.cursor >= len(s.levels) {
		return nil
	}
	level := s.levels[s.cursor].Level
	svc := s.svc
	return func() tea.Msg {
		return resetDoneMsg{Level: level, Err: svc.Mastery.ResetLevel(context.Background(), level)}
	}
}

func (s *LevelsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading levels...")
	}
	if len(s.levels) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sentences loaded. Import a sentence file with `wordiz import`.")
	}

	var footer []string
	footer = append(footer, s.renderSourceLine(width))
	if s.confirmReset {
		footer = append(footer, lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("Reset level %d in both modes? [Y/N]", s.levels[s.cursor].Level)))
	} else if s.flash != "" {
		footer = append(footer, lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Accent).
			Render(s.flash))
	}
	detail := s.renderDetail(s.levels[s.cursor], width)

	listHeight := height - len(footer) - lipgloss.Height(detail) - 2
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.levels) && len(lines) < max(listHeight, 1); i++ {
		lines = append(lines, s.renderLevelRow(s.levels[i], i == s.cursor, width))
	}

	return strings.Join(lines, "\n") + "\n\n" + detail + "\n" + strings.Join(footer, "\n")
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *LevelsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// renderLevelRow renders a single level row.
func (s *LevelsScreen) renderLevelRow(l mastery.LevelSummary, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}

	var icon, label string
	var style lipgloss.Style
	switch {
	case l.Completed:
		icon, label = "★", "Completed"
		style = lipgloss.NewStyle().Foreground(theme.Success)
	case l.Unlocked:
		icon, label = "○", "Open"
		style = theme.Unselected
	default:
		icon, label = "🔒", "Locked"
		style = theme.Locked
	}
	if selected {
		style = theme.Selected
	}

	name := fmt.Sprintf("Level %-3d", l.Level)
	barWidth := min(max(width-48, 12), 30)
	bar := components.ProgressBar("", l.CompletionRate(), false, barWidth)
	count := fmt.Sprintf("%d/%d", l.CorrectCount, l.TotalItems)

	return fmt.Sprintf("  %s%s %s  %s  %-7s %s",
		cursor,
		icon,
		style.Render(name),
		bar,
		count,
		style.Render(fmt.Sprintf("%9s", label)),
	)
}

// renderDetail shows per-mode progress and categories of a level.
func (s *LevelsScreen) renderDetail(l mastery.LevelSummary, width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Level %d", l.Level)))
	b.WriteString("\n")
	if len(l.Categories) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render("Topics: " + strings.Join(l.Categories, ", ")))
		b.WriteString("\n")
	}
	for _, m := range mastery.Modes {
		rec, ok := l.ByMode[m]
		state := "not started"
		switch {
		case ok && rec.Completed:
			state = fmt.Sprintf("completed (%d/%d)", rec.CorrectCount, rec.TotalItems)
		case ok && rec.Unlocked:
			state = "unlocked"
		}
		line := fmt.Sprintf("%-20s %s", m.Label(), state)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if m == s.mode {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().PaddingLeft(4).Render(strings.TrimRight(b.String(), "\n"))
}

func (s *LevelsScreen) renderSourceLine(width int) string {
	st := s.status
	text := fmt.Sprintf("%d sentences from %s", st.Count, st.Origin)
	if st.Source != "" {
		text += " (" + st.Source + ")"
	}
	if st.LastError != nil {
		text += " · source error: " + st.LastError.Error()
	}
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render(text)
}
