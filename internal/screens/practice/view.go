package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progression"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

// renderItemView renders the current sentence and the answer widget.
func (s *PracticeScreen) renderItemView(width, height int) string {
	item, ok := s.attempt.Current()
	if !ok {
		return renderLoading(width, height)
	}

	var b strings.Builder

	// Level info line.
	category := item.Category
	if category == "" {
		category = "General"
	}
	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Level %d · %s", s.level, category))

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(s.progressText())

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	if s.banner != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(s.banner))
		b.WriteString("\n\n")
	}

	// Source sentence (centered).
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(item.Source))
	b.WriteString("\n")
	if item.Note != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Italic(true).
			Render(item.Note))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Answer area.
	if s.mode == mastery.ModeSpeaking {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View()))
	} else {
		s.bank.MaxWidth = min(width-8, 70)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.bank.View()))
	}
	b.WriteString("\n")

	if s.status != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.status))
	}

	return b.String()
}

// progressText describes the position within the active pass.
func (s *PracticeScreen) progressText() string {
	a := s.attempt
	seq := len(a.Sequence())
	switch a.Phase() {
	case progression.PhaseReviewPass:
		return fmt.Sprintf("Review %d  ·  %d left  %s %d/%d",
			a.Cycle(), len(a.Missed()),
			theme.Correct.Render("✓"),
			a.CorrectCount(), a.Total())
	default:
		return fmt.Sprintf("Sentence %d/%d  %s %d",
			a.Index()+1, seq,
			theme.Correct.Render("✓"),
			s.firstTry)
	}
}

// renderFeedback renders the verdict for the last answer.
func (s *PracticeScreen) renderFeedback(width, height int) string {
	out := s.outcome
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n")

	if out.Verdict.Correct {
		msg := "Correct!"
		if out.Verdict.Fuzzy {
			msg = fmt.Sprintf("Close enough! (%.0f%% match)", out.Verdict.Similarity*100)
		}
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render(msg))
		b.WriteString("\n")
		if out.Verdict.Fuzzy {
			b.WriteString(center.Foreground(theme.TextDim).Render("Answer: " + out.Item.Target))
			b.WriteString("\n")
		}
	} else {
		label := "Not quite"
		if s.mistake != nil {
			label = s.mistake.Category.Label()
		}
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render(label))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("You answered: " + verdictText(out.Verdict)))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Text).Render("Answer: " + out.Item.Target))
		b.WriteString("\n")
		if s.mistake != nil && len(s.mistake.Words) > 0 {
			b.WriteString(center.Foreground(theme.Accent).Render("Check: " + strings.Join(s.mistake.Words, ", ")))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	// LLM explanation.
	if s.mistake != nil && s.mistake.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(s.mistake.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n")
		if s.mistake.Tip != "" {
			tip := lipgloss.NewStyle().
				Width(min(width-8, 70)).
				Foreground(theme.Secondary).
				Italic(true).
				Render("Tip: " + s.mistake.Tip)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, tip))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else if s.explaining {
		b.WriteString(center.Foreground(theme.TextDim).Italic(true).Render("Thinking about your answer..."))
		b.WriteString("\n\n")
	}

	if out.Completed {
		b.WriteString(center.Foreground(theme.Accent).Bold(true).Render("Level complete!"))
		b.WriteString("\n\n")
	}

	if s.status != "" {
		b.WriteString(center.Foreground(theme.Accent).Render(s.status))
		b.WriteString("\n\n")
	}

	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the quit confirmation dialog.
func renderQuitConfirm(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this level?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Progress is only saved when the level is complete."))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))

	return b.String()
}

// renderLoading renders the loading state.
func renderLoading(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Loading sentences...")
}

// renderError renders an error message.
func renderError(width, height int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
