package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/ui/theme"
)

const arcadeTitleFull = `██╗    ██╗ ██████╗ ██████╗ ██████╗ ██╗███████╗
██║    ██║██╔═══██╗██╔══██╗██╔══██╗██║╚══███╔╝
██║ █╗ ██║██║   ██║██████╔╝██║  ██║██║  ███╔╝
██║███╗██║██║   ██║██╔══██╗██║  ██║██║ ███╔╝
╚███╔███╔╝╚██████╔╝██║  ██║██████╔╝██║███████╗
 ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝╚══════╝`

const arcadeTitleCompact = "W · O · R · D · I · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := arcadeTitleFull
	if compact {
		title = arcadeTitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// homeStats is the dashboard shown above the menu.
type homeStats struct {
	completed map[mastery.Mode]int
	levels    int
	sentences int
	origin    string
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(st homeStats, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	countStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var parts []string
	for _, m := range mastery.Modes {
		done := st.completed[m]
		if compact {
			parts = append(parts, levelStyle.Render(fmt.Sprintf("%s%d", modeIcon(m), done)))
		} else {
			parts = append(parts, levelStyle.Render(fmt.Sprintf("%s %d/%d", modeIcon(m), done, st.levels)))
		}
	}

	switch {
	case st.sentences == 0:
		parts = append(parts, dimStyle.Render("NO SENTENCES"))
	case compact:
		parts = append(parts, countStyle.Render(fmt.Sprintf("¶%d", st.sentences)))
	default:
		parts = append(parts, countStyle.Render(fmt.Sprintf("¶ %d SENTENCES", st.sentences)))
		if st.origin != "" {
			parts = append(parts, dimStyle.Render("("+st.origin+")"))
		}
	}

	sep := "  "
	if compact {
		sep = " "
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(strings.Join(parts, sep))
}

func modeIcon(m mastery.Mode) string {
	if m == mastery.ModeSpeaking {
		return "♪"
	}
	return "✎"
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 26

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.ArcadeYellow).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeYellow).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	disabledBtn := normalBtn.Foreground(theme.TextDim)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
		} else if i == selected {
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		} else {
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderLLMBanner renders a dim note when explanations are unavailable.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Set an LLM API key to get explanations (wordiz --help)")
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
