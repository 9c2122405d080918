package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// ContentWidth is the width of cards inside a cabinet frame of frameWidth:
// the frame border and padding are removed and the result kept in 20..60.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

// CabinetFrame centers content inside a double border filling width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card is a rounded, padded panel cw cells wide.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw-2).
		Padding(1, 2).
		Align(lipgloss.Center).
		Render(content)
}

var (
	buttonBase = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	buttonOn = buttonBase.
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			BorderForeground(theme.ArcadeYellow)

	buttonOff = buttonBase.
			Foreground(theme.Text).
			BorderForeground(theme.Border)
)

// ButtonRow lays out labels as equal-width buttons side by side, centered in
// cw, with the selected one highlighted.
func ButtonRow(labels []string, selected, cw int) string {
	if len(labels) == 0 {
		return ""
	}
	each := max(cw/len(labels)-3, 8)
	buttons := make([]string, len(labels))
	for i, label := range labels {
		if i == selected {
			buttons[i] = buttonOn.Width(each).Render("▸ " + label)
		} else {
			buttons[i] = buttonOff.Width(each).Render(label)
		}
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, lipgloss.JoinHorizontal(lipgloss.Top, buttons...))
}
