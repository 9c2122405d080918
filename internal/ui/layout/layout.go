package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Header and footer are one line inside a rounded border.
	HeaderHeight = 3
	FooterHeight = 3

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the supported size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// IsCompact reports whether screens should drop decoration to fit.
// height is the full terminal height.
func IsCompact(width, height int) bool {
	return width < compactWidth || height < compactHeight
}

// ContentHeight is what remains for a screen after header and footer.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Wordiz needs at least %d x %d.\n\nThis terminal is %d x %d.",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
}

// RenderHeader shows the app name on the left, the screen title centered
// and status on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)
	third := inner / 3

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Width(third).Render("Wordiz")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Width(third).Align(lipgloss.Right).Render(status)
	center := lipgloss.NewStyle().Foreground(theme.Text).Width(inner - 2*third).Align(lipgloss.Center).Render(title)

	return bar(width).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
}

// RenderFooter lists key hints. Hints that do not fit the width are dropped
// from the end.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-4, 0)
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var line strings.Builder
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if line.Len() > 0 {
			part = "   " + part
		}
		if lipgloss.Width(line.String())+lipgloss.Width(part) > inner {
			break
		}
		line.WriteString(part)
	}
	return bar(width).Render(line.String())
}

// RenderFrame stacks header, content and footer, padding the content so the
// frame fills height.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).MaxHeight(body).Render(content),
		footer,
	)
}
