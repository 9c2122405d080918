package components

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// partialBlocks draws the fractional cell at the end of the filled run, in
// eighths.
var partialBlocks = []string{"", "▏", "▎", "▍", "▌", "▋", "▊", "▉"}

// ProgressBar renders fraction (0 to 1) as a bar exactly width cells wide,
// including the optional label and percentage.
func ProgressBar(label string, fraction float64, showPercent bool, width int) string {
	fraction = math.Max(0, math.Min(1, fraction))

	var prefix, suffix string
	if label != "" {
		prefix = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}
	if showPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%5d%%", int(math.Round(fraction*100))))
	}
	cells := max(width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)

	eighths := int(math.Round(fraction * float64(cells*8)))
	full, part := eighths/8, eighths%8
	bar := strings.Repeat("█", full) + partialBlocks[part]
	rest := cells - full
	if part > 0 {
		rest--
	}

	return prefix +
		theme.ProgressFilled.Render(bar) +
		theme.ProgressEmpty.Render(strings.Repeat("░", rest)) +
		suffix
}
