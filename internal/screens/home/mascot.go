package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// MascotVariant selects the mascot's mood.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // every level of a mode completed
	MascotAlert                     // no sentences loaded
)

type mascot struct {
	art   string
	color color.Color
}

var mascots = map[MascotVariant]mascot{
	MascotIdle: {color: theme.Primary, art: `  ╭───────╮
  │ hello │
  ╰──┬────╯
 ( •‿• )`},
	MascotCelebrating: {color: theme.ArcadeYellow, art: `  ╭───────╮
  │ wow!! │
  ╰──┬────╯
\( ★‿★ )/`},
	MascotAlert: {color: theme.Accent, art: `  ╭───────╮
  │  ...? │
  ╰──┬────╯
 ( •_• )`},
}

// RenderMascot draws the mascot for v, falling back to idle.
func RenderMascot(v MascotVariant) string {
	m, ok := mascots[v]
	if !ok {
		m = mascots[MascotIdle]
	}
	return lipgloss.NewStyle().Foreground(m.color).Render(m.art)
}
