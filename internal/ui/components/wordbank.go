package components

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/wordiz/internal/ui/theme"
)

// WordBank is a word-ordering selector. The learner picks words from a
// shuffled bank to build the answer; each bank word can be used once.
type WordBank struct {
	Words    []string // shuffled bank, fixed for the item
	Picked   []int    // bank indices in pick order
	Cursor   int
	MaxWidth int
}

// NewWordBank creates a bank holding words in a shuffled order. A nil rng
// uses the global source.
func NewWordBank(words []string, rng *rand.Rand) WordBank {
	words = append([]string(nil), words...)
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	return WordBank{Words: words, MaxWidth: 60}
}

// Init returns nil.
func (w WordBank) Init() tea.Cmd {
	return nil
}

// Update handles word selection keys: arrows move the cursor, Enter or
// Space picks, 1-9 pick by position (a used word is removed), Backspace removes the last word and
// Ctrl+R clears the answer.
func (w WordBank) Update(msg tea.Msg) (WordBank, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		w.moveCursor(-1)
	case "right", "l":
		w.moveCursor(1)
	case "enter", "space":
		w.Pick(w.Cursor)
	case "backspace":
		w.Unpick()
	case "ctrl+r":
		w.Clear()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			w.Pick(int(key[0] - '1'))
		}
	}
	return w, nil
}

// Pick appends bank word i to the answer. Picking a word that is already
// in the answer takes it back out. Out-of-range indices are ignored.
func (w *WordBank) Pick(i int) {
	if i < 0 || i >= len(w.Words) {
		return
	}
	if at := slices.Index(w.Picked, i); at >= 0 {
		w.Picked = slices.Delete(w.Picked, at, at+1)
		w.Cursor = i
		return
	}
	w.Picked = append(w.Picked, i)
	if w.used(w.Cursor) {
		w.moveCursor(1)
	}
}

// Unpick removes the last picked word.
func (w *WordBank) Unpick() {
	if len(w.Picked) == 0 {
		return
	}
	w.Cursor = w.Picked[len(w.Picked)-1]
	w.Picked = w.Picked[:len(w.Picked)-1]
}

// Clear removes every picked word.
func (w *WordBank) Clear() {
	w.Picked = nil
	w.Cursor = 0
}

// Answer returns the picked words joined by spaces.
func (w WordBank) Answer() string {
	parts := make([]string, len(w.Picked))
	for i, idx := range w.Picked {
		parts[i] = w.Words[idx]
	}
	return strings.Join(parts, " ")
}

// Complete reports whether every bank word has been used.
func (w WordBank) Complete() bool {
	return len(w.Picked) == len(w.Words)
}

func (w WordBank) used(i int) bool {
	return slices.Contains(w.Picked, i)
}

// moveCursor steps to the next unused word in dir, wrapping around.
func (w *WordBank) moveCursor(dir int) {
	n := len(w.Words)
	if n == 0 || w.Complete() {
		return
	}
	i := w.Cursor
	for range n {
		i = (i + dir + n) % n
		if !w.used(i) {
			w.Cursor = i
			return
		}
	}
}

// View renders the answer line above the bank.
func (w WordBank) View() string {
	answer := w.Answer()
	answerStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if answer == "" {
		answer = lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("pick the words in order...")
	} else {
		answer = answerStyle.Render(answer)
	}

	var chips []string
	for i, word := range w.Words {
		label := word
		if i < 9 {
			label = fmt.Sprintf("%d %s", i+1, word)
		}
		switch {
		case w.used(i):
			chips = append(chips, theme.WordChipUsed.Render(label))
		case i == w.Cursor:
			chips = append(chips, theme.WordChipSelected.Render(label))
		default:
			chips = append(chips, theme.WordChip.Render(label))
		}
	}

	return answer + "\n\n" + wrapChips(chips, w.MaxWidth)
}

// wrapChips lays chips out left to right, starting a new row when the
// next chip would exceed maxWidth.
func wrapChips(chips []string, maxWidth int) string {
	var rows []string
	var row []string
	rowWidth := 0
	for _, c := range chips {
		cw := lipgloss.Width(c) + 1
		if len(row) > 0 && maxWidth > 0 && rowWidth+cw > maxWidth {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, c, " ")
		rowWidth += cw
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
