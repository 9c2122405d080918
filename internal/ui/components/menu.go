package components

import (
	"strconv"

	tea "charm.land/bubbletea/v2"
)

// MenuItem is one selectable action.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu tracks a cursor over a list of actions. The owning screen draws it,
// using Labels and DisabledSet.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu places the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	return m.move(1)
}

// Update moves the cursor with up/down (k/j), wrapping at the ends, and
// runs the selected action on enter. Digits 1-9 jump to an item and run it.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		return m.move(-1), nil
	case "down", "j":
		return m.move(1), nil
	case "enter":
		return m, m.activate()
	default:
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(m.Items) || m.Items[n-1].Disabled {
			return m, nil
		}
		m.Selected = n - 1
		return m, m.activate()
	}
}

func (m Menu) move(step int) Menu {
	n := len(m.Items)
	for i := 1; i <= n; i++ {
		next := ((m.Selected+step*i)%n + n) % n
		if !m.Items[next].Disabled {
			m.Selected = next
			return m
		}
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	item := m.Items[m.Selected]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, item := range m.Items {
		labels[i] = item.Label
	}
	return labels
}

// DisabledSet returns the indexes of disabled items.
func (m Menu) DisabledSet() map[int]bool {
	set := make(map[int]bool)
	for i, item := range m.Items {
		if item.Disabled {
			set[i] = true
		}
	}
	return set
}
