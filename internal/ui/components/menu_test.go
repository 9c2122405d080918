package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type picked string

func pick(label string) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return picked(label) }
	}
}

func testMenu() Menu {
	return NewMenu([]MenuItem{
		{Label: "LOCKED", Disabled: true},
		{Label: "PLAY", Action: pick("play")},
		{Label: "HISTORY", Action: pick("history")},
		{Label: "EXIT", Action: pick("exit")},
	})
}

func TestMenu_StartsOnFirstEnabled(t *testing.T) {
	assert.Equal(t, 1, testMenu().Selected)
}

func TestMenu_WrapsAndSkipsDisabled(t *testing.T) {
	m := testMenu()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 3, m.Selected, "up from the first enabled item wraps to the end")

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, m.Selected, "down from the end wraps past the disabled item")

	m, _ = m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	assert.Equal(t, 2, m.Selected)
}

func TestMenu_EnterRunsAction(t *testing.T) {
	m := testMenu()
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, picked("play"), cmd())
}

func TestMenu_DigitShortcut(t *testing.T) {
	m := testMenu()
	m, cmd := m.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	require.NotNil(t, cmd)
	assert.Equal(t, picked("history"), cmd())
	assert.Equal(t, 2, m.Selected)

	_, cmd = m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	assert.Nil(t, cmd, "disabled items ignore their shortcut")
	_, cmd = m.Update(tea.KeyPressMsg{Code: '9', Text: "9"})
	assert.Nil(t, cmd)
}

func TestMenu_LabelsAndDisabled(t *testing.T) {
	m := testMenu()
	assert.Equal(t, []string{"LOCKED", "PLAY", "HISTORY", "EXIT"}, m.Labels())
	assert.Equal(t, map[int]bool{0: true}, m.DisabledSet())
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}})
	assert.Equal(t, 0, m.Selected)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
}
