package components

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestContentWidth(t *testing.T) {
	assert.Equal(t, 20, ContentWidth(10))
	assert.Equal(t, 54, ContentWidth(60))
	assert.Equal(t, 60, ContentWidth(200))
}

func TestCabinetFrame(t *testing.T) {
	out := CabinetFrame("hello", 50, 12)
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "╔")
	assert.LessOrEqual(t, lipgloss.Width(out), 50)
}

func TestButtonRow(t *testing.T) {
	row := ButtonRow([]string{"RETRY", "NEXT LEVEL", "LEVELS"}, 1, 60)
	assert.Contains(t, row, "▸ NEXT LEVEL")
	assert.Contains(t, row, "RETRY")
	assert.NotContains(t, row, "▸ RETRY")
	assert.LessOrEqual(t, lipgloss.Width(row), 60)

	assert.Empty(t, ButtonRow(nil, 0, 60))
}
