package notice

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/router"
)

func TestNoticeScreen_View(t *testing.T) {
	s := New("No sentences", "Level 3 has no sentences.")
	view := s.View(80, 20)
	if !strings.Contains(view, "Level 3 has no sentences.") {
		t.Error("view should contain the message")
	}
	if s.Title() != "No sentences" {
		t.Errorf("Title = %q, want %q", s.Title(), "No sentences")
	}
}

func TestNoticeScreen_EnterPops(t *testing.T) {
	s := New("Empty", "nothing here")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}
