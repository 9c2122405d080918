package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func testResult() Result {
	return Result{
		Mode:             mastery.ModeSentenceCompletion,
		Level:            1,
		TotalItems:       6,
		FirstPassCorrect: 4,
		Answers:          9,
		Cycles:           2,
		NextLevel:        2,
	}
}

func testActions(built *[]string) Actions {
	return Actions{
		Retry: func() screen.Screen {
			*built = append(*built, "retry")
			return &stubScreen{title: "retry"}
		},
		Next: func() screen.Screen {
			*built = append(*built, "next")
			return &stubScreen{title: "next"}
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult(), Actions{})
	if s.Title() != "Level Complete" {
		t.Errorf("Title = %q, want %q", s.Title(), "Level Complete")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult(), Actions{})
	view := s.View(80, 24)
	if !strings.Contains(view, "First try: 4/6") {
		t.Error("expected first-try stats in view")
	}
	if !strings.Contains(view, "Level 2 unlocked") {
		t.Error("expected unlock notice in view")
	}
}

func TestSummaryScreen_LastLevel(t *testing.T) {
	r := testResult()
	r.NextLevel = 0
	var built []string
	s := New(r, testActions(&built))

	if len(s.buttons) != 2 {
		t.Errorf("buttons = %d, want 2 (retry, levels)", len(s.buttons))
	}
	if !strings.Contains(s.View(80, 24), "last level") {
		t.Error("expected last-level message")
	}
	if cmd := s.activate(buttonNext); cmd != nil {
		t.Error("expected no command for next on the last level")
	}
}

func TestSummaryScreen_Retry(t *testing.T) {
	var built []string
	s := New(testResult(), testActions(&built))

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a command on r")
	}
	if len(built) != 1 || built[0] != "retry" {
		t.Errorf("built = %v, want [retry]", built)
	}
}

func TestSummaryScreen_EnterSelectsNextFirst(t *testing.T) {
	var built []string
	s := New(testResult(), testActions(&built))

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	if len(built) != 1 || built[0] != "next" {
		t.Errorf("built = %v, want [next]", built)
	}
}

func TestSummaryScreen_EscPopsToLevels(t *testing.T) {
	s := New(testResult(), Actions{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a command on Esc")
	}
	msg, ok := cmd().(router.PopScreenMsg)
	if !ok || msg.Count != 2 {
		t.Errorf("msg = %#v, want PopScreenMsg{Count: 2}", msg)
	}
}

func TestSummaryScreen_RetrySave(t *testing.T) {
	r := testResult()
	r.SaveErr = errors.New("disk full")
	calls := 0
	s := New(r, Actions{Save: func(context.Context) error {
		calls++
		return nil
	}})

	if !strings.Contains(s.View(80, 24), "disk full") {
		t.Error("expected save error in view")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 's', Text: "s"})
	if cmd == nil {
		t.Fatal("expected a command on s")
	}
	scr, _ := s.Update(cmd())
	if calls != 1 {
		t.Errorf("save calls = %d, want 1", calls)
	}
	if scr.(*SummaryScreen).result.SaveErr != nil {
		t.Error("expected SaveErr cleared after successful retry")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testResult(), Actions{})
	if len(s.KeyHints()) != 3 {
		t.Errorf("KeyHints length = %d, want 3", len(s.KeyHints()))
	}
}
