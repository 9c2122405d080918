package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st.EventRepo()
}

func seedAttempt(t *testing.T, repo store.EventRepo, id string, level int, finish string, answers ...store.AnswerEventData) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.AppendAttemptEvent(ctx, store.AttemptEventData{
		AttemptID: id, Mode: "sentence-completion", Level: level, Action: "start", TotalItems: len(answers),
	}))
	for _, a := range answers {
		a.AttemptID = id
		a.Mode = "sentence-completion"
		a.Level = level
		require.NoError(t, repo.AppendAnswerEvent(ctx, a))
	}
	if finish != "" {
		require.NoError(t, repo.AppendAttemptEvent(ctx, store.AttemptEventData{
			AttemptID: id, Mode: "sentence-completion", Level: level, Action: finish, TotalItems: len(answers),
		}))
	}
}

func load(t *testing.T, repo store.EventRepo) *HistoryScreen {
	t.Helper()
	s := New(repo)
	scr, _ := s.Update(s.Init()())
	hs := scr.(*HistoryScreen)
	require.True(t, hs.loaded)
	require.Empty(t, hs.errMsg)
	return hs
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := load(t, openRepo(t))
	assert.Contains(t, s.View(80, 20), "No attempts yet")
}

func TestHistoryScreen_ListsFinishedAttempts(t *testing.T) {
	repo := openRepo(t)
	seedAttempt(t, repo, "one", 1, "complete",
		store.AnswerEventData{ItemID: "a", Phase: "first-pass", Expected: "Hello world", Given: "world Hello", Mistake: "word-order"},
		store.AnswerEventData{ItemID: "a", Phase: "review-pass", Expected: "Hello world", Given: "Hello world", Correct: true},
	)
	seedAttempt(t, repo, "two", 2, "abandon",
		store.AnswerEventData{ItemID: "c", Phase: "first-pass", Expected: "Coffee please", Given: "Coffee please", Correct: true},
	)
	seedAttempt(t, repo, "open", 3, "")

	s := load(t, repo)
	require.Len(t, s.attempts, 2)
	assert.Equal(t, "two", s.attempts[0].AttemptID)
	assert.Len(t, s.answers["one"], 2)

	view := s.View(100, 20)
	assert.Contains(t, view, "Level 2")
	assert.Contains(t, view, "quit")
	assert.Contains(t, view, "1/2 correct")
	assert.NotContains(t, view, "Level 3")
}

func TestHistoryScreen_ExpandShowsAnswers(t *testing.T) {
	repo := openRepo(t)
	seedAttempt(t, repo, "one", 1, "complete",
		store.AnswerEventData{ItemID: "a", Phase: "first-pass", Expected: "Hello world", Given: "world Hello", Mistake: "word-order"},
	)
	s := load(t, repo)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view := s.View(100, 20)
	assert.Contains(t, view, "✗")
	assert.Contains(t, view, "→ Hello world")
	assert.Contains(t, view, "(word-order)")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.NotContains(t, s.View(100, 20), "→ Hello world")
}

func TestHistoryScreen_Navigation(t *testing.T) {
	repo := openRepo(t)
	seedAttempt(t, repo, "one", 1, "complete")
	seedAttempt(t, repo, "two", 1, "complete")

	s := load(t, repo)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, s.selected)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestHistoryScreen_ScrollKeepsSelectionVisible(t *testing.T) {
	repo := openRepo(t)
	for i := 0; i < 10; i++ {
		seedAttempt(t, repo, fmt.Sprintf("a%d", i), i+1, "complete")
	}
	s := load(t, repo)
	for i := 0; i < 9; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	s.View(100, 5)
	assert.Greater(t, s.scrollOffset, 0)
	assert.Contains(t, s.View(100, 5), "Level 1 ")
}
