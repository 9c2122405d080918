package home

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/feedback"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/screens/levels"
	"github.com/abhisek/wordiz/internal/screens/notice"
	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/source"
	"github.com/abhisek/wordiz/internal/store"
)

func newServices(t *testing.T) *screen.Services {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	items := []sentence.Item{
		{ID: "a", Level: 1, Source: "안녕", Target: "Hello"},
		{ID: "b", Level: 2, Source: "고마워", Target: "Thanks"},
	}
	loader := source.LoaderFunc(func(context.Context) (*sentence.ParseResult, error) {
		return &sentence.ParseResult{Items: items}, nil
	})
	fb := feedback.NewService(nil)
	t.Cleanup(fb.Close)

	return &screen.Services{
		Sentences: source.NewService(loader, st.SentenceRepo()),
		Mastery:   mastery.NewService(st.ProgressRepo()),
		Events:    st.EventRepo(),
		Feedback:  fb,
	}
}

func selectItem(t *testing.T, h *HomeScreen, index int) tea.Msg {
	t.Helper()
	for i := 0; i < index; i++ {
		h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd()
}

func TestHomeScreen_Stats(t *testing.T) {
	svc := newServices(t)
	require.NoError(t, svc.Mastery.Save(context.Background(), mastery.ModeSpeaking, 1, mastery.LevelProgressRecord{
		Level: 1, Completed: true, TotalItems: 1, CorrectCount: 1, Unlocked: true,
	}))

	h := New(svc)
	cmd := h.Init()
	require.NotNil(t, cmd)
	h.Update(cmd())

	assert.Equal(t, 2, h.stats.levels)
	assert.Equal(t, 2, h.stats.sentences)
	assert.Equal(t, 1, h.stats.completed[mastery.ModeSpeaking])
	assert.Equal(t, 0, h.stats.completed[mastery.ModeSentenceCompletion])
	assert.Equal(t, MascotIdle, h.mascotVariant)

	view := h.View(120, 40)
	assert.Contains(t, view, "♪ 1/2")
	assert.Contains(t, view, "2 SENTENCES")
	assert.Contains(t, view, "SENTENCE COMPLETION")
	assert.Contains(t, view, "LLM API key")
}

func TestHomeScreen_CelebratesFullCompletion(t *testing.T) {
	st := homeStats{completed: map[mastery.Mode]int{mastery.ModeSentenceCompletion: 2}, levels: 2, sentences: 3}
	assert.Equal(t, MascotCelebrating, mascotFor(st))
	assert.Equal(t, MascotAlert, mascotFor(homeStats{}))
}

func TestHomeScreen_OpensLevels(t *testing.T) {
	h := New(newServices(t))

	push, ok := selectItem(t, h, 1).(router.PushScreenMsg)
	require.True(t, ok)
	ls, ok := push.Screen.(*levels.LevelsScreen)
	require.True(t, ok)
	assert.Equal(t, "Speaking · Levels", ls.Title())
}

func TestHomeScreen_OpensHistory(t *testing.T) {
	h := New(newServices(t))

	push, ok := selectItem(t, h, 2).(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*history.HistoryScreen)
	assert.True(t, ok)
}

func TestHomeScreen_HistoryWithoutStore(t *testing.T) {
	h := New(&screen.Services{})
	assert.Nil(t, h.Init())

	push, ok := selectItem(t, h, 2).(router.PushScreenMsg)
	require.True(t, ok)
	_, ok = push.Screen.(*notice.NoticeScreen)
	assert.True(t, ok)
}

func TestHomeScreen_CompactView(t *testing.T) {
	h := New(nil)
	view := h.View(60, 12)
	assert.Contains(t, view, "W · O · R · D · I · Z")
	assert.Contains(t, view, "EXIT")
	assert.NotContains(t, view, "LLM API key")
}
