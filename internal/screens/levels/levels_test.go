package levels

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/practice"
	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/source"
	"github.com/abhisek/wordiz/internal/store"
)

var testItems = []sentence.Item{
	{ID: "a", Level: 1, Category: "greeting", Source: "안녕", Target: "Hello world"},
	{ID: "b", Level: 1, Category: "greeting", Source: "좋은 아침", Target: "Good morning"},
	{ID: "c", Level: 2, Category: "cafe", Source: "커피 주세요", Target: "Coffee please"},
	{ID: "d", Level: 3, Category: "travel", Source: "역이 어디예요", Target: "Where is the station"},
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newServices(t *testing.T) *screen.Services {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	loader := source.LoaderFunc(func(context.Context) (*sentence.ParseResult, error) {
		return &sentence.ParseResult{Items: testItems}, nil
	})
	return &screen.Services{
		Sentences: source.NewService(loader, st.SentenceRepo()),
		Mastery:   mastery.NewService(st.ProgressRepo()),
		Events:    st.EventRepo(),
	}
}

// loaded returns a screen with its overview delivered.
func loaded(t *testing.T, svc *screen.Services, mode mastery.Mode) *LevelsScreen {
	t.Helper()
	s := New(svc, mode)
	scr, _ := s.Update(s.Init()())
	ls := scr.(*LevelsScreen)
	require.Empty(t, ls.errMsg)
	require.True(t, ls.loaded)
	return ls
}

func TestLevelsScreen_Overview(t *testing.T) {
	s := loaded(t, newServices(t), mastery.ModeSentenceCompletion)

	require.Len(t, s.levels, 3)
	assert.True(t, s.levels[0].Unlocked)
	assert.False(t, s.levels[1].Unlocked)
	assert.Equal(t, "★ 0/3", s.Status())
	assert.Equal(t, "Sentence Completion · Levels", s.Title())

	view := s.View(80, 24)
	assert.Contains(t, view, "Level 1")
	assert.Contains(t, view, "Locked")
	assert.Contains(t, view, "greeting")
}

func TestLevelsScreen_NoServices(t *testing.T) {
	s := New(&screen.Services{}, mastery.ModeSpeaking)
	scr, _ := s.Update(s.Init()())
	ls := scr.(*LevelsScreen)
	assert.NotEmpty(t, ls.errMsg)
	assert.Contains(t, ls.View(80, 24), "Error")
}

func TestLevelsScreen_Navigation(t *testing.T) {
	s := loaded(t, newServices(t), mastery.ModeSentenceCompletion)

	s.Update(specialKey(tea.KeyUp))
	assert.Equal(t, 0, s.cursor)
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	s.Update(specialKey(tea.KeyDown))
	assert.Equal(t, 2, s.cursor)
	s.Update(keyPress('k'))
	assert.Equal(t, 1, s.cursor)
}

func TestLevelsScreen_SelectUnlocked(t *testing.T) {
	s := loaded(t, newServices(t), mastery.ModeSpeaking)

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	p, ok := push.Screen.(*practice.PracticeScreen)
	require.True(t, ok)
	assert.Equal(t, "Speaking", p.Title())
}

func TestLevelsScreen_SelectLocked(t *testing.T) {
	s := loaded(t, newServices(t), mastery.ModeSentenceCompletion)

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Contains(t, s.flash, "unlock")
}

func TestLevelsScreen_ResumeReflectsProgress(t *testing.T) {
	svc := newServices(t)
	s := loaded(t, svc, mastery.ModeSentenceCompletion)

	ctx := context.Background()
	require.NoError(t, svc.Mastery.Save(ctx, mastery.ModeSpeaking, 1, mastery.LevelProgressRecord{
		Level: 1, Completed: true, TotalItems: 2, CorrectCount: 2, Unlocked: true,
	}))

	s.Update(s.Resume()())
	assert.True(t, s.levels[0].Completed)
	assert.True(t, s.levels[1].Unlocked)
	assert.Equal(t, "★ 1/3", s.Status())
}

func TestLevelsScreen_ResetLevel(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	require.NoError(t, svc.Mastery.Save(ctx, mastery.ModeSentenceCompletion, 1, mastery.LevelProgressRecord{
		Level: 1, Completed: true, TotalItems: 2, CorrectCount: 2, Unlocked: true,
	}))
	s := loaded(t, svc, mastery.ModeSentenceCompletion)
	require.True(t, s.levels[0].Completed)

	s.Update(keyPress('r'))
	require.True(t, s.confirmReset)
	assert.True(t, s.HandlesEscape())
	assert.Equal(t, "Y", s.KeyHints()[0].Key)

	_, cmd := s.Update(keyPress('y'))
	require.NotNil(t, cmd)
	_, reload := s.Update(cmd())
	require.NotNil(t, reload)
	s.Update(reload())

	assert.False(t, s.confirmReset)
	assert.Equal(t, "Level 1 reset.", s.flash)
	assert.False(t, s.levels[0].Completed)
	assert.Equal(t, 0, s.levels[0].CorrectCount)
}

func TestLevelsScreen_ResetCancel(t *testing.T) {
	s := loaded(t, newServices(t), mastery.ModeSentenceCompletion)

	s.Update(keyPress('r'))
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	assert.Nil(t, cmd)
	assert.False(t, s.confirmReset)
	assert.False(t, s.HandlesEscape())
}

func TestLevelsScreen_QuitPops(t *testing.T) {
	s := loaded(t, newServices(t), mastery.ModeSentenceCompletion)

	_, cmd := s.Update(keyPress('q'))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}

func TestLevelsScreen_KeyHints(t *testing.T) {
	s := New(nil, mastery.ModeSentenceCompletion)
	hints := s.KeyHints()
	require.Len(t, hints, 4)
	assert.Equal(t, "Enter", hints[1].Key)
	assert.Equal(t, "", s.Status())
}
