package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/history"
	"github.com/abhisek/wordiz/internal/screens/levels"
	"github.com/abhisek/wordiz/internal/screens/notice"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

type statsLoadedMsg struct {
	stats homeStats
	err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	svc           *screen.Services
	menu          components.Menu
	stats         homeStats
	loadErr       error
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(svc *screen.Services) *HomeScreen {
	practiceItem := func(mode mastery.Mode) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: levels.New(svc, mode)}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "SENTENCE COMPLETION", Action: practiceItem(mastery.ModeSentenceCompletion)},
		{Label: "SPEAKING", Action: practiceItem(mastery.ModeSpeaking)},
		{Label: "HISTORY", Action: func() tea.Cmd {
			if svc == nil || svc.Events == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: notice.New("History", "History needs a database.")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(svc.Events)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		svc:  svc,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the dashboard after returning from practice.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	svc := h.svc
	if svc == nil || svc.Sentences == nil || svc.Mastery == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		set, err := svc.Sentences.Sentences(ctx)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		st := homeStats{
			completed: make(map[mastery.Mode]int),
			levels:    len(set.Levels()),
			sentences: set.Len(),
			origin:    string(svc.Sentences.Status().Origin),
		}
		for _, m := range mastery.Modes {
			recs, err := svc.Mastery.Records(ctx, m)
			if err != nil {
				return statsLoadedMsg{err: err}
			}
			for _, r := range recs {
				if r.Completed {
					st.completed[m]++
				}
			}
		}
		return statsLoadedMsg{stats: st}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.loadErr = msg.err
		if msg.err != nil {
			h.svc.Log().Warn("load home stats", "error", msg.err)
			h.mascotVariant = MascotAlert
			return h, nil
		}
		h.stats = msg.stats
		h.mascotVariant = mascotFor(msg.stats)
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func mascotFor(st homeStats) MascotVariant {
	if st.sentences == 0 {
		return MascotAlert
	}
	for _, m := range mastery.Modes {
		if st.levels > 0 && st.completed[m] >= st.levels {
			return MascotCelebrating
		}
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompact(width, height+layout.HeaderHeight+layout.FooterHeight)
	tiny := height < 14

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if h.svc != nil && h.svc.Feedback != nil && !h.svc.Feedback.HasExplainer() {
		sections = append(sections, renderLLMBanner(cw))
	}

	if tiny {
		sections = append(sections, renderArcadeMenuCompact(h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	} else {
		sections = append(sections, renderArcadeMenu(h.menu.Labels(), h.menu.Selected, cw, h.menu.DisabledSet()))
	}

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
