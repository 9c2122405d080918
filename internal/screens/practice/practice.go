package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/abhisek/wordiz/internal/feedback"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/progression"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/notice"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/sentence"
	"github.com/abhisek/wordiz/internal/speech"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

const (
	speechTimeout      = 30 * time.Second
	explanationTimeout = 45 * time.Second
)

// PracticeScreen runs one level attempt in either practice mode.
type PracticeScreen struct {
	svc   *screen.Services
	mode  mastery.Mode
	level int
	rng   *rand.Rand

	attempt *progression.Attempt
	bank    components.WordBank
	input   components.TextInput

	itemStart time.Time
	answers   int
	firstTry  int

	showingFeedback    bool
	showingQuitConfirm bool
	outcome            progression.Outcome
	mistake            *feedback.Result
	explaining         bool
	explainCh          chan *feedback.Result

	banner      string // set after a pass transition
	status      string // transient hint or speech error
	recognizing bool
	saveErr     error
	errMsg      string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)
var _ screen.StatusProvider = (*PracticeScreen)(nil)

// New creates a practice screen for one level. The attempt is built in
// Init from the current sentence set.
func New(svc *screen.Services, mode mastery.Mode, level int) *PracticeScreen {
	return &PracticeScreen{
		svc:   svc,
		mode:  mode,
		level: level,
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(level))),
		input: newInput(),
	}
}

func newInput() components.TextInput {
	return components.NewTextInput("Say (Ctrl+R) or type the sentence...", 200)
}

func (s *PracticeScreen) Init() tea.Cmd {
	return tea.Batch(
		s.loadAttempt(),
		s.input.Init(),
	)
}

func (s *PracticeScreen) Title() string {
	return s.mode.Label()
}

func (s *PracticeScreen) Status() string {
	return fmt.Sprintf("Level %d", s.level)
}

// HandlesEscape keeps Esc for the quit confirmation while an attempt is
// running.
func (s *PracticeScreen) HandlesEscape() bool {
	return s.attempt != nil && s.errMsg == ""
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	if s.attempt == nil {
		return nil
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave level"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "Ctrl+P", Description: "Listen"},
			{Key: "any key", Description: "Continue"},
		}
	}
	if s.mode == mastery.ModeSpeaking {
		return []layout.KeyHint{
			{Key: "Ctrl+R", Description: "Speak"},
			{Key: "Ctrl+P", Description: "Listen"},
			{Key: "Enter", Description: "Check"},
			{Key: "Esc", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→/1-9", Description: "Pick"},
		{Key: "⌫", Description: "Undo"},
		{Key: "Ctrl+R", Description: "Clear"},
		{Key: "Tab", Description: "Check"},
		{Key: "Esc", Description: "Quit"},
	}
}

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, height, s.errMsg)
	}
	if s.attempt == nil {
		return renderLoading(width, height)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width, height)
	}
	if s.showingFeedback {
		return s.renderFeedback(width, height)
	}
	return s.renderItemView(width, height)
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptReadyMsg:
		return s.handleAttemptReady(msg)

	case recognizedMsg:
		s.recognizing = false
		if msg.Err != nil {
			s.status = speechErrorText("Speech recognition", msg.Err)
			return s, nil
		}
		s.input.SetValue(msg.Text)
		s.status = ""
		return s, nil

	case spokenMsg:
		if msg.Err != nil {
			s.status = speechErrorText("Speech playback", msg.Err)
		}
		return s, nil

	case explanationMsg:
		s.explaining = false
		if s.showingFeedback && s.mistake != nil && msg.Result != nil && msg.ItemID == s.outcome.Item.ID {
			s.mistake.Explanation = msg.Result.Explanation
			s.mistake.Tip = msg.Result.Tip
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	// Forward to input (cursor blink) while answering by speech.
	if s.attempt != nil && s.mode == mastery.ModeSpeaking && !s.showingFeedback && !s.showingQuitConfirm {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// loadAttempt reads the current sentence set and starts the attempt.
func (s *PracticeScreen) loadAttempt() tea.Cmd {
	svc, mode, level := s.svc, s.mode, s.level
	return func() tea.Msg {
		if svc == nil || svc.Sentences == nil {
			return attemptReadyMsg{Err: errors.New("no sentence source configured")}
		}
		set, err := svc.Sentences.Sentences(context.Background())
		if err != nil {
			return attemptReadyMsg{Err: err}
		}

		var opts []progression.Option
		if svc.Evaluator != nil {
			opts = append(opts, progression.WithEvaluator(svc.Evaluator))
		}
		var progress progression.ProgressStore
		if svc.Mastery != nil {
			progress = svc.Mastery
		}
		a, err := progression.ForLevel(set, mode, level, progress, opts...)
		if err != nil {
			return attemptReadyMsg{Err: err}
		}
		return attemptReadyMsg{Attempt: a}
	}
}

func (s *PracticeScreen) handleAttemptReady(msg attemptReadyMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, sentence.ErrNoLevel) {
		n := notice.New("No sentences", fmt.Sprintf("Level %d has no sentences to practice.", s.level))
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: n} }
	}
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}

	s.attempt = msg.Attempt
	s.recordAttemptEvent("start")
	s.svc.Log().Info("attempt started",
		slog.String("attempt_id", s.attempt.ID()),
		slog.String("mode", string(s.mode)),
		slog.Int("level", s.level),
		slog.Int("items", s.attempt.Total()))
	return s, s.prepareItem()
}

// prepareItem resets the answer widgets for the current item.
func (s *PracticeScreen) prepareItem() tea.Cmd {
	item, ok := s.attempt.Current()
	if !ok {
		s.errMsg = progression.ErrNoCurrentItem.Error()
		return nil
	}
	s.bank = components.NewWordBank(answer.Tokenize(item.Target), s.rng)
	s.input = newInput()
	s.itemStart = time.Now()
	s.status = ""
	return s.input.Init()
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back.
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.attempt == nil {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			s.recordAttemptEvent("abandon")
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		if key == "ctrl+p" {
			return s, s.speak(s.outcome.Item.Target)
		}
		return s.continueAfterFeedback()
	}

	switch key {
	case "esc":
		s.showingQuitConfirm = true
		return s, nil
	case "ctrl+p":
		item, _ := s.attempt.Current()
		return s, s.speak(item.Target)
	}

	if s.mode == mastery.ModeSpeaking {
		switch key {
		case "enter":
			return s.submit(s.input.Value())
		case "ctrl+r":
			return s, s.recognize()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	if key == "tab" {
		return s.submit(s.bank.Answer())
	}
	var cmd tea.Cmd
	s.bank, cmd = s.bank.Update(msg)
	return s, cmd
}

// submit checks an answer for the current item.
func (s *PracticeScreen) submit(text string) (screen.Screen, tea.Cmd) {
	ctx := context.Background()
	phase, cycle := s.attempt.Phase(), s.attempt.Cycle()

	out, err := s.attempt.Answer(ctx, text)
	if errors.Is(err, progression.ErrNoCurrentItem) || errors.Is(err, progression.ErrLevelComplete) {
		s.errMsg = err.Error()
		return s, nil
	}
	if out.Verdict.Empty {
		if s.mode == mastery.ModeSpeaking {
			s.status = "Say or type the sentence first."
		} else {
			s.status = "Pick some words first."
		}
		return s, nil
	}
	if err != nil {
		s.saveErr = err
		s.svc.Log().Error("save level progress", slog.Any("error", err))
	}

	s.answers++
	if phase == progression.PhaseFirstPass && out.Verdict.Correct {
		s.firstTry++
	}
	s.outcome = out
	s.mistake = nil
	s.showingFeedback = true
	if s.mode == mastery.ModeSpeaking {
		s.input.Submit(out.Verdict.Correct)
	}

	var cmd tea.Cmd
	if !out.Verdict.Correct && s.svc.Feedback != nil {
		cmd = s.analyze(out)
	}
	s.recordAnswerEvent(out, phase, cycle)
	return s, cmd
}

// analyze classifies a wrong answer and waits for an LLM explanation
// when one is available.
func (s *PracticeScreen) analyze(out progression.Outcome) tea.Cmd {
	ch := make(chan *feedback.Result, 1)
	s.explainCh = ch
	s.mistake = s.svc.Feedback.Analyze(context.Background(), out.Item, out.Verdict, func(r *feedback.Result) {
		select {
		case ch <- r:
		default:
		}
	})
	if s.mistake == nil || !s.svc.Feedback.HasExplainer() {
		return nil
	}
	s.explaining = true
	itemID := out.Item.ID
	return func() tea.Msg {
		select {
		case r := <-ch:
			return explanationMsg{ItemID: itemID, Result: r}
		case <-time.After(explanationTimeout):
			return explanationMsg{ItemID: itemID}
		}
	}
}

// continueAfterFeedback advances the attempt once feedback is dismissed.
func (s *PracticeScreen) continueAfterFeedback() (screen.Screen, tea.Cmd) {
	s.showingFeedback = false
	s.mistake = nil
	s.explaining = false
	s.banner = ""

	if s.attempt.Phase() == progression.PhaseLevelComplete {
		return s, s.finish()
	}

	tr, err := s.attempt.Advance(context.Background())
	switch tr {
	case progression.TransitionComplete:
		if err != nil && !errors.Is(err, progression.ErrLevelComplete) {
			s.saveErr = err
			s.svc.Log().Error("save level progress", slog.Any("error", err))
		}
		return s, s.finish()
	case progression.TransitionStartReview:
		s.banner = fmt.Sprintf("Review time! %d sentence(s) to try again.", len(s.attempt.Sequence()))
		s.recordAttemptEvent("review")
	case progression.TransitionNewCycle:
		s.banner = fmt.Sprintf("Review cycle %d: %d sentence(s) left.", s.attempt.Cycle(), len(s.attempt.Sequence()))
		s.recordAttemptEvent("cycle")
	}
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	return s, s.prepareItem()
}

// finish records completion and shows the summary on top of this screen.
func (s *PracticeScreen) finish() tea.Cmd {
	s.recordAttemptEvent("complete")
	s.svc.Log().Info("attempt completed",
		slog.String("attempt_id", s.attempt.ID()),
		slog.Int("answers", s.answers),
		slog.Int("cycles", s.attempt.Cycle()))

	result := summary.Result{
		Mode:             s.mode,
		Level:            s.level,
		TotalItems:       s.attempt.Total(),
		FirstPassCorrect: s.firstTry,
		Answers:          s.answers,
		Cycles:           s.attempt.Cycle(),
		SaveErr:          s.saveErr,
	}
	svc, mode, level := s.svc, s.mode, s.level
	actions := summary.Actions{
		Retry: func() screen.Screen { return New(svc, mode, level) },
		Save:  s.attempt.Persist,
	}
	if next := s.attempt.Next(); next != nil {
		result.NextLevel = next.Level
		actions.Next = func() screen.Screen { return New(svc, mode, next.Level) }
	}

	sum := summary.New(result, actions)
	return func() tea.Msg { return router.PushScreenMsg{Screen: sum} }
}

func (s *PracticeScreen) speak(text string) tea.Cmd {
	sp := s.svc.Speaker
	if !speech.Available(sp) {
		s.status = "Speech playback is not configured (WORDIZ_SPEAK_CMD)."
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()
		return spokenMsg{Err: sp.Speak(ctx, text)}
	}
}

func (s *PracticeScreen) recognize() tea.Cmd {
	rec := s.svc.Recognizer
	if !speech.Available(rec) {
		s.status = "Speech recognition is not configured (WORDIZ_RECOGNIZE_CMD). Type the sentence instead."
		return nil
	}
	if s.recognizing {
		return nil
	}
	s.recognizing = true
	s.status = "Listening..."
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), speechTimeout)
		defer cancel()
		text, err := rec.Recognize(ctx)
		return recognizedMsg{Text: text, Err: err}
	}
}

func (s *PracticeScreen) recordAnswerEvent(out progression.Outcome, phase progression.Phase, cycle int) {
	if s.svc.Events == nil {
		return
	}
	data := store.AnswerEventData{
		AttemptID: s.attempt.ID(),
		Mode:      string(s.mode),
		Level:     s.level,
		ItemID:    out.Item.ID,
		Phase:     phase.String(),
		Cycle:     cycle,
		Expected:  out.Verdict.Expected,
		Given:     out.Verdict.Given,
		Correct:   out.Verdict.Correct,
		TimeMs:    int(time.Since(s.itemStart).Milliseconds()),
	}
	if s.mistake != nil {
		data.Mistake = string(s.mistake.Category)
	}
	if err := s.svc.Events.AppendAnswerEvent(context.Background(), data); err != nil {
		s.svc.Log().Warn("append answer event", slog.Any("error", err))
	}
}

func (s *PracticeScreen) recordAttemptEvent(action string) {
	if s.svc.Events == nil {
		return
	}
	err := s.svc.Events.AppendAttemptEvent(context.Background(), store.AttemptEventData{
		AttemptID:  s.attempt.ID(),
		Mode:       string(s.mode),
		Level:      s.level,
		Action:     action,
		TotalItems: s.attempt.Total(),
		Missed:     len(s.attempt.Missed()),
		Cycle:      s.attempt.Cycle(),
	})
	if err != nil {
		s.svc.Log().Warn("append attempt event", slog.String("action", action), slog.Any("error", err))
	}
}

func speechErrorText(what string, err error) string {
	if errors.Is(err, speech.ErrUnavailable) {
		return what + " is not available."
	}
	return fmt.Sprintf("%s failed: %v", what, err)
}

// verdictText is the learner's normalized answer for display.
func verdictText(v answer.Verdict) string {
	if v.Given == "" {
		return "(nothing)"
	}
	return v.Given
}
