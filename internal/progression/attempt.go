// Package progression drives a single level attempt: a first pass over
// every item of the level, then review cycles over the missed items until
// none remain.
package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/sentence"
)

var (
	// ErrNoCurrentItem is returned when the active sequence has no item at
	// the current index.
	ErrNoCurrentItem = errors.New("no current item")

	// ErrLevelComplete is returned by operations that need an unfinished
	// attempt.
	ErrLevelComplete = errors.New("level already complete")
)

// Phase is the state of a level attempt.
type Phase int

const (
	PhaseFirstPass Phase = iota
	PhaseReviewPass
	PhaseLevelComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseFirstPass:
		return "first-pass"
	case PhaseReviewPass:
		return "review-pass"
	case PhaseLevelComplete:
		return "level-complete"
	default:
		return "unknown"
	}
}

// Transition describes what an Advance did.
type Transition int

const (
	TransitionNext        Transition = iota // moved to the next item
	TransitionStartReview                   // first pass ended with misses
	TransitionNewCycle                      // review sequence exhausted with misses left
	TransitionComplete                      // level completed
)

func (t Transition) String() string {
	switch t {
	case TransitionNext:
		return "next"
	case TransitionStartReview:
		return "review"
	case TransitionNewCycle:
		return "cycle"
	case TransitionComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// ProgressStore persists level progress records.
type ProgressStore interface {
	Load(ctx context.Context, mode mastery.Mode, level int) (*mastery.LevelProgressRecord, error)
	Save(ctx context.Context, mode mastery.Mode, level int, rec mastery.LevelProgressRecord) error
	Unlock(ctx context.Context, mode mastery.Mode, level, totalItems int) error
}

// NextLevel identifies the level unlocked when an attempt completes.
type NextLevel struct {
	Level      int
	TotalItems int
}

// Outcome is the result of recording an answer.
type Outcome struct {
	Item      sentence.Item
	Verdict   answer.Verdict
	Completed bool // the answer emptied the missed set during review
}

// Option configures an Attempt.
type Option func(*Attempt)

// WithEvaluator replaces the default exact-match evaluator.
func WithEvaluator(e *answer.Evaluator) Option {
	return func(a *Attempt) { a.evaluator = e }
}

// WithID sets the attempt ID instead of generating one.
func WithID(id string) Option {
	return func(a *Attempt) { a.id = id }
}

// Attempt is one pass-and-review run through a level. It is owned by a
// single caller and is not safe for concurrent use.
type Attempt struct {
	id        string
	mode      mastery.Mode
	level     int
	items     []sentence.Item
	next      *NextLevel
	store     ProgressStore
	evaluator *answer.Evaluator

	phase     Phase
	sequence  []sentence.Item
	index     int
	missed    map[string]bool
	cycle     int
	saved     bool
	persisted bool

	// Set when a correct review answer removed the current item, so the
	// following item has already slid into place.
	slid bool
	// Set when the removal consumed the tail of the review sequence.
	exhausted bool
}

// NewAttempt starts an attempt over items, which must all belong to level.
// next is nil when level is the last one.
func NewAttempt(mode mastery.Mode, level int, items []sentence.Item, next *NextLevel, store ProgressStore, opts ...Option) *Attempt {
	a := &Attempt{
		mode:      mode,
		level:     level,
		items:     append([]sentence.Item(nil), items...),
		next:      next,
		store:     store,
		evaluator: answer.NewEvaluator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.id == "" {
		a.id = uuid.NewString()
	}
	a.reset()
	return a
}

// ForLevel starts an attempt over one level of set.
func ForLevel(set *sentence.Set, mode mastery.Mode, level int, store ProgressStore, opts ...Option) (*Attempt, error) {
	if !set.HasLevel(level) {
		return nil, fmt.Errorf("level %d: %w", level, sentence.ErrNoLevel)
	}
	var next *NextLevel
	if n, ok := set.NextLevel(level); ok {
		next = &NextLevel{Level: n, TotalItems: len(set.ByLevel(n))}
	}
	return NewAttempt(mode, level, set.ByLevel(level), next, store, opts...), nil
}

func (a *Attempt) reset() {
	a.phase = PhaseFirstPass
	a.sequence = append([]sentence.Item(nil), a.items...)
	a.index = 0
	a.missed = make(map[string]bool)
	a.cycle = 0
	a.saved = false
	a.persisted = false
	a.slid = false
	a.exhausted = false
}

// Retry restarts the attempt from the first pass.
func (a *Attempt) Retry() {
	a.reset()
}

// Current returns the item to practice, or false when there is none.
func (a *Attempt) Current() (sentence.Item, bool) {
	if a.phase == PhaseLevelComplete || a.index < 0 || a.index >= len(a.sequence) {
		return sentence.Item{}, false
	}
	return a.sequence[a.index], true
}

// Answer evaluates text against the current item and records the verdict.
// Empty answers are reported in the verdict and leave the attempt unchanged.
func (a *Attempt) Answer(ctx context.Context, text string) (Outcome, error) {
	item, ok := a.Current()
	if !ok {
		return Outcome{}, a.noItemErr()
	}

	input := answer.InputTyped
	if a.mode == mastery.ModeSpeaking {
		input = answer.InputSpeech
	}
	v := a.evaluator.Check(input, text, item.Target)
	if v.Empty {
		return Outcome{Item: item, Verdict: v}, nil
	}

	out, err := a.Record(ctx, v.Correct)
	out.Verdict = v
	return out, err
}

// Record applies a verdict computed elsewhere to the current item.
func (a *Attempt) Record(ctx context.Context, correct bool) (Outcome, error) {
	item, ok := a.Current()
	if !ok {
		return Outcome{}, a.noItemErr()
	}
	out := Outcome{Item: item, Verdict: answer.Verdict{Correct: correct}}

	if !correct {
		a.missed[item.ID] = true
		return out, nil
	}

	delete(a.missed, item.ID)
	if a.phase != PhaseReviewPass {
		return out, nil
	}

	a.removeFromSequence(item.ID)
	if len(a.missed) == 0 {
		out.Completed = true
		return out, a.complete(ctx)
	}
	return out, nil
}

// removeFromSequence drops a resolved item from the live review sequence,
// keeping the index on the item that followed it.
func (a *Attempt) removeFromSequence(id string) {
	for i, it := range a.sequence {
		if it.ID != id {
			continue
		}
		a.sequence = append(a.sequence[:i], a.sequence[i+1:]...)
		switch {
		case i < a.index:
			a.index--
		case i == a.index:
			a.slid = true
		}
		break
	}
	if a.index >= len(a.sequence) {
		a.index = max(0, len(a.sequence)-1)
		a.exhausted = true
	}
}

// Advance moves to the next item, starting a review pass, a new review
// cycle, or completing the level at the end of the active sequence.
func (a *Attempt) Advance(ctx context.Context) (Transition, error) {
	if a.phase == PhaseLevelComplete {
		return TransitionComplete, ErrLevelComplete
	}
	if len(a.sequence) == 0 {
		return TransitionNext, ErrNoCurrentItem
	}

	if a.slid && !a.exhausted {
		a.slid = false
		return TransitionNext, nil
	}
	if !a.exhausted && a.index < len(a.sequence)-1 {
		a.index++
		return TransitionNext, nil
	}

	a.slid = false
	a.exhausted = false
	if len(a.missed) == 0 {
		return TransitionComplete, a.complete(ctx)
	}

	a.sequence = a.missedItems()
	a.index = 0
	a.cycle++
	if a.phase == PhaseFirstPass {
		a.phase = PhaseReviewPass
		return TransitionStartReview, nil
	}
	return TransitionNewCycle, nil
}

// complete enters LevelComplete and persists the result once.
func (a *Attempt) complete(ctx context.Context) error {
	a.phase = PhaseLevelComplete
	a.sequence = nil
	a.index = 0
	return a.Persist(ctx)
}

// Persist saves the completed level and unlocks the next one. It does
// nothing if the attempt is not complete or was already persisted. A failed
// call can be retried and only redoes the step that failed.
func (a *Attempt) Persist(ctx context.Context) error {
	if a.phase != PhaseLevelComplete || a.persisted || a.store == nil {
		return nil
	}
	if !a.saved {
		total := len(a.items)
		rec := mastery.LevelProgressRecord{
			Level:        a.level,
			Completed:    true,
			TotalItems:   total,
			CorrectCount: total - len(a.missed),
			Unlocked:     true,
		}
		if err := a.store.Save(ctx, a.mode, a.level, rec); err != nil {
			return fmt.Errorf("save level %d: %w", a.level, err)
		}
		a.saved = true
	}

	if a.next != nil {
		if err := a.store.Unlock(ctx, a.mode, a.next.Level, a.next.TotalItems); err != nil {
			return fmt.Errorf("unlock level %d: %w", a.next.Level, err)
		}
	}
	a.persisted = true
	return nil
}

func (a *Attempt) noItemErr() error {
	if a.phase == PhaseLevelComplete {
		return ErrLevelComplete
	}
	return ErrNoCurrentItem
}

// missedItems returns the missed items in level order.
func (a *Attempt) missedItems() []sentence.Item {
	var out []sentence.Item
	for _, it := range a.items {
		if a.missed[it.ID] {
			out = append(out, it)
		}
	}
	return out
}

func (a *Attempt) ID() string             { return a.id }
func (a *Attempt) Mode() mastery.Mode     { return a.mode }
func (a *Attempt) Level() int             { return a.level }
func (a *Attempt) Phase() Phase           { return a.phase }
func (a *Attempt) Index() int             { return a.index }
func (a *Attempt) Cycle() int             { return a.cycle }
func (a *Attempt) Total() int             { return len(a.items) }
func (a *Attempt) Persisted() bool        { return a.persisted }
func (a *Attempt) HasNextLevel() bool     { return a.next != nil }
func (a *Attempt) Next() *NextLevel       { return a.next }
func (a *Attempt) Items() []sentence.Item { return a.items }

// Sequence returns a copy of the active item sequence.
func (a *Attempt) Sequence() []sentence.Item {
	return append([]sentence.Item(nil), a.sequence...)
}

// Missed returns the IDs of missed items in level order.
func (a *Attempt) Missed() []string {
	return sentence.IDs(a.missedItems())
}

// CorrectCount is the number of level items not currently missed.
func (a *Attempt) CorrectCount() int {
	return len(a.items) - len(a.missed)
}
