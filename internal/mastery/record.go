package mastery

import "fmt"

// Mode is a practice mode. Progress is tracked separately per mode.
type Mode string

const (
	ModeSentenceCompletion Mode = "sentence-completion"
	ModeSpeaking           Mode = "speaking"
)

// Modes lists every practice mode in display order.
var Modes = []Mode{ModeSentenceCompletion, ModeSpeaking}

// ParseMode resolves a mode name. Short aliases are accepted for the CLI.
func ParseMode(s string) (Mode, error) {
	switch s {
	case string(ModeSentenceCompletion), "sentence", "order", "words":
		return ModeSentenceCompletion, nil
	case string(ModeSpeaking), "speak", "speech":
		return ModeSpeaking, nil
	}
	return "", fmt.Errorf("unknown mode %q (want %s or %s)", s, ModeSentenceCompletion, ModeSpeaking)
}

// Label returns a human-readable name.
func (m Mode) Label() string {
	switch m {
	case ModeSentenceCompletion:
		return "Sentence Completion"
	case ModeSpeaking:
		return "Speaking"
	}
	return string(m)
}

// LevelProgressRecord is the persisted mastery of one level in one mode.
// Completed is true once a full pass of a level attempt ended with no
// missed items.
type LevelProgressRecord struct {
	Level        int
	Completed    bool
	TotalItems   int
	CorrectCount int
	Unlocked     bool
}

// CompletionRate returns CorrectCount/TotalItems in [0, 1].
func (r LevelProgressRecord) CompletionRate() float64 {
	if r.TotalItems <= 0 {
		return 0
	}
	rate := float64(r.CorrectCount) / float64(r.TotalItems)
	return min(max(rate, 0), 1)
}
