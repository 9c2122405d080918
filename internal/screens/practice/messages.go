package practice

import (
	"github.com/abhisek/wordiz/internal/feedback"
	"github.com/abhisek/wordiz/internal/progression"
)

// attemptReadyMsg is sent when the level's sentences are loaded.
type attemptReadyMsg struct {
	Attempt *progression.Attempt
	Err     error
}

// recognizedMsg carries a speech transcript from the recognizer.
type recognizedMsg struct {
	Text string
	Err  error
}

// spokenMsg is sent when text-to-speech playback finishes.
type spokenMsg struct {
	Err error
}

// explanationMsg carries an LLM explanation for a wrong answer.
type explanationMsg struct {
	ItemID string
	Result *feedback.Result
}
