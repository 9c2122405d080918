package screen

import (
	"log/slog"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/abhisek/wordiz/internal/feedback"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/source"
	"github.com/abhisek/wordiz/internal/speech"
	"github.com/abhisek/wordiz/internal/store"
)

// Services bundles the dependencies screens need. Nil fields disable the
// features that use them.
type Services struct {
	Sentences  *source.Service
	Mastery    *mastery.Service
	Events     store.EventRepo
	Evaluator  *answer.Evaluator
	Feedback   *feedback.Service
	Speaker    speech.Speaker
	Recognizer speech.Recognizer
	Logger     *slog.Logger
}

// Log returns the configured logger or a discarding one.
func (s *Services) Log() *slog.Logger {
	if s == nil || s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
