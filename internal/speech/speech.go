// Package speech abstracts speech recognition and text-to-speech behind
// small capability interfaces. The concrete implementations run external
// programs, so the terminal app works with whatever engine the learner has
// installed (espeak-ng, say, a whisper wrapper, ...).
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// ErrUnavailable is returned when no engine is configured.
var ErrUnavailable = errors.New("speech engine not configured")

// Recognizer turns the learner's speech into a transcript.
type Recognizer interface {
	Recognize(ctx context.Context) (string, error)
}

// Speaker pronounces a sentence.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// TextPlaceholder is replaced by the sentence in speaker command lines.
// When absent the sentence is appended as the last argument.
const TextPlaceholder = "{text}"

// CommandSpeaker speaks through an external program.
type CommandSpeaker struct {
	Args []string
}

// NewCommandSpeaker parses a command line such as `espeak-ng -v en {text}`.
func NewCommandSpeaker(command string) (*CommandSpeaker, error) {
	args, err := splitCommand(command)
	if err != nil {
		return nil, err
	}
	return &CommandSpeaker{Args: args}, nil
}

func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	if len(s.Args) == 0 {
		return ErrUnavailable
	}
	args := make([]string, 0, len(s.Args)+1)
	substituted := false
	for _, a := range s.Args {
		if strings.Contains(a, TextPlaceholder) {
			a = strings.ReplaceAll(a, TextPlaceholder, text)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, text)
	}

	if _, err := run(ctx, args); err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}

// CommandRecognizer records and transcribes through an external program
// that prints the transcript on stdout.
type CommandRecognizer struct {
	Args []string
}

// NewCommandRecognizer parses a command line such as `whisper-listen --lang en`.
func NewCommandRecognizer(command string) (*CommandRecognizer, error) {
	args, err := splitCommand(command)
	if err != nil {
		return nil, err
	}
	return &CommandRecognizer{Args: args}, nil
}

func (r *CommandRecognizer) Recognize(ctx context.Context) (string, error) {
	if len(r.Args) == 0 {
		return "", ErrUnavailable
	}
	out, err := run(ctx, r.Args)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return strings.Join(strings.Fields(out), " "), nil
}

// NopSpeaker reports ErrUnavailable for every request.
type NopSpeaker struct{}

func (NopSpeaker) Speak(context.Context, string) error { return ErrUnavailable }

// NopRecognizer reports ErrUnavailable for every request.
type NopRecognizer struct{}

func (NopRecognizer) Recognize(context.Context) (string, error) { return "", ErrUnavailable }

// SpeakerFromCommand returns a CommandSpeaker, or NopSpeaker when command
// is empty.
func SpeakerFromCommand(command string) (Speaker, error) {
	if strings.TrimSpace(command) == "" {
		return NopSpeaker{}, nil
	}
	return NewCommandSpeaker(command)
}

// RecognizerFromCommand returns a CommandRecognizer, or NopRecognizer when
// command is empty.
func RecognizerFromCommand(command string) (Recognizer, error) {
	if strings.TrimSpace(command) == "" {
		return NopRecognizer{}, nil
	}
	return NewCommandRecognizer(command)
}

// Available reports whether a capability is backed by a real engine.
func Available(v any) bool {
	switch v.(type) {
	case nil, NopSpeaker, NopRecognizer, *NopSpeaker, *NopRecognizer:
		return false
	}
	return true
}

func splitCommand(command string) ([]string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, ErrUnavailable
	}
	return args, nil
}

func run(ctx context.Context, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("%s: %w", args[0], err)
	}
	return stdout.String(), nil
}
