package llm

import (
	"context"
	"encoding/json"
)

// Provider answers one prompt with one completion. wordiz only ever asks a
// single question per call, so there is no conversation history.
type Provider interface {
	Complete(ctx context.Context, p Prompt) (*Completion, error)
	Model() string
}

// Prompt is a single-turn request.
type Prompt struct {
	// Purpose labels the call in the event log, e.g. "feedback".
	Purpose string

	System string
	User   string

	// Schema, when set, asks the provider for JSON matching it. The
	// completion is validated before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Completion is a provider's answer to a Prompt.
type Completion struct {
	JSON         json.RawMessage
	Model        string
	InputTokens  int
	OutputTokens int

	// Truncated is set when the provider stopped at MaxTokens.
	Truncated bool
}

// finish applies the checks shared by every provider: truncated output is an
// error and a schema, when present, must validate.
func finish(p Prompt, c *Completion) (*Completion, error) {
	if c.Truncated {
		return c, &ErrMaxTokensExceeded{Content: c.JSON}
	}
	if p.Schema != nil {
		if err := p.Schema.Validate(c.JSON); err != nil {
			return c, err
		}
	}
	return c, nil
}
