package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/abhisek/wordiz/internal/store"
)

// recorder appends an LLMRequestEvent for every call that reaches it.
type recorder struct {
	next    Provider
	backend string
	events  store.EventRepo
	logger  *slog.Logger
}

func (r *recorder) Model() string { return r.next.Model() }

func (r *recorder) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	start := time.Now()
	c, err := r.next.Complete(ctx, p)

	ev := store.LLMRequestEventData{
		Provider:    r.backend,
		Model:       r.next.Model(),
		Purpose:     p.Purpose,
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describePrompt(p),
	}
	if ev.Purpose == "" {
		ev.Purpose = "unknown"
	}
	if c != nil {
		if c.Model != "" {
			ev.Model = c.Model
		}
		ev.InputTokens = c.InputTokens
		ev.OutputTokens = c.OutputTokens
		ev.ResponseBody = string(c.JSON)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// The event is an audit record; losing it must not fail the call. It is
	// still written when the caller's context was cancelled or timed out.
	if logErr := r.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); logErr != nil {
		if r.logger != nil {
			r.logger.Warn("record LLM request", "purpose", ev.Purpose, "error", logErr)
		} else {
			fmt.Fprintf(os.Stderr, "warning: failed to record LLM request: %v\n", logErr)
		}
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// describePrompt renders a prompt for `wordiz llm view`.
func describePrompt(p Prompt) string {
	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "## %s\n%s\n\n", title, strings.TrimRight(body, "\n"))
	}
	if p.System != "" {
		section("system", p.System)
	}
	section("user", p.User)
	if p.Schema != nil {
		if def, err := json.MarshalIndent(p.Schema.Definition, "", "  "); err == nil {
			section("schema "+p.Schema.Name, string(def))
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
