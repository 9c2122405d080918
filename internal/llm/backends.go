package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/wordiz/internal/store"
)

type backend struct {
	name         string
	vendorKeyVar string
	defaultModel string
	// aliases map short names to model IDs. Unknown names pass through.
	aliases map[string]string
	open    func(ctx context.Context, cfg Config, model string) (Provider, error)
}

// backends is in discovery order.
var backends = []backend{
	{
		name:         "gemini",
		vendorKeyVar: "GEMINI_API_KEY",
		defaultModel: "gemini-2.0-flash",
		aliases:      map[string]string{"gemini-flash": "gemini-2.0-flash", "gemini-pro": "gemini-2.5-pro"},
		open:         openGemini,
	},
	{
		name:         "openai",
		vendorKeyVar: "OPENAI_API_KEY",
		defaultModel: "gpt-4o-mini",
		open:         openOpenAI,
	},
	{
		name:         "anthropic",
		vendorKeyVar: "ANTHROPIC_API_KEY",
		defaultModel: "claude-haiku-4-5-20251001",
		aliases:      map[string]string{"claude-haiku": "claude-haiku-4-5-20251001", "claude-sonnet": "claude-sonnet-4-20250514"},
		open:         openAnthropic,
	},
	{
		name:         "openrouter",
		vendorKeyVar: "OPENROUTER_API_KEY",
		defaultModel: "google/gemini-2.0-flash-001",
		open:         openOpenRouter,
	},
}

func lookupBackend(name string) (backend, bool) {
	for _, b := range backends {
		if b.name == name {
			return b, true
		}
	}
	return backend{}, false
}

func (b backend) resolveModel(name string) string {
	if name == "" {
		return b.defaultModel
	}
	if id, ok := b.aliases[name]; ok {
		return id
	}
	return name
}

// Option customizes Open.
type Option func(*openOptions)

type openOptions struct {
	events store.EventRepo
	logger *slog.Logger
}

// WithEventLog records every call as an LLM request event.
func WithEventLog(repo store.EventRepo) Option {
	return func(o *openOptions) { o.events = repo }
}

// WithLogger sets where event-log failures are reported. Without it they go
// to stderr.
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) { o.logger = l }
}

// Open builds the configured provider. Calls go through retry first and are
// recorded per attempt when an event log is set.
func Open(ctx context.Context, cfg Config, opts ...Option) (Provider, error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Provider == "mock" {
		return NewMockProvider(), nil
	}
	b, ok := lookupBackend(cfg.Provider)
	if !ok {
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	p, err := b.open(ctx, cfg, b.resolveModel(cfg.Model))
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", b.name, err)
	}

	if o.events != nil {
		p = &recorder{next: p, backend: b.name, events: o.events, logger: o.logger}
	}
	return WithRetry(p, cfg.Retry, cfg.Timeout), nil
}

// FromEnv opens the provider named by WORDIZ_LLM_PROVIDER, or the first one
// DiscoverConfig finds. It returns (nil, nil) when nothing is configured:
// explanations are optional.
func FromEnv(ctx context.Context, opts ...Option) (Provider, error) {
	cfg := ConfigFromEnv()
	if os.Getenv("WORDIZ_LLM_PROVIDER") == "" {
		found, ok := DiscoverConfig()
		if !ok {
			return nil, nil
		}
		cfg = found
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return Open(ctx, cfg, opts...)
}
