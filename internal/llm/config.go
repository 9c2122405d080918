package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is a backend name: "anthropic", "openai", "gemini",
	// "openrouter" or "mock".
	Provider string

	APIKey string
	// Model is a backend alias or a raw model ID. Empty means the
	// backend's default.
	Model   string
	BaseURL string

	Retry RetryPolicy
	// Timeout bounds one Complete call including retries.
	Timeout time.Duration
}

// DefaultConfig returns the anthropic backend with default retry settings.
func DefaultConfig() Config {
	return Config{
		Provider: "anthropic",
		Retry:    DefaultRetryPolicy(),
		Timeout:  30 * time.Second,
	}
}

// ConfigFromEnv reads WORDIZ_LLM_PROVIDER and that provider's
// WORDIZ_<PROVIDER>_API_KEY, _MODEL and _BASE_URL variables.
// WORDIZ_LLM_MODEL overrides the per-provider model.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("WORDIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = strings.ToLower(p)
	}
	cfg.APIKey = os.Getenv(providerVar(cfg.Provider, "API_KEY"))
	cfg.Model = os.Getenv(providerVar(cfg.Provider, "MODEL"))
	if m := os.Getenv("WORDIZ_LLM_MODEL"); m != "" {
		cfg.Model = m
	}
	cfg.BaseURL = os.Getenv(providerVar(cfg.Provider, "BASE_URL"))
	return cfg
}

// DiscoverConfig picks the first backend whose vendor key variable
// (GEMINI_API_KEY, OPENAI_API_KEY, ...) is set.
func DiscoverConfig() (Config, bool) {
	for _, b := range backends {
		key := os.Getenv(b.vendorKeyVar)
		if key == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = b.name
		cfg.APIKey = key
		return cfg, true
	}
	return Config{}, false
}

// Validate reports a missing key or an unknown provider.
func (c Config) Validate() error {
	if c.Provider == "mock" {
		return nil
	}
	if _, ok := lookupBackend(c.Provider); !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%s is required for the %s provider", providerVar(c.Provider, "API_KEY"), c.Provider)
	}
	return nil
}

func providerVar(provider, suffix string) string {
	return "WORDIZ_" + strings.ToUpper(provider) + "_" + suffix
}
