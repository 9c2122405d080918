// Package config resolves runtime settings from the environment, an
// optional .env file and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/abhisek/wordiz/internal/source"
)

// Config holds application configuration.
type Config struct {
	// DBPath is the SQLite database file. Empty means store.DefaultDBPath.
	DBPath string

	// SentencesPath is a CSV or XLSX content file. Empty means the
	// sentence cache, then the built-in sample set.
	SentencesPath string

	// CacheTTL bounds how long loaded sentences are reused before the
	// content file is read again.
	CacheTTL time.Duration

	// RefreshInterval enables periodic background reloads when > 0.
	RefreshInterval time.Duration

	SpeakCommand     string
	RecognizeCommand string

	// Match is the answer comparison policy ("exact" or "fuzzy").
	Match string

	// Substitutions names the speech misrecognition table ("ko" or "none").
	Substitutions string

	LogPath  string
	LogLevel string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheTTL:      source.DefaultCacheTTL,
		Match:         "exact",
		Substitutions: "ko",
		LogLevel:      "info",
	}
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given) without overriding the existing environment. Missing files
// are not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv("WORDIZ_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WORDIZ_SENTENCES"); v != "" {
		cfg.SentencesPath = v
	}
	if v := os.Getenv("WORDIZ_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("WORDIZ_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v := os.Getenv("WORDIZ_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("WORDIZ_REFRESH_INTERVAL: %w", err)
		}
		cfg.RefreshInterval = d
	}
	if v := os.Getenv("WORDIZ_SPEAK_CMD"); v != "" {
		cfg.SpeakCommand = v
	}
	if v := os.Getenv("WORDIZ_RECOGNIZE_CMD"); v != "" {
		cfg.RecognizeCommand = v
	}
	if v := os.Getenv("WORDIZ_MATCH"); v != "" {
		cfg.Match = v
	}
	if v := os.Getenv("WORDIZ_SUBSTITUTIONS"); v != "" {
		cfg.Substitutions = v
	}
	if v := os.Getenv("WORDIZ_LOG"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("WORDIZ_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, cfg.Validate()
}

// Validate checks values that cannot be resolved lazily.
func (c Config) Validate() error {
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache TTL must not be negative: %s", c.CacheTTL)
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("refresh interval must not be negative: %s", c.RefreshInterval)
	}
	if _, err := answer.ParsePolicy(c.Match); err != nil {
		return err
	}
	if _, ok := answer.SubstitutionsByName(c.Substitutions); !ok {
		return fmt.Errorf("unknown substitution table %q", c.Substitutions)
	}
	return nil
}

// Evaluator builds the answer evaluator described by the config.
func (c Config) Evaluator() (*answer.Evaluator, error) {
	policy, err := answer.ParsePolicy(c.Match)
	if err != nil {
		return nil, err
	}
	sub, ok := answer.SubstitutionsByName(c.Substitutions)
	if !ok {
		return nil, fmt.Errorf("unknown substitution table %q", c.Substitutions)
	}
	return &answer.Evaluator{Policy: policy, Substituter: sub}, nil
}
