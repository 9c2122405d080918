package cmd

import (
	"fmt"

	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/spf13/cobra"
)

// cfg is resolved once per invocation by the root PersistentPreRunE.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "wordiz",
	Short: "Sentence-building practice in the terminal",
	Long: `Wordiz is a terminal app for practicing sentence building by arranging
words and by speaking, level by level.

Mistake explanations need an LLM. Set one of GEMINI_API_KEY, OPENAI_API_KEY,
ANTHROPIC_API_KEY or OPENROUTER_API_KEY, or choose explicitly with
WORDIZ_LLM_PROVIDER plus WORDIZ_<PROVIDER>_API_KEY (optional _MODEL and
_BASE_URL). WORDIZ_LLM_MODEL overrides the model for any provider.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides WORDIZ_DB env var)")
	rootCmd.PersistentFlags().String("sentences", "", "Path to a CSV or XLSX sentence file (overrides WORDIZ_SENTENCES env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Optional .env file to load before reading the environment")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the .env file and environment, then applies flags.
func loadConfig(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}
	c, err := config.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		c.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("sentences"); p != "" {
		c.SentencesPath = p
	}
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then WORDIZ_DB env var, then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the configured database.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
