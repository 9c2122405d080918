package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/feedback"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/logging"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/source"
	"github.com/abhisek/wordiz/internal/speech"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the practice app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// newSourceService builds the sentence source for the configured file.
func newSourceService(st *store.Store, logger *slog.Logger) *source.Service {
	var loader source.Loader
	if cfg.SentencesPath != "" {
		loader = source.FileLoader{Path: cfg.SentencesPath}
	}
	return source.NewService(loader, st.SentenceRepo(),
		source.WithCacheTTL(cfg.CacheTTL),
		source.WithLogger(logger),
	)
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v; logging disabled\n", err)
		logger = logging.Discard()
	}
	defer logger.Close()

	dbPath, err := resolveDBPath()
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	evaluator, err := cfg.Evaluator()
	if err != nil {
		return err
	}

	sentences := newSourceService(st, logger.Logger)
	if cfg.RefreshInterval > 0 {
		if err := sentences.StartAutoRefresh(cfg.RefreshInterval); err != nil {
			return err
		}
		defer sentences.Stop()
	}

	eventRepo := st.EventRepo()
	provider, err := llm.FromEnv(ctx, llm.WithEventLog(eventRepo), llm.WithLogger(logger.Logger))
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Mistake explanations will be unavailable.")
		provider = nil
	}
	fb := feedback.NewService(provider)
	defer fb.Close()

	speaker, err := speech.SpeakerFromCommand(cfg.SpeakCommand)
	if err != nil {
		return fmt.Errorf("speak command: %w", err)
	}
	recognizer, err := speech.RecognizerFromCommand(cfg.RecognizeCommand)
	if err != nil {
		return fmt.Errorf("recognize command: %w", err)
	}

	logger.Info("starting",
		"db", dbPath,
		"sentences", cfg.SentencesPath,
		"match", cfg.Match,
		"explanations", fb.HasExplainer(),
		"speech", speech.Available(speaker),
		"recognition", speech.Available(recognizer),
	)

	return app.Run(&screen.Services{
		Sentences:  sentences,
		Mastery:    mastery.NewService(st.ProgressRepo()),
		Events:     eventRepo,
		Evaluator:  evaluator,
		Feedback:   fb,
		Speaker:    speaker,
		Recognizer: recognizer,
		Logger:     logger.Logger,
	})
}
