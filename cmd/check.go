package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/abhisek/wordiz/internal/feedback"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/logging"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <item-id> <answer...>",
	Short: "Check an answer against a sentence",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		speechInput, _ := cmd.Flags().GetBool("speech")
		explain, _ := cmd.Flags().GetBool("explain")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		set, err := newSourceService(s, logging.Discard().Logger).Sentences(ctx)
		if err != nil {
			return fmt.Errorf("load sentences: %w", err)
		}
		item, ok := set.Find(args[0])
		if !ok {
			return fmt.Errorf("sentence %q not found", args[0])
		}

		evaluator, err := cfg.Evaluator()
		if err != nil {
			return err
		}
		input := answer.InputTyped
		if speechInput {
			input = answer.InputSpeech
		}
		v := evaluator.Check(input, strings.Join(args[1:], " "), item.Target)

		fmt.Printf("Given:    %s\n", v.Given)
		fmt.Printf("Expected: %s\n", v.Expected)
		switch {
		case v.Empty:
			fmt.Println("Result:   empty answer")
			return nil
		case v.Correct && v.Fuzzy:
			fmt.Printf("Result:   ✓ correct (similarity %.2f)\n", v.Similarity)
			return nil
		case v.Correct:
			fmt.Println("Result:   ✓ correct")
			return nil
		}
		fmt.Println("Result:   ✗ incorrect")

		fb := feedback.NewService(nil)
		defer fb.Close()
		res := fb.Analyze(ctx, item, v, nil)
		fmt.Printf("Mistake:  %s (%s)\n", res.Category, res.Category.Label())
		if len(res.Words) > 0 {
			fmt.Printf("Words:    %s\n", strings.Join(res.Words, ", "))
		}

		if !explain {
			return nil
		}
		provider, err := llm.FromEnv(ctx, llm.WithEventLog(s.EventRepo()))
		if err != nil {
			return fmt.Errorf("llm provider: %w", err)
		}
		if provider == nil {
			return fmt.Errorf("no LLM provider configured")
		}
		out, err := feedback.NewExplainer(provider, feedback.DefaultExplainerConfig()).Explain(ctx, &feedback.ExplainRequest{
			Source:   item.Source,
			Target:   item.Target,
			Given:    v.Given,
			Note:     item.Note,
			Category: res.Category,
		})
		if err != nil {
			return fmt.Errorf("explain: %w", err)
		}
		fmt.Printf("\n%s\n", out.Explanation)
		if out.Tip != "" {
			fmt.Printf("Tip: %s\n", out.Tip)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().Bool("speech", false, "Treat the answer as a speech transcript")
	checkCmd.Flags().Bool("explain", false, "Ask the configured LLM to explain a wrong answer")
}
