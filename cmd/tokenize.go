package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/spf13/cobra"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <sentence...>",
	Short: "Show how a sentence is split into words",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		tokens := answer.Tokenize(text)

		fmt.Printf("Tokens:     %s\n", strings.Join(quoteAll(tokens), " "))
		fmt.Printf("Normalized: %s\n", answer.Normalize(text))

		if speechMode, _ := cmd.Flags().GetBool("speech"); speechMode {
			sub, ok := answer.SubstitutionsByName(cfg.Substitutions)
			if !ok {
				return fmt.Errorf("unknown substitution table %q", cfg.Substitutions)
			}
			fmt.Printf("Speech:     %s\n", answer.NormalizeSpeech(text, sub))
		}
		return nil
	},
}

func quoteAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = fmt.Sprintf("[%s]", w)
	}
	return out
}

func init() {
	tokenizeCmd.Flags().Bool("speech", false, "Also show the speech-normalized form")
}
