package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/wordiz/internal/source"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Load a sentence file into the local cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := source.Import(cmd.Context(), s.SentenceRepo(), args[0])
		if res != nil {
			for _, skipped := range res.Skipped {
				fmt.Fprintf(os.Stderr, "warning: skipped %v\n", skipped)
			}
		}
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}
		fmt.Printf("Imported %d sentences from %s", len(res.Items), args[0])
		if n := len(res.Skipped); n > 0 {
			fmt.Printf(" (%d rows skipped)", n)
		}
		fmt.Println()
		return nil
	},
}
