package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/logging"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

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
		svc := mastery.NewService(s.ProgressRepo())
		levels := len(set.Levels())

		fmt.Printf("%d sentences in %d levels\n\n", set.Len(), levels)

		for _, mode := range mastery.Modes {
			recs, err := svc.Records(ctx, mode)
			if err != nil {
				return err
			}
			completed, correct := 0, 0
			for _, r := range recs {
				if r.Completed {
					completed++
				}
				correct += r.CorrectCount
			}
			fmt.Println(mode.Label())
			fmt.Println(strings.Repeat("─", 48))
			fmt.Printf("Levels completed:  %d/%d\n", completed, levels)
			fmt.Printf("Correct on first try: %d\n", correct)

			missed, err := s.EventRepo().MissedItems(ctx, string(mode), limit)
			if err != nil {
				return fmt.Errorf("query missed items: %w", err)
			}
			if len(missed) > 0 {
				fmt.Println("Most missed:")
				for _, m := range missed {
					fmt.Printf("  %-8s  L%-3d  %d/%d missed  %s\n",
						m.ItemID, m.Level, m.Misses, m.Answers, truncate(m.Expected, 40))
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 5, "Number of most-missed sentences per mode")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
