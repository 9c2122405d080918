package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/logging"
	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show level progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")

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

		if modeName == "" {
			overview, err := svc.Overview(ctx, set)
			if err != nil {
				return err
			}
			fmt.Printf("%-6s  %5s  %7s  %-9s  %s\n", "Level", "Items", "Correct", "State", "Categories")
			fmt.Println(strings.Repeat("─", 64))
			for _, l := range overview {
				fmt.Printf("%-6d  %5d  %7d  %-9s  %s\n",
					l.Level, l.TotalItems, l.CorrectCount,
					levelState(l.Completed, l.Unlocked), strings.Join(l.Categories, ", "))
			}
			return nil
		}

		mode, err := mastery.ParseMode(modeName)
		if err != nil {
			return err
		}
		recs, err := svc.Records(ctx, mode)
		if err != nil {
			return err
		}
		byLevel := make(map[int]mastery.LevelProgressRecord, len(recs))
		for _, r := range recs {
			byLevel[r.Level] = r
		}

		fmt.Println(mode.Label())
		fmt.Printf("%-6s  %5s  %7s  %-9s\n", "Level", "Items", "Correct", "State")
		fmt.Println(strings.Repeat("─", 34))
		for i, level := range set.Levels() {
			r, ok := byLevel[level]
			unlocked := i == 0 || (ok && r.Unlocked)
			fmt.Printf("%-6d  %5d  %7d  %-9s\n",
				level, len(set.ByLevel(level)), r.CorrectCount, levelState(r.Completed, unlocked))
		}
		return nil
	},
}

func levelState(completed, unlocked bool) string {
	switch {
	case completed:
		return "completed"
	case unlocked:
		return "open"
	}
	return "locked"
}

func init() {
	levelsCmd.Flags().StringP("mode", "m", "", "Show a single mode (sentence-completion or speaking)")
}
