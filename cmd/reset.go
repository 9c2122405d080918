package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/wordiz/internal/mastery"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset level progress",
	Long: "Reset level progress. With --level only that level is reset in both modes\n" +
		"and stays unlocked; without it every record is removed.",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetInt("level")
		yes, _ := cmd.Flags().GetBool("yes")

		if !yes {
			prompt := "Reset all progress?"
			if level > 0 {
				prompt = fmt.Sprintf("Reset level %d?", level)
			}
			if !confirm(prompt) {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		svc := mastery.NewService(s.ProgressRepo())
		if level > 0 {
			if err := svc.ResetLevel(cmd.Context(), level); err != nil {
				return err
			}
			fmt.Printf("Level %d reset.\n", level)
			return nil
		}
		if err := svc.ResetAll(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("All progress reset.")
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	resetCmd.Flags().IntP("level", "l", 0, "Reset a single level")
	resetCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}
