package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if purpose != "" {
			// Purpose is filtered here, so the limit applies afterwards.
			opts.Limit = 0
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query LLM events: %w", err)
		}

		t := newTable("ID", "TIME", "PURPOSE", "MODEL", "IN", "OUT", "MS", "OK")
		shown := 0
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			if limit > 0 && shown == limit {
				break
			}
			shown++
			t.Row(strconv.Itoa(e.ID), e.Timestamp.Local().Format("01-02 15:04:05"), e.Purpose,
				truncate(e.Model, 32), strconv.Itoa(e.InputTokens), strconv.Itoa(e.OutputTokens),
				strconv.FormatInt(e.LatencyMs, 10), mark(e.Success))
		}
		if shown == 0 {
			fmt.Println("No LLM calls recorded.")
			return nil
		}
		fmt.Println(t)
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and response of one LLM call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get LLM event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("LLM event %d not found", id)
		}

		fmt.Printf("Time      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider  %s (%s)\n", e.Provider, e.Model)
		fmt.Printf("Purpose   %s\n", e.Purpose)
		fmt.Printf("Tokens    %d in, %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Printf("Latency   %dms\n", e.LatencyMs)
		fmt.Printf("Result    %s\n", mark(e.Success))
		if e.ErrorMessage != "" {
			fmt.Printf("Error     %s\n", e.ErrorMessage)
		}

		printBlock("Request", e.RequestBody)
		printBlock("Response", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		if len(byPurpose) == 0 {
			fmt.Println("No LLM usage recorded.")
			return nil
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		purposes := newTable("PURPOSE", "CALLS", "IN", "OUT", "AVG MS")
		for _, u := range byPurpose {
			purposes.Row(u.Purpose, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		}
		fmt.Println(purposes)

		var total float64
		var unpriced []string
		models := newTable("MODEL", "CALLS", "IN", "OUT", "COST")
		for _, u := range byModel {
			cost := "?"
			if price, ok := llm.LookupCost(u.Model); ok {
				usd := price.Cost(u.InputTokens, u.OutputTokens)
				total += usd
				cost = formatCost(usd)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			models.Row(truncate(u.Model, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens),
				strconv.Itoa(u.OutputTokens), cost)
		}
		fmt.Println(models)

		if len(unpriced) > 0 {
			fmt.Printf("\nEstimated total %s, excluding %s\n", formatCost(total), strings.Join(unpriced, ", "))
		} else {
			fmt.Printf("\nEstimated total %s\n", formatCost(total))
		}
		return nil
	},
}

// newTable is the borderless table used by the llm subcommands.
func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderHeader(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Bold(true)
			}
			return s
		}).
		Headers(headers...)
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func printBlock(title, body string) {
	fmt.Printf("\n── %s %s\n", title, strings.Repeat("─", 56-len(title)))
	if strings.TrimSpace(body) == "" {
		fmt.Println("(empty)")
		return
	}
	fmt.Println(strings.TrimRight(body, "\n"))
}

func formatCost(usd float64) string {
	if usd > 0 && usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose, e.g. feedback")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
