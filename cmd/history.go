package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/cli"
	"github.com/rub1cc/barcc/internal/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Spend ledger, including days whose logs have rotated away",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 90, "Days to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	// Refresh the ledger from the current log tree first.
	_, cfg := scanOnce()

	h, err := store.Open(cfg.HistoryPath())
	if err != nil {
		return fmt.Errorf("opening history ledger: %w", err)
	}
	defer func() { _ = h.Close() }()

	days, err := h.Days(flagHistoryLimit)
	if err != nil {
		return fmt.Errorf("reading history ledger: %w", err)
	}
	if len(days) == 0 {
		fmt.Println("\n  No history recorded yet.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("SPEND HISTORY"))
	fmt.Println()

	var totalCost float64
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		totalCost += d.Cost
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatNumber(int64(d.Messages)),
			cli.FormatTokens(d.Tokens.Display(cfg.Display.IncludeCacheTokens)),
			cli.FormatCost(d.Cost),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Messages", "Tokens", "Cost"},
		Rows:    rows,
	}))
	fmt.Println(cli.RenderStat("Total", cli.RenderCost(cli.FormatCost(totalCost))))
	return nil
}
