package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/cli"
)

var flagDailyAll bool

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Daily usage table",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().BoolVar(&flagDailyAll, "all", false, "Show every recorded day, not just the last 30")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(_ *cobra.Command, _ []string) error {
	snap, cfg := scanOnce()
	includeCache := cfg.Display.IncludeCacheTokens

	days := snap.Days
	if !flagDailyAll && len(days) > 30 {
		days = days[:30]
	}
	if len(days) == 0 {
		fmt.Println("\n  No usage found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("DAILY USAGE"))
	fmt.Println()

	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			d.Date.Format("2006-01-02"),
			cli.FormatDayOfWeek(d.Date.Weekday()),
			cli.FormatNumber(int64(d.Messages)),
			cli.FormatNumber(int64(d.Sessions)),
			cli.FormatTokens(d.Tokens.Display(includeCache)),
			cli.FormatCost(d.Cost),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Messages", "Sessions", "Tokens", "Cost"},
		Rows:    rows,
	}))
	return nil
}
