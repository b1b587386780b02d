package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/cli"
)

func runSummary(_ *cobra.Command, _ []string) error {
	snap, cfg := scanOnce()
	includeCache := cfg.Display.IncludeCacheTokens

	fmt.Println()
	fmt.Println(cli.RenderTitle("CLAUDE CODE USAGE"))
	fmt.Println()

	today := snap.Today
	fmt.Println(cli.RenderStat("Today", fmt.Sprintf("%s  %s tokens  %d messages  %d sessions",
		cli.RenderCost(cli.FormatCost(today.Cost)),
		cli.RenderTokens(cli.FormatTokens(today.Tokens.Display(includeCache))),
		today.Messages,
		today.Sessions,
	)))
	fmt.Println(cli.RenderStat("All time", fmt.Sprintf("%s  %s tokens  %d messages  %d sessions",
		cli.RenderCost(cli.FormatCost(snap.Totals.Cost)),
		cli.RenderTokens(cli.FormatTokens(snap.Totals.Tokens.Display(includeCache))),
		snap.Totals.Messages,
		snap.Totals.Sessions,
	)))
	fmt.Println()

	fmt.Println(cli.RenderMuted("  Last 7 days"))
	fmt.Print(cli.RenderCostBar(snap.Last7Days, 30))
	fmt.Println()

	if len(snap.Models) > 0 {
		rows := make([][]string, 0, len(snap.Models))
		for _, m := range snap.Models {
			rows = append(rows, []string{
				m.DisplayName,
				cli.FormatTokens(m.Tokens.Display(includeCache)),
				cli.FormatNumber(int64(m.Messages)),
				cli.FormatCost(m.Cost),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Headers: []string{"Model", "Tokens", "Messages", "Cost"},
			Rows:    rows,
		}))
	}

	fmt.Println(cli.RenderMuted("  Updated " + cli.FormatAgo(snap.UpdatedAt, time.Now())))
	return nil
}
