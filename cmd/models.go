package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/cli"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Per-model usage table",
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(_ *cobra.Command, _ []string) error {
	snap, cfg := scanOnce()
	includeCache := cfg.Display.IncludeCacheTokens

	if len(snap.Models) == 0 {
		fmt.Println("\n  No usage found.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("MODEL BREAKDOWN"))
	fmt.Println()

	rows := make([][]string, 0, len(snap.Models))
	for _, m := range snap.Models {
		rows = append(rows, []string{
			m.Model,
			m.DisplayName,
			cli.FormatTokens(m.Tokens.Input),
			cli.FormatTokens(m.Tokens.Output),
			cli.FormatTokens(m.Tokens.CacheCreation + m.Tokens.CacheRead),
			cli.FormatTokens(m.Tokens.Display(includeCache)),
			cli.FormatCost(m.Cost),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Model", "Label", "Input", "Output", "Cache", "Tokens", "Cost"},
		Rows:    rows,
	}))
	return nil
}
