package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	fmt.Printf("# %s", config.ConfigPath())
	if !config.Exists() {
		fmt.Print(" (not written yet, showing defaults)")
	}
	fmt.Println()

	enc := toml.NewEncoder(cmd.OutOrStdout())
	return enc.Encode(cfg)
}
