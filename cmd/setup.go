package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/config"
	"github.com/rub1cc/barcc/internal/pipeline"
	"github.com/rub1cc/barcc/internal/source"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	logDir := cfg.General.LogDir
	interval := strconv.Itoa(cfg.General.PollIntervalSecs)
	includeCache := cfg.Display.IncludeCacheTokens
	historyOn := cfg.History.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Log directory").
				Description("Where Claude Code writes session logs (blank for ~/.claude/projects)").
				Value(&logDir),
			huh.NewSelect[string]().
				Title("Watch poll interval").
				Description(fmt.Sprintf("How often the live view rescans (floor %s)", pipeline.MinPollInterval)).
				Options(
					huh.NewOption("10 seconds", "10"),
					huh.NewOption("30 seconds", "30"),
					huh.NewOption("1 minute", "60"),
					huh.NewOption("5 minutes", "300"),
				).
				Value(&interval),
			huh.NewConfirm().
				Title("Count cache tokens in token totals?").
				Description("Display only; costs always price every category").
				Value(&includeCache),
			huh.NewConfirm().
				Title("Keep a local spend history ledger?").
				Value(&historyOn),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("setup aborted: %w", err)
	}

	cfg.General.LogDir = logDir
	cfg.General.PollIntervalSecs, _ = strconv.Atoi(interval)
	cfg.Display.IncludeCacheTokens = includeCache
	cfg.History.Enabled = historyOn

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	files := source.Discover(source.OSFS, cfg.LogDir())
	fmt.Printf("\n  Saved to %s\n", config.ConfigPath())
	fmt.Printf("  Found %d log files in %s\n", len(files), cfg.LogDir())
	fmt.Println("  Run `barcc setup` anytime to reconfigure.")
	return nil
}
