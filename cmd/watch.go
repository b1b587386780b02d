package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/pipeline"
	"github.com/rub1cc/barcc/internal/tui"
)

var flagWatchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live usage dashboard",
	Long:  "Continuously rescan the log tree and show a live dashboard. Rescans on a timer and on filesystem changes; the change detector skips passes where nothing moved.",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&flagWatchInterval, "interval", 0, "Poll interval (overrides config; floor "+pipeline.MinPollInterval.String()+")")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	interval := cfg.PollInterval()
	if flagWatchInterval > 0 {
		interval = flagWatchInterval
	}

	engine := pipeline.NewEngine(cfg.LogDir(), cfg.Table())
	poller := pipeline.NewPoller(engine, interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go poller.Run(ctx)
	go func() {
		// Filesystem events just wake the poller early; polling still
		// covers us if the watch cannot be established.
		_ = pipeline.Watch(ctx, cfg.LogDir(), poller.Request)
	}()

	app := tui.NewApp(poller, cfg.Display.IncludeCacheTokens)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("watch view: %w", err)
	}

	// Record whatever the poller last built before exiting.
	if snap := engine.Snapshot(); snap != nil {
		recordHistory(cfg, snap)
	}
	return nil
}
