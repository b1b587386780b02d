// Package cmd implements the barcc command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rub1cc/barcc/internal/config"
	"github.com/rub1cc/barcc/internal/model"
	"github.com/rub1cc/barcc/internal/pipeline"
	"github.com/rub1cc/barcc/internal/store"
)

var (
	flagDir       string
	flagQuiet     bool
	flagNoHistory bool
)

var rootCmd = &cobra.Command{
	Use:   "barcc",
	Short: "Claude Code usage and cost tracker",
	Long:  "Aggregate Claude Code session logs into daily, model, and total cost figures.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "", "Log root directory (default ~/.claude/projects)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Skip recording to the history ledger")
}

// loadConfig resolves config plus the --dir override.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Config problem, using defaults: %v\n", err)
	}
	if flagDir != "" {
		cfg.General.LogDir = flagDir
	}
	return cfg
}

// scanOnce is the shared data path for one-shot commands: build the
// engine, run a single scan, and record the result to the ledger.
func scanOnce() (*model.Snapshot, config.Config) {
	cfg := loadConfig()

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Scanning %s...\n", cfg.LogDir())
	}

	engine := pipeline.NewEngine(cfg.LogDir(), cfg.Table())
	snap := engine.Scan()

	if !flagQuiet && snap.FileErrors+snap.LineErrors > 0 {
		fmt.Fprintf(os.Stderr, "  Skipped %d unreadable files, %d unusable lines\n",
			snap.FileErrors, snap.LineErrors)
	}

	recordHistory(cfg, snap)
	return snap, cfg
}

// recordHistory upserts the snapshot into the spend ledger. Failures are
// reported but never fatal; the ledger is an accessory.
func recordHistory(cfg config.Config, snap *model.Snapshot) {
	if flagNoHistory || !cfg.History.Enabled {
		return
	}

	h, err := store.Open(cfg.HistoryPath())
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  History ledger unavailable: %v\n", err)
		}
		return
	}
	defer func() { _ = h.Close() }()

	if err := h.RecordSnapshot(snap); err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "  History write failed: %v\n", err)
	}
}
