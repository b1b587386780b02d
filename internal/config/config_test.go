package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rub1cc/barcc/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.General.PollIntervalSecs != 30 {
		t.Errorf("PollIntervalSecs = %d, want 30", cfg.General.PollIntervalSecs)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true by default")
	}
	if cfg.Display.IncludeCacheTokens {
		t.Error("IncludeCacheTokens = true, want false by default")
	}
}

func TestLoadFrom_ParsesFile(t *testing.T) {
	path := writeConfig(t, `
[general]
log_dir = "/var/log/claude"
poll_interval_secs = 60

[display]
include_cache_tokens = true

[history]
enabled = false
path = "/tmp/ledger.db"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.LogDir() != "/var/log/claude" {
		t.Errorf("LogDir = %q", cfg.LogDir())
	}
	if cfg.PollInterval() != 60*time.Second {
		t.Errorf("PollInterval = %v, want 60s", cfg.PollInterval())
	}
	if !cfg.Display.IncludeCacheTokens {
		t.Error("IncludeCacheTokens not parsed")
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled not parsed")
	}
	if cfg.HistoryPath() != "/tmp/ledger.db" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath())
	}
}

func TestLoadFrom_MalformedFile(t *testing.T) {
	path := writeConfig(t, "not [valid toml")
	if _, err := LoadFrom(path); err == nil {
		t.Error("malformed config loaded without error")
	}
}

func TestPollInterval_Defaults(t *testing.T) {
	var cfg Config
	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("zero interval = %v, want 30s fallback", cfg.PollInterval())
	}
	cfg.General.PollIntervalSecs = -5
	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("negative interval = %v, want 30s fallback", cfg.PollInterval())
	}
}

func TestTable_Overrides(t *testing.T) {
	path := writeConfig(t, `
[pricing.overrides."claude-sonnet-4-5-20250929"]
input_per_mtok = 1.0

[pricing.overrides."custom-model"]
input_per_mtok = 2.0
output_per_mtok = 10.0
long_input_per_mtok = 4.0
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	table := cfg.Table()

	// Overridden field replaces the built-in rate; untouched fields keep
	// theirs. Counts stay below the threshold so the built-in long-context
	// tier does not kick in.
	got := table.CostOf("claude-sonnet-4-5-20250929", model.TokenCounts{Input: 100_000})
	if math.Abs(got-0.10) > 1e-9 {
		t.Errorf("overridden input 100K = %v, want 0.10", got)
	}
	got = table.CostOf("claude-sonnet-4-5-20250929", model.TokenCounts{Output: 100_000})
	if math.Abs(got-1.50) > 1e-9 {
		t.Errorf("untouched output 100K = %v, want 1.50", got)
	}

	// The custom model picks up a long-context tier from the override.
	got = table.CostOf("custom-model", model.TokenCounts{Input: 300_000})
	want := 200_000/1e6*2.0 + 100_000/1e6*4.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("custom tiered input = %v, want %v", got, want)
	}

	// Models without overrides are unaffected.
	got = table.CostOf("claude-opus-4-20250514", model.TokenCounts{Input: 1_000_000})
	if math.Abs(got-15.0) > 1e-9 {
		t.Errorf("opus input 1M = %v, want 15.00", got)
	}
}

func TestTable_NoOverrides(t *testing.T) {
	var cfg Config
	got := cfg.Table().CostOf("claude-haiku-4-5-20251001", model.TokenCounts{Input: 1_000_000})
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("haiku input 1M = %v, want 1.00", got)
	}
}

func TestHistoryPath_XDGCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	var cfg Config
	want := filepath.Join("/tmp/xdg-cache", "barcc", "history.db")
	if got := cfg.HistoryPath(); got != want {
		t.Errorf("HistoryPath = %q, want %q", got, want)
	}
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	want := filepath.Join("/tmp/xdg-config", "barcc")
	if got := ConfigDir(); got != want {
		t.Errorf("ConfigDir = %q, want %q", got, want)
	}
}
