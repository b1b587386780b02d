// Package config loads and saves the barcc configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rub1cc/barcc/internal/pricing"
	"github.com/rub1cc/barcc/internal/source"
)

// Config holds all barcc configuration.
type Config struct {
	General GeneralConfig    `toml:"general"`
	Display DisplayConfig    `toml:"display"`
	History HistoryConfig    `toml:"history"`
	Pricing PricingOverrides `toml:"pricing"`
}

// GeneralConfig holds scan preferences.
type GeneralConfig struct {
	LogDir           string `toml:"log_dir,omitempty"`
	PollIntervalSecs int    `toml:"poll_interval_secs"`
}

// DisplayConfig holds presentation preferences. These affect derived
// display values only, never the stored raw counts or cost computation.
type DisplayConfig struct {
	IncludeCacheTokens bool `toml:"include_cache_tokens"`
}

// HistoryConfig controls the optional SQLite spend ledger.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// PricingOverrides allows user-defined schedules for specific models.
type PricingOverrides struct {
	Overrides map[string]ScheduleOverride `toml:"overrides,omitempty"`
}

// ScheduleOverride holds per-model rate overrides. Unset fields keep the
// built-in rate; the long-context block replaces the built-in tier as a
// whole when any of its fields is set.
type ScheduleOverride struct {
	InputPerMTok      *float64 `toml:"input_per_mtok,omitempty"`
	OutputPerMTok     *float64 `toml:"output_per_mtok,omitempty"`
	CacheReadPerMTok  *float64 `toml:"cache_read_per_mtok,omitempty"`
	CacheWritePerMTok *float64 `toml:"cache_write_per_mtok,omitempty"`

	LongInputPerMTok      *float64 `toml:"long_input_per_mtok,omitempty"`
	LongOutputPerMTok     *float64 `toml:"long_output_per_mtok,omitempty"`
	LongCacheReadPerMTok  *float64 `toml:"long_cache_read_per_mtok,omitempty"`
	LongCacheWritePerMTok *float64 `toml:"long_cache_write_per_mtok,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{PollIntervalSecs: 30},
		History: HistoryConfig{Enabled: true},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "barcc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "barcc")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user's own config location
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// LogDir returns the configured log root, defaulting to the conventional
// per-user path.
func (c Config) LogDir() string {
	if c.General.LogDir != "" {
		return c.General.LogDir
	}
	return source.DefaultRoot()
}

// PollInterval returns the configured interval. The poller enforces its
// own floor on top of this.
func (c Config) PollInterval() time.Duration {
	if c.General.PollIntervalSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.General.PollIntervalSecs) * time.Second
}

// HistoryPath returns the ledger database path, defaulting to the XDG
// cache directory.
func (c Config) HistoryPath() string {
	if c.History.Path != "" {
		return c.History.Path
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "barcc", "history.db")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "barcc", "history.db")
}

// Table builds the pricing table with this config's overrides applied.
func (c Config) Table() *pricing.Table {
	if len(c.Pricing.Overrides) == 0 {
		return pricing.NewTable()
	}

	overrides := make(map[string]pricing.Schedule, len(c.Pricing.Overrides))
	for name, o := range c.Pricing.Overrides {
		base := pricing.NewTable().Lookup(name)
		overrides[name] = o.apply(base)
	}
	return pricing.NewTableWith(overrides)
}

func (o ScheduleOverride) apply(base pricing.Schedule) pricing.Schedule {
	s := base
	if o.InputPerMTok != nil {
		s.InputPerMTok = *o.InputPerMTok
	}
	if o.OutputPerMTok != nil {
		s.OutputPerMTok = *o.OutputPerMTok
	}
	if o.CacheReadPerMTok != nil {
		s.CacheReadPerMTok = *o.CacheReadPerMTok
	}
	if o.CacheWritePerMTok != nil {
		s.CacheWritePerMTok = *o.CacheWritePerMTok
	}

	if o.LongInputPerMTok != nil || o.LongOutputPerMTok != nil ||
		o.LongCacheReadPerMTok != nil || o.LongCacheWritePerMTok != nil {
		long := pricing.TierRates{
			InputPerMTok:      s.InputPerMTok,
			OutputPerMTok:     s.OutputPerMTok,
			CacheReadPerMTok:  s.CacheReadPerMTok,
			CacheWritePerMTok: s.CacheWritePerMTok,
		}
		if o.LongInputPerMTok != nil {
			long.InputPerMTok = *o.LongInputPerMTok
		}
		if o.LongOutputPerMTok != nil {
			long.OutputPerMTok = *o.LongOutputPerMTok
		}
		if o.LongCacheReadPerMTok != nil {
			long.CacheReadPerMTok = *o.LongCacheReadPerMTok
		}
		if o.LongCacheWritePerMTok != nil {
			long.CacheWritePerMTok = *o.LongCacheWritePerMTok
		}
		s.LongContext = &long
	}

	return s
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
