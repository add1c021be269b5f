// Package config loads and saves headway configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/plan"
)

// Config holds all headway configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Defaults   DefaultsConfig   `toml:"defaults"`
	Appearance AppearanceConfig `toml:"appearance"`
	Serve      ServeConfig      `toml:"serve"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	HorizonMonths int    `toml:"horizon_months"`
	DataDir       string `toml:"data_dir,omitempty"`
}

// DefaultsConfig seeds new scenarios. Growth rates are whole percents here
// because that is the unit users edit in.
type DefaultsConfig struct {
	FundingAmount       float64 `toml:"funding_amount"`
	MRR                 float64 `toml:"mrr"`
	MRRGrowthPct        float64 `toml:"mrr_growth_pct"`
	OtherCosts          float64 `toml:"other_costs"`
	OtherCostsGrowthPct float64 `toml:"other_costs_growth_pct"`
	Location            string  `toml:"location"`
	RateTier            string  `toml:"rate_tier"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServeConfig holds the local API settings.
type ServeConfig struct {
	Addr string `toml:"addr,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			HorizonMonths: 36,
		},
		Defaults: DefaultsConfig{
			FundingAmount: 1_000_000,
			Location:      string(catalog.LocSF),
			RateTier:      string(plan.TierDefault),
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "headway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "headway")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the directory holding the state database, honoring the
// config override and XDG_DATA_HOME.
func DataDir(cfg Config) string {
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "headway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "headway")
}

// StatePath returns the full path to the state database.
func StatePath(cfg Config) string {
	return filepath.Join(DataDir(cfg), "state.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
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
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// DefaultScenario builds a fresh scenario from the configured defaults.
func DefaultScenario(cfg Config) plan.Scenario {
	loc := catalog.LocationKey(cfg.Defaults.Location)
	if !catalog.ValidLocation(loc) {
		loc = catalog.LocSF
	}
	tier := plan.RateTier(cfg.Defaults.RateTier)
	switch tier {
	case plan.TierMin, plan.TierDefault, plan.TierMax:
	default:
		tier = plan.TierDefault
	}

	return plan.Scenario{
		FundingAmount:        cfg.Defaults.FundingAmount,
		MRR:                  cfg.Defaults.MRR,
		MRRGrowthRate:        cfg.Defaults.MRRGrowthPct / 100,
		OtherCosts:           cfg.Defaults.OtherCosts,
		OtherCostsGrowthRate: cfg.Defaults.OtherCostsGrowthPct / 100,
		DefaultLocation:      loc,
		DefaultRateTier:      tier,
	}
}

// DefaultState builds the initial single-scenario state.
func DefaultState(cfg Config) plan.State {
	return plan.State{Scenarios: []plan.Scenario{DefaultScenario(cfg)}}
}
