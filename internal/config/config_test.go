package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/plan"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.HorizonMonths != 36 {
		t.Errorf("HorizonMonths = %d, want 36", cfg.General.HorizonMonths)
	}
	if cfg.Defaults.FundingAmount != 1_000_000 {
		t.Errorf("FundingAmount = %v, want 1000000", cfg.Defaults.FundingAmount)
	}
	if Exists() {
		t.Error("Exists = true with no config file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.HorizonMonths = 48
	cfg.Defaults.MRRGrowthPct = 7
	cfg.Defaults.Location = string(catalog.LocNYC)

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.General.HorizonMonths != 48 {
		t.Errorf("HorizonMonths = %d, want 48", loaded.General.HorizonMonths)
	}
	if loaded.Defaults.MRRGrowthPct != 7 {
		t.Errorf("MRRGrowthPct = %v, want 7", loaded.Defaults.MRRGrowthPct)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	path := filepath.Join(dir, "headway", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Fatal("Load of malformed config succeeded")
	}
}

func TestDefaultScenarioConvertsPercents(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults.MRRGrowthPct = 5
	cfg.Defaults.OtherCostsGrowthPct = -2

	s := DefaultScenario(cfg)
	if s.MRRGrowthRate != 0.05 {
		t.Errorf("MRRGrowthRate = %v, want 0.05", s.MRRGrowthRate)
	}
	if s.OtherCostsGrowthRate != -0.02 {
		t.Errorf("OtherCostsGrowthRate = %v, want -0.02", s.OtherCostsGrowthRate)
	}
}

func TestDefaultScenarioSanitizesEnums(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults.Location = "MARS"
	cfg.Defaults.RateTier = "platinum"

	s := DefaultScenario(cfg)
	if s.DefaultLocation != catalog.LocSF {
		t.Errorf("DefaultLocation = %v, want SF fallback", s.DefaultLocation)
	}
	if s.DefaultRateTier != plan.TierDefault {
		t.Errorf("DefaultRateTier = %v, want default fallback", s.DefaultRateTier)
	}
}

func TestDataDirOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/custom"
	if got := StatePath(cfg); got != "/tmp/custom/state.db" {
		t.Fatalf("StatePath = %q", got)
	}
}
