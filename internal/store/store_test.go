package store

import (
	"path/filepath"
	"testing"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func storedState(t *testing.T) plan.State {
	t.Helper()
	s1 := plan.Scenario{
		Name:                 "baseline",
		FundingAmount:        1_200_000,
		MRR:                  30_000,
		MRRGrowthRate:        0.04,
		OtherCosts:           12_000,
		OtherCostsGrowthRate: 0.01,
		DefaultLocation:      catalog.LocNYC,
		DefaultRateTier:      plan.TierMax,
	}
	s1.AddRole(catalog.EngSenior, "2026-04")
	r := s1.AddRole(catalog.SalesSDR, "2026-07")
	s1.SetRoleSalary(r.ID, 91_000)

	s2 := plan.Scenario{
		FundingAmount:   500_000,
		DefaultLocation: catalog.LocRemoteUS,
		DefaultRateTier: plan.TierMin,
	}

	return plan.State{ActiveIndex: 1, Scenarios: []plan.Scenario{s1, s2}}
}

func TestLoadEmptyStore(t *testing.T) {
	s := openTestStore(t)
	got, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got != nil {
		t.Fatalf("LoadState on empty store = %+v, want nil", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := storedState(t)

	if err := s.SaveState(want); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	got, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if got == nil {
		t.Fatal("LoadState returned nil after save")
	}

	if got.ActiveIndex != 1 {
		t.Errorf("ActiveIndex = %d, want 1", got.ActiveIndex)
	}
	if len(got.Scenarios) != 2 {
		t.Fatalf("scenario count = %d, want 2", len(got.Scenarios))
	}

	g, w := got.Scenarios[0], want.Scenarios[0]
	if g.Name != w.Name || g.FundingAmount != w.FundingAmount ||
		g.MRRGrowthRate != w.MRRGrowthRate || g.DefaultLocation != w.DefaultLocation ||
		g.DefaultRateTier != w.DefaultRateTier {
		t.Errorf("scenario 0 = %+v, want %+v", g, w)
	}
	if len(g.PlacedRoles) != 2 {
		t.Fatalf("scenario 0 role count = %d, want 2", len(g.PlacedRoles))
	}
	for i := range w.PlacedRoles {
		if g.PlacedRoles[i] != w.PlacedRoles[i] {
			t.Errorf("role %d = %+v, want %+v", i, g.PlacedRoles[i], w.PlacedRoles[i])
		}
	}
	// Custom salary persists exactly, ids included.
	if g.PlacedRoles[1].Salary != 91_000 || g.PlacedRoles[1].Selection != plan.SalaryCustom {
		t.Errorf("custom role = %+v", g.PlacedRoles[1])
	}
	if len(got.Scenarios[1].PlacedRoles) != 0 {
		t.Errorf("scenario 1 gained %d roles", len(got.Scenarios[1].PlacedRoles))
	}
}

func TestSaveReplacesPreviousState(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveState(storedState(t)); err != nil {
		t.Fatalf("first SaveState: %v", err)
	}

	replacement := plan.State{Scenarios: []plan.Scenario{{
		Name:            "only",
		FundingAmount:   42,
		DefaultLocation: catalog.LocSF,
		DefaultRateTier: plan.TierDefault,
	}}}
	if err := s.SaveState(replacement); err != nil {
		t.Fatalf("second SaveState: %v", err)
	}

	got, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if len(got.Scenarios) != 1 || got.Scenarios[0].Name != "only" {
		t.Fatalf("state not replaced: %+v", got)
	}
	if got.ActiveIndex != 0 {
		t.Errorf("ActiveIndex = %d, want 0", got.ActiveIndex)
	}
	if s.SavedAt().IsZero() {
		t.Error("SavedAt is zero after save")
	}
}
