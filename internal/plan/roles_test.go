package plan

import (
	"testing"

	"github.com/headwayhq/headway/internal/catalog"
)

func TestAddRoleUsesDefaults(t *testing.T) {
	s := Scenario{DefaultLocation: catalog.LocNYC, DefaultRateTier: TierMax}
	r := s.AddRole(catalog.EngStaff, "2026-04")
	if r == nil {
		t.Fatal("AddRole returned nil")
	}
	if r.ID == "" {
		t.Error("placed role has empty id")
	}
	if r.Location != catalog.LocNYC {
		t.Errorf("Location = %v, want NYC", r.Location)
	}
	if r.Selection != SalaryMax {
		t.Errorf("Selection = %v, want max", r.Selection)
	}
	band, _ := catalog.SalaryBand(catalog.EngStaff, catalog.LocNYC)
	if r.Salary != band.Max {
		t.Errorf("Salary = %v, want %v", r.Salary, band.Max)
	}

	if s.AddRole("CEO", "2026-04") != nil {
		t.Error("AddRole with unknown role key succeeded")
	}
}

func TestSetRoleLocationReresolvesSalary(t *testing.T) {
	s := Scenario{DefaultLocation: catalog.LocSF, DefaultRateTier: TierMin}
	r := s.AddRole(catalog.EngSenior, "2026-04")

	if !s.SetRoleLocation(r.ID, catalog.LocOffshore) {
		t.Fatal("SetRoleLocation failed")
	}
	band, _ := catalog.SalaryBand(catalog.EngSenior, catalog.LocOffshore)
	got := s.FindRole(r.ID)
	if got.Salary != band.Min {
		t.Errorf("Salary = %v, want min band %v (tier preserved)", got.Salary, band.Min)
	}
	if got.Selection != SalaryMin {
		t.Errorf("Selection = %v, want min", got.Selection)
	}
}

func TestSetRoleLocationLeavesCustomSalaryAlone(t *testing.T) {
	s := Scenario{DefaultLocation: catalog.LocSF, DefaultRateTier: TierDefault}
	r := s.AddRole(catalog.EngSenior, "2026-04")
	s.SetRoleSalary(r.ID, 199_999)

	s.SetRoleLocation(r.ID, catalog.LocRemoteUS)
	got := s.FindRole(r.ID)
	if got.Salary != 199_999 {
		t.Errorf("custom salary changed to %v on location edit", got.Salary)
	}
	if got.Selection != SalaryCustom {
		t.Errorf("Selection = %v, want custom", got.Selection)
	}
	if got.Location != catalog.LocRemoteUS {
		t.Errorf("Location = %v, want REMOTE_US", got.Location)
	}
}

func TestSetRoleTierClearsCustom(t *testing.T) {
	s := Scenario{DefaultLocation: catalog.LocSF, DefaultRateTier: TierDefault}
	r := s.AddRole(catalog.DesignLead, "2026-05")
	s.SetRoleSalary(r.ID, 5)

	if !s.SetRoleTier(r.ID, TierMax) {
		t.Fatal("SetRoleTier failed")
	}
	band, _ := catalog.SalaryBand(catalog.DesignLead, catalog.LocSF)
	got := s.FindRole(r.ID)
	if got.Salary != band.Max {
		t.Errorf("Salary = %v, want %v", got.Salary, band.Max)
	}
	if got.Selection != SalaryMax {
		t.Errorf("Selection = %v, want max", got.Selection)
	}
}

func TestDuplicateRoleNewID(t *testing.T) {
	s := Scenario{DefaultLocation: catalog.LocSF, DefaultRateTier: TierDefault}
	r := s.AddRole(catalog.SalesSDR, "2026-02")
	dup := s.DuplicateRole(r.ID)
	if dup == nil {
		t.Fatal("DuplicateRole returned nil")
	}
	if dup.ID == r.ID {
		t.Error("duplicate shares id with source")
	}
	if dup.Salary != r.Salary || dup.StartMonth != r.StartMonth {
		t.Error("duplicate did not copy source fields")
	}
	if len(s.PlacedRoles) != 2 {
		t.Fatalf("role count = %d, want 2", len(s.PlacedRoles))
	}
}

func TestRemoveAndMoveRole(t *testing.T) {
	s := Scenario{DefaultLocation: catalog.LocSF, DefaultRateTier: TierDefault}
	r := s.AddRole(catalog.OpsFinance, "2026-02")

	if !s.MoveRole(r.ID, "2026-09") {
		t.Fatal("MoveRole failed")
	}
	if s.FindRole(r.ID).StartMonth != "2026-09" {
		t.Error("MoveRole did not update start month")
	}

	if !s.RemoveRole(r.ID) {
		t.Fatal("RemoveRole failed")
	}
	if len(s.PlacedRoles) != 0 {
		t.Fatal("role not removed")
	}
	if s.RemoveRole(r.ID) {
		t.Fatal("RemoveRole of missing id succeeded")
	}
}
