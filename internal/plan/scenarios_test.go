package plan

import (
	"testing"

	"github.com/headwayhq/headway/internal/catalog"
)

func testScenario(name string) Scenario {
	s := Scenario{
		Name:            name,
		FundingAmount:   1_000_000,
		MRR:             20_000,
		MRRGrowthRate:   0.05,
		OtherCosts:      15_000,
		DefaultLocation: catalog.LocSF,
		DefaultRateTier: TierDefault,
	}
	s.AddRole(catalog.EngSenior, "2026-03")
	return s
}

func testState(n int) *State {
	st := &State{}
	for i := 0; i < n; i++ {
		st.Scenarios = append(st.Scenarios, testScenario(""))
	}
	return st
}

func TestAddDuplicatesActiveScenario(t *testing.T) {
	st := &State{Scenarios: []Scenario{testScenario("baseline")}}

	if !st.Add() {
		t.Fatal("Add failed with one scenario")
	}
	if len(st.Scenarios) != 2 {
		t.Fatalf("scenario count = %d, want 2", len(st.Scenarios))
	}
	if st.ActiveIndex != 1 {
		t.Fatalf("ActiveIndex = %d, want 1", st.ActiveIndex)
	}

	dup := st.Scenarios[1]
	if dup.Name != "" {
		t.Errorf("duplicated scenario kept name %q, want stripped", dup.Name)
	}
	if dup.FundingAmount != 1_000_000 || dup.MRR != 20_000 {
		t.Error("duplicated scenario lost assumption values")
	}
	if len(dup.PlacedRoles) != 1 {
		t.Fatalf("duplicated scenario has %d roles, want 1", len(dup.PlacedRoles))
	}
	if dup.PlacedRoles[0].ID == st.Scenarios[0].PlacedRoles[0].ID {
		t.Error("duplicated role reused the source role id")
	}
}

func TestAddBlockedAtMax(t *testing.T) {
	st := testState(MaxScenarios)
	if st.CanAdd() {
		t.Error("CanAdd = true at max")
	}
	if st.Add() {
		t.Error("Add succeeded at max")
	}
	if len(st.Scenarios) != MaxScenarios {
		t.Fatalf("scenario count = %d, want %d", len(st.Scenarios), MaxScenarios)
	}
}

func TestAddDoesNotShareRoleSlice(t *testing.T) {
	st := &State{Scenarios: []Scenario{testScenario("")}}
	st.Add()

	st.Scenarios[1].AddRole(catalog.SalesAE, "2026-06")
	if len(st.Scenarios[0].PlacedRoles) != 1 {
		t.Fatal("adding a role to the duplicate mutated the source scenario")
	}
}

func TestSwitchBoundsChecked(t *testing.T) {
	st := testState(3)
	st.Switch(2)
	if st.ActiveIndex != 2 {
		t.Fatalf("ActiveIndex = %d, want 2", st.ActiveIndex)
	}
	st.Switch(5)
	st.Switch(-1)
	if st.ActiveIndex != 2 {
		t.Fatalf("out-of-bounds Switch moved ActiveIndex to %d", st.ActiveIndex)
	}
}

func TestDeleteReindexesActive(t *testing.T) {
	st := testState(3)
	st.Scenarios[2].Name = "third"
	st.ActiveIndex = 2

	if !st.Delete(0) {
		t.Fatal("Delete(0) failed")
	}
	if len(st.Scenarios) != 2 {
		t.Fatalf("scenario count = %d, want 2", len(st.Scenarios))
	}
	if st.ActiveIndex != 1 {
		t.Fatalf("ActiveIndex = %d, want 1", st.ActiveIndex)
	}
	if st.Scenarios[1].Name != "third" {
		t.Error("scenarios[1] is not the scenario previously at index 2")
	}
}

func TestDeleteActiveAtEnd(t *testing.T) {
	st := testState(3)
	st.ActiveIndex = 2

	st.Delete(2)
	if st.ActiveIndex != 1 {
		t.Fatalf("ActiveIndex = %d, want 1", st.ActiveIndex)
	}
}

func TestDeleteRefusesLastScenario(t *testing.T) {
	st := testState(1)
	if st.Delete(0) {
		t.Fatal("Delete removed the only scenario")
	}
	if len(st.Scenarios) != 1 {
		t.Fatal("scenario list shrank below one")
	}
}

func TestDeleteOutOfRangeIsNoOp(t *testing.T) {
	st := testState(2)
	if st.Delete(7) {
		t.Fatal("Delete(7) succeeded")
	}
	if len(st.Scenarios) != 2 {
		t.Fatal("out-of-range delete changed the list")
	}
}

func TestRenameAndLabel(t *testing.T) {
	st := testState(2)
	st.Rename(1, "aggressive hiring")
	if got := st.Label(1); got != "aggressive hiring" {
		t.Fatalf("Label(1) = %q", got)
	}
	st.Rename(1, "")
	if got := st.Label(1); got != "Scenario 2" {
		t.Fatalf("Label(1) after clearing = %q, want Scenario 2", got)
	}
	if got := st.Label(0); got != "Scenario 1" {
		t.Fatalf("Label(0) = %q, want Scenario 1", got)
	}
}

func TestUpdateActivePartialMerge(t *testing.T) {
	st := testState(2)
	st.ActiveIndex = 1

	funding := 2_500_000.0
	tier := TierMax
	st.UpdateActive(ScenarioUpdate{FundingAmount: &funding, DefaultRateTier: &tier})

	if st.Scenarios[1].FundingAmount != 2_500_000 {
		t.Errorf("FundingAmount = %v, want 2500000", st.Scenarios[1].FundingAmount)
	}
	if st.Scenarios[1].DefaultRateTier != TierMax {
		t.Errorf("DefaultRateTier = %v, want max", st.Scenarios[1].DefaultRateTier)
	}
	if st.Scenarios[1].MRR != 20_000 {
		t.Errorf("MRR changed to %v, want untouched 20000", st.Scenarios[1].MRR)
	}
	if st.Scenarios[0].FundingAmount != 1_000_000 {
		t.Error("UpdateActive touched a non-active scenario")
	}
}
