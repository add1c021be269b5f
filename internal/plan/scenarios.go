package plan

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/headwayhq/headway/internal/catalog"
)

// Active returns a pointer to the active scenario, or nil for an empty state.
func (st *State) Active() *Scenario {
	if st.ActiveIndex < 0 || st.ActiveIndex >= len(st.Scenarios) {
		return nil
	}
	return &st.Scenarios[st.ActiveIndex]
}

// CanAdd reports whether another scenario may be added.
func (st *State) CanAdd() bool {
	return len(st.Scenarios) < MaxScenarios
}

// Add duplicates the active scenario, strips its name, regenerates role ids,
// appends it, and makes it active. A no-op at the scenario cap.
func (st *State) Add() bool {
	if len(st.Scenarios) >= MaxScenarios {
		return false
	}

	source := st.Active()
	if source == nil {
		source = &st.Scenarios[0]
	}

	dup := source.Clone()
	dup.Name = ""
	for i := range dup.PlacedRoles {
		dup.PlacedRoles[i].ID = uuid.NewString()
	}

	st.Scenarios = append(st.Scenarios, dup)
	st.ActiveIndex = len(st.Scenarios) - 1
	return true
}

// Switch repoints the active index. Out-of-bounds indexes are ignored.
func (st *State) Switch(index int) {
	if index >= 0 && index < len(st.Scenarios) {
		st.ActiveIndex = index
	}
}

// Delete removes the scenario at index, re-clamping the active index so it
// keeps pointing at a valid neighbor. Refuses to delete the last scenario.
func (st *State) Delete(index int) bool {
	if len(st.Scenarios) <= 1 {
		return false
	}
	if index < 0 || index >= len(st.Scenarios) {
		return false
	}

	oldLen := len(st.Scenarios)
	st.Scenarios = append(st.Scenarios[:index], st.Scenarios[index+1:]...)

	if st.ActiveIndex >= index && st.ActiveIndex > 0 {
		st.ActiveIndex--
	} else if st.ActiveIndex >= oldLen-1 {
		st.ActiveIndex = oldLen - 2
	}
	return true
}

// Rename sets the scenario's display name. An empty name clears it so the
// positional default label applies at render time.
func (st *State) Rename(index int, name string) {
	if index < 0 || index >= len(st.Scenarios) {
		return
	}
	st.Scenarios[index].Name = name
}

// Label returns the display name for the scenario at index, falling back to
// a positional "Scenario N" default.
func (st *State) Label(index int) string {
	if index < 0 || index >= len(st.Scenarios) {
		return ""
	}
	if name := st.Scenarios[index].Name; name != "" {
		return name
	}
	return fmt.Sprintf("Scenario %d", index+1)
}

// ScenarioUpdate is a partial-field merge applied to the active scenario.
// Nil fields are left untouched.
type ScenarioUpdate struct {
	FundingAmount        *float64
	MRR                  *float64
	MRRGrowthRate        *float64
	OtherCosts           *float64
	OtherCostsGrowthRate *float64
	DefaultLocation      *catalog.LocationKey
	DefaultRateTier      *RateTier
}

// UpdateActive merges non-nil fields of u into the active scenario.
func (st *State) UpdateActive(u ScenarioUpdate) {
	s := st.Active()
	if s == nil {
		return
	}
	if u.FundingAmount != nil {
		s.FundingAmount = *u.FundingAmount
	}
	if u.MRR != nil {
		s.MRR = *u.MRR
	}
	if u.MRRGrowthRate != nil {
		s.MRRGrowthRate = *u.MRRGrowthRate
	}
	if u.OtherCosts != nil {
		s.OtherCosts = *u.OtherCosts
	}
	if u.OtherCostsGrowthRate != nil {
		s.OtherCostsGrowthRate = *u.OtherCostsGrowthRate
	}
	if u.DefaultLocation != nil {
		s.DefaultLocation = *u.DefaultLocation
	}
	if u.DefaultRateTier != nil {
		s.DefaultRateTier = *u.DefaultRateTier
	}
}
