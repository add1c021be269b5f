// Package plan defines planner scenario state and its bookkeeping rules.
package plan

import "github.com/headwayhq/headway/internal/catalog"

// MaxScenarios bounds the scenario list length.
const MaxScenarios = 5

// SalarySelection identifies which point of a salary band a placed role uses.
// Custom means the salary was hand-edited and must not be silently
// recalculated from the band.
type SalarySelection string

// Salary selections.
const (
	SalaryMin     SalarySelection = "min"
	SalaryDefault SalarySelection = "default"
	SalaryMax     SalarySelection = "max"
	SalaryCustom  SalarySelection = "custom"
)

// RateTier is the default band point applied to newly placed roles.
// Unlike SalarySelection it has no custom value.
type RateTier string

// Rate tiers.
const (
	TierMin     RateTier = "min"
	TierDefault RateTier = "default"
	TierMax     RateTier = "max"
)

// Selection converts a rate tier to the equivalent salary selection.
func (t RateTier) Selection() SalarySelection {
	switch t {
	case TierMin:
		return SalaryMin
	case TierMax:
		return SalaryMax
	default:
		return SalaryDefault
	}
}

// PlacedRole is one hire scheduled on the timeline. Its cost accrues from
// StartMonth (inclusive) indefinitely.
type PlacedRole struct {
	ID         string
	Role       catalog.RoleKey
	StartMonth string
	Location   catalog.LocationKey
	Salary     float64
	Selection  SalarySelection
}

// Scenario is one complete, independently editable what-if plan.
type Scenario struct {
	Name                 string
	FundingAmount        float64
	MRR                  float64
	MRRGrowthRate        float64
	OtherCosts           float64
	OtherCostsGrowthRate float64
	DefaultLocation      catalog.LocationKey
	DefaultRateTier      RateTier
	PlacedRoles          []PlacedRole
}

// State is the full planner state: an ordered scenario list plus the index
// of the scenario currently being edited.
type State struct {
	ActiveIndex int
	Scenarios   []Scenario
}

// BandAmount resolves a salary selection against a band. Custom has no band
// point of its own and resolves to the mid-market amount.
func BandAmount(b catalog.Band, sel SalarySelection) float64 {
	switch sel {
	case SalaryMin:
		return b.Min
	case SalaryMax:
		return b.Max
	default:
		return b.Default
	}
}

// Clone returns a deep copy of the scenario, placed-role ids included.
func (s Scenario) Clone() Scenario {
	out := s
	out.PlacedRoles = make([]PlacedRole, len(s.PlacedRoles))
	copy(out.PlacedRoles, s.PlacedRoles)
	return out
}

// Clone returns a deep copy of the whole state.
func (st State) Clone() State {
	out := st
	out.Scenarios = make([]Scenario, len(st.Scenarios))
	for i, s := range st.Scenarios {
		out.Scenarios[i] = s.Clone()
	}
	return out
}
