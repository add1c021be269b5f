// Package planfile reads and writes planner state as YAML documents, the
// format used by `headway export` and `headway import`. Unlike the share-link
// codec it is meant to be hand-editable, so it uses full names instead of
// positional indexes and validates every reference on load.
package planfile

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
)

// Version is the plan file format version.
const Version = 1

// Document is the top-level YAML structure.
type Document struct {
	Version   int           `yaml:"version"`
	Active    int           `yaml:"active_scenario"`
	Scenarios []ScenarioDoc `yaml:"scenarios"`
}

// ScenarioDoc is one scenario. Growth rates are whole percents because that
// is the unit people type.
type ScenarioDoc struct {
	Name                string    `yaml:"name,omitempty"`
	FundingAmount       float64   `yaml:"funding_amount"`
	MRR                 float64   `yaml:"mrr"`
	MRRGrowthPct        float64   `yaml:"mrr_growth_pct"`
	OtherCosts          float64   `yaml:"other_costs"`
	OtherCostsGrowthPct float64   `yaml:"other_costs_growth_pct"`
	DefaultLocation     string    `yaml:"default_location"`
	DefaultRateTier     string    `yaml:"default_rate_tier"`
	Roles               []RoleDoc `yaml:"roles,omitempty"`
}

// RoleDoc is one placed role. Salary is only written for hand-edited
// amounts; band-derived salaries are recomputed on load so a plan file
// follows catalog updates.
type RoleDoc struct {
	Role       string  `yaml:"role"`
	StartMonth string  `yaml:"start_month"`
	Location   string  `yaml:"location"`
	Tier       string  `yaml:"tier,omitempty"`
	Salary     float64 `yaml:"salary,omitempty"`
}

// FromState converts planner state into a document.
func FromState(st plan.State) Document {
	doc := Document{
		Version:   Version,
		Active:    st.ActiveIndex,
		Scenarios: make([]ScenarioDoc, 0, len(st.Scenarios)),
	}
	for _, s := range st.Scenarios {
		sd := ScenarioDoc{
			Name:                s.Name,
			FundingAmount:       s.FundingAmount,
			MRR:                 s.MRR,
			MRRGrowthPct:        s.MRRGrowthRate * 100,
			OtherCosts:          s.OtherCosts,
			OtherCostsGrowthPct: s.OtherCostsGrowthRate * 100,
			DefaultLocation:     string(s.DefaultLocation),
			DefaultRateTier:     string(s.DefaultRateTier),
		}
		for _, r := range s.PlacedRoles {
			rd := RoleDoc{
				Role:       string(r.Role),
				StartMonth: r.StartMonth,
				Location:   string(r.Location),
				Tier:       string(r.Selection),
			}
			if r.Selection == plan.SalaryCustom {
				rd.Salary = r.Salary
			}
			sd.Roles = append(sd.Roles, rd)
		}
		doc.Scenarios = append(doc.Scenarios, sd)
	}
	return doc
}

// ToState validates a document and converts it back into planner state.
// Placed roles get fresh ids so an imported plan never collides with ids
// already persisted.
func (doc Document) ToState() (plan.State, error) {
	if doc.Version != Version {
		return plan.State{}, fmt.Errorf("unsupported plan file version %d", doc.Version)
	}
	if len(doc.Scenarios) == 0 {
		return plan.State{}, fmt.Errorf("plan file has no scenarios")
	}

	docs := doc.Scenarios
	if len(docs) > plan.MaxScenarios {
		docs = docs[:plan.MaxScenarios]
	}

	st := plan.State{Scenarios: make([]plan.Scenario, 0, len(docs))}
	for i, sd := range docs {
		s, err := sd.toScenario()
		if err != nil {
			return plan.State{}, fmt.Errorf("scenario %d: %w", i+1, err)
		}
		st.Scenarios = append(st.Scenarios, s)
	}

	st.ActiveIndex = doc.Active
	if st.ActiveIndex < 0 || st.ActiveIndex >= len(st.Scenarios) {
		st.ActiveIndex = 0
	}
	return st, nil
}

func (sd ScenarioDoc) toScenario() (plan.Scenario, error) {
	loc := catalog.LocationKey(sd.DefaultLocation)
	if sd.DefaultLocation == "" {
		loc = catalog.LocSF
	} else if !catalog.ValidLocation(loc) {
		return plan.Scenario{}, fmt.Errorf("unknown default location %q", sd.DefaultLocation)
	}

	tier, err := parseTier(sd.DefaultRateTier)
	if err != nil {
		return plan.Scenario{}, err
	}

	s := plan.Scenario{
		Name:                 sd.Name,
		FundingAmount:        sd.FundingAmount,
		MRR:                  sd.MRR,
		MRRGrowthRate:        sd.MRRGrowthPct / 100,
		OtherCosts:           sd.OtherCosts,
		OtherCostsGrowthRate: sd.OtherCostsGrowthPct / 100,
		DefaultLocation:      loc,
		DefaultRateTier:      tier,
	}

	for i, rd := range sd.Roles {
		pr, err := rd.toPlacedRole()
		if err != nil {
			return plan.Scenario{}, fmt.Errorf("role %d: %w", i+1, err)
		}
		s.PlacedRoles = append(s.PlacedRoles, pr)
	}
	return s, nil
}

func (rd RoleDoc) toPlacedRole() (plan.PlacedRole, error) {
	key := catalog.RoleKey(rd.Role)
	if _, ok := catalog.Lookup(key); !ok {
		return plan.PlacedRole{}, fmt.Errorf("unknown role %q", rd.Role)
	}

	loc := catalog.LocationKey(rd.Location)
	if !catalog.ValidLocation(loc) {
		return plan.PlacedRole{}, fmt.Errorf("unknown location %q", rd.Location)
	}

	if _, err := month.Parse(rd.StartMonth); err != nil {
		return plan.PlacedRole{}, fmt.Errorf("bad start month %q", rd.StartMonth)
	}

	band, ok := catalog.SalaryBand(key, loc)
	if !ok {
		return plan.PlacedRole{}, fmt.Errorf("no salary band for %q at %q", rd.Role, rd.Location)
	}

	sel := plan.SalarySelection(rd.Tier)
	if rd.Tier == "" {
		sel = plan.SalaryDefault
	}

	var salary float64
	switch sel {
	case plan.SalaryMin, plan.SalaryDefault, plan.SalaryMax:
		salary = plan.BandAmount(band, sel)
	case plan.SalaryCustom:
		if rd.Salary <= 0 {
			return plan.PlacedRole{}, fmt.Errorf("custom tier needs a positive salary")
		}
		salary = rd.Salary
	default:
		return plan.PlacedRole{}, fmt.Errorf("unknown tier %q", rd.Tier)
	}

	return plan.PlacedRole{
		ID:         uuid.NewString(),
		Role:       key,
		StartMonth: rd.StartMonth,
		Location:   loc,
		Salary:     salary,
		Selection:  sel,
	}, nil
}

func parseTier(s string) (plan.RateTier, error) {
	switch plan.RateTier(s) {
	case plan.TierMin, plan.TierDefault, plan.TierMax:
		return plan.RateTier(s), nil
	case "":
		return plan.TierDefault, nil
	default:
		return "", fmt.Errorf("unknown rate tier %q", s)
	}
}

// Save writes planner state to a YAML file.
func Save(path string, st plan.State) error {
	data, err := yaml.Marshal(FromState(st))
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}

// Load reads and validates a YAML plan file.
func Load(path string) (plan.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return plan.State{}, fmt.Errorf("reading plan file: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return plan.State{}, fmt.Errorf("parsing plan file: %w", err)
	}
	return doc.ToState()
}
