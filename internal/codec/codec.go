// Package codec encodes planner state into compact URL-safe share payloads
// and decodes them back into full domain objects.
//
// The wire shape is a short-key JSON envelope, raw-DEFLATE compressed, then
// base64url without padding. Decode never returns an error to callers: any
// failure (bad base64, corrupt stream, JSON, unknown version) yields nil and
// a stderr diagnostic, and the caller falls back to persisted state or
// defaults.
package codec

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/plan"
)

// Version is the multi-scenario envelope format version.
const Version = 2

// compactScenario is one scenario with short keys. Growth rates are stored
// as rounded whole-percent integers: the UI only ever edits whole percents,
// so the round trip is lossless for anything it can produce.
type compactScenario struct {
	Name             string  `json:"n,omitempty"`
	Funding          float64 `json:"f"`
	MRR              float64 `json:"m"`
	MRRGrowth        int     `json:"mg"`
	OtherCosts       float64 `json:"oc"`
	OtherCostsGrowth int     `json:"ocg"`
	DefaultLocation  string  `json:"dl"`
	DefaultRateTier  string  `json:"dr"`
	Roles            [][]any `json:"r"`
}

// compactState is the multi-scenario envelope.
type compactState struct {
	Version   int               `json:"v"`
	Active    int               `json:"a"`
	Scenarios []compactScenario `json:"s"`
}

var salarySelectionOrder = []plan.SalarySelection{
	plan.SalaryMin, plan.SalaryDefault, plan.SalaryMax, plan.SalaryCustom,
}

func roleKeyIndex(key catalog.RoleKey) int {
	for i, k := range catalog.RoleOrder {
		if k == key {
			return i
		}
	}
	return -1
}

func locationIndex(loc catalog.LocationKey) int {
	for i, l := range catalog.LocationOrder {
		if l == loc {
			return i
		}
	}
	return -1
}

func selectionIndex(sel plan.SalarySelection) int {
	for i, s := range salarySelectionOrder {
		if s == sel {
			return i
		}
	}
	return 1 // mid-market
}

func compactify(s plan.Scenario) compactScenario {
	c := compactScenario{
		Name:             s.Name,
		Funding:          s.FundingAmount,
		MRR:              s.MRR,
		MRRGrowth:        roundPercent(s.MRRGrowthRate),
		OtherCosts:       s.OtherCosts,
		OtherCostsGrowth: roundPercent(s.OtherCostsGrowthRate),
		DefaultLocation:  string(s.DefaultLocation),
		DefaultRateTier:  tierCode(s.DefaultRateTier),
		Roles:            make([][]any, 0, len(s.PlacedRoles)),
	}
	for _, r := range s.PlacedRoles {
		tuple := []any{
			roleKeyIndex(r.Role),
			r.StartMonth,
			locationIndex(r.Location),
			selectionIndex(r.Selection),
		}
		// Hand-edited salaries carry their amount; everything else is
		// re-derived from the catalog on decode.
		if r.Selection == plan.SalaryCustom {
			tuple = append(tuple, r.Salary)
		}
		c.Roles = append(c.Roles, tuple)
	}
	return c
}

func roundPercent(rate float64) int {
	pct := rate * 100
	if pct < 0 {
		return -int(-pct + 0.5)
	}
	return int(pct + 0.5)
}

func tierCode(t plan.RateTier) string {
	switch t {
	case plan.TierMin:
		return "n"
	case plan.TierMax:
		return "x"
	default:
		return "d"
	}
}

func tierFromCode(code string) plan.RateTier {
	switch code {
	case "n":
		return plan.TierMin
	case "x":
		return plan.TierMax
	default:
		return plan.TierDefault
	}
}

// expand rebuilds a full scenario from its compact form, re-deriving
// salaries from the catalog and synthesizing fresh ids that cannot collide
// within one decode.
func expand(c compactScenario, scenarioIndex int) (plan.Scenario, error) {
	s := plan.Scenario{
		Name:                 c.Name,
		FundingAmount:        c.Funding,
		MRR:                  c.MRR,
		MRRGrowthRate:        float64(c.MRRGrowth) / 100,
		OtherCosts:           c.OtherCosts,
		OtherCostsGrowthRate: float64(c.OtherCostsGrowth) / 100,
		DefaultLocation:      catalog.LocationKey(c.DefaultLocation),
		DefaultRateTier:      tierFromCode(c.DefaultRateTier),
	}

	for i, tuple := range c.Roles {
		if len(tuple) < 4 {
			return plan.Scenario{}, fmt.Errorf("role tuple %d has %d elements", i, len(tuple))
		}
		roleIdx, ok := tupleInt(tuple[0])
		if !ok || roleIdx < 0 || roleIdx >= len(catalog.RoleOrder) {
			return plan.Scenario{}, fmt.Errorf("role tuple %d: bad role index %v", i, tuple[0])
		}
		startMonth, ok := tuple[1].(string)
		if !ok {
			return plan.Scenario{}, fmt.Errorf("role tuple %d: bad start month %v", i, tuple[1])
		}
		locIdx, ok := tupleInt(tuple[2])
		if !ok || locIdx < 0 || locIdx >= len(catalog.LocationOrder) {
			return plan.Scenario{}, fmt.Errorf("role tuple %d: bad location index %v", i, tuple[2])
		}
		selIdx, ok := tupleInt(tuple[3])
		if !ok || selIdx < 0 || selIdx >= len(salarySelectionOrder) {
			return plan.Scenario{}, fmt.Errorf("role tuple %d: bad selection index %v", i, tuple[3])
		}

		roleKey := catalog.RoleOrder[roleIdx]
		loc := catalog.LocationOrder[locIdx]
		sel := salarySelectionOrder[selIdx]
		band, ok := catalog.SalaryBand(roleKey, loc)
		if !ok {
			return plan.Scenario{}, fmt.Errorf("role tuple %d: no band for %s/%s", i, roleKey, loc)
		}

		salary := plan.BandAmount(band, sel)
		if sel == plan.SalaryCustom && len(tuple) >= 5 {
			if amount, ok := tupleFloat(tuple[4]); ok {
				salary = amount
			}
		}

		s.PlacedRoles = append(s.PlacedRoles, plan.PlacedRole{
			ID:         fmt.Sprintf("s%d-%s-%s-%d", scenarioIndex, roleKey, startMonth, i),
			Role:       roleKey,
			StartMonth: startMonth,
			Location:   loc,
			Salary:     salary,
			Selection:  sel,
		})
	}
	return s, nil
}

func tupleInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

func tupleFloat(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// EncodeScenariosState encodes the full multi-scenario state into a share
// payload (the value of the URL fragment's "s" parameter).
func EncodeScenariosState(state plan.State) (string, error) {
	envelope := compactState{
		Version:   Version,
		Active:    state.ActiveIndex,
		Scenarios: make([]compactScenario, 0, len(state.Scenarios)),
	}
	for _, s := range state.Scenarios {
		envelope.Scenarios = append(envelope.Scenarios, compactify(s))
	}
	return seal(envelope)
}

// DecodeScenariosState decodes a share payload. Returns nil on any failure,
// including a version tag other than 2.
func DecodeScenariosState(encoded string) *plan.State {
	raw, err := unseal(encoded)
	if err != nil {
		logDecodeFailure(err)
		return nil
	}

	var envelope compactState
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logDecodeFailure(fmt.Errorf("parsing envelope: %w", err))
		return nil
	}
	if envelope.Version != Version {
		logDecodeFailure(fmt.Errorf("unsupported version %d", envelope.Version))
		return nil
	}

	compacts := envelope.Scenarios
	if len(compacts) > plan.MaxScenarios {
		compacts = compacts[:plan.MaxScenarios]
	}

	state := &plan.State{}
	for i, c := range compacts {
		s, err := expand(c, i)
		if err != nil {
			logDecodeFailure(err)
			return nil
		}
		state.Scenarios = append(state.Scenarios, s)
	}

	state.ActiveIndex = clamp(envelope.Active, 0, len(state.Scenarios)-1)
	return state
}

// EncodeScenarioState encodes one bare scenario with no envelope. Kept for
// single-plan share links produced before multi-scenario support.
func EncodeScenarioState(s plan.Scenario) (string, error) {
	return seal(compactify(s))
}

// DecodeScenarioState decodes a legacy bare-scenario payload. Returns nil on
// any failure.
func DecodeScenarioState(encoded string) *plan.Scenario {
	raw, err := unseal(encoded)
	if err != nil {
		logDecodeFailure(err)
		return nil
	}

	var c compactScenario
	if err := json.Unmarshal(raw, &c); err != nil {
		logDecodeFailure(fmt.Errorf("parsing scenario: %w", err))
		return nil
	}
	// The multi-scenario envelope also parses as a compactScenario with
	// everything zeroed; require the location field so it is rejected.
	if c.DefaultLocation == "" {
		logDecodeFailure(fmt.Errorf("not a legacy scenario payload"))
		return nil
	}

	s, err := expand(c, 0)
	if err != nil {
		logDecodeFailure(err)
		return nil
	}
	return &s
}

// clamp bounds v to [lo, hi], with lo winning when the range is empty
// (a zero-scenario payload still gets index 0).
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func logDecodeFailure(err error) {
	fmt.Fprintf(os.Stderr, "headway: failed to decode share payload: %v\n", err)
}
