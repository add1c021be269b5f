package codec

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/plan"
)

func sampleState(t *testing.T) plan.State {
	t.Helper()
	s1 := plan.Scenario{
		Name:                 "baseline",
		FundingAmount:        1_500_000,
		MRR:                  25_000,
		MRRGrowthRate:        0.05,
		OtherCosts:           18_000,
		OtherCostsGrowthRate: 0.02,
		DefaultLocation:      catalog.LocSF,
		DefaultRateTier:      plan.TierDefault,
	}
	s1.AddRole(catalog.EngSenior, "2026-03")
	s1.AddRole(catalog.SalesAE, "2026-06")

	s2 := plan.Scenario{
		FundingAmount:        800_000,
		MRR:                  0,
		OtherCosts:           5_000,
		OtherCostsGrowthRate: -0.01,
		DefaultLocation:      catalog.LocOffshore,
		DefaultRateTier:      plan.TierMin,
	}
	s2.AddRole(catalog.OpsPeople, "2027-01")

	return plan.State{ActiveIndex: 1, Scenarios: []plan.Scenario{s1, s2}}
}

// equalIgnoringIDs compares scenarios field by field, skipping placed-role
// ids (regenerated on decode by contract).
func equalIgnoringIDs(t *testing.T, got, want plan.Scenario) {
	t.Helper()
	if got.Name != want.Name {
		t.Errorf("Name = %q, want %q", got.Name, want.Name)
	}
	if got.FundingAmount != want.FundingAmount || got.MRR != want.MRR ||
		got.OtherCosts != want.OtherCosts {
		t.Errorf("amounts = %v/%v/%v, want %v/%v/%v",
			got.FundingAmount, got.MRR, got.OtherCosts,
			want.FundingAmount, want.MRR, want.OtherCosts)
	}
	if got.MRRGrowthRate != want.MRRGrowthRate {
		t.Errorf("MRRGrowthRate = %v, want %v", got.MRRGrowthRate, want.MRRGrowthRate)
	}
	if got.OtherCostsGrowthRate != want.OtherCostsGrowthRate {
		t.Errorf("OtherCostsGrowthRate = %v, want %v", got.OtherCostsGrowthRate, want.OtherCostsGrowthRate)
	}
	if got.DefaultLocation != want.DefaultLocation || got.DefaultRateTier != want.DefaultRateTier {
		t.Errorf("defaults = %v/%v, want %v/%v",
			got.DefaultLocation, got.DefaultRateTier, want.DefaultLocation, want.DefaultRateTier)
	}
	if len(got.PlacedRoles) != len(want.PlacedRoles) {
		t.Fatalf("role count = %d, want %d", len(got.PlacedRoles), len(want.PlacedRoles))
	}
	for i := range want.PlacedRoles {
		g, w := got.PlacedRoles[i], want.PlacedRoles[i]
		if g.ID == "" {
			t.Errorf("role %d decoded with empty id", i)
		}
		if g.Role != w.Role || g.StartMonth != w.StartMonth || g.Location != w.Location ||
			g.Selection != w.Selection || g.Salary != w.Salary {
			t.Errorf("role %d = %+v, want %+v (ids excluded)", i, g, w)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	state := sampleState(t)

	encoded, err := EncodeScenariosState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeScenariosState(encoded)
	if decoded == nil {
		t.Fatal("decode returned nil for freshly encoded state")
	}

	if decoded.ActiveIndex != state.ActiveIndex {
		t.Errorf("ActiveIndex = %d, want %d", decoded.ActiveIndex, state.ActiveIndex)
	}
	if len(decoded.Scenarios) != len(state.Scenarios) {
		t.Fatalf("scenario count = %d, want %d", len(decoded.Scenarios), len(state.Scenarios))
	}
	for i := range state.Scenarios {
		equalIgnoringIDs(t, decoded.Scenarios[i], state.Scenarios[i])
	}
}

func TestPayloadIsURLSafe(t *testing.T) {
	encoded, err := EncodeScenariosState(sampleState(t))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.ContainsAny(encoded, "+/=") {
		t.Fatalf("payload contains non-URL-safe characters: %q", encoded)
	}
	if DecodeScenariosState(encoded+"==") == nil {
		t.Error("decode rejected a payload with stray padding")
	}
}

func TestDecodeRejectsCorruptInput(t *testing.T) {
	for _, bad := range []string{
		"",
		"!!!not-base64!!!",
		base64.RawURLEncoding.EncodeToString([]byte("not deflate")),
	} {
		if got := DecodeScenariosState(bad); got != nil {
			t.Errorf("DecodeScenariosState(%q) = %+v, want nil", bad, got)
		}
	}
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	payload, err := seal(map[string]any{"v": 1, "a": 0, "s": []any{}})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if DecodeScenariosState(payload) != nil {
		t.Fatal("decode accepted version 1 payload")
	}

	noVersion, err := seal(map[string]any{"a": 0, "s": []any{}})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if DecodeScenariosState(noVersion) != nil {
		t.Fatal("decode accepted versionless payload")
	}
}

func TestDecodeClampsActiveIndex(t *testing.T) {
	state := sampleState(t)
	state.ActiveIndex = 99

	encoded, err := EncodeScenariosState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeScenariosState(encoded)
	if decoded == nil {
		t.Fatal("decode returned nil")
	}
	if decoded.ActiveIndex != len(decoded.Scenarios)-1 {
		t.Fatalf("ActiveIndex = %d, want clamped to %d", decoded.ActiveIndex, len(decoded.Scenarios)-1)
	}
}

func TestDecodeTruncatesToMaxScenarios(t *testing.T) {
	state := plan.State{}
	for i := 0; i < plan.MaxScenarios+2; i++ {
		state.Scenarios = append(state.Scenarios, plan.Scenario{
			FundingAmount:   float64(i),
			DefaultLocation: catalog.LocSF,
			DefaultRateTier: plan.TierDefault,
		})
	}

	encoded, err := EncodeScenariosState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeScenariosState(encoded)
	if decoded == nil {
		t.Fatal("decode returned nil")
	}
	if len(decoded.Scenarios) != plan.MaxScenarios {
		t.Fatalf("scenario count = %d, want %d", len(decoded.Scenarios), plan.MaxScenarios)
	}
}

func TestGrowthRatesRoundToWholePercent(t *testing.T) {
	state := plan.State{Scenarios: []plan.Scenario{{
		MRRGrowthRate:        0.057, // externally crafted fraction
		OtherCostsGrowthRate: -0.012,
		DefaultLocation:      catalog.LocSF,
		DefaultRateTier:      plan.TierDefault,
	}}}

	encoded, err := EncodeScenariosState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeScenariosState(encoded)
	if decoded == nil {
		t.Fatal("decode returned nil")
	}
	if got := decoded.Scenarios[0].MRRGrowthRate; got != 0.06 {
		t.Errorf("MRRGrowthRate = %v, want 0.06 (rounded)", got)
	}
	if got := decoded.Scenarios[0].OtherCostsGrowthRate; got != -0.01 {
		t.Errorf("OtherCostsGrowthRate = %v, want -0.01 (rounded)", got)
	}
}

func TestNameOmittedWhenBlank(t *testing.T) {
	state := plan.State{Scenarios: []plan.Scenario{{
		DefaultLocation: catalog.LocSF,
		DefaultRateTier: plan.TierDefault,
	}}}
	encoded, err := EncodeScenariosState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	raw, err := unseal(encoded)
	if err != nil {
		t.Fatalf("unseal: %v", err)
	}
	if strings.Contains(string(raw), `"n"`) {
		t.Fatalf("blank name was encoded: %s", raw)
	}
}

func TestCustomSalaryPreserved(t *testing.T) {
	s := plan.Scenario{DefaultLocation: catalog.LocSF, DefaultRateTier: plan.TierDefault}
	r := s.AddRole(catalog.EngStaff, "2026-05")
	s.SetRoleSalary(r.ID, 123_456)
	state := plan.State{Scenarios: []plan.Scenario{s}}

	encoded, err := EncodeScenariosState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeScenariosState(encoded)
	if decoded == nil {
		t.Fatal("decode returned nil")
	}
	got := decoded.Scenarios[0].PlacedRoles[0]
	if got.Selection != plan.SalaryCustom {
		t.Fatalf("Selection = %v, want custom", got.Selection)
	}
	if got.Salary != 123_456 {
		t.Fatalf("Salary = %v, want 123456 preserved through the round trip", got.Salary)
	}
}

func TestCustomSalaryWithoutAmountFallsBackToMid(t *testing.T) {
	// Payload shaped like the old 4-tuple format with a custom selection.
	payload, err := seal(map[string]any{
		"v": 2, "a": 0,
		"s": []any{map[string]any{
			"f": 0.0, "m": 0.0, "mg": 0, "oc": 0.0, "ocg": 0,
			"dl": "SF", "dr": "d",
			"r": []any{[]any{2, "2026-05", 0, 3}},
		}},
	})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	decoded := DecodeScenariosState(payload)
	if decoded == nil {
		t.Fatal("decode returned nil")
	}
	band, _ := catalog.SalaryBand(catalog.EngStaff, catalog.LocSF)
	got := decoded.Scenarios[0].PlacedRoles[0]
	if got.Salary != band.Default {
		t.Fatalf("Salary = %v, want mid band %v", got.Salary, band.Default)
	}
}

func TestDecodeRejectsMalformedRoleTuples(t *testing.T) {
	for name, tuple := range map[string]any{
		"too short":      []any{1, "2026-01"},
		"role oob":       []any{99, "2026-01", 0, 0},
		"location oob":   []any{0, "2026-01", 9, 0},
		"selection oob":  []any{0, "2026-01", 0, 9},
		"month not str":  []any{0, 7, 0, 0},
		"fractional idx": []any{0.5, "2026-01", 0, 0},
	} {
		payload, err := seal(map[string]any{
			"v": 2, "a": 0,
			"s": []any{map[string]any{
				"f": 0.0, "m": 0.0, "mg": 0, "oc": 0.0, "ocg": 0,
				"dl": "SF", "dr": "d", "r": []any{tuple},
			}},
		})
		if err != nil {
			t.Fatalf("seal(%s): %v", name, err)
		}
		if DecodeScenariosState(payload) != nil {
			t.Errorf("decode accepted payload with %s role tuple", name)
		}
	}
}

func TestDecodedRoleIDsUniqueWithinDecode(t *testing.T) {
	s := plan.Scenario{DefaultLocation: catalog.LocSF, DefaultRateTier: plan.TierDefault}
	s.AddRole(catalog.EngSoftware, "2026-01")
	s.AddRole(catalog.EngSoftware, "2026-01") // identical placement
	state := plan.State{Scenarios: []plan.Scenario{s, s.Clone()}}

	encoded, err := EncodeScenariosState(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeScenariosState(encoded)
	if decoded == nil {
		t.Fatal("decode returned nil")
	}

	seen := make(map[string]bool)
	for _, sc := range decoded.Scenarios {
		for _, r := range sc.PlacedRoles {
			if seen[r.ID] {
				t.Fatalf("duplicate decoded role id %q", r.ID)
			}
			seen[r.ID] = true
		}
	}
}

func TestLegacySingleScenarioRoundTrip(t *testing.T) {
	s := plan.Scenario{
		Name:            "seed plan",
		FundingAmount:   250_000,
		MRR:             4_000,
		MRRGrowthRate:   0.03,
		DefaultLocation: catalog.LocRemoteUS,
		DefaultRateTier: plan.TierMax,
	}
	s.AddRole(catalog.DesignPD, "2026-08")

	encoded, err := EncodeScenarioState(s)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded := DecodeScenarioState(encoded)
	if decoded == nil {
		t.Fatal("legacy decode returned nil")
	}
	equalIgnoringIDs(t, *decoded, s)
}

func TestLegacyDecodeRejectsGarbage(t *testing.T) {
	if DecodeScenarioState("@@@") != nil {
		t.Fatal("legacy decode accepted garbage")
	}
}
