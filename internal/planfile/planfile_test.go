package planfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/plan"
)

func sampleState() plan.State {
	return plan.State{
		ActiveIndex: 1,
		Scenarios: []plan.Scenario{
			{
				Name:                 "Base",
				FundingAmount:        2_000_000,
				MRR:                  50_000,
				MRRGrowthRate:        0.05,
				OtherCosts:           20_000,
				OtherCostsGrowthRate: 0.02,
				DefaultLocation:      catalog.LocSF,
				DefaultRateTier:      plan.TierDefault,
				PlacedRoles: []plan.PlacedRole{
					{
						ID:         "a",
						Role:       catalog.EngSoftware,
						StartMonth: "2026-10",
						Location:   catalog.LocSF,
						Salary:     165_000,
						Selection:  plan.SalaryDefault,
					},
					{
						ID:         "b",
						Role:       catalog.SalesAE,
						StartMonth: "2027-01",
						Location:   catalog.LocRemoteUS,
						Salary:     123_456,
						Selection:  plan.SalaryCustom,
					},
				},
			},
			{
				FundingAmount:   1_000_000,
				DefaultLocation: catalog.LocNYC,
				DefaultRateTier: plan.TierMax,
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	orig := sampleState()

	if err := Save(path, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.ActiveIndex != 1 {
		t.Errorf("ActiveIndex = %d, want 1", got.ActiveIndex)
	}
	if len(got.Scenarios) != 2 {
		t.Fatalf("len(Scenarios) = %d, want 2", len(got.Scenarios))
	}

	s := got.Scenarios[0]
	if s.Name != "Base" || s.MRRGrowthRate != 0.05 || s.OtherCostsGrowthRate != 0.02 {
		t.Errorf("scenario fields not preserved: %+v", s)
	}
	if len(s.PlacedRoles) != 2 {
		t.Fatalf("len(PlacedRoles) = %d, want 2", len(s.PlacedRoles))
	}

	// Band-derived salary recomputed from the catalog, custom preserved.
	if s.PlacedRoles[0].Salary != 165_000 || s.PlacedRoles[0].Selection != plan.SalaryDefault {
		t.Errorf("band role = %+v", s.PlacedRoles[0])
	}
	if s.PlacedRoles[1].Salary != 123_456 || s.PlacedRoles[1].Selection != plan.SalaryCustom {
		t.Errorf("custom role = %+v", s.PlacedRoles[1])
	}

	// Fresh ids on import.
	if s.PlacedRoles[0].ID == "a" || s.PlacedRoles[0].ID == "" {
		t.Errorf("imported role kept id %q, want fresh", s.PlacedRoles[0].ID)
	}
	if s.PlacedRoles[0].ID == s.PlacedRoles[1].ID {
		t.Error("imported roles share an id")
	}
}

func TestBandSalaryFollowsCatalog(t *testing.T) {
	// A stale salary in the file must lose to the current band amount when
	// the tier is not custom.
	path := filepath.Join(t.TempDir(), "plan.yaml")
	doc := `version: 1
active_scenario: 0
scenarios:
  - funding_amount: 500000
    default_location: SF
    default_rate_tier: default
    roles:
      - role: ENG_SENIOR
        start_month: 2026-11
        location: NYC
        tier: max
        salary: 1
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	band, _ := catalog.SalaryBand(catalog.EngSenior, catalog.LocNYC)
	if got := st.Scenarios[0].PlacedRoles[0].Salary; got != band.Max {
		t.Errorf("salary = %v, want band max %v", got, band.Max)
	}
}

func TestLoadRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "bad version",
			doc:  "version: 9\nscenarios:\n  - funding_amount: 1\n",
			want: "version",
		},
		{
			name: "no scenarios",
			doc:  "version: 1\nscenarios: []\n",
			want: "no scenarios",
		},
		{
			name: "unknown role",
			doc: "version: 1\nscenarios:\n  - roles:\n" +
				"      - {role: WIZARD, start_month: 2026-10, location: SF}\n",
			want: "unknown role",
		},
		{
			name: "unknown location",
			doc: "version: 1\nscenarios:\n  - roles:\n" +
				"      - {role: ENG_SOFTWARE, start_month: 2026-10, location: MOON}\n",
			want: "unknown location",
		},
		{
			name: "bad month",
			doc: "version: 1\nscenarios:\n  - roles:\n" +
				"      - {role: ENG_SOFTWARE, start_month: october, location: SF}\n",
			want: "start month",
		},
		{
			name: "custom without salary",
			doc: "version: 1\nscenarios:\n  - roles:\n" +
				"      - {role: ENG_SOFTWARE, start_month: 2026-10, location: SF, tier: custom}\n",
			want: "positive salary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestTruncatesAndClamps(t *testing.T) {
	doc := Document{Version: Version, Active: 7}
	for i := 0; i < plan.MaxScenarios+2; i++ {
		doc.Scenarios = append(doc.Scenarios, ScenarioDoc{FundingAmount: float64(i)})
	}
	st, err := doc.ToState()
	if err != nil {
		t.Fatalf("ToState: %v", err)
	}
	if len(st.Scenarios) != plan.MaxScenarios {
		t.Errorf("len(Scenarios) = %d, want %d", len(st.Scenarios), plan.MaxScenarios)
	}
	if st.ActiveIndex != 0 {
		t.Errorf("ActiveIndex = %d, want 0", st.ActiveIndex)
	}
}
