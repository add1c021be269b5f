package report

import (
	"bytes"
	"testing"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
)

func TestGenerateProducesPDF(t *testing.T) {
	s := plan.Scenario{
		Name:            "Base",
		FundingAmount:   2_000_000,
		MRR:             40_000,
		MRRGrowthRate:   0.05,
		OtherCosts:      15_000,
		DefaultLocation: catalog.LocSF,
		DefaultRateTier: plan.TierDefault,
		PlacedRoles: []plan.PlacedRole{
			{
				ID:         "r1",
				Role:       catalog.EngSoftware,
				StartMonth: month.Key(month.Add(month.CurrentStart(), 2)),
				Location:   catalog.LocSF,
				Salary:     165_000,
				Selection:  plan.SalaryDefault,
			},
		},
	}

	data, err := Generate(s, "Base", 24)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF magic, got %q", data[:min(8, len(data))])
	}
	if len(data) < 1000 {
		t.Errorf("suspiciously small PDF: %d bytes", len(data))
	}
}

func TestGenerateEmptyScenario(t *testing.T) {
	s := plan.Scenario{
		FundingAmount:   500_000,
		DefaultLocation: catalog.LocSF,
		DefaultRateTier: plan.TierDefault,
	}
	data, err := Generate(s, "Scenario 1", 0)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with PDF magic")
	}
}
