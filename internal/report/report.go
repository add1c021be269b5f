// Package report renders a scenario as a printable PDF runway report.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/project"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

type runwayReport struct {
	pdf      *fpdf.Fpdf
	scenario plan.Scenario
	title    string
	horizon  int
	runway   project.RunwayResult
	timeline []project.MonthlyBalance
}

// Generate renders a scenario into PDF bytes. Title is used on the cover
// line; pass the scenario label when the scenario itself is unnamed.
func Generate(s plan.Scenario, title string, horizonMonths int) ([]byte, error) {
	if horizonMonths <= 0 {
		horizonMonths = 36
	}

	r := &runwayReport{
		pdf:      fpdf.New("P", "mm", "A4", ""),
		scenario: s,
		title:    title,
		horizon:  horizonMonths,
		runway: project.Runway(
			s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
			s.OtherCosts, s.OtherCostsGrowthRate,
		),
		timeline: project.CashBalanceTimeline(
			s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
			s.OtherCosts, s.OtherCostsGrowthRate,
			month.Range(month.CurrentStart(), horizonMonths),
		),
	}

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.AddPage()

	r.addHeader()
	r.addAssumptions()
	r.addRunwaySummary()
	r.addHiringPlan()
	r.addProjectionTable()
	r.addFooter()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *runwayReport) addHeader() {
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(16, 15, 15)
	r.pdf.CellFormat(contentWidth, 12, "Headcount & Runway Plan", "", 1, "L", false, 0, "")

	r.pdf.SetFont("Arial", "", 12)
	r.pdf.SetTextColor(90, 90, 90)
	r.pdf.CellFormat(contentWidth, 8, r.title, "", 1, "L", false, 0, "")

	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(130, 130, 130)
	r.pdf.CellFormat(contentWidth, 6,
		fmt.Sprintf("Generated %s", time.Now().Format("2 January 2006")), "", 1, "L", false, 0, "")
	r.pdf.Ln(4)
}

func (r *runwayReport) addAssumptions() {
	r.drawSectionHeader("Assumptions")

	s := r.scenario
	rows := [][]string{
		{"Funding", cli.FormatMoney(s.FundingAmount)},
		{"MRR", fmt.Sprintf("%s (%s monthly growth)", cli.FormatMoney(s.MRR), cli.FormatGrowth(s.MRRGrowthRate))},
		{"Other monthly costs", fmt.Sprintf("%s (%s monthly growth)", cli.FormatMoney(s.OtherCosts), cli.FormatGrowth(s.OtherCostsGrowthRate))},
		{"Default location", catalog.LocationLabel(s.DefaultLocation)},
		{"Default rate tier", string(s.DefaultRateTier)},
	}

	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for _, row := range rows {
		r.pdf.CellFormat(55, 6, row[0], "", 0, "L", false, 0, "")
		r.pdf.CellFormat(contentWidth-55, 6, row[1], "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)
}

func (r *runwayReport) addRunwaySummary() {
	r.drawSectionHeader("Runway")

	r.pdf.SetFont("Arial", "", 10)

	if r.runway.RunOutMonth == "" {
		r.pdf.SetTextColor(60, 110, 30)
		r.pdf.CellFormat(contentWidth, 6, "Cash never runs out within the projection horizon.", "", 1, "L", false, 0, "")
	} else {
		now := month.CurrentStart()
		months := 0
		if idx, err := month.Index(r.runway.RunOutMonth, now); err == nil {
			months = idx
		}
		r.pdf.SetTextColor(180, 40, 30)
		r.pdf.CellFormat(contentWidth, 6,
			fmt.Sprintf("Cash runs out in %s (%s from now).", r.runway.RunOutLabel, cli.FormatRunway(months)),
			"", 1, "L", false, 0, "")
	}

	r.pdf.SetTextColor(50, 50, 50)
	switch {
	case r.runway.ProfitableMonth != "":
		r.pdf.CellFormat(contentWidth, 6,
			fmt.Sprintf("Plan turns cash-flow positive in %s.", r.runway.ProfitableLabel), "", 1, "L", false, 0, "")
	case r.runway.IsProfitable:
		r.pdf.CellFormat(contentWidth, 6, "Plan is cash-flow positive with no hires placed.", "", 1, "L", false, 0, "")
	default:
		r.pdf.CellFormat(contentWidth, 6, "Plan never turns cash-flow positive within the horizon.", "", 1, "L", false, 0, "")
	}
	r.pdf.Ln(4)
}

func (r *runwayReport) addHiringPlan() {
	r.drawSectionHeader("Hiring Plan")

	if len(r.scenario.PlacedRoles) == 0 {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.SetTextColor(130, 130, 130)
		r.pdf.CellFormat(contentWidth, 6, "No hires placed.", "", 1, "L", false, 0, "")
		r.pdf.Ln(4)
		return
	}

	widths := []float64{60, 30, 40, 30, 20}
	r.drawTableHeader([]string{"Role", "Start", "Location", "Salary", "Tier"}, widths)

	total := 0.0
	for i, pr := range r.scenario.PlacedRoles {
		name := string(pr.Role)
		if role, ok := catalog.Lookup(pr.Role); ok {
			name = role.Name
		}
		total += pr.Salary
		r.drawTableRow([]string{
			name,
			month.LabelKey(pr.StartMonth),
			catalog.LocationLabel(pr.Location),
			cli.FormatMoney(pr.Salary),
			string(pr.Selection),
		}, widths, i%2 == 1)
	}

	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(240, 240, 240)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(widths[0]+widths[1]+widths[2], 5, "TOTAL ANNUAL SALARY", "1", 0, "R", true, 0, "")
	r.pdf.CellFormat(widths[3], 5, cli.FormatMoney(total), "1", 0, "R", true, 0, "")
	r.pdf.CellFormat(widths[4], 5, "", "1", 1, "L", true, 0, "")
	r.pdf.Ln(4)
}

func (r *runwayReport) addProjectionTable() {
	r.drawSectionHeader("Monthly Projection")

	if len(r.timeline) == 0 {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.SetTextColor(130, 130, 130)
		r.pdf.CellFormat(contentWidth, 6, "No projection available.", "", 1, "L", false, 0, "")
		return
	}

	widths := []float64{50, 65, 65}
	r.drawTableHeader([]string{"Month", "Ending Balance", "Monthly Burn"}, widths)

	for i, mb := range r.timeline {
		if r.pdf.GetY() > 270 {
			r.pdf.AddPage()
			r.drawTableHeader([]string{"Month", "Ending Balance", "Monthly Burn"}, widths)
		}
		r.drawTableRow([]string{
			month.LabelKey(mb.Month),
			cli.FormatMoney(mb.Balance),
			cli.FormatMoney(mb.Burn),
		}, widths, i%2 == 1)
	}

	if len(r.timeline) < r.horizon {
		last := r.timeline[len(r.timeline)-1]
		r.pdf.Ln(2)
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetTextColor(180, 40, 30)
		r.pdf.CellFormat(contentWidth, 5,
			fmt.Sprintf("Projection truncated: balance depleted in %s.", month.LabelKey(last.Month)),
			"", 1, "L", false, 0, "")
	}
}

func (r *runwayReport) addFooter() {
	r.pdf.Ln(10)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(128, 128, 128)
	r.pdf.MultiCell(contentWidth, 4,
		"Projections are based on the assumptions above; actual burn will vary with "+
			"payroll taxes, benefits, and hiring timing. This is not financial advice.", "", "L", false)
}

func (r *runwayReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(20, 60, 90)
	r.pdf.CellFormat(contentWidth, 9, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(20, 60, 90)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(3)
}

func (r *runwayReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(20, 60, 90)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, h := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, h, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *runwayReport) drawTableRow(cells []string, widths []float64, shaded bool) {
	if shaded {
		r.pdf.SetFillColor(245, 247, 250)
	} else {
		r.pdf.SetFillColor(255, 255, 255)
	}
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.SetFont("Arial", "", 9)

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}
