package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/tui/components"
	"github.com/headwayhq/headway/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.active()
	runway := a.runway()
	balances := a.balances()
	var b strings.Builder

	// Row 1: Metric cards
	now := month.CurrentStart()

	runwayValue := "∞"
	runwayNote := "never runs out"
	monthsLeft := -1
	var runwayColor lipgloss.Color
	if runway.RunOutMonth != "" {
		if idx, err := month.Index(runway.RunOutMonth, now); err == nil {
			monthsLeft = idx
		}
		runwayValue = cli.FormatRunway(monthsLeft)
		runwayNote = "out " + runway.RunOutLabel
		if monthsLeft < 6 {
			runwayColor = t.Red
		} else if monthsLeft < 12 {
			runwayColor = t.Orange
		}
	}

	burn := 0.0
	balance := s.FundingAmount
	if len(balances) > 0 {
		burn = balances[0].Burn
		balance = balances[0].Balance
	}

	started, planned := 0, 0
	nowKey := month.Key(now)
	for _, pr := range s.PlacedRoles {
		if pr.StartMonth <= nowKey {
			started++
		} else {
			planned++
		}
	}

	profitNote := "never profitable"
	if runway.ProfitableMonth != "" {
		profitNote = "profitable " + runway.ProfitableLabel
	} else if runway.IsProfitable {
		profitNote = "profitable now"
	}

	metrics := []components.Metric{
		{Label: "Runway", Value: runwayValue, Note: runwayNote, ValueColor: runwayColor},
		{Label: "Burn / month", Value: cli.FormatMoneyCompact(burn), Note: "balance " + cli.FormatMoneyCompact(balance)},
		{Label: "Team", Value: fmt.Sprintf("%d", len(s.PlacedRoles)), Note: fmt.Sprintf("%d hired · %d planned", started, planned)},
		{Label: "MRR", Value: cli.FormatMoneyCompact(s.MRR), Note: profitNote},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Runway gauge
	gaugeW := components.CardInnerWidth(cw) - 6
	if gaugeW < 10 {
		gaugeW = 10
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Runway (%dmo horizon)", a.horizon()),
		components.RunwayGauge(monthsLeft, a.horizon(), gaugeW),
		cw,
	))
	b.WriteString("\n")

	// Row 3: Cash balance chart
	if len(balances) > 0 {
		vals := make([]float64, len(balances))
		labels := make([]string, len(balances))
		for i, mb := range balances {
			vals[i] = mb.Balance
			labels[i] = month.LabelKey(mb.Month)
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			"Cash Balance",
			components.BalanceChart(vals, labels, components.CardInnerWidth(cw), chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: Team split by function + share link
	halves := components.LayoutRow(cw, 2)

	funcCard := components.ContentCard("Team by Function", a.renderFunctionSplit(components.CardInnerWidth(halves[0])), halves[0])

	linkStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	link := a.share()
	shareBody := linkStyle.Render("no share link")
	if link != "" {
		shareBody = linkStyle.Render(truncStr("headway://plan?s="+link, components.CardInnerWidth(halves[1])*2)) +
			"\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render("run `headway share` to print in full")
	}
	shareCard := components.ContentCard("Share", shareBody, halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Team by Function", a.renderFunctionSplit(components.CardInnerWidth(cw)), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Share", shareBody, cw))
	} else {
		b.WriteString(components.CardRow([]string{funcCard, shareCard}))
	}

	return b.String()
}

// renderFunctionSplit draws one bar per function sized by annual salary.
func (a App) renderFunctionSplit(innerW int) string {
	t := theme.Active
	s := a.active()

	totals := map[catalog.Function]float64{}
	counts := map[catalog.Function]int{}
	for _, pr := range s.PlacedRoles {
		role, ok := catalog.Lookup(pr.Role)
		if !ok {
			continue
		}
		totals[role.Function] += pr.Salary
		counts[role.Function]++
	}

	if len(totals) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no hires placed")
	}

	functions := []catalog.Function{catalog.Engineering, catalog.Sales, catalog.Design, catalog.Operations}
	maxTotal := 0.0
	for _, fn := range functions {
		if totals[fn] > maxTotal {
			maxTotal = totals[fn]
		}
	}

	labelW := 12
	barMax := innerW - labelW - 10
	if barMax < 1 {
		barMax = 1
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	numStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for _, fn := range functions {
		if counts[fn] == 0 {
			continue
		}
		barLen := 0
		if maxTotal > 0 {
			barLen = int(totals[fn] / maxTotal * float64(barMax))
		}
		barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.FunctionColor(fn)))
		fmt.Fprintf(&b, "%s %s %s\n",
			nameStyle.Render(fmt.Sprintf("%-*s", labelW, string(fn))),
			barStyle.Render(strings.Repeat("█", barLen)),
			numStyle.Render(fmt.Sprintf("%d · %s", counts[fn], cli.FormatMoneyCompact(totals[fn]))))
	}
	return strings.TrimRight(b.String(), "\n")
}
