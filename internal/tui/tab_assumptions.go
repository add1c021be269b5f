package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/tui/components"
	"github.com/headwayhq/headway/internal/tui/theme"
)

// Assumption fields, in display order. Money and percent fields open a text
// input; default location/tier cycle in place.
const (
	fieldFunding = iota
	fieldMRR
	fieldMRRGrowth
	fieldOtherCosts
	fieldOtherCostsGrowth
	fieldDefaultLocation
	fieldDefaultTier
	fieldCount
)

type assumptionsState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func (a App) updateAssumptionsKeys(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.assume.cursor < fieldCount-1 {
			a.assume.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.assume.cursor > 0 {
			a.assume.cursor--
		}
		return a, nil, true
	case "enter":
		s := a.active()
		switch a.assume.cursor {
		case fieldDefaultLocation:
			loc := nextLocation(s.DefaultLocation)
			a.st.UpdateActive(plan.ScenarioUpdate{DefaultLocation: &loc})
			a.dirty()
		case fieldDefaultTier:
			tier := nextDefaultTier(s.DefaultRateTier)
			a.st.UpdateActive(plan.ScenarioUpdate{DefaultRateTier: &tier})
			a.dirty()
		default:
			ti := textinput.New()
			ti.SetValue(assumptionEditValue(s, a.assume.cursor))
			ti.CharLimit = 16
			ti.Width = 16
			ti.Focus()
			a.assume.input = ti
			a.assume.editing = true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) updateAssumptionInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.applyAssumptionEdit(strings.TrimSpace(a.assume.input.Value()))
		a.assume.editing = false
		return a, nil
	case "esc":
		a.assume.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.assume.input, cmd = a.assume.input.Update(msg)
	return a, cmd
}

func (a *App) applyAssumptionEdit(raw string) {
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.TrimSuffix(raw, "%")
	raw = strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return
	}

	var u plan.ScenarioUpdate
	switch a.assume.cursor {
	case fieldFunding:
		u.FundingAmount = &v
	case fieldMRR:
		u.MRR = &v
	case fieldMRRGrowth:
		// Entered as whole percent, stored as a fraction.
		f := v / 100
		u.MRRGrowthRate = &f
	case fieldOtherCosts:
		u.OtherCosts = &v
	case fieldOtherCostsGrowth:
		f := v / 100
		u.OtherCostsGrowthRate = &f
	default:
		return
	}
	a.st.UpdateActive(u)
	a.dirty()
}

// assumptionEditValue seeds the input with the current value in the same
// shape the user types it back (whole percents, no separators).
func assumptionEditValue(s *plan.Scenario, field int) string {
	switch field {
	case fieldFunding:
		return strconv.FormatFloat(s.FundingAmount, 'f', -1, 64)
	case fieldMRR:
		return strconv.FormatFloat(s.MRR, 'f', -1, 64)
	case fieldMRRGrowth:
		return strconv.FormatFloat(s.MRRGrowthRate*100, 'f', -1, 64)
	case fieldOtherCosts:
		return strconv.FormatFloat(s.OtherCosts, 'f', -1, 64)
	case fieldOtherCostsGrowth:
		return strconv.FormatFloat(s.OtherCostsGrowthRate*100, 'f', -1, 64)
	}
	return ""
}

func nextDefaultTier(t plan.RateTier) plan.RateTier {
	switch t {
	case plan.TierMin:
		return plan.TierDefault
	case plan.TierDefault:
		return plan.TierMax
	default:
		return plan.TierMin
	}
}

func (a App) renderAssumptionsTab(cw int) string {
	t := theme.Active
	s := a.active()

	labels := [fieldCount]string{
		"Funding amount",
		"MRR",
		"MRR growth / month",
		"Other monthly costs",
		"Other costs growth / month",
		"Default hire location",
		"Default rate tier",
	}
	values := [fieldCount]string{
		cli.FormatMoney(s.FundingAmount),
		cli.FormatMoney(s.MRR),
		cli.FormatGrowth(s.MRRGrowthRate),
		cli.FormatMoney(s.OtherCosts),
		cli.FormatGrowth(s.OtherCostsGrowthRate),
		catalog.LocationLabel(s.DefaultLocation),
		tierLabel(s.DefaultRateTier),
	}

	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(t.Accent)

	var list strings.Builder
	for i := 0; i < fieldCount; i++ {
		val := valStyle.Render(values[i])
		if a.assume.editing && i == a.assume.cursor {
			val = a.assume.input.View()
		}

		line := fmt.Sprintf(" %-28s %s", labels[i], val)
		if i == a.assume.cursor {
			list.WriteString(selStyle.Render("▸" + line))
		} else {
			list.WriteString(rowStyle.Render(" " + line))
		}
		list.WriteString("\n")
	}
	list.WriteString(dimStyle.Render("[enter] edit value · cycles location and tier"))

	var b strings.Builder
	b.WriteString(components.ContentCard(
		"Assumptions — "+a.st.Label(a.st.ActiveIndex),
		strings.TrimRight(list.String(), "\n"),
		cw,
	))

	// What the defaults resolve to for a sample role, so tier changes have
	// visible feedback.
	if role, ok := catalog.Lookup(catalog.RoleOrder[0]); ok {
		if band, ok := role.Salary[s.DefaultLocation]; ok {
			b.WriteString("\n")
			b.WriteString(components.ContentCard(
				"Band preview",
				dimStyle.Render(fmt.Sprintf("%s @ %s: %s / %s / %s",
					role.Name,
					catalog.LocationLabel(s.DefaultLocation),
					cli.FormatMoney(band.Min),
					cli.FormatMoney(band.Default),
					cli.FormatMoney(band.Max),
				)),
				cw,
			))
		}
	}

	return b.String()
}

func tierLabel(t plan.RateTier) string {
	switch t {
	case plan.TierMin:
		return "Below market"
	case plan.TierMax:
		return "Above market"
	default:
		return "Mid market"
	}
}
