package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/project"
	"github.com/headwayhq/headway/internal/tui/components"
	"github.com/headwayhq/headway/internal/tui/theme"
)

type scenariosState struct {
	cursor      int
	renaming    bool
	renameInput textinput.Model
}

func (a App) updateScenariosKeys(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.st.Scenarios)

	switch key {
	case "j", "down":
		if a.scen.cursor < n-1 {
			a.scen.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.scen.cursor > 0 {
			a.scen.cursor--
		}
		return a, nil, true
	case "enter":
		a.st.Switch(a.scen.cursor)
		a.dirty()
		return a, nil, true
	case "n":
		if a.st.Add() {
			a.scen.cursor = a.st.ActiveIndex
			a.dirty()
		}
		return a, nil, true
	case "d":
		if a.st.Delete(a.scen.cursor) {
			if a.scen.cursor >= len(a.st.Scenarios) && a.scen.cursor > 0 {
				a.scen.cursor--
			}
			a.dirty()
		}
		return a, nil, true
	case "r":
		if a.scen.cursor < n {
			ti := textinput.New()
			ti.SetValue(a.st.Label(a.scen.cursor))
			ti.CharLimit = 40
			ti.Focus()
			a.scen.renameInput = ti
			a.scen.renaming = true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(a.scen.renameInput.Value())
		if name != "" {
			a.st.Rename(a.scen.cursor, name)
			a.dirty()
		}
		a.scen.renaming = false
		return a, nil
	case "esc":
		a.scen.renaming = false
		return a, nil
	}

	var cmd tea.Cmd
	a.scen.renameInput, cmd = a.scen.renameInput.Update(msg)
	return a, cmd
}

func (a App) renderScenariosTab(cw int) string {
	t := theme.Active
	var b strings.Builder

	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var list strings.Builder
	for i, s := range a.st.Scenarios {
		marker := "  "
		if i == a.st.ActiveIndex {
			marker = accentStyle.Render("● ")
		}

		name := a.st.Label(i)
		if a.scen.renaming && i == a.scen.cursor {
			name = a.scen.renameInput.View()
		}

		runwayStr := "∞"
		rw := scenarioRunway(s)
		if rw.RunOutMonth != "" {
			if idx, err := month.Index(rw.RunOutMonth, month.CurrentStart()); err == nil {
				runwayStr = cli.FormatRunway(idx)
			}
		}

		line := fmt.Sprintf("%s%-28s %3d hires   runway %s   burn %s/mo",
			marker,
			truncStr(name, 28),
			len(s.PlacedRoles),
			runwayStr,
			cli.FormatMoneyCompact(firstMonthBurn(s)),
		)

		if i == a.scen.cursor {
			list.WriteString(selStyle.Render("▸ " + line))
		} else {
			list.WriteString(rowStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}

	hint := "[enter] make active  [n] new  [d] delete  [r] rename"
	if !a.st.CanAdd() {
		hint = fmt.Sprintf("scenario limit reached (%d)  ·  [enter] make active  [d] delete  [r] rename", plan.MaxScenarios)
	}
	list.WriteString(dimStyle.Render(hint))

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Scenarios (%d/%d)", len(a.st.Scenarios), plan.MaxScenarios),
		strings.TrimRight(list.String(), "\n"),
		cw,
	))

	// Side-by-side comparison once there is something to compare.
	if len(a.st.Scenarios) > 1 {
		b.WriteString("\n")
		b.WriteString(a.renderScenarioComparison(cw))
	}

	return b.String()
}

func scenarioRunway(s plan.Scenario) project.RunwayResult {
	return project.Runway(
		s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
		s.OtherCosts, s.OtherCostsGrowthRate,
	)
}

func firstMonthBurn(s plan.Scenario) float64 {
	balances := project.CashBalanceTimeline(
		s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
		s.OtherCosts, s.OtherCostsGrowthRate,
		month.Range(month.CurrentStart(), 1),
	)
	if len(balances) == 0 {
		return 0
	}
	return balances[0].Burn
}

func (a App) renderScenarioComparison(cw int) string {
	tbl := cli.Table{
		Headers: []string{"Scenario", "Hires", "Burn / mo", "MRR", "Runway", "Run-out"},
	}

	for i, s := range a.st.Scenarios {
		name := a.st.Label(i)
		if i == a.st.ActiveIndex {
			name = "● " + name
		}

		runway := "∞"
		runOut := "—"
		rw := scenarioRunway(s)
		if rw.RunOutMonth != "" {
			if idx, err := month.Index(rw.RunOutMonth, month.CurrentStart()); err == nil {
				runway = cli.FormatRunway(idx)
			}
			runOut = rw.RunOutLabel
		}

		tbl.Rows = append(tbl.Rows, []string{
			truncStr(name, 24),
			fmt.Sprintf("%d", len(s.PlacedRoles)),
			cli.FormatMoneyCompact(firstMonthBurn(s)),
			cli.FormatMoneyCompact(s.MRR),
			runway,
			runOut,
		})
	}

	return components.ContentCard("Comparison", cli.RenderTable(tbl), cw)
}
