package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/tui/components"
	"github.com/headwayhq/headway/internal/tui/theme"
)

type timelineState struct {
	cursor int
}

// sortedRoles returns the active scenario's roles ordered by start month.
// The cursor indexes into this view, not the raw slice.
func (a App) sortedRoles() []plan.PlacedRole {
	s := a.active()
	out := make([]plan.PlacedRole, len(s.PlacedRoles))
	copy(out, s.PlacedRoles)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartMonth != out[j].StartMonth {
			return out[i].StartMonth < out[j].StartMonth
		}
		return string(out[i].Role) < string(out[j].Role)
	})
	return out
}

func (a App) timelineCursorRole() *plan.PlacedRole {
	roles := a.sortedRoles()
	if len(roles) == 0 {
		return nil
	}
	idx := a.timeline.cursor
	if idx >= len(roles) {
		idx = len(roles) - 1
	}
	return a.active().FindRole(roles[idx].ID)
}

func (a App) updateTimelineKeys(key string) (tea.Model, tea.Cmd, bool) {
	s := a.active()
	n := len(s.PlacedRoles)

	switch key {
	case "j", "down":
		if a.timeline.cursor < n-1 {
			a.timeline.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.timeline.cursor > 0 {
			a.timeline.cursor--
		}
		return a, nil, true
	case "n":
		a.addVals = newAddHireValues(s)
		a.addForm = newAddHireForm(a.addVals)
		if a.width > 0 {
			a.addForm = a.addForm.WithWidth(a.width).WithHeight(a.height)
		}
		return a, a.addForm.Init(), true
	case "x":
		if pr := a.timelineCursorRole(); pr != nil {
			s.RemoveRole(pr.ID)
			if a.timeline.cursor >= len(s.PlacedRoles) && a.timeline.cursor > 0 {
				a.timeline.cursor--
			}
			a.dirty()
		}
		return a, nil, true
	case "c":
		if pr := a.timelineCursorRole(); pr != nil {
			s.DuplicateRole(pr.ID)
			a.dirty()
		}
		return a, nil, true
	case "h":
		if pr := a.timelineCursorRole(); pr != nil {
			if start, err := month.Parse(pr.StartMonth); err == nil {
				s.MoveRole(pr.ID, month.Key(month.Add(start, -1)))
				a.dirty()
			}
		}
		return a, nil, true
	case "l":
		if pr := a.timelineCursorRole(); pr != nil {
			if start, err := month.Parse(pr.StartMonth); err == nil {
				s.MoveRole(pr.ID, month.Key(month.Add(start, 1)))
				a.dirty()
			}
		}
		return a, nil, true
	case "m":
		if pr := a.timelineCursorRole(); pr != nil {
			s.SetRoleTier(pr.ID, nextTier(pr.Selection))
			a.dirty()
		}
		return a, nil, true
	case "L":
		if pr := a.timelineCursorRole(); pr != nil {
			s.SetRoleLocation(pr.ID, nextLocation(pr.Location))
			a.dirty()
		}
		return a, nil, true
	}
	return a, nil, false
}

// nextTier cycles min -> default -> max -> min. A custom salary re-enters the
// cycle at min, dropping the hand-edited amount.
func nextTier(sel plan.SalarySelection) plan.RateTier {
	switch sel {
	case plan.SalaryMin:
		return plan.TierDefault
	case plan.SalaryDefault:
		return plan.TierMax
	default:
		return plan.TierMin
	}
}

func nextLocation(loc catalog.LocationKey) catalog.LocationKey {
	for i, l := range catalog.LocationOrder {
		if l == loc {
			return catalog.LocationOrder[(i+1)%len(catalog.LocationOrder)]
		}
	}
	return catalog.LocationOrder[0]
}

func (a App) renderTimelineTab(cw, contentH int) string {
	t := theme.Active
	roles := a.sortedRoles()
	var b strings.Builder

	// Hire list
	var list strings.Builder
	if len(roles) == 0 {
		list.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("no hires placed — press n to add one"))
	} else {
		now := month.CurrentStart()
		nowKey := month.Key(now)

		selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
		rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
		hiredStyle := lipgloss.NewStyle().Foreground(t.Green)

		cursor := a.timeline.cursor
		if cursor >= len(roles) {
			cursor = len(roles) - 1
		}

		for i, pr := range roles {
			name := string(pr.Role)
			glyph := " "
			if role, ok := catalog.Lookup(pr.Role); ok {
				name = role.Name
				glyph = catalog.FunctionGlyph(role.Function)
			}

			status := dimStyle.Render("planned")
			if pr.StartMonth <= nowKey {
				status = hiredStyle.Render("hired")
			}

			line := fmt.Sprintf(" %s %-26s %-9s %-12s %10s  %-7s %s",
				glyph,
				truncStr(name, 26),
				month.LabelKey(pr.StartMonth),
				truncStr(catalog.LocationLabel(pr.Location), 12),
				cli.FormatMoney(pr.Salary),
				pr.Selection,
				status,
			)

			if i == cursor {
				list.WriteString(selStyle.Render("▸" + line))
			} else {
				list.WriteString(rowStyle.Render(" " + line))
			}
			list.WriteString("\n")
		}
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Hiring Timeline (%d)", len(roles)),
		strings.TrimRight(list.String(), "\n"),
		cw,
	))
	b.WriteString("\n")

	// Monthly projection under the list
	balances := a.balances()
	if len(balances) > 0 {
		listH := len(roles) + 3
		chartH := contentH - listH - 4
		if chartH > 9 {
			chartH = 9
		}
		if chartH >= 4 {
			vals := make([]float64, len(balances))
			labels := make([]string, len(balances))
			for i, mb := range balances {
				vals[i] = mb.Balance
				labels[i] = month.LabelKey(mb.Month)
			}
			b.WriteString(components.ContentCard(
				"Cash Balance",
				components.BalanceChart(vals, labels, components.CardInnerWidth(cw), chartH),
				cw,
			))
		}
	}

	return b.String()
}

// ─── Add-hire form ──────────────────────────────────────────────

type addHireValues struct {
	roleKey     string
	location    string
	tier        string
	monthOffset string
}

func newAddHireValues(s *plan.Scenario) *addHireValues {
	return &addHireValues{
		roleKey:     string(catalog.RoleOrder[0]),
		location:    string(s.DefaultLocation),
		tier:        string(s.DefaultRateTier),
		monthOffset: "1",
	}
}

func newAddHireForm(v *addHireValues) *huh.Form {
	roleOpts := make([]huh.Option[string], 0, len(catalog.RoleOrder))
	for _, key := range catalog.RoleOrder {
		role, ok := catalog.Lookup(key)
		if !ok {
			continue
		}
		roleOpts = append(roleOpts, huh.NewOption(role.Name, string(key)))
	}

	locOpts := make([]huh.Option[string], 0, len(catalog.LocationOrder))
	for _, loc := range catalog.LocationOrder {
		locOpts = append(locOpts, huh.NewOption(catalog.LocationLabel(loc), string(loc)))
	}

	tierOpts := []huh.Option[string]{
		huh.NewOption("Below market", string(plan.TierMin)),
		huh.NewOption("Mid market", string(plan.TierDefault)),
		huh.NewOption("Above market", string(plan.TierMax)),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Role").
				Options(roleOpts...).
				Value(&v.roleKey),

			huh.NewSelect[string]().
				Title("Location").
				Options(locOpts...).
				Value(&v.location),

			huh.NewSelect[string]().
				Title("Rate tier").
				Options(tierOpts...).
				Value(&v.tier),

			huh.NewInput().
				Title("Start (months from now)").
				Value(&v.monthOffset).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("enter a number of months")
					}
					if n < 0 || n > 120 {
						return fmt.Errorf("enter 0 to 120")
					}
					return nil
				}),
		),
	)
}

func (a App) updateAddForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.addForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.addForm = f
	}

	if a.addForm.State == huh.StateCompleted {
		a.applyAddHire()
		a.addForm = nil
		a.addVals = nil
		return a, nil
	}

	if a.addForm.State == huh.StateAborted {
		a.addForm = nil
		a.addVals = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) applyAddHire() {
	v := a.addVals
	if v == nil {
		return
	}

	offset, err := strconv.Atoi(strings.TrimSpace(v.monthOffset))
	if err != nil {
		offset = 1
	}
	startKey := month.Key(month.Add(month.CurrentStart(), offset))

	s := a.active()
	pr := s.AddRole(catalog.RoleKey(v.roleKey), startKey)
	if pr == nil {
		return
	}
	if loc := catalog.LocationKey(v.location); loc != s.DefaultLocation {
		s.SetRoleLocation(pr.ID, loc)
	}
	if tier := plan.RateTier(v.tier); tier != s.DefaultRateTier {
		s.SetRoleTier(pr.ID, tier)
	}
	a.dirty()
}
