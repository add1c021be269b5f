package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/config"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/tui/theme"
)

// setupValues backs the first-run form. Numbers are strings because huh
// inputs edit text; they are parsed on completion.
type setupValues struct {
	funding     string
	mrr         string
	mrrGrowth   string
	otherCosts  string
	otherGrowth string
	location    string
	tier        string
	themeName   string
}

func newSetupValues(cfg config.Config) *setupValues {
	return &setupValues{
		funding:     formatSetupNumber(cfg.Defaults.FundingAmount),
		mrr:         formatSetupNumber(cfg.Defaults.MRR),
		mrrGrowth:   formatSetupNumber(cfg.Defaults.MRRGrowthPct),
		otherCosts:  formatSetupNumber(cfg.Defaults.OtherCosts),
		otherGrowth: formatSetupNumber(cfg.Defaults.OtherCostsGrowthPct),
		location:    cfg.Defaults.Location,
		tier:        cfg.Defaults.RateTier,
		themeName:   cfg.Appearance.Theme,
	}
}

func formatSetupNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func validateSetupNumber(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func newSetupForm(v *setupValues) *huh.Form {
	locOpts := make([]huh.Option[string], 0, len(catalog.LocationOrder))
	for _, loc := range catalog.LocationOrder {
		locOpts = append(locOpts, huh.NewOption(catalog.LocationLabel(loc), string(loc)))
	}

	tierOpts := []huh.Option[string]{
		huh.NewOption("Below market", string(plan.TierMin)),
		huh.NewOption("Mid market", string(plan.TierDefault)),
		huh.NewOption("Above market", string(plan.TierMax)),
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to headway").
				Description("A few starting assumptions. Everything can be changed later from the Assumptions tab."),

			huh.NewInput().
				Title("Funding in the bank ($)").
				Value(&v.funding).
				Validate(validateSetupNumber),

			huh.NewInput().
				Title("Current MRR ($)").
				Value(&v.mrr).
				Validate(validateSetupNumber),

			huh.NewInput().
				Title("MRR growth (% / month)").
				Value(&v.mrrGrowth).
				Validate(validateSetupNumber),

			huh.NewInput().
				Title("Other monthly costs ($)").
				Value(&v.otherCosts).
				Validate(validateSetupNumber),

			huh.NewInput().
				Title("Other costs growth (% / month)").
				Value(&v.otherGrowth).
				Validate(validateSetupNumber),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default hire location").
				Options(locOpts...).
				Value(&v.location),

			huh.NewSelect[string]().
				Title("Default rate tier").
				Options(tierOpts...).
				Value(&v.tier),

			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOpts...).
				Value(&v.themeName),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.applySetup()
		a.setupForm = nil
		a.setupVals = nil
		a.needSetup = false
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		// Keep the built-in defaults and move on.
		a.setupForm = nil
		a.setupVals = nil
		a.needSetup = false
		return a, nil
	}

	return a, cmd
}

func (a *App) applySetup() {
	v := a.setupVals
	if v == nil {
		return
	}

	parse := func(s string) float64 {
		f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f
	}

	a.cfg.Defaults.FundingAmount = parse(v.funding)
	a.cfg.Defaults.MRR = parse(v.mrr)
	a.cfg.Defaults.MRRGrowthPct = parse(v.mrrGrowth)
	a.cfg.Defaults.OtherCosts = parse(v.otherCosts)
	a.cfg.Defaults.OtherCostsGrowthPct = parse(v.otherGrowth)
	a.cfg.Defaults.Location = v.location
	a.cfg.Defaults.RateTier = v.tier
	a.cfg.Appearance.Theme = v.themeName

	theme.SetActive(v.themeName)
	_ = config.Save(a.cfg)

	// Seed the current scenario from the freshly chosen defaults, but only
	// while it is still untouched.
	if s := a.st.Active(); s != nil && len(s.PlacedRoles) == 0 {
		*s = config.DefaultScenario(a.cfg)
	}
	a.dirty()
}
