// Package tui provides the interactive Bubble Tea planner for headway.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/headwayhq/headway/internal/codec"
	"github.com/headwayhq/headway/internal/config"
	"github.com/headwayhq/headway/internal/debounce"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/project"
	"github.com/headwayhq/headway/internal/store"
	"github.com/headwayhq/headway/internal/tui/components"
	"github.com/headwayhq/headway/internal/tui/theme"
)

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5

	saveDelay = 500 * time.Millisecond
)

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config
	st  plan.State
	db  *store.Store

	// Debounced persistence: every edit reschedules, quit flushes.
	saver *debounce.Debouncer

	// Cached share link; invalidated on every edit.
	shareLink  string
	shareStale bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	scen     scenariosState
	timeline timelineState
	assume   assumptionsState

	// Add-hire form (huh), shown over the timeline tab
	addForm *huh.Form
	addVals *addHireValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool
}

// NewApp creates the planner model. db may be nil (state is then kept in
// memory only for the session).
func NewApp(cfg config.Config, st plan.State, db *store.Store) App {
	theme.SetActive(cfg.Appearance.Theme)

	a := App{
		cfg:        cfg,
		st:         st,
		db:         db,
		saver:      debounce.New(saveDelay),
		shareStale: true,
		needSetup:  !config.Exists(),
	}
	if a.needSetup {
		a.setupVals = newSetupValues(cfg)
		a.setupForm = newSetupForm(a.setupVals)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.setupForm != nil {
		return a.setupForm.Init()
	}
	return nil
}

func (a App) active() *plan.Scenario {
	return a.st.Active()
}

func (a App) horizon() int {
	h := a.cfg.General.HorizonMonths
	if h <= 0 {
		h = 36
	}
	return h
}

func (a App) runway() project.RunwayResult {
	s := a.active()
	return project.Runway(
		s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
		s.OtherCosts, s.OtherCostsGrowthRate,
	)
}

func (a App) balances() []project.MonthlyBalance {
	s := a.active()
	return project.CashBalanceTimeline(
		s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
		s.OtherCosts, s.OtherCostsGrowthRate,
		month.Range(month.CurrentStart(), a.horizon()),
	)
}

// dirty schedules a debounced save and invalidates the cached share link.
// Called after every state mutation.
func (a *App) dirty() {
	a.shareStale = true
	if a.db == nil {
		return
	}
	snap := a.st.Clone()
	db := a.db
	a.saver.Schedule(func() {
		_ = db.SaveState(snap)
	})
}

func (a *App) share() string {
	if a.shareStale {
		link, err := codec.EncodeScenariosState(a.st)
		if err != nil {
			link = ""
		}
		a.shareLink = link
		a.shareStale = false
	}
	return a.shareLink
}

func (a App) quit() (tea.Model, tea.Cmd) {
	a.saver.Flush()
	if a.db != nil {
		_ = a.db.SaveState(a.st)
	}
	return a, tea.Quit
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.addForm != nil {
			a.addForm = a.addForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a.quit()
		}

		// First-run setup intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Add-hire form intercepts all keys
		if a.addForm != nil {
			return a.updateAddForm(msg)
		}

		// Text-input modes intercept keys
		if a.scen.renaming {
			return a.updateRename(msg)
		}
		if a.assume.editing {
			return a.updateAssumptionInput(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a.quit()
		}

		// Per-tab keybindings first, so tab-local keys win over globals.
		switch a.activeTab {
		case tabTimeline:
			if m, cmd, handled := a.updateTimelineKeys(key); handled {
				return m, cmd
			}
		case tabScenarios:
			if m, cmd, handled := a.updateScenariosKeys(key); handled {
				return m, cmd
			}
		case tabAssumptions:
			if m, cmd, handled := a.updateAssumptionsKeys(key); handled {
				return m, cmd
			}
		}

		// Tab navigation
		switch key {
		case "o":
			a.activeTab = tabOverview
		case "t":
			a.activeTab = tabTimeline
		case "s":
			a.activeTab = tabScenarios
		case "a":
			a.activeTab = tabAssumptions
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case "1", "2", "3", "4", "5":
			idx := int(key[0] - '1')
			a.st.Switch(idx)
			a.dirty()
		}
		return a, nil
	}

	// Forward unhandled messages to active forms (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.addForm != nil {
		return a.updateAddForm(msg)
	}

	return a, nil
}

const (
	tabOverview = iota
	tabTimeline
	tabScenarios
	tabAssumptions
)

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.addForm != nil {
		return a.addForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  headway needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Blue).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o t s a", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"1-5", "Switch scenario"},
		{"j k", "Navigate lists"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Timeline"))
	b.WriteString("\n")
	timelineBindings := []struct{ key, desc string }{
		{"n", "Add hire"},
		{"x", "Remove hire"},
		{"c", "Duplicate hire"},
		{"h l", "Move hire a month"},
		{"m", "Cycle rate tier"},
		{"L", "Cycle location"},
	}
	for _, bind := range timelineBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Scenarios"))
	b.WriteString("\n")
	scenBindings := []struct{ key, desc string }{
		{"n", "New scenario (duplicates active)"},
		{"d", "Delete scenario"},
		{"r", "Rename scenario"},
		{"Enter", "Make active"},
	}
	for _, bind := range scenBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	statusBar := components.RenderStatusBar(w, a.st.Label(a.st.ActiveIndex), a.saver.Pending())

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTimeline:
		content = a.renderTimelineTab(cw, contentH)
	case tabScenarios:
		content = a.renderScenariosTab(cw)
	case tabAssumptions:
		content = a.renderAssumptionsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}
