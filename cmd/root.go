package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/config"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/store"
)

var (
	flagScenario int
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "headway",
	Short: "Headcount and runway planner",
	Long:  "Plan hires, project cash balance, and see how long your runway lasts.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&flagScenario, "scenario", "s", 0, "Scenario number to operate on (1-based, 0 = active)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadPlan is the shared state loading path used by all commands. Falls back
// to a fresh default state when nothing has been saved yet.
func loadPlan() (config.Config, plan.State, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, plan.State{}, err
	}

	db, err := store.Open(config.StatePath(cfg))
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(os.Stderr, "  State unavailable (%v), starting fresh\n", err)
		}
		return cfg, config.DefaultState(cfg), nil
	}
	defer db.Close()

	st, err := db.LoadState()
	if err != nil {
		return cfg, plan.State{}, fmt.Errorf("loading state: %w", err)
	}
	if st == nil {
		return cfg, config.DefaultState(cfg), nil
	}
	return cfg, *st, nil
}

// savePlan persists the state, creating the database if needed.
func savePlan(cfg config.Config, st plan.State) error {
	db, err := store.Open(config.StatePath(cfg))
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer db.Close()

	if err := db.SaveState(st); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// targetScenario resolves --scenario against the state. 0 means the active
// scenario; anything else is 1-based.
func targetScenario(st *plan.State) (*plan.Scenario, int, error) {
	if flagScenario == 0 {
		return st.Active(), st.ActiveIndex, nil
	}
	idx := flagScenario - 1
	if idx < 0 || idx >= len(st.Scenarios) {
		return nil, 0, fmt.Errorf("no scenario %d (have %d)", flagScenario, len(st.Scenarios))
	}
	return &st.Scenarios[idx], idx, nil
}
