package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
	"github.com/headwayhq/headway/internal/project"
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Manage what-if scenarios",
	RunE:  runScenarioList,
}

var scenarioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenarios with runway at a glance",
	RunE:  runScenarioList,
}

var scenarioAddCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Duplicate the active scenario as a new one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScenarioAdd,
}

var scenarioSwitchCmd = &cobra.Command{
	Use:   "switch <number>",
	Short: "Make a scenario active",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioSwitch,
}

var scenarioDeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a scenario",
	Args:  cobra.ExactArgs(1),
	RunE:  runScenarioDelete,
}

var scenarioRenameCmd = &cobra.Command{
	Use:   "rename <number> <name>",
	Short: "Rename a scenario",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runScenarioRename,
}

func init() {
	scenarioCmd.AddCommand(scenarioListCmd)
	scenarioCmd.AddCommand(scenarioAddCmd)
	scenarioCmd.AddCommand(scenarioSwitchCmd)
	scenarioCmd.AddCommand(scenarioDeleteCmd)
	scenarioCmd.AddCommand(scenarioRenameCmd)
	rootCmd.AddCommand(scenarioCmd)
}

func runScenarioList(_ *cobra.Command, _ []string) error {
	_, st, err := loadPlan()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SCENARIOS  %d/%d", len(st.Scenarios), plan.MaxScenarios)))
	fmt.Println()

	activeBurn := 0.0
	if active := st.Active(); active != nil {
		activeBurn = monthlyBurn(*active)
	}

	table := cli.Table{
		Headers: []string{"#", "Name", "Hires", "MRR", "Burn vs active", "Runway", "Run-out"},
	}
	for i, s := range st.Scenarios {
		marker := " "
		if i == st.ActiveIndex {
			marker = "●"
		}

		runway := "∞"
		runOut := "—"
		rw := project.Runway(
			s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
			s.OtherCosts, s.OtherCostsGrowthRate,
		)
		if rw.RunOutMonth != "" {
			if monthsLeft, err := month.Index(rw.RunOutMonth, month.CurrentStart()); err == nil {
				runway = cli.FormatRunway(monthsLeft)
			}
			runOut = rw.RunOutLabel
		}

		burnDelta := "—"
		if i != st.ActiveIndex {
			burnDelta = cli.FormatDelta(monthlyBurn(s), activeBurn)
		}

		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%s %d", marker, i+1),
			st.Label(i),
			fmt.Sprintf("%d", len(s.PlacedRoles)),
			cli.FormatMoneyCompact(s.MRR),
			burnDelta,
			runway,
			runOut,
		})
	}

	fmt.Print(cli.RenderTable(table))
	return nil
}

func monthlyBurn(s plan.Scenario) float64 {
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

func runScenarioAdd(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}

	if !st.Add() {
		return fmt.Errorf("scenario limit reached (%d)", plan.MaxScenarios)
	}
	if len(args) > 0 {
		st.Rename(st.ActiveIndex, args[0])
	}

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  Added %q as scenario %d (now active).\n", st.Label(st.ActiveIndex), st.ActiveIndex+1)
	return nil
}

func runScenarioSwitch(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}

	idx, err := scenarioNumber(args[0], &st)
	if err != nil {
		return err
	}
	st.Switch(idx)

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  Active scenario: %s\n", st.Label(st.ActiveIndex))
	return nil
}

func runScenarioDelete(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}

	idx, err := scenarioNumber(args[0], &st)
	if err != nil {
		return err
	}
	name := st.Label(idx)
	if !st.Delete(idx) {
		return fmt.Errorf("cannot delete the last remaining scenario")
	}

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  Deleted %q.\n", name)
	return nil
}

func runScenarioRename(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}

	idx, err := scenarioNumber(args[0], &st)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		return fmt.Errorf("name must not be empty")
	}
	st.Rename(idx, name)

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  Scenario %d is now %q.\n", idx+1, name)
	return nil
}

func scenarioNumber(arg string, st *plan.State) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(st.Scenarios) {
		return 0, fmt.Errorf("no scenario %q (have %d)", arg, len(st.Scenarios))
	}
	return n - 1, nil
}
