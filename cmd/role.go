package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
)

var (
	flagRoleStart    string
	flagRoleLocation string
	flagRoleTier     string
	flagRoleSalary   float64
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Edit hires on the timeline",
}

var roleAddCmd = &cobra.Command{
	Use:   "add <role-key>",
	Short: "Place a hire on the timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoleAdd,
}

var roleRemoveCmd = &cobra.Command{
	Use:     "remove <number>",
	Aliases: []string{"rm"},
	Short:   "Remove a hire (number from `headway roles`)",
	Args:    cobra.ExactArgs(1),
	RunE:    runRoleRemove,
}

var roleMoveCmd = &cobra.Command{
	Use:   "move <number> <month>",
	Short: "Move a hire's start month (YYYY-MM or +N/-N months)",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoleMove,
}

var roleSalaryCmd = &cobra.Command{
	Use:   "salary <number> <amount>",
	Short: "Set a custom annual salary for a hire",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoleSalary,
}

var roleLocationCmd = &cobra.Command{
	Use:   "location <number> <location-key>",
	Short: "Move a hire to another location, re-pricing from the band",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoleLocation,
}

var roleTierCmd = &cobra.Command{
	Use:   "tier <number> <min|default|max>",
	Short: "Re-price a hire at a band point, clearing any custom salary",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoleTier,
}

func init() {
	roleAddCmd.Flags().StringVar(&flagRoleStart, "start", "", "Start month, YYYY-MM (default: next month)")
	roleAddCmd.Flags().StringVar(&flagRoleLocation, "location", "", "Location key (default: scenario default)")
	roleAddCmd.Flags().StringVar(&flagRoleTier, "tier", "", "Rate tier: min, default, or max")
	roleAddCmd.Flags().Float64Var(&flagRoleSalary, "salary", 0, "Custom annual salary overriding the band")

	roleCmd.AddCommand(roleAddCmd)
	roleCmd.AddCommand(roleRemoveCmd)
	roleCmd.AddCommand(roleMoveCmd)
	roleCmd.AddCommand(roleSalaryCmd)
	roleCmd.AddCommand(roleLocationCmd)
	roleCmd.AddCommand(roleTierCmd)
	rootCmd.AddCommand(roleCmd)
}

func runRoleAdd(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}
	s, _, err := targetScenario(&st)
	if err != nil {
		return err
	}

	key := catalog.RoleKey(strings.ToUpper(args[0]))
	role, ok := catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown role %q (see `headway catalog`)", args[0])
	}

	startKey := month.Key(month.Add(month.CurrentStart(), 1))
	if flagRoleStart != "" {
		if _, err := month.Parse(flagRoleStart); err != nil {
			return fmt.Errorf("bad month %q, want YYYY-MM", flagRoleStart)
		}
		startKey = flagRoleStart
	}

	pr := s.AddRole(key, startKey)
	if pr == nil {
		return fmt.Errorf("role %q has no salary band at %s", args[0], s.DefaultLocation)
	}

	if flagRoleLocation != "" {
		loc := catalog.LocationKey(strings.ToUpper(flagRoleLocation))
		if !s.SetRoleLocation(pr.ID, loc) {
			return fmt.Errorf("unknown location %q", flagRoleLocation)
		}
	}
	if flagRoleTier != "" {
		tier := plan.RateTier(strings.ToLower(flagRoleTier))
		switch tier {
		case plan.TierMin, plan.TierDefault, plan.TierMax:
		default:
			return fmt.Errorf("bad tier %q, want min, default, or max", flagRoleTier)
		}
		s.SetRoleTier(pr.ID, tier)
	}
	if flagRoleSalary > 0 {
		s.SetRoleSalary(pr.ID, flagRoleSalary)
	}

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  Added %s starting %s at %s (%s).\n",
		role.Name, month.LabelKey(pr.StartMonth),
		cli.FormatMoney(pr.Salary), catalog.LocationLabel(pr.Location))
	return nil
}

func runRoleRemove(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}
	s, _, err := targetScenario(&st)
	if err != nil {
		return err
	}

	pr, err := roleByNumber(s, args[0])
	if err != nil {
		return err
	}
	name := roleName(pr.Role)
	s.RemoveRole(pr.ID)

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  Removed %s.\n", name)
	return nil
}

func runRoleMove(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}
	s, _, err := targetScenario(&st)
	if err != nil {
		return err
	}

	pr, err := roleByNumber(s, args[0])
	if err != nil {
		return err
	}

	target := args[1]
	if strings.HasPrefix(target, "+") || strings.HasPrefix(target, "-") {
		delta, err := strconv.Atoi(target)
		if err != nil {
			return fmt.Errorf("bad offset %q", target)
		}
		start, err := month.Parse(pr.StartMonth)
		if err != nil {
			return fmt.Errorf("parsing start month: %w", err)
		}
		target = month.Key(month.Add(start, delta))
	} else if _, err := month.Parse(target); err != nil {
		return fmt.Errorf("bad month %q, want YYYY-MM or +N/-N", args[1])
	}

	s.MoveRole(pr.ID, target)

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  %s now starts %s.\n", roleName(pr.Role), month.LabelKey(target))
	return nil
}

func runRoleSalary(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}
	s, _, err := targetScenario(&st)
	if err != nil {
		return err
	}

	pr, err := roleByNumber(s, args[0])
	if err != nil {
		return err
	}

	amount, err := strconv.ParseFloat(strings.TrimPrefix(args[1], "$"), 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("bad salary %q", args[1])
	}
	s.SetRoleSalary(pr.ID, amount)

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  %s salary set to %s (custom).\n", roleName(pr.Role), cli.FormatMoney(amount))
	return nil
}

func runRoleLocation(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}
	s, _, err := targetScenario(&st)
	if err != nil {
		return err
	}

	pr, err := roleByNumber(s, args[0])
	if err != nil {
		return err
	}

	loc := catalog.LocationKey(strings.ToUpper(args[1]))
	if !s.SetRoleLocation(pr.ID, loc) {
		return fmt.Errorf("unknown location %q", args[1])
	}

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  %s moved to %s at %s.\n",
		roleName(pr.Role), catalog.LocationLabel(loc), cli.FormatMoney(pr.Salary))
	return nil
}

func runRoleTier(_ *cobra.Command, args []string) error {
	cfg, st, err := loadPlan()
	if err != nil {
		return err
	}
	s, _, err := targetScenario(&st)
	if err != nil {
		return err
	}

	pr, err := roleByNumber(s, args[0])
	if err != nil {
		return err
	}

	tier := plan.RateTier(strings.ToLower(args[1]))
	switch tier {
	case plan.TierMin, plan.TierDefault, plan.TierMax:
	default:
		return fmt.Errorf("bad tier %q, want min, default, or max", args[1])
	}
	s.SetRoleTier(pr.ID, tier)

	if err := savePlan(cfg, st); err != nil {
		return err
	}
	fmt.Printf("  %s re-priced at %s: %s.\n", roleName(pr.Role), tier, cli.FormatMoney(pr.Salary))
	return nil
}

func roleByNumber(s *plan.Scenario, arg string) (*plan.PlacedRole, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(s.PlacedRoles) {
		return nil, fmt.Errorf("no hire %q (have %d, see `headway roles`)", arg, len(s.PlacedRoles))
	}
	return &s.PlacedRoles[n-1], nil
}

func roleName(key catalog.RoleKey) string {
	if role, ok := catalog.Lookup(key); ok {
		return role.Name
	}
	return string(key)
}
