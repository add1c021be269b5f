package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Hires placed on the timeline",
	RunE:  runRoles,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Role catalog with salary bands per location",
	RunE:  runCatalog,
}

func init() {
	rootCmd.AddCommand(rolesCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runRoles(_ *cobra.Command, _ []string) error {
	_, st, err := loadPlan()
	if err != nil {
		return err
	}

	s, idx, err := targetScenario(&st)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("HIRES  %s", st.Label(idx))))
	fmt.Println()

	if len(s.PlacedRoles) == 0 {
		fmt.Println("  No hires yet. Add one with `headway role add`.")
		return nil
	}

	table := cli.Table{
		Headers: []string{"#", "Role", "Start", "Location", "Salary", "Tier"},
	}
	for i, pr := range s.PlacedRoles {
		name := string(pr.Role)
		if role, ok := catalog.Lookup(pr.Role); ok {
			name = role.Name
		}
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", i+1),
			name,
			month.LabelKey(pr.StartMonth),
			catalog.LocationLabel(pr.Location),
			cli.FormatMoney(pr.Salary),
			string(pr.Selection),
		})
	}
	table.Rows = append(table.Rows,
		[]string{"---"},
		[]string{"", "TOTAL ANNUAL", "", "", cli.FormatMoney(totalAnnualSalary(s.PlacedRoles)), ""},
	)

	fmt.Print(cli.RenderTable(table))
	return nil
}

func runCatalog(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println(cli.RenderTitle("ROLE CATALOG"))
	fmt.Println()

	headers := []string{"Role", "Key"}
	for _, loc := range catalog.LocationOrder {
		headers = append(headers, catalog.LocationLabel(loc))
	}

	table := cli.Table{Headers: headers}
	prevFn := catalog.Function("")
	for _, role := range catalog.Roles() {
		if prevFn != "" && role.Function != prevFn {
			table.Rows = append(table.Rows, []string{"---"})
		}
		prevFn = role.Function

		row := []string{role.Name, string(role.Key)}
		for _, loc := range catalog.LocationOrder {
			band := role.Salary[loc]
			row = append(row, cli.FormatMoneyCompact(band.Default))
		}
		table.Rows = append(table.Rows, row)
	}

	fmt.Print(cli.RenderTable(table))
	fmt.Println()
	fmt.Println(cli.RenderMuted("  Shown at mid-market. Use --tier on `role add` for min/max."))
	return nil
}

func totalAnnualSalary(roles []plan.PlacedRole) float64 {
	total := 0.0
	for _, r := range roles {
		total += r.Salary
	}
	return total
}
