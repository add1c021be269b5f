package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/project"
)

var flagTimelineMonths int

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Month-by-month cash balance projection",
	RunE:  runTimeline,
}

func init() {
	timelineCmd.Flags().IntVarP(&flagTimelineMonths, "months", "n", 36, "Projection horizon in months")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
	_, st, err := loadPlan()
	if err != nil {
		return err
	}

	s, idx, err := targetScenario(&st)
	if err != nil {
		return err
	}

	horizon := flagTimelineMonths
	if horizon <= 0 {
		horizon = 36
	}

	balances := project.CashBalanceTimeline(
		s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
		s.OtherCosts, s.OtherCostsGrowthRate,
		month.Range(month.CurrentStart(), horizon),
	)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("TIMELINE  %s  %dmo", st.Label(idx), horizon)))
	fmt.Println()

	if len(balances) == 0 {
		fmt.Println("  Nothing to project.")
		return nil
	}

	table := cli.Table{
		Headers: []string{"Month", "Balance", "Burn", ""},
	}

	peak := 0.0
	for _, mb := range balances {
		if mb.Balance > peak {
			peak = mb.Balance
		}
	}

	for _, mb := range balances {
		balStr := cli.FormatMoney(mb.Balance)
		if mb.Balance <= 0 {
			balStr = cli.RenderDanger(balStr)
		}
		table.Rows = append(table.Rows, []string{
			month.LabelKey(mb.Month),
			balStr,
			cli.FormatMoney(mb.Burn),
			cli.RenderHorizontalBar(mb.Balance, peak, 24),
		})
	}

	fmt.Print(cli.RenderTable(table))

	if len(balances) < horizon {
		last := balances[len(balances)-1]
		fmt.Printf("\n  %s\n", cli.RenderDanger(fmt.Sprintf("Funds run out around %s.", month.LabelKey(last.Month))))
	}

	return nil
}
