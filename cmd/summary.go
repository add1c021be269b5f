package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/project"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Runway and burn summary for a scenario",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	_, st, err := loadPlan()
	if err != nil {
		return err
	}

	s, idx, err := targetScenario(&st)
	if err != nil {
		return err
	}

	rw := project.Runway(
		s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
		s.OtherCosts, s.OtherCostsGrowthRate,
	)
	balances := project.CashBalanceTimeline(
		s.PlacedRoles, s.FundingAmount, s.MRR, s.MRRGrowthRate,
		s.OtherCosts, s.OtherCostsGrowthRate,
		month.Range(month.CurrentStart(), 36),
	)

	burn := 0.0
	balance := s.FundingAmount
	if len(balances) > 0 {
		burn = balances[0].Burn
		balance = balances[0].Balance
	}

	runwayStr := cli.RenderGood("∞  (never runs out)")
	if rw.RunOutMonth != "" {
		if monthsLeft, err := month.Index(rw.RunOutMonth, month.CurrentStart()); err == nil {
			runwayStr = fmt.Sprintf("%s  (out %s)", cli.FormatRunway(monthsLeft), rw.RunOutLabel)
			if monthsLeft < 6 {
				runwayStr = cli.RenderDanger(runwayStr)
			} else if monthsLeft < 12 {
				runwayStr = cli.RenderWarn(runwayStr)
			}
		}
	}

	profitStr := "never within horizon"
	if rw.ProfitableMonth != "" {
		profitStr = cli.RenderGood("from " + rw.ProfitableLabel)
	} else if rw.IsProfitable {
		profitStr = cli.RenderGood("now")
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("RUNWAY  %s", st.Label(idx))))
	fmt.Println()

	table := cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Runway", runwayStr},
			{"Profitable", profitStr},
			{"---"},
			{"Cash balance", cli.FormatMoney(balance)},
			{"Burn / month", cli.FormatMoney(burn)},
			{"MRR", cli.FormatMoney(s.MRR)},
			{"MRR growth", cli.FormatGrowth(s.MRRGrowthRate) + "/mo"},
			{"Other costs", cli.FormatMoney(s.OtherCosts)},
			{"---"},
			{"Team size", cli.FormatNumber(int64(len(s.PlacedRoles)))},
			{"Annual salary", cli.FormatMoney(totalAnnualSalary(s.PlacedRoles))},
		},
	}

	fmt.Print(cli.RenderTable(table))

	if len(balances) > 1 {
		values := make([]float64, len(balances))
		for i, mb := range balances {
			values[i] = mb.Balance
		}
		fmt.Printf("\n  Balance, next %d months:\n  %s\n", len(balances), cli.RenderSparkline(values))
	}

	return nil
}
