package project

import (
	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
)

// maxRunwayMonths caps the forward search. Generous enough that realistic
// funding/growth combinations resolve, finite so that flat or shrinking
// plans terminate.
const maxRunwayMonths = 240

// RunwayResult summarizes the forward search. Empty month/label strings mean
// "never found within the horizon". IsProfitable can be true with no
// ProfitableMonth attached only via the inactive-plan shortcut.
type RunwayResult struct {
	RunOutMonth     string
	RunOutLabel     string
	IsProfitable    bool
	ProfitableMonth string
	ProfitableLabel string
}

// Runway searches forward from the current month for the first month the
// cash balance goes strictly negative and, independently, the first month
// the plan turns cash-flow positive while actually incurring costs. Both are
// first-occurrence: once latched, later months never unset them.
//
// Note the boundary differs from CashBalanceTimeline on purpose: the
// timeline stops rendering at balance <= 0, while a month that lands exactly
// on zero is still solvent here.
func Runway(
	roles []plan.PlacedRole,
	fundingAmount float64,
	mrr float64,
	mrrGrowthRate float64,
	otherCosts float64,
	otherCostsGrowthRate float64,
) RunwayResult {
	// Nothing burns: no simulation needed. Revenue alone decides
	// profitability, with no concrete month to point at.
	if len(roles) == 0 && otherCosts == 0 {
		return RunwayResult{IsProfitable: mrr > 0}
	}

	now := month.CurrentStart()
	salaryCosts, salaryDelta := foldRoles(roles, now)

	cashBalance := fundingAmount
	var runOutMonth, profitableMonth string

	// Running growth factors instead of pow-per-month; same compounding.
	revenueFactor := 1.0
	otherFactor := 1.0

	for i := 0; i < maxRunwayMonths; i++ {
		key := month.Key(month.Add(now, i))

		if delta, ok := salaryDelta[i]; ok {
			salaryCosts += delta
		}

		monthlyCosts := salaryCosts + otherCosts*otherFactor
		netCashFlow := mrr*revenueFactor - monthlyCosts
		cashBalance += netCashFlow

		if cashBalance < 0 {
			runOutMonth = key
			break
		}

		if profitableMonth == "" && netCashFlow >= 0 && monthlyCosts > 0 {
			profitableMonth = key
		}

		revenueFactor *= 1 + mrrGrowthRate
		otherFactor *= 1 + otherCostsGrowthRate
	}

	return RunwayResult{
		RunOutMonth:     runOutMonth,
		RunOutLabel:     labelOrEmpty(runOutMonth),
		IsProfitable:    profitableMonth != "",
		ProfitableMonth: profitableMonth,
		ProfitableLabel: labelOrEmpty(profitableMonth),
	}
}

func labelOrEmpty(key string) string {
	if key == "" {
		return ""
	}
	return month.LabelKey(key)
}
