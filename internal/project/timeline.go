// Package project computes cash-balance projections and runway for a plan.
//
// Both entry points are pure: they snapshot their inputs, take "now" from the
// wall clock at call time, and return fresh result slices on every call.
package project

import (
	"math"
	"time"

	"github.com/headwayhq/headway/internal/month"
	"github.com/headwayhq/headway/internal/plan"
)

// MonthlyBalance is one projected month: ending cash balance and total burn
// (salary plus other costs) for that month.
type MonthlyBalance struct {
	Month   string
	Balance float64
	Burn    float64
}

// CashBalanceTimeline projects the cash balance for an explicit list of
// month keys. Requested months that precede the current month pass through
// with the untouched funding amount and zero burn. Output stops after the
// first month whose balance reaches zero, so it may be shorter than the
// requested list. Malformed month keys are skipped.
func CashBalanceTimeline(
	roles []plan.PlacedRole,
	fundingAmount float64,
	mrr float64,
	mrrGrowthRate float64,
	otherCosts float64,
	otherCostsGrowthRate float64,
	months []string,
) []MonthlyBalance {
	if len(months) == 0 {
		return nil
	}

	now := month.CurrentStart()
	nowKey := month.Key(now)

	// Roles already burning are folded into a constant base; future roles
	// become one-shot deltas applied at their start index. This keeps the
	// walk O(months + roles) instead of rescanning roles per month.
	salaryDelta := make(map[int]float64)
	salaryCosts := 0.0
	for _, r := range roles {
		monthly := r.Salary / 12
		if r.StartMonth < nowKey {
			salaryCosts += monthly
			continue
		}
		idx, err := month.Index(r.StartMonth, now)
		if err != nil {
			continue
		}
		salaryDelta[idx] += monthly
	}

	result := make([]MonthlyBalance, 0, len(months))
	cashBalance := fundingAmount

	for _, key := range months {
		idx, err := month.Index(key, now)
		if err != nil {
			continue
		}

		if idx < 0 {
			result = append(result, MonthlyBalance{Month: key, Balance: fundingAmount, Burn: 0})
			continue
		}

		if delta, ok := salaryDelta[idx]; ok {
			salaryCosts += delta
		}

		otherCostsThisMonth := otherCosts * math.Pow(1+otherCostsGrowthRate, float64(idx))
		monthlyCosts := salaryCosts + otherCostsThisMonth
		monthlyRevenue := mrr * math.Pow(1+mrrGrowthRate, float64(idx))

		cashBalance += monthlyRevenue - monthlyCosts
		result = append(result, MonthlyBalance{Month: key, Balance: cashBalance, Burn: monthlyCosts})

		// The zero-balance month is the last one rendered.
		if cashBalance <= 0 {
			break
		}
	}

	return result
}

// foldRoles buckets placed roles into a starting salary cost (everything
// already burning at iteration 0) plus per-index increments.
func foldRoles(roles []plan.PlacedRole, now time.Time) (float64, map[int]float64) {
	base := 0.0
	deltas := make(map[int]float64)
	for _, r := range roles {
		monthly := r.Salary / 12
		idx, err := month.Index(r.StartMonth, now)
		if err != nil {
			continue
		}
		if idx <= 0 {
			base += monthly
		} else {
			deltas[idx] += monthly
		}
	}
	return base, deltas
}
