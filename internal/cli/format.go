// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a dollar amount with comma separators.
// e.g., 1234567.8 -> "$1,234,568"
func FormatMoney(amount float64) string {
	if amount < 0 {
		return "-" + FormatMoney(-amount)
	}
	return "$" + FormatNumber(int64(math.Round(amount)))
}

// FormatMoneyCompact formats a dollar amount with human-readable suffixes.
// e.g., 1234 -> "$1.2K", 1234567 -> "$1.2M"
func FormatMoneyCompact(amount float64) string {
	if amount < 0 {
		return "-" + FormatMoneyCompact(-amount)
	}

	switch {
	case amount >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", amount/1_000_000_000)
	case amount >= 1_000_000:
		return fmt.Sprintf("$%.1fM", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("$%.1fK", amount/1_000)
	default:
		return "$" + strconv.FormatInt(int64(math.Round(amount)), 10)
	}
}

// FormatRunway formats a month count into a human-readable span.
// e.g., 14 -> "1y 2m", 8 -> "8mo"
func FormatRunway(months int) string {
	if months <= 0 {
		return "0mo"
	}

	years := months / 12
	rem := months % 12

	if years > 0 {
		if rem == 0 {
			return fmt.Sprintf("%dy", years)
		}
		return fmt.Sprintf("%dy %dm", years, rem)
	}
	return fmt.Sprintf("%dmo", months)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatGrowth formats a monthly growth fraction as a percentage.
// e.g., 0.05 -> "5%", 0.125 -> "12.5%"
func FormatGrowth(f float64) string {
	pct := f * 100
	if pct == math.Trunc(pct) {
		return fmt.Sprintf("%.0f%%", pct)
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoneyCompact(delta)
	}
	return "-" + FormatMoneyCompact(-delta)
}
