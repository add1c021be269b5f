package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/headwayhq/headway/internal/tui/theme"
)

// BalanceChart renders the cash balance curve as a column chart with a
// currency y-axis. Columns turn orange in the final third of the runway and
// red in the final two months, so the cliff is visible at a glance.
func BalanceChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 || width < 15 || height < 3 {
		return ""
	}

	t := theme.Active

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	yLabelW := len(moneyAxisLabel(peak)) + 1
	if yLabelW < 5 {
		yLabelW = 5
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// One column per month when it fits, otherwise sample evenly.
	n := len(values)
	if n > chartW {
		sampled := make([]float64, chartW)
		sampledLabels := make([]string, chartW)
		for i := range sampled {
			src := i * (n - 1) / (chartW - 1)
			sampled[i] = values[src]
			if len(labels) == n {
				sampledLabels[i] = labels[src]
			}
		}
		values, labels, n = sampled, sampledLabels, chartW
	}
	colW := chartW / n
	if colW < 1 {
		colW = 1
	}
	if colW > 4 {
		colW = 4
	}

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	colStyle := func(i int) lipgloss.Style {
		c := t.Accent
		switch {
		case i >= n-2:
			c = t.Red
		case i >= n*2/3:
			c = t.Orange
		}
		return lipgloss.NewStyle().Foreground(c).Background(t.Surface)
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := peak * float64(row) / float64(height)
		rowBottom := peak * float64(row-1) / float64(height)

		label := ""
		if row == height {
			label = moneyAxisLabel(peak)
		} else if row == height/2 {
			label = moneyAxisLabel(peak / 2)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			style := colStyle(i)
			switch {
			case v >= rowTop:
				b.WriteString(style.Render(strings.Repeat("█", colW)))
			case v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx < 1 {
					idx = 1
				}
				if idx > 8 {
					idx = 8
				}
				b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), colW)))
			default:
				b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", colW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n * colW
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	// Sparse x labels: first, middle, last.
	if len(labels) == n && n > 2 {
		buf := make([]byte, axisLen)
		for i := range buf {
			buf[i] = ' '
		}
		place := func(pos int, lbl string) {
			if lbl == "" {
				return
			}
			end := pos + len(lbl)
			if end > axisLen {
				pos = axisLen - len(lbl)
				end = axisLen
			}
			if pos < 0 {
				return
			}
			copy(buf[pos:end], lbl)
		}
		place(0, labels[0])
		place((n/2)*colW, labels[n/2])
		place((n-1)*colW, labels[n-1])

		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// RunwayGauge renders a horizontal gauge of runway consumed within the
// projection horizon. monthsLeft < 0 means the balance never runs out.
func RunwayGauge(monthsLeft, horizon, width int) string {
	t := theme.Active
	if width < 10 {
		width = 10
	}

	if monthsLeft < 0 {
		style := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
		return style.Render(strings.Repeat("█", width)) +
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(" ∞")
	}

	if horizon <= 0 {
		horizon = 1
	}
	frac := float64(monthsLeft) / float64(horizon)
	if frac > 1 {
		frac = 1
	}

	var c lipgloss.Color
	switch {
	case frac < 0.25:
		c = t.Red
	case frac < 0.5:
		c = t.Orange
	default:
		c = t.Green
	}

	filled := int(math.Round(frac * float64(width)))
	if filled > width {
		filled = width
	}

	fillStyle := lipgloss.NewStyle().Foreground(c).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.SurfaceHover).Background(t.Surface)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	return fillStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled)) +
		labelStyle.Render(fmt.Sprintf(" %dmo", monthsLeft))
}

// moneyAxisLabel formats a currency axis tick compactly.
func moneyAxisLabel(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.0fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
