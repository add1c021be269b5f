package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/headwayhq/headway/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left, the
// active scenario and save state on the right.
func RenderStatusBar(width int, scenarioLabel string, pendingSave bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [q]uit"
	right := ""
	if scenarioLabel != "" {
		saveState := "saved"
		if pendingSave {
			saveState = "saving…"
		}
		right = fmt.Sprintf("%s │ %s ", scenarioLabel, saveState)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
