package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/config"
	"github.com/headwayhq/headway/internal/store"
	"github.com/headwayhq/headway/internal/tui"
	"github.com/headwayhq/headway/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive planner",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	db, err := store.Open(config.StatePath(cfg))
	if err != nil {
		return fmt.Errorf("opening state database: %w", err)
	}
	defer db.Close()

	st, err := db.LoadState()
	if err != nil {
		return fmt.Errorf("loading state: %w", err)
	}
	if st == nil {
		fresh := config.DefaultState(cfg)
		st = &fresh
	}

	app := tui.NewApp(cfg, *st, db)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
