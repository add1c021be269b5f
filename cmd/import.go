package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/planfile"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the local plan with a YAML plan file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, _, err := loadPlan()
	if err != nil {
		return err
	}

	st, err := planfile.Load(args[0])
	if err != nil {
		return err
	}

	if err := savePlan(cfg, st); err != nil {
		return err
	}

	fmt.Printf("  Imported %d scenarios from %s.\n", len(st.Scenarios), args[0])
	return nil
}
