package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/planfile"
	"github.com/headwayhq/headway/internal/report"
)

var (
	flagExportOut    string
	flagExportPDF    bool
	flagExportMonths int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the plan as a YAML file or PDF report",
	Long: `Export the full plan as an editable YAML file, or the target scenario
as a PDF report with --pdf.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output path (default: plan.yaml or plan.pdf)")
	exportCmd.Flags().BoolVar(&flagExportPDF, "pdf", false, "Write a PDF report instead of YAML")
	exportCmd.Flags().IntVarP(&flagExportMonths, "months", "n", 36, "PDF projection horizon in months")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, _ []string) error {
	_, st, err := loadPlan()
	if err != nil {
		return err
	}

	if flagExportPDF {
		s, idx, err := targetScenario(&st)
		if err != nil {
			return err
		}

		out := flagExportOut
		if out == "" {
			out = "plan.pdf"
		}

		data, err := report.Generate(*s, st.Label(idx), flagExportMonths)
		if err != nil {
			return fmt.Errorf("generating report: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}

		fmt.Printf("  Wrote %s (%d KB).\n", out, len(data)/1024)
		return nil
	}

	out := flagExportOut
	if out == "" {
		out = "plan.yaml"
	}
	if err := planfile.Save(out, st); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}

	fmt.Printf("  Wrote %s (%d scenarios).\n", out, len(st.Scenarios))
	return nil
}
