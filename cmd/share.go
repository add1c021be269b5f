package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/cli"
	"github.com/headwayhq/headway/internal/codec"
)

var flagShareApply bool

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print a share link encoding all scenarios",
	RunE:  runShare,
}

var shareDecodeCmd = &cobra.Command{
	Use:   "decode <payload>",
	Short: "Decode a share payload, optionally replacing local state",
	Args:  cobra.ExactArgs(1),
	RunE:  runShareDecode,
}

func init() {
	shareDecodeCmd.Flags().BoolVar(&flagShareApply, "apply", false, "Replace local state with the decoded plan")
	shareCmd.AddCommand(shareDecodeCmd)
	rootCmd.AddCommand(shareCmd)
}

func runShare(_ *cobra.Command, _ []string) error {
	_, st, err := loadPlan()
	if err != nil {
		return err
	}

	payload, err := codec.EncodeScenariosState(st)
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}

	fmt.Println()
	fmt.Printf("  %s\n", payload)
	fmt.Println()
	fmt.Println(cli.RenderMuted(fmt.Sprintf("  %d scenarios, %d bytes. Paste into `headway share decode`.", len(st.Scenarios), len(payload))))
	return nil
}

func runShareDecode(_ *cobra.Command, args []string) error {
	decoded := codec.DecodeScenariosState(args[0])
	if decoded == nil {
		return fmt.Errorf("unrecognized share payload")
	}

	fmt.Println()
	fmt.Printf("  Decoded %d scenarios:\n", len(decoded.Scenarios))
	for i := range decoded.Scenarios {
		marker := " "
		if i == decoded.ActiveIndex {
			marker = "●"
		}
		s := decoded.Scenarios[i]
		fmt.Printf("  %s %-24s %d hires, %s funding, %s MRR\n",
			marker, decoded.Label(i), len(s.PlacedRoles),
			cli.FormatMoneyCompact(s.FundingAmount), cli.FormatMoneyCompact(s.MRR))
	}

	if !flagShareApply {
		fmt.Println()
		fmt.Println(cli.RenderMuted("  Re-run with --apply to replace your local plan."))
		return nil
	}

	cfg, _, err := loadPlan()
	if err != nil {
		return err
	}
	if err := savePlan(cfg, *decoded); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("  Local plan replaced.")
	return nil
}
