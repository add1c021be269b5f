package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headwayhq/headway/internal/catalog"
	"github.com/headwayhq/headway/internal/config"
	"github.com/headwayhq/headway/internal/plan"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to headway!")
	fmt.Println()

	// 1. Funding
	fmt.Println("  1. How much funding is in the bank?")
	fmt.Printf("     Current: $%.0f\n", cfg.Defaults.FundingAmount)
	fmt.Print("     > $")
	if v, ok := readNumber(reader); ok {
		cfg.Defaults.FundingAmount = v
	}
	fmt.Println()

	// 2. MRR
	fmt.Println("  2. Current monthly recurring revenue?")
	fmt.Printf("     Current: $%.0f\n", cfg.Defaults.MRR)
	fmt.Print("     > $")
	if v, ok := readNumber(reader); ok {
		cfg.Defaults.MRR = v
	}
	fmt.Println()

	// 3. MRR growth
	fmt.Println("  3. MRR growth per month, in whole percent?")
	fmt.Printf("     Current: %.0f%%\n", cfg.Defaults.MRRGrowthPct)
	fmt.Print("     > ")
	if v, ok := readNumber(reader); ok {
		cfg.Defaults.MRRGrowthPct = v
	}
	fmt.Println()

	// 4. Other costs
	fmt.Println("  4. Non-salary monthly costs (rent, SaaS, cloud)?")
	fmt.Printf("     Current: $%.0f\n", cfg.Defaults.OtherCosts)
	fmt.Print("     > $")
	if v, ok := readNumber(reader); ok {
		cfg.Defaults.OtherCosts = v
	}
	fmt.Println()

	// 5. Default location
	fmt.Println("  5. Default hire location")
	for i, loc := range catalog.LocationOrder {
		def := ""
		if string(loc) == cfg.Defaults.Location {
			def = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, catalog.LocationLabel(loc), def)
	}
	fmt.Print("     > ")
	if v, ok := readNumber(reader); ok {
		idx := int(v) - 1
		if idx >= 0 && idx < len(catalog.LocationOrder) {
			cfg.Defaults.Location = string(catalog.LocationOrder[idx])
		}
	}
	fmt.Println()

	// 6. Default rate tier
	fmt.Println("  6. Default rate tier for new hires")
	fmt.Println("     (1) Below market")
	fmt.Println("     (2) Mid market [default]")
	fmt.Println("     (3) Above market")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		cfg.Defaults.RateTier = string(plan.TierMin)
	case "3":
		cfg.Defaults.RateTier = string(plan.TierMax)
	default:
		cfg.Defaults.RateTier = string(plan.TierDefault)
	}
	fmt.Println()

	// 7. Theme
	fmt.Println("  7. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Flexoki Light")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "flexoki-light"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `headway setup` anytime to reconfigure, or `headway tui` to start planning.")
	fmt.Println()

	return nil
}

// readNumber reads one line and parses it as a number. An empty line keeps
// the current value.
func readNumber(reader *bufio.Reader) (float64, bool) {
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "$"))
	if line == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(line, ",", ""), 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
