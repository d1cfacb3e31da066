package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dan13ram/omnichain-portal/models"
)

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List supported chains with their status and bridge gas",
	Run:   runChains,
}

func init() {
	rootCmd.AddCommand(chainsCmd)
}

type chainRow struct {
	models.Chain
	Gas string `json:"gas"`
}

func runChains(cmd *cobra.Command, args []string) {
	reg, err := loadRegistry()
	exitOnError(err)

	rows := make([]chainRow, 0, len(reg.Chains()))
	for _, chain := range reg.Chains() {
		gas, ok := reg.GasEstimate(chain.ID)
		if !ok {
			gas = "-"
		}
		rows = append(rows, chainRow{Chain: chain, Gas: gas})
	}

	if jsonOutput {
		printJSON(rows)
		return
	}

	fmt.Println()
	divider(72)
	color.Green("  SUPPORTED CHAINS")
	divider(72)
	for _, row := range rows {
		fmt.Printf("  %-12s %-20s %-20s %s\n",
			color.CyanString(row.ID),
			row.Name,
			statusColor(string(row.Status)),
			color.HiBlackString("gas %s", row.Gas))
	}
	divider(72)
	fmt.Printf("\nTotal: %d chains\n\n", len(rows))
}
