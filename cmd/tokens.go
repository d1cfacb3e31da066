package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dan13ram/omnichain-portal/models"
)

var (
	filterChain string
	searchQuery string
)

var tokensCmd = &cobra.Command{
	Use:     "tokens",
	Aliases: []string{"list-tokens", "ls"},
	Short:   "List tokens and the portfolio value",
	Long: `List the tokens held on each chain.

Examples:
  portal tokens
  portal tokens --chain solana
  portal tokens --search usd`,
	Run: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVar(&filterChain, "chain", "", "Only tokens on this chain id")
	tokensCmd.Flags().StringVar(&searchQuery, "search", "", "Case-insensitive match on symbol or name")
}

func runTokens(cmd *cobra.Command, args []string) {
	reg, err := loadRegistry()
	exitOnError(err)

	if filterChain != "" {
		if _, ok := reg.Chain(filterChain); !ok {
			exitOnError(fmt.Errorf("unknown chain %q", filterChain))
		}
	}

	tokens := reg.SearchTokens(filterChain, searchQuery)
	value := reg.PortfolioValue()

	if jsonOutput {
		printJSON(struct {
			Tokens         []models.Token `json:"tokens"`
			PortfolioValue string         `json:"portfolio_value"`
		}{tokens, value.StringFixed(2)})
		return
	}

	if len(tokens) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println()
	divider(72)
	color.Green("  TOKENS")
	divider(72)
	for _, token := range tokens {
		fmt.Printf("  %-10s %-22s %-12s %14s  %s\n",
			color.YellowString(token.Symbol),
			token.Name,
			color.CyanString(token.Chain),
			token.Balance,
			color.HiBlackString("$%.2f", token.USDValue))
	}
	divider(72)
	fmt.Printf("\nTotal: %d tokens, portfolio value $%s\n\n", len(tokens), value.StringFixed(2))
}
