package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dan13ram/omnichain-portal/app"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/portal"
)

var (
	bridgeProvider string
	bridgeFrom     string
	bridgeTo       string
	bridgeToken    string
	bridgeAmount   string
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Connect a wallet, quote and submit one bridge transfer",
	Long: `Run one bridge end to end against the simulated chains.

The source chain defaults to the wallet's home chain: ethereum for metamask,
solana for phantom.

Examples:
  portal bridge --to solana --token USDC --amount 10 --config config.yml
  portal bridge --provider phantom --to ethereum --token SOL --amount 1.5 --config config.yml`,
	Run: runBridge,
}

func init() {
	rootCmd.AddCommand(bridgeCmd)

	bridgeCmd.Flags().StringVar(&bridgeProvider, "provider", string(models.ProviderMetaMask), "Wallet provider: metamask or phantom")
	bridgeCmd.Flags().StringVar(&bridgeFrom, "from", "", "Source chain id (defaults to the wallet's chain)")
	bridgeCmd.Flags().StringVar(&bridgeTo, "to", "", "Destination chain id")
	bridgeCmd.Flags().StringVar(&bridgeToken, "token", "", "Token symbol on the source chain")
	bridgeCmd.Flags().StringVar(&bridgeAmount, "amount", "", "Amount to bridge")
	bridgeCmd.MarkFlagRequired("to")
	bridgeCmd.MarkFlagRequired("token")
	bridgeCmd.MarkFlagRequired("amount")
}

func withSpinner[T any](suffix string, fn func() (T, error)) (T, error) {
	if jsonOutput {
		return fn()
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()
	return fn()
}

func runBridge(cmd *cobra.Command, args []string) {
	initApp()
	reg, err := loadRegistry()
	exitOnError(err)

	app.Config.Portal.AutoQuote = false
	session, err := portal.Build(app.Config, reg)
	exitOnError(err)
	defer session.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	wallet, err := withSpinner("Connecting wallet...", func() (models.WalletSession, error) {
		return session.Connect(ctx, models.ProviderType(bridgeProvider))
	})
	exitOnError(err)
	if !jsonOutput {
		color.Green("\nConnected %s %s (%s)", wallet.Provider, wallet.Address, wallet.Balance)
	}

	if bridgeFrom != "" {
		_, err = session.SelectSourceChain(bridgeFrom)
		exitOnError(err)
	}
	_, err = session.SelectDestinationChain(bridgeTo)
	exitOnError(err)
	_, err = session.SelectToken(bridgeToken, "")
	exitOnError(err)
	bridge, err := session.SetAmount(bridgeAmount)
	exitOnError(err)

	quote, err := withSpinner("Fetching quote...", func() (models.FeeQuote, error) {
		return session.RefreshQuote(ctx)
	})
	exitOnError(err)
	if !jsonOutput {
		fmt.Printf("\n  %s\n  Fee: %s\n", bridge.Summary(), color.YellowString(quote.Fee))
	}

	sub, err := session.Submit(ctx)
	exitOnError(err)

	tx, err := withSpinner("Submitting bridge...", func() (models.Transaction, error) {
		return sub.Wait(ctx)
	})

	if jsonOutput {
		printJSON(tx)
	} else {
		printTransaction(tx)
	}
	if errors.Is(err, context.Canceled) {
		color.Yellow("Stopped waiting, the bridge is still pending.")
	}
	exitOnError(err)
}

func printTransaction(tx models.Transaction) {
	fmt.Println()
	divider(72)
	fmt.Printf("  Transaction  %s\n", tx.Id)
	fmt.Printf("  Status       %s\n", statusColor(string(tx.Status)))
	fmt.Printf("  Route        %s -> %s\n", tx.FromChain, tx.ToChain)
	fmt.Printf("  Amount       %s %s\n", tx.Amount, tx.Token)
	fmt.Printf("  Fee          %s\n", tx.Fee)
	if tx.Hash != "" {
		fmt.Printf("  Hash         %s\n", color.CyanString(tx.Hash))
	}
	if tx.ErrorMessage != "" {
		fmt.Printf("  Error        %s\n", color.RedString(tx.ErrorMessage))
	}
	divider(72)
	fmt.Println()
}
