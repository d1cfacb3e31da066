package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dan13ram/omnichain-portal/ledger"
	"github.com/dan13ram/omnichain-portal/models"
	"github.com/dan13ram/omnichain-portal/registry"
)

var (
	historyStatuses []string
	historyKinds    []string
	historyLimit    int
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"transactions", "txs"},
	Short:   "List recent transactions, newest first",
	Long: `List the wallet's recent send, receive and bridge transactions.

Examples:
  portal history
  portal history --status failed
  portal history --kind bridge --limit 3`,
	Run: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringSliceVar(&historyStatuses, "status", nil, "Only these statuses (completed, failed)")
	historyCmd.Flags().StringSliceVar(&historyKinds, "kind", nil, "Only these kinds (send, receive, bridge)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Show at most this many transactions (0 for all)")
}

func historyFilter(statuses []string, kinds []string) (models.TransactionFilter, error) {
	filter := models.TransactionFilter{}
	for _, status := range statuses {
		s := models.TransactionStatus(status)
		if s != models.TransactionStatusPending && !s.Terminal() {
			return filter, fmt.Errorf("unknown status %q", status)
		}
		filter.Statuses = append(filter.Statuses, s)
	}
	for _, kind := range kinds {
		k := models.TransactionKind(kind)
		if !models.ValidTransactionKind(k) {
			return filter, fmt.Errorf("unknown kind %q", kind)
		}
		filter.Kinds = append(filter.Kinds, k)
	}
	return filter, nil
}

func loadHistory(reg *registry.Registry, filter models.TransactionFilter, limit int) ([]models.Transaction, error) {
	l := ledger.New()
	if err := l.Import(reg.History()...); err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0)
	for tx := range l.Query(filter) {
		if limit > 0 && len(txs) == limit {
			break
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func runHistory(cmd *cobra.Command, args []string) {
	reg, err := loadRegistry()
	exitOnError(err)

	filter, err := historyFilter(historyStatuses, historyKinds)
	exitOnError(err)

	txs, err := loadHistory(reg, filter, historyLimit)
	exitOnError(err)

	if jsonOutput {
		printJSON(txs)
		return
	}

	if len(txs) == 0 {
		fmt.Println("\nNo transactions found matching the criteria.")
		return
	}

	fmt.Println()
	divider(88)
	color.Green("  RECENT TRANSACTIONS")
	divider(88)
	for _, tx := range txs {
		route := tx.FromChain
		if tx.ToChain != "" {
			route += " -> " + tx.ToChain
		}
		fmt.Printf("  %-17s %-8s %-22s %14s %-6s %s\n",
			color.HiBlackString(tx.Timestamp.Format("2006-01-02 15:04")),
			tx.Kind,
			color.CyanString(route),
			tx.Amount,
			color.YellowString(tx.Token),
			statusColor(string(tx.Status)))
	}
	divider(88)
	fmt.Printf("\nTotal: %d transactions\n\n", len(txs))
}
