package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/omchainkit/omchain/api"
	"github.com/spf13/cobra"
)

const maxTransactionsPerPage = 50

var (
	pageFlag  int
	limitFlag int
)

var transactionsCmd = &cobra.Command{
	Use:   "transactions",
	Short: "Show transaction history with pagination",
	Long: `Show the transaction history of your account, newest first.

Examples:
  omchain transactions                # First page
  omchain transactions --page 2       # Second page
  omchain transactions --limit 5      # 5 transactions per page`,
	Args: cobra.NoArgs,
	RunE: runTransactions,
}

func init() {
	transactionsCmd.Flags().IntVarP(&pageFlag, "page", "p", 1, "Page number")
	transactionsCmd.Flags().IntVarP(&limitFlag, "limit", "l", 10, "Transactions per page (1-50)")
}

func runTransactions(cmd *cobra.Command, args []string) error {
	// Validate pagination parameters
	if pageFlag < 1 {
		return fmt.Errorf("page must be at least 1")
	}
	if limitFlag < 1 || limitFlag > maxTransactionsPerPage {
		return fmt.Errorf("limit must be between 1 and %d", maxTransactionsPerPage)
	}

	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔄 Loading transactions...")
	startTime := time.Now()

	if err := w.GetWalletInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to fetch transactions: %w", err)
	}

	txs := sortTransactions(w.State().Transactions)
	pages := pageCount(len(txs), limitFlag)
	page := applyPagination(txs, (pageFlag-1)*limitFlag, limitFlag)

	fmt.Fprintln(out)
	if len(page) == 0 {
		fmt.Fprintln(out, "📭 No transactions on this page")
	} else {
		printTransactions(cmd, page)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "📄 Pagination:")
	if pageFlag > 1 {
		fmt.Fprintf(out, "   ⬅️  Previous: --page %d\n", pageFlag-1)
	}
	if pageFlag < pages {
		fmt.Fprintf(out, "   ➡️  Next: --page %d\n", pageFlag+1)
	}
	fmt.Fprintf(out, "   📊 Showing page %d of %d (%d transactions in total)\n", pageFlag, pages, len(txs))
	fmt.Fprintf(out, "\n⏱️ Loaded in %v\n", time.Since(startTime).Round(time.Millisecond*10))

	return nil
}

func printTransactions(cmd *cobra.Command, txs []api.Transaction) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "   Date\tDirection\tAmount\tConfirmations\tHash")
	for _, tx := range txs {
		direction := "⬇️  IN"
		if !tx.Incoming() {
			direction = "⬆️  OUT"
		}
		fmt.Fprintf(w, "   %s\t%s\t%s\t%d\t%s\n",
			tx.Date.Format("2006-01-02 15:04"),
			direction,
			formatOMC(tx.Amount.Abs()),
			tx.Confirmations,
			truncateAddress(tx.Hash))
	}
	w.Flush()
}

// sortTransactions returns txs newest first
func sortTransactions(txs []api.Transaction) []api.Transaction {
	sorted := append([]api.Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

func pageCount(total, limit int) int {
	if total == 0 {
		return 1
	}
	return (total + limit - 1) / limit
}

func applyPagination(txs []api.Transaction, offset, limit int) []api.Transaction {
	if offset >= len(txs) {
		return []api.Transaction{}
	}

	end := offset + limit
	if end > len(txs) {
		end = len(txs)
	}

	return txs[offset:end]
}
