package cmd

import (
	"fmt"

	"github.com/omchainkit/omchain/wallet"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Check OMC balances",
	Long: `Check the balance of any address, or of your account when no address is given.

Examples:
  omchain balance                                       # Your account balances
  omchain balance --usd                                 # With USD values
  omchain balance oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7    # Any address`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBalance,
}

func init() {
	balanceCmd.Flags().Bool("usd", false, "Show balances in USD")
}

func runBalance(cmd *cobra.Command, args []string) error {
	usdFlag, _ := cmd.Flags().GetBool("usd")

	if len(args) == 1 {
		return displayAddressBalance(cmd, args[0], usdFlag)
	}
	return displayAccountBalance(cmd, usdFlag)
}

func displayAddressBalance(cmd *cobra.Command, address string, usdFlag bool) error {
	out := &printer{out: cmd.OutOrStdout()}
	if !usdFlag {
		w := wallet.NewEmpty(out, walletOptions()...)
		if err := w.GetBalance(cmd.Context(), address).Wait(); err != nil {
			return fmt.Errorf("failed to fetch balance: %w", err)
		}
		return nil
	}

	// the price comes from getinfo, fetched quietly first
	w := wallet.NewEmpty(nil, walletOptions()...)
	if err := w.GetInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to fetch OMC price: %w", err)
	}

	w.SetDelegate(&usdPrinter{printer: out, price: w.State().OMCUSDValue})
	if err := w.GetBalance(cmd.Context(), address).Wait(); err != nil {
		return fmt.Errorf("failed to fetch balance: %w", err)
	}
	return nil
}

// usdPrinter also prints the USD value of balances
type usdPrinter struct {
	*printer
	price decimal.Decimal
}

func (p *usdPrinter) BalanceReceived(address string, balance decimal.Decimal) {
	p.printer.BalanceReceived(address, balance)
	fmt.Fprintf(p.out, "   💵 USD: %s\n", formatUSD(balance.Mul(p.price), 2))
}

func displayAccountBalance(cmd *cobra.Command, usdFlag bool) error {
	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	if err := w.GetWalletInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to fetch wallet info: %w", err)
	}
	state := w.State()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "💰 Balance for %s\n", state.Username)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "   Available: %s\n", formatOMC(state.Balance))
	if !state.PendingBalance.IsZero() {
		fmt.Fprintf(out, "   Pending:   %s\n", formatOMC(state.PendingBalance))
	}
	if usdFlag {
		fmt.Fprintf(out, "   💵 USD:    %s\n", formatUSD(state.Balance.Mul(state.OMCUSDValue), 2))
	}
	fmt.Fprintln(out)

	for _, a := range state.Addresses {
		fmt.Fprintf(out, "   📍 %s  %s\n", a.Address, formatOMC(a.Balance))
	}

	return nil
}
