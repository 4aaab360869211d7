package cmd

import (
	"fmt"

	"github.com/omchainkit/omchain/api"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <address> <amount>",
	Short: "Send OMC",
	Long: `Send OMC from your account to another address.

Examples:
  omchain send oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7 1.5
  omchain send oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7 10 --usd   # Send $10 worth of OMC`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

func init() {
	sendCmd.Flags().Bool("usd", false, "Specify amount in USD")
	sendCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

func runSend(cmd *cobra.Command, args []string) error {
	recipient := args[0]
	usdFlag, _ := cmd.Flags().GetBool("usd")
	yesFlag, _ := cmd.Flags().GetBool("yes")
	out := cmd.OutOrStdout()

	if err := api.ValidateAddress(recipient); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(args[1])
	if err != nil || !amount.IsPositive() {
		return fmt.Errorf("invalid amount %q: must be a positive number", args[1])
	}
	if !usdFlag && !amount.Equal(amount.Round(8)) {
		return fmt.Errorf("invalid amount %q: OMC amounts have at most 8 decimal places", args[1])
	}

	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	// wallet info gives the balance and the current OMC price
	if err := w.GetWalletInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to check balance: %w", err)
	}
	state := w.State()

	if usdFlag {
		if !state.OMCUSDValue.IsPositive() {
			return fmt.Errorf("OMC price is unavailable, send an OMC amount instead")
		}
		amount = amount.Div(state.OMCUSDValue).Round(8)
		if !amount.IsPositive() {
			return fmt.Errorf("invalid amount %q: less than the smallest OMC unit", args[1])
		}
	}

	if state.Balance.LessThan(amount) {
		return fmt.Errorf("insufficient funds. You're trying to send %s but your balance is only %s", formatOMC(amount), formatOMC(state.Balance))
	}

	fmt.Fprintln(out, "📤 Sending OMC")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "   To:      %s\n", recipient)
	fmt.Fprintf(out, "   Amount:  %s (%s)\n", formatOMC(amount), formatUSD(amount.Mul(state.OMCUSDValue), 2))
	fmt.Fprintf(out, "   Balance: %s\n", formatOMC(state.Balance))
	fmt.Fprintln(out)

	if !yesFlag && !getTransactionConfirmation(cmd) {
		fmt.Fprintln(out, "❌ Transaction cancelled by user")
		return nil
	}

	if err := w.SendCoins(cmd.Context(), recipient, amount).Wait(); err != nil {
		return fmt.Errorf("failed to send: %w", err)
	}

	fmt.Fprintf(out, "✅ Sent %s to %s\n", formatOMC(amount), recipient)
	return nil
}

func getTransactionConfirmation(cmd *cobra.Command) bool {
	fmt.Fprintln(cmd.OutOrStdout(), "🚨 By confirming this transaction real funds will be sent to this address.")
	return confirm(cmd, "Press y to confirm or n to stop")
}
