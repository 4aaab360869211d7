package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Show your account addresses",
	Long: `Show the receiving addresses of your account with their balances.

Example:
  omchain addresses`,
	Args: cobra.NoArgs,
	RunE: runAddresses,
}

var newAddressCmd = &cobra.Command{
	Use:   "newaddress",
	Short: "Create a new receiving address",
	Args:  cobra.NoArgs,
	RunE:  runNewAddress,
}

func runAddresses(cmd *cobra.Command, args []string) error {
	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	if err := w.GetWalletInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to fetch addresses: %w", err)
	}

	out := cmd.OutOrStdout()
	addresses := w.State().Addresses
	if len(addresses) == 0 {
		fmt.Fprintln(out, "📭 No addresses yet. Run 'omchain newaddress' to create one")
		return nil
	}

	fmt.Fprintln(out, "🔑 Your addresses:")
	fmt.Fprintln(out)
	for _, a := range addresses {
		fmt.Fprintf(out, "   %s  %s\n", a.Address, formatOMC(a.Balance))
	}
	return nil
}

func runNewAddress(cmd *cobra.Command, args []string) error {
	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	if err := w.GenerateNewAddress(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}
