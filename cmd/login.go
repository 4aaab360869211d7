package cmd

import (
	"fmt"

	"github.com/omchainkit/omchain/wallet"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in to an existing account",
	Long: `Sign in to an existing Omnicha.in wallet account and save it locally.
Any account saved before is replaced.

Example:
  omchain login alice`,
	Args: cobra.ExactArgs(1),
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := args[0]
	out := cmd.OutOrStdout()

	password, err := readPassword(cmd, "Enter your account password: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Signing in...")
	w := wallet.New(username, password, &printer{out: out}, walletOptions()...)
	if err := w.SignIn(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}

	if err := saveAccount(w, password, ""); err != nil {
		return err
	}

	state := w.State()
	fmt.Fprintf(out, "✅ Signed in as %s\n", state.Username)
	fmt.Fprintf(out, "   Balance: %s\n", formatOMC(state.Balance))
	fmt.Fprintf(out, "   Addresses: %d\n", len(state.Addresses))

	return nil
}
