package cmd

import (
	"fmt"

	"github.com/omchainkit/omchain/wallet"
	"github.com/spf13/cobra"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock",
	Short: "Unlock the saved account for a session",
	Long: `Unlock your saved account for the current session.
This command decrypts the vault with your password and signs in again.
The session stays unlocked until it expires or you run 'omchain lock'.

Example:
  omchain unlock`,
	Args: cobra.NoArgs,
	RunE: runUnlock,
}

var lockCmd = &cobra.Command{
	Use:   "lock",
	Short: "End the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.Lock(); err != nil {
			return fmt.Errorf("failed to lock wallet: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "🔒 Wallet locked")
		return nil
	},
}

func runUnlock(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if !store.VaultExists() {
		return fmt.Errorf("no account found. Run 'omchain login' or 'omchain register' first")
	}

	if _, err := store.Session(); err == nil {
		fmt.Fprintln(out, "✅ Wallet is already unlocked")
		return nil
	}

	password, err := readPassword(cmd, "Enter your account password: ")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Unlocking wallet...")
	session, err := store.Unlock(password)
	if err != nil {
		return fmt.Errorf("failed to unlock wallet: %w", err)
	}

	w := wallet.FromCredentials(session.Credentials(), &printer{out: out}, walletOptions()...)
	if err := w.SignIn(cmd.Context()).Wait(); err != nil {
		fmt.Fprintf(out, "⚠️  Warning: unlocked locally but failed to sign in: %v\n", err)
	} else if err := store.SetToken(w.State().SessionToken); err != nil {
		return err
	}

	fmt.Fprintln(out, "✅ Wallet unlocked successfully!")
	fmt.Fprintln(out, "💡 Use 'omchain addresses' to see your addresses")
	fmt.Fprintln(out, "💡 Use 'omchain balance' to check your balance")

	return nil
}
