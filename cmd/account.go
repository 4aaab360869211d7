package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Show your account overview",
	Args:  cobra.NoArgs,
	RunE:  runWallet,
}

var changeEmailCmd = &cobra.Command{
	Use:   "changeemail <email>",
	Short: "Change the account email address",
	Args:  cobra.ExactArgs(1),
	RunE:  runChangeEmail,
}

var changePasswordCmd = &cobra.Command{
	Use:   "changepassword",
	Short: "Change the account password",
	Long: `Change the password of your account. The local vault is sealed again
with the new password.

Example:
  omchain changepassword`,
	Args: cobra.NoArgs,
	RunE: runChangePassword,
}

func runWallet(cmd *cobra.Command, args []string) error {
	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	if err := w.GetWalletInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to fetch wallet info: %w", err)
	}
	state := w.State()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "👛 %s", state.Username)
	if state.EmailAddress != "" {
		fmt.Fprintf(out, " <%s>", state.EmailAddress)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "   Balance:      %s (%s)\n", formatOMC(state.Balance), formatUSD(state.Balance.Mul(state.OMCUSDValue), 2))
	fmt.Fprintf(out, "   Pending:      %s\n", formatOMC(state.PendingBalance))
	fmt.Fprintf(out, "   Addresses:    %d\n", len(state.Addresses))
	fmt.Fprintf(out, "   Received:     %s in %d transactions\n", formatOMC(state.TotalIn), state.TransactionsIn)
	fmt.Fprintf(out, "   Sent:         %s in %d transactions\n", formatOMC(state.TotalOut), state.TransactionsOut)
	fmt.Fprintf(out, "   OMC price:    %s\n", formatUSD(state.OMCUSDValue, 6))
	if state.Version != "" {
		fmt.Fprintf(out, "   API version:  %s\n", state.Version)
	}
	return nil
}

// confirmPassword asks for the account password and checks it against the vault
func confirmPassword(cmd *cobra.Command) (string, error) {
	password, err := readPassword(cmd, "Enter your account password: ")
	if err != nil {
		return "", err
	}
	if err := store.CheckPassword(password); err != nil {
		return "", fmt.Errorf("invalid password")
	}
	return password, nil
}

func runChangeEmail(cmd *cobra.Command, args []string) error {
	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	password, err := confirmPassword(cmd)
	if err != nil {
		return err
	}

	if err := w.ChangeEmail(cmd.Context(), args[0]).Wait(); err != nil {
		return fmt.Errorf("failed to change email: %w", err)
	}
	if err := saveAccount(w, password, ""); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Email changed to %s\n", args[0])
	return nil
}

func runChangePassword(cmd *cobra.Command, args []string) error {
	w, session, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	if _, err := confirmPassword(cmd); err != nil {
		return err
	}

	newPassword, err := readPassword(cmd, "Enter a new password: ")
	if err != nil {
		return err
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	confirmNew, err := readPassword(cmd, "Confirm new password: ")
	if err != nil {
		return err
	}
	if newPassword != confirmNew {
		return fmt.Errorf("passwords do not match")
	}

	if err := w.ChangePassword(cmd.Context(), newPassword, confirmNew).Wait(); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	if err := saveAccount(w, newPassword, session.Email); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✅ Password changed. Your local vault now uses the new password")
	return nil
}
