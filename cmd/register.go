package cmd

import (
	"fmt"

	"github.com/omchainkit/omchain/crypto"
	"github.com/omchainkit/omchain/wallet"
	"github.com/spf13/cobra"
)

const minPasswordLength = 8

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new hosted wallet account",
	Long: `Create a new Omnicha.in wallet account and save it locally.

This command will:
  - Register the account with the wallet API
  - Sign in and load the account
  - Save the credentials in an encrypted vault, sealed with your password

Examples:
  omchain register alice
  omchain register alice --email alice@example.com`,
	Args: cobra.ExactArgs(1),
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().String("email", "", "Email address for the account")
}

func runRegister(cmd *cobra.Command, args []string) error {
	username := args[0]
	email, _ := cmd.Flags().GetString("email")
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "🚀 Registering Omnicha.in account")
	fmt.Fprintln(out)

	password, err := readPassword(cmd, "Enter a password for your account: ")
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	confirmPassword, err := readPassword(cmd, "Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirmPassword {
		return fmt.Errorf("passwords do not match")
	}

	w := wallet.NewEmpty(&printer{out: out}, walletOptions()...)
	if err := w.Register(cmd.Context(), username, password, confirmPassword).Wait(); err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}
	if err := w.SignIn(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("registered but failed to sign in: %w", err)
	}
	if email != "" {
		if err := w.ChangeEmail(cmd.Context(), email).Wait(); err != nil {
			fmt.Fprintf(out, "⚠️  Warning: failed to set email: %v\n", err)
		}
	}

	if err := saveAccount(w, password, email); err != nil {
		return err
	}

	fmt.Fprintf(out, "✅ Account %s registered successfully!\n", username)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "🔑 Next steps:")
	fmt.Fprintln(out, "   - Run 'omchain newaddress' to create a receiving address")
	fmt.Fprintln(out, "   - Run 'omchain balance' to check your balance")

	return nil
}

// saveAccount seals the wallet account into the local vault and starts a session.
// knownEmail is kept when the wallet has not loaded an email itself.
func saveAccount(w *wallet.Wallet, password, knownEmail string) error {
	state := w.State()
	data := crypto.VaultData{
		Username:     state.Username,
		PasswordHash: state.PasswordHash,
		Email:        state.EmailAddress,
	}
	if data.Email == "" {
		data.Email = knownEmail
	}
	if _, err := store.Save(data, password, state.SessionToken); err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}
