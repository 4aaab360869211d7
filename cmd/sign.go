package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var signCmd = &cobra.Command{
	Use:   "sign <address> <message>",
	Short: "Sign a message with one of your addresses",
	Long: `Sign a message with the key of one of your account addresses.
The signature can be checked by anyone with 'omchain verify'.

Example:
  omchain sign oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7 "hello"`,
	Args: cobra.ExactArgs(2),
	RunE: runSign,
}

func runSign(cmd *cobra.Command, args []string) error {
	w, _, err := sessionWallet(cmd)
	if err != nil {
		return err
	}

	if err := w.SignMessage(cmd.Context(), args[0], args[1]).Wait(); err != nil {
		return fmt.Errorf("failed to sign message: %w", err)
	}
	return nil
}
