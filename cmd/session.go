package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/omchainkit/omchain/wallet"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// newWallet returns a wallet without an account, for public queries
func newWallet(cmd *cobra.Command) *wallet.Wallet {
	return wallet.NewEmpty(&printer{out: cmd.OutOrStdout()}, walletOptions()...)
}

// sessionWallet returns a wallet for the unlocked account
func sessionWallet(cmd *cobra.Command) (*wallet.Wallet, *wallet.Session, error) {
	session, err := store.Session()
	if errors.Is(err, wallet.ErrLocked) {
		if !store.VaultExists() {
			return nil, nil, fmt.Errorf("no account found. Run 'omchain login' or 'omchain register' first")
		}
		return nil, nil, fmt.Errorf("wallet is locked. Run 'omchain unlock' first")
	}
	if err != nil {
		return nil, nil, err
	}

	w := wallet.FromCredentials(session.Credentials(), &printer{out: cmd.OutOrStdout()}, walletOptions()...)
	w.SetSessionToken(session.Token)
	return w, session, nil
}

func walletOptions() []wallet.Option {
	return []wallet.Option{wallet.WithClient(client), wallet.WithLogger(log)}
}

// readPassword prompts for a password without echo on a terminal, or reads a line otherwise
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout()) // New line after password input
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	password, err := readLine()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// readLine reads one line of input without the line ending
func readLine() (string, error) {
	line, err := input.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question, anything but y or yes is a no
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s (y/n): ", question)

	response, err := readLine()
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

func truncateAddress(address string) string {
	if len(address) <= 16 {
		return address
	}
	return address[:8] + "..." + address[len(address)-6:]
}
