package cmd

import (
	"github.com/omchainkit/omchain/api"
	"github.com/spf13/cobra"
)

var checkAddressCmd = &cobra.Command{
	Use:   "checkaddress <address>",
	Short: "Check whether an address is valid",
	Long: `Check an Omnicoin address. The address is checked locally first and
then by the server, unless --offline is set.

Examples:
  omchain checkaddress oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7
  omchain checkaddress --offline oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckAddress,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <address> <message> <signature>",
	Short: "Verify a signed message",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return newWallet(cmd).VerifyMessage(cmd.Context(), args[0], args[1], args[2]).Wait()
	},
}

func init() {
	checkAddressCmd.Flags().Bool("offline", false, "Only check the address format locally")
}

func runCheckAddress(cmd *cobra.Command, args []string) error {
	address := args[0]
	offline, _ := cmd.Flags().GetBool("offline")
	p := &printer{out: cmd.OutOrStdout()}

	if err := api.ValidateAddress(address); err != nil {
		p.AddressChecked(address, false)
		return nil
	}
	if offline {
		p.AddressChecked(address, true)
		return nil
	}

	return newWallet(cmd).CheckAddress(cmd.Context(), address).Wait()
}
