package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/omchainkit/omchain/wallet"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show network information",
	Long: `Show Omnicoin network information: block count, difficulty,
hash rate, block reward and market prices.

Example:
  omchain info`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Show block height, difficulty and hash rate",
	Args:  cobra.NoArgs,
	RunE:  runChain,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show hosted wallet statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newWallet(cmd).GetWalletStats(cmd.Context()).Wait()
	},
}

var richListCmd = &cobra.Command{
	Use:   "richlist",
	Short: "Show the richest addresses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return newWallet(cmd).GetRichList(cmd.Context()).Wait()
	},
}

var earningsCmd = &cobra.Command{
	Use:   "earnings <MH/s>",
	Short: "Estimate mining earnings",
	Long: `Estimate daily, weekly, monthly and yearly mining earnings for a hash rate.

Example:
  omchain earnings 25.5    # Earnings at 25.5 MH/s`,
	Args: cobra.ExactArgs(1),
	RunE: runEarnings,
}

func runInfo(cmd *cobra.Command, args []string) error {
	if err := newWallet(cmd).GetInfo(cmd.Context()).Wait(); err != nil {
		return fmt.Errorf("failed to fetch network info: %w", err)
	}
	return nil
}

func runChain(cmd *cobra.Command, args []string) error {
	w := newWallet(cmd)
	ctx := cmd.Context()

	for _, fetch := range []func(context.Context) *wallet.Request{w.GetBlockCount, w.GetDifficulty, w.GetNetworkHashRate} {
		if err := fetch(ctx).Wait(); err != nil {
			return fmt.Errorf("failed to fetch chain state: %w", err)
		}
	}
	return nil
}

func runEarnings(cmd *cobra.Command, args []string) error {
	hashrate, err := strconv.ParseFloat(args[0], 64)
	if err != nil || hashrate <= 0 {
		return fmt.Errorf("invalid hash rate %q: must be a positive number of MH/s", args[0])
	}

	return newWallet(cmd).EarningsCalc(cmd.Context(), hashrate).Wait()
}
