package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/omchainkit/omchain/api"
	"github.com/omchainkit/omchain/wallet"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// printer is the wallet delegate used by the CLI. Results are written to out;
// failures are returned by the commands themselves.
type printer struct {
	out io.Writer
}

func (p *printer) WalletFailed(_ *wallet.Wallet, method string, err error) {
	log.Debug("request failed", zap.String("method", method), zap.Error(err))
}

func (p *printer) WalletSucceeded(_ *wallet.Wallet, method string) {
	log.Debug("request succeeded", zap.String("method", method))
}

func (p *printer) MessageSigned(address, message, signature string) {
	fmt.Fprintf(p.out, "✍️  Signed with %s\n", address)
	fmt.Fprintf(p.out, "   Message:   %s\n", message)
	fmt.Fprintf(p.out, "   Signature: %s\n", signature)
}

func (p *printer) AddressCreated(address string) {
	fmt.Fprintf(p.out, "🆕 New address: %s\n", color.GreenString(address))
}

func (p *printer) InfoReceived(info *api.Info) {
	fmt.Fprintln(p.out, "🌐 Omnicoin Network")
	fmt.Fprintln(p.out)
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "   Block count:\t%d\n", info.BlockCount)
	fmt.Fprintf(w, "   Difficulty:\t%.8f\n", info.Difficulty)
	fmt.Fprintf(w, "   Hash rate:\t%.2f MH/s\n", info.NetworkMHps)
	fmt.Fprintf(w, "   Last block:\t%ds ago\n", info.SecondsSinceBlock)
	fmt.Fprintf(w, "   Avg block time:\t%.1fs\n", info.AvgBlockTime)
	fmt.Fprintf(w, "   Block reward:\t%s\n", formatOMC(info.BlockReward))
	fmt.Fprintf(w, "   Total mined:\t%s\n", formatOMC(info.TotalMined))
	fmt.Fprintf(w, "   Price:\t%s BTC / %s\n", info.OMCBTCPrice.StringFixed(8), formatUSD(info.OMCUSDPrice, 6))
	fmt.Fprintf(w, "   Market cap:\t%s\n", formatUSD(info.MarketCap, 2))
	w.Flush()
}

func (p *printer) BalanceReceived(address string, balance decimal.Decimal) {
	fmt.Fprintf(p.out, "💰 %s\n", formatOMC(balance))
	fmt.Fprintf(p.out, "   📍 Address: %s\n", address)
}

func (p *printer) AddressChecked(address string, valid bool) {
	if valid {
		fmt.Fprintf(p.out, "✅ %s is a valid address\n", address)
		return
	}
	fmt.Fprintf(p.out, "❌ %s is %s\n", address, color.RedString("not a valid address"))
}

func (p *printer) MessageVerified(address, _, _ string, valid bool) {
	if valid {
		fmt.Fprintf(p.out, "✅ Signature is valid for %s\n", address)
		return
	}
	fmt.Fprintf(p.out, "❌ Signature is %s for %s\n", color.RedString("not valid"), address)
}

func (p *printer) RichListReceived(entries []api.RichListEntry) {
	fmt.Fprintln(p.out, "🏆 Rich List")
	fmt.Fprintln(p.out)
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "   #\tAddress\tBalance\tUSD\tShare")
	for _, e := range entries {
		name := e.Address
		if e.VanityName != "" {
			name = fmt.Sprintf("%s (%s)", e.Address, e.VanityName)
		}
		fmt.Fprintf(w, "   %d\t%s\t%s\t%s\t%.2f%%\n", e.Rank, name, formatOMC(e.Balance), formatUSD(e.USDValue, 2), e.Percent)
	}
	w.Flush()
}

func (p *printer) WalletStatsReceived(stats *api.WalletStats) {
	fmt.Fprintln(p.out, "📊 Hosted Wallet Stats")
	fmt.Fprintf(p.out, "   Users:   %d\n", stats.Users)
	fmt.Fprintf(p.out, "   Balance: %s\n", formatOMC(stats.Balance))
	fmt.Fprintf(p.out, "   💵 USD:  %s\n", formatUSD(stats.USDValue, 2))
}

func (p *printer) BlockCountReceived(count int64) {
	fmt.Fprintf(p.out, "🧱 Block count: %d\n", count)
}

func (p *printer) DifficultyReceived(difficulty float64) {
	fmt.Fprintf(p.out, "🎯 Difficulty:  %.8f\n", difficulty)
}

func (p *printer) NetworkHashRateReceived(hashrate float64) {
	fmt.Fprintf(p.out, "⚡ Hash rate:   %.2f MH/s\n", hashrate)
}

func (p *printer) EarningsCalculated(hashrate float64, e *api.Earnings) {
	fmt.Fprintf(p.out, "⛏️  Estimated earnings at %g MH/s\n", hashrate)
	fmt.Fprintln(p.out)
	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "   Daily:\t%s\t%s\n", formatOMC(e.Daily), formatUSD(e.DailyUSD, 2))
	fmt.Fprintf(w, "   Weekly:\t%s\t%s\n", formatOMC(e.Weekly), formatUSD(e.WeeklyUSD, 2))
	fmt.Fprintf(w, "   Monthly:\t%s\t%s\n", formatOMC(e.Monthly), formatUSD(e.MonthlyUSD, 2))
	fmt.Fprintf(w, "   Yearly:\t%s\t%s\n", formatOMC(e.Yearly), formatUSD(e.YearlyUSD, 2))
	w.Flush()
}

func formatOMC(amount decimal.Decimal) string {
	return amount.StringFixed(8) + " OMC"
}

func formatUSD(amount decimal.Decimal, places int32) string {
	return "$" + amount.StringFixed(places)
}
