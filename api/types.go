package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/shopspring/decimal"
)

// dateLayout is the timestamp format used by the wallet API
const dateLayout = "2006-01-02 15:04:05"

// envelope is the outer object of every API response
type envelope struct {
	Error     bool            `json:"error"`
	ErrorInfo string          `json:"error_info"`
	Response  json.RawMessage `json:"response"`
}

// Info represents network and market information returned by getinfo
type Info struct {
	BlockCount        int64           `json:"block_count"`
	Difficulty        float64         `json:"difficulty"`
	NetworkMHps       float64         `json:"netmhps"`
	SecondsSinceBlock int64           `json:"seconds_since_block"`
	AvgBlockTime      float64         `json:"avg_block_time"`
	TotalMined        decimal.Decimal `json:"total_mined"`
	OMCBTCPrice       decimal.Decimal `json:"omc_btc_price"`
	OMCUSDPrice       decimal.Decimal `json:"omc_usd_price"`
	MarketCap         decimal.Decimal `json:"market_cap"`
	BlockReward       decimal.Decimal `json:"block_reward"`
}

// Address represents an address owned by a wallet account
type Address struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// Transaction represents a wallet transaction
type Transaction struct {
	Date          time.Time       `json:"date"`
	Hash          string          `json:"tx_hash"`
	Amount        decimal.Decimal `json:"amount"`
	Confirmations int64           `json:"confirmations"`
}

// UnmarshalJSON accepts the date either as "2006-01-02 15:04:05" (UTC) or as unix seconds
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type alias Transaction
	var raw struct {
		alias
		Date json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Transaction(raw.alias)

	date, err := parseDate(raw.Date)
	if err != nil {
		return fmt.Errorf("invalid transaction date: %w", err)
	}
	t.Date = date
	return nil
}

// MarshalJSON writes the date in the API's own layout
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	return json.Marshal(struct {
		alias
		Date string `json:"date"`
	}{
		alias: alias(t),
		Date:  t.Date.UTC().Format(dateLayout),
	})
}

// Incoming returns true for transactions that credited the wallet
func (t Transaction) Incoming() bool {
	return t.Amount.IsPositive()
}

// TxHash parses the transaction hash
func (t Transaction) TxHash() (*chainhash.Hash, error) {
	hash, err := chainhash.NewHashFromStr(t.Hash)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction hash %q: %w", t.Hash, err)
	}
	return hash, nil
}

func parseDate(raw json.RawMessage) (time.Time, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return time.Time{}, nil
	}

	// quoted layout or quoted unix seconds
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return time.Time{}, err
		}
		if str == "" {
			return time.Time{}, nil
		}
		if secs, err := strconv.ParseInt(str, 10, 64); err == nil {
			return time.Unix(secs, 0).UTC(), nil
		}
		return time.ParseInLocation(dateLayout, str, time.UTC)
	}

	secs, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

// WalletInfo represents the account details returned by wallet_getinfo
type WalletInfo struct {
	Email           string          `json:"email"`
	Balance         decimal.Decimal `json:"balance"`
	PendingBalance  decimal.Decimal `json:"pending_balance"`
	Addresses       []Address       `json:"addresses"`
	Transactions    []Transaction   `json:"transactions"`
	TransactionsIn  int64           `json:"tx_in"`
	TransactionsOut int64           `json:"tx_out"`
	TotalIn         decimal.Decimal `json:"total_in"`
	TotalOut        decimal.Decimal `json:"total_out"`
	OMCUSDPrice     decimal.Decimal `json:"omc_usd_price"`
	Version         string          `json:"version"`
}

// RichListEntry represents one row of the rich list
type RichListEntry struct {
	Rank       int             `json:"rank"`
	Address    string          `json:"address"`
	VanityName string          `json:"vanity_name"`
	Balance    decimal.Decimal `json:"balance"`
	USDValue   decimal.Decimal `json:"usd_value"`
	Percent    float64         `json:"percent"`
}

// WalletStats represents the hosted wallet statistics returned by getwstats
type WalletStats struct {
	Users    int64           `json:"users"`
	Balance  decimal.Decimal `json:"balance"`
	USDValue decimal.Decimal `json:"usd_value"`
}

// Earnings represents estimated mining earnings for a hash rate
type Earnings struct {
	Daily      decimal.Decimal `json:"daily"`
	Weekly     decimal.Decimal `json:"weekly"`
	Monthly    decimal.Decimal `json:"monthly"`
	Yearly     decimal.Decimal `json:"yearly"`
	DailyUSD   decimal.Decimal `json:"daily_usd"`
	WeeklyUSD  decimal.Decimal `json:"weekly_usd"`
	MonthlyUSD decimal.Decimal `json:"monthly_usd"`
	YearlyUSD  decimal.Decimal `json:"yearly_usd"`
}
