package wallet

import (
	"encoding/json"

	"github.com/omchainkit/omchain/api"
	"github.com/shopspring/decimal"
)

// Delegate receives the outcome of every wallet request. Exactly one of its
// methods is called per request, from the request's goroutine.
type Delegate interface {
	// WalletFailed is called when a request fails for any reason
	WalletFailed(w *Wallet, method string, err error)
	// WalletSucceeded is called after a request succeeded and the wallet was updated
	WalletSucceeded(w *Wallet, method string)
}

// The interfaces below are optional. When the delegate implements one, it is
// called with the typed result just before WalletSucceeded.

// MessageSigner receives signatures produced by SignMessage
type MessageSigner interface {
	MessageSigned(address, message, signature string)
}

// AddressCreator receives addresses produced by GenerateNewAddress
type AddressCreator interface {
	AddressCreated(address string)
}

// InfoReceiver receives the result of GetInfo
type InfoReceiver interface {
	InfoReceived(info *api.Info)
}

// DifficultyReceiver receives the result of GetDifficulty
type DifficultyReceiver interface {
	DifficultyReceived(difficulty float64)
}

// BlockCountReceiver receives the result of GetBlockCount
type BlockCountReceiver interface {
	BlockCountReceived(count int64)
}

// NetworkHashRateReceiver receives the result of GetNetworkHashRate, in MH/s
type NetworkHashRateReceiver interface {
	NetworkHashRateReceived(hashrate float64)
}

// BalanceReceiver receives the result of GetBalance
type BalanceReceiver interface {
	BalanceReceived(address string, balance decimal.Decimal)
}

// AddressChecker receives the result of CheckAddress
type AddressChecker interface {
	AddressChecked(address string, valid bool)
}

// MessageVerifier receives the result of VerifyMessage
type MessageVerifier interface {
	MessageVerified(address, message, signature string, valid bool)
}

// RichListReceiver receives the result of GetRichList
type RichListReceiver interface {
	RichListReceived(entries []api.RichListEntry)
}

// WalletStatsReceiver receives the result of GetWalletStats
type WalletStatsReceiver interface {
	WalletStatsReceived(stats *api.WalletStats)
}

// EarningsReceiver receives the result of EarningsCalc
type EarningsReceiver interface {
	EarningsCalculated(hashrate float64, earnings *api.Earnings)
}

// ResponseReceiver receives the raw response object of CreateAPIRequest.
// The response is empty when the API sent none.
type ResponseReceiver interface {
	ResponseReceived(method string, response json.RawMessage)
}
