package api

import (
	"context"
	"net/url"

	"github.com/omchainkit/omchain/metrics"
	"github.com/shopspring/decimal"
)

// GetInfo fetches network and market information
func (c *Client) GetInfo(ctx context.Context) (*Info, error) {
	var info Info
	if err := c.Call(ctx, MethodGetInfo, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetDifficulty fetches the current mining difficulty
func (c *Client) GetDifficulty(ctx context.Context) (float64, error) {
	var result struct {
		Difficulty float64 `json:"difficulty"`
	}
	if err := c.Call(ctx, MethodGetDifficulty, nil, &result); err != nil {
		return 0, err
	}
	return result.Difficulty, nil
}

// GetBlockCount fetches the height of the best chain
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	var result struct {
		BlockCount int64 `json:"block_count"`
	}
	if err := c.Call(ctx, MethodGetBlockCount, nil, &result); err != nil {
		return 0, err
	}
	return result.BlockCount, nil
}

// GetNetworkHashRate fetches the network hash rate in MH/s
func (c *Client) GetNetworkHashRate(ctx context.Context) (float64, error) {
	var result struct {
		NetworkMHps float64 `json:"netmhps"`
	}
	if err := c.Call(ctx, MethodGetNetworkHashps, nil, &result); err != nil {
		return 0, err
	}
	return result.NetworkMHps, nil
}

// GetBalance fetches the balance of any address
func (c *Client) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	p := addressParams{Address: address}
	if err := c.validate(MethodGetBalance, p); err != nil {
		return decimal.Zero, err
	}

	var result struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if err := c.Call(ctx, MethodGetBalance, url.Values{"address": {address}}, &result); err != nil {
		return decimal.Zero, err
	}
	return result.Balance, nil
}

// CheckAddress asks the server whether address is valid. The address is
// sent as given so the server has the final word.
func (c *Client) CheckAddress(ctx context.Context, address string) (bool, error) {
	if address == "" {
		return false, c.validate(MethodCheckAddress, addressParams{})
	}

	var result struct {
		IsValid bool `json:"isvalid"`
	}
	if err := c.Call(ctx, MethodCheckAddress, url.Values{"address": {address}}, &result); err != nil {
		return false, err
	}
	return result.IsValid, nil
}

// VerifyMessage checks a signature made by address over message
func (c *Client) VerifyMessage(ctx context.Context, address, message, signature string) (bool, error) {
	p := verifyMessageParams{Address: address, Message: message, Signature: signature}
	if err := c.validate(MethodVerifyMessage, p); err != nil {
		return false, err
	}

	params := url.Values{
		"address":   {address},
		"message":   {message},
		"signature": {signature},
	}

	var result struct {
		IsValid bool `json:"isvalid"`
	}
	if err := c.Call(ctx, MethodVerifyMessage, params, &result); err != nil {
		return false, err
	}
	return result.IsValid, nil
}

// GetRichList fetches the richest addresses
func (c *Client) GetRichList(ctx context.Context) ([]RichListEntry, error) {
	var result struct {
		RichList []RichListEntry `json:"richlist"`
	}
	if err := c.Call(ctx, MethodGetRichList, nil, &result); err != nil {
		return nil, err
	}

	// older responses omit the rank
	for i := range result.RichList {
		if result.RichList[i].Rank == 0 {
			result.RichList[i].Rank = i + 1
		}
	}

	return result.RichList, nil
}

// GetWalletStats fetches statistics about the hosted wallets
func (c *Client) GetWalletStats(ctx context.Context) (*WalletStats, error) {
	var stats WalletStats
	if err := c.Call(ctx, MethodGetWalletStats, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// EarningsCalc estimates mining earnings for a hash rate in MH/s
func (c *Client) EarningsCalc(ctx context.Context, hashrate float64) (*Earnings, error) {
	if err := c.validate(MethodEarningsCalc, earningsParams{Hashrate: hashrate}); err != nil {
		return nil, err
	}

	var earnings Earnings
	if err := c.Call(ctx, MethodEarningsCalc, url.Values{"hashrate": {formatFloat(hashrate)}}, &earnings); err != nil {
		return nil, err
	}
	return &earnings, nil
}

// validate checks request parameters and counts rejected requests
func (c *Client) validate(method string, p interface{}) error {
	if err := validateParams(method, p); err != nil {
		c.metrics.ObserveRequest(method, metrics.OutcomeInvalid, 0)
		return err
	}
	return nil
}

// invalid reports a rejected request that failed a check outside the validate tags
func (c *Client) invalid(method string, fields ...FieldError) error {
	c.metrics.ObserveRequest(method, metrics.OutcomeInvalid, 0)
	return &ValidationError{Method: method, Fields: fields}
}
