// Package wallet is an asynchronous facade over the Omnicha.in wallet API.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/omchainkit/omchain/api"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// State holds the account fields filled in from API responses
type State struct {
	// User info
	SessionToken string
	EmailAddress string
	Username     string
	PasswordHash string // SHA-512 hex, the plain password is never kept

	// Money info
	Balance        decimal.Decimal
	PendingBalance decimal.Decimal
	Addresses      []api.Address
	ValidAddress   bool // result of the last CheckAddress

	// Stats
	TransactionsIn  int64
	TransactionsOut int64
	TotalIn         decimal.Decimal
	TotalOut        decimal.Decimal
	Transactions    []api.Transaction
	OMCUSDValue     decimal.Decimal // 1 OMC in USD
	Version         string          // API version
}

// Wallet is a facade over the Omnicha.in wallet API. Every request method
// returns immediately, runs the call on its own goroutine, updates the
// wallet state and then reports to the delegate.
type Wallet struct {
	client *api.Client
	logger *zap.Logger

	mu       sync.RWMutex
	delegate Delegate
	state    State
}

// Option configures a Wallet
type Option func(w *Wallet)

// WithClient sets the API client used for requests
func WithClient(client *api.Client) Option {
	return func(w *Wallet) {
		if client != nil {
			w.client = client
		}
	}
}

// WithLogger sets the wallet logger
func WithLogger(logger *zap.Logger) Option {
	return func(w *Wallet) {
		if logger != nil {
			w.logger = logger.Named("wallet")
		}
	}
}

// New creates a wallet for an existing account. The password is hashed right away.
func New(username, password string, delegate Delegate, opts ...Option) *Wallet {
	return FromCredentials(api.NewCredentials(username, password), delegate, opts...)
}

// FromCredentials creates a wallet from a username and an already hashed password
func FromCredentials(creds api.Credentials, delegate Delegate, opts ...Option) *Wallet {
	w := NewEmpty(delegate, opts...)
	w.state.Username = creds.Username
	w.state.PasswordHash = creds.PasswordHash
	return w
}

// NewEmpty creates a blank wallet, e.g. for registering an account or public queries
func NewEmpty(delegate Delegate, opts ...Option) *Wallet {
	w := &Wallet{
		delegate: delegate,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.client == nil {
		w.client = api.NewClient(api.WithLogger(w.logger))
	}

	return w
}

// SetTimeout changes how long a single request may take
func (w *Wallet) SetTimeout(timeout time.Duration) {
	w.client.SetTimeout(timeout)
}

// SetDelegate replaces the delegate for requests started afterwards
func (w *Wallet) SetDelegate(delegate Delegate) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.delegate = delegate
}

// SetSessionToken restores a session token obtained earlier
func (w *Wallet) SetSessionToken(token string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.SessionToken = token
}

// State returns a copy of the wallet fields
func (w *Wallet) State() State {
	w.mu.RLock()
	defer w.mu.RUnlock()

	s := w.state
	s.Addresses = slices.Clone(w.state.Addresses)
	s.Transactions = slices.Clone(w.state.Transactions)
	return s
}

// Credentials returns the username and password hash requests are signed with
func (w *Wallet) Credentials() api.Credentials {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return api.Credentials{Username: w.state.Username, PasswordHash: w.state.PasswordHash}
}

// SignIn logs in, stores the session token and loads the account details
func (w *Wallet) SignIn(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodLogin, func(ctx context.Context) (notifier, error) {
		creds := w.Credentials()

		token, err := w.client.Login(ctx, creds)
		if err != nil {
			return nil, err
		}

		info, err := w.client.GetWalletInfo(ctx, creds)
		if err != nil {
			return nil, fmt.Errorf("signed in but failed to load wallet: %w", err)
		}

		w.mu.Lock()
		w.state.SessionToken = token
		w.applyWalletInfo(info)
		w.mu.Unlock()

		return nil, nil
	})
}

// GetWalletInfo fills in balances, addresses, transactions and stats
func (w *Wallet) GetWalletInfo(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGetWalletInfo, func(ctx context.Context) (notifier, error) {
		info, err := w.client.GetWalletInfo(ctx, w.Credentials())
		if err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.applyWalletInfo(info)
		w.mu.Unlock()

		return nil, nil
	})
}

// applyWalletInfo copies a wallet_getinfo response into the state. Callers hold mu.
func (w *Wallet) applyWalletInfo(info *api.WalletInfo) {
	w.state.EmailAddress = info.Email
	w.state.Balance = info.Balance
	w.state.PendingBalance = info.PendingBalance
	w.state.Addresses = slices.Clone(info.Addresses)
	w.state.Transactions = slices.Clone(info.Transactions)
	w.state.TransactionsIn = info.TransactionsIn
	w.state.TransactionsOut = info.TransactionsOut
	w.state.TotalIn = info.TotalIn
	w.state.TotalOut = info.TotalOut
	w.state.OMCUSDValue = info.OMCUSDPrice
	if info.Version != "" {
		w.state.Version = info.Version
	}
}

// Register creates a new account and makes it the wallet's account.
// An empty confirmPassword is treated as equal to password.
func (w *Wallet) Register(ctx context.Context, username, password, confirmPassword string) *Request {
	return w.dispatch(ctx, api.MethodRegister, func(ctx context.Context) (notifier, error) {
		if err := w.client.Register(ctx, username, password, confirmPassword); err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.state = State{
			Username:     username,
			PasswordHash: api.HashPassword(password),
		}
		w.mu.Unlock()

		return nil, nil
	})
}

// ChangeEmail changes the account email address
func (w *Wallet) ChangeEmail(ctx context.Context, email string) *Request {
	return w.dispatch(ctx, api.MethodChangeEmail, func(ctx context.Context) (notifier, error) {
		if err := w.client.ChangeEmail(ctx, w.Credentials(), email); err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.state.EmailAddress = email
		w.mu.Unlock()

		return nil, nil
	})
}

// ChangePassword changes the account password. An empty confirmPassword is
// treated as equal to password.
func (w *Wallet) ChangePassword(ctx context.Context, password, confirmPassword string) *Request {
	return w.dispatch(ctx, api.MethodChangePassword, func(ctx context.Context) (notifier, error) {
		creds, err := w.client.ChangePassword(ctx, w.Credentials(), password, confirmPassword)
		if err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.state.PasswordHash = creds.PasswordHash
		w.mu.Unlock()

		return nil, nil
	})
}

// SignMessage signs message with one of the account's addresses
func (w *Wallet) SignMessage(ctx context.Context, address, message string) *Request {
	return w.dispatch(ctx, api.MethodSignMessage, func(ctx context.Context) (notifier, error) {
		signature, err := w.client.SignMessage(ctx, w.Credentials(), address, message)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if signer, ok := d.(MessageSigner); ok {
				signer.MessageSigned(address, message, signature)
			}
		}, nil
	})
}

// ImportPrivateKey imports a private key for address into the account.
//
// Deprecated: the key is sent to the server. Use GenerateNewAddress.
func (w *Wallet) ImportPrivateKey(ctx context.Context, privateKey, address string) *Request {
	return w.dispatch(ctx, api.MethodImportPrivateKey, func(ctx context.Context) (notifier, error) {
		return nil, w.client.ImportPrivateKey(ctx, w.Credentials(), privateKey, address)
	})
}

// SendCoins sends amount OMC to address
func (w *Wallet) SendCoins(ctx context.Context, address string, amount decimal.Decimal) *Request {
	return w.dispatch(ctx, api.MethodSendCoins, func(ctx context.Context) (notifier, error) {
		return nil, w.client.SendCoins(ctx, w.Credentials(), address, amount)
	})
}

// GenerateNewAddress creates a new receiving address and adds it to the wallet
func (w *Wallet) GenerateNewAddress(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGenerateAddress, func(ctx context.Context) (notifier, error) {
		address, err := w.client.GenerateAddress(ctx, w.Credentials())
		if err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.state.Addresses = append(w.state.Addresses, api.Address{Address: address})
		w.mu.Unlock()

		return func(d Delegate) {
			if creator, ok := d.(AddressCreator); ok {
				creator.AddressCreated(address)
			}
		}, nil
	})
}

// GetInfo fetches network information and updates the OMC/USD rate
func (w *Wallet) GetInfo(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGetInfo, func(ctx context.Context) (notifier, error) {
		info, err := w.client.GetInfo(ctx)
		if err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.state.OMCUSDValue = info.OMCUSDPrice
		w.mu.Unlock()

		return func(d Delegate) {
			if r, ok := d.(InfoReceiver); ok {
				r.InfoReceived(info)
			}
		}, nil
	})
}

// GetDifficulty fetches the current mining difficulty
func (w *Wallet) GetDifficulty(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGetDifficulty, func(ctx context.Context) (notifier, error) {
		difficulty, err := w.client.GetDifficulty(ctx)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(DifficultyReceiver); ok {
				r.DifficultyReceived(difficulty)
			}
		}, nil
	})
}

// GetBlockCount fetches the current block height
func (w *Wallet) GetBlockCount(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGetBlockCount, func(ctx context.Context) (notifier, error) {
		count, err := w.client.GetBlockCount(ctx)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(BlockCountReceiver); ok {
				r.BlockCountReceived(count)
			}
		}, nil
	})
}

// GetNetworkHashRate fetches the network hash rate in MH/s
func (w *Wallet) GetNetworkHashRate(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGetNetworkHashps, func(ctx context.Context) (notifier, error) {
		hashrate, err := w.client.GetNetworkHashRate(ctx)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(NetworkHashRateReceiver); ok {
				r.NetworkHashRateReceived(hashrate)
			}
		}, nil
	})
}

// GetBalance fetches the balance of any address. Balances of the wallet's
// own addresses are updated in place.
func (w *Wallet) GetBalance(ctx context.Context, address string) *Request {
	return w.dispatch(ctx, api.MethodGetBalance, func(ctx context.Context) (notifier, error) {
		balance, err := w.client.GetBalance(ctx, address)
		if err != nil {
			return nil, err
		}

		w.mu.Lock()
		for i := range w.state.Addresses {
			if w.state.Addresses[i].Address == address {
				w.state.Addresses[i].Balance = balance
			}
		}
		w.mu.Unlock()

		return func(d Delegate) {
			if r, ok := d.(BalanceReceiver); ok {
				r.BalanceReceived(address, balance)
			}
		}, nil
	})
}

// CheckAddress asks the server whether address is valid and stores the answer in ValidAddress
func (w *Wallet) CheckAddress(ctx context.Context, address string) *Request {
	return w.dispatch(ctx, api.MethodCheckAddress, func(ctx context.Context) (notifier, error) {
		valid, err := w.client.CheckAddress(ctx, address)
		if err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.state.ValidAddress = valid
		w.mu.Unlock()

		return func(d Delegate) {
			if r, ok := d.(AddressChecker); ok {
				r.AddressChecked(address, valid)
			}
		}, nil
	})
}

// VerifyMessage checks signature against address and message
func (w *Wallet) VerifyMessage(ctx context.Context, address, message, signature string) *Request {
	return w.dispatch(ctx, api.MethodVerifyMessage, func(ctx context.Context) (notifier, error) {
		valid, err := w.client.VerifyMessage(ctx, address, message, signature)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(MessageVerifier); ok {
				r.MessageVerified(address, message, signature, valid)
			}
		}, nil
	})
}

// GetRichList fetches the richest addresses
func (w *Wallet) GetRichList(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGetRichList, func(ctx context.Context) (notifier, error) {
		entries, err := w.client.GetRichList(ctx)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(RichListReceiver); ok {
				r.RichListReceived(entries)
			}
		}, nil
	})
}

// GetWalletStats fetches statistics about the hosted wallets
func (w *Wallet) GetWalletStats(ctx context.Context) *Request {
	return w.dispatch(ctx, api.MethodGetWalletStats, func(ctx context.Context) (notifier, error) {
		stats, err := w.client.GetWalletStats(ctx)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(WalletStatsReceiver); ok {
				r.WalletStatsReceived(stats)
			}
		}, nil
	})
}

// EarningsCalc estimates mining earnings for a hash rate in MH/s
func (w *Wallet) EarningsCalc(ctx context.Context, hashrate float64) *Request {
	return w.dispatch(ctx, api.MethodEarningsCalc, func(ctx context.Context) (notifier, error) {
		earnings, err := w.client.EarningsCalc(ctx, hashrate)
		if err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(EarningsReceiver); ok {
				r.EarningsCalculated(hashrate, earnings)
			}
		}, nil
	})
}

// CreateAPIRequest calls any API method with params. Account methods
// (wallet_*) get the wallet credentials unless params already carry a username.
func (w *Wallet) CreateAPIRequest(ctx context.Context, method string, params url.Values) *Request {
	return w.dispatch(ctx, method, func(ctx context.Context) (notifier, error) {
		query := url.Values{}
		for key, values := range params {
			query[key] = slices.Clone(values)
		}

		if strings.HasPrefix(method, "wallet_") && query.Get("username") == "" {
			creds := w.Credentials()
			query.Set("username", creds.Username)
			query.Set("password", creds.PasswordHash)
		}

		var raw json.RawMessage
		if err := w.client.Call(ctx, method, query, &raw); err != nil {
			return nil, err
		}

		return func(d Delegate) {
			if r, ok := d.(ResponseReceiver); ok {
				r.ResponseReceived(method, raw)
			}
		}, nil
	})
}

// notifier delivers a typed result to the optional delegate interfaces
type notifier func(d Delegate)

func (w *Wallet) dispatch(ctx context.Context, method string, call func(ctx context.Context) (notifier, error)) *Request {
	if ctx == nil {
		ctx = context.Background()
	}

	w.mu.RLock()
	delegate := w.delegate
	w.mu.RUnlock()

	req := newRequest(method)
	go func() {
		notify, err := w.run(ctx, method, call)
		w.report(delegate, method, notify, err)
		req.finish(err)
	}()
	return req
}

// run executes call, turning a panic into an error so it reaches the delegate
func (w *Wallet) run(ctx context.Context, method string, call func(ctx context.Context) (notifier, error)) (notify notifier, err error) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error("request panicked", zap.String("method", method), zap.Any("panic", r))
			notify, err = nil, fmt.Errorf("%s: unexpected failure: %v", method, r)
		}
	}()
	return call(ctx)
}

func (w *Wallet) report(delegate Delegate, method string, notify notifier, err error) {
	if err != nil {
		w.logger.Debug("request failed", zap.String("method", method), zap.Error(err))
		if delegate != nil {
			delegate.WalletFailed(w, method, err)
		}
		return
	}

	w.logger.Debug("request succeeded", zap.String("method", method))
	if delegate == nil {
		return
	}
	if notify != nil {
		notify(delegate)
	}
	delegate.WalletSucceeded(w, method)
}
