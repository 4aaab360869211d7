package api

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	// sha512("password")
	assert.Equal(t,
		"b109f3bbbc244eb82441917ed06d618b9008dd09b3befd1b5e07394c706a8bb980b1d7785e5976ec049b46df5f1326af5a2ea6d103fd07c95385ffab0cacbc86",
		HashPassword("password"))
	assert.Len(t, HashPassword(""), 128)
}

func TestRegister(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodRegister, `{"error":false,"response":null}`)

	err := api.client().Register(context.Background(), "alice", "hunter22", "")
	require.NoError(t, err)

	q := api.lastQuery(t)
	assert.Equal(t, MethodRegister, q.Get("method"))
	assert.Equal(t, "alice", q.Get("username"))
	assert.Equal(t, HashPassword("hunter22"), q.Get("password"))
	assert.Equal(t, HashPassword("hunter22"), q.Get("confirmpassword"))
}

func TestRegister_validation(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client()

	err := c.Register(context.Background(), "alice", "hunter22", "hunter23")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{{Field: "confirmpassword", Rule: "eqfield"}}, verr.Fields)

	err = c.Register(context.Background(), "", "", "")
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)

	assert.Equal(t, 0, api.requestCount())
}

func TestRegister_usernameTaken(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodRegister, `{"error":true,"error_info":"USERNAME_TAKEN"}`)

	err := api.client().Register(context.Background(), "alice", "hunter22", "hunter22")
	assert.True(t, IsCode(err, "USERNAME_TAKEN"))
}

func TestLogin(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodLogin, `{"error":false,"response":{"session":"abc123"}}`)
	creds := NewCredentials("alice", "hunter22")

	token, err := api.client().Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	q := api.lastQuery(t)
	assert.Equal(t, "alice", q.Get("username"))
	assert.Equal(t, creds.PasswordHash, q.Get("password"))

	api.respond(MethodLogin, `{"error":false,"response":{"session":""}}`)
	_, err = api.client().Login(context.Background(), creds)
	assert.True(t, IsCode(err, "INVALID_SESSION"))

	_, err = api.client().Login(context.Background(), Credentials{Username: "alice", PasswordHash: "plain"})
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestGetWalletInfo(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodGetWalletInfo, `{"error":false,"response":{
		"email":"alice@example.com","balance":12.5,"pending_balance":"0.75",
		"addresses":[{"address":"oGxg7S7shs9uSKew1rRn7moRNhYm83jSo7","balance":12.5}],
		"transactions":[
			{"date":"2015-03-15 10:20:30","tx_hash":"6f2a5c4a26c5dbc8b6fcdf6f00ef1e4ab4c1c5a6b0e1c1d5c6e1f9c9e02b3d4f","amount":12.5,"confirmations":120},
			{"date":1426415000,"tx_hash":"00","amount":-1.25,"confirmations":3}],
		"tx_in":4,"tx_out":2,"total_in":20,"total_out":7.5,"omc_usd_price":0.0052,"version":"1.2"}}`)

	info, err := api.client().GetWalletInfo(context.Background(), NewCredentials("alice", "hunter22"))
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", info.Email)
	assert.Equal(t, "12.5", info.Balance.String())
	assert.Equal(t, "0.75", info.PendingBalance.String())
	require.Len(t, info.Addresses, 1)
	assert.Equal(t, testAddress, info.Addresses[0].Address)
	require.Len(t, info.Transactions, 2)
	assert.Equal(t, 2015, info.Transactions[0].Date.Year())
	assert.True(t, info.Transactions[0].Incoming())
	assert.False(t, info.Transactions[1].Incoming())
	assert.Equal(t, int64(1426415000), info.Transactions[1].Date.Unix())
	assert.Equal(t, int64(4), info.TransactionsIn)
	assert.Equal(t, int64(2), info.TransactionsOut)
	assert.Equal(t, "1.2", info.Version)
}

func TestGenerateAddress(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodGenerateAddress, `{"error":false,"response":{"address":"oGsPSWrkz6LENp6Wsw25MqwtUhMzdoUY33"}}`)

	address, err := api.client().GenerateAddress(context.Background(), NewCredentials("alice", "hunter22"))
	require.NoError(t, err)
	assert.Equal(t, otherTestAddress, address)

	api.respond(MethodGenerateAddress, `{"error":false,"response":{}}`)
	_, err = api.client().GenerateAddress(context.Background(), NewCredentials("alice", "hunter22"))
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestSignMessage(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodSignMessage, `{"error":false,"response":{"signature":"SGVsbG8="}}`)

	sig, err := api.client().SignMessage(context.Background(), NewCredentials("alice", "hunter22"), testAddress, "hello")
	require.NoError(t, err)
	assert.Equal(t, "SGVsbG8=", sig)

	q := api.lastQuery(t)
	assert.Equal(t, testAddress, q.Get("address"))
	assert.Equal(t, "hello", q.Get("message"))
	assert.Equal(t, "alice", q.Get("username"))
}

func TestSendCoins(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodSendCoins, `{"error":false,"response":{}}`)
	creds := NewCredentials("alice", "hunter22")

	err := api.client().SendCoins(context.Background(), creds, testAddress, decimal.RequireFromString("1.5"))
	require.NoError(t, err)

	q := api.lastQuery(t)
	assert.Equal(t, MethodSendCoins, q.Get("method"))
	assert.Equal(t, testAddress, q.Get("address"))
	assert.Equal(t, "1.50000000", q.Get("amount"))
	assert.Equal(t, creds.PasswordHash, q.Get("password"))
}

func TestSendCoins_validation(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client()
	creds := NewCredentials("alice", "hunter22")

	err := c.SendCoins(context.Background(), creds, testAddress, decimal.Zero)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{{Field: "amount", Rule: "gt"}}, verr.Fields)

	err = c.SendCoins(context.Background(), creds, "oGxg7S7shs9uSKew1rRn7moRNhYm83jSo8", decimal.NewFromInt(1))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []FieldError{{Field: "address", Rule: "omcaddress"}}, verr.Fields)

	err = c.SendCoins(context.Background(), Credentials{}, testAddress, decimal.NewFromInt(-1))
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 3)

	assert.Equal(t, 0, api.requestCount())
}

func TestSendCoins_tooManyDecimalPlaces(t *testing.T) {
	api := newFakeAPI(t)
	c := api.client()
	creds := NewCredentials("alice", "hunter22")

	for _, amount := range []string{"0.000000001", "1.999999999"} {
		err := c.SendCoins(context.Background(), creds, testAddress, decimal.RequireFromString(amount))
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), amount)
		assert.Equal(t, []FieldError{{Field: "amount", Rule: "max_places"}}, verr.Fields)
	}
	assert.Equal(t, 0, api.requestCount())

	// trailing zeros past 8 places are not a loss of precision
	api.respond(MethodSendCoins, `{"error":false,"response":{}}`)
	err := c.SendCoins(context.Background(), creds, testAddress, decimal.RequireFromString("0.0000000100"))
	require.NoError(t, err)
	assert.Equal(t, "0.00000001", api.lastQuery(t).Get("amount"))
}

func TestImportPrivateKey(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodImportPrivateKey, `{"error":false,"response":{}}`)

	//nolint:staticcheck
	err := api.client().ImportPrivateKey(context.Background(), NewCredentials("alice", "hunter22"), "7key", testAddress)
	require.NoError(t, err)

	q := api.lastQuery(t)
	assert.Equal(t, "7key", q.Get("privkey"))
	assert.Equal(t, testAddress, q.Get("address"))
}

func TestChangePassword(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodChangePassword, `{"error":false,"response":{}}`)
	creds := NewCredentials("alice", "hunter22")

	updated, err := api.client().ChangePassword(context.Background(), creds, "correct horse", "")
	require.NoError(t, err)
	assert.Equal(t, NewCredentials("alice", "correct horse"), updated)

	q := api.lastQuery(t)
	assert.Equal(t, creds.PasswordHash, q.Get("password"))
	assert.Equal(t, HashPassword("correct horse"), q.Get("new_password"))
	assert.Equal(t, HashPassword("correct horse"), q.Get("confirm_password"))

	api.respond(MethodChangePassword, `{"error":true,"error_info":"BAD_LOGIN"}`)
	unchanged, err := api.client().ChangePassword(context.Background(), creds, "x", "x")
	assert.Error(t, err)
	assert.Equal(t, creds, unchanged)
}

func TestChangeEmail(t *testing.T) {
	api := newFakeAPI(t)
	api.respond(MethodChangeEmail, `{"error":false,"response":{}}`)

	err := api.client().ChangeEmail(context.Background(), NewCredentials("alice", "hunter22"), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", api.lastQuery(t).Get("email"))

	err = api.client().ChangeEmail(context.Background(), NewCredentials("alice", "hunter22"), "not-an-email")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, api.requestCount())
}
