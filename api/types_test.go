package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_dates(t *testing.T) {
	cases := map[string]time.Time{
		`{"date":"2015-03-15 10:20:30"}`: time.Date(2015, 3, 15, 10, 20, 30, 0, time.UTC),
		`{"date":1426415000}`:            time.Unix(1426415000, 0).UTC(),
		`{"date":"1426415000"}`:          time.Unix(1426415000, 0).UTC(),
		`{"date":null}`:                  {},
		`{}`:                             {},
	}

	for input, want := range cases {
		var tx Transaction
		require.NoError(t, json.Unmarshal([]byte(input), &tx), input)
		assert.True(t, want.Equal(tx.Date), input)
	}

	var tx Transaction
	assert.Error(t, json.Unmarshal([]byte(`{"date":"yesterday"}`), &tx))
}

func TestTransaction_roundTripKeepsLayout(t *testing.T) {
	tx := Transaction{
		Date:          time.Date(2015, 3, 15, 10, 20, 30, 0, time.UTC),
		Hash:          "ab",
		Amount:        decimal.RequireFromString("-2.5"),
		Confirmations: 6,
	}

	data, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"date":"2015-03-15 10:20:30"`)
	assert.Contains(t, string(data), `"tx_hash":"ab"`)

	var back Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, tx.Date.Equal(back.Date))
	assert.True(t, tx.Amount.Equal(back.Amount))
}

func TestTransaction_TxHash(t *testing.T) {
	tx := Transaction{Hash: "6f2a5c4a26c5dbc8b6fcdf6f00ef1e4ab4c1c5a6b0e1c1d5c6e1f9c9e02b3d4f"}
	hash, err := tx.TxHash()
	require.NoError(t, err)
	assert.Equal(t, tx.Hash, hash.String())

	_, err = Transaction{Hash: "zz"}.TxHash()
	assert.Error(t, err)
}
