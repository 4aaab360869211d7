package crypto

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	data := VaultData{Username: "alice", PasswordHash: "abc123", Email: "alice@example.com"}

	v, err := Seal(data, "correct horse")
	require.NoError(t, err)
	assert.Equal(t, vaultVersion, v.Version)
	assert.Len(t, v.Salt, saltLen)
	assert.Len(t, v.Nonce, nonceLen)
	assert.NotContains(t, string(v.Data), "alice")

	opened, err := v.Open("correct horse")
	require.NoError(t, err)
	assert.Equal(t, data, *opened)
	assert.True(t, v.ValidatePassword("correct horse"))
}

func TestOpen_wrongPassword(t *testing.T) {
	v, err := Seal(VaultData{Username: "alice"}, "right")
	require.NoError(t, err)

	_, err = v.Open("wrong")
	assert.True(t, errors.Is(err, ErrWrongPassword))
	assert.False(t, v.ValidatePassword("wrong"))
}

func TestSeal_uniqueSaltAndNonce(t *testing.T) {
	a, err := Seal(VaultData{Username: "alice"}, "pw")
	require.NoError(t, err)
	b, err := Seal(VaultData{Username: "alice"}, "pw")
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Nonce, b.Nonce)
	assert.NotEqual(t, a.Data, b.Data)
}

func TestSeal_emptyPassword(t *testing.T) {
	_, err := Seal(VaultData{Username: "alice"}, "")
	assert.Error(t, err)
}

func TestVault_survivesJSON(t *testing.T) {
	v, err := Seal(VaultData{Username: "bob", PasswordHash: "ff"}, "pw")
	require.NoError(t, err)

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var loaded Vault
	require.NoError(t, json.Unmarshal(raw, &loaded))

	data, err := loaded.Open("pw")
	require.NoError(t, err)
	assert.Equal(t, "bob", data.Username)
}

func TestOpen_corrupted(t *testing.T) {
	v, err := Seal(VaultData{Username: "alice"}, "pw")
	require.NoError(t, err)

	v.Nonce = v.Nonce[:4]
	_, err = v.Open("pw")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrWrongPassword))

	future := *v
	future.Version = vaultVersion + 1
	_, err = future.Open("pw")
	assert.Error(t, err)
}
