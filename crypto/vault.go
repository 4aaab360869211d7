// Package crypto seals account credentials on disk with a password derived key.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	ScryptN = 32768 // 2^15
	ScryptR = 8
	ScryptP = 1
	KeyLen  = 32 // AES-256 key length

	saltLen      = 32
	nonceLen     = 12
	vaultVersion = 1
)

// ErrWrongPassword is returned when the vault cannot be opened with the given password
var ErrWrongPassword = errors.New("invalid password")

// Vault is the encrypted form written to disk
type Vault struct {
	Version int    `json:"version"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	Data    []byte `json:"data"`
}

// VaultData is what a vault protects. Only the password hash is stored, never the password.
type VaultData struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email,omitempty"`
}

// Seal encrypts data with a key derived from password
func Seal(data VaultData, password string) (*Vault, error) {
	if password == "" {
		return nil, fmt.Errorf("vault password must not be empty")
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clearBytes(key)

	plaintext, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize vault data: %w", err)
	}
	defer clearBytes(plaintext)

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	return &Vault{
		Version: vaultVersion,
		Salt:    salt,
		Nonce:   nonce,
		Data:    gcm.Seal(nil, nonce, plaintext, nil),
	}, nil
}

// Open decrypts the vault. A wrong password yields ErrWrongPassword.
func (v *Vault) Open(password string) (*VaultData, error) {
	if v.Version > vaultVersion {
		return nil, fmt.Errorf("unsupported vault version %d", v.Version)
	}

	key, err := deriveKey(password, v.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}
	defer clearBytes(key)

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(v.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("corrupted vault: bad nonce length %d", len(v.Nonce))
	}

	plaintext, err := gcm.Open(nil, v.Nonce, v.Data, nil)
	if err != nil {
		return nil, ErrWrongPassword
	}
	defer clearBytes(plaintext)

	var data VaultData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("failed to deserialize vault data: %w", err)
	}

	return &data, nil
}

// ValidatePassword reports whether password opens the vault
func (v *Vault) ValidatePassword(password string) bool {
	_, err := v.Open(password)
	return err == nil
}

func deriveKey(password string, salt []byte) ([]byte, error) {
	key, err := scrypt.Key([]byte(password), salt, ScryptN, ScryptR, ScryptP, KeyLen)
	if err != nil {
		return nil, fmt.Errorf("scrypt key derivation failed: %w", err)
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
