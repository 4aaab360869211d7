package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/omchainkit/omchain/api"
	"github.com/omchainkit/omchain/crypto"
)

const (
	vaultFile   = "credentials.vault"
	sessionFile = "session.json"

	// DefaultSessionDuration is how long an unlocked session stays valid
	DefaultSessionDuration = 30 * time.Minute
)

var (
	// ErrLocked is returned when there is no valid session
	ErrLocked = errors.New("wallet is locked")
	// ErrNoVault is returned when no account has been saved yet
	ErrNoVault = errors.New("no saved account, run register or login first")
)

// Session is an unlocked account kept on disk between CLI invocations
type Session struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	Email        string    `json:"email,omitempty"`
	Token        string    `json:"token,omitempty"`
	Expiration   time.Time `json:"expiration"`
}

// Credentials returns what account requests are signed with
func (s *Session) Credentials() api.Credentials {
	return api.Credentials{Username: s.Username, PasswordHash: s.PasswordHash}
}

// Store keeps the encrypted credential vault and the session file in one directory
type Store struct {
	vaultPath   string
	sessionPath string
	duration    time.Duration
	now         func() time.Time
	mu          sync.Mutex
}

// NewStore creates a store rooted at dir. A zero duration means DefaultSessionDuration.
func NewStore(dir string, duration time.Duration) *Store {
	if duration <= 0 {
		duration = DefaultSessionDuration
	}
	return &Store{
		vaultPath:   filepath.Join(dir, vaultFile),
		sessionPath: filepath.Join(dir, sessionFile),
		duration:    duration,
		now:         time.Now,
	}
}

// VaultExists checks if a vault file exists
func (s *Store) VaultExists() bool {
	_, err := os.Stat(s.vaultPath)
	return err == nil
}

// Save seals data with password, replacing any previous vault, and starts a session
func (s *Store) Save(data crypto.VaultData, password, token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := crypto.Seal(data, password)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.vaultPath), 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	if err := writeJSON(s.vaultPath, vault); err != nil {
		return nil, fmt.Errorf("failed to save vault: %w", err)
	}

	return s.startSession(&data, token)
}

// Unlock opens the vault with password. A session that is still live is
// returned as is, otherwise a new one is started without a token.
func (s *Store) Unlock(password string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.loadVault()
	if err != nil {
		return nil, err
	}

	data, err := vault.Open(password)
	if err != nil {
		return nil, err
	}

	if session, err := s.loadSession(); err == nil {
		return session, nil
	}

	return s.startSession(data, "")
}

// CheckPassword returns crypto.ErrWrongPassword unless password opens the vault
func (s *Store) CheckPassword(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.loadVault()
	if err != nil {
		return err
	}
	if !vault.ValidatePassword(password) {
		return crypto.ErrWrongPassword
	}
	return nil
}

// Session returns the current session or ErrLocked
func (s *Store) Session() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSession()
}

// SetToken stores the server session token in the current session
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.loadSession()
	if err != nil {
		return err
	}

	session.Token = token
	if err := writeJSON(s.sessionPath, session); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Lock removes the session file. The vault stays.
func (s *Store) Lock() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.sessionPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

func (s *Store) startSession(data *crypto.VaultData, token string) (*Session, error) {
	session := &Session{
		Username:     data.Username,
		PasswordHash: data.PasswordHash,
		Email:        data.Email,
		Token:        token,
		Expiration:   s.now().Add(s.duration),
	}

	if err := writeJSON(s.sessionPath, session); err != nil {
		return nil, fmt.Errorf("failed to write session file: %w", err)
	}
	return session, nil
}

// loadSession reads the session file, dropping it when corrupted or expired
func (s *Store) loadSession() (*Session, error) {
	raw, err := os.ReadFile(s.sessionPath)
	if err != nil {
		return nil, ErrLocked
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		os.Remove(s.sessionPath)
		return nil, ErrLocked
	}

	if !s.now().Before(session.Expiration) {
		os.Remove(s.sessionPath)
		return nil, ErrLocked
	}

	return &session, nil
}

func (s *Store) loadVault() (*crypto.Vault, error) {
	raw, err := os.ReadFile(s.vaultPath)
	if os.IsNotExist(err) {
		return nil, ErrNoVault
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}

	var vault crypto.Vault
	if err := json.Unmarshal(raw, &vault); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault: %w", err)
	}
	return &vault, nil
}

func writeJSON(path string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
