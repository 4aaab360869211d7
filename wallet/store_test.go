package wallet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/omchainkit/omchain/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *time.Time) {
	t.Helper()
	now := time.Date(2015, 3, 15, 10, 0, 0, 0, time.UTC)
	s := NewStore(filepath.Join(t.TempDir(), "omchain"), 0)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestStore_saveAndSession(t *testing.T) {
	s, _ := newTestStore(t)
	assert.False(t, s.VaultExists())

	data := crypto.VaultData{Username: "alice", PasswordHash: "hash", Email: "a@example.com"}
	session, err := s.Save(data, "pw", "tok")
	require.NoError(t, err)
	assert.True(t, s.VaultExists())
	assert.Equal(t, "tok", session.Token)
	assert.Equal(t, "alice", session.Credentials().Username)

	loaded, err := s.Session()
	require.NoError(t, err)
	assert.Equal(t, session.Username, loaded.Username)
	assert.Equal(t, session.PasswordHash, loaded.PasswordHash)
	assert.Equal(t, "a@example.com", loaded.Email)

	info, err := os.Stat(s.sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_expiry(t *testing.T) {
	s, now := newTestStore(t)
	_, err := s.Save(crypto.VaultData{Username: "alice", PasswordHash: "hash"}, "pw", "")
	require.NoError(t, err)

	*now = now.Add(DefaultSessionDuration - time.Second)
	_, err = s.Session()
	require.NoError(t, err)

	*now = now.Add(time.Second)
	_, err = s.Session()
	assert.True(t, errors.Is(err, ErrLocked))

	_, statErr := os.Stat(s.sessionPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_lockAndUnlock(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Save(crypto.VaultData{Username: "alice", PasswordHash: "hash"}, "pw", "tok")
	require.NoError(t, err)

	require.NoError(t, s.Lock())
	require.NoError(t, s.Lock())
	_, err = s.Session()
	assert.True(t, errors.Is(err, ErrLocked))

	_, err = s.Unlock("nope")
	assert.True(t, errors.Is(err, crypto.ErrWrongPassword))

	session, err := s.Unlock("pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.Empty(t, session.Token)

	require.NoError(t, s.SetToken("tok-2"))
	session, err = s.Session()
	require.NoError(t, err)
	assert.Equal(t, "tok-2", session.Token)
}

func TestStore_unlockChecksPasswordWithLiveSession(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Save(crypto.VaultData{Username: "alice", PasswordHash: "hash"}, "pw", "tok")
	require.NoError(t, err)

	_, err = s.Unlock("nope")
	assert.True(t, errors.Is(err, crypto.ErrWrongPassword))

	session, err := s.Unlock("pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
}

func TestStore_checkPassword(t *testing.T) {
	s, _ := newTestStore(t)
	assert.True(t, errors.Is(s.CheckPassword("pw"), ErrNoVault))

	_, err := s.Save(crypto.VaultData{Username: "alice", PasswordHash: "hash"}, "pw", "")
	require.NoError(t, err)

	assert.NoError(t, s.CheckPassword("pw"))
	assert.True(t, errors.Is(s.CheckPassword("nope"), crypto.ErrWrongPassword))
}

func TestStore_unlockWithoutVault(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Unlock("pw")
	assert.True(t, errors.Is(err, ErrNoVault))
	assert.True(t, errors.Is(s.SetToken("x"), ErrLocked))
}

func TestStore_corruptedSession(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Save(crypto.VaultData{Username: "alice", PasswordHash: "hash"}, "pw", "")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(s.sessionPath, []byte("{"), 0600))
	_, err = s.Session()
	assert.True(t, errors.Is(err, ErrLocked))
}
