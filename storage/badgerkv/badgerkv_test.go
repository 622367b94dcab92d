package badgerkv

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/abacus/storage"
)

// TestOpenInMemory verifies the in-memory store reads back what it writes.
func TestOpenInMemory(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("calculator-history")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("calculator-history", []byte("[]")))
	v, ok, err := s.Get("calculator-history")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("[]"), v)

	require.NoError(t, s.Delete("calculator-history"))
	require.NoError(t, s.Delete("calculator-history"))
	_, ok, err = s.Get("calculator-history")
	require.NoError(t, err)
	require.False(t, ok)
}

// TestOpen_Persistent verifies values survive close and reopen.
func TestOpen_Persistent(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig(dir)
	cfg.SyncWrites = false
	cfg.GCInterval = time.Hour
	cfg.Logger = slog.New(slog.DiscardHandler)

	s, err := Open(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Set("calculator-storage", []byte(`{"angleMode":"rad","memory":4}`)))
	require.NoError(t, s.Close())

	s2, err := Open(cfg)
	require.NoError(t, err)
	defer s2.Close()

	v, ok, err := s2.Get("calculator-storage")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"angleMode":"rad","memory":4}`, string(v))
}

// TestOpen_Validation verifies invalid configurations are rejected.
func TestOpen_Validation(t *testing.T) {
	_, err := Open(Config{})
	require.Error(t, err)

	cfg := InMemoryConfig()
	cfg.MaxValueSize = -1
	_, err = Open(cfg)
	require.Error(t, err)
}

// TestSet_MaxValueSize verifies oversize values map to storage.ErrQuotaExceeded.
func TestSet_MaxValueSize(t *testing.T) {
	cfg := InMemoryConfig()
	cfg.MaxValueSize = 16

	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", []byte("small")))
	err = s.Set("k", bytes.Repeat([]byte("x"), 17))
	require.ErrorIs(t, err, storage.ErrQuotaExceeded)

	v, _, err := s.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("small"), v)
}

// TestKeyPrefix verifies stores with different prefixes do not see each other's keys.
func TestKeyPrefix(t *testing.T) {
	cfg := InMemoryConfig()
	s, err := Open(cfg)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("k", []byte("v")))

	other := &Store{db: s.db, prefix: "other/"}
	_, ok, err := other.Get("k")
	require.NoError(t, err)
	require.False(t, ok)
}

// TestGCRunner verifies runner validation and idempotent stop.
func TestGCRunner(t *testing.T) {
	_, err := NewGCRunner(nil, time.Second, 0.5, nil)
	require.Error(t, err)

	s, err := OpenInMemory()
	require.NoError(t, err)
	defer s.Close()

	_, err = NewGCRunner(s.db, 0, 0.5, nil)
	require.Error(t, err)
	_, err = NewGCRunner(s.db, time.Second, 1.5, nil)
	require.Error(t, err)

	r, err := NewGCRunner(s.db, 10*time.Millisecond, 0.5, nil)
	require.NoError(t, err)
	r.Start()
	r.Start()
	time.Sleep(30 * time.Millisecond)
	r.Stop()
	r.Stop()

	unstarted, err := NewGCRunner(s.db, time.Second, 0.5, nil)
	require.NoError(t, err)
	unstarted.Stop()
}
