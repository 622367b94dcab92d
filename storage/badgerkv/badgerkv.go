// Package badgerkv provides a BadgerDB-backed storage.KV for persistent calculator state.
//
// A Store owns its *badger.DB. For on-disk stores it also runs periodic value-log
// garbage collection until Close is called.
package badgerkv

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/arloliu/abacus/storage"
)

// Config holds configuration for a Store.
type Config struct {
	// Path is the directory for BadgerDB files. Required unless InMemory is true.
	Path string

	// InMemory keeps all data in RAM. Useful for tests and ephemeral sessions.
	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool

	// MaxValueSize caps a single stored value in bytes; larger writes fail with
	// storage.ErrQuotaExceeded. Zero means no cap beyond Badger's own limits.
	MaxValueSize int

	// KeyPrefix namespaces every key written by this store.
	KeyPrefix string

	// GCInterval is how often value-log GC runs. Zero disables it.
	GCInterval time.Duration

	// GCDiscardRatio is the minimum discardable fraction before a value log is rewritten.
	GCDiscardRatio float64

	// Logger receives Badger's internal logs. Nil silences them.
	Logger *slog.Logger
}

// DefaultConfig returns the configuration used for on-disk stores.
func DefaultConfig(path string) Config {
	return Config{
		Path:           path,
		SyncWrites:     true,
		KeyPrefix:      "abacus/",
		GCInterval:     5 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

// InMemoryConfig returns a configuration for an in-memory store without GC.
func InMemoryConfig() Config {
	return Config{
		InMemory:  true,
		KeyPrefix: "abacus/",
	}
}

// badgerLogger adapts slog.Logger to BadgerDB's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store is a storage.KV backed by BadgerDB.
type Store struct {
	db       *badger.DB
	gc       *GCRunner
	prefix   string
	maxValue int
}

var _ storage.KV = (*Store)(nil)

// Open opens a Store with the given configuration.
//
// Parameters:
//   - cfg: Store configuration. Path is required unless InMemory is true.
//
// Returns:
//   - *Store: The opened store. Caller must call Close when done.
//   - error: Invalid configuration or database open failure
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("badgerkv: path is required for persistent store")
	}
	if cfg.MaxValueSize < 0 {
		return nil, fmt.Errorf("badgerkv: negative max value size %d", cfg.MaxValueSize)
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}

	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	s := &Store{db: db, prefix: cfg.KeyPrefix, maxValue: cfg.MaxValueSize}

	if cfg.GCInterval > 0 && !cfg.InMemory {
		runner, err := NewGCRunner(db, cfg.GCInterval, cfg.GCDiscardRatio, cfg.Logger)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create GC runner: %w", err)
		}
		s.gc = runner
		runner.Start()
	}

	return s, nil
}

// OpenInMemory opens an in-memory Store with default settings.
func OpenInMemory() (*Store, error) {
	return Open(InMemoryConfig())
}

// Get returns the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badgerkv get %q: %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key. Values above MaxValueSize, and values Badger
// rejects as too big for a transaction, fail with storage.ErrQuotaExceeded.
func (s *Store) Set(key string, value []byte) error {
	if s.maxValue > 0 && len(value) > s.maxValue {
		return fmt.Errorf("%w: value of %d bytes exceeds limit %d", storage.ErrQuotaExceeded, len(value), s.maxValue)
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), value)
	})
	if errors.Is(err, badger.ErrTxnTooBig) {
		return fmt.Errorf("%w: %w", storage.ErrQuotaExceeded, err)
	}
	if err != nil {
		return fmt.Errorf("badgerkv set %q: %w", key, err)
	}

	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(key))
	})
	if err != nil {
		return fmt.Errorf("badgerkv delete %q: %w", key, err)
	}

	return nil
}

// Close stops garbage collection and closes the database.
func (s *Store) Close() error {
	if s.gc != nil {
		s.gc.Stop()
		s.gc = nil
	}

	return s.db.Close()
}

func (s *Store) key(k string) []byte {
	return []byte(s.prefix + k)
}
