// Package history keeps the bounded, persisted list of past calculations.
//
// Items are ordered newest first. Every mutation is written to the key-value
// store as a section envelope; persistence failures are logged and never
// returned to the caller.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/abacus/format"
	"github.com/arloliu/abacus/internal/options"
	"github.com/arloliu/abacus/section"
	"github.com/arloliu/abacus/storage"
)

const (
	DefaultCapacity = 100
	DefaultKey      = "calculator-history"
)

// Store is a capacity-bounded, newest-first list of Items. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	items []Item

	kv          storage.KV
	key         string
	capacity    int
	compression format.CompressionType
	now         func() time.Time
	newID       func() string
	logger      *slog.Logger
}

// Option configures a Store.
type Option = options.Option[*Store]

// WithCapacity sets the maximum number of items kept.
func WithCapacity(n int) Option {
	return options.New(func(s *Store) error {
		if n <= 0 {
			return fmt.Errorf("history: capacity must be positive, got %d", n)
		}
		s.capacity = n

		return nil
	})
}

// WithKey sets the storage key.
func WithKey(key string) Option {
	return options.New(func(s *Store) error {
		if key == "" {
			return errors.New("history: empty storage key")
		}
		s.key = key

		return nil
	})
}

// WithCompression sets the codec used for the persisted snapshot.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(s *Store) error {
		if !compression.IsValid() {
			return fmt.Errorf("history: invalid compression %d", uint8(compression))
		}
		s.compression = compression

		return nil
	})
}

// WithClock sets the time source for item timestamps.
func WithClock(now func() time.Time) Option {
	return options.NoError(func(s *Store) {
		if now != nil {
			s.now = now
		}
	})
}

// WithIDGenerator sets the item id source.
func WithIDGenerator(newID func() string) Option {
	return options.NoError(func(s *Store) {
		if newID != nil {
			s.newID = newID
		}
	})
}

// WithLogger sets the logger for persistence warnings.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	})
}

// New creates a Store backed by kv and loads any persisted history.
//
// A nil kv keeps history in memory only. Unreadable persisted data is logged
// and replaced by an empty history; only invalid options produce an error.
func New(kv storage.KV, opts ...Option) (*Store, error) {
	s := &Store{
		kv:          kv,
		key:         DefaultKey,
		capacity:    DefaultCapacity,
		compression: format.CompressionNone,
		now:         time.Now,
		newID:       uuid.NewString,
		logger:      slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	s.items = s.load()

	return s, nil
}

// Capacity returns the maximum number of items kept.
func (s *Store) Capacity() int {
	return s.capacity
}

// Add records c as the newest item, evicting the oldest items beyond capacity.
func (s *Store) Add(c Calculation) Item {
	item := Item{
		ID:         s.newID(),
		Expression: c.Expression,
		Result:     c.Value,
		Error:      c.Error,
		Timestamp:  s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]Item{item}, s.items...)
	if len(s.items) > s.capacity {
		s.items = s.items[:s.capacity]
	}
	s.persist()

	return item
}

// All returns a copy of every item, newest first.
func (s *Store) All() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Item(nil), s.items...)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}

	return Item{}, false
}

// Delete removes the item with the given id. Unknown ids are ignored.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.items[:0:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.persist()
}

// Clear removes every item.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Search returns the items whose expression contains query, ignoring case.
func (s *Store) Search(query string) []Item {
	needle := strings.ToLower(query)

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []Item
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Expression), needle) {
			found = append(found, item)
		}
	}

	return found
}

// Recent returns up to n newest items.
func (s *Store) Recent(n int) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n = max(0, min(n, len(s.items)))

	return append([]Item(nil), s.items[:n]...)
}

func (s *Store) load() []Item {
	if s.kv == nil {
		return nil
	}

	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		s.logger.Warn("failed to read history", slog.String("key", s.key), slog.String("error", err.Error()))
		return nil
	}
	if !ok {
		return nil
	}

	raw, err := section.Open(data)
	if err != nil {
		s.logger.Warn("discarding unreadable history", slog.String("key", s.key), slog.String("error", err.Error()))
		return nil
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warn("discarding corrupted history", slog.String("key", s.key), slog.String("error", err.Error()))
		return nil
	}
	if len(items) > s.capacity {
		items = items[:s.capacity]
	}
	s.logger.Debug("history loaded", slog.String("key", s.key), slog.Int("items", len(items)))

	return items
}

// persist writes the current items. On quota failure it keeps the newest
// capacity/2 items and retries exactly once. Callers hold s.mu.
func (s *Store) persist() {
	if s.kv == nil {
		return
	}

	err := s.write()
	if errors.Is(err, storage.ErrQuotaExceeded) {
		keep := s.capacity / 2
		if len(s.items) > keep {
			s.items = s.items[:keep]
		}
		s.logger.Warn("history quota exceeded, truncating", slog.String("key", s.key), slog.Int("kept", len(s.items)))
		err = s.write()
	}
	if err != nil {
		s.logger.Error("failed to save history", slog.String("key", s.key), slog.String("error", err.Error()))
	}
}

func (s *Store) write() error {
	items := s.items
	if items == nil {
		items = []Item{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	sealed, err := section.Seal(raw, section.WithCompression(s.compression))
	if err != nil {
		return fmt.Errorf("seal history: %w", err)
	}

	return s.kv.Set(s.key, sealed)
}
