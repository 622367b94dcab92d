package storage

import (
	"fmt"
	"sync"

	"github.com/arloliu/abacus/internal/options"
)

// MemoryOption configures a Memory store.
type MemoryOption = options.Option[*Memory]

// WithQuota limits the total size of keys plus values in bytes. Zero means unlimited.
func WithQuota(bytes int) MemoryOption {
	return options.New(func(m *Memory) error {
		if bytes < 0 {
			return fmt.Errorf("storage: negative quota %d", bytes)
		}
		m.quota = bytes

		return nil
	})
}

// Memory is an in-process KV, optionally bounded by a byte quota the way
// browser local storage is.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	used  int
	quota int
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) (*Memory, error) {
	m := &Memory{data: make(map[string][]byte)}
	if err := options.Apply(m, opts...); err != nil {
		return nil, err
	}

	return m, nil
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value. It returns ErrQuotaExceeded, leaving the previous
// value in place, when the new total would exceed the quota.
func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used
	if old, ok := m.data[key]; ok {
		used -= len(key) + len(old)
	}
	used += len(key) + len(value)

	if m.quota > 0 && used > m.quota {
		return fmt.Errorf("%w: %d bytes requested, quota %d", ErrQuotaExceeded, used, m.quota)
	}

	m.data[key] = append([]byte(nil), value...)
	m.used = used

	return nil
}

// Delete removes key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.data[key]; ok {
		m.used -= len(key) + len(old)
		delete(m.data, key)
	}

	return nil
}

// Used returns the bytes currently accounted against the quota.
func (m *Memory) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.used
}
