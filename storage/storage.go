// Package storage defines the key-value contract used to persist calculator state.
//
// Values are opaque byte slices (snapshot envelopes). Implementations must be
// safe for concurrent use.
package storage

import "errors"

// ErrQuotaExceeded is returned by Set when the store cannot hold the value.
// The history store reacts by truncating and retrying once.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// KV is a string-keyed byte store.
type KV interface {
	// Get returns the value for key. ok is false when the key does not exist.
	Get(key string) (value []byte, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}
