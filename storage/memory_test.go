package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMemory_GetSetDelete verifies basic key-value behavior.
func TestMemory_GetSetDelete(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)

	_, ok, err := m.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Set("k", []byte("v1")))
	require.NoError(t, m.Set("k", []byte("v22")))

	v, ok, err := m.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v22"), v)
	require.Equal(t, 4, m.Used())

	require.NoError(t, m.Delete("k"))
	require.NoError(t, m.Delete("k"))
	_, ok, _ = m.Get("k")
	require.False(t, ok)
	require.Zero(t, m.Used())
}

// TestMemory_ValuesAreCopied verifies callers cannot mutate stored bytes.
func TestMemory_ValuesAreCopied(t *testing.T) {
	m, err := NewMemory()
	require.NoError(t, err)

	in := []byte("abc")
	require.NoError(t, m.Set("k", in))
	in[0] = 'z'

	out, _, _ := m.Get("k")
	out[1] = 'z'

	again, _, _ := m.Get("k")
	require.Equal(t, []byte("abc"), again)
}

// TestMemory_Quota verifies oversize writes fail and keep the old value.
func TestMemory_Quota(t *testing.T) {
	m, err := NewMemory(WithQuota(10))
	require.NoError(t, err)

	require.NoError(t, m.Set("k", []byte("12345")))
	err = m.Set("k", []byte("1234567890"))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	v, _, _ := m.Get("k")
	require.Equal(t, []byte("12345"), v)

	// Replacing a value only counts the difference.
	require.NoError(t, m.Set("k", []byte("123456789")))

	_, err = NewMemory(WithQuota(-1))
	require.Error(t, err)
}
