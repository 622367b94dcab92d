package hash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.id, Checksum([]byte(tt.data)))
		})
	}
}

// TestChecksum_DetectsChange verifies a single flipped byte changes the checksum
func TestChecksum_DetectsChange(t *testing.T) {
	payload := []byte(`[{"id":"a","expression":"2 + 3","result":5}]`)
	original := Checksum(payload)

	tampered := append([]byte(nil), payload...)
	tampered[len(tampered)-3] = '6'

	require.NotEqual(t, original, Checksum(tampered))
}
