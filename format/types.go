// Package format defines the enumerations shared by the persistence layer.
package format

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCompression is returned when a compression name or value is not recognized.
var ErrUnknownCompression = errors.New("unknown compression type")

// CompressionType identifies the codec applied to a snapshot payload.
// It occupies one byte of the envelope header, so values are stable.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

// compressionNames is indexed by CompressionType; slot 0 is unused.
var compressionNames = [...]string{
	CompressionNone: "None",
	CompressionZstd: "Zstd",
	CompressionS2:   "S2",
	CompressionLZ4:  "LZ4",
}

func (c CompressionType) String() string {
	if !c.IsValid() {
		return "Unknown"
	}

	return compressionNames[c]
}

// IsValid reports whether c is one of the known compression types.
func (c CompressionType) IsValid() bool {
	return int(c) < len(compressionNames) && compressionNames[c] != ""
}

// ParseCompression parses a case-insensitive compression name ("none", "zstd", "s2", "lz4").
// The empty string maps to CompressionNone.
func ParseCompression(s string) (CompressionType, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return CompressionNone, nil
	}
	for i, known := range compressionNames {
		if known != "" && strings.EqualFold(known, name) {
			return CompressionType(i), nil //nolint:gosec // table is tiny
		}
	}

	return 0, fmt.Errorf("%w %q", ErrUnknownCompression, s)
}

// MarshalText implements encoding.TextMarshaler with lowercase names.
func (c CompressionType) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}

	return []byte(strings.ToLower(compressionNames[c])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CompressionType) UnmarshalText(text []byte) error {
	parsed, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}
