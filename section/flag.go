package section

import (
	"github.com/arloliu/abacus/endian"
	"github.com/arloliu/abacus/format"
)

// Flag represents the packed leading fields of the envelope header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 0, 2 and 3 are reserved, must be set to 0.
	// Bits 4-15 are the magic number identifying the envelope version.
	Options uint16

	// CompressionType is the codec applied to the payload.
	CompressionType format.CompressionType
}

// NewFlag creates a little-endian Flag for the given compression type.
func NewFlag(compression format.CompressionType) Flag {
	return Flag{
		Options:         MagicSnapshotV1Opt,
		CompressionType: compression,
	}
}

// IsBigEndian returns whether the header fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithBigEndian marks the header fields as big-endian.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian marks the header fields as little-endian.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// GetEndianEngine returns the byte order engine named by the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	return endian.ForBigEndian(f.IsBigEndian())
}

// Validate checks the magic number, reserved bits and compression type.
func (f Flag) Validate() error {
	if f.Options&MagicNumberMask != MagicSnapshotV1Opt {
		return ErrInvalidMagic
	}
	if f.Options&ReservedBitsMask != 0 {
		return ErrReservedBits
	}
	if !f.CompressionType.IsValid() {
		return ErrInvalidCompression
	}

	return nil
}
