package section

import "errors"

const (
	// Bit masks
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	ReservedBitsMask = 0x000D // Mask for reserved bits (bits 0, 2, 3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicSnapshotV1Opt is the version 1 magic number for snapshot envelopes.
	MagicSnapshotV1Opt = 0xAB10
)

const (
	HeaderSize     = 20       // fixed envelope header size in bytes
	MaxPayloadSize = 64 << 20 // upper bound for both stored and raw payload lengths
)

var (
	ErrInvalidHeaderSize  = errors.New("section: invalid header size")
	ErrInvalidMagic       = errors.New("section: invalid magic number")
	ErrReservedBits       = errors.New("section: reserved bits set")
	ErrInvalidCompression = errors.New("section: invalid compression type")
	ErrPayloadTruncated   = errors.New("section: payload length mismatch")
	ErrPayloadTooLarge    = errors.New("section: payload too large")
	ErrChecksumMismatch   = errors.New("section: checksum mismatch")
	ErrEmptySnapshot      = errors.New("section: empty snapshot")
)
