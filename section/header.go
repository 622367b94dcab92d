package section

import (
	"github.com/arloliu/abacus/format"
)

// Header represents the fixed-size header at the start of a snapshot envelope.
type Header struct {
	// Flag is a packed field for the magic number, byte order and codec.
	Flag Flag // byte offset 0-3
	// PayloadLength is the number of payload bytes following the header, as stored.
	PayloadLength uint32 // byte offset 4-7
	// RawLength is the length of the JSON document before compression.
	RawLength uint32 // byte offset 8-11
	// Checksum is the xxHash64 of the uncompressed JSON document.
	Checksum uint64 // byte offset 12-19
}

// NewHeader creates a little-endian header for the given codec.
// Lengths and checksum are filled in by Seal.
func NewHeader(compression format.CompressionType) *Header {
	return &Header{Flag: NewFlag(compression)}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data has the wrong length, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return ErrInvalidHeaderSize
	}

	// Options are always little-endian; they name the byte order of everything else.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.CompressionType = format.CompressionType(data[2])
	if data[3] != 0 {
		return ErrReservedBits
	}

	engine := h.Flag.GetEndianEngine()
	h.PayloadLength = engine.Uint32(data[4:8])
	h.RawLength = engine.Uint32(data[8:12])
	h.Checksum = engine.Uint64(data[12:20])

	return h.Flag.Validate()
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.put(b)

	return b
}

func (h *Header) put(b []byte) {
	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = byte(h.Flag.CompressionType)
	b[3] = 0
	engine.PutUint32(b[4:8], h.PayloadLength)
	engine.PutUint32(b[8:12], h.RawLength)
	engine.PutUint64(b[12:20], h.Checksum)
}

// ParseHeader parses a Header from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice beginning with a header (must be at least HeaderSize bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: ErrInvalidHeaderSize or flag validation errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
