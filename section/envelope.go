package section

import (
	"bytes"
	"fmt"

	"github.com/arloliu/abacus/compress"
	"github.com/arloliu/abacus/format"
	"github.com/arloliu/abacus/internal/hash"
	"github.com/arloliu/abacus/internal/options"
	"github.com/arloliu/abacus/internal/pool"
)

// SealConfig holds the settings applied by Seal.
type SealConfig struct {
	Compression format.CompressionType
	BigEndian   bool
}

// SealOption configures Seal.
type SealOption = options.Option[*SealConfig]

// WithCompression selects the payload codec. The default is format.CompressionNone.
func WithCompression(compression format.CompressionType) SealOption {
	return options.New(func(cfg *SealConfig) error {
		if !compression.IsValid() {
			return fmt.Errorf("%w: %d", ErrInvalidCompression, uint8(compression))
		}
		cfg.Compression = compression

		return nil
	})
}

// WithBigEndian writes the header fields big-endian.
func WithBigEndian() SealOption {
	return options.NoError(func(cfg *SealConfig) {
		cfg.BigEndian = true
	})
}

// Seal wraps a JSON document in an envelope.
//
// Parameters:
//   - raw: JSON document to wrap (must not be empty)
//   - opts: Codec and byte order options
//
// Returns:
//   - []byte: Header followed by the (possibly compressed) payload
//   - error: ErrEmptySnapshot, ErrPayloadTooLarge, option or compression errors
func Seal(raw []byte, opts ...SealOption) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrEmptySnapshot
	}
	if len(raw) > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	cfg := &SealConfig{Compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.Compression, "snapshot")
	if err != nil {
		return nil, err
	}

	payload, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	header := NewHeader(cfg.Compression)
	if cfg.BigEndian {
		header.Flag.WithBigEndian()
	}
	header.PayloadLength = uint32(len(payload)) //nolint:gosec // bounded by MaxPayloadSize
	header.RawLength = uint32(len(raw))         //nolint:gosec // bounded by MaxPayloadSize
	header.Checksum = hash.Checksum(raw)

	frame := pool.GetSnapshotFrame()
	defer pool.PutSnapshotFrame(frame)

	off := frame.Reserve(HeaderSize)
	header.put(frame.At(off, HeaderSize))
	frame.Append(payload)

	return frame.Detach(), nil
}

// Open unwraps an envelope and returns the JSON document it carries.
//
// Data whose first non-space byte is '[' or '{' is treated as bare JSON and
// returned unchanged. For uncompressed envelopes the result aliases data.
//
// Returns:
//   - []byte: The JSON document
//   - error: Header validation, length, decompression or checksum errors
func Open(data []byte) ([]byte, error) {
	if IsBareJSON(data) {
		return data, nil
	}

	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if header.PayloadLength > MaxPayloadSize || header.RawLength > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	payload := data[HeaderSize:]
	if uint32(len(payload)) != header.PayloadLength { //nolint:gosec // len(payload) checked against MaxPayloadSize above
		return nil, fmt.Errorf("%w: header says %d bytes, found %d", ErrPayloadTruncated, header.PayloadLength, len(payload))
	}

	codec, err := compress.GetCodec(header.Flag.CompressionType)
	if err != nil {
		return nil, err
	}

	raw, err := codec.Decompress(payload)
	if err != nil {
		return nil, err
	}
	if uint32(len(raw)) != header.RawLength { //nolint:gosec // decompressors cap output size
		return nil, fmt.Errorf("%w: raw length %d, expected %d", ErrPayloadTruncated, len(raw), header.RawLength)
	}
	if hash.Checksum(raw) != header.Checksum {
		return nil, ErrChecksumMismatch
	}

	return raw, nil
}

// IsBareJSON reports whether data looks like an unwrapped JSON array or object.
func IsBareJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return false
	}

	return trimmed[0] == '[' || trimmed[0] == '{'
}
