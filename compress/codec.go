package compress

import (
	"errors"
	"fmt"

	"github.com/arloliu/abacus/format"
)

// ErrUnsupportedCompression is returned for compression types without a codec.
var ErrUnsupportedCompression = errors.New("unsupported compression type")

// Compressor compresses a complete snapshot payload.
//
// The returned slice is owned by the caller; the input slice is not modified,
// except that the no-op codec returns the input itself.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload produced by the matching Compressor.
//
// Decompress returns an error when the input is corrupted or was produced by a
// different algorithm. Empty input yields a nil result and no error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec compresses and decompresses snapshot payloads with one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// constructors maps each envelope compression type to its codec.
var constructors = map[format.CompressionType]func() Codec{
	format.CompressionNone: func() Codec { return NewNoOpCompressor() },
	format.CompressionZstd: func() Codec { return NewZstdCompressor() },
	format.CompressionS2:   func() Codec { return NewS2Compressor() },
	format.CompressionLZ4:  func() Codec { return NewLZ4Compressor() },
}

// shared holds one codec per type; every codec is safe for concurrent use.
var shared = func() map[format.CompressionType]Codec {
	m := make(map[format.CompressionType]Codec, len(constructors))
	for t, newCodec := range constructors {
		m[t] = newCodec()
	}

	return m
}()

// CreateCodec returns a new Codec for compressionType.
//
// Parameters:
//   - compressionType: None, Zstd, S2 or LZ4
//   - target: What the codec is for, used in the error message ("history", "snapshot")
//
// Returns:
//   - Codec: A codec owned by the caller
//   - error: ErrUnsupportedCompression for unknown types
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	newCodec, ok := constructors[compressionType]
	if !ok {
		return nil, fmt.Errorf("%w for %s: %s", ErrUnsupportedCompression, target, compressionType)
	}

	return newCodec(), nil
}

// GetCodec returns the shared Codec for compressionType, used when reading envelopes.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	codec, ok := shared[compressionType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, compressionType)
	}

	return codec, nil
}
