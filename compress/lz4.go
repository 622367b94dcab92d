package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// maxLZ4RawSize bounds the decoded size announced by a block prefix.
const maxLZ4RawSize = 64 << 20

var (
	errLZ4Truncated = errors.New("lz4: truncated size prefix")
	errLZ4TooLarge  = errors.New("lz4: decoded size exceeds limit")
	errLZ4Length    = errors.New("lz4: decoded size mismatch")
)

var lz4Compressors = sync.Pool{
	New: func() any { return new(lz4.Compressor) },
}

// LZ4Compressor stores a uvarint raw length followed by one LZ4 block.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress encodes data as a size-prefixed LZ4 block.
//
// Incompressible input, for which CompressBlock writes nothing, is stored as a
// single run of literals that UncompressBlock still accepts.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := make([]byte, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data)))
	prefix := binary.PutUvarint(out, uint64(len(data)))

	lc, _ := lz4Compressors.Get().(*lz4.Compressor)
	n, err := lc.CompressBlock(data, out[prefix:])
	lz4Compressors.Put(lc)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}
	if n == 0 {
		return appendLiteralRun(out[:prefix], data), nil
	}

	return out[:prefix+n], nil
}

// Decompress reads the size prefix and decodes the block into an exact-size buffer.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, prefix := binary.Uvarint(data)
	switch {
	case prefix <= 0:
		return nil, errLZ4Truncated
	case size > maxLZ4RawSize:
		return nil, fmt.Errorf("%w: %d", errLZ4TooLarge, size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[prefix:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(n) != size {
		return nil, fmt.Errorf("%w: got %d, want %d", errLZ4Length, n, size)
	}

	return out, nil
}

// appendLiteralRun appends data to dst as one LZ4 sequence with no match part.
func appendLiteralRun(dst, data []byte) []byte {
	n := len(data)
	if n < 15 {
		dst = append(dst, byte(n<<4))
		return append(dst, data...)
	}

	dst = append(dst, 0xF0)
	for rest := n - 15; ; rest -= 255 {
		if rest < 255 {
			dst = append(dst, byte(rest))
			break
		}
		dst = append(dst, 255)
	}

	return append(dst, data...)
}
