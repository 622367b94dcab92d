package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the built-in codecs.
//
// The default build uses the pure Go klauspost/compress implementation. Building with
// the gozstd tag (and cgo enabled) switches to the libzstd bindings from valyala/gozstd.
// Both produce standard zstd frames, so snapshots stay readable across builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
