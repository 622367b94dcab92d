// Package compress provides the payload codecs applied to persisted calculator snapshots.
//
// A snapshot (the JSON form of the history list or of the session state) is optionally
// compressed before it is wrapped in a section envelope and handed to the key-value store.
// Compression matters when the store enforces a small quota, as browser-style local storage
// and size-capped embedded stores do.
//
// Supported algorithms:
//   - None: payload stored as-is (default)
//   - Zstd: best ratio, pure Go (klauspost/compress) unless built with the gozstd tag
//   - S2: fast with a good ratio
//   - LZ4: fastest decompression
//
// All codecs are stateless values and safe for concurrent use.
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	packed, err := codec.Compress(payload)
//	original, err := codec.Decompress(packed)
package compress
