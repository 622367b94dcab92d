// Package section implements the envelope that wraps every persisted calculator snapshot.
//
// An envelope is a fixed 20-byte header followed by the payload:
//
//	+--------+-------------+----------+----------------+------------+------------------+
//	| 0..1   | 2           | 3        | 4..7           | 8..11      | 12..19           |
//	| flag   | compression | reserved | payload length | raw length | xxHash64 of JSON |
//	+--------+-------------+----------+----------------+------------+------------------+
//
// The flag packs a 12-bit magic number (0xAB1) in bits 4-15 and the byte order in bit 1.
// The flag itself is always little-endian; the remaining fields use the byte order it names.
// The checksum covers the uncompressed JSON, so a mismatch detects corruption introduced
// either before or after compression.
//
// Open also accepts a bare JSON array or object, which lets plain key-value stores
// (or hand-edited files) hold snapshots without an envelope.
package section
