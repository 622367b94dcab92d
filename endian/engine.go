// Package endian provides the byte order engines used by the snapshot envelope header.
//
// Envelopes are written little-endian by default. A flag bit in the header records the
// byte order, so readers always pick the engine from the header instead of the host:
//
//	engine := endian.ForBigEndian(header.Flag.IsBigEndian())
//	length := engine.Uint32(data[4:8])
//
// All functions and the returned engines are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForBigEndian returns the big-endian engine when bigEndian is true and the
// little-endian engine otherwise.
func ForBigEndian(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}
