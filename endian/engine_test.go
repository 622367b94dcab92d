package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngines(t *testing.T) {
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
}

// TestForBigEndian verifies the flag selects the matching byte order
func TestForBigEndian(t *testing.T) {
	buf := make([]byte, 4)

	ForBigEndian(false).PutUint32(buf, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, buf)

	ForBigEndian(true).PutUint32(buf, 0x01020304)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)

	appended := ForBigEndian(false).AppendUint16(nil, 0xAB10)
	require.Equal(t, []byte{0x10, 0xAB}, appended)
}
