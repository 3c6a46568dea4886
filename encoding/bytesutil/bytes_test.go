package bytesutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBytes8(t *testing.T) {
	assert.Equal(t, [8]byte{1, 2, 3}, ToBytes8([]byte{1, 2, 3}))
	assert.Equal(t, [8]byte{1, 2, 3, 4, 5, 6, 7, 8}, ToBytes8([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9}))
}

func TestToBytes32(t *testing.T) {
	b := ToBytes32([]byte{0xff})
	assert.Equal(t, byte(0xff), b[0])
	assert.Equal(t, byte(0), b[31])
}

func TestUint64LittleEndianRoundTrip(t *testing.T) {
	for _, v := range []uint64{0, 1, 255, 256, 1 << 32, 1<<64 - 1} {
		assert.Equal(t, v, BytesToUint64LittleEndian(Uint64ToBytesLittleEndian(v)))
	}
	assert.Equal(t, uint64(0), BytesToUint64LittleEndian([]byte{1, 2, 3}))
}

func TestSafeCopyBytes(t *testing.T) {
	src := []byte{1, 2, 3}
	cp := SafeCopyBytes(src)
	assert.Equal(t, src, cp)
	cp[0] = 9
	assert.Equal(t, byte(1), src[0])
	assert.Nil(t, SafeCopyBytes(nil))
}
