// Package bytesutil defines helper methods for converting between byte
// slices and the fixed-width arrays used across the wire formats.
package bytesutil

import "encoding/binary"

// ToBytes8 is a convenience method for converting a byte slice to a fixed
// size 8 byte array. This method will truncate the input if it is larger
// than 8 bytes.
func ToBytes8(x []byte) [8]byte {
	var y [8]byte
	copy(y[:], x)
	return y
}

// ToBytes32 is a convenience method for converting a byte slice to a fixed
// size 32 byte array. This method will truncate the input if it is larger
// than 32 bytes.
func ToBytes32(x []byte) [32]byte {
	var y [32]byte
	copy(y[:], x)
	return y
}

// Uint64ToBytesLittleEndian conversion.
func Uint64ToBytesLittleEndian(i uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, i)
	return buf
}

// BytesToUint64LittleEndian conversion. Returns 0 if input is less than
// 8 bytes.
func BytesToUint64LittleEndian(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// SafeCopyBytes will copy and return a non-nil byte slice, otherwise it
// returns nil.
func SafeCopyBytes(cp []byte) []byte {
	if cp != nil {
		copied := make([]byte, len(cp))
		copy(copied, cp)
		return copied
	}
	return nil
}
