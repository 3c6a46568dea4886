// Package layout implements the fixed binary wire format of program event
// payloads: little-endian fixed-width integers, single-byte booleans,
// 32-byte addresses, and length-prefixed UTF-8 strings. Decoding fails soft
// with ErrUndecodable on truncated or malformed input; transaction logs from
// older protocol generations carry different field sets and must never
// abort a history scan.
package layout

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/verdictlabs/verdict-go/types"
)

// ErrUndecodable indicates a payload that does not conform to the expected
// schema width. Callers recover by skipping the payload.
var ErrUndecodable = errors.New("payload not decodable")

// Decoder reads a structured payload from a byte slice.
type Decoder struct {
	buf []byte
	off int
}

// NewDecoder returns a decoder positioned at the start of buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.off
}

func (d *Decoder) read(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, errors.Wrapf(ErrUndecodable, "need %d bytes, have %d", n, d.Remaining())
	}
	b := d.buf[d.off : d.off+n]
	d.off += n
	return b, nil
}

// Uint8 reads a single byte.
func (d *Decoder) Uint8() (uint8, error) {
	b, err := d.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16 reads a little-endian uint16.
func (d *Decoder) Uint16() (uint16, error) {
	b, err := d.read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint32 reads a little-endian uint32.
func (d *Decoder) Uint32() (uint32, error) {
	b, err := d.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint64 reads a little-endian uint64.
func (d *Decoder) Uint64() (uint64, error) {
	b, err := d.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Int64 reads a little-endian two's-complement int64.
func (d *Decoder) Int64() (int64, error) {
	v, err := d.Uint64()
	return int64(v), err
}

// Bool reads a single strict 0/1 byte.
func (d *Decoder) Bool() (bool, error) {
	b, err := d.Uint8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errors.Wrapf(ErrUndecodable, "invalid bool byte %#x", b)
	}
}

// Address reads a 32-byte account address.
func (d *Decoder) Address() (types.Address, error) {
	var a types.Address
	b, err := d.read(types.AddressLength)
	if err != nil {
		return a, err
	}
	copy(a[:], b)
	return a, nil
}

// String reads a 4-byte little-endian length prefix followed by that many
// UTF-8 bytes.
func (d *Decoder) String() (string, error) {
	n, err := d.Uint32()
	if err != nil {
		return "", err
	}
	if uint64(n) > uint64(d.Remaining()) {
		return "", errors.Wrapf(ErrUndecodable, "string length %d exceeds remaining %d", n, d.Remaining())
	}
	b, err := d.read(int(n))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.Wrap(ErrUndecodable, "string is not valid utf-8")
	}
	return string(b), nil
}

// Encoder writes the symmetric wire format. It exists so tests can round
// trip payloads and so fixtures match the program's encoding exactly.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded payload.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// PutUint8 appends a single byte.
func (e *Encoder) PutUint8(v uint8) {
	e.buf = append(e.buf, v)
}

// PutUint16 appends a little-endian uint16.
func (e *Encoder) PutUint16(v uint16) {
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

// PutUint32 appends a little-endian uint32.
func (e *Encoder) PutUint32(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

// PutUint64 appends a little-endian uint64.
func (e *Encoder) PutUint64(v uint64) {
	e.buf = binary.LittleEndian.AppendUint64(e.buf, v)
}

// PutInt64 appends a little-endian two's-complement int64.
func (e *Encoder) PutInt64(v int64) {
	e.PutUint64(uint64(v))
}

// PutBool appends a strict 0/1 byte.
func (e *Encoder) PutBool(v bool) {
	if v {
		e.PutUint8(1)
		return
	}
	e.PutUint8(0)
}

// PutAddress appends a 32-byte account address.
func (e *Encoder) PutAddress(a types.Address) {
	e.buf = append(e.buf, a[:]...)
}

// PutString appends a 4-byte little-endian length prefix and the string
// bytes.
func (e *Encoder) PutString(s string) {
	e.PutUint32(uint32(len(s)))
	e.buf = append(e.buf, s...)
}
