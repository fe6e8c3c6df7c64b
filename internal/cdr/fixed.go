package cdr

import (
	"encoding/binary"
	"errors"
	"math"
)

// Errors returned while decoding CDR primitives.
var (
	// ErrTruncated indicates the input ended before a field could be read.
	ErrTruncated = errors.New("cdr: truncated input")

	// ErrBadHeader indicates the 4-byte representation identifier was not
	// one of the two recognized values.
	ErrBadHeader = errors.New("cdr: unrecognized representation identifier")

	// ErrNegativeLength indicates a decoded length prefix was invalid.
	ErrNegativeLength = errors.New("cdr: negative or invalid length")

	// ErrInvalidUTF8 indicates a string field was not valid UTF-8.
	ErrInvalidUTF8 = errors.New("cdr: invalid UTF-8 in string field")

	// ErrMissingTerminator indicates a CDR string was not NUL-terminated.
	ErrMissingTerminator = errors.New("cdr: string missing NUL terminator")
)

// Order selects the byte order used to encode/decode a CDR payload. It is
// determined once, from the 4-byte header, at the start of a decode.
type Order struct {
	bo binary.ByteOrder
	le bool
}

// LittleEndian is the little-endian CDR byte order.
var LittleEndian = Order{bo: binary.LittleEndian, le: true}

// BigEndian is the big-endian CDR byte order.
var BigEndian = Order{bo: binary.BigEndian, le: false}

// IsLittleEndian reports whether o is the little-endian order.
func (o Order) IsLittleEndian() bool { return o.le }

// Header returns the 4-byte representation identifier for o.
func (o Order) Header() [HeaderSize]byte {
	if o.le {
		return LittleEndianHeader
	}
	return BigEndianHeader
}

// DecodeHeader reads and validates the 4-byte representation identifier,
// returning the byte order it selects.
func DecodeHeader(data []byte) (Order, int, error) {
	if len(data) < HeaderSize {
		return Order{}, 0, ErrTruncated
	}
	switch {
	case data[0] == 0 && data[1] == 1 && data[2] == 0 && data[3] == 0:
		return LittleEndian, HeaderSize, nil
	case data[0] == 0 && data[1] == 0 && data[2] == 0 && data[3] == 0:
		return BigEndian, HeaderSize, nil
	default:
		return Order{}, 0, ErrBadHeader
	}
}

// AppendBool appends a 1-byte boolean, aligned(1).
func (o Order) AppendBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// DecodeBool reads a 1-byte boolean at payload offset pos.
func (o Order) DecodeBool(data []byte, pos int) (bool, int, error) {
	if pos >= len(data) {
		return false, pos, ErrTruncated
	}
	return data[pos] != 0, pos + 1, nil
}

// AppendU8 appends an unsigned 8-bit integer, aligned(1).
func (o Order) AppendU8(buf []byte, v uint8) []byte { return append(buf, v) }

// DecodeU8 reads an unsigned 8-bit integer at payload offset pos.
func (o Order) DecodeU8(data []byte, pos int) (uint8, int, error) {
	if pos >= len(data) {
		return 0, pos, ErrTruncated
	}
	return data[pos], pos + 1, nil
}

// AppendI8 appends a signed 8-bit integer, aligned(1).
func (o Order) AppendI8(buf []byte, v int8) []byte { return append(buf, byte(v)) }

// DecodeI8 reads a signed 8-bit integer at payload offset pos.
func (o Order) DecodeI8(data []byte, pos int) (int8, int, error) {
	u, n, err := o.DecodeU8(data, pos)
	return int8(u), n, err
}

// AppendU16 appends an aligned(2) unsigned 16-bit integer, padding buf
// first so that len(buf) is 2-aligned.
func (o Order) AppendU16(buf []byte, v uint16) []byte {
	buf = AppendPadding(buf, 2)
	var tmp [2]byte
	o.bo.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// DecodeU16 reads an aligned(2) unsigned 16-bit integer.
func (o Order) DecodeU16(data []byte, pos int) (uint16, int, error) {
	pos = AlignTo(pos, 2)
	if pos+2 > len(data) {
		return 0, pos, ErrTruncated
	}
	return o.bo.Uint16(data[pos:]), pos + 2, nil
}

// AppendI16 appends an aligned(2) signed 16-bit integer.
func (o Order) AppendI16(buf []byte, v int16) []byte { return o.AppendU16(buf, uint16(v)) }

// DecodeI16 reads an aligned(2) signed 16-bit integer.
func (o Order) DecodeI16(data []byte, pos int) (int16, int, error) {
	u, n, err := o.DecodeU16(data, pos)
	return int16(u), n, err
}

// AppendU32 appends an aligned(4) unsigned 32-bit integer.
func (o Order) AppendU32(buf []byte, v uint32) []byte {
	buf = AppendPadding(buf, 4)
	var tmp [4]byte
	o.bo.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// DecodeU32 reads an aligned(4) unsigned 32-bit integer.
func (o Order) DecodeU32(data []byte, pos int) (uint32, int, error) {
	pos = AlignTo(pos, 4)
	if pos+4 > len(data) {
		return 0, pos, ErrTruncated
	}
	return o.bo.Uint32(data[pos:]), pos + 4, nil
}

// AppendI32 appends an aligned(4) signed 32-bit integer.
func (o Order) AppendI32(buf []byte, v int32) []byte { return o.AppendU32(buf, uint32(v)) }

// DecodeI32 reads an aligned(4) signed 32-bit integer.
func (o Order) DecodeI32(data []byte, pos int) (int32, int, error) {
	u, n, err := o.DecodeU32(data, pos)
	return int32(u), n, err
}

// AppendU64 appends an aligned(8) unsigned 64-bit integer.
func (o Order) AppendU64(buf []byte, v uint64) []byte {
	buf = AppendPadding(buf, 8)
	var tmp [8]byte
	o.bo.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// DecodeU64 reads an aligned(8) unsigned 64-bit integer.
func (o Order) DecodeU64(data []byte, pos int) (uint64, int, error) {
	pos = AlignTo(pos, 8)
	if pos+8 > len(data) {
		return 0, pos, ErrTruncated
	}
	return o.bo.Uint64(data[pos:]), pos + 8, nil
}

// AppendI64 appends an aligned(8) signed 64-bit integer.
func (o Order) AppendI64(buf []byte, v int64) []byte { return o.AppendU64(buf, uint64(v)) }

// DecodeI64 reads an aligned(8) signed 64-bit integer.
func (o Order) DecodeI64(data []byte, pos int) (int64, int, error) {
	u, n, err := o.DecodeU64(data, pos)
	return int64(u), n, err
}

// AppendF32 appends an aligned(4) IEEE-754 single-precision float.
func (o Order) AppendF32(buf []byte, v float32) []byte {
	return o.AppendU32(buf, math.Float32bits(v))
}

// DecodeF32 reads an aligned(4) IEEE-754 single-precision float.
func (o Order) DecodeF32(data []byte, pos int) (float32, int, error) {
	u, n, err := o.DecodeU32(data, pos)
	return math.Float32frombits(u), n, err
}

// AppendF64 appends an aligned(8) IEEE-754 double-precision float.
func (o Order) AppendF64(buf []byte, v float64) []byte {
	return o.AppendU64(buf, math.Float64bits(v))
}

// DecodeF64 reads an aligned(8) IEEE-754 double-precision float.
func (o Order) DecodeF64(data []byte, pos int) (float64, int, error) {
	u, n, err := o.DecodeU64(data, pos)
	return math.Float64frombits(u), n, err
}

// AppendString appends a CDR string: aligned(4) uint32 length (including
// the NUL terminator), the UTF-8 bytes, and a trailing 0x00.
func (o Order) AppendString(buf []byte, s string) []byte {
	buf = o.AppendU32(buf, uint32(len(s)+1))
	buf = append(buf, s...)
	return append(buf, 0x00)
}

// DecodeString reads a CDR string.
func (o Order) DecodeString(data []byte, pos int) (string, int, error) {
	length, n, err := o.DecodeU32(data, pos)
	if err != nil {
		return "", n, err
	}
	if length == 0 {
		return "", n, ErrNegativeLength
	}
	end := n + int(length)
	if end < n || end > len(data) {
		return "", n, ErrTruncated
	}
	if data[end-1] != 0x00 {
		return "", n, ErrMissingTerminator
	}
	return string(data[n : end-1]), end, nil
}

// SizeOfString returns the encoded size contribution of a CDR string
// starting at an already-aligned offset (4-byte length prefix + data +
// NUL terminator). It does not include any leading alignment padding.
func SizeOfString(s string) int { return 4 + len(s) + 1 }
