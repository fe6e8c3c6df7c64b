// Package wire1 provides low-level encoding primitives for the wire1
// (bag1/ROS1) wire format: fixed-width little-endian fields with no
// alignment padding between them.
package wire1

import (
	"encoding/binary"
	"errors"
	"math"
)

// Errors returned while decoding wire1 primitives.
var (
	// ErrTruncated indicates the input ended before a field could be read.
	ErrTruncated = errors.New("wire1: truncated input")

	// ErrNegativeLength indicates a decoded length prefix was negative
	// when reinterpreted as a signed value, or exceeded the input size.
	ErrNegativeLength = errors.New("wire1: negative or invalid length")

	// ErrInvalidUTF8 indicates a string field was not valid UTF-8.
	ErrInvalidUTF8 = errors.New("wire1: invalid UTF-8 in string field")
)

// AppendBool appends a single-byte boolean.
func AppendBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}

// DecodeBool reads a single-byte boolean.
func DecodeBool(data []byte) (bool, int, error) {
	if len(data) < 1 {
		return false, 0, ErrTruncated
	}
	return data[0] != 0, 1, nil
}

// AppendU8 appends an unsigned 8-bit integer.
func AppendU8(buf []byte, v uint8) []byte { return append(buf, v) }

// DecodeU8 reads an unsigned 8-bit integer.
func DecodeU8(data []byte) (uint8, int, error) {
	if len(data) < 1 {
		return 0, 0, ErrTruncated
	}
	return data[0], 1, nil
}

// AppendI8 appends a signed 8-bit integer.
func AppendI8(buf []byte, v int8) []byte { return append(buf, byte(v)) }

// DecodeI8 reads a signed 8-bit integer.
func DecodeI8(data []byte) (int8, int, error) {
	if len(data) < 1 {
		return 0, 0, ErrTruncated
	}
	return int8(data[0]), 1, nil
}

// AppendU16 appends an unsigned 16-bit little-endian integer.
func AppendU16(buf []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(buf, tmp[:]...)
}

// DecodeU16 reads an unsigned 16-bit little-endian integer.
func DecodeU16(data []byte) (uint16, int, error) {
	if len(data) < 2 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint16(data), 2, nil
}

// AppendI16 appends a signed 16-bit little-endian integer.
func AppendI16(buf []byte, v int16) []byte { return AppendU16(buf, uint16(v)) }

// DecodeI16 reads a signed 16-bit little-endian integer.
func DecodeI16(data []byte) (int16, int, error) {
	u, n, err := DecodeU16(data)
	return int16(u), n, err
}

// AppendU32 appends an unsigned 32-bit little-endian integer.
func AppendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

// DecodeU32 reads an unsigned 32-bit little-endian integer.
func DecodeU32(data []byte) (uint32, int, error) {
	if len(data) < 4 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint32(data), 4, nil
}

// AppendI32 appends a signed 32-bit little-endian integer.
func AppendI32(buf []byte, v int32) []byte { return AppendU32(buf, uint32(v)) }

// DecodeI32 reads a signed 32-bit little-endian integer.
func DecodeI32(data []byte) (int32, int, error) {
	u, n, err := DecodeU32(data)
	return int32(u), n, err
}

// AppendU64 appends an unsigned 64-bit little-endian integer.
func AppendU64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

// DecodeU64 reads an unsigned 64-bit little-endian integer.
func DecodeU64(data []byte) (uint64, int, error) {
	if len(data) < 8 {
		return 0, 0, ErrTruncated
	}
	return binary.LittleEndian.Uint64(data), 8, nil
}

// AppendI64 appends a signed 64-bit little-endian integer.
func AppendI64(buf []byte, v int64) []byte { return AppendU64(buf, uint64(v)) }

// DecodeI64 reads a signed 64-bit little-endian integer.
func DecodeI64(data []byte) (int64, int, error) {
	u, n, err := DecodeU64(data)
	return int64(u), n, err
}

// AppendF32 appends an IEEE-754 single-precision float, little-endian.
func AppendF32(buf []byte, v float32) []byte {
	return AppendU32(buf, math.Float32bits(v))
}

// DecodeF32 reads an IEEE-754 single-precision float, little-endian.
func DecodeF32(data []byte) (float32, int, error) {
	u, n, err := DecodeU32(data)
	return math.Float32frombits(u), n, err
}

// AppendF64 appends an IEEE-754 double-precision float, little-endian.
func AppendF64(buf []byte, v float64) []byte {
	return AppendU64(buf, math.Float64bits(v))
}

// DecodeF64 reads an IEEE-754 double-precision float, little-endian.
func DecodeF64(data []byte) (float64, int, error) {
	u, n, err := DecodeU64(data)
	return math.Float64frombits(u), n, err
}

// AppendString appends a wire1 string: uint32 length followed by raw bytes,
// no terminator.
func AppendString(buf []byte, s string) []byte {
	buf = AppendU32(buf, uint32(len(s)))
	return append(buf, s...)
}

// DecodeString reads a wire1 string.
func DecodeString(data []byte) (string, int, error) {
	length, n, err := DecodeU32(data)
	if err != nil {
		return "", 0, err
	}
	total := n + int(length)
	if total < n || total > len(data) {
		return "", 0, ErrTruncated
	}
	return string(data[n:total]), total, nil
}

// Time is the wire1 {sec uint32, nsec uint32} pair.
type Time struct {
	Sec  uint32
	NSec uint32
}

// AppendTime appends a wire1 time value.
func AppendTime(buf []byte, t Time) []byte {
	buf = AppendU32(buf, t.Sec)
	return AppendU32(buf, t.NSec)
}

// DecodeTime reads a wire1 time value.
func DecodeTime(data []byte) (Time, int, error) {
	sec, n1, err := DecodeU32(data)
	if err != nil {
		return Time{}, 0, err
	}
	nsec, n2, err := DecodeU32(data[n1:])
	if err != nil {
		return Time{}, 0, err
	}
	return Time{Sec: sec, NSec: nsec}, n1 + n2, nil
}

// Duration is the wire1 {sec int32, nsec int32} pair.
type Duration struct {
	Sec  int32
	NSec int32
}

// AppendDuration appends a wire1 duration value.
func AppendDuration(buf []byte, d Duration) []byte {
	buf = AppendI32(buf, d.Sec)
	return AppendI32(buf, d.NSec)
}

// DecodeDuration reads a wire1 duration value.
func DecodeDuration(data []byte) (Duration, int, error) {
	sec, n1, err := DecodeI32(data)
	if err != nil {
		return Duration{}, 0, err
	}
	nsec, n2, err := DecodeI32(data[n1:])
	if err != nil {
		return Duration{}, 0, err
	}
	return Duration{Sec: sec, NSec: nsec}, n1 + n2, nil
}

// SizeOfString returns the encoded size of a wire1 string.
func SizeOfString(s string) int { return 4 + len(s) }
