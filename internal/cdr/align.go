// Package cdr provides low-level encoding primitives for the CDR
// (Common Data Representation) wire format used by bag2: aligned,
// endianness-prefixed field serialization.
package cdr

// HeaderSize is the length in bytes of the representation-identifier
// header that precedes every CDR payload.
const HeaderSize = 4

// LittleEndianHeader is the representation identifier for little-endian
// payloads.
var LittleEndianHeader = [HeaderSize]byte{0x00, 0x01, 0x00, 0x00}

// BigEndianHeader is the representation identifier for big-endian
// payloads.
var BigEndianHeader = [HeaderSize]byte{0x00, 0x00, 0x00, 0x00}

// AlignTo rounds pos up to the next multiple of n. n must be a power of
// two in {1, 2, 4, 8}; alignment is measured relative to the start of the
// payload, i.e. excluding the 4-byte representation-identifier header.
func AlignTo(pos, n int) int {
	if n <= 1 {
		return pos
	}
	rem := pos % n
	if rem == 0 {
		return pos
	}
	return pos + (n - rem)
}

// AppendPadding appends zero bytes to buf so that len(buf)-origin is
// aligned to n, where origin is the byte offset of the start of the
// payload (always 0 in this package's callers, since alignment is always
// computed relative to len(buf) directly after the header is stripped).
func AppendPadding(buf []byte, n int) []byte {
	target := AlignTo(len(buf), n)
	for len(buf) < target {
		buf = append(buf, 0)
	}
	return buf
}

// SkipPadding returns the number of padding bytes that must be skipped in
// data (whose first byte is at payload offset pos) to reach alignment n.
func SkipPadding(pos, n int) int {
	return AlignTo(pos, n) - pos
}
