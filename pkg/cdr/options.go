package cdr

import "github.com/blockberries/rosmsg/internal/cdr"

// Options configures a Serialize/Deserialize call, grounded on
// pkg/cramberry/types.go's Options/Limits-with-named-presets pattern.
type Options struct {
	// Order selects the byte order header to emit (Serialize); Deserialize
	// takes the byte order from the input's header instead. Defaults to
	// LittleEndian, matching the prevailing ROS2/DDS convention.
	Order cdr.Order

	// Strict enables MaxStringLen/MaxSeqLen enforcement and the post-decode
	// Overlong check (trailing bytes left after a fully decoded message);
	// a non-strict decode accepts any length the buffer can support and
	// ignores leftover bytes.
	Strict bool

	// MaxStringLen bounds a decoded string's byte length when Strict.
	MaxStringLen int

	// MaxSeqLen bounds a decoded sequence's element count when Strict.
	MaxSeqLen int

	// MaxDepth bounds submessage nesting depth.
	MaxDepth int
}

// DefaultOptions is permissive, little-endian, with generous depth.
func DefaultOptions() Options {
	return Options{Order: cdr.LittleEndian, MaxDepth: 64}
}

// StrictOptions enforces conservative limits suited to untrusted input.
func StrictOptions() Options {
	return Options{
		Order:        cdr.LittleEndian,
		Strict:       true,
		MaxStringLen: 1 << 20,
		MaxSeqLen:    1 << 20,
		MaxDepth:     32,
	}
}

// BigEndianOptions is DefaultOptions with a big-endian header.
func BigEndianOptions() Options {
	o := DefaultOptions()
	o.Order = cdr.BigEndian
	return o
}
