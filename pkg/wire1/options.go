package wire1

// Options configures a Serialize/Deserialize call, grounded on
// pkg/cramberry/types.go's Options/Limits-with-named-presets pattern.
type Options struct {
	// Strict enables MaxStringLen/MaxSeqLen enforcement and the post-decode
	// Overlong check (trailing bytes left after a fully decoded message);
	// a non-strict decode accepts any length the buffer can support and
	// ignores leftover bytes.
	Strict bool

	// MaxStringLen bounds a decoded string's byte length when Strict.
	MaxStringLen int

	// MaxSeqLen bounds a decoded sequence's element count when Strict.
	MaxSeqLen int

	// MaxDepth bounds submessage nesting depth, matching
	// pkg/cramberry's ErrMaxDepthExceeded discipline.
	MaxDepth int
}

// DefaultOptions is permissive: no Strict checks, generous depth.
func DefaultOptions() Options {
	return Options{MaxDepth: 64}
}

// StrictOptions enforces conservative limits suited to untrusted input.
func StrictOptions() Options {
	return Options{
		Strict:       true,
		MaxStringLen: 1 << 20,
		MaxSeqLen:    1 << 20,
		MaxDepth:     32,
	}
}
