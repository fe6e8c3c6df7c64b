package wire1

import (
	"errors"
	"fmt"
)

// Sentinel errors, checkable with errors.Is, following
// pkg/cramberry/errors.go's sentinel-plus-structured-wrapper pattern.
var (
	// ErrTruncated indicates the input ended before a value could be
	// fully decoded.
	ErrTruncated = errors.New("wire1: truncated input")

	// ErrLimitExceeded indicates a decoded length prefix exceeds the
	// active Options' configured maximum — only surfaced when
	// Options.Strict.
	ErrLimitExceeded = errors.New("wire1: value exceeds configured limit")

	// ErrOverlong indicates trailing bytes remained in the input after a
	// message was fully decoded — only checked when Options.Strict
	// (spec: lenient by default).
	ErrOverlong = errors.New("wire1: trailing bytes after decoded message")

	// ErrBoundViolation indicates an encoded sequence/string exceeded its
	// declared upper bound.
	ErrBoundViolation = errors.New("wire1: value exceeds declared bound")

	// ErrEncoding indicates a Go value could not be encoded against its
	// field's declared type (e.g. a Value.Message missing a required
	// field, or a leaf holding the wrong kind of primitive).
	ErrEncoding = errors.New("wire1: value does not match field type")
)

// TruncatedError wraps ErrTruncated with the field being decoded.
type TruncatedError struct {
	Field string
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("wire1: truncated input while decoding %q", e.Field)
}
func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// LimitExceededError wraps ErrLimitExceeded with the offending field and size.
type LimitExceededError struct {
	Field string
	Size  int
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("wire1: %q is %d bytes, exceeds limit %d", e.Field, e.Size, e.Limit)
}
func (e *LimitExceededError) Unwrap() error { return ErrLimitExceeded }

// OverlongError wraps ErrOverlong with the byte counts involved.
type OverlongError struct {
	Consumed int
	Total    int
}

func (e *OverlongError) Error() string {
	return fmt.Sprintf("wire1: decoded message consumed %d of %d input bytes", e.Consumed, e.Total)
}
func (e *OverlongError) Unwrap() error { return ErrOverlong }

// BoundViolationError wraps ErrBoundViolation with the offending field.
type BoundViolationError struct {
	Field string
	Count int
	Bound int
}

func (e *BoundViolationError) Error() string {
	return fmt.Sprintf("wire1: %q has %d elements, exceeds bound %d", e.Field, e.Count, e.Bound)
}
func (e *BoundViolationError) Unwrap() error { return ErrBoundViolation }

// EncodingError wraps ErrEncoding with the offending field and expected type.
type EncodingError struct {
	Field string
	Want  string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("wire1: field %q: expected a %s value", e.Field, e.Want)
}
func (e *EncodingError) Unwrap() error { return ErrEncoding }
