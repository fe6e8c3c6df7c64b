package typedesc

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by normalization and hashing, checkable with
// errors.Is.
var (
	// ErrUnknownType indicates a NameRef that does not resolve within the
	// set of descriptors being normalized or hashed.
	ErrUnknownType = errors.New("typedesc: unknown type reference")

	// ErrCycle indicates a dependency cycle among NameRef fields, which
	// both MD5 and RIHS01 hashing must reject (spec.md §3 invariant 4).
	ErrCycle = errors.New("typedesc: dependency cycle")

	// ErrBadLiteral indicates a constant or default value's literal does
	// not fit its declared BaseType.
	ErrBadLiteral = errors.New("typedesc: literal does not fit declared type")
)

// UnknownTypeError wraps ErrUnknownType with the offending reference.
type UnknownTypeError struct {
	Ref QName
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("typedesc: unknown type %q", string(e.Ref))
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }

// CycleError wraps ErrCycle with the cycle's member names, in traversal
// order, with the first name repeated at the end to show closure.
type CycleError struct {
	Path []QName
}

func (e *CycleError) Error() string {
	s := "typedesc: dependency cycle: "
	for i, n := range e.Path {
		if i > 0 {
			s += " -> "
		}
		s += string(n)
	}
	return s
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// BadLiteralError wraps ErrBadLiteral with the field/constant name and the
// type it failed to fit.
type BadLiteralError struct {
	Name string
	Type BaseType
}

func (e *BadLiteralError) Error() string {
	return fmt.Sprintf("typedesc: literal for %q does not fit %s", e.Name, e.Type.String())
}

func (e *BadLiteralError) Unwrap() error { return ErrBadLiteral }
