package typestore

import (
	"errors"
	"fmt"

	"github.com/blockberries/rosmsg/pkg/typedesc"
)

// Sentinel errors, checkable with errors.Is, mirroring
// pkg/cramberry/errors.go's sentinel-plus-structured-wrapper pattern.
var (
	// ErrTypeConflict indicates Register saw a name already registered
	// with a non-identical Descriptor.
	ErrTypeConflict = errors.New("typestore: type conflict")

	// ErrUnknownType indicates Lookup found no Descriptor for a name. An
	// unresolved dependency met inside Closure/MD5/RIHS01/EmitMSG surfaces
	// as *typedesc.UnknownTypeError (typedesc.ErrUnknownType) instead.
	ErrUnknownType = errors.New("typestore: unknown type")
)

// TypeConflictError wraps ErrTypeConflict with the offending name and both
// competing descriptors.
type TypeConflictError struct {
	Name     typedesc.QName
	Existing *typedesc.Descriptor
	New      *typedesc.Descriptor
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("typestore: %q already registered with a different definition", string(e.Name))
}

func (e *TypeConflictError) Unwrap() error { return ErrTypeConflict }

// UnknownTypeError wraps ErrUnknownType with the offending name.
type UnknownTypeError struct {
	Name typedesc.QName
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("typestore: unknown type %q", string(e.Name))
}

func (e *UnknownTypeError) Unwrap() error { return ErrUnknownType }
