// Package typedesc defines the canonical type descriptor that both the MSG
// and IDL front ends normalize into, and that the wire1 and CDR codecs
// consume. It is the single source of truth described in spec.md §3.
package typedesc

import (
	"strconv"
	"strings"
)

// QName is a fully-qualified type name of the form "package/sub/Name",
// where sub is one of "msg", "srv", or "action".
type QName string

// Package returns the leading "package" segment of q.
func (q QName) Package() string {
	parts := strings.SplitN(string(q), "/", 2)
	return parts[0]
}

// Sub returns the middle segment ("msg", "srv", "action"), or "" if q has
// fewer than three segments.
func (q QName) Sub() string {
	parts := strings.Split(string(q), "/")
	if len(parts) != 3 {
		return ""
	}
	return parts[1]
}

// Short returns the trailing "Name" segment of q.
func (q QName) Short() string {
	parts := strings.Split(string(q), "/")
	return parts[len(parts)-1]
}

// Kind distinguishes a full message descriptor from a constants-only enum
// descriptor (IDL enums fold into this; spec.md §3).
type Kind int

const (
	// KindMessage is a descriptor with both fields and constants.
	KindMessage Kind = iota
	// KindEnum is a descriptor that carries only constants (no fields).
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindMessage:
		return "message"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Descriptor is the canonical, immutable type representation that codecs,
// hashers, and the emitter all consume.
type Descriptor struct {
	Name      QName
	Kind      Kind
	Fields    []Field
	Constants []Constant
}

// Field is one field of a message descriptor.
type Field struct {
	Name    string
	Type    TypeSpec
	Default Literal // nil if no default was specified
}

// Constant is one named literal constant attached to a descriptor.
type Constant struct {
	Name    string
	Type    BaseType
	Value   Literal
}

// TypeSpec is the sum type of field/element type references (spec.md §3).
type TypeSpec interface {
	typeSpec()
	// String renders the type the way it appears in emitted .msg text.
	String() string
}

// BaseType is a primitive type, optionally string/wstring-bounded.
type BaseType struct {
	Name  string // bool, byte, char, int8..int64, uint8..uint64, float32, float64, string, wstring, time, duration, octet
	Bound int    // string/wstring upper bound; -1 means unbounded
}

func (BaseType) typeSpec() {}

func (b BaseType) String() string {
	if (b.Name == "string" || b.Name == "wstring") && b.Bound >= 0 {
		return b.Name + boundSuffix(b.Bound)
	}
	return b.Name
}

func boundSuffix(n int) string {
	return "<=" + itoa(n)
}

// NameRef is a reference to another registered type.
type NameRef struct {
	Name QName
}

func (NameRef) typeSpec() {}
func (n NameRef) String() string { return string(n.Name) }

// ArrayType is a fixed-length array of Element.
type ArrayType struct {
	Element TypeSpec
	Length  int
}

func (ArrayType) typeSpec() {}
func (a ArrayType) String() string { return a.Element.String() + "[" + itoa(a.Length) + "]" }

// SequenceType is a variable-length sequence of Element, with an optional
// upper bound (-1 means unbounded).
type SequenceType struct {
	Element TypeSpec
	Upper   int
}

func (SequenceType) typeSpec() {}
func (s SequenceType) String() string {
	if s.Upper >= 0 {
		return s.Element.String() + "[<=" + itoa(s.Upper) + "]"
	}
	return s.Element.String() + "[]"
}

func itoa(n int) string { return strconv.Itoa(n) }

// BaseTypes lists every primitive type name recognized by the MSG/IDL
// front ends and by the codecs.
var BaseTypes = map[string]bool{
	"bool": true, "byte": true, "char": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
	"string": true, "wstring": true,
	"time": true, "duration": true, "octet": true,
}

// IsBaseType reports whether name is a recognized primitive type.
func IsBaseType(name string) bool { return BaseTypes[name] }

// IsHeaderShape reports whether d is named std_msgs/msg/Header. Only the
// name is compared; d's fields are not inspected, so both the wire1 Header
// {seq uint32, stamp time, frame_id string} and the CDR Header
// {stamp, frame_id string} match, and so does any other field layout.
func IsHeaderShape(d *Descriptor) bool {
	return d.Name == "std_msgs/msg/Header"
}
