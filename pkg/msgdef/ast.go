// Package msgdef parses ROS1-style ".msg" text into a raw AST, ready for
// pkg/typedesc to normalize into a canonical Descriptor. It never resolves
// cross-package type references itself — that is pkg/typestore's job.
package msgdef

// File is the result of parsing one concatenated .msg text: the type being
// defined (Primary) plus every bundled dependency definition that followed
// a "MSG: pkg/Name" separator line, in the order they appeared.
type File struct {
	Primary *Def
	Deps    []*Def
}

// Def is one raw message (or constants-only) definition: a flat list of
// field and constant declarations in source order.
type Def struct {
	// Name is the dependency's fully-qualified name as declared by its
	// "MSG: pkg/Name" banner; empty for the Primary definition, whose name
	// is supplied out of band (by the caller's filename/package context).
	Name    string
	Fields  []FieldDecl
	Consts  []ConstDecl
}

// RawType is the unresolved spelling of a field or constant's type, as it
// appeared in source, before typedesc.Normalize resolves NameRefs.
type RawType struct {
	// Name is the bare type name: a primitive ("uint32", "string") or a
	// message reference ("Header", "geometry_msgs/Point").
	Name string

	// StringBound is the string/wstring "<=N" upper bound, or -1 if none.
	StringBound int

	// ArrayLen is the fixed array length ("[N]"), or -1 if the type is not
	// a fixed array.
	ArrayLen int

	// IsSequence is true for "[]" or "[<=N]" variable-length sequences.
	IsSequence bool

	// SeqBound is the sequence's "<=N" upper bound, or -1 if unbounded.
	SeqBound int
}

// FieldDecl is one field declaration line: "<type> <name>".
type FieldDecl struct {
	Type RawType
	Name string
	Line int
}

// ConstDecl is one constant declaration line: "<type> <NAME>=<value>".
type ConstDecl struct {
	Type      RawType
	Name      string
	ValueText string
	Line int
}
