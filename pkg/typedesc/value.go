package typedesc

// Value is the generic, reflection-free tagged tree that wire1.Deserialize
// and cdr.Deserialize produce, and that their Serialize counterparts
// consume. It is the "value representation at the API boundary" described
// in spec.md §3: submessages are field-name->Value maps, arrays/sequences
// are ordered slices, and every primitive rides in its native Go type.
type Value struct {
	// Bool, Int, Uint, Float, Str, Bytes hold a primitive leaf; exactly one
	// is meaningful, selected by the field's typedesc.BaseType.Name.
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Str   string
	Bytes []byte // byte[N]/byte[] arrays decode directly to a []byte leaf

	// List holds array/sequence elements, in wire order.
	List []Value

	// Message holds submessage fields, keyed by field name.
	Message map[string]Value
}

// BoolValue builds a leaf Value carrying b.
func BoolValue(b bool) Value { return Value{Bool: b} }

// IntVal builds a leaf Value carrying a signed integer.
func IntVal(i int64) Value { return Value{Int: i} }

// UintVal builds a leaf Value carrying an unsigned integer.
func UintVal(u uint64) Value { return Value{Uint: u} }

// FloatVal builds a leaf Value carrying a float.
func FloatVal(f float64) Value { return Value{Float: f} }

// StringVal builds a leaf Value carrying a string.
func StringVal(s string) Value { return Value{Str: s} }

// BytesVal builds a leaf Value carrying raw bytes.
func BytesVal(b []byte) Value { return Value{Bytes: b} }

// ListVal builds a Value carrying ordered array/sequence elements.
func ListVal(vs []Value) Value { return Value{List: vs} }

// MessageVal builds a Value carrying submessage fields.
func MessageVal(fields map[string]Value) Value { return Value{Message: fields} }

// Field looks up a submessage field by name, returning the zero Value and
// false if m is not a message Value or has no such field.
func (v Value) Field(name string) (Value, bool) {
	if v.Message == nil {
		return Value{}, false
	}
	f, ok := v.Message[name]
	return f, ok
}
