// Package cdr serializes and deserializes typedesc.Value trees against a
// typedesc.Descriptor registered in a typestore.Store, using the CDR
// (Common Data Representation) aligned wire format implemented in
// internal/cdr. Grounded on pkg/cramberry/writer.go + reader.go's
// pooled-encoder-over-a-value shape, generalized the same way pkg/wire1
// generalizes it, but tracking alignment (internal/cdr's AlignTo) instead
// of the unaligned concatenation wire1 uses.
package cdr

import (
	"sync"

	"github.com/blockberries/rosmsg/internal/cdr"
	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

var encoderPool = sync.Pool{New: func() interface{} { return &encoder{} }}

// encoder builds the payload separately from the 4-byte representation
// header, since internal/cdr's alignment helpers measure offsets relative
// to the start of the payload, not the header-prefixed buffer.
type encoder struct {
	payload []byte
	order   cdr.Order
	opts    Options
	s       *typestore.Store
}

func getEncoder(s *typestore.Store, opts Options) *encoder {
	e := encoderPool.Get().(*encoder)
	e.payload = e.payload[:0]
	e.order = opts.Order
	e.opts = opts
	e.s = s
	return e
}

func putEncoder(e *encoder) {
	e.s = nil
	encoderPool.Put(e)
}

// Serialize encodes v, which must conform to the Descriptor registered
// under name in s, as a header-prefixed CDR payload.
func Serialize(s *typestore.Store, name typedesc.QName, v typedesc.Value) ([]byte, error) {
	return SerializeWithOptions(s, name, v, DefaultOptions())
}

// SerializeWithOptions is Serialize with explicit Options.
func SerializeWithOptions(s *typestore.Store, name typedesc.QName, v typedesc.Value, opts Options) ([]byte, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return nil, err
	}
	e := getEncoder(s, opts)
	defer putEncoder(e)
	if err := e.encodeMessage(d, v); err != nil {
		return nil, err
	}
	header := e.order.Header()
	out := make([]byte, 0, len(header)+len(e.payload))
	out = append(out, header[:]...)
	out = append(out, e.payload...)
	return out, nil
}

func (e *encoder) encodeMessage(d *typedesc.Descriptor, v typedesc.Value) error {
	for _, f := range d.Fields {
		fv, ok := v.Field(f.Name)
		if !ok {
			return &EncodingError{Field: f.Name, Want: f.Type.String()}
		}
		if err := e.encodeValue(f.Name, f.Type, fv); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeValue(field string, t typedesc.TypeSpec, v typedesc.Value) error {
	switch ts := t.(type) {
	case typedesc.BaseType:
		return e.encodeBase(field, ts, v)
	case typedesc.NameRef:
		dep, err := e.s.Lookup(ts.Name)
		if err != nil {
			return err
		}
		return e.encodeMessage(dep, v)
	case typedesc.ArrayType:
		return e.encodeArray(field, ts.Element, ts.Length, v)
	case typedesc.SequenceType:
		return e.encodeSequence(field, ts, v)
	default:
		return &EncodingError{Field: field, Want: "unknown type"}
	}
}

func (e *encoder) encodeArray(field string, elem typedesc.TypeSpec, length int, v typedesc.Value) error {
	if isByteLike(elem) {
		if len(v.Bytes) != length {
			return &EncodingError{Field: field, Want: "byte array of fixed length"}
		}
		e.payload = append(e.payload, v.Bytes...)
		return nil
	}
	if len(v.List) != length {
		return &EncodingError{Field: field, Want: "array of fixed length"}
	}
	for _, ev := range v.List {
		if err := e.encodeValue(field, elem, ev); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeSequence(field string, ts typedesc.SequenceType, v typedesc.Value) error {
	if isByteLike(ts.Element) {
		if ts.Upper >= 0 && len(v.Bytes) > ts.Upper {
			return &BoundViolationError{Field: field, Count: len(v.Bytes), Bound: ts.Upper}
		}
		e.payload = e.order.AppendU32(e.payload, uint32(len(v.Bytes)))
		e.payload = append(e.payload, v.Bytes...)
		return nil
	}
	if ts.Upper >= 0 && len(v.List) > ts.Upper {
		return &BoundViolationError{Field: field, Count: len(v.List), Bound: ts.Upper}
	}
	e.payload = e.order.AppendU32(e.payload, uint32(len(v.List)))
	for _, ev := range v.List {
		if err := e.encodeValue(field, ts.Element, ev); err != nil {
			return err
		}
	}
	return nil
}

func isByteLike(t typedesc.TypeSpec) bool {
	bt, ok := t.(typedesc.BaseType)
	return ok && (bt.Name == "uint8" || bt.Name == "byte" || bt.Name == "octet")
}

func (e *encoder) encodeBase(field string, bt typedesc.BaseType, v typedesc.Value) error {
	switch bt.Name {
	case "bool":
		e.payload = e.order.AppendBool(e.payload, v.Bool)
	case "uint8", "byte", "octet", "char":
		e.payload = e.order.AppendU8(e.payload, uint8(v.Uint))
	case "int8":
		e.payload = e.order.AppendI8(e.payload, int8(v.Int))
	case "uint16":
		e.payload = e.order.AppendU16(e.payload, uint16(v.Uint))
	case "int16":
		e.payload = e.order.AppendI16(e.payload, int16(v.Int))
	case "uint32":
		e.payload = e.order.AppendU32(e.payload, uint32(v.Uint))
	case "int32":
		e.payload = e.order.AppendI32(e.payload, int32(v.Int))
	case "uint64":
		e.payload = e.order.AppendU64(e.payload, v.Uint)
	case "int64":
		e.payload = e.order.AppendI64(e.payload, v.Int)
	case "float32":
		e.payload = e.order.AppendF32(e.payload, float32(v.Float))
	case "float64":
		e.payload = e.order.AppendF64(e.payload, v.Float)
	case "string":
		if e.opts.Strict && e.opts.MaxStringLen > 0 && len(v.Str) > e.opts.MaxStringLen {
			return &LimitExceededError{Field: field, Size: len(v.Str), Limit: e.opts.MaxStringLen}
		}
		if bt.Bound >= 0 && len(v.Str) > bt.Bound {
			return &BoundViolationError{Field: field, Count: len(v.Str), Bound: bt.Bound}
		}
		e.payload = e.order.AppendString(e.payload, v.Str)
	case "wstring":
		if e.opts.Strict && e.opts.MaxStringLen > 0 && len(v.Str) > e.opts.MaxStringLen {
			return &LimitExceededError{Field: field, Size: len(v.Str), Limit: e.opts.MaxStringLen}
		}
		p, err := e.order.AppendWString(e.payload, v.Str)
		if err != nil {
			return &EncodingError{Field: field, Want: "valid UTF-16 wstring"}
		}
		e.payload = p
	case "time":
		sec, _ := v.Field("sec")
		nsec, _ := v.Field("nsec")
		e.payload = e.order.AppendU32(e.payload, uint32(sec.Uint))
		e.payload = e.order.AppendU32(e.payload, uint32(nsec.Uint))
	case "duration":
		sec, _ := v.Field("sec")
		nsec, _ := v.Field("nsec")
		e.payload = e.order.AppendI32(e.payload, int32(sec.Int))
		e.payload = e.order.AppendI32(e.payload, int32(nsec.Int))
	default:
		return &EncodingError{Field: field, Want: bt.Name}
	}
	return nil
}
