// Package wire1 serializes and deserializes typedesc.Value trees against
// a typedesc.Descriptor registered in a typestore.Store, using the wire1
// (ROS1-style) fixed-width unaligned wire format implemented in
// internal/wire1. Grounded on pkg/cramberry/writer.go + reader.go +
// marshal.go + unmarshal.go's pooled-Writer/Reader-over-a-value shape,
// generalized from Go-struct-via-reflection to descriptor-tree-via-
// interpretation.
package wire1

import (
	"sync"

	"github.com/blockberries/rosmsg/internal/wire1"
	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

var encoderPool = sync.Pool{New: func() interface{} { return &encoder{} }}

type encoder struct {
	buf  []byte
	opts Options
	s    *typestore.Store
}

func getEncoder(s *typestore.Store, opts Options) *encoder {
	e := encoderPool.Get().(*encoder)
	e.buf = e.buf[:0]
	e.opts = opts
	e.s = s
	return e
}

func putEncoder(e *encoder) {
	e.s = nil
	encoderPool.Put(e)
}

// Serialize encodes v, which must conform to the Descriptor registered
// under name in s, as wire1 bytes.
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
	out := make([]byte, len(e.buf))
	copy(out, e.buf)
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
		e.buf = append(e.buf, v.Bytes...)
		return nil
	}
	if len(v.List) != length {
		return &EncodingError{Field: field, Want: "array of fixed length"}
	}
	for i, ev := range v.List {
		if err := e.encodeValue(field, elem, ev); err != nil {
			return err
		}
		_ = i
	}
	return nil
}

func (e *encoder) encodeSequence(field string, ts typedesc.SequenceType, v typedesc.Value) error {
	if isByteLike(ts.Element) {
		if ts.Upper >= 0 && len(v.Bytes) > ts.Upper {
			return &BoundViolationError{Field: field, Count: len(v.Bytes), Bound: ts.Upper}
		}
		e.buf = wire1.AppendU32(e.buf, uint32(len(v.Bytes)))
		e.buf = append(e.buf, v.Bytes...)
		return nil
	}
	if ts.Upper >= 0 && len(v.List) > ts.Upper {
		return &BoundViolationError{Field: field, Count: len(v.List), Bound: ts.Upper}
	}
	e.buf = wire1.AppendU32(e.buf, uint32(len(v.List)))
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
		e.buf = wire1.AppendBool(e.buf, v.Bool)
	case "uint8", "byte", "octet", "char":
		e.buf = wire1.AppendU8(e.buf, uint8(v.Uint))
	case "int8":
		e.buf = wire1.AppendI8(e.buf, int8(v.Int))
	case "uint16":
		e.buf = wire1.AppendU16(e.buf, uint16(v.Uint))
	case "int16":
		e.buf = wire1.AppendI16(e.buf, int16(v.Int))
	case "uint32":
		e.buf = wire1.AppendU32(e.buf, uint32(v.Uint))
	case "int32":
		e.buf = wire1.AppendI32(e.buf, int32(v.Int))
	case "uint64":
		e.buf = wire1.AppendU64(e.buf, v.Uint)
	case "int64":
		e.buf = wire1.AppendI64(e.buf, v.Int)
	case "float32":
		e.buf = wire1.AppendF32(e.buf, float32(v.Float))
	case "float64":
		e.buf = wire1.AppendF64(e.buf, v.Float)
	case "string", "wstring":
		if e.opts.Strict && e.opts.MaxStringLen > 0 && len(v.Str) > e.opts.MaxStringLen {
			return &LimitExceededError{Field: field, Size: len(v.Str), Limit: e.opts.MaxStringLen}
		}
		if bt.Name == "string" && bt.Bound >= 0 && len(v.Str) > bt.Bound {
			return &BoundViolationError{Field: field, Count: len(v.Str), Bound: bt.Bound}
		}
		e.buf = wire1.AppendString(e.buf, v.Str)
	case "time":
		sec, _ := v.Field("sec")
		nsec, _ := v.Field("nsec")
		e.buf = wire1.AppendTime(e.buf, wire1.Time{Sec: uint32(sec.Uint), NSec: uint32(nsec.Uint)})
	case "duration":
		sec, _ := v.Field("sec")
		nsec, _ := v.Field("nsec")
		e.buf = wire1.AppendDuration(e.buf, wire1.Duration{Sec: int32(sec.Int), NSec: int32(nsec.Int)})
	default:
		return &EncodingError{Field: field, Want: bt.Name}
	}
	return nil
}
