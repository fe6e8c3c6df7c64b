package cdr

import (
	"github.com/blockberries/rosmsg/internal/cdr"
	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

// decoder tracks pos as an offset into payload (data with the 4-byte
// header already stripped), matching internal/cdr's own
// DecodeX(data []byte, pos int) (value, n int, error) convention, where n
// is the absolute end position reached — the opposite convention from
// internal/wire1, whose DecodeX returns bytes consumed relative to the
// slice passed in.
type decoder struct {
	payload []byte
	pos     int
	order   cdr.Order
	opts    Options
	s       *typestore.Store
}

// Deserialize decodes a header-prefixed CDR payload against the
// Descriptor registered under name in s, producing a typedesc.Value tree.
// The byte order is taken from the payload's own 4-byte header, not from
// opts.Order.
func Deserialize(s *typestore.Store, name typedesc.QName, data []byte) (typedesc.Value, error) {
	return DeserializeWithOptions(s, name, data, DefaultOptions())
}

// DeserializeWithOptions is Deserialize with explicit Options (only the
// Strict/MaxStringLen/MaxSeqLen/MaxDepth fields apply; Order is
// overridden by the payload's header).
func DeserializeWithOptions(s *typestore.Store, name typedesc.QName, data []byte, opts Options) (typedesc.Value, error) {
	order, n, err := cdr.DecodeHeader(data)
	if err != nil {
		return typedesc.Value{}, &HeaderError{Detail: err.Error()}
	}
	d, err := s.Lookup(name)
	if err != nil {
		return typedesc.Value{}, err
	}
	dec := &decoder{payload: data[n:], order: order, opts: opts, s: s}
	v, err := dec.decodeMessage(d, 0)
	if err != nil {
		return typedesc.Value{}, err
	}
	if opts.Strict && dec.pos != len(dec.payload) {
		return typedesc.Value{}, &OverlongError{Consumed: dec.pos, Total: len(dec.payload)}
	}
	return v, nil
}

func (dec *decoder) decodeMessage(d *typedesc.Descriptor, depth int) (typedesc.Value, error) {
	if dec.opts.MaxDepth > 0 && depth > dec.opts.MaxDepth {
		return typedesc.Value{}, &EncodingError{Field: string(d.Name), Want: "within max depth"}
	}
	fields := map[string]typedesc.Value{}
	for _, f := range d.Fields {
		v, err := dec.decodeValue(f.Name, f.Type, depth)
		if err != nil {
			return typedesc.Value{}, err
		}
		fields[f.Name] = v
	}
	return typedesc.MessageVal(fields), nil
}

func (dec *decoder) decodeValue(field string, t typedesc.TypeSpec, depth int) (typedesc.Value, error) {
	switch ts := t.(type) {
	case typedesc.BaseType:
		return dec.decodeBase(field, ts)
	case typedesc.NameRef:
		dep, err := dec.s.Lookup(ts.Name)
		if err != nil {
			return typedesc.Value{}, err
		}
		return dec.decodeMessage(dep, depth+1)
	case typedesc.ArrayType:
		return dec.decodeArray(field, ts.Element, ts.Length, depth)
	case typedesc.SequenceType:
		return dec.decodeSequence(field, ts, depth)
	default:
		return typedesc.Value{}, &EncodingError{Field: field, Want: "unknown type"}
	}
}

func (dec *decoder) decodeArray(field string, elem typedesc.TypeSpec, length int, depth int) (typedesc.Value, error) {
	if isByteLike(elem) {
		if dec.pos+length > len(dec.payload) {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		b := make([]byte, length)
		copy(b, dec.payload[dec.pos:dec.pos+length])
		dec.pos += length
		return typedesc.BytesVal(b), nil
	}
	list := make([]typedesc.Value, length)
	for i := 0; i < length; i++ {
		v, err := dec.decodeValue(field, elem, depth)
		if err != nil {
			return typedesc.Value{}, err
		}
		list[i] = v
	}
	return typedesc.ListVal(list), nil
}

func (dec *decoder) decodeSequence(field string, ts typedesc.SequenceType, depth int) (typedesc.Value, error) {
	count, n, err := dec.order.DecodeU32(dec.payload, dec.pos)
	if err != nil {
		return typedesc.Value{}, &TruncatedError{Field: field}
	}
	dec.pos = n
	if dec.opts.Strict && dec.opts.MaxSeqLen > 0 && int(count) > dec.opts.MaxSeqLen {
		return typedesc.Value{}, &LimitExceededError{Field: field, Size: int(count), Limit: dec.opts.MaxSeqLen}
	}
	if ts.Upper >= 0 && int(count) > ts.Upper {
		return typedesc.Value{}, &BoundViolationError{Field: field, Count: int(count), Bound: ts.Upper}
	}
	if isByteLike(ts.Element) {
		if dec.pos+int(count) > len(dec.payload) {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		b := make([]byte, count)
		copy(b, dec.payload[dec.pos:dec.pos+int(count)])
		dec.pos += int(count)
		return typedesc.BytesVal(b), nil
	}
	list := make([]typedesc.Value, count)
	for i := range list {
		v, err := dec.decodeValue(field, ts.Element, depth)
		if err != nil {
			return typedesc.Value{}, err
		}
		list[i] = v
	}
	return typedesc.ListVal(list), nil
}

func (dec *decoder) decodeBase(field string, bt typedesc.BaseType) (typedesc.Value, error) {
	switch bt.Name {
	case "bool":
		v, n, err := dec.order.DecodeBool(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.BoolValue(v), nil
	case "uint8", "byte", "octet", "char":
		v, n, err := dec.order.DecodeU8(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.UintVal(uint64(v)), nil
	case "int8":
		v, n, err := dec.order.DecodeI8(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.IntVal(int64(v)), nil
	case "uint16":
		v, n, err := dec.order.DecodeU16(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.UintVal(uint64(v)), nil
	case "int16":
		v, n, err := dec.order.DecodeI16(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.IntVal(int64(v)), nil
	case "uint32":
		v, n, err := dec.order.DecodeU32(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.UintVal(uint64(v)), nil
	case "int32":
		v, n, err := dec.order.DecodeI32(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.IntVal(int64(v)), nil
	case "uint64":
		v, n, err := dec.order.DecodeU64(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.UintVal(v), nil
	case "int64":
		v, n, err := dec.order.DecodeI64(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.IntVal(v), nil
	case "float32":
		v, n, err := dec.order.DecodeF32(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.FloatVal(float64(v)), nil
	case "float64":
		v, n, err := dec.order.DecodeF64(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		return typedesc.FloatVal(v), nil
	case "string":
		v, n, err := dec.order.DecodeString(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		if dec.opts.Strict && dec.opts.MaxStringLen > 0 && len(v) > dec.opts.MaxStringLen {
			return typedesc.Value{}, &LimitExceededError{Field: field, Size: len(v), Limit: dec.opts.MaxStringLen}
		}
		if bt.Bound >= 0 && len(v) > bt.Bound {
			return typedesc.Value{}, &BoundViolationError{Field: field, Count: len(v), Bound: bt.Bound}
		}
		return typedesc.StringVal(v), nil
	case "wstring":
		v, n, err := dec.order.DecodeWString(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n
		if dec.opts.Strict && dec.opts.MaxStringLen > 0 && len(v) > dec.opts.MaxStringLen {
			return typedesc.Value{}, &LimitExceededError{Field: field, Size: len(v), Limit: dec.opts.MaxStringLen}
		}
		return typedesc.StringVal(v), nil
	case "time":
		sec, n1, err := dec.order.DecodeU32(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		nsec, n2, err := dec.order.DecodeU32(dec.payload, n1)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n2
		return typedesc.MessageVal(map[string]typedesc.Value{
			"sec":  typedesc.UintVal(uint64(sec)),
			"nsec": typedesc.UintVal(uint64(nsec)),
		}), nil
	case "duration":
		sec, n1, err := dec.order.DecodeI32(dec.payload, dec.pos)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		nsec, n2, err := dec.order.DecodeI32(dec.payload, n1)
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos = n2
		return typedesc.MessageVal(map[string]typedesc.Value{
			"sec":  typedesc.IntVal(int64(sec)),
			"nsec": typedesc.IntVal(int64(nsec)),
		}), nil
	default:
		return typedesc.Value{}, &EncodingError{Field: field, Want: bt.Name}
	}
}
