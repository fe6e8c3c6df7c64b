package wire1

import (
	"github.com/blockberries/rosmsg/internal/wire1"
	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

type decoder struct {
	data []byte
	pos  int
	opts Options
	s    *typestore.Store
}

// Deserialize decodes wire1 bytes against the Descriptor registered under
// name in s, producing a typedesc.Value tree.
func Deserialize(s *typestore.Store, name typedesc.QName, data []byte) (typedesc.Value, error) {
	return DeserializeWithOptions(s, name, data, DefaultOptions())
}

// DeserializeWithOptions is Deserialize with explicit Options.
func DeserializeWithOptions(s *typestore.Store, name typedesc.QName, data []byte, opts Options) (typedesc.Value, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return typedesc.Value{}, err
	}
	dec := &decoder{data: data, opts: opts, s: s}
	v, err := dec.decodeMessage(d, 0)
	if err != nil {
		return typedesc.Value{}, err
	}
	if opts.Strict && dec.pos != len(data) {
		return typedesc.Value{}, &OverlongError{Consumed: dec.pos, Total: len(data)}
	}
	return v, nil
}

// rest returns the undecoded remainder of dec.data.
func (dec *decoder) rest() []byte { return dec.data[dec.pos:] }

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
		if dec.pos+length > len(dec.data) {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		b := make([]byte, length)
		copy(b, dec.data[dec.pos:dec.pos+length])
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
	count, n, err := wire1.DecodeU32(dec.rest())
	if err != nil {
		return typedesc.Value{}, &TruncatedError{Field: field}
	}
	dec.pos += n
	if dec.opts.Strict && dec.opts.MaxSeqLen > 0 && int(count) > dec.opts.MaxSeqLen {
		return typedesc.Value{}, &LimitExceededError{Field: field, Size: int(count), Limit: dec.opts.MaxSeqLen}
	}
	if ts.Upper >= 0 && int(count) > ts.Upper {
		return typedesc.Value{}, &BoundViolationError{Field: field, Count: int(count), Bound: ts.Upper}
	}
	if isByteLike(ts.Element) {
		if dec.pos+int(count) > len(dec.data) {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		b := make([]byte, count)
		copy(b, dec.data[dec.pos:dec.pos+int(count)])
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
		v, n, err := wire1.DecodeBool(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.BoolValue(v), nil
	case "uint8", "byte", "octet", "char":
		v, n, err := wire1.DecodeU8(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.UintVal(uint64(v)), nil
	case "int8":
		v, n, err := wire1.DecodeI8(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.IntVal(int64(v)), nil
	case "uint16":
		v, n, err := wire1.DecodeU16(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.UintVal(uint64(v)), nil
	case "int16":
		v, n, err := wire1.DecodeI16(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.IntVal(int64(v)), nil
	case "uint32":
		v, n, err := wire1.DecodeU32(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.UintVal(uint64(v)), nil
	case "int32":
		v, n, err := wire1.DecodeI32(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.IntVal(int64(v)), nil
	case "uint64":
		v, n, err := wire1.DecodeU64(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.UintVal(v), nil
	case "int64":
		v, n, err := wire1.DecodeI64(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.IntVal(v), nil
	case "float32":
		v, n, err := wire1.DecodeF32(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.FloatVal(float64(v)), nil
	case "float64":
		v, n, err := wire1.DecodeF64(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.FloatVal(v), nil
	case "string", "wstring":
		v, n, err := wire1.DecodeString(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		if dec.opts.Strict && dec.opts.MaxStringLen > 0 && len(v) > dec.opts.MaxStringLen {
			return typedesc.Value{}, &LimitExceededError{Field: field, Size: len(v), Limit: dec.opts.MaxStringLen}
		}
		if bt.Name == "string" && bt.Bound >= 0 && len(v) > bt.Bound {
			return typedesc.Value{}, &BoundViolationError{Field: field, Count: len(v), Bound: bt.Bound}
		}
		return typedesc.StringVal(v), nil
	case "time":
		tv, n, err := wire1.DecodeTime(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.MessageVal(map[string]typedesc.Value{
			"sec":  typedesc.UintVal(uint64(tv.Sec)),
			"nsec": typedesc.UintVal(uint64(tv.NSec)),
		}), nil
	case "duration":
		dv, n, err := wire1.DecodeDuration(dec.rest())
		if err != nil {
			return typedesc.Value{}, &TruncatedError{Field: field}
		}
		dec.pos += n
		return typedesc.MessageVal(map[string]typedesc.Value{
			"sec":  typedesc.IntVal(int64(dv.Sec)),
			"nsec": typedesc.IntVal(int64(dv.NSec)),
		}), nil
	default:
		return typedesc.Value{}, &EncodingError{Field: field, Want: bt.Name}
	}
}
