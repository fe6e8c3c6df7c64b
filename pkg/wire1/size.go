package wire1

import (
	"github.com/blockberries/rosmsg/internal/wire1"
	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

// Size returns the would-be encoded length of v against the Descriptor
// registered under name in s, walking the Descriptor tree the same way
// encodeMessage does but tallying field sizes instead of appending bytes,
// so it never materializes the output (spec invariant:
// size(v, T) == len(serialize(v, T))).
func Size(s *typestore.Store, name typedesc.QName, v typedesc.Value) (int, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return 0, err
	}
	return sizeMessage(s, d, v)
}

func sizeMessage(s *typestore.Store, d *typedesc.Descriptor, v typedesc.Value) (int, error) {
	total := 0
	for _, f := range d.Fields {
		fv, ok := v.Field(f.Name)
		if !ok {
			return 0, &EncodingError{Field: f.Name, Want: f.Type.String()}
		}
		n, err := sizeValue(s, f.Name, f.Type, fv)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func sizeValue(s *typestore.Store, field string, t typedesc.TypeSpec, v typedesc.Value) (int, error) {
	switch ts := t.(type) {
	case typedesc.BaseType:
		return sizeBase(field, ts, v)
	case typedesc.NameRef:
		dep, err := s.Lookup(ts.Name)
		if err != nil {
			return 0, err
		}
		return sizeMessage(s, dep, v)
	case typedesc.ArrayType:
		return sizeArray(s, field, ts.Element, ts.Length, v)
	case typedesc.SequenceType:
		return sizeSequence(s, field, ts, v)
	default:
		return 0, &EncodingError{Field: field, Want: "unknown type"}
	}
}

func sizeArray(s *typestore.Store, field string, elem typedesc.TypeSpec, length int, v typedesc.Value) (int, error) {
	if isByteLike(elem) {
		if len(v.Bytes) != length {
			return 0, &EncodingError{Field: field, Want: "byte array of fixed length"}
		}
		return length, nil
	}
	if len(v.List) != length {
		return 0, &EncodingError{Field: field, Want: "array of fixed length"}
	}
	total := 0
	for _, ev := range v.List {
		n, err := sizeValue(s, field, elem, ev)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func sizeSequence(s *typestore.Store, field string, ts typedesc.SequenceType, v typedesc.Value) (int, error) {
	if isByteLike(ts.Element) {
		if ts.Upper >= 0 && len(v.Bytes) > ts.Upper {
			return 0, &BoundViolationError{Field: field, Count: len(v.Bytes), Bound: ts.Upper}
		}
		return 4 + len(v.Bytes), nil
	}
	if ts.Upper >= 0 && len(v.List) > ts.Upper {
		return 0, &BoundViolationError{Field: field, Count: len(v.List), Bound: ts.Upper}
	}
	total := 4
	for _, ev := range v.List {
		n, err := sizeValue(s, field, ts.Element, ev)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func sizeBase(field string, bt typedesc.BaseType, v typedesc.Value) (int, error) {
	switch bt.Name {
	case "bool", "uint8", "byte", "octet", "char", "int8":
		return 1, nil
	case "uint16", "int16":
		return 2, nil
	case "uint32", "int32", "float32":
		return 4, nil
	case "uint64", "int64", "float64":
		return 8, nil
	case "string", "wstring":
		return wire1.SizeOfString(v.Str), nil
	case "time", "duration":
		return 8, nil
	default:
		return 0, &EncodingError{Field: field, Want: bt.Name}
	}
}
