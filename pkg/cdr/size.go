package cdr

import (
	"github.com/blockberries/rosmsg/internal/cdr"
	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

// Size returns the would-be encoded length (including the 4-byte
// representation header) of v against the Descriptor registered under
// name in s, walking the Descriptor tree the same way encodeMessage does
// but tallying an aligned running offset instead of appending bytes, so
// it never materializes the output (spec invariant:
// size(v, T) == len(serialize(v, T))).
func Size(s *typestore.Store, name typedesc.QName, v typedesc.Value) (int, error) {
	d, err := s.Lookup(name)
	if err != nil {
		return 0, err
	}
	pos, err := sizeMessage(s, d, v, 0)
	if err != nil {
		return 0, err
	}
	return cdr.HeaderSize + pos, nil
}

func sizeMessage(s *typestore.Store, d *typedesc.Descriptor, v typedesc.Value, pos int) (int, error) {
	for _, f := range d.Fields {
		fv, ok := v.Field(f.Name)
		if !ok {
			return 0, &EncodingError{Field: f.Name, Want: f.Type.String()}
		}
		n, err := sizeValue(s, f.Name, f.Type, fv, pos)
		if err != nil {
			return 0, err
		}
		pos = n
	}
	return pos, nil
}

func sizeValue(s *typestore.Store, field string, t typedesc.TypeSpec, v typedesc.Value, pos int) (int, error) {
	switch ts := t.(type) {
	case typedesc.BaseType:
		return sizeBase(field, ts, v, pos)
	case typedesc.NameRef:
		dep, err := s.Lookup(ts.Name)
		if err != nil {
			return 0, err
		}
		return sizeMessage(s, dep, v, pos)
	case typedesc.ArrayType:
		return sizeArray(s, field, ts.Element, ts.Length, v, pos)
	case typedesc.SequenceType:
		return sizeSequence(s, field, ts, v, pos)
	default:
		return 0, &EncodingError{Field: field, Want: "unknown type"}
	}
}

func sizeArray(s *typestore.Store, field string, elem typedesc.TypeSpec, length int, v typedesc.Value, pos int) (int, error) {
	if isByteLike(elem) {
		if len(v.Bytes) != length {
			return 0, &EncodingError{Field: field, Want: "byte array of fixed length"}
		}
		return pos + length, nil
	}
	if len(v.List) != length {
		return 0, &EncodingError{Field: field, Want: "array of fixed length"}
	}
	for _, ev := range v.List {
		n, err := sizeValue(s, field, elem, ev, pos)
		if err != nil {
			return 0, err
		}
		pos = n
	}
	return pos, nil
}

func sizeSequence(s *typestore.Store, field string, ts typedesc.SequenceType, v typedesc.Value, pos int) (int, error) {
	pos = cdr.AlignTo(pos, 4) + 4
	if isByteLike(ts.Element) {
		if ts.Upper >= 0 && len(v.Bytes) > ts.Upper {
			return 0, &BoundViolationError{Field: field, Count: len(v.Bytes), Bound: ts.Upper}
		}
		return pos + len(v.Bytes), nil
	}
	if ts.Upper >= 0 && len(v.List) > ts.Upper {
		return 0, &BoundViolationError{Field: field, Count: len(v.List), Bound: ts.Upper}
	}
	for _, ev := range v.List {
		n, err := sizeValue(s, field, ts.Element, ev, pos)
		if err != nil {
			return 0, err
		}
		pos = n
	}
	return pos, nil
}

func sizeBase(field string, bt typedesc.BaseType, v typedesc.Value, pos int) (int, error) {
	switch bt.Name {
	case "bool", "uint8", "byte", "octet", "char", "int8":
		return pos + 1, nil
	case "uint16", "int16":
		return cdr.AlignTo(pos, 2) + 2, nil
	case "uint32", "int32", "float32":
		return cdr.AlignTo(pos, 4) + 4, nil
	case "uint64", "int64", "float64":
		return cdr.AlignTo(pos, 8) + 8, nil
	case "string":
		return cdr.AlignTo(pos, 4) + cdr.SizeOfString(v.Str), nil
	case "wstring":
		n, err := wstringCodeUnitBytes(v.Str)
		if err != nil {
			return 0, &EncodingError{Field: field, Want: "valid UTF-16 wstring"}
		}
		p := cdr.AlignTo(pos, 4) + 4
		return cdr.AlignTo(p, 2) + n, nil
	case "time", "duration":
		return cdr.AlignTo(pos, 4) + 8, nil
	default:
		return 0, &EncodingError{Field: field, Want: bt.Name}
	}
}

// wstringCodeUnitBytes returns the byte length of s's UTF-16 code units on
// the wire, reusing internal/cdr's own transcoder (via a pos-0 encode into
// a scratch buffer) rather than duplicating the UTF-16 conversion here.
// The 4-byte count prefix is 2-aligned already when measured from offset
// 0, so it contributes no extra padding to subtract.
func wstringCodeUnitBytes(s string) (int, error) {
	buf, err := cdr.LittleEndian.AppendWString(nil, s)
	if err != nil {
		return 0, err
	}
	return len(buf) - 4, nil
}
