// Package translate converts a wire1-encoded message directly into its
// CDR encoding and back, without materializing a full typedesc.Value
// tree: each primitive leaf is read with internal/wire1 or internal/cdr
// and immediately re-written with the other package's encode primitives.
// Grounded on the same descriptor-tree-interpretation approach pkg/wire1
// and pkg/cdr use, but fused into a single read-then-write pass per field
// instead of building an intermediate value and two independent codecs.
package translate

import (
	"github.com/blockberries/rosmsg/internal/cdr"
	"github.com/blockberries/rosmsg/internal/wire1"
	"github.com/blockberries/rosmsg/pkg/typedesc"
	"github.com/blockberries/rosmsg/pkg/typestore"
)

// ROS1ToCDR translates b, a wire1 encoding of name's Descriptor in s1,
// into b's CDR encoding of name's Descriptor in s2. A field present in
// the source but absent from the destination (the ROS1-only Header.seq
// field, in practice) is decoded and discarded; the byte order emitted is
// little-endian.
func ROS1ToCDR(s1, s2 *typestore.Store, name typedesc.QName, b []byte) ([]byte, error) {
	srcDesc, err := s1.Lookup(name)
	if err != nil {
		return nil, &Error{Side: SideSource, Field: string(name), Err: err}
	}
	dstDesc, err := s2.Lookup(name)
	if err != nil {
		return nil, &Error{Side: SideDestination, Field: string(name), Err: err}
	}
	order := cdr.LittleEndian
	t := &ros1ToCDR{s1: s1, s2: s2, order: order}
	var out []byte
	if _, err := t.walkMessage(srcDesc, dstDesc, b, 0, &out); err != nil {
		return nil, err
	}
	header := order.Header()
	full := make([]byte, 0, len(header)+len(out))
	full = append(full, header[:]...)
	full = append(full, out...)
	return full, nil
}

// CDRToROS1 translates b, a CDR encoding of name's Descriptor in s2, into
// b's wire1 encoding of name's Descriptor in s1. A field present in the
// destination but absent from the source (Header.seq) is synthesized as
// zero, per invariant 5.
func CDRToROS1(s1, s2 *typestore.Store, name typedesc.QName, b []byte) ([]byte, error) {
	dstDesc, err := s1.Lookup(name)
	if err != nil {
		return nil, &Error{Side: SideDestination, Field: string(name), Err: err}
	}
	srcDesc, err := s2.Lookup(name)
	if err != nil {
		return nil, &Error{Side: SideSource, Field: string(name), Err: err}
	}
	order, n, err := cdr.DecodeHeader(b)
	if err != nil {
		return nil, &Error{Side: SideSource, Field: string(name), Err: err}
	}
	t := &cdrToROS1{s1: s1, s2: s2, order: order}
	var out []byte
	pos := 0
	if err := t.walkMessage(srcDesc, dstDesc, b[n:], &pos, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ros1ToCDR walks a pair of Descriptors (source registered with wire1
// semantics, destination registered with CDR semantics), decoding each
// source field with internal/wire1 and, when the same-named field exists
// on the destination, re-encoding it with internal/cdr.
type ros1ToCDR struct {
	s1, s2 *typestore.Store
	order  cdr.Order
}

// walkMessage decodes src's wire1 fields starting at data[pos:] and
// appends their CDR re-encoding directly onto out — the same shared
// buffer the caller is accumulating, at every nesting depth — so CDR's
// alignment (computed from internal/cdr against len(*out)) is always
// measured from the true payload start rather than a nested zero origin.
// Returns the number of source bytes consumed.
func (t *ros1ToCDR) walkMessage(src, dst *typedesc.Descriptor, data []byte, pos int, out *[]byte) (int, error) {
	dstByName := fieldsByName(dst)
	for _, f := range src.Fields {
		dstField, wanted := dstByName[f.Name]
		consumed, err := t.translateValue(f.Name, f.Type, dstField.Type, wanted, data[pos:], out)
		if err != nil {
			return 0, err
		}
		pos += consumed
	}
	return pos, nil
}

// translateValue decodes one field's wire1 bytes and, if wanted, encodes
// it onto out as CDR. Returns the number of source bytes consumed.
func (t *ros1ToCDR) translateValue(field string, srcType, dstType typedesc.TypeSpec, wanted bool, data []byte, out *[]byte) (int, error) {
	switch ts := srcType.(type) {
	case typedesc.BaseType:
		return t.translateBase(field, ts, wanted, data, out)
	case typedesc.NameRef:
		srcDep, err := t.s1.Lookup(ts.Name)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if !wanted {
			// still must skip over it: decode it against itself onto a
			// throwaway buffer, keeping only the byte count.
			var discard []byte
			consumed, err := t.walkMessage(srcDep, srcDep, data, 0, &discard)
			if err != nil {
				return 0, &Error{Side: SideSource, Field: field, Err: err}
			}
			return consumed, nil
		}
		dstRef, ok := dstType.(typedesc.NameRef)
		if !ok {
			return 0, &Error{Side: SideDestination, Field: field, Err: ErrTranslate}
		}
		dstDep, err := t.s2.Lookup(dstRef.Name)
		if err != nil {
			return 0, &Error{Side: SideDestination, Field: field, Err: err}
		}
		consumed, err := t.walkMessage(srcDep, dstDep, data, 0, out)
		if err != nil {
			return 0, err
		}
		return consumed, nil
	case typedesc.ArrayType:
		return t.translateArray(field, ts.Element, ts.Length, wanted, data, out)
	case typedesc.SequenceType:
		return t.translateSequence(field, ts, wanted, data, out)
	default:
		return 0, &Error{Side: SideSource, Field: field, Err: ErrTranslate}
	}
}

func (t *ros1ToCDR) translateArray(field string, elem typedesc.TypeSpec, length int, wanted bool, data []byte, out *[]byte) (int, error) {
	if isByteLike(elem) {
		if length > len(data) {
			return 0, &Error{Side: SideSource, Field: field, Err: wire1.ErrTruncated}
		}
		if wanted {
			*out = append(*out, data[:length]...)
		}
		return length, nil
	}
	pos := 0
	for i := 0; i < length; i++ {
		n, err := t.translateValue(field, elem, elem, wanted, data[pos:], out)
		if err != nil {
			return 0, err
		}
		pos += n
	}
	return pos, nil
}

func (t *ros1ToCDR) translateSequence(field string, ts typedesc.SequenceType, wanted bool, data []byte, out *[]byte) (int, error) {
	count, n, err := wire1.DecodeU32(data)
	if err != nil {
		return 0, &Error{Side: SideSource, Field: field, Err: err}
	}
	pos := n
	if wanted {
		*out = t.order.AppendU32(*out, count)
	}
	if isByteLike(ts.Element) {
		if pos+int(count) > len(data) {
			return 0, &Error{Side: SideSource, Field: field, Err: wire1.ErrTruncated}
		}
		if wanted {
			*out = append(*out, data[pos:pos+int(count)]...)
		}
		pos += int(count)
		return pos, nil
	}
	for i := 0; i < int(count); i++ {
		n, err := t.translateValue(field, ts.Element, ts.Element, wanted, data[pos:], out)
		if err != nil {
			return 0, err
		}
		pos += n
	}
	return pos, nil
}

func (t *ros1ToCDR) translateBase(field string, bt typedesc.BaseType, wanted bool, data []byte, out *[]byte) (int, error) {
	switch bt.Name {
	case "bool":
		v, n, err := wire1.DecodeBool(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendBool(*out, v)
		}
		return n, nil
	case "uint8", "byte", "octet", "char":
		v, n, err := wire1.DecodeU8(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendU8(*out, v)
		}
		return n, nil
	case "int8":
		v, n, err := wire1.DecodeI8(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendI8(*out, v)
		}
		return n, nil
	case "uint16":
		v, n, err := wire1.DecodeU16(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendU16(*out, v)
		}
		return n, nil
	case "int16":
		v, n, err := wire1.DecodeI16(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendI16(*out, v)
		}
		return n, nil
	case "uint32":
		v, n, err := wire1.DecodeU32(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendU32(*out, v)
		}
		return n, nil
	case "int32":
		v, n, err := wire1.DecodeI32(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendI32(*out, v)
		}
		return n, nil
	case "uint64":
		v, n, err := wire1.DecodeU64(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendU64(*out, v)
		}
		return n, nil
	case "int64":
		v, n, err := wire1.DecodeI64(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendI64(*out, v)
		}
		return n, nil
	case "float32":
		v, n, err := wire1.DecodeF32(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendF32(*out, v)
		}
		return n, nil
	case "float64":
		v, n, err := wire1.DecodeF64(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendF64(*out, v)
		}
		return n, nil
	case "string", "wstring":
		v, n, err := wire1.DecodeString(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			if bt.Name == "wstring" {
				ws, err := t.order.AppendWString(*out, v)
				if err != nil {
					return 0, &Error{Side: SideDestination, Field: field, Err: err}
				}
				*out = ws
			} else {
				*out = t.order.AppendString(*out, v)
			}
		}
		return n, nil
	case "time":
		tv, n, err := wire1.DecodeTime(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendU32(*out, tv.Sec)
			*out = t.order.AppendU32(*out, tv.NSec)
		}
		return n, nil
	case "duration":
		dv, n, err := wire1.DecodeDuration(data)
		if err != nil {
			return 0, &Error{Side: SideSource, Field: field, Err: err}
		}
		if wanted {
			*out = t.order.AppendI32(*out, dv.Sec)
			*out = t.order.AppendI32(*out, dv.NSec)
		}
		return n, nil
	default:
		return 0, &Error{Side: SideSource, Field: field, Err: ErrTranslate}
	}
}

// cdrToROS1 is the mirror of ros1ToCDR, reading CDR and writing wire1;
// destination fields absent from the source (Header.seq) are
// synthesized as zero.
type cdrToROS1 struct {
	s1, s2 *typestore.Store
	order  cdr.Order
}

// walkMessage decodes dst's CDR fields from data, with pos tracking an
// absolute offset into data that is never re-sliced to a nested zero
// origin — matching pkg/cdr's own decoder, whose alignment is only valid
// when measured against the true payload start. Re-encoded wire1 bytes
// are appended onto out.
func (t *cdrToROS1) walkMessage(src, dst *typedesc.Descriptor, data []byte, pos *int, out *[]byte) error {
	srcByName := fieldsByName(src)
	for _, f := range dst.Fields {
		srcField, present := srcByName[f.Name]
		if err := t.translateValue(f.Name, f.Type, srcField.Type, present, data, pos, out); err != nil {
			return err
		}
	}
	return nil
}

func (t *cdrToROS1) translateValue(field string, dstType, srcType typedesc.TypeSpec, present bool, data []byte, pos *int, out *[]byte) error {
	switch ts := dstType.(type) {
	case typedesc.BaseType:
		return t.translateBase(field, ts, srcType, present, data, pos, out)
	case typedesc.NameRef:
		dstDep, err := t.s1.Lookup(ts.Name)
		if err != nil {
			return &Error{Side: SideDestination, Field: field, Err: err}
		}
		if !present {
			for _, df := range dstDep.Fields {
				zeroed, err := t.zeroWire1ForType(df.Type, *out)
				if err != nil {
					return &Error{Side: SideDestination, Field: field, Err: err}
				}
				*out = zeroed
			}
			return nil
		}
		srcRef, ok := srcType.(typedesc.NameRef)
		if !ok {
			return &Error{Side: SideSource, Field: field, Err: ErrTranslate}
		}
		srcDep, err := t.s2.Lookup(srcRef.Name)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		return t.walkMessage(srcDep, dstDep, data, pos, out)
	case typedesc.ArrayType:
		return t.translateArray(field, ts.Element, ts.Length, present, data, pos, out)
	case typedesc.SequenceType:
		return t.translateSequence(field, ts, present, data, pos, out)
	default:
		return &Error{Side: SideDestination, Field: field, Err: ErrTranslate}
	}
}

func (t *cdrToROS1) translateArray(field string, elem typedesc.TypeSpec, length int, present bool, data []byte, pos *int, out *[]byte) error {
	if isByteLike(elem) {
		if !present {
			*out = append(*out, make([]byte, length)...)
			return nil
		}
		if *pos+length > len(data) {
			return &Error{Side: SideSource, Field: field, Err: cdr.ErrTruncated}
		}
		*out = append(*out, data[*pos:*pos+length]...)
		*pos += length
		return nil
	}
	for i := 0; i < length; i++ {
		if err := t.translateValue(field, elem, elem, present, data, pos, out); err != nil {
			return err
		}
	}
	return nil
}

func (t *cdrToROS1) translateSequence(field string, ts typedesc.SequenceType, present bool, data []byte, pos *int, out *[]byte) error {
	if !present {
		*out = wire1.AppendU32(*out, 0)
		return nil
	}
	count, n, err := t.order.DecodeU32(data, *pos)
	if err != nil {
		return &Error{Side: SideSource, Field: field, Err: err}
	}
	*pos = n
	*out = wire1.AppendU32(*out, count)
	if isByteLike(ts.Element) {
		if *pos+int(count) > len(data) {
			return &Error{Side: SideSource, Field: field, Err: cdr.ErrTruncated}
		}
		*out = append(*out, data[*pos:*pos+int(count)]...)
		*pos += int(count)
		return nil
	}
	for i := 0; i < int(count); i++ {
		if err := t.translateValue(field, ts.Element, ts.Element, present, data, pos, out); err != nil {
			return err
		}
	}
	return nil
}

func (t *cdrToROS1) translateBase(field string, dstType typedesc.BaseType, srcType typedesc.TypeSpec, present bool, data []byte, pos *int, out *[]byte) error {
	if !present {
		*out = zeroWire1(dstType, *out)
		return nil
	}
	st, ok := srcType.(typedesc.BaseType)
	if !ok {
		return &Error{Side: SideSource, Field: field, Err: ErrTranslate}
	}
	switch st.Name {
	case "bool":
		v, n, err := t.order.DecodeBool(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendBool(*out, v)
	case "uint8", "byte", "octet", "char":
		v, n, err := t.order.DecodeU8(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendU8(*out, v)
	case "int8":
		v, n, err := t.order.DecodeI8(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendI8(*out, v)
	case "uint16":
		v, n, err := t.order.DecodeU16(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendU16(*out, v)
	case "int16":
		v, n, err := t.order.DecodeI16(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendI16(*out, v)
	case "uint32":
		v, n, err := t.order.DecodeU32(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendU32(*out, v)
	case "int32":
		v, n, err := t.order.DecodeI32(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendI32(*out, v)
	case "uint64":
		v, n, err := t.order.DecodeU64(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendU64(*out, v)
	case "int64":
		v, n, err := t.order.DecodeI64(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendI64(*out, v)
	case "float32":
		v, n, err := t.order.DecodeF32(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendF32(*out, v)
	case "float64":
		v, n, err := t.order.DecodeF64(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendF64(*out, v)
	case "string":
		v, n, err := t.order.DecodeString(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendString(*out, v)
	case "wstring":
		v, n, err := t.order.DecodeWString(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n
		*out = wire1.AppendString(*out, v)
	case "time":
		sec, n1, err := t.order.DecodeU32(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		nsec, n2, err := t.order.DecodeU32(data, n1)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n2
		*out = wire1.AppendTime(*out, wire1.Time{Sec: sec, NSec: nsec})
	case "duration":
		sec, n1, err := t.order.DecodeI32(data, *pos)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		nsec, n2, err := t.order.DecodeI32(data, n1)
		if err != nil {
			return &Error{Side: SideSource, Field: field, Err: err}
		}
		*pos = n2
		*out = wire1.AppendDuration(*out, wire1.Duration{Sec: sec, NSec: nsec})
	default:
		return &Error{Side: SideSource, Field: field, Err: ErrTranslate}
	}
	return nil
}

// zeroWire1ForType appends the wire1 zero value for ty, recursing through
// nested NameRef messages and fixed-size arrays the way zeroWire1 does for
// a single base field, used to synthesize a destination-only field absent
// from the source.
func (t *cdrToROS1) zeroWire1ForType(ty typedesc.TypeSpec, out []byte) ([]byte, error) {
	switch ts := ty.(type) {
	case typedesc.BaseType:
		return zeroWire1(ts, out), nil
	case typedesc.NameRef:
		dep, err := t.s1.Lookup(ts.Name)
		if err != nil {
			return nil, err
		}
		for _, f := range dep.Fields {
			out, err = t.zeroWire1ForType(f.Type, out)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	case typedesc.ArrayType:
		if isByteLike(ts.Element) {
			return append(out, make([]byte, ts.Length)...), nil
		}
		var err error
		for i := 0; i < ts.Length; i++ {
			out, err = t.zeroWire1ForType(ts.Element, out)
			if err != nil {
				return nil, err
			}
		}
		return out, nil
	case typedesc.SequenceType:
		return wire1.AppendU32(out, 0), nil
	default:
		return out, nil
	}
}

// zeroWire1 appends the wire1 zero value for bt, used to synthesize a
// destination-only field (Header.seq) absent from the source.
func zeroWire1(bt typedesc.BaseType, out []byte) []byte {
	switch bt.Name {
	case "bool":
		return wire1.AppendBool(out, false)
	case "uint8", "byte", "octet", "char", "int8":
		return wire1.AppendU8(out, 0)
	case "uint16", "int16":
		return wire1.AppendU16(out, 0)
	case "uint32", "int32":
		return wire1.AppendU32(out, 0)
	case "uint64", "int64":
		return wire1.AppendU64(out, 0)
	case "float32":
		return wire1.AppendF32(out, 0)
	case "float64":
		return wire1.AppendF64(out, 0)
	case "string", "wstring":
		return wire1.AppendString(out, "")
	case "time":
		return wire1.AppendTime(out, wire1.Time{})
	case "duration":
		return wire1.AppendDuration(out, wire1.Duration{})
	default:
		return out
	}
}

func fieldsByName(d *typedesc.Descriptor) map[string]typedesc.Field {
	m := make(map[string]typedesc.Field, len(d.Fields))
	for _, f := range d.Fields {
		m[f.Name] = f
	}
	return m
}

func isByteLike(t typedesc.TypeSpec) bool {
	bt, ok := t.(typedesc.BaseType)
	return ok && (bt.Name == "uint8" || bt.Name == "byte" || bt.Name == "octet")
}
