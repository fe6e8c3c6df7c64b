package typedesc

import (
	"strconv"
	"strings"

	"github.com/blockberries/rosmsg/pkg/msgdef"
)

// NormalizeMsgFile folds a parsed .msg File into canonical Descriptors:
// the primary definition (named primaryName) plus one Descriptor per
// bundled dependency. Cross-package references that were NOT bundled in
// the file (e.g. a field of type "geometry_msgs/Point" with no matching
// "MSG: geometry_msgs/Point" block) are left as unresolved NameRefs for
// the typestore to resolve against its own registry.
func NormalizeMsgFile(f *msgdef.File, primaryName QName) (map[QName]*Descriptor, error) {
	out := map[QName]*Descriptor{}
	for _, dep := range f.Deps {
		d, err := normalizeMsgDef(dep, canonicalizeBannerName(dep.Name))
		if err != nil {
			return nil, err
		}
		out[d.Name] = d
	}
	primary, err := normalizeMsgDef(f.Primary, primaryName)
	if err != nil {
		return nil, err
	}
	out[primary.Name] = primary
	return out, nil
}

func normalizeMsgDef(def *msgdef.Def, name QName) (*Descriptor, error) {
	d := &Descriptor{Name: name, Kind: KindMessage}
	pkg := name.Package()

	for _, c := range def.Consts {
		bt, err := normalizeBaseType(c.Type)
		if err != nil {
			return nil, err
		}
		lit, err := parseLiteral(bt, c.ValueText)
		if err != nil {
			return nil, &BadLiteralError{Name: c.Name, Type: bt}
		}
		d.Constants = append(d.Constants, Constant{Name: c.Name, Type: bt, Value: lit})
	}

	for _, fd := range def.Fields {
		ts, err := normalizeTypeSpec(fd.Type, pkg)
		if err != nil {
			return nil, err
		}
		d.Fields = append(d.Fields, Field{Name: fd.Name, Type: ts})
	}

	return d, nil
}

func normalizeBaseType(rt msgdef.RawType) (BaseType, error) {
	if !IsBaseType(rt.Name) {
		return BaseType{}, &UnknownTypeError{Ref: QName(rt.Name)}
	}
	return BaseType{Name: rt.Name, Bound: rt.StringBound}, nil
}

// normalizeTypeSpec converts a msgdef.RawType into a typedesc.TypeSpec. A
// bare message-reference name with no "/" is resolved relative to pkg,
// matching ROS1's same-package-implicit rule (a field declared "Header
// header" inside a geometry_msgs message means geometry_msgs/Header only
// if no bundled std_msgs/Header block resolved it first — here qualify
// always maps a bare "Header" to std_msgs/msg/Header instead, since Header
// is near-universally unqualified in practice).
func normalizeTypeSpec(rt msgdef.RawType, pkg string) (TypeSpec, error) {
	var elem TypeSpec
	if IsBaseType(rt.Name) {
		elem = BaseType{Name: rt.Name, Bound: rt.StringBound}
	} else {
		elem = NameRef{Name: qualify(rt.Name, pkg)}
	}

	switch {
	case rt.ArrayLen >= 0:
		return ArrayType{Element: elem, Length: rt.ArrayLen}, nil
	case rt.IsSequence:
		return SequenceType{Element: elem, Upper: rt.SeqBound}, nil
	default:
		return elem, nil
	}
}

// qualify resolves a field's raw type name (as written in .msg source)
// into an absolute 3-segment QName. A name already containing "/" is a
// cross-package reference spelled "pkg/Type" (ROS1 style, no "msg"
// segment) and is canonicalized the same way a bundled "MSG: pkg/Type"
// banner is. A bare name resolves against the declaring message's own
// package, with "Header" special-cased to std_msgs per near-universal
// ROS1 convention.
func qualify(name, pkg string) QName {
	if strings.Contains(name, "/") {
		return canonicalizeBannerName(name)
	}
	if name == "Header" {
		return QName("std_msgs/msg/Header")
	}
	return QName(pkg + "/msg/" + name)
}

// canonicalizeBannerName turns a "MSG: pkg/Name" banner's 2-segment name
// into the canonical 3-segment "pkg/msg/Name" form; a name that already
// has 3 (or more) segments is left alone.
func canonicalizeBannerName(name string) QName {
	parts := strings.Split(name, "/")
	if len(parts) == 2 {
		return QName(parts[0] + "/msg/" + parts[1])
	}
	return QName(name)
}

// parseLiteral interprets valueText per ROS1 constant rules: the entire
// rest of the line for strings (already captured verbatim by the parser),
// a Go-parseable numeric literal otherwise. Integer literals must fit the
// declared type's width.
func parseLiteral(bt BaseType, valueText string) (Literal, error) {
	bits := 64
	switch bt.Name {
	case "uint8", "int8", "byte", "char", "octet":
		bits = 8
	case "uint16", "int16":
		bits = 16
	case "uint32", "int32":
		bits = 32
	}
	switch bt.Name {
	case "bool":
		v, err := strconv.ParseBool(valueText)
		if err != nil {
			return nil, err
		}
		return BoolLiteral(v), nil
	case "string", "wstring":
		return StringLiteral(valueText), nil
	case "float32", "float64":
		v, err := strconv.ParseFloat(valueText, 64)
		if err != nil {
			return nil, err
		}
		return FloatLiteral(v), nil
	case "uint8", "uint16", "uint32", "uint64", "byte", "char", "octet":
		v, err := strconv.ParseUint(valueText, 0, bits)
		if err != nil {
			return nil, err
		}
		return UintLiteral(v), nil
	default:
		v, err := strconv.ParseInt(valueText, 0, bits)
		if err != nil {
			return nil, err
		}
		return IntLiteral(v), nil
	}
}
