package typedesc

import (
	"strings"

	"github.com/blockberries/rosmsg/pkg/idldef"
)

// NormalizeIDLFile folds a parsed IDL File into canonical Descriptors,
// one per struct and one per enum (enums fold into constants-only
// Descriptors per spec.md §3's "kind: enum-of-constants-only"). A struct's
// qualified name is its full module path joined with "/", e.g.
// "module geometry_msgs { module msg { struct Point ... } }" yields
// "geometry_msgs/msg/Point".
func NormalizeIDLFile(f *idldef.File) (map[QName]*Descriptor, error) {
	out := map[QName]*Descriptor{}
	for _, m := range f.Modules {
		if err := normalizeIDLModule(m, nil, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func normalizeIDLModule(m *idldef.Module, path []string, out map[QName]*Descriptor) error {
	path = append(path, m.Name)

	for _, e := range m.Enums {
		d := &Descriptor{Name: qnameFromPath(path, e.Name), Kind: KindEnum}
		for i, v := range e.Values {
			d.Constants = append(d.Constants, Constant{
				Name:  v,
				Type:  BaseType{Name: "uint32", Bound: -1},
				Value: UintLiteral(uint64(i)),
			})
		}
		out[d.Name] = d
	}

	for _, s := range m.Structs {
		name := qnameFromPath(path, s.Name)
		d := &Descriptor{Name: name, Kind: KindMessage}
		for _, fd := range s.Fields {
			ts, err := normalizeIDLType(fd.Type, path)
			if err != nil {
				return err
			}
			var def Literal
			if fd.Default != "" {
				bt, ok := baseTypeOf(ts)
				if ok {
					lit, err := parseLiteral(bt, fd.Default)
					if err == nil {
						def = lit
					}
				}
			}
			d.Fields = append(d.Fields, Field{Name: fd.Name, Type: ts, Default: def})
		}
		out[d.Name] = d
	}

	for _, nested := range m.Modules {
		if err := normalizeIDLModule(nested, path, out); err != nil {
			return err
		}
	}
	return nil
}

func qnameFromPath(path []string, name string) QName {
	return QName(strings.Join(path, "/") + "/" + name)
}

func baseTypeOf(ts TypeSpec) (BaseType, bool) {
	bt, ok := ts.(BaseType)
	return bt, ok
}

func normalizeIDLType(t idldef.TypeExpr, path []string) (TypeSpec, error) {
	switch v := t.(type) {
	case idldef.Scalar:
		if IsBaseType(v.Name) {
			return BaseType{Name: v.Name, Bound: -1}, nil
		}
		return NameRef{Name: qualifyIDLName([]string{v.Name}, path)}, nil
	case idldef.Qualified:
		return NameRef{Name: qualifyIDLName(v.Parts, path)}, nil
	case idldef.StringT:
		name := "string"
		if v.Wide {
			name = "wstring"
		}
		return BaseType{Name: name, Bound: v.Bound}, nil
	case idldef.ArrayT:
		elem, err := normalizeIDLType(v.Element, path)
		if err != nil {
			return nil, err
		}
		return ArrayType{Element: elem, Length: v.Length}, nil
	case idldef.SequenceT:
		elem, err := normalizeIDLType(v.Element, path)
		if err != nil {
			return nil, err
		}
		return SequenceType{Element: elem, Upper: v.Bound}, nil
	default:
		return nil, &UnknownTypeError{}
	}
}

// qualifyIDLName resolves an unqualified or partially-qualified IDL type
// name against the enclosing module path: a bare "Point" referenced from
// within module geometry_msgs::msg resolves to "geometry_msgs/msg/Point";
// a fully "foo::bar::Baz" qualified reference is absolute.
func qualifyIDLName(parts []string, path []string) QName {
	if len(parts) > 1 {
		return QName(strings.Join(parts, "/"))
	}
	if parts[0] == "Header" {
		return "std_msgs/msg/Header"
	}
	joined := append(append([]string{}, path...), parts[0])
	return QName(strings.Join(joined, "/"))
}
