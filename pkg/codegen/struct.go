package codegen

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/blockberries/rosmsg/pkg/typedesc"
)

// Options configures struct generation.
type Options struct {
	// Package is the package name written at the top of the generated file.
	Package string
}

// DefaultOptions returns the default struct generation options.
func DefaultOptions() Options {
	return Options{Package: "rosmsgtypes"}
}

// goField is one rendered struct field.
type goField struct {
	Name    string
	GoType  string
	Comment string // original MSG/IDL spelling, shown when the Go name differs from it
}

// goStruct is one rendered struct, the per-Descriptor unit the template fills in.
type goStruct struct {
	Name   string
	Fields []goField
}

// goFile is the template context for a whole generated file.
type goFile struct {
	Package    string
	ImportWire bool
	Structs    []goStruct
}

var structTemplate = template.Must(template.New("gostruct").Parse(
	`// Code generated by pkg/codegen. DO NOT EDIT.

package {{ .Package }}
{{ if .ImportWire }}
import "github.com/blockberries/rosmsg/internal/wire1"
{{ end }}
{{ range .Structs }}
type {{ .Name }} struct {
{{- range .Fields }}
	{{ .Name }} {{ .GoType }}{{ if .Comment }} // {{ .Comment }}{{ end }}
{{- end }}
}
{{ end -}}
`,
))

// Generate renders a single Go struct definition for d. NameRef fields are
// rendered as a reference to the PascalCase name of the referenced type;
// the caller is responsible for also generating that type (GenerateClosure
// does this for a whole dependency closure at once).
func Generate(d *typedesc.Descriptor, opts Options) (string, error) {
	return GenerateClosure([]*typedesc.Descriptor{d}, opts)
}

// GenerateClosure renders one Go source file containing a struct for every
// Descriptor in descs, in the given order — callers typically pass the
// result of (*typestore.Store).Closure so dependency structs are defined
// before (or after; Go doesn't care about order) their referents.
func GenerateClosure(descs []*typedesc.Descriptor, opts Options) (string, error) {
	f := goFile{Package: opts.Package}
	for _, d := range descs {
		gs, usesWire, err := buildStruct(d)
		if err != nil {
			return "", fmt.Errorf("codegen: %s: %w", d.Name, err)
		}
		f.ImportWire = f.ImportWire || usesWire
		f.Structs = append(f.Structs, gs)
	}
	var b strings.Builder
	if err := structTemplate.Execute(&b, f); err != nil {
		return "", err
	}
	return b.String(), nil
}

func buildStruct(d *typedesc.Descriptor) (goStruct, bool, error) {
	gs := goStruct{Name: ToPascalCase(d.Name.Short())}
	var usesWire bool
	for _, field := range d.Fields {
		goType, fieldUsesWire, err := goFieldType(field.Type)
		if err != nil {
			return goStruct{}, false, fmt.Errorf("field %q: %w", field.Name, err)
		}
		usesWire = usesWire || fieldUsesWire
		name := ToPascalCase(field.Name)
		var comment string
		if name != field.Name {
			comment = field.Name
		}
		gs.Fields = append(gs.Fields, goField{Name: name, GoType: goType, Comment: comment})
	}
	return gs, usesWire, nil
}

// goFieldType maps a typedesc.TypeSpec to its generated Go type spelling.
// The bool result reports whether the mapping used internal/wire1.Time or
// internal/wire1.Duration, so the caller only emits that import when needed.
func goFieldType(t typedesc.TypeSpec) (string, bool, error) {
	switch v := t.(type) {
	case typedesc.BaseType:
		return goBaseType(v)
	case typedesc.NameRef:
		return ToPascalCase(v.Name.Short()), false, nil
	case typedesc.ArrayType:
		if isByteLikeType(v.Element) {
			return fmt.Sprintf("[%d]byte", v.Length), false, nil
		}
		elem, usesWire, err := goFieldType(v.Element)
		if err != nil {
			return "", false, err
		}
		return fmt.Sprintf("[%d]%s", v.Length, elem), usesWire, nil
	case typedesc.SequenceType:
		if isByteLikeType(v.Element) {
			return "[]byte", false, nil
		}
		elem, usesWire, err := goFieldType(v.Element)
		if err != nil {
			return "", false, err
		}
		return "[]" + elem, usesWire, nil
	default:
		return "", false, fmt.Errorf("codegen: unhandled type spec %T", t)
	}
}

func goBaseType(b typedesc.BaseType) (string, bool, error) {
	switch b.Name {
	case "bool":
		return "bool", false, nil
	case "byte", "uint8", "octet":
		return "uint8", false, nil
	case "char", "int8":
		return "int8", false, nil
	case "int16":
		return "int16", false, nil
	case "uint16":
		return "uint16", false, nil
	case "int32":
		return "int32", false, nil
	case "uint32":
		return "uint32", false, nil
	case "int64":
		return "int64", false, nil
	case "uint64":
		return "uint64", false, nil
	case "float32":
		return "float32", false, nil
	case "float64":
		return "float64", false, nil
	case "string", "wstring":
		return "string", false, nil
	case "time":
		return "wire1.Time", true, nil
	case "duration":
		return "wire1.Duration", true, nil
	default:
		return "", false, fmt.Errorf("codegen: unknown base type %q", b.Name)
	}
}

func isByteLikeType(t typedesc.TypeSpec) bool {
	bt, ok := t.(typedesc.BaseType)
	if !ok {
		return false
	}
	return bt.Name == "byte" || bt.Name == "uint8" || bt.Name == "octet"
}
