package typedesc

import (
	"strings"
	"text/template"
)

// msgTemplate renders a single Descriptor as canonical .msg text: constants
// first, then fields, one per line, matching the ordering md5Text uses.
// Dependency definitions are not inlined here; EmitMSG below appends them
// as separate "MSG: pkg/Name" blocks the way concatenated .msg connection
// headers do.
var msgTemplate = template.Must(template.New("msg").Parse(
	`{{- range .Constants }}{{ .Type.String }} {{ .Name }}={{ .Value.String }}
{{ end -}}
{{- range .Fields }}{{ .Type.String }} {{ .Name }}{{ if .Default }} {{ .Default.String }}{{ end }}
{{ end -}}`,
))

// EmitMSG renders d, followed by the recursively-gathered text of every
// message type it (transitively) references, each preceded by an
// 80-character "=" separator and a "MSG: <name>" banner — the format
// wire1 bag headers and `rosmsg show` output share.
func EmitMSG(d *Descriptor, resolve Resolver) (string, error) {
	var b strings.Builder
	if err := msgTemplate.Execute(&b, d); err != nil {
		return "", err
	}

	seen := map[QName]bool{d.Name: true}
	var deps []QName
	var collect func(*Descriptor) error
	collect = func(cur *Descriptor) error {
		for _, name := range sortedDependencies(cur) {
			if seen[name] {
				continue
			}
			seen[name] = true
			dep, ok := resolve(name)
			if !ok {
				return &UnknownTypeError{Ref: name}
			}
			deps = append(deps, name)
			if err := collect(dep); err != nil {
				return err
			}
		}
		return nil
	}
	if err := collect(d); err != nil {
		return "", err
	}

	sep := strings.Repeat("=", 80)
	for _, name := range deps {
		dep, _ := resolve(name)
		b.WriteString(sep)
		b.WriteString("\nMSG: ")
		b.WriteString(string(name))
		b.WriteString("\n")
		if err := msgTemplate.Execute(&b, dep); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}
