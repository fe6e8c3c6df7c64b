// Package codegen renders a typedesc.Descriptor as a Go struct definition,
// a typed alternative to decoding into the generic typedesc.Value tree.
package codegen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser title-cases a single word; combined with splitName below it
// turns MSG/IDL snake_case field names into Go-exported identifiers.
var titleCaser = cases.Title(language.English)

// ToPascalCase converts a snake_case or already-PascalCase MSG/IDL name
// into an exported Go identifier, e.g. "frame_id" -> "FrameID" is NOT
// special-cased here (that would require an initialism table); plain
// "frame_id" -> "FrameId".
func ToPascalCase(s string) string {
	parts := splitName(s)
	for i, p := range parts {
		parts[i] = titleCaser.String(strings.ToLower(p))
	}
	return strings.Join(parts, "")
}

// splitName splits s on underscores and on lower-to-upper case
// transitions, so both "frame_id" and "frameId" split into ["frame", "id"].
func splitName(s string) []string {
	if s == "" {
		return nil
	}
	var parts []string
	var cur strings.Builder
	for i, r := range s {
		if r == '_' || r == '-' {
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
			continue
		}
		if i > 0 && isUpper(r) && !isUpper(rune(s[i-1])) {
			if cur.Len() > 0 {
				parts = append(parts, cur.String())
				cur.Reset()
			}
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
