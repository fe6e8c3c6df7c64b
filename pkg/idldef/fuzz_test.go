//go:build go1.18

package idldef

import "testing"

// FuzzParse checks that Parse never panics on arbitrary IDL text.
func FuzzParse(f *testing.F) {
	f.Add(`module p { module msg { struct Foo { uint32 a; string b; }; }; };`)
	f.Add(`module p { module msg { struct Empty {}; }; };`)
	f.Add(`module p { module msg { const long X = 1; }; };`)
	f.Add(`module p { module msg { struct Foo { sequence<uint8> xs; }; }; };`)
	f.Add(`module p { module msg { struct Foo { sequence<uint8, 4> xs; }; }; };`)
	f.Add(`module p { module msg { struct Foo { string<10> name; }; }; };`)
	f.Add("")
	f.Add("{")
	f.Add("}")
	f.Add("module")
	f.Add("module p {")
	f.Add(`module p { module msg { struct Foo { @verbatim(language="comment", text="uint32 a") uint32 a; }; }; };`)
	f.Add(`// comment
module p { /* block */ module msg { struct Foo { uint32 a; }; }; };`)

	f.Fuzz(func(t *testing.T, src string) {
		_, _ = Parse(src)
	})
}

// FuzzLexer checks that the IDL lexer never panics on arbitrary input.
func FuzzLexer(f *testing.F) {
	f.Add(`module p { struct Foo { uint32 a; }; };`)
	f.Add(`"hello world"`)
	f.Add(`123`)
	f.Add(`0x1A`)
	f.Add(`identifier`)
	f.Add(`// comment`)
	f.Add(`/* multi-line comment */`)
	f.Add(`::foo::bar::Baz`)

	f.Fuzz(func(t *testing.T, src string) {
		l := NewLexer(src)
		for {
			tok := l.Next()
			if tok.Type == TokEOF {
				break
			}
		}
	})
}
