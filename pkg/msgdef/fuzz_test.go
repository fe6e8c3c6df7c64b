//go:build go1.18

package msgdef

import "testing"

// FuzzParse checks that Parse never panics on arbitrary .msg text.
func FuzzParse(f *testing.F) {
	f.Add("uint32 a\nstring b\n")
	f.Add("int32 X = 1\nstring Y = hello # world\n")
	f.Add("Header header\nstring data\n")
	f.Add("uint8[] xs\n")
	f.Add("uint8[4] xs\n")
	f.Add("string<=10 name\n")
	f.Add("uint8[<=4] xs\n")
	f.Add("")
	f.Add("#\n")
	f.Add("string FOO=hello # world\n")
	f.Add("uint32 a\n================================================================================\nMSG: pkg/Dep\nuint32 b\n")
	f.Add("uint32[\n")
	f.Add("uint32 a = \n")
	f.Add("uint32 a b c\n")
	f.Add("=====\n")

	f.Fuzz(func(t *testing.T, text string) {
		_, _ = Parse("fuzz/msg/Fuzz", text)
	})
}

// FuzzLexer checks that the line lexer never panics on arbitrary input.
func FuzzLexer(f *testing.F) {
	f.Add("uint32 a")
	f.Add("string FOO=hello # world")
	f.Add("uint8[<=4] xs")
	f.Add("")
	f.Add("////")
	f.Add("<=<=<=")

	f.Fuzz(func(t *testing.T, line string) {
		lx := NewLexer(line)
		for {
			tok := lx.Next()
			if tok.Type == TokEOF {
				break
			}
		}
	})
}
