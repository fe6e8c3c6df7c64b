package idldef

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse reads one IDL translation unit and returns its File.
func Parse(src string) (*File, error) {
	p := newParser(src)
	f := &File{}
	for p.cur.Type != TokEOF {
		if p.cur.Type == TokIdent && p.cur.Text == "module" {
			m := p.parseModule()
			if m != nil {
				f.Modules = append(f.Modules, m)
			}
			continue
		}
		p.errf(p.cur, "expected \"module\" at top level, got %q", p.cur.Text)
		p.advance()
	}
	if len(p.errs) > 0 {
		return f, ParseErrors(p.errs)
	}
	return f, nil
}

type parser struct {
	lex  *Lexer
	cur  Token
	errs []*ParseError
}

func newParser(src string) *parser {
	p := &parser{lex: NewLexer(src)}
	p.advance()
	return p
}

func (p *parser) advance() { p.cur = p.lex.Next() }

func (p *parser) errf(t Token, format string, args ...interface{}) {
	p.errs = append(p.errs, &ParseError{Line: t.Line, Col: t.Col, Message: fmt.Sprintf(format, args...)})
}

func (p *parser) expect(tt TokenType, what string) (Token, bool) {
	if p.cur.Type != tt {
		p.errf(p.cur, "expected %s, got %q", what, p.cur.Text)
		return p.cur, false
	}
	t := p.cur
	p.advance()
	return t, true
}

func (p *parser) expectIdent(text string) bool {
	if p.cur.Type != TokIdent || p.cur.Text != text {
		p.errf(p.cur, "expected %q, got %q", text, p.cur.Text)
		return false
	}
	p.advance()
	return true
}

func (p *parser) parseModule() *Module {
	p.advance() // "module"
	name, ok := p.expect(TokIdent, "module name")
	if !ok {
		p.skipToBrace()
	}
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		return nil
	}
	m := &Module{Name: name.Text}
	var pendingVerbatim string
	for p.cur.Type != TokRBrace && p.cur.Type != TokEOF {
		switch {
		case p.cur.Type == TokAt:
			name, args := p.parseAnnotation()
			if name == "verbatim" {
				pendingVerbatim = args["text"]
			}
		case p.cur.Type == TokIdent && p.cur.Text == "module":
			if nested := p.parseModule(); nested != nil {
				m.Modules = append(m.Modules, nested)
			}
		case p.cur.Type == TokIdent && p.cur.Text == "struct":
			if s := p.parseStruct(pendingVerbatim); s != nil {
				m.Structs = append(m.Structs, s)
			}
			pendingVerbatim = ""
		case p.cur.Type == TokIdent && p.cur.Text == "typedef":
			if t := p.parseTypedef(); t != nil {
				m.Typedefs = append(m.Typedefs, t)
			}
		case p.cur.Type == TokIdent && p.cur.Text == "const":
			if c := p.parseConst(); c != nil {
				m.Consts = append(m.Consts, c)
			}
		case p.cur.Type == TokIdent && p.cur.Text == "enum":
			if e := p.parseEnum(); e != nil {
				m.Enums = append(m.Enums, e)
			}
		default:
			p.errf(p.cur, "unexpected token %q inside module", p.cur.Text)
			p.advance()
		}
	}
	p.expect(TokRBrace, "'}'")
	if p.cur.Type == TokSemicolon {
		p.advance()
	}
	return m
}

// parseAnnotation consumes "@name(arg1=val1, arg2="text", ...)" and
// returns the annotation name and its arguments keyed by argument name
// ("text" for @verbatim, "value" for @default, "min"/"max" for @range).
func (p *parser) parseAnnotation() (string, map[string]string) {
	p.advance() // '@'
	name, _ := p.expect(TokIdent, "annotation name")
	args := map[string]string{}
	if p.cur.Type == TokLParen {
		p.advance()
		for p.cur.Type != TokRParen && p.cur.Type != TokEOF {
			key, _ := p.expect(TokIdent, "annotation argument name")
			if p.cur.Type == TokEquals {
				p.advance()
			}
			val := p.cur
			p.advance()
			args[key.Text] = val.Text
			if p.cur.Type == TokComma {
				p.advance()
			}
		}
		p.expect(TokRParen, "')'")
	}
	return name.Text, args
}

func (p *parser) parseStruct(verbatim string) *Struct {
	p.advance() // "struct"
	name, ok := p.expect(TokIdent, "struct name")
	if !ok {
		p.skipToBrace()
	}
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		return nil
	}
	s := &Struct{Name: name.Text, Verbatim: verbatim}
	var pendingDefault string
	for p.cur.Type != TokRBrace && p.cur.Type != TokEOF {
		if p.cur.Type == TokAt {
			annName, args := p.parseAnnotation()
			if annName == "default" {
				pendingDefault = args["value"]
			}
			continue
		}
		line := p.cur.Line
		typ := p.parseTypeExpr()
		fname, ok := p.expect(TokIdent, "field name")
		if !ok {
			p.skipToSemicolon()
			continue
		}
		if p.cur.Type == TokLBracket {
			p.advance()
			n, _ := p.expect(TokInt, "array length")
			p.expect(TokRBracket, "']'")
			length, _ := strconv.Atoi(n.Text)
			typ = ArrayT{Element: typ, Length: length}
		}
		p.expect(TokSemicolon, "';'")
		s.Fields = append(s.Fields, &StructField{Name: fname.Text, Type: typ, Default: pendingDefault, Line: line})
		pendingDefault = ""
	}
	p.expect(TokRBrace, "'}'")
	if p.cur.Type == TokSemicolon {
		p.advance()
	}
	return s
}

func (p *parser) parseTypedef() *Typedef {
	p.advance() // "typedef"
	line := p.cur.Line
	typ := p.parseTypeExpr()
	name, ok := p.expect(TokIdent, "typedef name")
	if !ok {
		p.skipToSemicolon()
		return nil
	}
	p.expect(TokSemicolon, "';'")
	return &Typedef{Name: name.Text, Type: typ, Line: line}
}

func (p *parser) parseConst() *Const {
	p.advance() // "const"
	line := p.cur.Line
	typ := p.parseTypeExpr()
	name, ok := p.expect(TokIdent, "constant name")
	if !ok {
		p.skipToSemicolon()
		return nil
	}
	p.expect(TokEquals, "'='")
	var parts []string
	for p.cur.Type != TokSemicolon && p.cur.Type != TokEOF {
		parts = append(parts, p.cur.Text)
		p.advance()
	}
	p.expect(TokSemicolon, "';'")
	return &Const{Name: name.Text, Type: typ, ValueText: strings.Join(parts, ""), Line: line}
}

func (p *parser) parseEnum() *Enum {
	p.advance() // "enum"
	line := p.cur.Line
	name, ok := p.expect(TokIdent, "enum name")
	if !ok {
		p.skipToBrace()
	}
	if _, ok := p.expect(TokLBrace, "'{'"); !ok {
		return nil
	}
	e := &Enum{Name: name.Text, Line: line}
	for p.cur.Type != TokRBrace && p.cur.Type != TokEOF {
		v, ok := p.expect(TokIdent, "enum value")
		if ok {
			e.Values = append(e.Values, v.Text)
		}
		if p.cur.Type == TokComma {
			p.advance()
		}
	}
	p.expect(TokRBrace, "'}'")
	if p.cur.Type == TokSemicolon {
		p.advance()
	}
	return e
}

// parseTypeExpr parses a (possibly qualified, possibly templated) type
// name: sequence<T>, sequence<T,N>, string<N>, wstring<N>, foo::bar::Baz,
// or a bare scalar/named type.
func (p *parser) parseTypeExpr() TypeExpr {
	if p.cur.Type == TokIdent && p.cur.Text == "sequence" {
		p.advance()
		p.expect(TokLT, "'<'")
		elem := p.parseTypeExpr()
		bound := -1
		if p.cur.Type == TokComma {
			p.advance()
			n, _ := p.expect(TokInt, "sequence bound")
			bound, _ = strconv.Atoi(n.Text)
		}
		p.expect(TokGT, "'>'")
		return SequenceT{Element: elem, Bound: bound}
	}
	if p.cur.Type == TokIdent && (p.cur.Text == "string" || p.cur.Text == "wstring") {
		wide := p.cur.Text == "wstring"
		p.advance()
		bound := -1
		if p.cur.Type == TokLT {
			p.advance()
			n, _ := p.expect(TokInt, "string bound")
			bound, _ = strconv.Atoi(n.Text)
			p.expect(TokGT, "'>'")
		}
		return StringT{Wide: wide, Bound: bound}
	}

	first, _ := p.expect(TokIdent, "type name")
	parts := []string{first.Text}
	for p.cur.Type == TokColonColon {
		p.advance()
		next, _ := p.expect(TokIdent, "qualified name segment")
		parts = append(parts, next.Text)
	}
	if len(parts) == 1 {
		return Scalar{Name: parts[0]}
	}
	return Qualified{Parts: parts}
}

func (p *parser) skipToSemicolon() {
	for p.cur.Type != TokSemicolon && p.cur.Type != TokEOF {
		p.advance()
	}
	if p.cur.Type == TokSemicolon {
		p.advance()
	}
}

func (p *parser) skipToBrace() {
	for p.cur.Type != TokLBrace && p.cur.Type != TokEOF {
		p.advance()
	}
}
