package msgdef

import (
	"strconv"
	"strings"
)

// Parse reads concatenated .msg text (a primary definition optionally
// followed by "====...="-separated dependency definitions, each preceded
// by a "MSG: pkg/Name" banner) and returns the resulting File. primaryName
// is the primary definition's fully-qualified name, supplied by the
// caller from the file's own package/filename context rather than parsed
// from the text (a bare .msg file never names itself).
//
// Parse never stops at the first bad line: every line is attempted, and
// every failure is collected, matching the teacher's Parser, which
// gathers a []ParseError instead of failing fast.
func Parse(primaryName, text string) (*File, error) {
	p := &parser{lines: splitLines(text)}
	p.primary = &Def{Name: primaryName}
	p.current = p.primary
	p.parse()
	if len(p.errs) > 0 {
		return p.file(), ParseErrors(p.errs)
	}
	return p.file(), nil
}

type parser struct {
	lines   []string
	primary *Def
	deps    []*Def
	current *Def
	errs    []*ParseError

	// fieldsSeen/constsSeen dedupe within the definition currently being
	// parsed; reset whenever a new "MSG:" banner starts a dependency.
	fieldsSeen map[string]bool
	constsSeen map[string]bool
}

func (p *parser) file() *File {
	return &File{Primary: p.primary, Deps: p.deps}
}

func (p *parser) parse() {
	p.fieldsSeen = map[string]bool{}
	p.constsSeen = map[string]bool{}

	for i := 0; i < len(p.lines); i++ {
		lineNo := i + 1
		raw := p.lines[i]

		if isSeparatorLine(raw) {
			i++
			if i >= len(p.lines) {
				p.errf(UnexpectedToken, lineNo, 1, "separator line not followed by a MSG: banner")
				break
			}
			name, ok := parseMsgBanner(p.lines[i])
			if !ok {
				p.errf(UnexpectedToken, i+2, 1, "expected \"MSG: pkg/Name\" banner after separator")
				continue
			}
			dep := &Def{Name: name}
			p.deps = append(p.deps, dep)
			p.current = dep
			p.fieldsSeen = map[string]bool{}
			p.constsSeen = map[string]bool{}
			continue
		}

		line := stripComment(raw)
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.parseDeclLine(line, lineNo)
	}
}

func (p *parser) parseDeclLine(line string, lineNo int) {
	lx := NewLexer(line)
	rt, ok := p.parseType(lx, lineNo)
	if !ok {
		return
	}

	nameTok := lx.Next()
	if nameTok.Type != TokIdent {
		p.errf(UnexpectedToken, lineNo, nameTok.Col, "expected field or constant name")
		return
	}
	name := nameTok.Text

	eq := lx.Peek()
	if eq.Type == TokEquals {
		lx.Next()
		valueText := strings.TrimSpace(lx.Rest())
		if valueText == "" {
			p.errf(BadLiteral, lineNo, eq.Col, "constant has no value")
			return
		}
		if p.constsSeen[name] {
			p.errf(DuplicateField, lineNo, 1, "duplicate constant \""+name+"\"")
			return
		}
		p.constsSeen[name] = true
		p.current.Consts = append(p.current.Consts, ConstDecl{Type: rt, Name: name, ValueText: valueText, Line: lineNo})
		return
	}

	trailing := lx.Next()
	if trailing.Type != TokEOF {
		p.errf(UnexpectedToken, lineNo, trailing.Col, "unexpected token after field name: "+trailing.Text)
		return
	}
	if p.fieldsSeen[name] {
		p.errf(DuplicateField, lineNo, 1, "duplicate field \""+name+"\"")
		return
	}
	p.fieldsSeen[name] = true
	p.current.Fields = append(p.current.Fields, FieldDecl{Type: rt, Name: name, Line: lineNo})
}

// parseType parses "<ident>[/<ident>] [<=N] [ [N] | [] | [<=N] ]".
func (p *parser) parseType(lx *Lexer, lineNo int) (RawType, bool) {
	rt := RawType{StringBound: -1, ArrayLen: -1, SeqBound: -1}

	tok := lx.Next()
	if tok.Type != TokIdent {
		p.errf(UnexpectedToken, lineNo, tok.Col, "expected a type name")
		return rt, false
	}
	name := tok.Text

	if lx.Peek().Type == TokSlash {
		lx.Next()
		sub := lx.Next()
		if sub.Type != TokIdent {
			p.errf(UnexpectedToken, lineNo, sub.Col, "expected type name after '/'")
			return rt, false
		}
		name = name + "/" + sub.Text
	}
	rt.Name = name

	if lx.Peek().Type == TokLE {
		lx.Next()
		n, ok := p.parseUint(lx, lineNo)
		if !ok {
			return rt, false
		}
		rt.StringBound = n
	}

	if lx.Peek().Type == TokLBracket {
		lx.Next()
		switch lx.Peek().Type {
		case TokRBracket:
			lx.Next()
			rt.IsSequence = true
			rt.SeqBound = -1
		case TokLE:
			lx.Next()
			n, ok := p.parseUint(lx, lineNo)
			if !ok {
				return rt, false
			}
			rt.IsSequence = true
			rt.SeqBound = n
			if lx.Next().Type != TokRBracket {
				p.errf(MalformedArray, lineNo, 1, "expected ']' to close bounded sequence")
				return rt, false
			}
		case TokInt:
			n, ok := p.parseUint(lx, lineNo)
			if !ok {
				return rt, false
			}
			rt.ArrayLen = n
			if lx.Next().Type != TokRBracket {
				p.errf(MalformedArray, lineNo, 1, "expected ']' to close fixed array")
				return rt, false
			}
		default:
			p.errf(MalformedArray, lineNo, 1, "malformed array/sequence suffix")
			return rt, false
		}
	}

	return rt, true
}

func (p *parser) parseUint(lx *Lexer, lineNo int) (int, bool) {
	tok := lx.Next()
	if tok.Type != TokInt {
		p.errf(MalformedArray, lineNo, tok.Col, "expected an integer bound")
		return 0, false
	}
	n, err := strconv.Atoi(tok.Text)
	if err != nil || n < 0 {
		p.errf(MalformedArray, lineNo, tok.Col, "invalid array/sequence bound: "+tok.Text)
		return 0, false
	}
	return n, true
}

func (p *parser) errf(kind ErrorKind, line, col int, msg string) {
	p.errs = append(p.errs, &ParseError{Kind: kind, Line: line, Col: col, Message: msg})
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// stripComment removes a trailing "# ..." comment, except within a string
// constant's value, where '#' is literal. Since the value's type is not
// known until after the type/name tokens are parsed, this is a
// conservative heuristic: a '#' is only treated as starting a comment if
// it is not preceded, earlier on the line, by a bare '=' with a type token
// of "string" before it. Practically this means: strip from the first '#'
// unless the decl is a string constant, in which case keep everything.
func stripComment(line string) string {
	// "<=" is a bound marker, not a constant's '='; the swap keeps indices.
	eq := strings.Index(strings.ReplaceAll(line, "<=", "<_"), "=")
	hash := strings.Index(line, "#")
	if eq >= 0 && (hash < 0 || eq < hash) {
		beforeEq := strings.TrimSpace(line[:eq])
		fields := strings.Fields(beforeEq)
		if len(fields) >= 1 && (fields[0] == "string" || strings.HasPrefix(fields[0], "string<=")) {
			return line
		}
	}
	if idx := strings.Index(line, "#"); idx >= 0 {
		return line[:idx]
	}
	return line
}
