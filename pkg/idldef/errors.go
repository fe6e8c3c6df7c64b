package idldef

import "fmt"

// ParseError is one IDL parse failure. Like pkg/msgdef, the parser keeps
// going after an error so every problem in a translation unit surfaces in
// one pass.
type ParseError struct {
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("idldef: line %d, col %d: %s", e.Line, e.Col, e.Message)
}

// ParseErrors is a non-empty list of ParseError.
type ParseErrors []*ParseError

func (e ParseErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	s := fmt.Sprintf("idldef: %d parse errors:", len(e))
	for _, pe := range e {
		s += "\n  " + pe.Error()
	}
	return s
}
