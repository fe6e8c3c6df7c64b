package typedesc

import "fmt"

// Literal is the sum type of constant/default values that can appear in a
// MSG constant declaration or an IDL @default annotation. Exactly one of
// these concrete types is ever stored as a Literal.
type Literal interface {
	literal()
	fmt.Stringer
}

// BoolLiteral is a literal boolean value.
type BoolLiteral bool

func (BoolLiteral) literal() {}
func (b BoolLiteral) String() string {
	if b {
		return "true"
	}
	return "false"
}

// IntLiteral is a literal signed integer value (covers int8..int64).
type IntLiteral int64

func (IntLiteral) literal() {}
func (i IntLiteral) String() string { return fmt.Sprintf("%d", int64(i)) }

// UintLiteral is a literal unsigned integer value (covers uint8..uint64).
type UintLiteral uint64

func (UintLiteral) literal() {}
func (u UintLiteral) String() string { return fmt.Sprintf("%d", uint64(u)) }

// FloatLiteral is a literal floating point value (covers float32/float64).
type FloatLiteral float64

func (FloatLiteral) literal() {}
func (f FloatLiteral) String() string { return fmt.Sprintf("%g", float64(f)) }

// StringLiteral is a literal string value.
type StringLiteral string

func (StringLiteral) literal() {}
func (s StringLiteral) String() string { return string(s) }

// ArrayLiteral is a literal array/sequence of other literals, used for
// IDL @default annotations on array- or sequence-typed fields.
type ArrayLiteral []Literal

func (ArrayLiteral) literal() {}
func (a ArrayLiteral) String() string { return fmt.Sprintf("%v", []Literal(a)) }
