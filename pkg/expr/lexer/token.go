package lexer

import "fmt"

// Kind identifies the category of a token.
type Kind string

const (
	KindText           Kind = "text"
	KindNumber         Kind = "number"
	KindAddition       Kind = "addition"
	KindSubtraction    Kind = "subtraction"
	KindMultiplication Kind = "multiplication"
	KindDivision       Kind = "division"
	KindPower          Kind = "power"
	KindModulo         Kind = "modulo"
	KindComparison     Kind = "comparison"
	KindBeginGroup     Kind = "begin_group"
	KindEndGroup       Kind = "end_group"
	KindParamSeparator Kind = "param_separator"

	// KindFunction is never produced by the lexer. The parser rewrites a
	// Text token followed by a group into a Function token.
	KindFunction Kind = "function"
)

// ComparisonEqual is the payload of the Comparison token produced for '='.
const ComparisonEqual = "equal"

// Token is a classified unit of input.
type Token struct {
	Kind Kind
	Text string // Payload for Text, Number, Function and Comparison tokens
	Pos  int    // Rune offset of the first character
}

// IsOperand returns true for tokens that stand for a value on their own.
func (t Token) IsOperand() bool {
	return t.Kind == KindText || t.Kind == KindNumber || t.Kind == KindFunction
}

// IsOperator returns true for binary operator and comparison tokens.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case KindAddition, KindSubtraction, KindMultiplication, KindDivision,
		KindPower, KindModulo, KindComparison:
		return true
	}
	return false
}

// String returns a compact representation used in diagnostics and tests.
func (t Token) String() string {
	switch t.Kind {
	case KindText, KindNumber, KindFunction:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	default:
		return string(t.Kind)
	}
}

// symbols maps single-character tokens to their kind.
var symbols = map[rune]Kind{
	'+': KindAddition,
	'-': KindSubtraction,
	'*': KindMultiplication,
	'/': KindDivision,
	'^': KindPower,
	'%': KindModulo,
	'=': KindComparison,
	'(': KindBeginGroup,
	')': KindEndGroup,
	',': KindParamSeparator,
}

// Symbol returns the source character for single-character token kinds.
func Symbol(kind Kind) string {
	for r, k := range symbols {
		if k == kind {
			return string(r)
		}
	}
	return string(kind)
}
