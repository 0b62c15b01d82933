package lexer

import (
	"strings"
	"unicode"

	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
)

// Lexer converts expression text into tokens.
// A Lexer holds only immutable configuration and is safe for concurrent use.
type Lexer struct {
	letters *unicode.RangeTable
	digits  *unicode.RangeTable
	spaces  *unicode.RangeTable
}

// New creates a lexer using the default character classes.
func New() *Lexer {
	return &Lexer{
		letters: Letters,
		digits:  Digits,
		spaces:  Spaces,
	}
}

// WithLetters replaces the set of identifier characters.
func (l *Lexer) WithLetters(letters *unicode.RangeTable) *Lexer {
	l.letters = letters
	return l
}

// Lex tokenizes text with the default lexer.
func Lex(text string) ([]Token, error) {
	return New().Lex(text)
}

// pending accumulates the Text or Number token currently being scanned.
type pending struct {
	kind       Kind
	text       strings.Builder
	pos        int
	hasDecimal bool
}

// Lex scans text left to right and returns the token sequence.
// Positions in tokens and errors are rune offsets.
func (l *Lexer) Lex(text string) ([]Token, error) {
	tokens := make([]Token, 0, len(text))
	var cur *pending

	flush := func() {
		if cur != nil {
			tokens = append(tokens, Token{Kind: cur.kind, Text: cur.text.String(), Pos: cur.pos})
			cur = nil
		}
	}

	pos := 0
	for _, r := range text {
		switch {
		case unicode.Is(l.letters, r):
			if cur != nil && cur.kind != KindText {
				flush()
			}
			if cur == nil {
				cur = &pending{kind: KindText, pos: pos}
			}
			cur.text.WriteRune(r)

		case unicode.Is(l.digits, r):
			if cur != nil && cur.kind != KindNumber {
				flush()
			}
			if cur == nil {
				cur = &pending{kind: KindNumber, pos: pos}
			}
			cur.text.WriteRune(r)

		case r == DecimalSeparator:
			if cur == nil || cur.kind != KindNumber || cur.hasDecimal {
				return nil, exprErrors.NewUnexpectedDecimalSeparator(pos)
			}
			cur.hasDecimal = true
			cur.text.WriteRune(r)

		case unicode.Is(l.spaces, r):
			flush()

		default:
			kind, ok := symbols[r]
			if !ok {
				return nil, exprErrors.NewUnknownCharacter(r, pos)
			}
			flush()
			tok := Token{Kind: kind, Pos: pos}
			if kind == KindComparison {
				tok.Text = ComparisonEqual
			}
			tokens = append(tokens, tok)
		}
		pos++
	}
	flush()

	return tokens, nil
}
