package errors

import (
	"fmt"
	"strings"

	"mathgen-hq/mathgen/pkg/expr/ast"
)

// ErrorType categorizes the stage that produced an error.
type ErrorType string

const (
	ErrorTypeLexical    ErrorType = "lexical"    // Character classification failure
	ErrorTypeStructural ErrorType = "structural" // Unbalanced grouping
	ErrorTypeParse      ErrorType = "parse"      // Token sequence cannot be reduced
	ErrorTypePrint      ErrorType = "print"      // AST cannot be expressed in the target language
	ErrorTypeValidation ErrorType = "validation" // Semantic check failure
	ErrorTypeIO         ErrorType = "io"         // Input could not be read
)

// Code identifies a specific error condition independently of its message.
type Code string

const (
	CodeUnknownCharacter           Code = "UnknownCharacter"
	CodeUnexpectedDecimalSeparator Code = "UnexpectedDecimalSeparator"
	CodeUnmatchedBeginGroup        Code = "UnmatchedBeginGroup"
	CodeUnmatchedEndGroup          Code = "UnmatchedEndGroup"
	CodeUnknownToken               Code = "UnknownToken"
	CodeEmptyExpression            Code = "EmptyExpression"
	CodeMisplacedEquality          Code = "MisplacedEquality"
	CodeNestingTooDeep             Code = "NestingTooDeep"
	CodeUnknownFunction            Code = "UnknownFunction"
	CodeUnknownConstant            Code = "UnknownConstant"
	CodeArityMismatch              Code = "ArityMismatch"
	CodeUndeclaredVariable         Code = "UndeclaredVariable"
	CodeUnknownLanguage            Code = "UnknownLanguage"
	CodeReadFailed                 Code = "ReadFailed"
)

// Error represents a rich error with position, context, and suggestions.
type Error struct {
	Type       ErrorType    // Category of error
	Code       Code         // Stable identifier
	Message    string       // Error message
	Position   ast.Position // Rune offset in the source expression
	Context    string       // Source line with a caret under Position
	Suggestion string       // Suggested fix (optional)
}

// Error implements the error interface.
// It returns a formatted error message with position and context.
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))

	if e.Position.IsValid() {
		sb.WriteString(fmt.Sprintf(" (%s)", e.Position))
	}

	if e.Context != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(e.Context, "\n"))
	}

	if e.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", e.Suggestion))
	}

	return sb.String()
}

// Is reports whether target is an *Error with the same code.
// It lets the sentinels below match through errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for use with errors.Is.
var (
	ErrUnknownCharacter           = &Error{Type: ErrorTypeLexical, Code: CodeUnknownCharacter, Position: ast.NoPosition}
	ErrUnexpectedDecimalSeparator = &Error{Type: ErrorTypeLexical, Code: CodeUnexpectedDecimalSeparator, Position: ast.NoPosition}
	ErrUnmatchedBeginGroup        = &Error{Type: ErrorTypeStructural, Code: CodeUnmatchedBeginGroup, Position: ast.NoPosition}
	ErrUnmatchedEndGroup          = &Error{Type: ErrorTypeStructural, Code: CodeUnmatchedEndGroup, Position: ast.NoPosition}
	ErrUnknownToken               = &Error{Type: ErrorTypeParse, Code: CodeUnknownToken, Position: ast.NoPosition}
	ErrEmptyExpression            = &Error{Type: ErrorTypeParse, Code: CodeEmptyExpression, Position: ast.NoPosition}
	ErrMisplacedEquality          = &Error{Type: ErrorTypeParse, Code: CodeMisplacedEquality, Position: ast.NoPosition}
	ErrNestingTooDeep             = &Error{Type: ErrorTypeParse, Code: CodeNestingTooDeep, Position: ast.NoPosition}
	ErrUnknownFunction            = &Error{Type: ErrorTypePrint, Code: CodeUnknownFunction, Position: ast.NoPosition}
	ErrUnknownConstant            = &Error{Type: ErrorTypePrint, Code: CodeUnknownConstant, Position: ast.NoPosition}
	ErrArityMismatch              = &Error{Type: ErrorTypePrint, Code: CodeArityMismatch, Position: ast.NoPosition}
	ErrUnknownLanguage            = &Error{Type: ErrorTypePrint, Code: CodeUnknownLanguage, Position: ast.NoPosition}
	ErrUndeclaredVariable         = &Error{Type: ErrorTypeValidation, Code: CodeUndeclaredVariable, Position: ast.NoPosition}
)

// New creates an error of the given type and code.
func New(errType ErrorType, code Code, pos ast.Position, format string, args ...interface{}) *Error {
	return &Error{
		Type:     errType,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	}
}

// NewUnknownCharacter reports a character outside every recognized class.
func NewUnknownCharacter(r rune, pos int) *Error {
	return New(ErrorTypeLexical, CodeUnknownCharacter, ast.Position(pos), "unknown character %q (U+%04X)", r, r)
}

// NewUnexpectedDecimalSeparator reports a '.' outside a number or a second '.' in one.
func NewUnexpectedDecimalSeparator(pos int) *Error {
	err := New(ErrorTypeLexical, CodeUnexpectedDecimalSeparator, ast.Position(pos), "unexpected decimal separator")
	err.Suggestion = "A decimal separator must follow at least one digit and may appear once per number"
	return err
}

// NewUnmatchedBeginGroup reports a '(' that is never closed.
func NewUnmatchedBeginGroup(pos int) *Error {
	err := New(ErrorTypeStructural, CodeUnmatchedBeginGroup, ast.Position(pos), "unmatched '('")
	err.Suggestion = "Add the missing ')'"
	return err
}

// NewUnmatchedEndGroup reports a ')' with no open '('.
func NewUnmatchedEndGroup(pos int) *Error {
	err := New(ErrorTypeStructural, CodeUnmatchedEndGroup, ast.Position(pos), "unmatched ')'")
	err.Suggestion = "Remove the ')' or add the missing '('"
	return err
}

// NewUnknownToken reports a token that cannot appear where it was found.
func NewUnknownToken(token string, pos int) *Error {
	return New(ErrorTypeParse, CodeUnknownToken, ast.Position(pos), "unexpected %s", token)
}

// NewEmptyExpression reports a missing operand or an empty input.
func NewEmptyExpression(what string, pos int) *Error {
	return New(ErrorTypeParse, CodeEmptyExpression, ast.Position(pos), "empty expression: %s", what)
}

// NewMisplacedEquality reports an '=' that is nested or repeated.
func NewMisplacedEquality(pos int) *Error {
	err := New(ErrorTypeParse, CodeMisplacedEquality, ast.Position(pos), "'=' may appear only once, outside any parentheses")
	return err
}

// NewNestingTooDeep reports parentheses nested beyond the configured limit.
func NewNestingTooDeep(limit, pos int) *Error {
	return New(ErrorTypeParse, CodeNestingTooDeep, ast.Position(pos), "nesting depth exceeds maximum of %d", limit)
}

// NewUnknownFunction reports a call to a function the target cannot express.
func NewUnknownFunction(name string, pos ast.Position, candidates []string) *Error {
	err := New(ErrorTypePrint, CodeUnknownFunction, pos, "unknown function %q", name)
	err.Suggestion = SuggestName(name, candidates)
	return err
}

// NewUnknownConstant reports a bare identifier the target cannot express.
func NewUnknownConstant(name string, pos ast.Position, candidates []string, isFunction bool) *Error {
	err := New(ErrorTypePrint, CodeUnknownConstant, pos, "unknown constant %q", name)
	if isFunction {
		err.Suggestion = SuggestCall(name)
	} else {
		err.Suggestion = SuggestName(name, candidates)
	}
	return err
}

// NewArityMismatch reports a call with an unsupported argument count.
func NewArityMismatch(name string, got int, accepted string, pos ast.Position) *Error {
	err := New(ErrorTypePrint, CodeArityMismatch, pos, "%s() called with %d argument(s)", name, got)
	err.Suggestion = fmt.Sprintf("%s accepts %s argument(s)", name, accepted)
	return err
}

// NewUnknownLanguage reports a printer name that is not registered.
func NewUnknownLanguage(name string, languages []string) *Error {
	err := New(ErrorTypePrint, CodeUnknownLanguage, ast.NoPosition, "unknown language %q", name)
	err.Suggestion = SuggestName(name, languages)
	if err.Suggestion == "" {
		err.Suggestion = fmt.Sprintf("Valid languages: %s", strings.Join(languages, ", "))
	}
	return err
}
