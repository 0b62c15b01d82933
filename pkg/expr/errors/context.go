package errors

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ExtractContext renders the source expression with a caret beneath the rune
// at pos. Multi-line sources show only the line containing pos.
func ExtractContext(source string, pos int) string {
	if pos < 0 || source == "" {
		return ""
	}

	runes := []rune(source)
	if pos > len(runes) {
		return ""
	}

	lineStart := 0
	for i := pos - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			lineStart = i + 1
			break
		}
	}
	lineEnd := len(runes)
	for i := pos; i < len(runes); i++ {
		if runes[i] == '\n' {
			lineEnd = i
			break
		}
	}

	line := string(runes[lineStart:lineEnd])
	column := pos - lineStart

	var sb strings.Builder
	sb.WriteString("  | ")
	sb.WriteString(line)
	sb.WriteString("\n  | ")
	sb.WriteString(strings.Repeat(" ", column))
	sb.WriteString("^\n")
	return sb.String()
}

// WithSource attaches caret context to every *Error reachable from err.
// Errors without a position are left untouched. It returns err.
func WithSource(err error, source string) error {
	if err == nil || !utf8.ValidString(source) {
		return err
	}

	var list *ErrorList
	if errors.As(err, &list) {
		for _, e := range list.Errors {
			addContext(e, source)
		}
		return err
	}

	var e *Error
	if errors.As(err, &e) {
		addContext(e, source)
	}
	return err
}

func addContext(e *Error, source string) {
	if e.Context == "" && e.Position.IsValid() {
		e.Context = ExtractContext(source, int(e.Position))
	}
}
