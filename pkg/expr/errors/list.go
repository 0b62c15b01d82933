package errors

import (
	"fmt"
	"strings"
)

// ErrorList accumulates every problem found in one pass, in source order.
// The validator uses it so a single run reports all unknown names at once.
type ErrorList struct {
	Errors []*Error
}

// NewErrorList returns an empty list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

func (el *ErrorList) Add(err *Error)  { el.Errors = append(el.Errors, err) }
func (el *ErrorList) HasErrors() bool { return len(el.Errors) > 0 }
func (el *ErrorList) Count() int      { return len(el.Errors) }

// Error renders a single error as itself and several as a numbered list.
func (el *ErrorList) Error() string {
	switch len(el.Errors) {
	case 0:
		return ""
	case 1:
		return el.Errors[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d errors:", len(el.Errors))
	for i, err := range el.Errors {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, err)
	}
	return sb.String()
}

// Unwrap lets errors.Is and errors.As see every member.
func (el *ErrorList) Unwrap() []error {
	errs := make([]error, 0, len(el.Errors))
	for _, err := range el.Errors {
		errs = append(errs, err)
	}
	return errs
}

// ToError returns nil for an empty list so callers can return it directly.
func (el *ErrorList) ToError() error {
	if len(el.Errors) == 0 {
		return nil
	}
	return el
}

// ByType returns the members of the given type.
func (el *ErrorList) ByType(errType ErrorType) []*Error {
	var matched []*Error
	for _, err := range el.Errors {
		if err.Type == errType {
			matched = append(matched, err)
		}
	}
	return matched
}

// HasCode reports whether any member carries code.
func (el *ErrorList) HasCode(code Code) bool {
	for _, err := range el.Errors {
		if err.Code == code {
			return true
		}
	}
	return false
}
