// Package errors provides the rich error type shared by every stage of the
// expression pipeline.
//
// An Error carries its category (lexical, structural, parse, print,
// validation), a stable Code, the source position, an optional caret context
// line and an optional suggestion. Sentinel values such as
// ErrUnknownCharacter match any error with the same code through errors.Is:
//
//	if errors.Is(err, exprErrors.ErrUnmatchedEndGroup) {
//	    ...
//	}
package errors
