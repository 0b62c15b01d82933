// Package lexer turns expression text into a flat sequence of tokens.
//
// Characters are classified by fixed code-point ranges: Latin, Latin
// extensions, IPA, Greek and Cyrillic letters accumulate into Text tokens;
// ASCII digits and at most one decimal separator accumulate into Number
// tokens; control characters and space separate tokens; the operator and
// punctuation characters + - * / ^ % ( ) , = each produce a single token.
// Any other character is a lexical error.
package lexer
