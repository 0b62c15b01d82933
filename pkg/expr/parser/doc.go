// Package parser builds an AST from the token sequence produced by the lexer.
//
// Parsing runs in three stages:
//
//   - Collapse folds every parenthesized span into a nested group, checking
//     that parentheses balance.
//   - Disambiguate decides what juxtaposed operands mean: an inserted
//     multiplication, or a function applied to the following group.
//   - Reduce splits each level on its lowest-precedence operator and builds
//     the binary-operator tree.
//
// Basic usage:
//
//	p := parser.New("a", "b")
//	node, err := p.ParseString("a(b + 1) - f(2x)")
package parser
