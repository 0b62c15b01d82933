// Package ast defines the abstract syntax tree produced by the expression parser.
//
// The node set is closed: Variable, Number, Constant, Function, BinaryOp and
// Equation are the only implementations of Node. Every node records the rune
// offset of the source text it was built from so later stages (validation,
// printing) can point back at the offending input.
//
// The package also holds the fixed table of known names (constants such as e
// and pi, functions such as sqrt and max) together with their accepted
// argument counts.
package ast
