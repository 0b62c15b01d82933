// Package printer renders an expression AST as source code in a target
// language.
//
// Each printer maps the known functions and constants onto the target's
// standard library and reports the imports the generated code needs.
// Parentheses are emitted wherever the tree's grouping differs from the
// target's own operator precedence, so the printed code always evaluates the
// tree as parsed.
//
// Printers are looked up by name:
//
//	p, err := printer.Get("python")
//	result, err := p.Print(node)
//	fmt.Println(result)
package printer
