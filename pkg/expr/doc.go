// Package expr converts math expressions written in everyday notation into
// source code for several programming languages.
//
// # Architecture
//
// The package is organized into subpackages:
//
//   - lexer: character classification and tokenization
//   - parser: grouping, implicit-operator disambiguation and precedence reduction
//   - ast: the expression tree and the table of known names
//   - validator: optional semantic checks with suggestions
//   - printer: python, javascript, php and go code generation
//   - errors: rich error types with positions and suggestions
//
// # Basic Usage
//
//	result, err := expr.Generate("2x^2 + sqrt(y)", "python", expr.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result) // import math\n\n2*x**2+math.sqrt(y)
//
// # Implicit Operators
//
// Juxtaposed operands multiply: "2x", "xy", "(a+1)(b-1)". An identifier
// directly followed by parentheses is a function call, except for declared
// variables and the constants e and pi, which multiply instead:
//
//	f(x)            call of f
//	a(x)            a*x when "a" is a declared variable
//	pi(r^2)         pi*r^2
//
// Identifiers of several letters that are not known names are read as the
// product of their letters: "abc" is a*(b*c).
package expr
