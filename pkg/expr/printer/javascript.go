package printer

import (
	"mathgen-hq/mathgen/pkg/expr/ast"
)

// NewJavaScript creates the JavaScript printer. Everything maps onto the
// global Math object, so no imports are ever reported.
func NewJavaScript() Printer {
	fns := make(map[string]callFunc)
	for _, name := range unaryMath {
		fns[name] = call("Math."+name, "")
	}
	fns["cbrt"] = call("Math.cbrt", "")
	fns["ln"] = call("Math.log", "")
	fns["log"] = call("Math.log10", "")
	fns["max"] = spread("Math.max", "")
	fns["min"] = spread("Math.min", "")
	fns["nthRoot"] = func(args []string, _ *imports) string {
		return "Math.pow(" + args[0] + ", 1/(" + args[1] + "))"
	}
	aliases(fns, signAliases, call("Math.sign", ""))
	aliases(fns, randAliases, random(
		call("Math.random", ""),
		func(args []string, _ *imports) string {
			a, b := args[0], args[1]
			return "(Math.floor(Math.random()*((" + b + ")-(" + a + ")+1))+(" + a + "))"
		},
	))

	return &dialect{
		language: "javascript",
		table:    ast.DefaultTable,
		variable: identity,
		number:   identity,
		constants: map[string]callFunc{
			"e":  literal("Math.E", ""),
			"pi": literal("Math.PI", ""),
		},
		functions: fns,
		calls: map[ast.Operator]binaryFunc{
			ast.OperatorPower: func(l, r string, _ *imports) string {
				return "Math.pow(" + l + ", " + r + ")"
			},
		},
		equals: " = ",
	}
}
