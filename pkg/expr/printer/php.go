package printer

import (
	"mathgen-hq/mathgen/pkg/expr/ast"
)

// NewPHP creates the PHP printer. Variables are prefixed with '$' and the
// modulo operator is printed as fmod so it works on floats.
func NewPHP() Printer {
	fns := make(map[string]callFunc)
	for _, name := range unaryMath {
		fns[name] = call(name, "")
	}
	fns["ln"] = call("log", "")
	fns["log"] = call("log10", "")
	fns["max"] = spread("max", "")
	fns["min"] = spread("min", "")
	fns["cbrt"] = func(args []string, _ *imports) string {
		return "pow(" + args[0] + ", 1/3)"
	}
	fns["nthRoot"] = func(args []string, _ *imports) string {
		return "pow(" + args[0] + ", 1/(" + args[1] + "))"
	}
	aliases(fns, signAliases, func(args []string, _ *imports) string {
		x := "(" + args[0] + ")"
		return "(" + x + " > 0 ? 1 : (" + x + " < 0 ? -1 : 0))"
	})
	aliases(fns, randAliases, random(
		literal("(mt_rand() / mt_getrandmax())", ""),
		call("mt_rand", ""),
	))

	return &dialect{
		language: "php",
		table:    ast.DefaultTable,
		variable: func(name string) string { return "$" + name },
		number:   identity,
		constants: map[string]callFunc{
			"e":  literal("M_E", ""),
			"pi": literal("M_PI", ""),
		},
		functions: fns,
		calls: map[ast.Operator]binaryFunc{
			ast.OperatorPower: func(l, r string, _ *imports) string {
				return "pow(" + l + ", " + r + ")"
			},
			ast.OperatorModulo: func(l, r string, _ *imports) string {
				return "fmod(" + l + ", " + r + ")"
			},
		},
		equals: " = ",
	}
}
