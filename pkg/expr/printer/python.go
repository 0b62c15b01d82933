package printer

import (
	"mathgen-hq/mathgen/pkg/expr/ast"
)

const (
	pythonMath   = "import math"
	pythonRandom = "import random"
)

// NewPython creates the Python 3 printer. Functions map onto the math and
// random modules; their imports are reported in the result.
func NewPython() Printer {
	fns := make(map[string]callFunc)
	for _, name := range unaryMath {
		fns[name] = call("math."+name, pythonMath)
	}
	fns["abs"] = call("abs", "")
	fns["round"] = call("round", "")
	fns["ln"] = call("math.log", pythonMath)
	fns["log"] = call("math.log10", pythonMath)
	fns["max"] = spread("max", "")
	fns["min"] = spread("min", "")
	fns["cbrt"] = func(args []string, imp *imports) string {
		imp.add(pythonMath)
		return "math.copysign(abs(" + args[0] + ")**(1/3), " + args[0] + ")"
	}
	fns["nthRoot"] = func(args []string, _ *imports) string {
		return "((" + args[0] + ")**(1/(" + args[1] + ")))"
	}
	aliases(fns, signAliases, func(args []string, _ *imports) string {
		x := "(" + args[0] + ")"
		return "((" + x + " > 0) - (" + x + " < 0))"
	})
	aliases(fns, randAliases, random(
		call("random.random", pythonRandom),
		call("random.randint", pythonRandom),
	))

	return &dialect{
		language: "python",
		table:    ast.DefaultTable,
		variable: identity,
		number:   identity,
		constants: map[string]callFunc{
			"e":  literal("math.e", pythonMath),
			"pi": literal("math.pi", pythonMath),
		},
		functions: fns,
		symbols:   map[ast.Operator]string{ast.OperatorPower: "**"},
		equals:    " = ",
	}
}
