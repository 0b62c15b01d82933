package printer

import (
	"strings"

	"mathgen-hq/mathgen/pkg/expr/ast"
)

const (
	goMath = `import "math"`
	goRand = `import "math/rand"`
)

// NewGo creates the Go printer. Integer literals are printed as float
// literals so constant division never truncates.
func NewGo() Printer {
	fns := make(map[string]callFunc)
	for _, name := range unaryMath {
		fns[name] = call("math."+capitalize(name), goMath)
	}
	fns["cbrt"] = call("math.Cbrt", goMath)
	fns["ln"] = call("math.Log", goMath)
	fns["log"] = call("math.Log10", goMath)
	fns["max"] = fold("math.Max", goMath)
	fns["min"] = fold("math.Min", goMath)
	fns["nthRoot"] = func(args []string, imp *imports) string {
		imp.add(goMath)
		return "math.Pow(" + args[0] + ", 1.0/(" + args[1] + "))"
	}
	aliases(fns, signAliases, func(args []string, _ *imports) string {
		return goSign + "(" + args[0] + ")"
	})
	aliases(fns, randAliases, random(
		call("rand.Float64", goRand),
		func(args []string, imp *imports) string {
			imp.add(goRand)
			a, b := args[0], args[1]
			return "(float64(rand.Intn(int((" + b + ")-(" + a + "))+1)) + (" + a + "))"
		},
	))

	return &dialect{
		language: "go",
		table:    ast.DefaultTable,
		variable: identity,
		number: func(lit string) string {
			if strings.Contains(lit, ".") {
				return lit
			}
			return lit + ".0"
		},
		constants: map[string]callFunc{
			"e":  literal("math.E", goMath),
			"pi": literal("math.Pi", goMath),
		},
		functions: fns,
		calls: map[ast.Operator]binaryFunc{
			ast.OperatorPower: func(l, r string, imp *imports) string {
				imp.add(goMath)
				return "math.Pow(" + l + ", " + r + ")"
			},
			ast.OperatorModulo: func(l, r string, imp *imports) string {
				imp.add(goMath)
				return "math.Mod(" + l + ", " + r + ")"
			},
		},
		equals: " = ",
	}
}

// goSign is an inline sign function: 1, -1, or 0 for zero.
const goSign = "func(v float64) float64 { if v > 0 { return 1 } else if v < 0 { return -1 }; return 0 }"
