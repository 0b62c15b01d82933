package printer

import "strings"

// unaryMath lists the one-argument functions every target spells the same
// way apart from a namespace and capitalization.
var unaryMath = []string{
	"abs", "acos", "acosh", "asin", "asinh", "atan", "atanh",
	"ceil", "cos", "cosh", "exp", "floor", "round",
	"sin", "sinh", "sqrt", "tan", "tanh",
}

// signAliases all print as the sign function.
var signAliases = []string{"sgn", "sign", "signum"}

// randAliases all print as the random function.
var randAliases = []string{"rand", "random"}

// fold renders a variadic call as nested two-argument calls:
// max(a, b, c) -> name(a, name(b, c)). A single argument is returned as is
// and keeps its own precedence in the emitter.
func fold(name, importLine string) callFunc {
	return func(args []string, imp *imports) string {
		if len(args) == 1 {
			return args[0]
		}
		imp.add(importLine)
		code := args[len(args)-1]
		for i := len(args) - 2; i >= 0; i-- {
			code = name + "(" + args[i] + ", " + code + ")"
		}
		return code
	}
}

// spread renders a variadic call with all arguments in one call.
// A single argument is returned as is, like fold.
func spread(name, importLine string) callFunc {
	return func(args []string, imp *imports) string {
		if len(args) == 1 {
			return args[0]
		}
		imp.add(importLine)
		return name + "(" + strings.Join(args, ", ") + ")"
	}
}

// random picks between the no-argument and the two-argument rendering.
func random(none, between callFunc) callFunc {
	return func(args []string, imp *imports) string {
		if len(args) == 0 {
			return none(args, imp)
		}
		return between(args, imp)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func aliases(m map[string]callFunc, names []string, render callFunc) {
	for _, name := range names {
		m[name] = render
	}
}
