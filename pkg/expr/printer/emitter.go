package printer

import (
	"fmt"
	"sort"
	"strings"

	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
)

// Output precedence levels shared by every target.
const (
	precEquation = iota
	precAdditive
	precMultiplicative
	precPower
	precAtom
)

// fragment is a piece of generated code together with the precedence of its
// outermost operator.
type fragment struct {
	code string
	prec int
	op   ast.Operator
}

func atom(code string) fragment {
	return fragment{code: code, prec: precAtom}
}

// callFunc renders a function call from already-printed arguments.
type callFunc func(args []string, imp *imports) string

// binaryFunc renders an operator that the target spells as a call.
type binaryFunc func(left, right string, imp *imports) string

// dialect describes how one target language spells the parts of an expression.
type dialect struct {
	language  string
	table     *ast.Table
	variable  func(name string) string
	number    func(literal string) string
	constants map[string]callFunc
	functions map[string]callFunc
	// calls holds operators the target spells as function calls, such as
	// Math.pow in JavaScript.
	calls map[ast.Operator]binaryFunc
	// symbols overrides the infix symbol of an operator.
	symbols map[ast.Operator]string
	// equals joins the two sides of an equation.
	equals string
}

func (d *dialect) Language() string {
	return d.language
}

// Print renders node in the dialect.
func (d *dialect) Print(node ast.Node) (*Result, error) {
	imp := newImports()
	frag, err := d.emit(node, imp)
	if err != nil {
		return nil, err
	}
	return &Result{
		Language: d.language,
		Code:     frag.code,
		Imports:  imp.lines,
	}, nil
}

func (d *dialect) emit(node ast.Node, imp *imports) (fragment, error) {
	switch n := node.(type) {
	case *ast.Variable:
		return atom(d.variable(n.Name)), nil

	case *ast.Number:
		return atom(d.number(n.Literal)), nil

	case *ast.Constant:
		render, ok := d.constants[n.Name]
		if !ok {
			return fragment{}, exprErrors.NewUnknownConstant(n.Name, n.Pos(), d.names(d.constants), d.table.IsFunction(n.Name))
		}
		return atom(render(nil, imp)), nil

	case *ast.Function:
		return d.emitFunction(n, imp)

	case *ast.BinaryOp:
		return d.emitBinary(n, imp)

	case *ast.Equation:
		left, err := d.emit(n.Left, imp)
		if err != nil {
			return fragment{}, err
		}
		right, err := d.emit(n.Right, imp)
		if err != nil {
			return fragment{}, err
		}
		return fragment{code: left.code + d.equals + right.code, prec: precEquation}, nil

	default:
		return fragment{}, fmt.Errorf("unsupported node type %T", node)
	}
}

func (d *dialect) emitFunction(n *ast.Function, imp *imports) (fragment, error) {
	render, ok := d.functions[n.Name]
	if !ok {
		return fragment{}, exprErrors.NewUnknownFunction(n.Name, n.Pos(), d.names(d.functions))
	}
	if entry, known := d.table.Lookup(n.Name); known && !entry.AcceptsArgs(len(n.Args)) {
		return fragment{}, exprErrors.NewArityMismatch(n.Name, len(n.Args), entry.ArityString(), n.Pos())
	}

	frags := make([]fragment, len(n.Args))
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		frag, err := d.emit(arg, imp)
		if err != nil {
			return fragment{}, err
		}
		frags[i] = frag
		args[i] = frag.code
	}

	code := render(args, imp)
	if len(frags) == 1 && code == frags[0].code {
		// max(a+b) prints as its argument and keeps its precedence.
		return frags[0], nil
	}
	return atom(code), nil
}

func (d *dialect) emitBinary(n *ast.BinaryOp, imp *imports) (fragment, error) {
	left, err := d.emit(n.Left, imp)
	if err != nil {
		return fragment{}, err
	}
	right, err := d.emit(n.Right, imp)
	if err != nil {
		return fragment{}, err
	}

	if render, ok := d.calls[n.Op]; ok {
		return atom(render(left.code, right.code, imp)), nil
	}

	prec := precedence(n.Op)
	symbol := n.Op.Symbol()
	if s, ok := d.symbols[n.Op]; ok {
		symbol = s
	}

	leftCode := left.code
	if left.prec < prec || (left.prec == prec && n.Op == ast.OperatorPower) {
		leftCode = "(" + leftCode + ")"
	}
	rightCode := right.code
	if right.prec < prec || (right.prec == prec && !associatesRight(n.Op, right.op)) {
		rightCode = "(" + rightCode + ")"
	}

	return fragment{code: leftCode + symbol + rightCode, prec: prec, op: n.Op}, nil
}

func precedence(op ast.Operator) int {
	switch op {
	case ast.OperatorAdd, ast.OperatorSubtract:
		return precAdditive
	case ast.OperatorMultiply, ast.OperatorDivide, ast.OperatorModulo:
		return precMultiplicative
	default:
		return precPower
	}
}

// associatesRight reports whether "a op (b inner c)" may drop its parentheses.
func associatesRight(op, inner ast.Operator) bool {
	switch op {
	case ast.OperatorPower:
		return true
	case ast.OperatorAdd, ast.OperatorMultiply:
		return inner == op
	default:
		return false
	}
}

func (d *dialect) names(m map[string]callFunc) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// call returns a callFunc spelling name(args...).
func call(name string, importLine string) callFunc {
	return func(args []string, imp *imports) string {
		imp.add(importLine)
		return name + "(" + strings.Join(args, ", ") + ")"
	}
}

// literal returns a callFunc that always renders code.
func literal(code string, importLine string) callFunc {
	return func(_ []string, imp *imports) string {
		imp.add(importLine)
		return code
	}
}

func identity(s string) string { return s }
