package ast

import (
	"fmt"
	"strings"
)

// Node is implemented by every AST node. The set of implementations is closed.
type Node interface {
	// Pos returns the source offset the node was built from.
	Pos() Position

	// String returns a fully parenthesized rendering of the node.
	String() string

	node()
}

// Operator identifies the arithmetic operation of a BinaryOp.
type Operator string

const (
	OperatorAdd      Operator = "add"
	OperatorSubtract Operator = "subtract"
	OperatorMultiply Operator = "multiply"
	OperatorDivide   Operator = "divide"
	OperatorPower    Operator = "power"
	OperatorModulo   Operator = "modulo"
)

// Symbol returns the conventional infix symbol for the operator.
func (o Operator) Symbol() string {
	switch o {
	case OperatorAdd:
		return "+"
	case OperatorSubtract:
		return "-"
	case OperatorMultiply:
		return "*"
	case OperatorDivide:
		return "/"
	case OperatorPower:
		return "^"
	case OperatorModulo:
		return "%"
	default:
		return string(o)
	}
}

// IsValid returns true if the operator is one of the known operators.
func (o Operator) IsValid() bool {
	switch o {
	case OperatorAdd, OperatorSubtract, OperatorMultiply, OperatorDivide, OperatorPower, OperatorModulo:
		return true
	}
	return false
}

// Variable is a single-character variable reference.
type Variable struct {
	Name     string
	Position Position
}

// Number is a numeric literal. Literal keeps the digits exactly as written.
type Number struct {
	Literal  string
	Position Position
}

// Constant is a bare identifier found in the known-name table.
type Constant struct {
	Name     string
	Position Position
}

// Function is a function application. Args may be empty.
type Function struct {
	Name     string
	Args     []Node
	Position Position
}

// BinaryOp applies Op to Left and Right.
type BinaryOp struct {
	Op       Operator
	Left     Node
	Right    Node
	Position Position
}

// Equation is a top-level equality between two expressions.
type Equation struct {
	Left     Node
	Right    Node
	Position Position
}

func (n *Variable) Pos() Position { return n.Position }
func (n *Number) Pos() Position   { return n.Position }
func (n *Constant) Pos() Position { return n.Position }
func (n *Function) Pos() Position { return n.Position }
func (n *BinaryOp) Pos() Position { return n.Position }
func (n *Equation) Pos() Position { return n.Position }

func (*Variable) node() {}
func (*Number) node()   {}
func (*Constant) node() {}
func (*Function) node() {}
func (*BinaryOp) node() {}
func (*Equation) node() {}

func (n *Variable) String() string { return n.Name }
func (n *Number) String() string   { return n.Literal }
func (n *Constant) String() string { return n.Name }

func (n *Function) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}

func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op.Symbol(), n.Right)
}

func (n *Equation) String() string {
	return fmt.Sprintf("%s = %s", n.Left, n.Right)
}

// Kind returns the lower-case variant name of a node ("variable", "binary_op", ...).
func Kind(n Node) string {
	switch n.(type) {
	case *Variable:
		return "variable"
	case *Number:
		return "number"
	case *Constant:
		return "constant"
	case *Function:
		return "function"
	case *BinaryOp:
		return "binary_op"
	case *Equation:
		return "equation"
	default:
		return "unknown"
	}
}
