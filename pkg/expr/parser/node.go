package parser

import (
	"strings"

	"mathgen-hq/mathgen/pkg/expr/lexer"
)

// Node is an element of the token tree: a single token, a parenthesized
// group, or a function token carrying its raw argument group.
type Node struct {
	Token    lexer.Token // Leaf token; for groups the '(' token
	Children []Node      // Group contents or function arguments
	Group    bool
}

// Leaf wraps a token as a tree node.
func Leaf(tok lexer.Token) Node {
	return Node{Token: tok}
}

// NewGroup creates a group node opened at pos.
func NewGroup(pos int, children ...Node) Node {
	return Node{
		Token:    lexer.Token{Kind: lexer.KindBeginGroup, Pos: pos},
		Children: children,
		Group:    true,
	}
}

// NewFunction creates a function node whose arguments are the contents of a group.
func NewFunction(name string, pos int, args []Node) Node {
	return Node{
		Token:    lexer.Token{Kind: lexer.KindFunction, Text: name, Pos: pos},
		Children: args,
	}
}

// IsOperand returns true if the node stands for a value: a group, a function,
// or a Text/Number token.
func (n Node) IsOperand() bool {
	return n.Group || n.Token.IsOperand()
}

// IsFunction returns true for function nodes.
func (n Node) IsFunction() bool {
	return !n.Group && n.Token.Kind == lexer.KindFunction
}

// Is returns true if the node is a leaf token of the given kind.
func (n Node) Is(kind lexer.Kind) bool {
	return !n.Group && n.Token.Kind == kind
}

// String renders the tree compactly, e.g. "number(2) multiplication (text(x))".
func (n Node) String() string {
	switch {
	case n.Group:
		return "(" + Format(n.Children) + ")"
	case n.IsFunction():
		return n.Token.Text + "(" + Format(n.Children) + ")"
	default:
		return n.Token.String()
	}
}

// Format renders a sequence of nodes separated by spaces.
func Format(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, " ")
}
