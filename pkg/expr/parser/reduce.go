package parser

import (
	"fmt"

	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/expr/lexer"
)

// Split priorities, lowest first. The lowest tier present at a level is split
// first, so it ends up nearest the root.
var referenceTiers = map[lexer.Kind]int{
	lexer.KindComparison:     0,
	lexer.KindSubtraction:    1,
	lexer.KindAddition:       2,
	lexer.KindModulo:         3,
	lexer.KindDivision:       4,
	lexer.KindMultiplication: 5,
	lexer.KindPower:          6,
}

var conventionalTiers = map[lexer.Kind]int{
	lexer.KindComparison:     0,
	lexer.KindSubtraction:    1,
	lexer.KindAddition:       1,
	lexer.KindModulo:         3,
	lexer.KindDivision:       3,
	lexer.KindMultiplication: 3,
	lexer.KindPower:          6,
}

var operators = map[lexer.Kind]ast.Operator{
	lexer.KindAddition:       ast.OperatorAdd,
	lexer.KindSubtraction:    ast.OperatorSubtract,
	lexer.KindMultiplication: ast.OperatorMultiply,
	lexer.KindDivision:       ast.OperatorDivide,
	lexer.KindPower:          ast.OperatorPower,
	lexer.KindModulo:         ast.OperatorModulo,
}

// Reduce builds the AST for a disambiguated tree.
func (p *Parser) Reduce(nodes []Node) (ast.Node, error) {
	return p.reduce(nodes, 0, true, 0)
}

// reduce builds the AST for one level of the tree. top is true only for the
// outermost level, the one place an equality may appear. pos locates the
// level for errors about missing content.
func (p *Parser) reduce(nodes []Node, depth int, top bool, pos int) (ast.Node, error) {
	if depth > p.maxDepth {
		return nil, exprErrors.NewNestingTooDeep(p.maxDepth, pos)
	}
	if len(nodes) == 0 {
		return nil, exprErrors.NewEmptyExpression("missing operand", pos)
	}

	if err := checkLevel(nodes, top); err != nil {
		return nil, err
	}

	if len(nodes) == 1 && nodes[0].IsOperand() {
		return p.operand(nodes[0], depth)
	}

	idx := p.splitIndex(nodes)
	if idx < 0 {
		// Only reachable when Reduce is given a tree that skipped Disambiguate.
		return nil, exprErrors.NewUnknownToken(nodes[1].String(), nodes[1].Token.Pos)
	}

	op := nodes[idx]
	leftNodes, rightNodes := nodes[:idx], nodes[idx+1:]
	symbol := lexer.Symbol(op.Token.Kind)

	if len(rightNodes) == 0 {
		return nil, exprErrors.NewEmptyExpression(fmt.Sprintf("missing right operand of '%s'", symbol), op.Token.Pos)
	}
	right, err := p.reduce(rightNodes, depth, false, op.Token.Pos+1)
	if err != nil {
		return nil, err
	}

	var left ast.Node
	switch {
	case len(leftNodes) > 0:
		left, err = p.reduce(leftNodes, depth, false, pos)
		if err != nil {
			return nil, err
		}
	case op.Is(lexer.KindSubtraction):
		left = &ast.Number{Literal: "0", Position: ast.Position(op.Token.Pos)}
	case op.Is(lexer.KindAddition):
		return right, nil
	default:
		return nil, exprErrors.NewEmptyExpression(fmt.Sprintf("missing left operand of '%s'", symbol), op.Token.Pos)
	}

	if op.Is(lexer.KindComparison) {
		return &ast.Equation{Left: left, Right: right, Position: ast.Position(op.Token.Pos)}, nil
	}

	return &ast.BinaryOp{
		Op:       operators[op.Token.Kind],
		Left:     left,
		Right:    right,
		Position: ast.Position(op.Token.Pos),
	}, nil
}

// checkLevel rejects separators outside function arguments and misplaced equalities.
func checkLevel(nodes []Node, top bool) error {
	equalities := 0
	for _, n := range nodes {
		switch {
		case n.Is(lexer.KindParamSeparator):
			return exprErrors.NewUnknownToken("',' outside a function call", n.Token.Pos)
		case n.Is(lexer.KindComparison):
			equalities++
			if !top || equalities > 1 {
				return exprErrors.NewMisplacedEquality(n.Token.Pos)
			}
		}
	}
	return nil
}

// splitIndex returns the index of the operator to split on, or -1.
//
// Among the operators of the lowest tier present, the leftmost is chosen,
// except in conventional mode where left-associative tiers choose the
// rightmost. A sign directly after another operator ("a*-b", "2^-1") belongs
// to the operand on its right and is never a split candidate.
func (p *Parser) splitIndex(nodes []Node) int {
	tiers := referenceTiers
	if p.conventional {
		tiers = conventionalTiers
	}

	best, bestTier := -1, 0
	for i, n := range nodes {
		if n.Group {
			continue
		}
		tier, ok := tiers[n.Token.Kind]
		if !ok {
			continue
		}
		if i > 0 && isSign(n) && !nodes[i-1].IsOperand() {
			continue
		}

		switch {
		case best < 0 || tier < bestTier:
			best, bestTier = i, tier
		case tier == bestTier && p.conventional && !n.Is(lexer.KindPower):
			best = i
		}
	}
	return best
}

func isSign(n Node) bool {
	return n.Is(lexer.KindSubtraction) || n.Is(lexer.KindAddition)
}

// operand converts a single operand node.
func (p *Parser) operand(n Node, depth int) (ast.Node, error) {
	switch {
	case n.Group:
		return p.reduce(n.Children, depth+1, false, n.Token.Pos)
	case n.IsFunction():
		return p.function(n, depth+1)
	case n.Is(lexer.KindNumber):
		return &ast.Number{Literal: n.Token.Text, Position: ast.Position(n.Token.Pos)}, nil
	case n.Is(lexer.KindText):
		return p.text([]rune(n.Token.Text), n.Token.Pos), nil
	default:
		return nil, exprErrors.NewUnknownToken(n.String(), n.Token.Pos)
	}
}

// function reduces each comma-separated argument of a function node.
func (p *Parser) function(n Node, depth int) (ast.Node, error) {
	fn := &ast.Function{
		Name:     n.Token.Text,
		Args:     make([]ast.Node, 0),
		Position: ast.Position(n.Token.Pos),
	}
	if len(n.Children) == 0 {
		return fn, nil
	}

	start, argPos := 0, n.Token.Pos+len([]rune(n.Token.Text))
	for i := 0; i <= len(n.Children); i++ {
		if i < len(n.Children) && !n.Children[i].Is(lexer.KindParamSeparator) {
			continue
		}
		arg := n.Children[start:i]
		if len(arg) == 0 {
			return nil, exprErrors.NewEmptyExpression(fmt.Sprintf("missing argument %d of %s()", len(fn.Args)+1, fn.Name), argPos)
		}
		node, err := p.reduce(arg, depth, false, argPos)
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, node)

		if i < len(n.Children) {
			argPos = n.Children[i].Token.Pos
		}
		start = i + 1
	}
	return fn, nil
}

// text converts an identifier. Known names become constants, single letters
// become variables, and anything longer is read as its first letter times
// the remaining text.
func (p *Parser) text(runes []rune, pos int) ast.Node {
	name := string(runes)
	if p.table.Contains(name) {
		return &ast.Constant{Name: name, Position: ast.Position(pos)}
	}
	first := &ast.Variable{Name: string(runes[0]), Position: ast.Position(pos)}
	if len(runes) == 1 {
		return first
	}
	return &ast.BinaryOp{
		Op:       ast.OperatorMultiply,
		Left:     first,
		Right:    p.text(runes[1:], pos+1),
		Position: ast.Position(pos + 1),
	}
}
