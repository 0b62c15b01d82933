package parser

import "mathgen-hq/mathgen/pkg/expr/lexer"

// Disambiguate resolves juxtaposed operands in a collapsed tree.
//
// Groups are resolved innermost first. Then, at each level, adjacent pairs
// are examined left to right:
//
//   - a Text token followed by a group becomes a function applied to that
//     group, unless the text is a known variable or a constant (e, pi);
//   - any other pair of operands gets a multiplication inserted between them.
//
// The input is not modified.
func (p *Parser) Disambiguate(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes)*2)
	for _, n := range nodes {
		if n.Group {
			n = NewGroup(n.Token.Pos, p.Disambiguate(n.Children)...)
		}
		out = append(out, n)
	}

	for i := 0; i+1 < len(out); i++ {
		left, right := out[i], out[i+1]

		if left.Is(lexer.KindText) && right.Group && !p.multipliesGroup(left.Token.Text) {
			fn := NewFunction(left.Token.Text, left.Token.Pos, right.Children)
			out = append(out[:i], append([]Node{fn}, out[i+2:]...)...)
			// Re-examine the new function against its right neighbor.
			i--
			continue
		}

		if left.IsOperand() && right.IsOperand() {
			mul := Leaf(lexer.Token{Kind: lexer.KindMultiplication, Pos: right.Token.Pos})
			out = append(out[:i+1], append([]Node{mul}, out[i+1:]...)...)
			i++
		}
	}

	return out
}

// multipliesGroup returns true if "name(...)" means name times the group.
func (p *Parser) multipliesGroup(name string) bool {
	return p.variables[name] || p.table.IsConstant(name)
}
