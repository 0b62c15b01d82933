package parser

import (
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/expr/lexer"
)

// Collapse folds parenthesized spans of tokens into nested groups.
//
// Each ')' is matched with the nearest unmatched '(' before it; the tokens in
// between become the children of a single group node, and scanning resumes
// after the new group. Since inner spans close first, group contents are
// already collapsed when their group is built.
func Collapse(tokens []lexer.Token) ([]Node, error) {
	nodes := make([]Node, len(tokens))
	for i, tok := range tokens {
		nodes[i] = Leaf(tok)
	}

	for i := 0; i < len(nodes); {
		if !nodes[i].Is(lexer.KindEndGroup) {
			i++
			continue
		}

		open := i - 1
		for open >= 0 && !nodes[open].Is(lexer.KindBeginGroup) {
			open--
		}
		if open < 0 {
			return nil, exprErrors.NewUnmatchedEndGroup(nodes[i].Token.Pos)
		}

		children := append([]Node(nil), nodes[open+1:i]...)
		group := NewGroup(nodes[open].Token.Pos, children...)

		rest := append([]Node{group}, nodes[i+1:]...)
		nodes = append(nodes[:open], rest...)
		i = open + 1
	}

	for _, n := range nodes {
		if n.Is(lexer.KindBeginGroup) {
			return nil, exprErrors.NewUnmatchedBeginGroup(n.Token.Pos)
		}
	}

	return nodes, nil
}
