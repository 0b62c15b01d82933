package ast

import (
	"fmt"
	"strings"
)

// Dump renders the tree one node per line, children indented beneath their parent.
func Dump(node Node) string {
	var sb strings.Builder
	dump(&sb, node, 0)
	return sb.String()
}

func dump(sb *strings.Builder, node Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n := node.(type) {
	case *Variable:
		fmt.Fprintf(sb, "%sVariable %s\n", indent, n.Name)
	case *Number:
		fmt.Fprintf(sb, "%sNumber %s\n", indent, n.Literal)
	case *Constant:
		fmt.Fprintf(sb, "%sConstant %s\n", indent, n.Name)
	case *Function:
		fmt.Fprintf(sb, "%sFunction %s/%d\n", indent, n.Name, len(n.Args))
		for _, arg := range n.Args {
			dump(sb, arg, depth+1)
		}
	case *BinaryOp:
		fmt.Fprintf(sb, "%sBinaryOp %s\n", indent, n.Op)
		dump(sb, n.Left, depth+1)
		dump(sb, n.Right, depth+1)
	case *Equation:
		fmt.Fprintf(sb, "%sEquation\n", indent)
		dump(sb, n.Left, depth+1)
		dump(sb, n.Right, depth+1)
	}
}
