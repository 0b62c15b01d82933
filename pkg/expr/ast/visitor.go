package ast

// Visitor provides an interface for traversing the AST.
// Implement this interface to perform operations on AST nodes
// (validation, analysis, collection of names, etc.).
type Visitor interface {
	VisitVariable(*Variable) error
	VisitNumber(*Number) error
	VisitConstant(*Constant) error
	VisitFunction(*Function) error
	VisitBinaryOp(*BinaryOp) error
	VisitEquation(*Equation) error
}

// Walk traverses the AST in pre-order, calling the visitor for each node.
// It returns the first error encountered, or nil if traversal completes.
func Walk(node Node, visitor Visitor) error {
	switch n := node.(type) {
	case *Variable:
		return visitor.VisitVariable(n)
	case *Number:
		return visitor.VisitNumber(n)
	case *Constant:
		return visitor.VisitConstant(n)
	case *Function:
		if err := visitor.VisitFunction(n); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := Walk(arg, visitor); err != nil {
				return err
			}
		}
	case *BinaryOp:
		if err := visitor.VisitBinaryOp(n); err != nil {
			return err
		}
		if err := Walk(n.Left, visitor); err != nil {
			return err
		}
		return Walk(n.Right, visitor)
	case *Equation:
		if err := visitor.VisitEquation(n); err != nil {
			return err
		}
		if err := Walk(n.Left, visitor); err != nil {
			return err
		}
		return Walk(n.Right, visitor)
	}
	return nil
}

// Variables returns the distinct variable names used in the tree, in order of
// first appearance.
func Variables(node Node) []string {
	c := &variableCollector{seen: make(map[string]bool)}
	_ = Walk(node, c)
	return c.names
}

// Count returns the number of nodes in the tree.
func Count(node Node) int {
	if node == nil {
		return 0
	}
	c := &nodeCounter{}
	_ = Walk(node, c)
	return c.n
}

type nodeCounter struct{ n int }

func (c *nodeCounter) VisitVariable(*Variable) error { c.n++; return nil }
func (c *nodeCounter) VisitNumber(*Number) error     { c.n++; return nil }
func (c *nodeCounter) VisitConstant(*Constant) error { c.n++; return nil }
func (c *nodeCounter) VisitFunction(*Function) error { c.n++; return nil }
func (c *nodeCounter) VisitBinaryOp(*BinaryOp) error { c.n++; return nil }
func (c *nodeCounter) VisitEquation(*Equation) error { c.n++; return nil }

type variableCollector struct {
	BaseVisitor
	seen  map[string]bool
	names []string
}

func (c *variableCollector) VisitVariable(v *Variable) error {
	if !c.seen[v.Name] {
		c.seen[v.Name] = true
		c.names = append(c.names, v.Name)
	}
	return nil
}

// BaseVisitor implements Visitor with no-op methods. Embed it to override
// only the node kinds of interest.
type BaseVisitor struct{}

func (BaseVisitor) VisitVariable(*Variable) error { return nil }
func (BaseVisitor) VisitNumber(*Number) error     { return nil }
func (BaseVisitor) VisitConstant(*Constant) error { return nil }
func (BaseVisitor) VisitFunction(*Function) error { return nil }
func (BaseVisitor) VisitBinaryOp(*BinaryOp) error { return nil }
func (BaseVisitor) VisitEquation(*Equation) error { return nil }
