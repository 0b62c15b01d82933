package ast

// Tree is the serializable form of a Node, used by the JSON and YAML outputs
// of the CLI and the HTTP API.
type Tree struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Name     string  `json:"name,omitempty" yaml:"name,omitempty"`
	Value    string  `json:"value,omitempty" yaml:"value,omitempty"`
	Op       string  `json:"op,omitempty" yaml:"op,omitempty"`
	Left     *Tree   `json:"left,omitempty" yaml:"left,omitempty"`
	Right    *Tree   `json:"right,omitempty" yaml:"right,omitempty"`
	Args     []*Tree `json:"args,omitempty" yaml:"args,omitempty"`
	Position int     `json:"position" yaml:"position"`
}

// ToTree converts a node into its serializable form.
func ToTree(node Node) *Tree {
	if node == nil {
		return nil
	}
	t := &Tree{Kind: Kind(node), Position: int(node.Pos())}
	switch n := node.(type) {
	case *Variable:
		t.Name = n.Name
	case *Number:
		t.Value = n.Literal
	case *Constant:
		t.Name = n.Name
	case *Function:
		t.Name = n.Name
		t.Args = make([]*Tree, 0, len(n.Args))
		for _, arg := range n.Args {
			t.Args = append(t.Args, ToTree(arg))
		}
	case *BinaryOp:
		t.Op = string(n.Op)
		t.Left = ToTree(n.Left)
		t.Right = ToTree(n.Right)
	case *Equation:
		t.Left = ToTree(n.Left)
		t.Right = ToTree(n.Right)
	}
	return t
}
