package ast

import "fmt"

// Position is the 0-based rune offset of a node or token in the source expression.
type Position int

// NoPosition marks a node that was not built from source text.
const NoPosition Position = -1

// IsValid returns true if the position points into the source text.
func (p Position) IsValid() bool {
	return p >= 0
}

// String returns a human-readable representation of the position.
// Columns are reported 1-based, the way editors count them.
func (p Position) String() string {
	if !p.IsValid() {
		return "<unknown>"
	}
	return fmt.Sprintf("column %d", int(p)+1)
}
