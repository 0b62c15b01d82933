package ast

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NameKind distinguishes constants from functions in the known-name table.
type NameKind string

const (
	NameKindConstant NameKind = "constant"
	NameKindFunction NameKind = "function"
)

// Variadic is used as the maximum argument count of functions taking any
// number of arguments at or above the minimum.
const Variadic = -1

// Name describes one entry of the known-name table.
type Name struct {
	Name        string
	Kind        NameKind
	Arities     []int // Accepted argument counts; with Variadic, Arities[0] is the minimum
	Variadic    bool
	Description string
}

// AcceptsArgs returns true if a call with n arguments is valid.
func (n Name) AcceptsArgs(count int) bool {
	if n.Kind != NameKindFunction {
		return false
	}
	if n.Variadic {
		return len(n.Arities) == 0 || count >= n.Arities[0]
	}
	for _, a := range n.Arities {
		if a == count {
			return true
		}
	}
	return false
}

// Table is an immutable lookup of known constant and function names.
type Table struct {
	entries map[string]Name
	names   []string
}

// NewTable builds a table from the given entries. Later entries replace
// earlier ones with the same name.
func NewTable(entries ...Name) *Table {
	t := &Table{entries: make(map[string]Name, len(entries))}
	for _, e := range entries {
		t.entries[e.Name] = e
	}
	t.names = make([]string, 0, len(t.entries))
	for name := range t.entries {
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)
	return t
}

// Lookup returns the entry for name.
func (t *Table) Lookup(name string) (Name, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Contains returns true if name is a known constant or function.
func (t *Table) Contains(name string) bool {
	_, ok := t.entries[name]
	return ok
}

// IsConstant returns true if name is a known constant.
func (t *Table) IsConstant(name string) bool {
	e, ok := t.entries[name]
	return ok && e.Kind == NameKindConstant
}

// IsFunction returns true if name is a known function.
func (t *Table) IsFunction(name string) bool {
	e, ok := t.entries[name]
	return ok && e.Kind == NameKindFunction
}

// Names returns all known names in sorted order.
func (t *Table) Names() []string {
	return append([]string(nil), t.names...)
}

// NamesOfKind returns the sorted names of the given kind.
func (t *Table) NamesOfKind(kind NameKind) []string {
	var result []string
	for _, name := range t.names {
		if t.entries[name].Kind == kind {
			result = append(result, name)
		}
	}
	return result
}

func constant(name, description string) Name {
	return Name{Name: name, Kind: NameKindConstant, Description: description}
}

func unary(name, description string) Name {
	return Name{Name: name, Kind: NameKindFunction, Arities: []int{1}, Description: description}
}

// DefaultTable is the fixed set of names every printer understands.
var DefaultTable = NewTable(
	constant("e", "Euler's number"),
	constant("pi", "Ratio of a circle's circumference to its diameter"),
	unary("abs", "Absolute value"),
	unary("acos", "Arc cosine"),
	unary("acosh", "Inverse hyperbolic cosine"),
	unary("asin", "Arc sine"),
	unary("asinh", "Inverse hyperbolic sine"),
	unary("atan", "Arc tangent"),
	unary("atanh", "Inverse hyperbolic tangent"),
	unary("cbrt", "Cube root"),
	unary("ceil", "Round up to an integer"),
	unary("cos", "Cosine"),
	unary("cosh", "Hyperbolic cosine"),
	unary("exp", "e raised to the argument"),
	unary("floor", "Round down to an integer"),
	unary("ln", "Natural logarithm"),
	unary("log", "Base-10 logarithm"),
	Name{Name: "max", Kind: NameKindFunction, Arities: []int{1}, Variadic: true, Description: "Largest argument"},
	Name{Name: "min", Kind: NameKindFunction, Arities: []int{1}, Variadic: true, Description: "Smallest argument"},
	Name{Name: "nthRoot", Kind: NameKindFunction, Arities: []int{2}, Description: "nthRoot(x, n) is the n-th root of x"},
	Name{Name: "rand", Kind: NameKindFunction, Arities: []int{0, 2}, Description: "rand() in [0,1), rand(a, b) integer in [a,b]"},
	Name{Name: "random", Kind: NameKindFunction, Arities: []int{0, 2}, Description: "Alias of rand"},
	unary("round", "Round to the nearest integer"),
	unary("sgn", "Sign of the argument"),
	unary("sign", "Alias of sgn"),
	unary("signum", "Alias of sgn"),
	unary("sin", "Sine"),
	unary("sinh", "Hyperbolic sine"),
	unary("sqrt", "Square root"),
	unary("tan", "Tangent"),
	unary("tanh", "Hyperbolic tangent"),
)

// ArityString describes the accepted argument counts, e.g. "1", "0 or 2", "1 or more".
func (n Name) ArityString() string {
	if n.Variadic && len(n.Arities) > 0 {
		return fmt.Sprintf("%d or more", n.Arities[0])
	}
	parts := make([]string, len(n.Arities))
	for i, a := range n.Arities {
		parts[i] = strconv.Itoa(a)
	}
	return strings.Join(parts, " or ")
}
