package printer

import (
	"strings"

	"mathgen-hq/mathgen/pkg/expr/ast"
)

// Printer renders an AST in one target language.
// Printers hold no per-call state and are safe for concurrent use.
type Printer interface {
	// Language returns the canonical language name.
	Language() string

	// Print renders node. Unknown functions or constants, and calls with an
	// unsupported argument count, are reported as errors.
	Print(node ast.Node) (*Result, error)
}

// Result is the output of a single Print call.
type Result struct {
	Language string   `json:"language" yaml:"language"`
	Code     string   `json:"code" yaml:"code"`
	Imports  []string `json:"imports,omitempty" yaml:"imports,omitempty"`
}

// String renders the import lines, if any, followed by the code.
func (r *Result) String() string {
	if len(r.Imports) == 0 {
		return r.Code
	}
	return strings.Join(r.Imports, "\n") + "\n\n" + r.Code
}

// imports accumulates import lines in first-use order for one Print call.
type imports struct {
	seen  map[string]bool
	lines []string
}

func newImports() *imports {
	return &imports{seen: make(map[string]bool)}
}

func (i *imports) add(line string) {
	if line == "" || i.seen[line] {
		return
	}
	i.seen[line] = true
	i.lines = append(i.lines, line)
}
