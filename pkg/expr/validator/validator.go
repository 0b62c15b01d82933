package validator

import (
	"fmt"
	"strings"

	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
)

// Validator runs the name, arity and variable checks over an AST.
type Validator struct {
	table    *ast.Table
	declared map[string]bool
}

// NewValidator creates a validator using the default known-name table.
func NewValidator() *Validator {
	return &Validator{table: ast.DefaultTable}
}

// WithTable replaces the known-name table.
func (v *Validator) WithTable(table *ast.Table) *Validator {
	v.table = table
	return v
}

// WithDeclaredVariables enables the undeclared-variable check.
func (v *Validator) WithDeclaredVariables(names ...string) *Validator {
	if v.declared == nil {
		v.declared = make(map[string]bool, len(names))
	}
	for _, name := range names {
		v.declared[name] = true
	}
	return v
}

// Validate walks node and returns an *ErrorList with every problem found,
// or nil when the expression is valid.
func (v *Validator) Validate(node ast.Node) error {
	w := &walker{v: v, errors: exprErrors.NewErrorList(), reported: make(map[string]bool)}
	if err := ast.Walk(node, w); err != nil {
		return err
	}
	return w.errors.ToError()
}

// walker is the ast.Visitor doing the checks for one Validate call.
type walker struct {
	ast.BaseVisitor
	v        *Validator
	errors   *exprErrors.ErrorList
	reported map[string]bool // Undeclared variables already reported
}

func (w *walker) VisitFunction(n *ast.Function) error {
	entry, ok := w.v.table.Lookup(n.Name)
	if !ok || entry.Kind != ast.NameKindFunction {
		err := exprErrors.NewUnknownFunction(n.Name, n.Pos(), w.v.table.NamesOfKind(ast.NameKindFunction))
		err.Type = exprErrors.ErrorTypeValidation
		w.errors.Add(err)
		return nil
	}

	if !entry.AcceptsArgs(len(n.Args)) {
		err := exprErrors.NewArityMismatch(n.Name, len(n.Args), entry.ArityString(), n.Pos())
		err.Type = exprErrors.ErrorTypeValidation
		w.errors.Add(err)
	}
	return nil
}

func (w *walker) VisitConstant(n *ast.Constant) error {
	if w.v.table.IsConstant(n.Name) {
		return nil
	}
	err := exprErrors.NewUnknownConstant(n.Name, n.Pos(), w.v.table.NamesOfKind(ast.NameKindConstant), w.v.table.IsFunction(n.Name))
	err.Type = exprErrors.ErrorTypeValidation
	w.errors.Add(err)
	return nil
}

func (w *walker) VisitVariable(n *ast.Variable) error {
	if w.v.declared == nil || w.v.declared[n.Name] || w.reported[n.Name] {
		return nil
	}
	w.reported[n.Name] = true

	err := exprErrors.New(exprErrors.ErrorTypeValidation, exprErrors.CodeUndeclaredVariable, n.Pos(), "undeclared variable %q", n.Name)
	err.Suggestion = fmt.Sprintf("Declared variables: %s", strings.Join(sortedKeys(w.v.declared), ", "))
	w.errors.Add(err)
	return nil
}
