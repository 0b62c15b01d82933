package validator

import (
	"errors"
	"testing"

	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/expr/parser"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		declared  []string
		wantCodes []exprErrors.Code
	}{
		{name: "valid", input: "2sqrt(x) + max(a, b, c) - rand()"},
		{name: "constants", input: "2pi e"},
		{name: "unknown function", input: "f(x)", wantCodes: []exprErrors.Code{exprErrors.CodeUnknownFunction}},
		{name: "function used as constant", input: "sqrt", wantCodes: []exprErrors.Code{exprErrors.CodeUnknownConstant}},
		{name: "arity", input: "nthRoot(x)", wantCodes: []exprErrors.Code{exprErrors.CodeArityMismatch}},
		{
			name:      "collects every problem",
			input:     "f(x) + sin(1, 2) + cos",
			wantCodes: []exprErrors.Code{exprErrors.CodeUnknownFunction, exprErrors.CodeArityMismatch, exprErrors.CodeUnknownConstant},
		},
		{name: "declared variables", input: "a(x)", declared: []string{"a", "x"}},
		{
			name:      "undeclared variable reported once",
			input:     "y + 2y",
			declared:  []string{"x"},
			wantCodes: []exprErrors.Code{exprErrors.CodeUndeclaredVariable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := parser.New(tt.declared...).ParseString(tt.input)
			if err != nil {
				t.Fatalf("ParseString(%q) failed: %v", tt.input, err)
			}

			v := NewValidator()
			if tt.declared != nil {
				v.WithDeclaredVariables(tt.declared...)
			}
			err = v.Validate(node)

			if len(tt.wantCodes) == 0 {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}

			var list *exprErrors.ErrorList
			if !errors.As(err, &list) {
				t.Fatalf("Validate() error = %v, want *ErrorList", err)
			}
			if list.Count() != len(tt.wantCodes) {
				t.Fatalf("Count() = %d, want %d: %v", list.Count(), len(tt.wantCodes), err)
			}
			for i, code := range tt.wantCodes {
				if list.Errors[i].Code != code {
					t.Errorf("Errors[%d].Code = %q, want %q", i, list.Errors[i].Code, code)
				}
				if list.Errors[i].Type != exprErrors.ErrorTypeValidation {
					t.Errorf("Errors[%d].Type = %q, want %q", i, list.Errors[i].Type, exprErrors.ErrorTypeValidation)
				}
			}
		})
	}
}

func TestValidator_CustomTable(t *testing.T) {
	table := ast.NewTable(
		ast.Name{Name: "tau", Kind: ast.NameKindConstant},
		ast.Name{Name: "hypot", Kind: ast.NameKindFunction, Arities: []int{2}},
	)
	node, err := parser.New().WithTable(table).ParseString("hypot(tau, 1)")
	if err != nil {
		t.Fatalf("ParseString() failed: %v", err)
	}
	if err := NewValidator().WithTable(table).Validate(node); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
	if err := NewValidator().Validate(node); err == nil {
		t.Error("Validate() with default table succeeded, want unknown names")
	}
}
