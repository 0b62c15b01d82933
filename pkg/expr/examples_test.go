package expr_test

import (
	"fmt"

	"mathgen-hq/mathgen/pkg/expr"
	"mathgen-hq/mathgen/pkg/expr/ast"
)

func ExampleGenerate() {
	result, err := expr.Generate("2x^2 + sqrt(y)", "python", expr.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result)
	// Output:
	// import math
	//
	// 2*x**2+math.sqrt(y)
}

func ExampleParse() {
	node, err := expr.Parse("f(2x) + a(b)", expr.Options{Variables: []string{"a"}})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Print(ast.Dump(node))
	// Output:
	// BinaryOp add
	//   Function f/1
	//     BinaryOp multiply
	//       Number 2
	//       Variable x
	//   BinaryOp multiply
	//     Variable a
	//     Variable b
}
