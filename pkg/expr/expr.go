package expr

import (
	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/expr/lexer"
	"mathgen-hq/mathgen/pkg/expr/parser"
	"mathgen-hq/mathgen/pkg/expr/printer"
	"mathgen-hq/mathgen/pkg/expr/validator"
)

// Options configures a single parse or generation.
type Options struct {
	Variables    []string // Names that multiply a following group instead of being called
	Conventional bool     // Left-associative + - and * / % instead of the reference split order
	Strict       bool     // Run the validator before printing
	MaxDepth     int      // Maximum nesting depth; zero means parser.DefaultMaxDepth
}

// NewParser returns a parser configured from opts.
func (o Options) NewParser() *parser.Parser {
	p := parser.New(o.Variables...).WithConventionalPrecedence(o.Conventional)
	if o.MaxDepth > 0 {
		p.WithMaxDepth(o.MaxDepth)
	}
	return p
}

// Lex tokenizes text.
func Lex(text string) ([]lexer.Token, error) {
	tokens, err := lexer.Lex(text)
	return tokens, exprErrors.WithSource(err, text)
}

// Parse converts text into an AST. With opts.Strict, the tree is validated too.
func Parse(text string, opts Options) (ast.Node, error) {
	node, err := opts.NewParser().ParseString(text)
	if err != nil {
		return nil, err
	}

	if opts.Strict {
		if err := Validate(node); err != nil {
			return nil, exprErrors.WithSource(err, text)
		}
	}
	return node, nil
}

// Validate runs the semantic checks over a parsed tree.
func Validate(node ast.Node) error {
	return validator.NewValidator().Validate(node)
}

// Generate parses text and prints it in language.
func Generate(text, language string, opts Options) (*printer.Result, error) {
	p, err := printer.Get(language)
	if err != nil {
		return nil, err
	}

	node, err := Parse(text, opts)
	if err != nil {
		return nil, err
	}

	result, err := p.Print(node)
	if err != nil {
		return nil, exprErrors.WithSource(err, text)
	}
	return result, nil
}
