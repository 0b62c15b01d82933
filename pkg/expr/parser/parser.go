package parser

import (
	"mathgen-hq/mathgen/pkg/expr/ast"
	exprErrors "mathgen-hq/mathgen/pkg/expr/errors"
	"mathgen-hq/mathgen/pkg/expr/lexer"
)

// DefaultMaxDepth is the default limit on parenthesis and argument nesting.
const DefaultMaxDepth = 128

// Parser turns tokens into an AST.
// Configure a Parser before use; once configured it is safe for concurrent use.
type Parser struct {
	// Configuration
	variables    map[string]bool // Names that multiply a following group
	table        *ast.Table      // Known constants and functions
	conventional bool            // Left-associative split instead of leftmost-lowest
	maxDepth     int             // Maximum nesting depth
	lexer        *lexer.Lexer
}

// New creates a parser with default configuration and the given known variables.
func New(variables ...string) *Parser {
	p := &Parser{
		variables: make(map[string]bool),
		table:     ast.DefaultTable,
		maxDepth:  DefaultMaxDepth,
		lexer:     lexer.New(),
	}
	return p.WithVariables(variables...)
}

// WithVariables adds names to the known-variable set.
func (p *Parser) WithVariables(variables ...string) *Parser {
	for _, v := range variables {
		p.variables[v] = true
	}
	return p
}

// WithTable replaces the known-name table.
func (p *Parser) WithTable(table *ast.Table) *Parser {
	p.table = table
	return p
}

// WithConventionalPrecedence switches between the reference split order and
// the conventional one, where + and - share a tier, *, / and % share a tier,
// and both tiers associate to the left.
func (p *Parser) WithConventionalPrecedence(enabled bool) *Parser {
	p.conventional = enabled
	return p
}

// WithMaxDepth sets the maximum nesting depth.
func (p *Parser) WithMaxDepth(depth int) *Parser {
	p.maxDepth = depth
	return p
}

// WithLexer replaces the lexer used by ParseString.
func (p *Parser) WithLexer(l *lexer.Lexer) *Parser {
	p.lexer = l
	return p
}

// IsVariable returns true if name is in the known-variable set.
func (p *Parser) IsVariable(name string) bool {
	return p.variables[name]
}

// Parse runs the collapse, disambiguation and reduction stages over tokens.
func (p *Parser) Parse(tokens []lexer.Token) (ast.Node, error) {
	if len(tokens) == 0 {
		return nil, exprErrors.NewEmptyExpression("no input", 0)
	}

	tree, err := Collapse(tokens)
	if err != nil {
		return nil, err
	}

	return p.Reduce(p.Disambiguate(tree))
}

// ParseString lexes and parses text. Errors carry a caret context line
// pointing into text.
func (p *Parser) ParseString(text string) (ast.Node, error) {
	tokens, err := p.lexer.Lex(text)
	if err != nil {
		return nil, exprErrors.WithSource(err, text)
	}

	node, err := p.Parse(tokens)
	if err != nil {
		return nil, exprErrors.WithSource(err, text)
	}
	return node, nil
}
