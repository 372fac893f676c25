package ast

import (
	"bytes"
	"strings"

	"tacgen/internal/token"
	"tacgen/internal/typesys"
)

// Node is the base interface for all AST nodes
// Every node must provide a TokenLiteral (for debugging) and String (for printing)
type Node interface {
	TokenLiteral() string
	String() string
}

// Expression nodes produce a numeric value
// Examples: 5, x, (a + 3) * b
type Expression interface {
	Node
	expressionNode()
}

// BoolExpression nodes never produce a value, they only decide where
// control goes next. Examples: a < b, !(x == y) || z >= 1
type BoolExpression interface {
	Node
	boolExpressionNode()
}

// Statement nodes don't produce values
// Examples: x = 5; while (x < 3) x = x + 1;
type Statement interface {
	Node
	statementNode()
}

// str renders a child node. A missing child, including a typed nil
// pointer, prints as "<nil>".
func str(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.String()
}

// Declaration represents: int a, b;
type Declaration struct {
	Token token.Token // The INT_TYPE or FLOAT_TYPE token
	Type  typesys.Type
	Names []*Identifier
}

func (d *Declaration) TokenLiteral() string { return d.Token.Literal }
func (d *Declaration) String() string {
	if d == nil {
		return "<nil>"
	}
	names := make([]string, 0, len(d.Names))
	for _, n := range d.Names {
		names = append(names, str(n))
	}
	return d.Type.String() + " " + strings.Join(names, ", ") + ";"
}

// Program is the root node of every AST
// Declarations come first, then the statements of the program body
type Program struct {
	Declarations []*Declaration
	Body         *BlockStatement
}

func (p *Program) TokenLiteral() string {
	if len(p.Declarations) > 0 {
		return p.Declarations[0].TokenLiteral()
	}
	if p.Body != nil && len(p.Body.Statements) > 0 {
		return p.Body.Statements[0].TokenLiteral()
	}
	return ""
}

// String builds the program back into source code (useful for debugging)
func (p *Program) String() string {
	var out bytes.Buffer
	for _, d := range p.Declarations {
		out.WriteString(str(d))
		out.WriteString("\n")
	}
	if p.Body != nil {
		for _, s := range p.Body.Statements {
			out.WriteString(str(s))
			out.WriteString("\n")
		}
	}
	return out.String()
}
