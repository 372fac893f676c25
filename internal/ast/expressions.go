package ast

import (
	"strconv"
	"strings"

	"tacgen/internal/token"
	"tacgen/internal/typesys"
)

// NumberLiteral represents 5 or 3.25
// Kind is fixed when the literal is built and selects Int or Float.
type NumberLiteral struct {
	Token token.Token
	Kind  typesys.Type
	Int   int64
	Float float64
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string {
	if nl == nil {
		return "<nil>"
	}
	if nl.Token.Literal != "" {
		return nl.Token.Literal
	}
	if nl.Kind == typesys.Float {
		s := strconv.FormatFloat(nl.Float, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	return strconv.FormatInt(nl.Int, 10)
}

// NewInt builds an int literal without a source token.
func NewInt(v int64) *NumberLiteral {
	return &NumberLiteral{Kind: typesys.Int, Int: v}
}

// NewFloat builds a float literal without a source token.
func NewFloat(v float64) *NumberLiteral {
	return &NumberLiteral{Kind: typesys.Float, Float: v}
}

// Identifier represents a variable name
// Type is unknown until the symbol table resolves the declaration
type Identifier struct {
	Token token.Token // The IDENT token
	Value string      // The actual name: "x", "foo"
	Type  typesys.Type
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string {
	if i == nil {
		return "<nil>"
	}
	return i.Value
}

// NewIdent builds a typed identifier without a source token.
func NewIdent(name string, t typesys.Type) *Identifier {
	return &Identifier{Value: name, Type: t}
}

// InfixExpression represents <left> <op> <right> for + - * /
type InfixExpression struct {
	Token    token.Token // The operator token
	Operator ArithOp
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	if ie == nil {
		return "<nil>"
	}
	return "(" + str(ie.Left) + " " + ie.Operator.String() + " " + str(ie.Right) + ")"
}

// TypeOf returns the scalar type of an expression. Identifiers report
// whatever the resolver attached; infix expressions widen their operands.
func TypeOf(e Expression) typesys.Type {
	switch e := e.(type) {
	case *NumberLiteral:
		return e.Kind
	case *Identifier:
		return e.Type
	case *InfixExpression:
		return typesys.Widen(TypeOf(e.Left), TypeOf(e.Right))
	default:
		return typesys.Unknown
	}
}
