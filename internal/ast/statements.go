package ast

import (
	"bytes"
	"strings"

	"tacgen/internal/token"
)

// AssignStatement represents: <name> = <value>;
type AssignStatement struct {
	Token token.Token // The IDENT token
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) String() string {
	if as == nil {
		return "<nil>"
	}
	var out bytes.Buffer
	out.WriteString(str(as.Name))
	out.WriteString(" = ")
	out.WriteString(str(as.Value))
	out.WriteString(";")
	return out.String()
}

// IfStatement represents: if (<cond>) <then> else <else>
// Alternative is always present; the parser fills in an empty block.
type IfStatement struct {
	Token       token.Token
	Condition   BoolExpression
	Consequence Statement
	Alternative Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	if is == nil {
		return "<nil>"
	}
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(str(is.Condition))
	out.WriteString(") ")
	out.WriteString(str(is.Consequence))
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(str(is.Alternative))
	}
	return out.String()
}

// WhileStatement represents: while (<cond>) <body>
type WhileStatement struct {
	Token     token.Token
	Condition BoolExpression
	Body      Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	if ws == nil {
		return "<nil>"
	}
	return "while (" + str(ws.Condition) + ") " + str(ws.Body)
}

// ForStatement represents: for (<init>; <cond>; <periodic>) <body>
type ForStatement struct {
	Token     token.Token
	Init      *AssignStatement
	Condition BoolExpression
	Periodic  *AssignStatement
	Body      Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	if fs == nil {
		return "<nil>"
	}
	var out bytes.Buffer
	out.WriteString("for (")
	out.WriteString(str(fs.Init))
	out.WriteString(" ")
	out.WriteString(str(fs.Condition))
	out.WriteString("; ")
	out.WriteString(strings.TrimSuffix(str(fs.Periodic), ";"))
	out.WriteString(") ")
	out.WriteString(str(fs.Body))
	return out.String()
}

// BlockStatement represents: { stmt1 stmt2 ... }
type BlockStatement struct {
	Token      token.Token // The { token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	if bs == nil {
		return "<nil>"
	}
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, s := range bs.Statements {
		out.WriteString(str(s))
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}
