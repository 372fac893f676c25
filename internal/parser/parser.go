package parser

import (
	"fmt"

	"tacgen/internal/ast"
	"tacgen/internal/diag"
	"tacgen/internal/lexer"
	"tacgen/internal/token"
)

// precedence levels (lowest to highest)
// a || b && c < d + e * f parses as a || (b && (c < (d + (e * f))))
const (
	_ int = iota
	LOWEST
	LOGICOR     // ||
	LOGICAND    // &&
	LESSGREATER // < > <= >= == !=
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // !X
)

var precedences = map[token.TokenType]int{
	token.OR:       LOGICOR,
	token.AND:      LOGICAND,
	token.EQ:       LESSGREATER,
	token.NOT_EQ:   LESSGREATER,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LT_EQ:    LESSGREATER,
	token.GT_EQ:    LESSGREATER,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.SLASH:    PRODUCT,
	token.ASTERISK: PRODUCT,
}

type Parser struct {
	l *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []diag.CodeError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// Values and conditions share one Pratt table, so parse functions return
// ast.Node and callers narrow the result to the kind they need.
type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

// New creates a new parser for the given lexer
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.infixParseFns = make(map[token.TokenType]infixParseFn)

	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.BANG, p.parseNotExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)

	for _, t := range []token.TokenType{token.PLUS, token.MINUS, token.ASTERISK, token.SLASH} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	for _, t := range []token.TokenType{token.LT, token.GT, token.LT_EQ, token.GT_EQ, token.EQ, token.NOT_EQ} {
		p.registerInfix(t, p.parseRelationalExpression)
	}
	p.registerInfix(token.AND, p.parseLogicalExpression)
	p.registerInfix(token.OR, p.parseLogicalExpression)

	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Errors returns accumulated parse errors as "line:col: message" strings
func (p *Parser) Errors() []string {
	out := make([]string, 0, len(p.errors))
	for _, e := range p.errors {
		out = append(out, e.Error())
	}
	return out
}

// Diagnostics returns accumulated parse errors with their positions
func (p *Parser) Diagnostics() []diag.CodeError {
	return p.errors
}

func (p *Parser) addError(tok token.Token, msg, context string) {
	p.errors = append(p.errors, diag.CodeError{
		Message: msg,
		Context: context,
		Line:    tok.Line,
		Column:  tok.Column,
	})
}

func (p *Parser) addErrorCurrent(msg, context string) {
	p.addError(p.curToken, msg, context)
}

func (p *Parser) addErrorPeek(msg, context string) {
	p.addError(p.peekToken, msg, context)
}

// peekError adds an error when we expected a different token
func (p *Parser) peekError(t token.TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.addErrorPeek(msg, p.peekToken.Literal)
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek checks next token and advances if correct, else errors
func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekPrecedence() int {
	if p, ok := precedences[p.peekToken.Type]; ok {
		return p
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if p, ok := precedences[p.curToken.Type]; ok {
		return p
	}
	return LOWEST
}

// ParseProgram parses the declarations followed by the statements of the
// program body. Identifier types are left unknown; symtab.Resolve fills
// them in.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{
		Body: &ast.BlockStatement{Token: p.curToken, Statements: []ast.Statement{}},
	}

	for isTypeKeyword(p.curToken.Type) {
		decl := p.parseDeclaration()
		if decl != nil {
			program.Declarations = append(program.Declarations, decl)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Body.Statements = append(program.Body.Statements, stmt)
		} else {
			p.synchronize()
		}
		p.nextToken()
	}

	return program
}

func (p *Parser) synchronize() {
	for !p.curTokenIs(token.EOF) && !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.RBRACE) {
		p.nextToken()
	}
}

func isTypeKeyword(t token.TokenType) bool {
	return t == token.INT_TYPE || t == token.FLOAT_TYPE
}
