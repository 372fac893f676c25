package parser

import (
	"fmt"

	"tacgen/internal/ast"
	"tacgen/internal/token"
	"tacgen/internal/typesys"
)

// parseDeclaration parses: int a, b, c;
func (p *Parser) parseDeclaration() *ast.Declaration {
	t, ok := typesys.ParseTypeName(p.curToken.Literal)
	if !ok {
		p.addErrorCurrent(fmt.Sprintf("expected type, got %s", p.curToken.Type), p.curToken.Literal)
		return nil
	}
	decl := &ast.Declaration{Token: p.curToken, Type: t}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	decl.Names = append(decl.Names, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		decl.Names = append(decl.Names, &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal})
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return decl
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.IDENT:
		stmt := p.parseAssignStatement()
		if stmt == nil {
			return nil
		}
		return stmt
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.INT_TYPE, token.FLOAT_TYPE:
		p.addErrorCurrent("declarations must come before the first statement", p.curToken.Literal)
		return nil
	case token.ILLEGAL:
		p.addErrorCurrent(fmt.Sprintf("illegal token %q", p.curToken.Literal), p.curToken.Literal)
		return nil
	default:
		p.addErrorCurrent(fmt.Sprintf("unexpected %s at start of statement", p.curToken.Type), p.curToken.Literal)
		return nil
	}
}

func (p *Parser) parseAssignStatement() *ast.AssignStatement {
	return p.parseAssignStatementCore(true)
}

// parseAssignStatementCore parses <ident> = <value>, with the trailing
// semicolon only when requireSemicolon is set (the for step has none).
func (p *Parser) parseAssignStatementCore(requireSemicolon bool) *ast.AssignStatement {
	stmt := &ast.AssignStatement{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
	}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseValue(LOWEST)
	if stmt.Value == nil {
		return nil
	}
	if requireSemicolon && !p.expectPeek(token.SEMICOLON) {
		return nil
	}
	return stmt
}

// parseIfStatement parses if (<cond>) <stmt> [else <stmt>]. A missing else
// becomes an empty block so every IfStatement carries both branches.
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseCondition(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Consequence = p.parseStatement()
	if stmt.Consequence == nil {
		return nil
	}

	if !p.peekTokenIs(token.ELSE) {
		stmt.Alternative = &ast.BlockStatement{Token: stmt.Token, Statements: []ast.Statement{}}
		return stmt
	}
	p.nextToken()
	p.nextToken()
	stmt.Alternative = p.parseStatement()
	if stmt.Alternative == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Condition = p.parseCondition(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

// parseForStatement parses for (<assign>; <cond>; <assign>) <stmt>. All
// three clauses are required.
func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}

	// init clause
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Init = p.parseAssignStatementCore(true)
	if stmt.Init == nil {
		return nil
	}

	// condition clause
	p.nextToken()
	stmt.Condition = p.parseCondition(LOWEST)
	if stmt.Condition == nil {
		return nil
	}
	if !p.expectPeek(token.SEMICOLON) {
		return nil
	}

	// periodic clause
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Periodic = p.parseAssignStatementCore(false)
	if stmt.Periodic == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Body = p.parseStatement()
	if stmt.Body == nil {
		return nil
	}
	return stmt
}

func (p *Parser) parseBlockStatement() ast.Statement {
	block := &ast.BlockStatement{Token: p.curToken}
	block.Statements = []ast.Statement{}

	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.synchronize()
			if p.curTokenIs(token.RBRACE) {
				break
			}
		}
		p.nextToken()
	}

	if !p.curTokenIs(token.RBRACE) {
		p.addErrorCurrent("unterminated block, expected }", p.curToken.Literal)
		return nil
	}
	return block
}
