package parser

import (
	"fmt"
	"strconv"

	"tacgen/internal/ast"
	"tacgen/internal/token"
	"tacgen/internal/typesys"
)

func (p *Parser) parseExpression(precedence int) ast.Node {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}

		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

// parseValue parses an arithmetic expression and rejects conditions.
func (p *Parser) parseValue(precedence int) ast.Expression {
	start := p.curToken
	node := p.parseExpression(precedence)
	if node == nil {
		return nil
	}
	return p.asValue(start, node)
}

// parseCondition parses a condition and rejects bare arithmetic values.
func (p *Parser) parseCondition(precedence int) ast.BoolExpression {
	start := p.curToken
	node := p.parseExpression(precedence)
	if node == nil {
		return nil
	}
	return p.asCondition(start, node)
}

func (p *Parser) asValue(at token.Token, node ast.Node) ast.Expression {
	if e, ok := node.(ast.Expression); ok {
		return e
	}
	p.addError(at, "expected arithmetic expression, got condition", node.String())
	return nil
}

func (p *Parser) asCondition(at token.Token, node ast.Node) ast.BoolExpression {
	if b, ok := node.(ast.BoolExpression); ok {
		return b
	}
	p.addError(at, "expected condition, got arithmetic expression", node.String())
	return nil
}

func (p *Parser) noPrefixParseFnError(t token.TokenType) {
	msg := fmt.Sprintf("no prefix parse function for %s found", t)
	p.addErrorCurrent(msg, p.curToken.Literal)
}

func (p *Parser) parseIdentifier() ast.Node {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Node {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		msg := fmt.Sprintf("could not parse %q as integer", p.curToken.Literal)
		p.addErrorCurrent(msg, p.curToken.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Kind: typesys.Int, Int: value}
}

func (p *Parser) parseFloatLiteral() ast.Node {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		msg := fmt.Sprintf("could not parse %q as float", p.curToken.Literal)
		p.addErrorCurrent(msg, p.curToken.Literal)
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Kind: typesys.Float, Float: value}
}

// parseNotExpression binds tighter than && and || but looser than the
// relational operators, so !a < b reads as !(a < b).
func (p *Parser) parseNotExpression() ast.Node {
	expr := &ast.NotExpression{Token: p.curToken}
	p.nextToken()
	expr.Operand = p.parseCondition(LOGICAND)
	if expr.Operand == nil {
		return nil
	}
	return expr
}

func (p *Parser) parseInfixExpression(left ast.Node) ast.Node {
	tok := p.curToken
	op, ok := ast.LookupArithOp(tok.Literal)
	if !ok {
		p.addErrorCurrent(fmt.Sprintf("unknown operator %s", tok.Literal), tok.Literal)
		return nil
	}
	lhs := p.asValue(tok, left)
	if lhs == nil {
		return nil
	}
	precedence := p.curPrecedence()
	p.nextToken()
	rhs := p.parseValue(precedence)
	if rhs == nil {
		return nil
	}
	return &ast.InfixExpression{Token: tok, Operator: op, Left: lhs, Right: rhs}
}

func (p *Parser) parseRelationalExpression(left ast.Node) ast.Node {
	tok := p.curToken
	op, ok := ast.LookupRelOp(tok.Literal)
	if !ok {
		p.addErrorCurrent(fmt.Sprintf("unknown operator %s", tok.Literal), tok.Literal)
		return nil
	}
	lhs := p.asValue(tok, left)
	if lhs == nil {
		return nil
	}
	precedence := p.curPrecedence()
	p.nextToken()
	rhs := p.parseValue(precedence)
	if rhs == nil {
		return nil
	}
	return &ast.RelationalExpression{Token: tok, Operator: op, Left: lhs, Right: rhs}
}

func (p *Parser) parseLogicalExpression(left ast.Node) ast.Node {
	tok := p.curToken
	lhs := p.asCondition(tok, left)
	if lhs == nil {
		return nil
	}
	precedence := p.curPrecedence()
	p.nextToken()
	rhs := p.parseCondition(precedence)
	if rhs == nil {
		return nil
	}
	if tok.Type == token.AND {
		return &ast.AndExpression{Token: tok, Left: lhs, Right: rhs}
	}
	return &ast.OrExpression{Token: tok, Left: lhs, Right: rhs}
}

// parseGroupedExpression returns whatever the parentheses hold, value or
// condition alike.
func (p *Parser) parseGroupedExpression() ast.Node {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}
