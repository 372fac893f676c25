package evaluator

import (
	"strings"

	"tacgen/internal/ast"
	"tacgen/internal/object"
	"tacgen/internal/token"
)

func annotateErrorWithNode(obj object.Object, node ast.Node) object.Object {
	err, ok := obj.(*object.Error)
	if !ok || node == nil {
		return obj
	}
	if err.Line > 0 && err.Column > 0 && strings.TrimSpace(err.Context) != "" {
		return obj
	}
	if err.Context == "" {
		err.Context = strings.TrimSpace(node.String())
	}
	if tok, ok := tokenFromNode(node); ok {
		if err.Line <= 0 {
			err.Line = tok.Line
		}
		if err.Column <= 0 {
			err.Column = tok.Column
		}
	}
	return err
}

func tokenFromNode(node ast.Node) (token.Token, bool) {
	var tok token.Token
	switch n := node.(type) {
	case *ast.Identifier:
		tok = n.Token
	case *ast.NumberLiteral:
		tok = n.Token
	case *ast.InfixExpression:
		tok = n.Token
	case *ast.RelationalExpression:
		tok = n.Token
	case *ast.AssignStatement:
		tok = n.Token
	case *ast.IfStatement:
		tok = n.Token
	case *ast.WhileStatement:
		tok = n.Token
	case *ast.ForStatement:
		tok = n.Token
	default:
		return token.Token{}, false
	}
	return tok, tok.Line > 0 && tok.Column > 0
}
