package codegen

import (
	"tacgen/internal/ast"
	"tacgen/internal/tac"
	"tacgen/internal/typesys"
)

var floatSpellings = [...]string{ast.Add: "plus", ast.Sub: "minus", ast.Mul: "mul", ast.Div: "div"}

// opSpelling picks the TAC spelling of op for operands of type t.
func opSpelling(op ast.ArithOp, t typesys.Type) (string, bool) {
	if !op.Valid() {
		return "", false
	}
	switch t {
	case typesys.Int:
		return op.String(), true
	case typesys.Float:
		return floatSpellings[op], true
	default:
		return "", false
	}
}

// GenerateExpr emits the code computing e and returns the temporary that
// holds its value. Children are generated left before right, before the
// node's own temporary is allocated.
func (g *Generator) GenerateExpr(e ast.Expression) (tac.Temp, error) {
	switch e := e.(type) {
	case *ast.NumberLiteral:
		if e == nil {
			return 0, internalf(nil, "nil number literal")
		}
		if !e.Kind.Known() {
			return 0, internalf(e, "number literal without a kind")
		}
		t := g.names.NewTemp()
		g.emit(tac.Const{Dst: t, Kind: e.Kind, Int: e.Int, Float: e.Float})
		return t, nil

	case *ast.Identifier:
		if e == nil {
			return 0, internalf(nil, "nil identifier")
		}
		t := g.names.NewTemp()
		g.emit(tac.Copy{Dst: t, Name: e.Value})
		return t, nil

	case *ast.InfixExpression:
		if e == nil {
			return 0, internalf(nil, "nil infix expression")
		}
		left, err := g.GenerateExpr(e.Left)
		if err != nil {
			return 0, err
		}
		right, err := g.GenerateExpr(e.Right)
		if err != nil {
			return 0, err
		}
		if !e.Operator.Valid() {
			return 0, internalf(e, "invalid arithmetic operator %s", e.Operator)
		}
		typ := ast.TypeOf(e)
		spelling, ok := opSpelling(e.Operator, typ)
		if !ok {
			return 0, internalf(e, "operands of %s have no known type", e.Operator)
		}
		t := g.names.NewTemp()
		g.emit(tac.Binary{Dst: t, Left: left, Right: right, Op: spelling})
		return t, nil

	case nil:
		return 0, internalf(nil, "missing expression")

	default:
		return 0, internalf(e, "unsupported expression %T", e)
	}
}
