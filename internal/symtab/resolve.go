package symtab

import (
	"tacgen/internal/ast"
	"tacgen/internal/diag"
)

// Resolve declares every variable of prog and tags each identifier with
// its declared type. It stands in for the external type resolution pass
// the code generator relies on: after a clean Resolve every identifier has
// a known type. All problems are collected, none stop the walk.
func Resolve(prog *ast.Program) (*Table, []diag.CodeError) {
	r := &resolver{table: New()}
	for _, d := range prog.Declarations {
		for _, name := range d.Names {
			if err := r.table.Declare(name.Value, d.Type, name.Token.Line, name.Token.Column); err != nil {
				r.errs = append(r.errs, err.(diag.CodeError))
				continue
			}
			name.Type = d.Type
		}
	}
	if prog.Body != nil {
		r.statement(prog.Body)
	}
	return r.table, r.errs
}

type resolver struct {
	table *Table
	errs  []diag.CodeError
}

func (r *resolver) ident(id *ast.Identifier) {
	sym, ok := r.table.Lookup(id.Value)
	if !ok {
		r.errs = append(r.errs, diag.Errorf(id.Token.Line, id.Token.Column, "undeclared identifier: %s", id.Value))
		return
	}
	sym.Uses++
	id.Type = sym.Type
}

func (r *resolver) expression(e ast.Expression) {
	switch e := e.(type) {
	case *ast.Identifier:
		r.ident(e)
	case *ast.InfixExpression:
		r.expression(e.Left)
		r.expression(e.Right)
	}
}

func (r *resolver) condition(b ast.BoolExpression) {
	switch b := b.(type) {
	case *ast.RelationalExpression:
		r.expression(b.Left)
		r.expression(b.Right)
	case *ast.OrExpression:
		r.condition(b.Left)
		r.condition(b.Right)
	case *ast.AndExpression:
		r.condition(b.Left)
		r.condition(b.Right)
	case *ast.NotExpression:
		r.condition(b.Operand)
	}
}

func (r *resolver) statement(s ast.Statement) {
	switch s := s.(type) {
	case *ast.AssignStatement:
		if s == nil || s.Name == nil {
			return
		}
		r.expression(s.Value)
		r.ident(s.Name)
	case *ast.IfStatement:
		r.condition(s.Condition)
		r.statement(s.Consequence)
		if s.Alternative != nil {
			r.statement(s.Alternative)
		}
	case *ast.WhileStatement:
		r.condition(s.Condition)
		r.statement(s.Body)
	case *ast.ForStatement:
		if s.Init != nil {
			r.statement(s.Init)
		}
		r.condition(s.Condition)
		r.statement(s.Body)
		if s.Periodic != nil {
			r.statement(s.Periodic)
		}
	case *ast.BlockStatement:
		for _, st := range s.Statements {
			r.statement(st)
		}
	}
}
