package evaluator

import (
	"tacgen/internal/ast"
	"tacgen/internal/object"
)

// evalProgram binds every declared variable to its zero value, unless the
// caller already bound it, then runs the body.
func (e *evaluator) evalProgram(program *ast.Program, env *object.Environment) object.Object {
	for _, decl := range program.Declarations {
		for _, name := range decl.Names {
			if _, ok := env.Get(name.Value); !ok {
				env.Declare(name.Value, decl.Type)
			}
		}
	}
	if program.Body == nil {
		return nil
	}
	return e.evalStatement(program.Body, env)
}

func (e *evaluator) evalStatement(stmt ast.Statement, env *object.Environment) object.Object {
	switch stmt := stmt.(type) {
	case *ast.AssignStatement:
		val := evalExpression(stmt.Value, env)
		if isError(val) {
			return annotateErrorWithNode(val, stmt)
		}
		env.Assign(stmt.Name.Value, val)
		return nil

	case *ast.IfStatement:
		ok, err := evalCondition(stmt.Condition, env)
		if err != nil {
			return annotateErrorWithNode(err, stmt)
		}
		if ok {
			return e.evalStatement(stmt.Consequence, env)
		}
		if stmt.Alternative != nil {
			return e.evalStatement(stmt.Alternative, env)
		}
		return nil

	case *ast.WhileStatement:
		return e.evalLoop(stmt, stmt.Condition, stmt.Body, nil, env)

	case *ast.ForStatement:
		if res := e.evalStatement(stmt.Init, env); isError(res) {
			return res
		}
		return e.evalLoop(stmt, stmt.Condition, stmt.Body, stmt.Periodic, env)

	case *ast.BlockStatement:
		return e.evalBlockStatement(stmt, env)

	default:
		return newError("unknown statement: %T", stmt)
	}
}

// evalBlockStatement runs statements in order and stops at the first error
func (e *evaluator) evalBlockStatement(block *ast.BlockStatement, env *object.Environment) object.Object {
	for _, statement := range block.Statements {
		if res := e.evalStatement(statement, env); isError(res) {
			return annotateErrorWithNode(res, statement)
		}
	}
	return nil
}

func (e *evaluator) evalLoop(node ast.Statement, cond ast.BoolExpression, body ast.Statement, step *ast.AssignStatement, env *object.Environment) object.Object {
	for {
		ok, err := evalCondition(cond, env)
		if err != nil {
			return annotateErrorWithNode(err, node)
		}
		if !ok {
			return nil
		}
		if e.budget <= 0 {
			return annotateErrorWithNode(newError("loop budget exhausted"), node)
		}
		e.budget--

		if res := e.evalStatement(body, env); isError(res) {
			return res
		}
		if step != nil {
			if res := e.evalStatement(step, env); isError(res) {
				return res
			}
		}
	}
}
