// Package evaluator runs an AST directly. It defines what a program means
// independently of the code generator, so generated TAC can be checked
// against it.
package evaluator

import (
	"tacgen/internal/ast"
	"tacgen/internal/object"
	"tacgen/internal/typesys"
)

// DefaultLoopBudget bounds the total number of loop iterations one Eval
// call may perform.
const DefaultLoopBudget = 1_000_000

type evaluator struct {
	budget int
}

func newError(format string, a ...any) *object.Error {
	return object.NewError(format, a...)
}

func isError(obj object.Object) bool {
	return object.IsError(obj)
}

// Eval evaluates node in env. Statements return nil on success; values are
// returned for expressions. Failures come back as *object.Error.
func Eval(node ast.Node, env *object.Environment) object.Object {
	return EvalWithBudget(node, env, DefaultLoopBudget)
}

// EvalWithBudget is Eval with an explicit loop iteration budget.
func EvalWithBudget(node ast.Node, env *object.Environment, budget int) object.Object {
	e := &evaluator{budget: budget}
	return e.eval(node, env)
}

func (e *evaluator) eval(node ast.Node, env *object.Environment) object.Object {
	switch node := node.(type) {
	case *ast.Program:
		return e.evalProgram(node, env)
	case ast.Statement:
		return e.evalStatement(node, env)
	case ast.Expression:
		return evalExpression(node, env)
	case ast.BoolExpression:
		ok, err := evalCondition(node, env)
		if err != nil {
			return err
		}
		if ok {
			return &object.Integer{Value: 1}
		}
		return &object.Integer{Value: 0}
	default:
		return newError("cannot evaluate %T", node)
	}
}

func evalExpression(node ast.Expression, env *object.Environment) object.Object {
	switch node := node.(type) {
	case *ast.NumberLiteral:
		if node.Kind == typesys.Float {
			return &object.Float{Value: node.Float}
		}
		return &object.Integer{Value: node.Int}

	case *ast.Identifier:
		return evalIdentifier(node, env)

	case *ast.InfixExpression:
		left := evalExpression(node.Left, env)
		if isError(left) {
			return left
		}
		right := evalExpression(node.Right, env)
		if isError(right) {
			return right
		}
		return annotateErrorWithNode(object.Arith(node.Operator.String(), left, right), node)

	default:
		return newError("unknown expression: %T", node)
	}
}

// evalIdentifier looks up a variable in the environment
func evalIdentifier(node *ast.Identifier, env *object.Environment) object.Object {
	val, ok := env.Get(node.Value)
	if !ok {
		return annotateErrorWithNode(newError("identifier not found: %s", node.Value), node)
	}
	return val
}

// evalCondition decides a boolean expression. && and || short-circuit.
func evalCondition(node ast.BoolExpression, env *object.Environment) (bool, *object.Error) {
	switch node := node.(type) {
	case *ast.RelationalExpression:
		left := evalExpression(node.Left, env)
		if err, ok := left.(*object.Error); ok {
			return false, err
		}
		right := evalExpression(node.Right, env)
		if err, ok := right.(*object.Error); ok {
			return false, err
		}
		return object.Compare(node.Operator.String(), left, right)

	case *ast.AndExpression:
		ok, err := evalCondition(node.Left, env)
		if err != nil || !ok {
			return false, err
		}
		return evalCondition(node.Right, env)

	case *ast.OrExpression:
		ok, err := evalCondition(node.Left, env)
		if err != nil || ok {
			return ok, err
		}
		return evalCondition(node.Right, env)

	case *ast.NotExpression:
		ok, err := evalCondition(node.Operand, env)
		return !ok, err

	default:
		return false, newError("unknown condition: %T", node)
	}
}
