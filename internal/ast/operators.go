package ast

import "fmt"

// ArithOp is the operator of an InfixExpression.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

var arithSpellings = [...]string{Add: "+", Sub: "-", Mul: "*", Div: "/"}

// Valid reports whether op is one of the four arithmetic operators.
// An invalid op can only come from an AST built outside the parser.
func (op ArithOp) Valid() bool { return op >= Add && op <= Div }

func (op ArithOp) String() string {
	if !op.Valid() {
		return fmt.Sprintf("ArithOp(%d)", int(op))
	}
	return arithSpellings[op]
}

func LookupArithOp(s string) (ArithOp, bool) {
	for op, spelling := range arithSpellings {
		if spelling == s {
			return ArithOp(op), true
		}
	}
	return 0, false
}

// RelOp is the operator of a RelationalExpression.
type RelOp int

const (
	LT RelOp = iota
	GT
	LE
	GE
	EQ
	NE
)

var relSpellings = [...]string{LT: "<", GT: ">", LE: "<=", GE: ">=", EQ: "==", NE: "!="}

func (op RelOp) Valid() bool { return op >= LT && op <= NE }

func (op RelOp) String() string {
	if !op.Valid() {
		return fmt.Sprintf("RelOp(%d)", int(op))
	}
	return relSpellings[op]
}

func LookupRelOp(s string) (RelOp, bool) {
	for op, spelling := range relSpellings {
		if spelling == s {
			return RelOp(op), true
		}
	}
	return 0, false
}
