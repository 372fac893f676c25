package ast

import "tacgen/internal/token"

// RelationalExpression represents <left> <relop> <right>
// It is the only boolean node that evaluates arithmetic operands.
type RelationalExpression struct {
	Token    token.Token
	Operator RelOp
	Left     Expression
	Right    Expression
}

func (re *RelationalExpression) boolExpressionNode()  {}
func (re *RelationalExpression) TokenLiteral() string { return re.Token.Literal }
func (re *RelationalExpression) String() string {
	if re == nil {
		return "<nil>"
	}
	return str(re.Left) + " " + re.Operator.String() + " " + str(re.Right)
}

// OrExpression represents <left> || <right>
type OrExpression struct {
	Token token.Token
	Left  BoolExpression
	Right BoolExpression
}

func (oe *OrExpression) boolExpressionNode()  {}
func (oe *OrExpression) TokenLiteral() string { return oe.Token.Literal }
func (oe *OrExpression) String() string {
	if oe == nil {
		return "<nil>"
	}
	return "(" + str(oe.Left) + " || " + str(oe.Right) + ")"
}

// AndExpression represents <left> && <right>
type AndExpression struct {
	Token token.Token
	Left  BoolExpression
	Right BoolExpression
}

func (ae *AndExpression) boolExpressionNode()  {}
func (ae *AndExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AndExpression) String() string {
	if ae == nil {
		return "<nil>"
	}
	return "(" + str(ae.Left) + " && " + str(ae.Right) + ")"
}

// NotExpression represents !<operand>
type NotExpression struct {
	Token   token.Token
	Operand BoolExpression
}

func (ne *NotExpression) boolExpressionNode()  {}
func (ne *NotExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NotExpression) String() string {
	if ne == nil {
		return "<nil>"
	}
	return "!(" + str(ne.Operand) + ")"
}
