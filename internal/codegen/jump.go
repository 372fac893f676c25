package codegen

import (
	"tacgen/internal/ast"
	"tacgen/internal/tac"
)

// GenerateJump emits code that transfers control to t when b holds and to
// f otherwise. Either label may be tac.FallThrough, in which case control
// continues after the emitted code for that outcome. When both are
// FallThrough nothing is emitted. New labels are only allocated when a
// short-circuit needs a join point that neither t nor f provides.
func (g *Generator) GenerateJump(b ast.BoolExpression, t, f tac.Label) error {
	if t.IsFallThrough() && f.IsFallThrough() {
		return nil
	}

	switch b := b.(type) {
	case *ast.RelationalExpression:
		if b == nil {
			return internalf(nil, "nil relational expression")
		}
		return g.relationalJump(b, t, f)

	case *ast.OrExpression:
		if b == nil {
			return internalf(nil, "nil || expression")
		}
		if t.IsFallThrough() {
			// left true must skip right; give it a label after both.
			out := g.names.NewLabel()
			if err := g.GenerateJump(b.Left, out, tac.FallThrough); err != nil {
				return err
			}
			if err := g.GenerateJump(b.Right, tac.FallThrough, f); err != nil {
				return err
			}
			g.emit(tac.LabelDef{Label: out})
			return nil
		}
		if err := g.GenerateJump(b.Left, t, tac.FallThrough); err != nil {
			return err
		}
		return g.GenerateJump(b.Right, t, f)

	case *ast.AndExpression:
		if b == nil {
			return internalf(nil, "nil && expression")
		}
		if f.IsFallThrough() {
			// left false must skip right.
			out := g.names.NewLabel()
			if err := g.GenerateJump(b.Left, tac.FallThrough, out); err != nil {
				return err
			}
			if err := g.GenerateJump(b.Right, t, tac.FallThrough); err != nil {
				return err
			}
			g.emit(tac.LabelDef{Label: out})
			return nil
		}
		// Left gets (FallThrough, f), not (t, f): with a real t, jumping
		// to t on a true left would skip right. For the (FallThrough, f)
		// pairs statements pass, both lowerings emit the same code.
		if err := g.GenerateJump(b.Left, tac.FallThrough, f); err != nil {
			return err
		}
		return g.GenerateJump(b.Right, t, f)

	case *ast.NotExpression:
		if b == nil {
			return internalf(nil, "nil ! expression")
		}
		return g.GenerateJump(b.Operand, f, t)

	case nil:
		return internalf(nil, "missing condition")

	default:
		return internalf(b, "unsupported condition %T", b)
	}
}

func (g *Generator) relationalJump(b *ast.RelationalExpression, t, f tac.Label) error {
	left, err := g.GenerateExpr(b.Left)
	if err != nil {
		return err
	}
	right, err := g.GenerateExpr(b.Right)
	if err != nil {
		return err
	}
	if !b.Operator.Valid() {
		return internalf(b, "invalid relational operator %s", b.Operator)
	}
	op := b.Operator.String()

	switch {
	case t.IsFallThrough():
		g.emit(tac.CondJump{Negated: true, Left: left, Right: right, Op: op, Target: f})
	case f.IsFallThrough():
		g.emit(tac.CondJump{Left: left, Right: right, Op: op, Target: t})
	default:
		g.emit(tac.CondJump{Left: left, Right: right, Op: op, Target: t})
		g.emit(tac.Goto{Target: f})
	}
	return nil
}
