package codegen

import (
	"tacgen/internal/ast"
	"tacgen/internal/tac"
)

// GenerateStmt emits the code for s.
func (g *Generator) GenerateStmt(s ast.Statement) error {
	switch s := s.(type) {
	case *ast.AssignStatement:
		return g.assign(s)

	case *ast.IfStatement:
		if s == nil {
			return internalf(nil, "nil if statement")
		}
		if s.Alternative == nil {
			return internalf(s, "if statement without else branch")
		}
		elseLabel := g.names.NewLabel()
		exit := g.names.NewLabel()
		if err := g.GenerateJump(s.Condition, tac.FallThrough, elseLabel); err != nil {
			return err
		}
		if err := g.GenerateStmt(s.Consequence); err != nil {
			return err
		}
		g.emit(tac.Goto{Target: exit})
		g.emit(tac.LabelDef{Label: elseLabel})
		if err := g.GenerateStmt(s.Alternative); err != nil {
			return err
		}
		g.emit(tac.LabelDef{Label: exit})
		return nil

	case *ast.WhileStatement:
		if s == nil {
			return internalf(nil, "nil while statement")
		}
		return g.loop(s.Condition, s.Body, nil)

	case *ast.ForStatement:
		if s == nil {
			return internalf(nil, "nil for statement")
		}
		if s.Init == nil || s.Periodic == nil {
			return internalf(s, "for statement without init or step")
		}
		if err := g.assign(s.Init); err != nil {
			return err
		}
		return g.loop(s.Condition, s.Body, s.Periodic)

	case *ast.BlockStatement:
		if s == nil {
			return internalf(nil, "nil block")
		}
		for _, stmt := range s.Statements {
			if err := g.GenerateStmt(stmt); err != nil {
				return err
			}
		}
		return nil

	case nil:
		return internalf(nil, "missing statement")

	default:
		return internalf(s, "unsupported statement %T", s)
	}
}

func (g *Generator) assign(s *ast.AssignStatement) error {
	if s == nil || s.Name == nil {
		return internalf(nil, "assignment without target")
	}
	t, err := g.GenerateExpr(s.Value)
	if err != nil {
		return err
	}
	g.emit(tac.Store{Name: s.Name.Value, Src: t})
	return nil
}

// loop emits the shared while/for shape:
//
//	labelC:
//	  <cond jumps to labelE when false>
//	  <body>
//	  <step>
//	  goto labelC
//	labelE:
func (g *Generator) loop(cond ast.BoolExpression, body ast.Statement, step *ast.AssignStatement) error {
	top := g.names.NewLabel()
	exit := g.names.NewLabel()
	g.emit(tac.LabelDef{Label: top})
	if err := g.GenerateJump(cond, tac.FallThrough, exit); err != nil {
		return err
	}
	if err := g.GenerateStmt(body); err != nil {
		return err
	}
	if step != nil {
		if err := g.assign(step); err != nil {
			return err
		}
	}
	g.emit(tac.Goto{Target: top})
	g.emit(tac.LabelDef{Label: exit})
	return nil
}
