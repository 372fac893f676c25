package codegen_test

import (
	"fmt"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tacgen/internal/ast"
	"tacgen/internal/codegen"
	"tacgen/internal/interp"
	"tacgen/internal/object"
	"tacgen/internal/tac"
	"tacgen/internal/typesys"
)

const ft = tac.FallThrough

func jumpLines(b ast.BoolExpression, t, f tac.Label) []string {
	buf := &tac.Buffer{}
	g := codegen.New(buf)
	Expect(g.GenerateJump(b, t, f)).To(Succeed())
	return buf.Lines()
}

var (
	aLTb = rel(ast.LT, id("a"), id("b"))
	cGEd = rel(ast.GE, id("c"), id("d"))
	aEQc = rel(ast.EQ, id("a"), id("c"))
)

var _ = Describe("GenerateJump", func() {
	Context("with both targets falling through", func() {
		var mockCtrl *gomock.Controller

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		DescribeTable("emits nothing",
			func(b ast.BoolExpression) {
				sink := NewMockSink(mockCtrl)
				g := codegen.New(sink)
				Expect(g.GenerateJump(b, ft, ft)).To(Succeed())
				Expect(g.Names().Labels()).To(BeZero())
				Expect(g.Names().Temps()).To(BeZero())
			},
			Entry("relational", aLTb),
			Entry("or", or(aLTb, cGEd)),
			Entry("and", and(aLTb, cGEd)),
			Entry("not", not(aLTb)),
			Entry("nested", not(or(and(aLTb, cGEd), not(aEQc)))),
		)
	})

	Context("on a relational node", func() {
		It("should emit ifFalse when true falls through", func() {
			Expect(jumpLines(aLTb, ft, 7)).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"ifFalse _t1 < _t2 goto label7",
			}))
		})

		It("should emit if when false falls through", func() {
			Expect(jumpLines(cGEd, 3, ft)).To(Equal([]string{
				"_t1 = c",
				"_t2 = d",
				"if _t1 >= _t2 goto label3",
			}))
		})

		It("should emit if and goto when neither falls through", func() {
			Expect(jumpLines(aEQc, 3, 4)).To(Equal([]string{
				"_t1 = a",
				"_t2 = c",
				"if _t1 == _t2 goto label3",
				"goto label4",
			}))
		})

		It("should report an invalid relational operator", func() {
			g := codegen.New(&tac.Buffer{})
			err := g.GenerateJump(rel(ast.RelOp(-2), id("a"), id("b")), ft, 1)
			Expect(codegen.IsInternal(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("invalid relational operator RelOp(-2)"))
		})
	})

	Context("on an or node", func() {
		It("should land a fresh label after the right operand when true falls through", func() {
			lines := jumpLines(or(aLTb, cGEd), ft, 9)

			Expect(lines).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"if _t1 < _t2 goto label1",
				"_t3 = c",
				"_t4 = d",
				"ifFalse _t3 >= _t4 goto label9",
				"label1:",
			}))
			for _, line := range lines {
				Expect(line).NotTo(HavePrefix("goto"))
			}
		})

		It("should reuse the true label when one is given", func() {
			Expect(jumpLines(or(aLTb, cGEd), 5, 6)).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"if _t1 < _t2 goto label5",
				"_t3 = c",
				"_t4 = d",
				"if _t3 >= _t4 goto label5",
				"goto label6",
			}))
		})
	})

	Context("on an and node", func() {
		It("should send both operands to the false label when true falls through", func() {
			Expect(jumpLines(and(aLTb, cGEd), ft, 4)).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"ifFalse _t1 < _t2 goto label4",
				"_t3 = c",
				"_t4 = d",
				"ifFalse _t3 >= _t4 goto label4",
			}))
		})

		It("should land a fresh label after the right operand when false falls through", func() {
			Expect(jumpLines(and(aLTb, cGEd), 8, ft)).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"ifFalse _t1 < _t2 goto label1",
				"_t3 = c",
				"_t4 = d",
				"if _t3 >= _t4 goto label8",
				"label1:",
			}))
		})

		It("should only let a true left operand reach the right one", func() {
			Expect(jumpLines(and(aLTb, cGEd), 5, 6)).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"ifFalse _t1 < _t2 goto label6",
				"_t3 = c",
				"_t4 = d",
				"if _t3 >= _t4 goto label5",
				"goto label6",
			}))
		})
	})

	Context("on a not node", func() {
		pairs := [][2]tac.Label{{ft, 3}, {3, ft}, {3, 4}}
		conds := []ast.BoolExpression{
			aLTb,
			or(aLTb, cGEd),
			and(aLTb, not(cGEd)),
			not(or(aEQc, and(aLTb, cGEd))),
		}

		It("should match the operand with swapped labels", func() {
			for _, b := range conds {
				for _, p := range pairs {
					Expect(jumpLines(not(b), p[0], p[1])).To(Equal(jumpLines(b, p[1], p[0])),
						fmt.Sprintf("%s with (%s, %s)", b, p[0], p[1]))
				}
			}
		})
	})

	It("should report a missing condition", func() {
		g := codegen.New(&tac.Buffer{})
		Expect(codegen.IsInternal(g.GenerateJump(nil, ft, 1))).To(BeTrue())
		Expect(codegen.IsInternal(g.GenerateJump(or(nil, aLTb), 1, 2))).To(BeTrue())
	})
})

// runJump lays out the jump code of b between three landing pads and
// reports which one control reached: 1 for true, 0 for false. A label
// given as FallThrough lands in the fall-through pad instead; code that
// falls through when neither label is FallThrough is caught with 99.
func runJump(b ast.BoolExpression, trueFalls, falseFalls bool, vars map[string]int64) int64 {
	buf := &tac.Buffer{}
	g := codegen.New(buf)
	names := g.Names()

	t, f := names.NewLabel(), names.NewLabel()
	end := names.NewLabel()
	jt, jf := t, f
	fallValue := int64(99)
	if trueFalls {
		jt, fallValue = ft, 1
	}
	if falseFalls {
		jf, fallValue = ft, 0
	}
	Expect(g.GenerateJump(b, jt, jf)).To(Succeed())

	pad := func(v int64) {
		tmp := names.NewTemp()
		buf.Emit(tac.Const{Dst: tmp, Kind: typesys.Int, Int: v})
		buf.Emit(tac.Store{Name: "r", Src: tmp})
		buf.Emit(tac.Goto{Target: end})
	}
	pad(fallValue)
	buf.Emit(tac.LabelDef{Label: t})
	pad(1)
	buf.Emit(tac.LabelDef{Label: f})
	pad(0)
	buf.Emit(tac.LabelDef{Label: end})

	env := object.NewEnvironment()
	for name, v := range vars {
		env.Set(name, &object.Integer{Value: v})
	}
	Expect(interp.Run(buf.Instrs(), env, interp.WithStepLimit(1000))).To(Succeed())
	r, ok := env.Get("r")
	Expect(ok).To(BeTrue())
	return r.(*object.Integer).Value
}

func holds(b ast.BoolExpression, vars map[string]int64) int64 {
	switch b := b.(type) {
	case *ast.RelationalExpression:
		l, r := vars[b.Left.(*ast.Identifier).Value], vars[b.Right.(*ast.Identifier).Value]
		var ok bool
		switch b.Operator {
		case ast.LT:
			ok = l < r
		case ast.GE:
			ok = l >= r
		case ast.EQ:
			ok = l == r
		}
		if ok {
			return 1
		}
		return 0
	case *ast.OrExpression:
		return holds(b.Left, vars) | holds(b.Right, vars)
	case *ast.AndExpression:
		return holds(b.Left, vars) & holds(b.Right, vars)
	case *ast.NotExpression:
		return 1 - holds(b.Operand, vars)
	}
	Fail(fmt.Sprintf("unexpected condition %T", b))
	return -1
}

var _ = Describe("GenerateJump semantics", func() {
	conds := []ast.BoolExpression{
		aLTb,
		not(aLTb),
		or(aLTb, cGEd),
		and(aLTb, cGEd),
		or(and(aLTb, cGEd), aEQc),
		and(or(aLTb, cGEd), not(aEQc)),
		not(and(not(aLTb), or(cGEd, aEQc))),
	}
	modes := []struct {
		name                  string
		trueFalls, falseFalls bool
	}{
		{"true falls through", true, false},
		{"false falls through", false, true},
		{"explicit labels", false, false},
	}

	for _, mode := range modes {
		mode := mode
		It("should branch like the condition evaluates when "+mode.name, func() {
			for _, b := range conds {
				for a := int64(0); a < 2; a++ {
					for bv := int64(0); bv < 2; bv++ {
						for c := int64(0); c < 2; c++ {
							vars := map[string]int64{"a": a, "b": bv, "c": c, "d": 1}
							Expect(runJump(b, mode.trueFalls, mode.falseFalls, vars)).
								To(Equal(holds(b, vars)), fmt.Sprintf("%s with %v", b, vars))
						}
					}
				}
			}
		})
	}
})
