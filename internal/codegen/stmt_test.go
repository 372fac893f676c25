package codegen_test

import (
	"bytes"
	"errors"
	"log/slog"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tacgen/internal/ast"
	"tacgen/internal/codegen"
	"tacgen/internal/tac"
	"tacgen/internal/typesys"
)

func stmtLines(s ast.Statement) ([]string, *codegen.Generator) {
	buf := &tac.Buffer{}
	g := codegen.New(buf)
	Expect(g.GenerateStmt(s)).To(Succeed())
	return buf.Lines(), g
}

var _ = Describe("GenerateStmt", func() {
	It("should store a literal into the target", func() {
		lines, _ := stmtLines(assign("x", num(3)))
		Expect(lines).To(Equal([]string{"_t1 = 3", "x = _t1"}))
	})

	It("should emit assignments in call order", func() {
		mockCtrl := gomock.NewController(GinkgoT())
		defer mockCtrl.Finish()
		sink := NewMockSink(mockCtrl)

		gomock.InOrder(
			sink.EXPECT().Emit(tac.Const{Dst: 1, Kind: typesys.Float, Float: 1.5}),
			sink.EXPECT().Emit(tac.Store{Name: "x", Src: 1}),
			sink.EXPECT().Emit(tac.Copy{Dst: 2, Name: "x"}),
			sink.EXPECT().Emit(tac.Store{Name: "y", Src: 2}),
		)

		g := codegen.New(sink)
		Expect(g.GenerateStmt(block(assign("x", flt(1.5)), assign("y", id("x"))))).To(Succeed())
	})

	Context("on an if statement", func() {
		It("should lay out then, else and exit", func() {
			lines, g := stmtLines(ifElse(aLTb, assign("x", num(1)), assign("x", num(2))))

			Expect(lines).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"ifFalse _t1 < _t2 goto label1",
				"_t3 = 1",
				"x = _t3",
				"goto label2",
				"label1:",
				"_t4 = 2",
				"x = _t4",
				"label2:",
			}))
			Expect(g.Names().Labels()).To(Equal(2))
		})

		It("should allocate else and exit before the condition's own labels", func() {
			lines, g := stmtLines(ifElse(or(aLTb, cGEd), block(), block()))

			Expect(lines).To(Equal([]string{
				"_t1 = a",
				"_t2 = b",
				"if _t1 < _t2 goto label3",
				"_t3 = c",
				"_t4 = d",
				"ifFalse _t3 >= _t4 goto label1",
				"label3:",
				"goto label2",
				"label1:",
				"label2:",
			}))
			Expect(g.Names().Labels()).To(Equal(3))
		})

		It("should allocate two labels for an and condition", func() {
			_, g := stmtLines(ifElse(and(aLTb, and(cGEd, not(aEQc))), block(), block()))
			Expect(g.Names().Labels()).To(Equal(2))
		})

		It("should refuse an if without else", func() {
			g := codegen.New(&tac.Buffer{})
			err := g.GenerateStmt(&ast.IfStatement{Condition: aLTb, Consequence: block()})
			Expect(codegen.IsInternal(err)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("if statement without else branch"))
		})

		It("should print missing children as <nil> in the error context", func() {
			g := codegen.New(&tac.Buffer{})
			err := g.GenerateStmt(&ast.ForStatement{Condition: aLTb, Body: block()})
			Expect(err).To(MatchError("internal compiler error: for statement without init or step (at `for (<nil> a < b; <nil>) { }`)"))
		})
	})

	It("should put the loop label before the condition of a while", func() {
		lines, _ := stmtLines(while(rel(ast.LT, id("i"), num(10)), assign("i", bin(ast.Add, id("i"), num(1)))))

		Expect(lines).To(Equal([]string{
			"label1:",
			"_t1 = i",
			"_t2 = 10",
			"ifFalse _t1 < _t2 goto label2",
			"_t3 = i",
			"_t4 = 1",
			"_t5 = _t3 + _t4",
			"i = _t5",
			"goto label1",
			"label2:",
		}))
	})

	It("should run init once and the step after the body of a for", func() {
		lines, _ := stmtLines(forLoop(
			assign("i", num(0)),
			rel(ast.LT, id("i"), id("n")),
			assign("i", bin(ast.Add, id("i"), num(1))),
			assign("s", bin(ast.Add, id("s"), id("i"))),
		))

		Expect(lines).To(Equal([]string{
			"_t1 = 0",
			"i = _t1",
			"label1:",
			"_t2 = i",
			"_t3 = n",
			"ifFalse _t2 < _t3 goto label2",
			"_t4 = s",
			"_t5 = i",
			"_t6 = _t4 + _t5",
			"s = _t6",
			"_t7 = i",
			"_t8 = 1",
			"_t9 = _t7 + _t8",
			"i = _t9",
			"goto label1",
			"label2:",
		}))
	})

	It("should emit nothing for an empty block", func() {
		lines, g := stmtLines(block())
		Expect(lines).To(BeEmpty())
		Expect(g.Names().Labels()).To(BeZero())
	})

	It("should generate nested statements in order", func() {
		lines, _ := stmtLines(block(
			assign("a", num(1)),
			block(assign("b", num(2)), block()),
			assign("c", num(3)),
		))
		Expect(lines).To(Equal([]string{
			"_t1 = 1", "a = _t1",
			"_t2 = 2", "b = _t2",
			"_t3 = 3", "c = _t3",
		}))
	})

	It("should stop at the first internal error", func() {
		buf := &tac.Buffer{}
		g := codegen.New(buf)
		err := g.GenerateStmt(block(
			assign("a", num(1)),
			assign("b", bin(ast.ArithOp(9), num(1), num(2))),
			assign("c", num(3)),
		))

		Expect(codegen.IsInternal(err)).To(BeTrue())
		Expect(buf.Lines()).To(Equal([]string{"_t1 = 1", "a = _t1", "_t2 = 1", "_t3 = 2"}))
	})

	It("should wrap cleanly with errors.As", func() {
		g := codegen.New(&tac.Buffer{})
		err := g.GenerateStmt(nil)

		var ie *codegen.InternalError
		Expect(errors.As(err, &ie)).To(BeTrue())
		Expect(ie.Message).To(Equal("missing statement"))
	})
})

var _ = Describe("Generate", func() {
	prog := &ast.Program{
		Declarations: []*ast.Declaration{{Type: typesys.Int, Names: []*ast.Identifier{id("a"), id("x")}}},
		Body: block(
			ifElse(aLTb, assign("x", num(1)), block()),
			while(rel(ast.GT, id("a"), num(0)), assign("a", bin(ast.Sub, id("a"), num(1)))),
		),
	}

	It("should restart temporaries and labels for every program", func() {
		buf := &tac.Buffer{}
		g := codegen.New(buf)

		Expect(g.Generate(prog)).To(Succeed())
		first := buf.Lines()
		buf.Reset()
		Expect(g.Generate(prog)).To(Succeed())

		Expect(buf.Lines()).To(Equal(first))
		Expect(first[0]).To(Equal("_t1 = a"))
	})

	It("should write text through a Writer sink", func() {
		var out bytes.Buffer
		w := tac.NewWriter(&out)
		Expect(codegen.New(w).Generate(prog)).To(Succeed())
		Expect(w.Flush()).To(Succeed())

		buf := &tac.Buffer{}
		Expect(codegen.New(buf).Generate(prog)).To(Succeed())
		Expect(out.String()).To(Equal(buf.String()))
	})

	It("should keep independent generators apart", func() {
		b1, b2 := &tac.Buffer{}, &tac.Buffer{}
		g1, g2 := codegen.New(b1), codegen.New(b2)

		Expect(g1.GenerateStmt(assign("x", num(1)))).To(Succeed())
		Expect(g2.GenerateStmt(assign("y", num(2)))).To(Succeed())

		Expect(b1.Lines()).To(Equal([]string{"_t1 = 1", "x = _t1"}))
		Expect(b2.Lines()).To(Equal([]string{"_t1 = 2", "y = _t1"}))
	})

	It("should log a summary at debug level", func() {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

		Expect(codegen.New(&tac.Buffer{}, codegen.WithLogger(logger)).Generate(prog)).To(Succeed())
		Expect(logs.String()).To(ContainSubstring("generated program"))
		Expect(logs.String()).To(ContainSubstring("labels=4"))
	})

	It("should refuse a program without a body", func() {
		err := codegen.New(&tac.Buffer{}).Generate(&ast.Program{})
		Expect(codegen.IsInternal(err)).To(BeTrue())
	})
})
