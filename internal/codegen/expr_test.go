package codegen_test

import (
	"regexp"
	"strconv"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tacgen/internal/ast"
	"tacgen/internal/codegen"
	"tacgen/internal/tac"
	"tacgen/internal/typesys"
)

var targetTemp = regexp.MustCompile(`^_t(\d+) = `)

// targets returns the temporaries assigned by lines, in order.
func targets(lines []string) []int {
	var out []int
	for _, line := range lines {
		if m := targetTemp.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			out = append(out, n)
		}
	}
	return out
}

var _ = Describe("NameAllocator", func() {
	It("should count temps and labels independently from 1", func() {
		var na codegen.NameAllocator
		Expect(na.NewTemp()).To(Equal(tac.Temp(1)))
		Expect(na.NewTemp()).To(Equal(tac.Temp(2)))
		Expect(na.NewLabel()).To(Equal(tac.Label(1)))
		Expect(na.NewTemp()).To(Equal(tac.Temp(3)))
		Expect(na.NewLabel()).To(Equal(tac.Label(2)))
		Expect(na.Temps()).To(Equal(3))
		Expect(na.Labels()).To(Equal(2))
	})

	It("should restart both sequences on Reset", func() {
		var na codegen.NameAllocator
		na.NewTemp()
		na.NewLabel()
		na.Reset()
		Expect(na.NewTemp()).To(Equal(tac.Temp(1)))
		Expect(na.NewLabel()).To(Equal(tac.Label(1)))
	})
})

var _ = Describe("GenerateExpr", func() {
	var (
		buf *tac.Buffer
		g   *codegen.Generator
	)

	BeforeEach(func() {
		buf = &tac.Buffer{}
		g = codegen.New(buf)
	})

	It("should load an int identifier and add a literal", func() {
		t, err := g.GenerateExpr(bin(ast.Add, id("a"), num(5)))

		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(tac.Temp(3)))
		Expect(buf.Lines()).To(Equal([]string{
			"_t1 = a",
			"_t2 = 5",
			"_t3 = _t1 + _t2",
		}))
	})

	It("should print floats with two decimals", func() {
		_, err := g.GenerateExpr(flt(2.5))
		Expect(err).NotTo(HaveOccurred())
		_, err = g.GenerateExpr(num(-12))
		Expect(err).NotTo(HaveOccurred())
		Expect(buf.Lines()).To(Equal([]string{"_t1 = 2.50", "_t2 = -12"}))
	})

	DescribeTable("operator spelling follows the operand type",
		func(op ast.ArithOp, l, r ast.Expression, want string) {
			_, err := g.GenerateExpr(bin(op, l, r))
			Expect(err).NotTo(HaveOccurred())
			Expect(buf.Lines()[2]).To(Equal("_t3 = _t1 " + want + " _t2"))
		},
		Entry("int +", ast.Add, id("a"), id("b"), "+"),
		Entry("int -", ast.Sub, id("a"), num(1), "-"),
		Entry("int *", ast.Mul, num(2), id("b"), "*"),
		Entry("int /", ast.Div, id("a"), id("b"), "/"),
		Entry("float plus", ast.Add, fid("f"), fid("g"), "plus"),
		Entry("float minus", ast.Sub, fid("f"), num(1), "minus"),
		Entry("float mul", ast.Mul, id("a"), flt(0.5), "mul"),
		Entry("float div", ast.Div, flt(1), id("b"), "div"),
		Entry("one known operand is enough", ast.Add, untyped("u"), fid("f"), "plus"),
	)

	It("should generate the left subtree before the right one", func() {
		expr := bin(ast.Add, bin(ast.Mul, id("a"), id("b")), bin(ast.Sub, id("c"), num(4)))

		t, err := g.GenerateExpr(expr)
		Expect(err).NotTo(HaveOccurred())
		Expect(t).To(Equal(tac.Temp(7)))
		Expect(buf.Lines()).To(Equal([]string{
			"_t1 = a",
			"_t2 = b",
			"_t3 = _t1 * _t2",
			"_t4 = c",
			"_t5 = 4",
			"_t6 = _t4 - _t5",
			"_t7 = _t3 + _t6",
		}))
	})

	It("should assign strictly increasing temporaries", func() {
		expr := bin(ast.Div,
			bin(ast.Sub, num(1), bin(ast.Mul, id("x"), id("y"))),
			bin(ast.Add, bin(ast.Add, id("p"), num(2)), id("q")))

		_, err := g.GenerateExpr(expr)
		Expect(err).NotTo(HaveOccurred())
		ts := targets(buf.Lines())
		Expect(ts).To(HaveLen(11))
		for i := range ts {
			Expect(ts[i]).To(Equal(i + 1))
		}
	})

	It("should leave the tree untouched so it can be generated again", func() {
		expr := bin(ast.Add, id("a"), num(1))
		before := expr.String()

		_, err := g.GenerateExpr(expr)
		Expect(err).NotTo(HaveOccurred())
		first := buf.Lines()

		g.Names().Reset()
		buf.Reset()
		_, err = g.GenerateExpr(expr)
		Expect(err).NotTo(HaveOccurred())

		Expect(buf.Lines()).To(Equal(first))
		Expect(expr.String()).To(Equal(before))
	})
})

var _ = Describe("GenerateExpr internal errors", func() {
	var (
		mockCtrl *gomock.Controller
		sink     *MockSink
		g        *codegen.Generator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sink = NewMockSink(mockCtrl)
		g = codegen.New(sink)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should stop at an operator outside the enumeration", func() {
		gomock.InOrder(
			sink.EXPECT().Emit(tac.Copy{Dst: 1, Name: "a"}),
			sink.EXPECT().Emit(tac.Const{Dst: 2, Kind: typesys.Int, Int: 1}),
		)

		_, err := g.GenerateExpr(bin(ast.ArithOp(42), id("a"), num(1)))

		Expect(err).To(HaveOccurred())
		Expect(codegen.IsInternal(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("invalid arithmetic operator ArithOp(42)"))
	})

	It("should stop when no operand type is known", func() {
		gomock.InOrder(
			sink.EXPECT().Emit(tac.Copy{Dst: 1, Name: "u"}),
			sink.EXPECT().Emit(tac.Copy{Dst: 2, Name: "v"}),
		)

		_, err := g.GenerateExpr(bin(ast.Add, untyped("u"), untyped("v")))

		var ie *codegen.InternalError
		Expect(err).To(BeAssignableToTypeOf(ie))
		Expect(err.Error()).To(Equal("internal compiler error: operands of + have no known type (at `(u + v)`)"))
	})

	It("should reject a missing operand without emitting", func() {
		_, err := g.GenerateExpr(bin(ast.Add, nil, num(1)))
		Expect(codegen.IsInternal(err)).To(BeTrue())
	})

	It("should reject a literal without a kind", func() {
		_, err := g.GenerateExpr(&ast.NumberLiteral{Int: 3})
		Expect(err).To(MatchError(ContainSubstring("number literal without a kind")))
	})
})
