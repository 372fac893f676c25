package tac_test

import (
	"bytes"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tacgen/internal/tac"
	"tacgen/internal/typesys"
)

var _ = Describe("Instr", func() {
	DescribeTable("renders one line",
		func(in tac.Instr, want string) {
			Expect(in.String()).To(Equal(want))
		},
		Entry("int const", tac.Const{Dst: 1, Kind: typesys.Int, Int: 42}, "_t1 = 42"),
		Entry("negative int const", tac.Const{Dst: 2, Kind: typesys.Int, Int: -7}, "_t2 = -7"),
		Entry("float const", tac.Const{Dst: 3, Kind: typesys.Float, Float: 2.5}, "_t3 = 2.50"),
		Entry("float const rounds", tac.Const{Dst: 3, Kind: typesys.Float, Float: 0.126}, "_t3 = 0.13"),
		Entry("copy", tac.Copy{Dst: 4, Name: "x"}, "_t4 = x"),
		Entry("binary int", tac.Binary{Dst: 3, Left: 1, Right: 2, Op: "+"}, "_t3 = _t1 + _t2"),
		Entry("binary float", tac.Binary{Dst: 3, Left: 1, Right: 2, Op: "mul"}, "_t3 = _t1 mul _t2"),
		Entry("store", tac.Store{Name: "y", Src: 9}, "y = _t9"),
		Entry("if", tac.CondJump{Left: 1, Right: 2, Op: "<", Target: 3}, "if _t1 < _t2 goto label3"),
		Entry("ifFalse", tac.CondJump{Negated: true, Left: 1, Right: 2, Op: "!=", Target: 1}, "ifFalse _t1 != _t2 goto label1"),
		Entry("goto", tac.Goto{Target: 7}, "goto label7"),
		Entry("label", tac.LabelDef{Label: 7}, "label7:"),
	)

	It("should recognise the fall-through label", func() {
		Expect(tac.FallThrough.IsFallThrough()).To(BeTrue())
		Expect(tac.Label(1).IsFallThrough()).To(BeFalse())
		Expect(int(tac.FallThrough)).To(Equal(-1))
	})
})

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("disk full")
}

var _ = Describe("Writer", func() {
	It("should write lines in emission order", func() {
		var out bytes.Buffer
		w := tac.NewWriter(&out)
		w.Emit(tac.LabelDef{Label: 1})
		w.Emit(tac.Goto{Target: 1})

		Expect(w.Flush()).To(Succeed())
		Expect(out.String()).To(Equal("label1:\ngoto label1\n"))
		Expect(w.Count()).To(Equal(2))
	})

	It("should keep the first write error", func() {
		fw := &failingWriter{}
		w := tac.NewWriter(fw)
		w.Emit(tac.Goto{Target: 1})

		err := w.Flush()
		Expect(err).To(MatchError("disk full"))
		w.Emit(tac.Goto{Target: 2})
		Expect(w.Flush()).To(MatchError("disk full"))
		Expect(fw.calls).To(Equal(1))
	})
})

var _ = Describe("Buffer", func() {
	var buf *tac.Buffer

	BeforeEach(func() {
		buf = &tac.Buffer{}
	})

	It("should start empty", func() {
		Expect(buf.Len()).To(BeZero())
		Expect(buf.String()).To(BeEmpty())
	})

	It("should record instructions and render them", func() {
		buf.Emit(tac.Copy{Dst: 1, Name: "a"})
		buf.Emit(tac.Store{Name: "b", Src: 1})

		Expect(buf.Instrs()).To(HaveLen(2))
		Expect(buf.Lines()).To(Equal([]string{"_t1 = a", "b = _t1"}))

		var out bytes.Buffer
		n, err := buf.WriteTo(&out)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("_t1 = a\nb = _t1\n"))
		Expect(n).To(Equal(int64(out.Len())))
	})

	It("should report the first write error from WriteTo", func() {
		buf.Emit(tac.Goto{Target: 1})
		buf.Emit(tac.LabelDef{Label: 1})

		fw := &failingWriter{}
		n, err := buf.WriteTo(fw)
		Expect(err).To(MatchError("disk full"))
		Expect(n).To(BeZero())
		Expect(fw.calls).To(Equal(1))
	})

	It("should forget everything on Reset", func() {
		buf.Emit(tac.Goto{Target: 1})
		buf.Reset()
		Expect(buf.Len()).To(BeZero())
	})
})
