package codegen_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tacgen/internal/ast"
	"tacgen/internal/codegen"
	"tacgen/internal/evaluator"
	"tacgen/internal/interp"
	"tacgen/internal/lexer"
	"tacgen/internal/object"
	"tacgen/internal/parser"
	"tacgen/internal/symtab"
	"tacgen/internal/tac"
)

func compile(src string) (*ast.Program, []tac.Instr) {
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	Expect(p.Errors()).To(BeEmpty())
	_, errs := symtab.Resolve(prog)
	Expect(errs).To(BeEmpty())

	buf := &tac.Buffer{}
	Expect(codegen.New(buf).Generate(prog)).To(Succeed())
	return prog, buf.Instrs()
}

func declaredEnv(prog *ast.Program) *object.Environment {
	env := object.NewEnvironment()
	for _, d := range prog.Declarations {
		for _, n := range d.Names {
			env.Declare(n.Value, d.Type)
		}
	}
	return env
}

var _ = Describe("Generated programs", func() {
	DescribeTable("run like the source",
		func(src string) {
			prog, code := compile(src)

			want := declaredEnv(prog)
			Expect(evaluator.Eval(prog, want)).To(BeNil())

			got := declaredEnv(prog)
			Expect(interp.Run(code, got)).To(Succeed())

			Expect(got.Snapshot()).To(Equal(want.Snapshot()))
		},
		Entry("arithmetic", `
int a, b, c;
a = 7; b = 3;
c = (a + b) * (a - b) / 2;
`),
		Entry("float arithmetic", `
float x, y; int n;
n = 3;
x = n / 2;
y = n / 2.0 + x * 1.5;
`),
		Entry("if else chain", `
int a, r;
a = 5;
if (a < 3) r = 1; else if (a < 6) r = 2; else r = 3;
`),
		Entry("short circuit guards division", `
int z, r;
if (z != 0 && 10 / z > 1) r = 1; else r = 2;
if (z == 0 || 10 / z > 1) r = r * 10;
if (!(z == 0) || z < 1) r = r + 1;
`),
		Entry("while with compound condition", `
int i, s;
while (i < 100 && !(s >= 50)) { s = s + i; i = i + 1; }
`),
		Entry("nested for loops", `
int i, j, n;
for (i = 0; i < 5; i = i + 1)
  for (j = i; j < 5; j = j + 1)
    if (i == j || j - i >= 3) n = n + 1;
`),
		Entry("gcd", `
int a, b;
a = 1071; b = 462;
while (a != b) {
  if (a > b) a = a - b; else b = b - a;
}
`),
	)

	It("should not depend on source layout", func() {
		_, spaced := compile("int x;\n\nx  =  1 ;\n")
		_, tight := compile("int x;x=1;")
		Expect(spaced).To(Equal(tight))
	})
})
