// Package codegen lowers an AST into three-address code.
//
// Arithmetic expressions are evaluated post-order into fresh temporaries.
// Boolean expressions never produce a value; they are compiled to jumps
// towards a true label and a false label, either of which may be
// tac.FallThrough to mean "continue with the next instruction".
package codegen

import (
	"log/slog"

	"tacgen/internal/ast"
	"tacgen/internal/tac"
)

// Generator emits TAC for one program at a time into its sink. It is not
// safe for concurrent use.
type Generator struct {
	sink  tac.Sink
	names NameAllocator
	log   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// New creates a generator writing into sink.
func New(sink tac.Sink, opts ...Option) *Generator {
	g := &Generator{sink: sink, log: slog.Default()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Names exposes the allocator, mainly for callers that mix their own
// emission with generated code.
func (g *Generator) Names() *NameAllocator { return &g.names }

// Generate lowers the body of p. Temporaries and labels restart at 1.
// Generation stops at the first internal error; instructions emitted
// before it have already reached the sink.
func (g *Generator) Generate(p *ast.Program) error {
	g.names.Reset()
	if p == nil || p.Body == nil {
		return internalf(nil, "program has no body")
	}
	if err := g.GenerateStmt(p.Body); err != nil {
		return err
	}
	g.log.Debug("generated program",
		"statements", len(p.Body.Statements),
		"temps", g.names.Temps(),
		"labels", g.names.Labels())
	return nil
}

func (g *Generator) emit(in tac.Instr) {
	g.sink.Emit(in)
}
