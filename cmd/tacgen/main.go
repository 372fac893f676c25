package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/tebeka/atexit"

	"tacgen/internal/ast"
	"tacgen/internal/astio"
	"tacgen/internal/codegen"
	"tacgen/internal/diag"
	"tacgen/internal/interp"
	"tacgen/internal/lexer"
	"tacgen/internal/object"
	"tacgen/internal/parser"
	"tacgen/internal/symtab"
	"tacgen/internal/tac"
	"tacgen/internal/watch"
)

var (
	exitFn     = atexit.Exit
	generateFn = generate
)

// watchContext bounds a -watch session.
var watchContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

type config struct {
	input   string
	output  string
	astIn   bool
	emitAST bool
	symbols bool
	run     bool
	watch   bool
	verbose bool
}

func main() {
	exitFn(runCLI(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func runCLI(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tacgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg config
	fs.StringVar(&cfg.output, "o", "", "write TAC to `file` instead of stdout")
	fs.BoolVar(&cfg.astIn, "ast", false, "read a YAML AST instead of source text")
	fs.BoolVar(&cfg.emitAST, "emit-ast", false, "write the YAML AST instead of TAC")
	fs.BoolVar(&cfg.symbols, "symbols", false, "print the symbol table on stderr")
	fs.BoolVar(&cfg.run, "run", false, "execute the generated TAC and print the variables on stderr")
	fs.BoolVar(&cfg.watch, "watch", false, "regenerate whenever the input file changes")
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: tacgen [flags] <file|->")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 1
	}
	cfg.input = fs.Arg(0)
	if cfg.watch && cfg.input == "-" {
		fmt.Fprintln(stderr, "tacgen: -watch needs a file, not stdin")
		return 1
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	d := &driver{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
	}
	if f, ok := stderr.(*os.File); ok {
		d.color = diag.IsTerminal(f.Fd())
	}

	if cfg.watch {
		return d.watch()
	}
	return d.compile()
}

type driver struct {
	cfg    config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
	color  bool
	code   tac.Buffer // reused by every pass of a -watch session
}

func generate(prog *ast.Program, sink tac.Sink, log *slog.Logger) error {
	return codegen.New(sink, codegen.WithLogger(log)).Generate(prog)
}

func (d *driver) readInput() (string, []byte, error) {
	if d.cfg.input == "-" {
		src, err := io.ReadAll(d.stdin)
		if err != nil {
			return "", nil, fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", src, nil
	}
	src, err := os.ReadFile(d.cfg.input)
	if err != nil {
		return "", nil, fmt.Errorf("read input: %w", err)
	}
	return d.cfg.input, src, nil
}

func (d *driver) load(src []byte) (*ast.Program, []diag.CodeError) {
	if !d.cfg.astIn {
		p := parser.New(lexer.New(string(src)))
		prog := p.ParseProgram()
		return prog, p.Diagnostics()
	}
	prog, err := astio.Decode(bytes.NewReader(src))
	if err != nil {
		var de *astio.DecodeError
		if errors.As(err, &de) {
			return nil, de.Diagnostics
		}
		return nil, []diag.CodeError{{Message: err.Error()}}
	}
	return prog, nil
}

// compile runs one pass over the input and returns the exit status.
func (d *driver) compile() int {
	name, src, err := d.readInput()
	if err != nil {
		fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
		return 1
	}
	printer := diag.NewPrinter(d.stderr, d.color).WithSource(name, string(src))

	prog, errs := d.load(src)
	if len(errs) > 0 {
		printer.Print(errs...)
		return 1
	}
	table, errs := symtab.Resolve(prog)
	if len(errs) > 0 {
		printer.Print(errs...)
		return 1
	}
	if d.cfg.symbols {
		if err := table.Render(d.stderr); err != nil {
			fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
			return 1
		}
	}

	out, err := openOutput(d.cfg.output, d.stdout)
	if err != nil {
		fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
		return 1
	}

	if d.cfg.emitAST {
		var buf bytes.Buffer
		if err := astio.Encode(&buf, prog); err != nil {
			out.discard()
			printer.Fatal(err)
			return 1
		}
		return d.commit(out, buf.Bytes(), "ast")
	}

	d.code.Reset()
	if err := generateFn(prog, &d.code, d.log); err != nil {
		printer.Fatal(err)
		if codegen.IsInternal(err) {
			// The registered cleanup removes the partial output file.
			exitFn(1)
			return 1
		}
		out.discard()
		return 1
	}

	if d.cfg.run {
		env := object.NewEnvironment()
		for _, sym := range table.Symbols() {
			env.Declare(sym.Name, sym.Type)
		}
		if err := interp.Run(d.code.Instrs(), env); err != nil {
			out.discard()
			fmt.Fprintf(d.stderr, "tacgen: run: %v\n", err)
			return 1
		}
		if err := interp.Dump(d.stderr, env); err != nil {
			fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
		}
	}

	var text bytes.Buffer
	d.log.Debug("generated", "file", name, "instructions", d.code.Len())
	if _, err := d.code.WriteTo(&text); err != nil {
		out.discard()
		fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
		return 1
	}
	return d.commit(out, text.Bytes(), "tac")
}

func (d *driver) commit(out *output, data []byte, kind string) int {
	if err := out.commit(data); err != nil {
		fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
		return 1
	}
	d.log.Debug("wrote output", "kind", kind, "dest", out.name(), "bytes", len(data))
	return 0
}

// watch compiles once, then again after every change until interrupted.
func (d *driver) watch() int {
	w, err := watch.New(d.cfg.input, watch.WithLogger(d.log))
	if err != nil {
		fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
		return 1
	}
	defer w.Close()

	d.compile()
	ctx, cancel := watchContext()
	defer cancel()
	d.log.Info("watching", "file", w.Path())
	err = w.Run(ctx, func() {
		d.log.Info("recompiling", "file", w.Path())
		if code := d.compile(); code != 0 {
			d.log.Warn("compilation failed", "file", w.Path())
		}
	})
	if err != nil {
		fmt.Fprintf(d.stderr, "tacgen: %v\n", err)
		return 1
	}
	return 0
}
