package diag

import (
	"fmt"
	"io"
	"strings"
)

// CodeError is a positioned front-end diagnostic (lexing, parsing,
// symbol resolution, AST decoding). Line and Column are 1-based; zero
// means the position is unknown, as for ASTs built in code.
type CodeError struct {
	Message string
	Context string
	Line    int
	Column  int
}

func (e CodeError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Errorf builds a CodeError at line:col.
func Errorf(line, col int, format string, args ...any) CodeError {
	return CodeError{Message: fmt.Sprintf(format, args...), Line: line, Column: col}
}

const (
	colorReset = "\033[0m"
	colorRed   = "\033[1;31m"
	colorBold  = "\033[1m"
	colorGray  = "\033[90m"
)

// Printer renders diagnostics in the file:line:col: error: message form,
// followed by the offending source line when the source is known.
type Printer struct {
	w      io.Writer
	color  bool
	file   string
	source []string
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color, file: "<stdin>"}
}

// WithSource attaches the file name and contents used for snippets.
func (p *Printer) WithSource(file, source string) *Printer {
	if file != "" {
		p.file = file
	}
	p.source = strings.Split(source, "\n")
	return p
}

func (p *Printer) paint(c, s string) string {
	if !p.color {
		return s
	}
	return c + s + colorReset
}

// Print writes every diagnostic, in order.
func (p *Printer) Print(errs ...CodeError) {
	for _, e := range errs {
		loc := p.file
		if e.Line > 0 && e.Column > 0 {
			loc = fmt.Sprintf("%s:%d:%d", p.file, e.Line, e.Column)
		}
		fmt.Fprintf(p.w, "%s: %s %s\n", p.paint(colorBold, loc), p.paint(colorRed, "error:"), e.Message)
		if e.Context != "" {
			fmt.Fprintf(p.w, "    %s\n", p.paint(colorGray, "near `"+e.Context+"`"))
		}
		if line, ok := SourceLine(p.source, e.Line); ok {
			gutter := fmt.Sprintf("%4d | ", e.Line)
			fmt.Fprintf(p.w, "%s%s\n", p.paint(colorGray, gutter), line)
			if e.Column > 0 {
				fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(" ", len(gutter)+e.Column-1), p.paint(colorRed, "^"))
			}
		}
	}
}

// Fatal reports a "should never happen" condition, which is always the
// last thing printed before the process terminates.
func (p *Printer) Fatal(err error) {
	fmt.Fprintf(p.w, "%s %v\n", p.paint(colorRed, "fatal:"), err)
}

// SourceLine returns line n (1-based) of lines with tabs expanded to a
// single space so caret columns stay aligned.
func SourceLine(lines []string, n int) (string, bool) {
	if n <= 0 || n > len(lines) {
		return "", false
	}
	return strings.ReplaceAll(strings.TrimRight(lines[n-1], "\r"), "\t", " "), true
}
