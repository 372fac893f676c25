package tac

import (
	"bufio"
	"io"
	"strings"
)

// Sink receives instructions in emission order.
type Sink interface {
	Emit(in Instr)
}

// Writer renders each instruction as one line on an io.Writer. The first
// write error is kept and returned by Flush; later emits are dropped.
type Writer struct {
	w   *bufio.Writer
	n   int
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (w *Writer) Emit(in Instr) {
	if w.err != nil {
		return
	}
	if _, err := w.w.WriteString(in.String() + "\n"); err != nil {
		w.err = err
		return
	}
	w.n++
}

// Count returns how many instructions were written.
func (w *Writer) Count() int { return w.n }

func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	w.err = w.w.Flush()
	return w.err
}

// Buffer keeps instructions in memory. It is used when output must be
// discarded on failure and by the interpreter.
type Buffer struct {
	instrs []Instr
}

func (b *Buffer) Emit(in Instr) { b.instrs = append(b.instrs, in) }

func (b *Buffer) Instrs() []Instr { return b.instrs }

func (b *Buffer) Len() int { return len(b.instrs) }

func (b *Buffer) Reset() { b.instrs = b.instrs[:0] }

func (b *Buffer) Lines() []string {
	lines := make([]string, len(b.instrs))
	for i, in := range b.instrs {
		lines[i] = in.String()
	}
	return lines
}

func (b *Buffer) String() string {
	if len(b.instrs) == 0 {
		return ""
	}
	return strings.Join(b.Lines(), "\n") + "\n"
}

// WriteTo writes every buffered instruction, one per line, through a
// Writer.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	tw := NewWriter(cw)
	for _, in := range b.instrs {
		tw.Emit(in)
	}
	err := tw.Flush()
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
