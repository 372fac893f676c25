package symtab

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"tacgen/internal/diag"
	"tacgen/internal/typesys"
)

// Symbol is one declared variable.
type Symbol struct {
	Name   string
	Type   typesys.Type
	Line   int
	Column int
	Uses   int
}

func (s *Symbol) declaredAt() string {
	if s.Line <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// Table records the variables of one program. The source language has a
// single flat scope, so there is no nesting.
type Table struct {
	symbols map[string]*Symbol
	order   []*Symbol
}

func New() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Declare adds name with type t. Redeclaring a name is an error and the
// first declaration is kept.
func (st *Table) Declare(name string, t typesys.Type, line, col int) error {
	if prev, ok := st.symbols[name]; ok {
		err := diag.Errorf(line, col, "identifier already declared: %s", name)
		if prev.Line > 0 {
			err.Message += " (previous declaration at " + prev.declaredAt() + ")"
		}
		return err
	}
	if !t.Known() {
		return diag.Errorf(line, col, "invalid type %s for %s", t, name)
	}
	sym := &Symbol{Name: name, Type: t, Line: line, Column: col}
	st.symbols[name] = sym
	st.order = append(st.order, sym)
	return nil
}

func (st *Table) Lookup(name string) (*Symbol, bool) {
	sym, ok := st.symbols[name]
	return sym, ok
}

func (st *Table) Len() int { return len(st.order) }

// Symbols returns the declared symbols in declaration order.
func (st *Table) Symbols() []*Symbol {
	out := make([]*Symbol, len(st.order))
	copy(out, st.order)
	return out
}

// Render writes the table as a text grid, sorted by name.
func (st *Table) Render(w io.Writer) error {
	syms := st.Symbols()
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })

	tw := table.NewWriter()
	tw.SetTitle("Symbols")
	tw.AppendHeader(table.Row{"Name", "Type", "Declared", "Uses"})
	for _, s := range syms {
		tw.AppendRow(table.Row{s.Name, s.Type.String(), s.declaredAt(), s.Uses})
	}
	_, err := io.WriteString(w, tw.Render()+"\n")
	return err
}
