// Package tac defines three-address code instructions and the sinks that
// receive them.
package tac

import (
	"fmt"
	"strconv"

	"tacgen/internal/typesys"
)

// Temp names a compiler temporary. Valid temps start at 1.
type Temp int

func (t Temp) String() string { return "_t" + strconv.Itoa(int(t)) }

// Label names a jump target. Valid labels start at 1.
type Label int

// FallThrough is the reserved label meaning "continue with the next
// instruction". It is never emitted.
const FallThrough Label = -1

func (l Label) IsFallThrough() bool { return l == FallThrough }

func (l Label) String() string {
	if l == FallThrough {
		return "fallthrough"
	}
	return "label" + strconv.Itoa(int(l))
}

// Instr is a single TAC instruction. String renders its line without the
// trailing newline.
type Instr interface {
	String() string
	instr()
}

// Const loads a numeric literal: _t1 = 5 or _t1 = 2.50
type Const struct {
	Dst   Temp
	Kind  typesys.Type
	Int   int64
	Float float64
}

// Copy loads a variable: _t1 = x
type Copy struct {
	Dst  Temp
	Name string
}

// Binary computes _t3 = _t1 op _t2. Op is already spelled for the operand
// type ("+" or "plus" and so on).
type Binary struct {
	Dst         Temp
	Left, Right Temp
	Op          string
}

// Store writes a temporary back to a variable: x = _t1
type Store struct {
	Name string
	Src  Temp
}

// CondJump is if _t1 op _t2 goto labelN, or ifFalse when Negated.
type CondJump struct {
	Negated     bool
	Left, Right Temp
	Op          string
	Target      Label
}

// Goto is an unconditional jump.
type Goto struct {
	Target Label
}

// LabelDef places a label: labelN:
type LabelDef struct {
	Label Label
}

func (Const) instr()    {}
func (Copy) instr()     {}
func (Binary) instr()   {}
func (Store) instr()    {}
func (CondJump) instr() {}
func (Goto) instr()     {}
func (LabelDef) instr() {}

func (c Const) String() string {
	if c.Kind == typesys.Float {
		return fmt.Sprintf("%s = %.2f", c.Dst, c.Float)
	}
	return fmt.Sprintf("%s = %d", c.Dst, c.Int)
}

func (c Copy) String() string { return fmt.Sprintf("%s = %s", c.Dst, c.Name) }

func (b Binary) String() string {
	return fmt.Sprintf("%s = %s %s %s", b.Dst, b.Left, b.Op, b.Right)
}

func (s Store) String() string { return fmt.Sprintf("%s = %s", s.Name, s.Src) }

func (j CondJump) String() string {
	kw := "if"
	if j.Negated {
		kw = "ifFalse"
	}
	return fmt.Sprintf("%s %s %s %s goto %s", kw, j.Left, j.Op, j.Right, j.Target)
}

func (g Goto) String() string { return "goto " + g.Target.String() }

func (d LabelDef) String() string { return d.Label.String() + ":" }
