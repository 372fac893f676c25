// Package interp executes three-address code.
package interp

import (
	"fmt"

	"tacgen/internal/object"
	"tacgen/internal/tac"
	"tacgen/internal/typesys"
)

// DefaultStepLimit bounds the number of instructions one Run executes.
const DefaultStepLimit = 10_000_000

// Machine is a resolved TAC program ready to run.
type Machine struct {
	code      []tac.Instr
	labels    map[tac.Label]int
	stepLimit int
	steps     int
	temps     map[tac.Temp]object.Object
}

type Option func(*Machine)

// WithStepLimit caps the number of executed instructions.
func WithStepLimit(n int) Option {
	return func(m *Machine) { m.stepLimit = n }
}

// New resolves every label of code. A label defined twice, or a jump to a
// label that is never defined, is an error.
func New(code []tac.Instr, opts ...Option) (*Machine, error) {
	m := &Machine{
		code:      code,
		labels:    make(map[tac.Label]int),
		stepLimit: DefaultStepLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	for pc, in := range code {
		def, ok := in.(tac.LabelDef)
		if !ok {
			continue
		}
		if _, dup := m.labels[def.Label]; dup {
			return nil, fmt.Errorf("instruction %d: %s defined twice", pc, def.Label)
		}
		m.labels[def.Label] = pc
	}
	for pc, in := range code {
		var target tac.Label
		switch in := in.(type) {
		case tac.Goto:
			target = in.Target
		case tac.CondJump:
			target = in.Target
		default:
			continue
		}
		if _, ok := m.labels[target]; !ok {
			return nil, fmt.Errorf("instruction %d: jump to undefined %s", pc, target)
		}
	}
	return m, nil
}

// Steps reports how many instructions the last Run executed.
func (m *Machine) Steps() int { return m.steps }

// Run executes the program from the first instruction, reading and writing
// variables in env.
func (m *Machine) Run(env *object.Environment) error {
	m.steps = 0
	m.temps = make(map[tac.Temp]object.Object)

	pc := 0
	for pc < len(m.code) {
		if m.steps >= m.stepLimit {
			return fmt.Errorf("step limit of %d exceeded", m.stepLimit)
		}
		m.steps++

		next, err := m.exec(pc, env)
		if err != nil {
			return fmt.Errorf("instruction %d (%s): %w", pc, m.code[pc], err)
		}
		pc = next
	}
	return nil
}

func (m *Machine) exec(pc int, env *object.Environment) (int, error) {
	switch in := m.code[pc].(type) {
	case tac.Const:
		if in.Kind == typesys.Float {
			m.temps[in.Dst] = &object.Float{Value: in.Float}
		} else {
			m.temps[in.Dst] = &object.Integer{Value: in.Int}
		}

	case tac.Copy:
		val, ok := env.Get(in.Name)
		if !ok {
			return 0, fmt.Errorf("variable %s is not set", in.Name)
		}
		m.temps[in.Dst] = val

	case tac.Binary:
		l, r, err := m.operands(in.Left, in.Right)
		if err != nil {
			return 0, err
		}
		res := object.Arith(in.Op, l, r)
		if e, ok := res.(*object.Error); ok {
			return 0, e
		}
		m.temps[in.Dst] = res

	case tac.Store:
		val, err := m.temp(in.Src)
		if err != nil {
			return 0, err
		}
		env.Assign(in.Name, val)

	case tac.CondJump:
		l, r, err := m.operands(in.Left, in.Right)
		if err != nil {
			return 0, err
		}
		holds, cerr := object.Compare(in.Op, l, r)
		if cerr != nil {
			return 0, cerr
		}
		if holds != in.Negated {
			return m.labels[in.Target], nil
		}

	case tac.Goto:
		return m.labels[in.Target], nil

	case tac.LabelDef:

	default:
		return 0, fmt.Errorf("unknown instruction %T", in)
	}
	return pc + 1, nil
}

func (m *Machine) temp(t tac.Temp) (object.Object, error) {
	val, ok := m.temps[t]
	if !ok {
		return nil, fmt.Errorf("%s read before it was set", t)
	}
	return val, nil
}

func (m *Machine) operands(a, b tac.Temp) (object.Object, object.Object, error) {
	l, err := m.temp(a)
	if err != nil {
		return nil, nil, err
	}
	r, err := m.temp(b)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// Run resolves and executes code in env.
func Run(code []tac.Instr, env *object.Environment, opts ...Option) error {
	m, err := New(code, opts...)
	if err != nil {
		return err
	}
	return m.Run(env)
}
