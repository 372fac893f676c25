package object

import (
	"sort"

	"tacgen/internal/typesys"
)

// Environment stores variable bindings. The language has one flat scope.
type Environment struct {
	store map[string]Object
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

// Zero returns the zero value of a declared type.
func Zero(t typesys.Type) Object {
	if t == typesys.Float {
		return &Float{Value: 0}
	}
	return &Integer{Value: 0}
}

// Declare binds name to the zero value of t.
func (e *Environment) Declare(name string, t typesys.Type) {
	e.store[name] = Zero(t)
}

// Get looks up a variable by name
func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	return obj, ok
}

// Set creates or replaces a binding without conversion
func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Assign stores val into name, converting it to the kind the variable
// already holds: an int variable truncates a float, a float variable widens
// an int. Unbound names are created with val as is.
func (e *Environment) Assign(name string, val Object) Object {
	switch e.store[name].(type) {
	case *Integer:
		if f, ok := val.(*Float); ok {
			val = &Integer{Value: int64(f.Value)}
		}
	case *Float:
		if i, ok := val.(*Integer); ok {
			val = &Float{Value: float64(i.Value)}
		}
	}
	e.store[name] = val
	return val
}

// Names returns the bound names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies every binding's Inspect form.
func (e *Environment) Snapshot() map[string]string {
	out := make(map[string]string, len(e.store))
	for name, val := range e.store {
		out[name] = val.Inspect()
	}
	return out
}
