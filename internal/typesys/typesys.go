package typesys

import "fmt"

// Type is the scalar type tag carried by expressions.
// Only int and float exist in the source language; Unknown marks an
// identifier whose declaration has not been resolved yet.
type Type int

const (
	Unknown Type = iota
	Int
	Float
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Known reports whether t is one of the concrete scalar types.
func (t Type) Known() bool {
	return t == Int || t == Float
}

// ParseTypeName maps a declaration keyword to its Type.
func ParseTypeName(name string) (Type, bool) {
	switch name {
	case "int":
		return Int, true
	case "float":
		return Float, true
	default:
		return Unknown, false
	}
}

func IsBuiltinTypeName(name string) bool {
	_, ok := ParseTypeName(name)
	return ok
}

// Widen returns the type of a binary arithmetic result.
// float wins over int; two unknown operands stay unknown.
func Widen(a, b Type) Type {
	switch {
	case a == Float || b == Float:
		return Float
	case a == Int || b == Int:
		return Int
	default:
		return Unknown
	}
}
