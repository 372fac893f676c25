package object

// Arithmetic follows C: two ints give an int (division truncates), any float
// operand makes the operation float. Division by zero is an error for both.

// canonical maps the TAC float spellings onto the symbolic ones.
var canonical = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/",
	"plus": "+", "minus": "-", "mul": "*", "div": "/",
}

// Arith applies op to l and r. op may be spelled either way.
func Arith(op string, l, r Object) Object {
	sym, ok := canonical[op]
	if !ok {
		return NewError("unknown operator: %s", op)
	}
	li, lok := l.(*Integer)
	ri, rok := r.(*Integer)
	if lok && rok {
		return intArith(sym, li.Value, ri.Value)
	}
	lf, lok := ToFloat(l)
	rf, rok := ToFloat(r)
	if !lok || !rok {
		return NewError("type mismatch: %s %s %s", typeName(l), op, typeName(r))
	}
	return floatArith(sym, lf, rf)
}

func intArith(op string, l, r int64) Object {
	switch op {
	case "+":
		return &Integer{Value: l + r}
	case "-":
		return &Integer{Value: l - r}
	case "*":
		return &Integer{Value: l * r}
	default:
		if r == 0 {
			return NewError("division by zero")
		}
		return &Integer{Value: l / r}
	}
}

func floatArith(op string, l, r float64) Object {
	switch op {
	case "+":
		return &Float{Value: l + r}
	case "-":
		return &Float{Value: l - r}
	case "*":
		return &Float{Value: l * r}
	default:
		if r == 0 {
			return NewError("division by zero")
		}
		return &Float{Value: l / r}
	}
}

// Compare evaluates l op r for a relational operator.
func Compare(op string, l, r Object) (bool, *Error) {
	li, lok := l.(*Integer)
	ri, rok := r.(*Integer)
	if lok && rok {
		return compareOrdered(op, li.Value, ri.Value)
	}
	lf, lok := ToFloat(l)
	rf, rok := ToFloat(r)
	if !lok || !rok {
		return false, NewError("type mismatch: %s %s %s", typeName(l), op, typeName(r))
	}
	return compareOrdered(op, lf, rf)
}

func compareOrdered[T int64 | float64](op string, l, r T) (bool, *Error) {
	switch op {
	case "<":
		return l < r, nil
	case ">":
		return l > r, nil
	case "<=":
		return l <= r, nil
	case ">=":
		return l >= r, nil
	case "==":
		return l == r, nil
	case "!=":
		return l != r, nil
	default:
		return false, NewError("unknown operator: %s", op)
	}
}

func typeName(obj Object) string {
	if obj == nil {
		return "nil"
	}
	return string(obj.Type())
}
