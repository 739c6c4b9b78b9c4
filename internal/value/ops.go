package value

import (
	"fmt"
	"math"
)

// Equal implements structural equality for primitives and containers;
// futures compare by handle, functions by identity (spec §4.1).
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av.Val == bv.Val
	case Int:
		bv, ok := b.(Int)
		return ok && av.Val == bv.Val
	case Float:
		bv, ok := b.(Float)
		return ok && av.Val == bv.Val
	case Char:
		bv, ok := b.(Char)
		return ok && av.Val == bv.Val
	case Str:
		bv, ok := b.(Str)
		return ok && av.Val == bv.Val
	case Future:
		bv, ok := b.(Future)
		return ok && av.Handle == bv.Handle
	case *Function:
		bv, ok := b.(*Function)
		return ok && av == bv
	case *Builtin:
		bv, ok := b.(*Builtin)
		return ok && av == bv
	case Vec:
		bv, ok := b.(Vec)
		if !ok || len(*av.Elems) != len(*bv.Elems) {
			return false
		}
		for i := range *av.Elems {
			if !Equal((*av.Elems)[i], (*bv.Elems)[i]) {
				return false
			}
		}
		return true
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return false
		}
		for i := range av.Elements {
			if !Equal(av.Elements[i], bv.Elements[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(*av.Entries) != len(*bv.Entries) {
			return false
		}
		for k, v := range *av.Entries {
			bval, exists := (*bv.Entries)[k]
			if !exists || !Equal(v, bval) {
				return false
			}
		}
		return true
	case Set:
		bv, ok := b.(Set)
		if !ok || len(*av.Members) != len(*bv.Members) {
			return false
		}
		for k := range *av.Members {
			if _, exists := (*bv.Members)[k]; !exists {
				return false
			}
		}
		return true
	case Struct:
		bv, ok := b.(Struct)
		if !ok || av.TypeName != bv.TypeName || len(*av.Fields) != len(*bv.Fields) {
			return false
		}
		for k, v := range *av.Fields {
			bval, exists := (*bv.Fields)[k]
			if !exists || !Equal(v, bval) {
				return false
			}
		}
		return true
	case EnumVariant:
		bv, ok := b.(EnumVariant)
		if !ok || av.EnumName != bv.EnumName || av.Variant != bv.Variant || len(av.Payload) != len(bv.Payload) {
			return false
		}
		for i := range av.Payload {
			if !Equal(av.Payload[i], bv.Payload[i]) {
				return false
			}
		}
		return true
	case Module:
		bv, ok := b.(Module)
		return ok && av.Members == bv.Members
	default:
		return false
	}
}

// Less implements ordering defined only among same numeric tag and among
// strings lexicographically (spec §4.1); other combinations error.
func Less(a, b Value) (bool, error) {
	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		if !ok {
			return false, fmt.Errorf("cannot compare int with %s", b.Type())
		}
		return av.Val < bv.Val, nil
	case Float:
		bv, ok := b.(Float)
		if !ok {
			return false, fmt.Errorf("cannot compare float with %s", b.Type())
		}
		return av.Val < bv.Val, nil
	case Str:
		bv, ok := b.(Str)
		if !ok {
			return false, fmt.Errorf("cannot compare string with %s", b.Type())
		}
		return av.Val < bv.Val, nil
	default:
		return false, fmt.Errorf("type %s does not support ordering", a.Type())
	}
}

// Add implements `+`: int×int→int, float×float→float, mixed promotes to
// float. String concatenation is rejected here per spec §4.1 (it only
// happens inside builtins' string-builder paths).
func Add(a, b Value) (Value, error) { return arith(a, b, "+") }
func Sub(a, b Value) (Value, error) { return arith(a, b, "-") }
func Mul(a, b Value) (Value, error) { return arith(a, b, "*") }

// Div implements `/`. Division by zero returns the plain error "divide
// by zero", which unwinds like any other runtime error. It is not turned
// into an Err value under `?`, and it carries no diag.Kind.
func Div(a, b Value) (Value, error) { return arith(a, b, "/") }

// Mod implements `%` with the same promotion rules as Add.
func Mod(a, b Value) (Value, error) { return arith(a, b, "%") }

func promote(a, b Value) (float64, float64, bool) {
	af, aok := numeric(a)
	bf, bok := numeric(b)
	return af, bf, aok && bok
}

func numeric(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n.Val), true
	case Float:
		return n.Val, true
	default:
		return 0, false
	}
}

func arith(a, b Value, op string) (Value, error) {
	ai, aIsInt := a.(Int)
	bi, bIsInt := b.(Int)
	if aIsInt && bIsInt {
		switch op {
		case "+":
			return Int{Val: ai.Val + bi.Val}, nil
		case "-":
			return Int{Val: ai.Val - bi.Val}, nil
		case "*":
			return Int{Val: ai.Val * bi.Val}, nil
		case "/":
			if bi.Val == 0 {
				return nil, fmt.Errorf("divide by zero")
			}
			return Int{Val: ai.Val / bi.Val}, nil
		case "%":
			if bi.Val == 0 {
				return nil, fmt.Errorf("divide by zero")
			}
			return Int{Val: ai.Val % bi.Val}, nil
		}
	}

	af, bf, ok := promote(a, b)
	if !ok {
		return nil, fmt.Errorf("operator %s requires numeric operands, got %s and %s", op, a.Type(), b.Type())
	}
	switch op {
	case "+":
		return Float{Val: af + bf}, nil
	case "-":
		return Float{Val: af - bf}, nil
	case "*":
		return Float{Val: af * bf}, nil
	case "/":
		if bf == 0 {
			return nil, fmt.Errorf("divide by zero")
		}
		return Float{Val: af / bf}, nil
	case "%":
		if bf == 0 {
			return nil, fmt.Errorf("divide by zero")
		}
		return Float{Val: math.Mod(af, bf)}, nil
	}
	return nil, fmt.Errorf("unknown operator %s", op)
}

// Neg implements unary `-`.
func Neg(v Value) (Value, error) {
	switch n := v.(type) {
	case Int:
		return Int{Val: -n.Val}, nil
	case Float:
		return Float{Val: -n.Val}, nil
	default:
		return nil, fmt.Errorf("unary '-' requires a numeric operand, got %s", v.Type())
	}
}

// Not implements unary `!`.
func Not(v Value) (Value, error) {
	b, ok := v.(Bool)
	if !ok {
		return nil, fmt.Errorf("unary '!' requires a bool operand, got %s", v.Type())
	}
	return Bool{Val: !b.Val}, nil
}
