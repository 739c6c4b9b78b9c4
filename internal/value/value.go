// Package value implements the AFNS runtime value model (spec §3, §4.1).
//
// A Value is a small tagged union encoded as a Go interface, following the
// teacher's eval.Value idiom. Shared containers (vec, map, set, struct,
// module) hold pointers to their backing slice or map, so copying a
// Value shares the underlying storage while primitives copy by value.
package value

import "fmt"

// Value is the runtime-tagged union produced by the evaluator.
type Value interface {
	Type() string
	String() string
}

// Null is the sole null value.
type Null struct{}

func (Null) Type() string   { return "null" }
func (Null) String() string { return "null" }

// Bool wraps a bool.
type Bool struct{ Val bool }

func (b Bool) Type() string { return "bool" }
func (b Bool) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// Int wraps a 64-bit signed integer.
type Int struct{ Val int64 }

func (i Int) Type() string   { return "int" }
func (i Int) String() string { return fmt.Sprintf("%d", i.Val) }

// Float wraps a 64-bit IEEE-754 float.
type Float struct{ Val float64 }

func (f Float) Type() string   { return "float" }
func (f Float) String() string { return fmt.Sprintf("%g", f.Val) }

// Char is a single ASCII character.
type Char struct{ Val byte }

func (c Char) Type() string   { return "char" }
func (c Char) String() string { return string(rune(c.Val)) }

// Str is an owned UTF-8 string.
type Str struct{ Val string }

func (s Str) Type() string   { return "string" }
func (s Str) String() string { return s.Val }

// Function is a closure: parameters, body AST, captured environment.
// Env is `interface{}` (rather than importing env.Environment) to avoid
// a value<->env import cycle; the interp package does the type assertion.
type Function struct {
	Params []string
	Body   interface{} // *ast.Block
	Env    interface{} // *env.Environment, captured by reference
	Async  bool
}

func (f *Function) Type() string   { return "function" }
func (f *Function) String() string { return "<fn>" }

// Builtin is an opaque host-provided function.
type Builtin struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (b *Builtin) Type() string   { return "builtin" }
func (b *Builtin) String() string { return fmt.Sprintf("<builtin:%s>", b.Name) }

// Future is a handle into the async executor's future registry.
type Future struct {
	Handle int64
}

func (f Future) Type() string   { return "future" }
func (f Future) String() string { return fmt.Sprintf("<future:#%d>", f.Handle) }
