// Package builtins assembles the top-level module table (spec §4.4):
// the dotted-path forge.* family from internal/forge plus the plain
// vec/map/set/option/result modules defined below, all addressable the
// way the teacher's evaluator addresses its own registered builtins.
package builtins

import (
	"fmt"

	"github.com/apexforge/afns/internal/value"
)

// NewVecModule builds the `vec` module (spec §4.4).
func NewVecModule() value.Module {
	m := value.NewModule("vec")
	mem := *m.Members

	mem["new"] = &value.Builtin{Name: "vec.new", Fn: func(args []value.Value) (value.Value, error) {
		return value.NewVec(append([]value.Value{}, args...)), nil
	}}
	mem["push"] = &value.Builtin{Name: "vec.push", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("push: missing value argument")
		}
		*v.Elems = append(*v.Elems, args[1])
		return value.Null{}, nil
	}}
	mem["pop"] = &value.Builtin{Name: "vec.pop", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		elems := *v.Elems
		if len(elems) == 0 {
			return value.None(), nil
		}
		last := elems[len(elems)-1]
		*v.Elems = elems[:len(elems)-1]
		return value.Some(last), nil
	}}
	mem["len"] = &value.Builtin{Name: "vec.len", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Int{Val: int64(len(*v.Elems))}, nil
	}}
	mem["get"] = &value.Builtin{Name: "vec.get", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		i, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		elems := *v.Elems
		if i < 0 || i >= int64(len(elems)) {
			return value.None(), nil
		}
		return value.Some(elems[i]), nil
	}}
	mem["set"] = &value.Builtin{Name: "vec.set", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		i, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		if len(args) < 3 {
			return nil, fmt.Errorf("set: missing value argument")
		}
		elems := *v.Elems
		if i < 0 || i >= int64(len(elems)) {
			return value.Err(value.Str{Val: fmt.Sprintf("index %d out of bounds (len %d)", i, len(elems))}), nil
		}
		elems[i] = args[2]
		return value.Ok(value.Null{}), nil
	}}
	mem["insert"] = &value.Builtin{Name: "vec.insert", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		i, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		if len(args) < 3 {
			return nil, fmt.Errorf("insert: missing value argument")
		}
		elems := *v.Elems
		if i < 0 || i > int64(len(elems)) {
			return nil, fmt.Errorf("insert: index %d out of bounds (len %d)", i, len(elems))
		}
		elems = append(elems, nil)
		copy(elems[i+1:], elems[i:])
		elems[i] = args[2]
		*v.Elems = elems
		return value.Null{}, nil
	}}
	mem["remove"] = &value.Builtin{Name: "vec.remove", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		i, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		elems := *v.Elems
		if i < 0 || i >= int64(len(elems)) {
			return nil, fmt.Errorf("remove: index %d out of bounds (len %d)", i, len(elems))
		}
		removed := elems[i]
		*v.Elems = append(elems[:i], elems[i+1:]...)
		return removed, nil
	}}
	mem["sort"] = &value.Builtin{Name: "vec.sort", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Null{}, sortInPlace(*v.Elems)
	}}
	mem["reverse"] = &value.Builtin{Name: "vec.reverse", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		elems := *v.Elems
		for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
			elems[i], elems[j] = elems[j], elems[i]
		}
		return value.Null{}, nil
	}}
	mem["extend"] = &value.Builtin{Name: "vec.extend", Fn: func(args []value.Value) (value.Value, error) {
		v, err := vecArg(args, 0)
		if err != nil {
			return nil, err
		}
		other, err := vecArg(args, 1)
		if err != nil {
			return nil, err
		}
		*v.Elems = append(*v.Elems, *other.Elems...)
		return value.Null{}, nil
	}}

	return m
}

func vecArg(args []value.Value, i int) (value.Vec, error) {
	if i >= len(args) {
		return value.Vec{}, fmt.Errorf("missing vec argument %d", i)
	}
	v, ok := args[i].(value.Vec)
	if !ok {
		return value.Vec{}, fmt.Errorf("expected vec argument, got %s", args[i].Type())
	}
	return v, nil
}

func intArg(args []value.Value, i int) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing int argument %d", i)
	}
	n, ok := args[i].(value.Int)
	if !ok {
		return 0, fmt.Errorf("expected int argument, got %s", args[i].Type())
	}
	return n.Val, nil
}

// sortInPlace sorts elems ascending by value.Less, a simple insertion
// sort since Less already returns an error for non-comparable pairs and
// sort.Slice has no way to propagate one.
func sortInPlace(elems []value.Value) error {
	for i := 1; i < len(elems); i++ {
		for j := i; j > 0; j-- {
			lt, err := value.Less(elems[j], elems[j-1])
			if err != nil {
				return err
			}
			if !lt {
				break
			}
			elems[j], elems[j-1] = elems[j-1], elems[j]
		}
	}
	return nil
}
