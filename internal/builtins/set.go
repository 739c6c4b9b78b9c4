package builtins

import (
	"fmt"

	"github.com/apexforge/afns/internal/value"
)

// NewSetModule builds the `set` module (spec §4.4).
func NewSetModule() value.Module {
	m := value.NewModule("set")
	mem := *m.Members

	mem["new"] = &value.Builtin{Name: "set.new", Fn: func(args []value.Value) (value.Value, error) {
		s := value.NewSet()
		for _, a := range args {
			k, err := value.NewMapKey(a)
			if err != nil {
				return nil, err
			}
			s.Insert(k)
		}
		return s, nil
	}}
	mem["insert"] = &value.Builtin{Name: "set.insert", Fn: func(args []value.Value) (value.Value, error) {
		s, err := setArg(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("insert: missing member argument")
		}
		k, err := value.NewMapKey(args[1])
		if err != nil {
			return value.Err(value.Str{Val: err.Error()}), nil
		}
		return value.Ok(value.Bool{Val: s.Insert(k)}), nil
	}}
	mem["remove"] = &value.Builtin{Name: "set.remove", Fn: func(args []value.Value) (value.Value, error) {
		s, err := setArg(args, 0)
		if err != nil {
			return nil, err
		}
		k, err := mapKeyArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: s.Remove(k)}, nil
	}}
	mem["contains"] = &value.Builtin{Name: "set.contains", Fn: func(args []value.Value) (value.Value, error) {
		s, err := setArg(args, 0)
		if err != nil {
			return nil, err
		}
		k, err := mapKeyArg(args, 1)
		if err != nil {
			return nil, err
		}
		_, ok := (*s.Members)[k]
		return value.Bool{Val: ok}, nil
	}}
	mem["len"] = &value.Builtin{Name: "set.len", Fn: func(args []value.Value) (value.Value, error) {
		s, err := setArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Int{Val: int64(len(*s.Order))}, nil
	}}
	mem["to_vec"] = &value.Builtin{Name: "set.to_vec", Fn: func(args []value.Value) (value.Value, error) {
		s, err := setArg(args, 0)
		if err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(*s.Order))
		for i, k := range *s.Order {
			elems[i] = k.Value()
		}
		return value.NewVec(elems), nil
	}}
	mem["union"] = &value.Builtin{Name: "set.union", Fn: func(args []value.Value) (value.Value, error) {
		a, b, err := setPair(args)
		if err != nil {
			return value.Err(value.Str{Val: err.Error()}), nil
		}
		out := value.NewSet()
		for _, k := range *a.Order {
			out.Insert(k)
		}
		for _, k := range *b.Order {
			out.Insert(k)
		}
		return value.Ok(out), nil
	}}
	mem["intersection"] = &value.Builtin{Name: "set.intersection", Fn: func(args []value.Value) (value.Value, error) {
		a, b, err := setPair(args)
		if err != nil {
			return value.Err(value.Str{Val: err.Error()}), nil
		}
		out := value.NewSet()
		for _, k := range *a.Order {
			if _, ok := (*b.Members)[k]; ok {
				out.Insert(k)
			}
		}
		return value.Ok(out), nil
	}}
	mem["difference"] = &value.Builtin{Name: "set.difference", Fn: func(args []value.Value) (value.Value, error) {
		a, b, err := setPair(args)
		if err != nil {
			return value.Err(value.Str{Val: err.Error()}), nil
		}
		out := value.NewSet()
		for _, k := range *a.Order {
			if _, ok := (*b.Members)[k]; !ok {
				out.Insert(k)
			}
		}
		return value.Ok(out), nil
	}}

	return m
}

func setArg(args []value.Value, i int) (value.Set, error) {
	if i >= len(args) {
		return value.Set{}, fmt.Errorf("missing set argument %d", i)
	}
	s, ok := args[i].(value.Set)
	if !ok {
		return value.Set{}, fmt.Errorf("expected set argument, got %s", args[i].Type())
	}
	return s, nil
}

func setPair(args []value.Value) (value.Set, value.Set, error) {
	a, err := setArg(args, 0)
	if err != nil {
		return value.Set{}, value.Set{}, err
	}
	b, err := setArg(args, 1)
	if err != nil {
		return value.Set{}, value.Set{}, err
	}
	return a, b, nil
}
