package builtins

import (
	"fmt"

	"github.com/apexforge/afns/internal/value"
)

// NewMapModule builds the `map` module (spec §4.4).
func NewMapModule() value.Module {
	m := value.NewModule("map")
	mem := *m.Members

	mem["new"] = &value.Builtin{Name: "map.new", Fn: func(args []value.Value) (value.Value, error) {
		return value.NewMap(), nil
	}}
	mem["put"] = &value.Builtin{Name: "map.put", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 3 {
			return nil, fmt.Errorf("put: expected key and value arguments")
		}
		k, err := value.NewMapKey(args[1])
		if err != nil {
			return nil, err
		}
		mv.Put(k, args[2])
		return value.Null{}, nil
	}}
	mem["get"] = &value.Builtin{Name: "map.get", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		k, err := mapKeyArg(args, 1)
		if err != nil {
			return nil, err
		}
		if v, ok := (*mv.Entries)[k]; ok {
			return value.Some(v), nil
		}
		return value.None(), nil
	}}
	mem["remove"] = &value.Builtin{Name: "map.remove", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		k, err := mapKeyArg(args, 1)
		if err != nil {
			return nil, err
		}
		v, existed := (*mv.Entries)[k]
		if !existed {
			return value.None(), nil
		}
		mv.Remove(k)
		return value.Some(v), nil
	}}
	mem["contains_key"] = &value.Builtin{Name: "map.contains_key", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		k, err := mapKeyArg(args, 1)
		if err != nil {
			return nil, err
		}
		_, ok := (*mv.Entries)[k]
		return value.Bool{Val: ok}, nil
	}}
	mem["keys"] = &value.Builtin{Name: "map.keys", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(*mv.Order))
		for i, k := range *mv.Order {
			elems[i] = k.Value()
		}
		return value.NewVec(elems), nil
	}}
	mem["values"] = &value.Builtin{Name: "map.values", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(*mv.Order))
		for i, k := range *mv.Order {
			elems[i] = (*mv.Entries)[k]
		}
		return value.NewVec(elems), nil
	}}
	mem["items"] = &value.Builtin{Name: "map.items", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(*mv.Order))
		for i, k := range *mv.Order {
			elems[i] = value.Tuple{Elements: []value.Value{k.Value(), (*mv.Entries)[k]}}
		}
		return value.NewVec(elems), nil
	}}
	mem["len"] = &value.Builtin{Name: "map.len", Fn: func(args []value.Value) (value.Value, error) {
		mv, err := mapArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Int{Val: int64(len(*mv.Order))}, nil
	}}

	return m
}

func mapArg(args []value.Value, i int) (value.Map, error) {
	if i >= len(args) {
		return value.Map{}, fmt.Errorf("missing map argument %d", i)
	}
	mv, ok := args[i].(value.Map)
	if !ok {
		return value.Map{}, fmt.Errorf("expected map argument, got %s", args[i].Type())
	}
	return mv, nil
}

func mapKeyArg(args []value.Value, i int) (value.MapKey, error) {
	if i >= len(args) {
		return value.MapKey{}, fmt.Errorf("missing key argument %d", i)
	}
	return value.NewMapKey(args[i])
}
