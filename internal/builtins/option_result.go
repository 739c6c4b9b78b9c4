package builtins

import (
	"fmt"

	"github.com/apexforge/afns/internal/value"
)

// NewOptionModule builds the `option` module (spec §4.4: "constructors
// and membership predicates").
func NewOptionModule() value.Module {
	m := value.NewModule("option")
	mem := *m.Members

	mem["some"] = &value.Builtin{Name: "option.some", Fn: func(args []value.Value) (value.Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("some: missing argument")
		}
		return value.Some(args[0]), nil
	}}
	mem["none"] = &value.Builtin{Name: "option.none", Fn: func(args []value.Value) (value.Value, error) {
		return value.None(), nil
	}}
	mem["is_some"] = &value.Builtin{Name: "option.is_some", Fn: func(args []value.Value) (value.Value, error) {
		ev, err := optionArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: ev.Variant == "Some"}, nil
	}}
	mem["is_none"] = &value.Builtin{Name: "option.is_none", Fn: func(args []value.Value) (value.Value, error) {
		ev, err := optionArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: ev.Variant == "None"}, nil
	}}
	mem["unwrap_or"] = &value.Builtin{Name: "option.unwrap_or", Fn: func(args []value.Value) (value.Value, error) {
		ev, err := optionArg(args, 0)
		if err != nil {
			return nil, err
		}
		if ev.Variant == "Some" {
			return ev.Payload[0], nil
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("unwrap_or: missing default argument")
		}
		return args[1], nil
	}}

	return m
}

// NewResultModule builds the `result` module (spec §4.4).
func NewResultModule() value.Module {
	m := value.NewModule("result")
	mem := *m.Members

	mem["ok"] = &value.Builtin{Name: "result.ok", Fn: func(args []value.Value) (value.Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("ok: missing argument")
		}
		return value.Ok(args[0]), nil
	}}
	mem["err"] = &value.Builtin{Name: "result.err", Fn: func(args []value.Value) (value.Value, error) {
		if len(args) < 1 {
			return nil, fmt.Errorf("err: missing argument")
		}
		return value.Err(args[0]), nil
	}}
	mem["is_ok"] = &value.Builtin{Name: "result.is_ok", Fn: func(args []value.Value) (value.Value, error) {
		ev, err := resultArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: ev.Variant == "Ok"}, nil
	}}
	mem["is_err"] = &value.Builtin{Name: "result.is_err", Fn: func(args []value.Value) (value.Value, error) {
		ev, err := resultArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: ev.Variant == "Err"}, nil
	}}
	mem["unwrap_or"] = &value.Builtin{Name: "result.unwrap_or", Fn: func(args []value.Value) (value.Value, error) {
		ev, err := resultArg(args, 0)
		if err != nil {
			return nil, err
		}
		if ev.Variant == "Ok" {
			return ev.Payload[0], nil
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("unwrap_or: missing default argument")
		}
		return args[1], nil
	}}

	return m
}

func optionArg(args []value.Value, i int) (value.EnumVariant, error) {
	if i >= len(args) {
		return value.EnumVariant{}, fmt.Errorf("missing option argument %d", i)
	}
	ev, ok := args[i].(value.EnumVariant)
	if !ok || ev.EnumName != "Option" {
		return value.EnumVariant{}, fmt.Errorf("expected option argument, got %s", args[i].Type())
	}
	return ev, nil
}

func resultArg(args []value.Value, i int) (value.EnumVariant, error) {
	if i >= len(args) {
		return value.EnumVariant{}, fmt.Errorf("missing result argument %d", i)
	}
	ev, ok := args[i].(value.EnumVariant)
	if !ok || ev.EnumName != "Result" {
		return value.EnumVariant{}, fmt.Errorf("expected result argument, got %s", args[i].Type())
	}
	return ev, nil
}
