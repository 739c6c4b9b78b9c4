package forge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apexforge/afns/internal/value"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NewStrModule builds `forge.str` (spec §4.4). to_upper/to_lower go
// through golang.org/x/text/cases with a locale resolved from the
// ctx.Env.Locale knob (APEXRC_LOCALE, SPEC_FULL §6) instead of
// strings.ToUpper/ToLower, so casing is correct for locales where
// simple byte-wise casing is wrong (e.g. Turkish dotless i).
func NewStrModule(ctx *Context) value.Module {
	m := value.NewModule("forge.str")
	mem := *m.Members
	tag := resolveLocale(ctx.Env.Locale)
	upper := cases.Upper(tag)
	lower := cases.Lower(tag)

	mem["len"] = &value.Builtin{Name: "forge.str.len", Fn: func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Int{Val: int64(len(s))}, nil
	}}
	mem["to_upper"] = &value.Builtin{Name: "forge.str.to_upper", Fn: strMap(upper.String)}
	mem["to_lower"] = &value.Builtin{Name: "forge.str.to_lower", Fn: strMap(lower.String)}
	mem["trim"] = &value.Builtin{Name: "forge.str.trim", Fn: strMap(strings.TrimSpace)}
	mem["split"] = &value.Builtin{Name: "forge.str.split", Fn: func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		sep, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		parts := strings.Split(s, sep)
		elems := make([]value.Value, len(parts))
		for i, p := range parts {
			elems[i] = value.Str{Val: p}
		}
		return value.NewVec(elems), nil
	}}
	mem["replace"] = &value.Builtin{Name: "forge.str.replace", Fn: func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		old, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		repl, err := strArg(args, 2)
		if err != nil {
			return nil, err
		}
		return value.Str{Val: strings.ReplaceAll(s, old, repl)}, nil
	}}
	mem["find"] = &value.Builtin{Name: "forge.str.find", Fn: func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		idx := strings.Index(s, sub)
		if idx < 0 {
			return value.None(), nil
		}
		return value.Some(value.Int{Val: int64(idx)}), nil
	}}
	mem["contains"] = &value.Builtin{Name: "forge.str.contains", Fn: strPredicate(strings.Contains)}
	mem["starts_with"] = &value.Builtin{Name: "forge.str.starts_with", Fn: strPredicate(strings.HasPrefix)}
	mem["ends_with"] = &value.Builtin{Name: "forge.str.ends_with", Fn: strPredicate(strings.HasSuffix)}
	mem["to_i32"] = &value.Builtin{Name: "forge.str.to_i32", Fn: func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
		if err != nil {
			return value.Err(value.Str{Val: fmt.Sprintf("cannot parse %q as int", s)}), nil
		}
		return value.Ok(value.Int{Val: n}), nil
	}}
	mem["to_f64"] = &value.Builtin{Name: "forge.str.to_f64", Fn: func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return value.Err(value.Str{Val: fmt.Sprintf("cannot parse %q as float", s)}), nil
		}
		return value.Ok(value.Float{Val: f}), nil
	}}

	return m
}

func resolveLocale(locale string) language.Tag {
	if locale == "" || locale == "und" {
		return language.Und
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und
	}
	return tag
}

func strArg(args []value.Value, i int) (string, error) {
	if i >= len(args) {
		return "", fmt.Errorf("missing argument %d", i)
	}
	s, ok := args[i].(value.Str)
	if !ok {
		return "", fmt.Errorf("expected string argument, got %s", args[i].Type())
	}
	return s.Val, nil
}

func strMap(f func(string) string) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Str{Val: f(s)}, nil
	}
}

func strPredicate(f func(s, substr string) bool) func([]value.Value) (value.Value, error) {
	return func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: f(s, sub)}, nil
	}
}
