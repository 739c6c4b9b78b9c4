package forge

import (
	"fmt"
	"math"

	"github.com/apexforge/afns/internal/value"
)

// NewMathModule builds `forge.math` (spec §4.4): trig, inverse trig
// (asin/acos as result<float,str> on domain error), exp, ln/log10/log2
// (result on non-positive input), pow, sqrt (result on negative input),
// plus the plain abs/floor/ceil/round/min/max/clamp and the pi/e
// constants. exp and pow return a plain float.
func NewMathModule() value.Module {
	m := value.NewModule("forge.math")
	mem := *m.Members

	unary := func(f func(float64) float64) func([]value.Value) (value.Value, error) {
		return func(args []value.Value) (value.Value, error) {
			x, err := floatArg(args, 0)
			if err != nil {
				return nil, err
			}
			return value.Float{Val: f(x)}, nil
		}
	}
	domainGuarded := func(f func(float64) (float64, bool)) func([]value.Value) (value.Value, error) {
		return func(args []value.Value) (value.Value, error) {
			x, err := floatArg(args, 0)
			if err != nil {
				return nil, err
			}
			r, ok := f(x)
			if !ok {
				return value.Err(value.Str{Val: fmt.Sprintf("domain error for input %g", x)}), nil
			}
			return value.Ok(value.Float{Val: r}), nil
		}
	}

	mem["sin"] = &value.Builtin{Name: "forge.math.sin", Fn: unary(math.Sin)}
	mem["cos"] = &value.Builtin{Name: "forge.math.cos", Fn: unary(math.Cos)}
	mem["tan"] = &value.Builtin{Name: "forge.math.tan", Fn: unary(math.Tan)}
	mem["atan"] = &value.Builtin{Name: "forge.math.atan", Fn: unary(math.Atan)}
	mem["exp"] = &value.Builtin{Name: "forge.math.exp", Fn: unary(math.Exp)}
	mem["floor"] = &value.Builtin{Name: "forge.math.floor", Fn: unary(math.Floor)}
	mem["ceil"] = &value.Builtin{Name: "forge.math.ceil", Fn: unary(math.Ceil)}
	mem["round"] = &value.Builtin{Name: "forge.math.round", Fn: unary(math.Round)}
	mem["abs"] = &value.Builtin{Name: "forge.math.abs", Fn: absImpl}

	mem["asin"] = &value.Builtin{Name: "forge.math.asin", Fn: domainGuarded(func(x float64) (float64, bool) {
		if x < -1 || x > 1 {
			return 0, false
		}
		return math.Asin(x), true
	})}
	mem["acos"] = &value.Builtin{Name: "forge.math.acos", Fn: domainGuarded(func(x float64) (float64, bool) {
		if x < -1 || x > 1 {
			return 0, false
		}
		return math.Acos(x), true
	})}
	mem["ln"] = &value.Builtin{Name: "forge.math.ln", Fn: domainGuarded(func(x float64) (float64, bool) {
		if x <= 0 {
			return 0, false
		}
		return math.Log(x), true
	})}
	mem["log10"] = &value.Builtin{Name: "forge.math.log10", Fn: domainGuarded(func(x float64) (float64, bool) {
		if x <= 0 {
			return 0, false
		}
		return math.Log10(x), true
	})}
	mem["log2"] = &value.Builtin{Name: "forge.math.log2", Fn: domainGuarded(func(x float64) (float64, bool) {
		if x <= 0 {
			return 0, false
		}
		return math.Log2(x), true
	})}
	mem["sqrt"] = &value.Builtin{Name: "forge.math.sqrt", Fn: domainGuarded(func(x float64) (float64, bool) {
		if x < 0 {
			return 0, false
		}
		return math.Sqrt(x), true
	})}

	mem["atan2"] = &value.Builtin{Name: "forge.math.atan2", Fn: func(args []value.Value) (value.Value, error) {
		y, err := floatArg(args, 0)
		if err != nil {
			return nil, err
		}
		x, err := floatArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Float{Val: math.Atan2(y, x)}, nil
	}}
	mem["pow"] = &value.Builtin{Name: "forge.math.pow", Fn: func(args []value.Value) (value.Value, error) {
		base, err := floatArg(args, 0)
		if err != nil {
			return nil, err
		}
		exp, err := floatArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Float{Val: math.Pow(base, exp)}, nil
	}}
	mem["min"] = &value.Builtin{Name: "forge.math.min", Fn: func(args []value.Value) (value.Value, error) {
		return minMax(args, false)
	}}
	mem["max"] = &value.Builtin{Name: "forge.math.max", Fn: func(args []value.Value) (value.Value, error) {
		return minMax(args, true)
	}}
	mem["clamp"] = &value.Builtin{Name: "forge.math.clamp", Fn: clampImpl}

	mem["pi"] = value.Float{Val: math.Pi}
	mem["e"] = value.Float{Val: math.E}

	return m
}

func floatArg(args []value.Value, i int) (float64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	switch v := args[i].(type) {
	case value.Float:
		return v.Val, nil
	case value.Int:
		return float64(v.Val), nil
	default:
		return 0, fmt.Errorf("expected numeric argument, got %s", args[i].Type())
	}
}

func absImpl(args []value.Value) (value.Value, error) {
	switch v := args[0].(type) {
	case value.Int:
		if v.Val < 0 {
			return value.Int{Val: -v.Val}, nil
		}
		return v, nil
	case value.Float:
		return value.Float{Val: math.Abs(v.Val)}, nil
	default:
		return nil, fmt.Errorf("abs: expected numeric argument, got %s", v.Type())
	}
}

func minMax(args []value.Value, wantMax bool) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("expected at least one argument")
	}
	best := args[0]
	for _, v := range args[1:] {
		var replace bool
		var err error
		if wantMax {
			replace, err = value.Less(best, v)
		} else {
			replace, err = value.Less(v, best)
		}
		if err != nil {
			return nil, err
		}
		if replace {
			best = v
		}
	}
	return best, nil
}

func clampImpl(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("clamp: expected 3 arguments, got %d", len(args))
	}
	x, lo, hi := args[0], args[1], args[2]
	if lt, err := value.Less(x, lo); err != nil {
		return nil, err
	} else if lt {
		return lo, nil
	}
	if gt, err := value.Less(hi, x); err != nil {
		return nil, err
	} else if gt {
		return hi, nil
	}
	return x, nil
}
