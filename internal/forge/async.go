package forge

import (
	"fmt"
	"time"

	"github.com/apexforge/afns/internal/async"
	"github.com/apexforge/afns/internal/value"
)

// NewAsyncModule builds `forge.async` (spec §4.9): thin builtin wrappers
// that allocate futures on the shared executor and hand back their
// handles as value.Future. internal/interp's `await` expression is what
// actually drives ex.Run; these builtins only ever enqueue.
func NewAsyncModule(ex *async.Executor) value.Module {
	m := value.NewModule("forge.async")
	mem := *m.Members

	mem["sleep"] = &value.Builtin{Name: "forge.async.sleep", Fn: func(args []value.Value) (value.Value, error) {
		ms, err := intArg(args, 0)
		if err != nil {
			return nil, err
		}
		return ex.Sleep(time.Duration(ms) * time.Millisecond), nil
	}}
	mem["timeout"] = &value.Builtin{Name: "forge.async.timeout", Fn: func(args []value.Value) (value.Value, error) {
		inner, err := futureArg(args, 0)
		if err != nil {
			return nil, err
		}
		ms, err := intArg(args, 1)
		if err != nil {
			return nil, err
		}
		var timeoutVal value.Value = value.Null{}
		if len(args) > 2 {
			timeoutVal = args[2]
		}
		return ex.Timeout(inner, time.Duration(ms)*time.Millisecond, timeoutVal), nil
	}}
	mem["spawn"] = &value.Builtin{Name: "forge.async.spawn", Fn: func(args []value.Value) (value.Value, error) {
		fn, err := fnArg(args, 0)
		if err != nil {
			return nil, err
		}
		return ex.Spawn(fn, args[1:]), nil
	}}
	mem["all"] = &value.Builtin{Name: "forge.async.all", Fn: func(args []value.Value) (value.Value, error) {
		handles, err := futureHandles(args, 0)
		if err != nil {
			return nil, err
		}
		return ex.All(handles), nil
	}}
	mem["any"] = &value.Builtin{Name: "forge.async.any", Fn: func(args []value.Value) (value.Value, error) {
		handles, err := futureHandles(args, 0)
		if err != nil {
			return nil, err
		}
		return ex.Any(handles), nil
	}}
	mem["race"] = &value.Builtin{Name: "forge.async.race", Fn: func(args []value.Value) (value.Value, error) {
		handles, err := futureHandles(args, 0)
		if err != nil {
			return nil, err
		}
		return ex.Race(handles), nil
	}}
	mem["cancel"] = &value.Builtin{Name: "forge.async.cancel", Fn: func(args []value.Value) (value.Value, error) {
		f, err := futureArg(args, 0)
		if err != nil {
			return nil, err
		}
		ex.Cancel(f)
		return value.Null{}, nil
	}}

	return m
}

func futureArg(args []value.Value, i int) (int64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing future argument %d", i)
	}
	f, ok := args[i].(value.Future)
	if !ok {
		return 0, fmt.Errorf("expected future argument, got %s", args[i].Type())
	}
	return f.Handle, nil
}

func fnArg(args []value.Value, i int) (*value.Function, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing function argument %d", i)
	}
	fn, ok := args[i].(*value.Function)
	if !ok {
		return nil, fmt.Errorf("expected function argument, got %s", args[i].Type())
	}
	return fn, nil
}

func futureHandles(args []value.Value, i int) ([]int64, error) {
	if i >= len(args) {
		return nil, fmt.Errorf("missing vec-of-futures argument %d", i)
	}
	v, ok := args[i].(value.Vec)
	if !ok {
		return nil, fmt.Errorf("expected vec of futures, got %s", args[i].Type())
	}
	handles := make([]int64, len(*v.Elems))
	for idx, e := range *v.Elems {
		f, ok := e.(value.Future)
		if !ok {
			return nil, fmt.Errorf("expected future element, got %s", e.Type())
		}
		handles[idx] = f.Handle
	}
	return handles, nil
}
