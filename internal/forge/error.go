package forge

import (
	"fmt"

	"github.com/apexforge/afns/internal/diag"
	"github.com/apexforge/afns/internal/value"
)

// NewErrorModule builds `forge.error` (spec §4.4): new(code,msg) formats
// a code-tagged message string, wrap(err,ctx) prepends context to an
// existing error string, and throw(msg) raises a classified Throw
// (error kind 9, spec §4.8) that only try/catch can intercept.
func NewErrorModule() value.Module {
	m := value.NewModule("forge.error")
	mem := *m.Members

	mem["new"] = &value.Builtin{Name: "forge.error.new", Fn: func(args []value.Value) (value.Value, error) {
		code, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		msg, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Str{Val: fmt.Sprintf("[%s] %s", code, msg)}, nil
	}}
	mem["wrap"] = &value.Builtin{Name: "forge.error.wrap", Fn: func(args []value.Value) (value.Value, error) {
		inner, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		ctx, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Str{Val: fmt.Sprintf("%s: %s", ctx, inner)}, nil
	}}
	mem["throw"] = &value.Builtin{Name: "forge.error.throw", Fn: func(args []value.Value) (value.Value, error) {
		msg, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return nil, &diag.ThrowSignal{Message: msg}
	}}

	return m
}
