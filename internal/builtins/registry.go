package builtins

import (
	"io"

	"github.com/apexforge/afns/internal/async"
	"github.com/apexforge/afns/internal/forge"
	"github.com/apexforge/afns/internal/value"
)

// Registry is the global module table C4 seeds before loading any
// program source: the plain vec/map/set/option/result modules plus the
// nested forge.* family, each addressable by its dotted path (spec §6).
type Registry struct {
	Modules map[string]value.Module
}

// New builds the full registry. stdout is where forge.log writes;
// ctx carries capability grants and deterministic environment config;
// ex is the shared executor forge.async schedules onto.
func New(stdout io.Writer, ctx *forge.Context, ex *async.Executor) *Registry {
	r := &Registry{Modules: make(map[string]value.Module)}

	r.Modules["vec"] = NewVecModule()
	r.Modules["map"] = NewMapModule()
	r.Modules["set"] = NewSetModule()
	r.Modules["option"] = NewOptionModule()
	r.Modules["result"] = NewResultModule()

	r.Modules["forge.log"] = forge.NewLogModule(stdout)
	r.Modules["forge.math"] = forge.NewMathModule()
	r.Modules["forge.str"] = forge.NewStrModule(ctx)
	r.Modules["forge.error"] = forge.NewErrorModule()
	r.Modules["forge.fs"] = forge.NewFsModule(ctx)
	r.Modules["forge.net"] = forge.NewNetModule(ctx)
	r.Modules["forge.db"] = forge.NewDbModule(ctx)
	r.Modules["forge.async"] = forge.NewAsyncModule(ex)

	return r
}

// Lookup resolves a dotted path like "forge.fs.read_to_string" to its
// Builtin Value, or reports it unknown.
func (r *Registry) Lookup(dotted string) (value.Value, bool) {
	modPath, member := splitLast(dotted)
	mod, ok := r.Modules[modPath]
	if !ok {
		return nil, false
	}
	v, ok := (*mod.Members)[member]
	return v, ok
}

// Module resolves a registered module by its exact dotted name (e.g.
// "vec" or "forge.fs") for `obj.m(args)` dispatch when obj is a module
// alias binding (spec §4.5).
func (r *Registry) Module(name string) (value.Module, bool) {
	mod, ok := r.Modules[name]
	return mod, ok
}

func splitLast(dotted string) (string, string) {
	for i := len(dotted) - 1; i >= 0; i-- {
		if dotted[i] == '.' {
			return dotted[:i], dotted[i+1:]
		}
	}
	return "", dotted
}
