package builtins

import (
	"bytes"
	"testing"

	"github.com/apexforge/afns/internal/async"
	"github.com/apexforge/afns/internal/forge"
	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

type stubRunner struct{}

func (stubRunner) Call(fn *value.Function, args []value.Value) (value.Value, error) {
	return value.Null{}, nil
}

func newTestRegistry() *Registry {
	var buf bytes.Buffer
	ctx := forge.NewContext()
	ex := async.NewExecutor(stubRunner{}, true)
	return New(&buf, ctx, ex)
}

func TestLookupResolvesDottedForgePath(t *testing.T) {
	r := newTestRegistry()
	v, ok := r.Lookup("forge.fs.read_to_string")
	require.True(t, ok)
	_, isBuiltin := v.(*value.Builtin)
	require.True(t, isBuiltin)
}

func TestLookupResolvesTopLevelModule(t *testing.T) {
	r := newTestRegistry()
	v, ok := r.Lookup("vec.push")
	require.True(t, ok)
	_, isBuiltin := v.(*value.Builtin)
	require.True(t, isBuiltin)
}

func TestLookupUnknownModuleFails(t *testing.T) {
	r := newTestRegistry()
	_, ok := r.Lookup("forge.nope.thing")
	require.False(t, ok)
}

func TestModuleResolvesByName(t *testing.T) {
	r := newTestRegistry()
	mod, ok := r.Module("forge.math")
	require.True(t, ok)
	_, hasPi := (*mod.Members)["pi"]
	require.True(t, hasPi)
}
