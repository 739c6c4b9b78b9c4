package ffi

import (
	"testing"

	"github.com/apexforge/afns/internal/manifest"
	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

func TestBindUsesRegisteredBinding(t *testing.T) {
	a := NewAdapter()
	a.Register("http", "get", func(args []value.Value) (value.Value, error) {
		return value.Str{Val: "got:" + args[0].String()}, nil
	})
	m := &manifest.Manifest{Name: "http", Version: "1.0.0", Exports: []manifest.Export{
		{Name: "get", Kind: manifest.ExportNative, Symbol: "afns_http_get"},
	}}
	bound := a.Bind("http", m)
	fn := bound["get"].(*value.Builtin)
	v, err := fn.Fn([]value.Value{value.Str{Val: "/x"}})
	require.NoError(t, err)
	require.Equal(t, value.Str{Val: "got:/x"}, v)
}

func TestBindUnregisteredProducesErroringStub(t *testing.T) {
	a := NewAdapter()
	m := &manifest.Manifest{Name: "http", Version: "1.0.0", Exports: []manifest.Export{
		{Name: "post", Kind: manifest.ExportNative, Symbol: "afns_http_post"},
	}}
	bound := a.Bind("http", m)
	fn := bound["post"].(*value.Builtin)
	_, err := fn.Fn(nil)
	require.Error(t, err)
}

func TestBindSkipsAfmlExports(t *testing.T) {
	a := NewAdapter()
	m := &manifest.Manifest{Name: "pure", Version: "1.0.0", Exports: []manifest.Export{
		{Name: "helper", Kind: manifest.ExportAFML},
	}}
	bound := a.Bind("pure", m)
	require.Empty(t, bound)
}
