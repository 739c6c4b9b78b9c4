// Package ffi binds a vendored package's native/jvm manifest exports to
// host-provided Values (spec §4.3). Kept separate from internal/loader
// so the loader stays pure path-resolution/caching and the host-function
// registry lives on its own. Nothing in cmd/afns or internal/session
// creates or populates an Adapter.
package ffi

import (
	"fmt"

	"github.com/apexforge/afns/internal/manifest"
	"github.com/apexforge/afns/internal/value"
)

// HostBinding is a concrete host function a native/jvm export resolves
// to. Anything unregistered degrades to a stub that errors only when
// called, rather than failing the whole package load (spec §4.3: "a
// native binding failure must not prevent the rest of the package from
// loading").
type HostBinding func(args []value.Value) (value.Value, error)

// Adapter binds a manifest's native/jvm exports into builtin Values.
type Adapter struct {
	bindings map[string]HostBinding // keyed "package/export"
}

// NewAdapter builds an empty Adapter; Register wires concrete bindings.
func NewAdapter() *Adapter {
	return &Adapter{bindings: make(map[string]HostBinding)}
}

// Register wires a concrete host implementation for pkgName's export.
func (a *Adapter) Register(pkgName, exportName string, fn HostBinding) {
	a.bindings[pkgName+"/"+exportName] = fn
}

// Bind produces Values for every native/jvm export in m, one per
// export, never failing the whole package: an export with no
// registered binding becomes a builtin that errors only if called.
func (a *Adapter) Bind(pkgName string, m *manifest.Manifest) map[string]value.Value {
	out := make(map[string]value.Value)
	for _, ex := range m.NativeExports() {
		key := pkgName + "/" + ex.Name
		fn, ok := a.bindings[key]
		if !ok {
			fn = unboundStub(pkgName, ex)
		}
		out[ex.Name] = &value.Builtin{Name: ex.Name, Fn: fn}
	}
	return out
}

func unboundStub(pkgName string, ex manifest.Export) HostBinding {
	return func(args []value.Value) (value.Value, error) {
		return nil, fmt.Errorf("no host binding registered for %s export %s/%s (symbol %s)",
			ex.Kind, pkgName, ex.Name, ex.Symbol)
	}
}
