package forge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

func newFsCtx(t *testing.T) *Context {
	t.Helper()
	ctx := NewContext()
	ctx.Env.Sandbox = t.TempDir()
	ctx.Grant("fs")
	return ctx
}

func TestFsWriteThenReadRoundTrips(t *testing.T) {
	ctx := newFsCtx(t)
	m := NewFsModule(ctx)

	v := call(t, m, "write_string", value.Str{Val: "out.txt"}, value.Str{Val: "hello"})
	require.Equal(t, value.Ok(value.Null{}), v)

	v = call(t, m, "read_to_string", value.Str{Val: "out.txt"})
	require.Equal(t, value.Ok(value.Str{Val: "hello"}), v)
}

func TestFsReadMissingFileReturnsErr(t *testing.T) {
	ctx := newFsCtx(t)
	m := NewFsModule(ctx)
	v := call(t, m, "read_to_string", value.Str{Val: "missing.txt"})
	ev, ok := v.(value.EnumVariant)
	require.True(t, ok)
	require.Equal(t, "Err", ev.Variant)
}

func TestFsExists(t *testing.T) {
	ctx := newFsCtx(t)
	m := NewFsModule(ctx)
	require.Equal(t, value.Ok(value.Bool{Val: false}), call(t, m, "exists", value.Str{Val: "nope.txt"}))
	call(t, m, "write_string", value.Str{Val: "nope.txt"}, value.Str{Val: ""})
	require.Equal(t, value.Ok(value.Bool{Val: true}), call(t, m, "exists", value.Str{Val: "nope.txt"}))
}

func TestFsWithoutCapabilityFails(t *testing.T) {
	ctx := NewContext()
	ctx.Env.Sandbox = t.TempDir()
	m := NewFsModule(ctx)
	b := (*m.Members)["read_to_string"].(*value.Builtin)
	_, err := b.Fn([]value.Value{value.Str{Val: "x.txt"}})
	require.Error(t, err)
	var capErr *CapabilityError
	require.ErrorAs(t, err, &capErr)
}

func TestFsSandboxJoinsPath(t *testing.T) {
	ctx := newFsCtx(t)
	m := NewFsModule(ctx)
	call(t, m, "write_string", value.Str{Val: "sub.txt"}, value.Str{Val: "v"})
	expected := filepath.Join(ctx.Env.Sandbox, "sub.txt")
	_, err := os.Stat(expected)
	require.NoError(t, err)
}
