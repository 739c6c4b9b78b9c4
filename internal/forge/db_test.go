package forge

import (
	"testing"

	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

func newDbCtx() *Context {
	ctx := NewContext()
	ctx.Grant("db")
	return ctx
}

func TestDbPutGetRoundTrips(t *testing.T) {
	m := NewDbModule(newDbCtx())
	require.Equal(t, value.Ok(value.Null{}), call(t, m, "put", value.Str{Val: "k"}, value.Int{Val: 7}))
	require.Equal(t, value.Ok(value.Some(value.Int{Val: 7})), call(t, m, "get", value.Str{Val: "k"}))
}

func TestDbGetMissingKeyReturnsNone(t *testing.T) {
	m := NewDbModule(newDbCtx())
	require.Equal(t, value.Ok(value.None()), call(t, m, "get", value.Str{Val: "absent"}))
}

func TestDbDeleteRemovesKey(t *testing.T) {
	m := NewDbModule(newDbCtx())
	call(t, m, "put", value.Str{Val: "k"}, value.Int{Val: 1})
	call(t, m, "delete", value.Str{Val: "k"})
	require.Equal(t, value.Ok(value.None()), call(t, m, "get", value.Str{Val: "k"}))
}

func TestDbWithoutCapabilityFails(t *testing.T) {
	m := NewDbModule(NewContext())
	b := (*m.Members)["get"].(*value.Builtin)
	_, err := b.Fn([]value.Value{value.Str{Val: "k"}})
	require.Error(t, err)
}
