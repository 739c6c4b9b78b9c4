package forge

import (
	"testing"

	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

func newTestStrModule() value.Module {
	return NewStrModule(NewContext())
}

func call(t *testing.T, m value.Module, name string, args ...value.Value) value.Value {
	t.Helper()
	b, ok := (*m.Members)[name].(*value.Builtin)
	require.True(t, ok, "missing builtin %s", name)
	v, err := b.Fn(args)
	require.NoError(t, err)
	return v
}

func TestStrLen(t *testing.T) {
	m := newTestStrModule()
	v := call(t, m, "len", value.Str{Val: "hello"})
	require.Equal(t, value.Int{Val: 5}, v)
}

func TestStrToUpperLower(t *testing.T) {
	m := newTestStrModule()
	require.Equal(t, value.Str{Val: "HELLO"}, call(t, m, "to_upper", value.Str{Val: "hello"}))
	require.Equal(t, value.Str{Val: "hello"}, call(t, m, "to_lower", value.Str{Val: "HELLO"}))
}

func TestStrTrim(t *testing.T) {
	m := newTestStrModule()
	require.Equal(t, value.Str{Val: "hi"}, call(t, m, "trim", value.Str{Val: "  hi  "}))
}

func TestStrSplit(t *testing.T) {
	m := newTestStrModule()
	v := call(t, m, "split", value.Str{Val: "a,b,c"}, value.Str{Val: ","})
	vec, ok := v.(value.Vec)
	require.True(t, ok)
	elems := *vec.Elems
	require.Len(t, elems, 3)
	require.Equal(t, value.Str{Val: "b"}, elems[1])
}

func TestStrReplace(t *testing.T) {
	m := newTestStrModule()
	v := call(t, m, "replace", value.Str{Val: "foo bar foo"}, value.Str{Val: "foo"}, value.Str{Val: "baz"})
	require.Equal(t, value.Str{Val: "baz bar baz"}, v)
}

func TestStrFindFound(t *testing.T) {
	m := newTestStrModule()
	v := call(t, m, "find", value.Str{Val: "hello"}, value.Str{Val: "ll"})
	require.Equal(t, value.Some(value.Int{Val: 2}), v)
}

func TestStrFindNotFound(t *testing.T) {
	m := newTestStrModule()
	v := call(t, m, "find", value.Str{Val: "hello"}, value.Str{Val: "zz"})
	require.Equal(t, value.None(), v)
}

func TestStrPredicates(t *testing.T) {
	m := newTestStrModule()
	require.Equal(t, value.Bool{Val: true}, call(t, m, "contains", value.Str{Val: "hello"}, value.Str{Val: "ell"}))
	require.Equal(t, value.Bool{Val: true}, call(t, m, "starts_with", value.Str{Val: "hello"}, value.Str{Val: "he"}))
	require.Equal(t, value.Bool{Val: true}, call(t, m, "ends_with", value.Str{Val: "hello"}, value.Str{Val: "lo"}))
}

func TestStrToI32(t *testing.T) {
	m := newTestStrModule()
	require.Equal(t, value.Ok(value.Int{Val: 42}), call(t, m, "to_i32", value.Str{Val: "42"}))
	require.Equal(t, value.Err(value.Str{Val: `cannot parse "nope" as int`}), call(t, m, "to_i32", value.Str{Val: "nope"}))
}

func TestStrToF64(t *testing.T) {
	m := newTestStrModule()
	require.Equal(t, value.Ok(value.Float{Val: 3.5}), call(t, m, "to_f64", value.Str{Val: "3.5"}))
}
