package forge

import (
	"testing"

	"github.com/apexforge/afns/internal/diag"
	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

func TestErrorNewFormats(t *testing.T) {
	m := NewErrorModule()
	v := call(t, m, "new", value.Str{Val: "E42"}, value.Str{Val: "boom"})
	require.Equal(t, value.Str{Val: "[E42] boom"}, v)
}

func TestErrorWrapPrependsContext(t *testing.T) {
	m := NewErrorModule()
	v := call(t, m, "wrap", value.Str{Val: "disk full"}, value.Str{Val: "writing cache"})
	require.Equal(t, value.Str{Val: "writing cache: disk full"}, v)
}

func TestErrorThrowRaisesThrowSignal(t *testing.T) {
	m := NewErrorModule()
	b := (*m.Members)["throw"].(*value.Builtin)
	_, err := b.Fn([]value.Value{value.Str{Val: "bad state"}})
	var ts *diag.ThrowSignal
	require.ErrorAs(t, err, &ts)
	require.Equal(t, "bad state", ts.Message)
}
