package forge

import (
	"fmt"
	"io"

	"github.com/apexforge/afns/internal/value"
)

// NewLogModule builds `forge.log` (spec §4.4): info/warn/error render
// every argument through the shared formatting rule (value.Join), space
// separated, newline terminated, written to out — never colorized,
// since program stdout must stay byte-exact (SPEC_FULL §4.4a; coloring
// is reserved for the interpreter's own --trace stream).
func NewLogModule(out io.Writer) value.Module {
	m := value.NewModule("forge.log")
	line := func(prefix string) func([]value.Value) (value.Value, error) {
		return func(args []value.Value) (value.Value, error) {
			msg := value.Join(args)
			if prefix != "" {
				msg = prefix + ": " + msg
			}
			fmt.Fprintln(out, msg)
			return value.Null{}, nil
		}
	}
	(*m.Members)["info"] = &value.Builtin{Name: "forge.log.info", Fn: line("")}
	(*m.Members)["warn"] = &value.Builtin{Name: "forge.log.warn", Fn: line("warn")}
	(*m.Members)["error"] = &value.Builtin{Name: "forge.log.error", Fn: line("error")}
	return m
}
