package async

import "github.com/apexforge/afns/internal/value"

// Handle wraps a raw handle int64 as the value.Future the interpreter
// threads through the program (spec §3 Future).
func Handle(h int64) value.Future { return value.Future{Handle: h} }

// IsPending reports whether handle is known and not yet terminal,
// without driving the executor.
func (ex *Executor) IsPending(handle int64) bool {
	f, ok := ex.states[handle]
	return ok && !terminal(f.status)
}
