package diag

import "fmt"

// Report is the structured diagnostic every runtime error is wrapped in
// before being flattened to the plain-string stderr contract of spec §7.
// Grounded in the teacher's Report type (code/phase/message/data), trimmed
// to what the runtime core needs (no source Span — that belongs to the
// external front end's own diagnostics).
type Report struct {
	Code    Code
	Kind    Kind
	Phase   string
	Message string
	Data    map[string]any
}

// Error implements the `error` interface.
func (r *Report) Error() string { return string(r.Kind) + ": " + r.Message }

// New builds a Report for kind with message, stamping the stable code.
func New(kind Kind, phase, message string) *Report {
	return &Report{Code: codeByKind[kind], Kind: kind, Phase: phase, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, phase, format string, args ...any) *Report {
	return New(kind, phase, fmt.Sprintf(format, args...))
}

// UserMessage renders the exact stderr line spec §7 requires: no code,
// no phase — just "error: <message>" (callers prepend that prefix).
func (r *Report) UserMessage() string { return r.Message }
