package diag

import "github.com/apexforge/afns/internal/value"

// The tree-walking evaluator (internal/interp) communicates non-local
// control flow back up the Go call stack through the ordinary `error`
// return channel, using the signal types below instead of panic/recover.
// This mirrors spec §4.6's call-frame state machine
// (Entered -> Evaluating -> Returned | Propagated | Panicked) while
// staying within normal Go control flow.

// ReturnSignal unwinds to the nearest enclosing function call.
type ReturnSignal struct{ Value value.Value }

func (r *ReturnSignal) Error() string { return "return" }

// BreakSignal unwinds to the nearest enclosing loop.
type BreakSignal struct{}

func (b *BreakSignal) Error() string { return "break" }

// ContinueSignal unwinds to the nearest enclosing loop's next iteration.
type ContinueSignal struct{}

func (c *ContinueSignal) Error() string { return "continue" }

// PropagatedSignal is an Err(_)/None value carried out of a function by
// the `?` operator (error kind 8). Value is the full Err/None
// EnumVariant being returned, already in the function's result shape.
type PropagatedSignal struct{ Value value.Value }

func (p *PropagatedSignal) Error() string { return "propagated: " + p.Value.String() }

// ThrowSignal is raised by forge.error.throw (error kind 9); it carries
// its message string and is caught by try/catch as that string.
type ThrowSignal struct{ Message string }

func (t *ThrowSignal) Error() string { return t.Message }

// PanicSignal is raised by panic(msg) or an internal invariant violation
// (error kind 10). Caught by try as "panic: <message>"; if uncaught,
// aborts the program with a non-zero exit status (spec §4.8, §7).
type PanicSignal struct{ Message string }

func (p *PanicSignal) Error() string { return "panic: " + p.Message }

// CatchString renders the value a `try/catch` binds into its catch scope
// for any of the ten error kinds, per spec §7: the string for kinds
// 1-7 and 9-10, the original Err payload Value for kind 8.
func CatchString(err error) (value.Value, bool) {
	switch e := err.(type) {
	case *PropagatedSignal:
		if ev, ok := e.Value.(value.EnumVariant); ok && len(ev.Payload) > 0 {
			return ev.Payload[0], true
		}
		return value.Null{}, true
	case *ThrowSignal:
		return value.Str{Val: e.Message}, true
	case *PanicSignal:
		return value.Str{Val: "panic: " + e.Message}, true
	case *Report:
		return value.Str{Val: e.Message}, true
	case *ReturnSignal, *BreakSignal, *ContinueSignal:
		return nil, false
	default:
		if err == nil {
			return nil, false
		}
		return value.Str{Val: err.Error()}, true
	}
}

// IsLoopOrReturnSignal reports whether err is one of the three signals
// that must pass through try/catch uncaught (spec §4.6).
func IsLoopOrReturnSignal(err error) bool {
	switch err.(type) {
	case *ReturnSignal, *BreakSignal, *ContinueSignal:
		return true
	default:
		return false
	}
}
