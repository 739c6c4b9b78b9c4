package async

import (
	"time"

	"github.com/apexforge/afns/internal/value"
)

// Sleep schedules a future that becomes Ready(null) after d elapses
// (spec §4.9 Sleep(ms)).
func (ex *Executor) Sleep(d time.Duration) value.Future {
	f := &future{kind: kindSleep, status: StatusPending, wakeAt: ex.now().Add(d)}
	h := ex.alloc(f)
	ex.sleeping = append(ex.sleeping, f)
	return h
}

// Timeout races a future against a duration: if the inner future
// settles first, Timeout takes on its status and value; if d elapses
// first, the inner future is cancelled and Timeout resolves Ready with
// timeoutVal.
func (ex *Executor) Timeout(inner int64, d time.Duration, timeoutVal value.Value) value.Future {
	f := &future{kind: kindTimeout, status: StatusPending, pred: inner, wakeAt: ex.now().Add(d)}
	h := ex.alloc(f)
	ex.sleeping = append(ex.sleeping, f)
	ex.waitOn(inner, f.handle)
	f.onResolve = func(_ value.Value, _ bool) (value.Value, error) { return timeoutVal, nil }
	return h
}

// UserFunction creates a future that runs an async function's body,
// started the first time it is polled (spec §4.9 UserFunction(fn,args)).
func (ex *Executor) UserFunction(fn *value.Function, args []value.Value) value.Future {
	f := &future{kind: kindUserFunction, status: StatusPending, fn: fn, args: args}
	h := ex.alloc(f)
	ex.enqueueReady(f.handle)
	return h
}

// Spawn is UserFunction under a distinct kind tag, for diagnostics and
// Type() rendering; scheduling behavior is identical (spec §4.9 Spawn).
func (ex *Executor) Spawn(fn *value.Function, args []value.Value) value.Future {
	f := &future{kind: kindSpawn, status: StatusPending, fn: fn, args: args}
	h := ex.alloc(f)
	ex.enqueueReady(f.handle)
	return h
}

// Then resolves cb(result) once pred succeeds; a failed pred propagates
// unchanged without invoking cb (spec §4.9 Then).
func (ex *Executor) Then(pred int64, cb func(value.Value) (value.Value, error)) value.Future {
	f := &future{kind: kindThen, status: StatusPending, pred: pred}
	f.onResolve = func(v value.Value, failed bool) (value.Value, error) {
		if failed {
			return nil, &FailedError{Value: v}
		}
		return cb(v)
	}
	h := ex.alloc(f)
	ex.link(pred, f.handle)
	return h
}

// Catch resolves cb(failValue) when pred fails; a succeeding pred
// propagates its value unchanged (spec §4.9 Catch).
func (ex *Executor) Catch(pred int64, cb func(value.Value) (value.Value, error)) value.Future {
	f := &future{kind: kindCatch, status: StatusPending, pred: pred}
	f.onResolve = func(v value.Value, failed bool) (value.Value, error) {
		if !failed {
			return v, nil
		}
		return cb(v)
	}
	h := ex.alloc(f)
	ex.link(pred, f.handle)
	return h
}

// Finally runs cb regardless of pred's outcome, then re-surfaces pred's
// original status unless cb itself fails (spec §4.9 Finally).
func (ex *Executor) Finally(pred int64, cb func() error) value.Future {
	f := &future{kind: kindFinally, status: StatusPending, pred: pred}
	f.onResolve = func(v value.Value, failed bool) (value.Value, error) {
		if err := cb(); err != nil {
			return nil, err
		}
		if failed {
			return nil, &FailedError{Value: v}
		}
		return v, nil
	}
	h := ex.alloc(f)
	ex.link(pred, f.handle)
	return h
}

// link registers dependent to be polled once pred is terminal, running
// it immediately if pred already is.
func (ex *Executor) link(pred, dependent int64) {
	if pf, ok := ex.states[pred]; ok && terminal(pf.status) {
		ex.enqueueReady(dependent)
		return
	}
	ex.waitOn(pred, dependent)
}

// All waits for every handle to succeed, yielding a Vec of results in
// input order; the first failure fails All and cancels the remaining
// siblings (spec §4.9 All).
func (ex *Executor) All(handles []int64) value.Future {
	f := &future{kind: kindAll, status: StatusPending, group: handles, groupResults: make([]value.Value, len(handles))}
	h := ex.alloc(f)
	f.children = append([]int64{}, handles...)
	if len(handles) == 0 {
		ex.settle(f, StatusReady, value.NewVec(nil), nil)
		return h
	}
	for _, ch := range handles {
		ex.link(ch, f.handle)
	}
	return h
}

// Any resolves with whichever handle succeeds first; fails only if
// every handle fails, with the last failure's value (spec §4.9 Any).
func (ex *Executor) Any(handles []int64) value.Future {
	f := &future{kind: kindAny, status: StatusPending, group: handles}
	h := ex.alloc(f)
	f.children = append([]int64{}, handles...)
	if len(handles) == 0 {
		ex.settle(f, StatusFailed, nil, value.Str{Val: "Any: empty future set"})
		return h
	}
	for _, ch := range handles {
		ex.link(ch, f.handle)
	}
	return h
}

// Race resolves or fails with whichever handle settles first, cancelling
// the rest (spec §4.9 Race).
func (ex *Executor) Race(handles []int64) value.Future {
	f := &future{kind: kindRace, status: StatusPending, group: handles}
	h := ex.alloc(f)
	f.children = append([]int64{}, handles...)
	for _, ch := range handles {
		ex.link(ch, f.handle)
	}
	return h
}

// poll advances f by exactly one step. Combinators that depend on a
// predecessor re-check that predecessor's now-terminal state; kinds
// started via an enqueue-at-creation (UserFunction/Spawn/Timeout) run
// their body on first poll.
func (ex *Executor) poll(f *future) {
	switch f.kind {
	case kindSleep:
		ex.settle(f, StatusReady, value.Null{}, nil)

	case kindUserFunction, kindSpawn:
		if f.started {
			return
		}
		f.started = true
		result, err := ex.runner.Call(f.fn, f.args)
		ex.settleFromErr(f, result, err)

	case kindTimeout:
		pf, ok := ex.states[f.pred]
		if ok && terminal(pf.status) {
			ex.settle(f, pf.status, pf.result, pf.failVal)
			return
		}
		ex.Cancel(f.pred)
		result, _ := f.onResolve(nil, false)
		ex.settle(f, StatusReady, result, nil)

	case kindThen, kindCatch, kindFinally:
		pf, ok := ex.states[f.pred]
		if !ok || !terminal(pf.status) {
			return
		}
		ex.settleFromPred(f, pf)

	case kindAll:
		ex.pollAll(f)

	case kindAny:
		ex.pollAny(f)

	case kindRace:
		ex.pollRace(f)
	}
}

func (ex *Executor) settleFromErr(f *future, result value.Value, err error) {
	if err == nil {
		ex.settle(f, StatusReady, result, nil)
		return
	}
	if fe, ok := err.(*FailedError); ok {
		ex.settle(f, StatusFailed, nil, fe.Value)
		return
	}
	if _, ok := err.(*CancelledError); ok {
		ex.settle(f, StatusCancelled, nil, nil)
		return
	}
	ex.settle(f, StatusFailed, nil, value.Str{Val: err.Error()})
}

func (ex *Executor) settleFromPred(f *future, pf *future) {
	failed := pf.status == StatusFailed
	if pf.status == StatusCancelled {
		ex.settle(f, StatusCancelled, nil, nil)
		return
	}
	result, err := f.onResolve(valueOrFail(pf, failed), failed)
	ex.settleFromErr(f, result, err)
}

func valueOrFail(pf *future, failed bool) value.Value {
	if failed {
		return pf.failVal
	}
	return pf.result
}

func (ex *Executor) pollAll(f *future) {
	pending := false
	for i, ch := range f.group {
		cf, ok := ex.states[ch]
		if !ok || !terminal(cf.status) {
			pending = true
			continue
		}
		if cf.status == StatusFailed {
			ex.settle(f, StatusFailed, nil, cf.failVal)
			return
		}
		if cf.status == StatusCancelled {
			ex.settle(f, StatusCancelled, nil, nil)
			return
		}
		f.groupResults[i] = cf.result
	}
	if pending {
		return
	}
	ex.settle(f, StatusReady, value.NewVec(append([]value.Value{}, f.groupResults...)), nil)
}

func (ex *Executor) pollAny(f *future) {
	var lastFail value.Value
	allTerminal := true
	for _, ch := range f.group {
		cf, ok := ex.states[ch]
		if !ok || !terminal(cf.status) {
			allTerminal = false
			continue
		}
		if cf.status == StatusReady {
			ex.settle(f, StatusReady, cf.result, nil)
			ex.cancelChildren(f)
			return
		}
		if cf.status == StatusFailed {
			lastFail = cf.failVal
		}
	}
	if allTerminal {
		ex.settle(f, StatusFailed, nil, lastFail)
	}
}

func (ex *Executor) pollRace(f *future) {
	if f.firstDone {
		return
	}
	for _, ch := range f.group {
		cf, ok := ex.states[ch]
		if !ok || !terminal(cf.status) {
			continue
		}
		f.firstDone = true
		switch cf.status {
		case StatusReady:
			ex.settle(f, StatusReady, cf.result, nil)
		case StatusFailed:
			ex.settle(f, StatusFailed, nil, cf.failVal)
		default:
			ex.settle(f, StatusCancelled, nil, nil)
		}
		ex.cancelChildren(f)
		return
	}
}
