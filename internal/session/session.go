// Package session implements the interpreter facade (spec §4.10, C10):
// wiring the builtins registry, loader, FFI adapter, and interp package
// together, running a program's entry point to completion, and
// rendering an unhandled error to stderr with the right exit status.
//
// Grounded on the teacher's ModuleRuntime (load dependencies, then
// evaluate in dependency order, caching each module's evaluation via
// sync.Once) — generalized from the teacher's type-checked Core IR
// pipeline down to this runtime's untyped AST, and from the teacher's
// hard circular-import error to the loader's cycle-tolerant semantics
// (AFNS has no type checker to make a forward reference unsound).
package session

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/apexforge/afns/internal/async"
	"github.com/apexforge/afns/internal/builtins"
	"github.com/apexforge/afns/internal/diag"
	"github.com/apexforge/afns/internal/ffi"
	"github.com/apexforge/afns/internal/forge"
	"github.com/apexforge/afns/internal/interp"
	"github.com/apexforge/afns/internal/loader"
	"github.com/apexforge/afns/internal/manifest"
	"github.com/apexforge/afns/internal/value"
)

// Options configures a Run (spec §6 CLI knobs).
type Options struct {
	Roots       loader.Roots
	Parse       loader.ParseFunc
	Caps        []string // capability grants, e.g. "fs", "net", "db"
	Locale      string   // APEXRC_LOCALE
	Sandbox     string   // forge.fs root
	VirtualTime bool     // deterministic executor clock
	Stdout      io.Writer
	Stderr      io.Writer
}

// Session owns one program run's wiring: registry, loader, interpreter,
// executor.
type Session struct {
	opts     Options
	Loader   *loader.Loader
	Registry *builtins.Registry
	Executor *async.Executor
	Interp   *interp.Interpreter
}

// New builds a Session, granting the requested capabilities and seeding
// the builtin registry (spec §4.10 step 1: "init registry/builtins").
func New(opts Options) *Session {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	ctx := forge.NewContext()
	ctx.Env.Locale = opts.Locale
	if opts.Sandbox != "" {
		ctx.Env.Sandbox = opts.Sandbox
	}
	for _, c := range opts.Caps {
		ctx.Grant(c)
	}

	ld := loader.New(opts.Roots, opts.Parse)

	sess := &Session{opts: opts, Loader: ld}
	runner := &lazyRunner{session: sess}
	ex := async.NewExecutor(runner, opts.VirtualTime)
	sess.Executor = ex
	sess.Registry = builtins.New(opts.Stdout, ctx, ex)
	sess.Interp = interp.New(sess.Registry, ex)
	return sess
}

// lazyRunner defers to Session.Interp, which isn't built yet at the
// point the Executor needs a Runner reference (the two are mutually
// referential: Interp needs ex, ex needs a Runner that calls into Interp).
type lazyRunner struct{ session *Session }

func (r *lazyRunner) Call(fn *value.Function, args []value.Value) (value.Value, error) {
	return r.session.Interp.CallFunction(fn, args)
}

// LoadVendored parses a vendored package's manifest and binds any
// native/jvm exports through the FFI adapter (spec §4.3's vendored tier,
// C3's FFI adapter), skipping (non-fatally) any export the host has no
// binding for. adapter carries whatever host bindings the caller
// registered on it.
func (s *Session) LoadVendored(manifestPath string, adapter *ffi.Adapter) error {
	doc, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}
	members := adapter.Bind(doc.Name, doc)
	mod := value.NewModule(doc.Name)
	for name, v := range members {
		(*mod.Members)[name] = v
	}
	s.Registry.Modules[doc.Name] = mod
	return nil
}

// Run loads entryPath's transitive imports, registers every unit's
// top-level items (declarations-then-apex, spec §4.10 steps 2-4), then
// calls apex() and drives the executor to termination for an async
// entry point (spec §6: "fun apex()" or "async fun apex()").
func (s *Session) Run(entryPath string) (value.Value, error) {
	src, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read entry file %s: %w", entryPath, err)
	}
	entry, err := s.opts.Parse(entryPath, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry file %s: %w", entryPath, err)
	}

	units, err := s.Loader.LoadAll(entry)
	if err != nil {
		return nil, err
	}
	for _, u := range units {
		if err := s.Interp.RegisterFile(u.File); err != nil {
			return nil, fmt.Errorf("failed to register module %s: %w", u.Identity, err)
		}
	}
	if err := s.Interp.RegisterFile(entry); err != nil {
		return nil, err
	}

	apex, err := s.Interp.Apex()
	if err != nil {
		return nil, err
	}

	if !apex.Async {
		return s.Interp.CallFunction(apex, nil)
	}

	fut := s.Executor.Spawn(apex, nil)
	return s.Executor.Run(fut.Handle)
}

// RunToStderr runs entryPath and, on an unhandled error, writes the
// spec §7 stderr contract ("error: <message>" / "panic: <message>") and
// returns the matching process exit status: 0 on success, 2 for a
// panic, 1 for any other error.
func (s *Session) RunToStderr(entryPath string) int {
	_, err := s.Run(entryPath)
	if err == nil {
		return 0
	}
	switch e := err.(type) {
	case *diag.PanicSignal:
		fmt.Fprintf(s.opts.Stderr, "panic: %s\n", e.Message)
		return 2
	case *diag.ThrowSignal:
		fmt.Fprintf(s.opts.Stderr, "error: %s\n", e.Message)
		return 1
	case *diag.PropagatedSignal:
		fmt.Fprintf(s.opts.Stderr, "error: %s\n", e.Value.String())
		return 1
	case *diag.Report:
		fmt.Fprintf(s.opts.Stderr, "error: %s\n", e.Message)
		return 1
	default:
		fmt.Fprintf(s.opts.Stderr, "error: %s\n", err.Error())
		return 1
	}
}

// Check loads and registers entryPath's module graph without calling
// apex(), surfacing load/registration errors and a missing apex() entry
// point (the `afns check` subcommand's "no-run" behavior).
func (s *Session) Check(entryPath string) error {
	src, err := os.ReadFile(entryPath)
	if err != nil {
		return fmt.Errorf("failed to read entry file %s: %w", entryPath, err)
	}
	entry, err := s.opts.Parse(entryPath, src)
	if err != nil {
		return fmt.Errorf("failed to parse entry file %s: %w", entryPath, err)
	}
	units, err := s.Loader.LoadAll(entry)
	if err != nil {
		return err
	}
	for _, u := range units {
		if err := s.Interp.RegisterFile(u.File); err != nil {
			return fmt.Errorf("failed to register module %s: %w", u.Identity, err)
		}
	}
	if err := s.Interp.RegisterFile(entry); err != nil {
		return err
	}
	_, err = s.Interp.Apex()
	return err
}

// CaptureOutput builds Options whose Stdout is an in-memory buffer, for
// tests that assert on forge.log output (teacher's eval test idiom of
// asserting against a captured writer rather than stdout itself).
func CaptureOutput(opts Options) (*Options, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	opts.Stdout = buf
	return &opts, buf
}
