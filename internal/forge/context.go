// Package forge implements the `forge.*` standard-library module family
// (spec §4.4 Built-in Library) that sits on top of internal/builtins'
// registration mechanics.
//
// Grounded on the teacher's internal/effects.EffContext: a deny-by-
// default capability map plus deterministic environment configuration
// (seed/locale/sandbox), generalized here from AILANG's IO/FS/Clock/Net
// effect names to this spec's forge.fs/forge.net/forge.db capability
// gates (spec §4.4: "fs/net/db builtins are synchronous and fail closed
// without an explicit capability grant").
package forge

import (
	"os"
	"strconv"
	"time"
)

// Capability is a named permission grant (spec §4.4: "fs", "net", "db").
type Capability struct{ Name string }

// Context holds capability grants plus deterministic runtime
// configuration threaded through every forge.* builtin.
type Context struct {
	Caps map[string]Capability
	Env  Env
	Net  *NetPolicy
}

// NetPolicy mirrors the teacher's NetContext: secure-by-default limits
// on outbound forge.net requests (timeout, body cap, redirect cap,
// https-only unless opted in, localhost blocked unless opted in).
type NetPolicy struct {
	Timeout        time.Duration
	MaxBytes       int64
	MaxRedirects   int
	AllowHTTP      bool
	AllowLocalhost bool
	AllowedHosts   []string
	UserAgent      string
}

// NewNetPolicy returns the secure defaults (spec §4.4: "forge.net ...
// synchronous wrappers around host I/O").
func NewNetPolicy() *NetPolicy {
	return &NetPolicy{
		Timeout:        30 * time.Second,
		MaxBytes:       5 * 1024 * 1024,
		MaxRedirects:   5,
		AllowHTTP:      false,
		AllowLocalhost: false,
		AllowedHosts:   nil,
		UserAgent:      "afns/0.1",
	}
}

// Env mirrors the teacher's EffEnv: OS-sourced knobs that make
// otherwise-nondeterministic builtins reproducible in tests.
type Env struct {
	Seed    int64
	Locale  string // APEXRC_LOCALE
	Sandbox string // APEXRC_FS_SANDBOX, root for forge.fs paths
}

// NewContext builds a Context from the process environment, granting
// nothing by default (spec: capabilities are opt-in, via the CLI's
// --caps flag wired in cmd/afns).
func NewContext() *Context {
	return &Context{Caps: make(map[string]Capability), Env: loadEnv(), Net: NewNetPolicy()}
}

// Grant adds a capability; idempotent.
func (c *Context) Grant(name string) { c.Caps[name] = Capability{Name: name} }

// HasCap reports whether name has been granted.
func (c *Context) HasCap(name string) bool {
	_, ok := c.Caps[name]
	return ok
}

// RequireCap returns a CapabilityError if name has not been granted.
func (c *Context) RequireCap(name string) error {
	if !c.HasCap(name) {
		return &CapabilityError{Capability: name}
	}
	return nil
}

// CapabilityError reports a missing capability grant. It is returned as
// a plain Go error; nothing wraps it in a diag.Report or gives it a
// diag.Kind.
type CapabilityError struct{ Capability string }

func (e *CapabilityError) Error() string {
	return "capability not granted: " + e.Capability
}

func loadEnv() Env {
	seed := int64(0)
	if s := os.Getenv("AFNS_SEED"); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			seed = parsed
		}
	}
	return Env{
		Seed:    seed,
		Locale:  getenvDefault("APEXRC_LOCALE", "und"),
		Sandbox: os.Getenv("APEXRC_FS_SANDBOX"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
