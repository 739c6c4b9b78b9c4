// Package env implements the lexically-scoped environment (spec §3, §4.2).
package env

import (
	"fmt"

	"github.com/apexforge/afns/internal/value"
)

type binding struct {
	val     value.Value
	mutable bool
}

// Environment maps identifiers to Values with parent-chain lookup.
// `let` bindings may only be re-declared by shadowing in a nested scope;
// `var` bindings allow reassignment through Assign.
type Environment struct {
	vars   map[string]*binding
	parent *Environment
}

// New creates a root environment with no parent.
func New() *Environment {
	return &Environment{vars: make(map[string]*binding)}
}

// Child creates a fresh scope whose parent is e. Block and loop bodies,
// function calls, switch arms, try/catch, and pattern-binding sites all
// create a child scope (spec §4.2 push_scope/pop_scope).
func (e *Environment) Child() *Environment {
	return &Environment{vars: make(map[string]*binding), parent: e}
}

// Define inserts a new binding in the current scope. It errors if the
// name already exists in THIS scope (same-scope re-declaration is
// disallowed; shadowing in a nested scope is fine).
func (e *Environment) Define(name string, val value.Value, mutable bool) error {
	if _, exists := e.vars[name]; exists {
		return fmt.Errorf("'%s' is already declared in this scope", name)
	}
	e.vars[name] = &binding{val: val, mutable: mutable}
	return nil
}

// Lookup searches the scope chain for name.
func (e *Environment) Lookup(name string) (value.Value, error) {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			return b.val, nil
		}
	}
	return nil, fmt.Errorf("unbound identifier %s", name)
}

// Assign searches the scope chain and overwrites an existing binding.
// It never creates a new binding, and requires the binding to have been
// declared mutable (`var`); assigning a `let` binding is an error.
func (e *Environment) Assign(name string, val value.Value) error {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			if !b.mutable {
				return fmt.Errorf("cannot assign to immutable binding '%s'", name)
			}
			b.val = val
			return nil
		}
	}
	return fmt.Errorf("unbound identifier %s", name)
}

// Has reports whether name is bound anywhere in the scope chain.
func (e *Environment) Has(name string) bool {
	_, err := e.Lookup(name)
	return err == nil
}

// IsMutable reports whether name was declared with `var` (mutable) or
// `let` (immutable), and whether it is bound at all. Used by method
// dispatch to check a `self_mut` receiver's binding (spec §4.5:
// "cannot borrow immutable value as mutable").
func (e *Environment) IsMutable(name string) (mutable bool, found bool) {
	for scope := e; scope != nil; scope = scope.parent {
		if b, ok := scope.vars[name]; ok {
			return b.mutable, true
		}
	}
	return false, false
}
