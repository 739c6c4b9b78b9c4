// Package loader implements module resolution and caching (spec §4.3
// Module Loader, C3).
//
// Grounded on the teacher's internal/module.Loader (path resolution,
// identity caching, load-stack cycle tracking) and internal/runtime's
// ModuleInstance (sync.Once-guarded single evaluation). Generalized in
// two ways the teacher doesn't need: a four-tier search order
// (stdlib -> vendor -> global cache -> project-local src/) instead of a
// flat search-path list, and cycle *tolerance* instead of the teacher's
// hard circular-dependency error, since AFNS has no type checker to
// reject forward references — LoadAll loads each import identity once
// and skips it when an import cycle leads back to it, so a cycle is not
// an error.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/apexforge/afns/internal/ast"
)

// ParseFunc turns source bytes into a File. The runtime has no
// lexer/parser of its own in scope (spec treats the concrete syntax as
// external); tests and cmd/afns supply this function.
type ParseFunc func(path string, src []byte) (*ast.File, error)

// Roots are the four search tiers, checked in spec §4.3 order.
type Roots struct {
	Stdlib      string // compiled-in or on-disk standard library root
	VendorDir   string // target/vendor/afml
	GlobalCache string // e.g. $HOME/.afns/cache
	ProjectSrc  string // project-local src/
}

// Unit is a loaded module: its parsed File plus a single-evaluation
// guard. Nothing in internal/interp or internal/session calls
// MarkLoaded; Session.Run registers each Unit that LoadAll returns.
type Unit struct {
	Identity string
	FilePath string
	File     *ast.File

	once    sync.Once
	evalErr error
	Loaded  bool // set by MarkLoaded once run has returned
}

// MarkLoaded calls run at most once and records its error; later calls
// return that error without calling run again.
func (u *Unit) MarkLoaded(run func() error) error {
	u.once.Do(func() {
		u.evalErr = run()
		u.Loaded = true
	})
	return u.evalErr
}

// Loader resolves AFNS import paths to parsed, cached Units.
type Loader struct {
	roots Roots
	parse ParseFunc

	mu       sync.Mutex
	cache    map[string]*Unit
	visiting map[string]bool // in-progress identities, for cycle tolerance
	stack    []string
}

// New builds a Loader. parse is required; roots may leave any tier
// blank to skip it.
func New(roots Roots, parse ParseFunc) *Loader {
	return &Loader{
		roots:    roots,
		parse:    parse,
		cache:    make(map[string]*Unit),
		visiting: make(map[string]bool),
	}
}

// candidateNames are the three file-naming conventions spec §4.3
// recognizes for an import path "a/b/c".
func candidateNames(base string) []string {
	return []string{
		base + ".afml",
		filepath.Join(base, "mod.afml"),
		filepath.Join(base, "lib.afml"),
	}
}

// resolve walks the four tiers in order, returning the first existing
// file for importPath.
func (l *Loader) resolve(importPath string) (string, error) {
	tiers := []string{l.roots.Stdlib, l.roots.VendorDir, l.roots.GlobalCache, l.roots.ProjectSrc}
	for _, tier := range tiers {
		if tier == "" {
			continue
		}
		for _, cand := range candidateNames(importPath) {
			full := filepath.Join(tier, cand)
			if info, err := os.Stat(full); err == nil && !info.IsDir() {
				return full, nil
			}
		}
	}
	return "", fmt.Errorf("module not found: %s (searched stdlib, vendor, cache, project src)", importPath)
}

// Load resolves, parses, and caches importPath. It does not follow the
// file's imports (LoadAll does). A Unit is cached only after it parses,
// so a concurrent Load of an identity still in progress gets an error,
// not a partial Unit.
func (l *Loader) Load(importPath string) (*Unit, error) {
	identity := normalize(importPath)

	l.mu.Lock()
	if u, ok := l.cache[identity]; ok {
		l.mu.Unlock()
		return u, nil
	}
	if l.visiting[identity] {
		// Another Load of this identity is in progress. The cache check
		// above found no Unit for it, so this reports an error.
		u := l.cache[identity]
		l.mu.Unlock()
		if u == nil {
			return nil, fmt.Errorf("module %s referenced before its own load began", identity)
		}
		return u, nil
	}
	l.visiting[identity] = true
	l.stack = append(l.stack, identity)
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		delete(l.visiting, identity)
		l.stack = l.stack[:len(l.stack)-1]
		l.mu.Unlock()
	}()

	path, err := l.resolve(importPath)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module %s: %w", identity, err)
	}
	file, err := l.parse(path, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse module %s: %w", identity, err)
	}

	unit := &Unit{Identity: identity, FilePath: path, File: file}
	l.mu.Lock()
	l.cache[identity] = unit
	l.mu.Unlock()
	return unit, nil
}

// LoadAll loads every import transitively reachable from entry's
// import list, used by the session facade (C10) before evaluation
// begins.
func (l *Loader) LoadAll(entry *ast.File) ([]*Unit, error) {
	var units []*Unit
	seen := make(map[string]bool)
	var walk func(f *ast.File) error
	walk = func(f *ast.File) error {
		for _, imp := range f.Imports {
			id := normalize(imp.Path)
			if seen[id] {
				continue
			}
			seen[id] = true
			u, err := l.Load(imp.Path)
			if err != nil {
				return err
			}
			units = append(units, u)
			if err := walk(u.File); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(entry); err != nil {
		return nil, err
	}
	return units, nil
}

func normalize(path string) string {
	path = strings.TrimSuffix(path, ".afml")
	return strings.ReplaceAll(path, "\\", "/")
}

// ResolutionTrace renders the current load stack for diagnostics, in
// the teacher's "Resolving X / -> import Y" shape.
func (l *Loader) ResolutionTrace() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	trace := make([]string, 0, len(l.stack))
	for i, id := range l.stack {
		if i == 0 {
			trace = append(trace, fmt.Sprintf("Resolving %s", id))
		} else {
			trace = append(trace, fmt.Sprintf("%s-> import %s", strings.Repeat("  ", i), id))
		}
	}
	return trace
}
