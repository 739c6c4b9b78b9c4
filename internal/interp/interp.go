// Package interp implements the tree-walking evaluator (C5 Expression
// Evaluator, C6 Statement Executor, C7 Struct/Enum/Trait Dispatch) that
// sits on top of internal/value, internal/env, internal/diag, and
// internal/async. Grounded on the teacher's SimpleEvaluator (env held on
// the struct, recursive evalExpr/evalNode switch over the AST), adapted
// from AILANG's typed AST to this runtime's untyped one and from
// panic/recover-free single evaluation to the non-local control-flow
// signal types internal/diag defines.
package interp

import (
	"fmt"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/async"
	"github.com/apexforge/afns/internal/builtins"
	"github.com/apexforge/afns/internal/env"
	"github.com/apexforge/afns/internal/value"
)

// implDecl pairs a method's declaration with the trait it was declared
// under, "" for an inherent impl.
type implDecl struct {
	trait string
	fn    *ast.FuncDecl
}

// Interpreter is the shared evaluation context: global bindings, the
// struct/enum/trait/impl tables C7 dispatches through, the module
// registry C4 seeds, and the executor C9 drives `await` through.
type Interpreter struct {
	Global   *env.Environment
	Registry *builtins.Registry
	Executor *async.Executor

	structs map[string]*ast.StructDecl
	enums   map[string]*ast.EnumDecl
	traits  map[string]*ast.TraitDecl

	// methods[TypeName][MethodName] holds every impl block's declaration
	// of that method, inherent impls carrying "" as the trait; two or
	// more trait-sourced entries with no inherent override is how C7
	// detects an ambiguous method (spec §4.7).
	methods map[string]map[string][]implDecl

	// traitImpls[TypeName] is the set of trait names Type has an `impl
	// Trait for Type` block for, used to resolve `Trait::method(value,…)`.
	traitImpls map[string]map[string]bool

	// moduleAliases maps a local import alias to the dotted module path
	// or member it resolves to (spec §4.3 import forms).
	moduleAliases map[string]aliasTarget
}

type aliasTarget struct {
	modulePath string
	member     string // "" unless this is a `p::name` item import
}

// New builds an Interpreter with empty dispatch tables, ready to
// register file items via RegisterFile.
func New(reg *builtins.Registry, ex *async.Executor) *Interpreter {
	return &Interpreter{
		Global:        env.New(),
		Registry:      reg,
		Executor:      ex,
		structs:       make(map[string]*ast.StructDecl),
		enums:         make(map[string]*ast.EnumDecl),
		traits:        make(map[string]*ast.TraitDecl),
		methods:       make(map[string]map[string][]implDecl),
		traitImpls:    make(map[string]map[string]bool),
		moduleAliases: make(map[string]aliasTarget),
	}
}

// RegisterFile collects a parsed file's top-level items (functions,
// structs, enums, traits, impls, imports, nested modules) into the
// interpreter's tables, mirroring the teacher's evalFile declaration
// pass (spec §4.3: "collecting functions, structs, enums, traits,
// impls, and nested modules").
func (it *Interpreter) RegisterFile(f *ast.File) error {
	for _, imp := range f.Imports {
		it.registerImport(imp)
	}
	for _, item := range f.Items {
		if err := it.registerItem(item); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) registerImport(imp *ast.ImportDecl) {
	alias := imp.Alias
	if alias == "" {
		alias = imp.Member
		if alias == "" {
			alias = lastSegment(imp.Path)
		}
	}
	it.moduleAliases[alias] = aliasTarget{modulePath: imp.Path, member: imp.Member}
}

func lastSegment(dotted string) string {
	last := dotted
	for i := len(dotted) - 1; i >= 0; i-- {
		if dotted[i] == '.' {
			return dotted[i+1:]
		}
	}
	return last
}

func (it *Interpreter) registerItem(item ast.Item) error {
	switch decl := item.(type) {
	case *ast.FuncDecl:
		fn := &value.Function{Params: paramNames(decl.Params), Body: decl.Body, Env: it.Global, Async: decl.Async}
		return it.Global.Define(decl.Name, fn, false)
	case *ast.StructDecl:
		it.structs[decl.Name] = decl
		return nil
	case *ast.EnumDecl:
		it.enums[decl.Name] = decl
		return nil
	case *ast.TraitDecl:
		it.traits[decl.Name] = decl
		return nil
	case *ast.ImplDecl:
		it.registerImpl(decl)
		return nil
	case *ast.ModuleItem:
		for _, sub := range decl.Items {
			if err := it.registerItem(sub); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown item kind %T", item)
	}
}

func (it *Interpreter) registerImpl(decl *ast.ImplDecl) {
	table, ok := it.methods[decl.Type]
	if !ok {
		table = make(map[string][]implDecl)
		it.methods[decl.Type] = table
	}
	for _, m := range decl.Methods {
		table[m.Name] = append(table[m.Name], implDecl{trait: decl.Trait, fn: m})
	}
	if decl.Trait != "" {
		set, ok := it.traitImpls[decl.Type]
		if !ok {
			set = make(map[string]bool)
			it.traitImpls[decl.Type] = set
		}
		set[decl.Trait] = true
	}
}

func paramNames(params []ast.Param) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// Apex locates the program's entry point function (spec §6: "`fun
// apex()` or `async fun apex()`; no parameters accepted").
func (it *Interpreter) Apex() (*value.Function, error) {
	v, err := it.Global.Lookup("apex")
	if err != nil {
		return nil, fmt.Errorf("no apex() entry point found")
	}
	fn, ok := v.(*value.Function)
	if !ok {
		return nil, fmt.Errorf("apex is not a function")
	}
	return fn, nil
}
