// Package ast defines the AST node contract the runtime core consumes.
//
// The lexer/parser front end is an external collaborator (see spec §1);
// this package exists so the evaluator has something concrete to walk.
// Nodes are plain data: no behavior beyond position reporting and the
// marker methods that let the Go type system distinguish expressions,
// statements, and patterns.
package ast

import "fmt"

// Pos is a source location, kept mainly for error messages.
type Pos struct {
	Line   int
	Column int
	File   string
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Node is the base interface implemented by every AST node.
type Node interface {
	Position() Pos
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Pattern is implemented by switch/check arm patterns.
type Pattern interface {
	Node
	patternNode()
}

// ResultKind describes a function's declared return shape, used by the
// `?` operator to decide whether a propagated None is legal (spec §4.5).
type ResultKind int

const (
	// ResultPlain is any non-option, non-result return type.
	ResultPlain ResultKind = iota
	ResultOption
	ResultResult
)

// File is a single parsed .afml source file.
type File struct {
	ModulePath string // dotted path this file contributes to, "" for a script
	Imports    []*ImportDecl
	Items      []Item
	Pos        Pos
}

func (f *File) Position() Pos { return f.Pos }

// Item is a top-level declaration: function, struct, enum, trait, impl,
// or nested module.
type Item interface {
	Node
	itemNode()
}

// ImportDecl covers `import a.b.c`, `import p as q`, and `import p::name as q`.
type ImportDecl struct {
	Path    string // dotted module path, e.g. "forge.str" or "a.b.c"
	Member  string // set for `import p::name`, else ""
	Alias   string // local binding name; defaults to last path segment or Member
	Pos     Pos
}

func (i *ImportDecl) Position() Pos { return i.Pos }

// Param is a function parameter; SelfMut marks a trait/impl method's
// receiver parameter as requiring a mutable binding (spec §4.5).
type Param struct {
	Name    string
	SelfMut bool
}

// FuncDecl is `fun name(params) -> RetKind { body }` or its `async` form.
type FuncDecl struct {
	Name    string
	Params  []Param
	Async   bool
	Result  ResultKind
	Body    *Block
	Pos     Pos
}

func (f *FuncDecl) Position() Pos { return f.Pos }
func (f *FuncDecl) itemNode()     {}

// StructDecl declares a named record type.
type StructDecl struct {
	Name   string
	Fields []string
	Pos    Pos
}

func (s *StructDecl) Position() Pos { return s.Pos }
func (s *StructDecl) itemNode()     {}

// EnumVariantDecl is one variant of an EnumDecl, arity fixed at definition.
type EnumVariantDecl struct {
	Name  string
	Arity int
}

// EnumDecl declares a sum type.
type EnumDecl struct {
	Name     string
	Variants []EnumVariantDecl
	Pos      Pos
}

func (e *EnumDecl) Position() Pos { return e.Pos }
func (e *EnumDecl) itemNode()     {}

// TraitDecl declares a named set of method signatures (names only; the
// runtime core never checks signatures, only resolves by name).
type TraitDecl struct {
	Name    string
	Methods []string
	Pos     Pos
}

func (t *TraitDecl) Position() Pos { return t.Pos }
func (t *TraitDecl) itemNode()     {}

// ImplDecl is `impl Type { ... }` (Trait == "") or `impl Trait for Type { ... }`.
type ImplDecl struct {
	Trait   string // "" for an inherent impl
	Type    string
	Methods []*FuncDecl
	Pos     Pos
}

func (i *ImplDecl) Position() Pos { return i.Pos }
func (i *ImplDecl) itemNode()     {}

// ModuleItem is a nested `module name { ... }` block.
type ModuleItem struct {
	Name  string
	Items []Item
	Pos   Pos
}

func (m *ModuleItem) Position() Pos { return m.Pos }
func (m *ModuleItem) itemNode()     {}

// Block is a brace-delimited sequence of statements; its value (in
// expression position) is the trailing expression statement's value,
// or null if none.
type Block struct {
	Stmts []Stmt
	Pos   Pos
}

func (b *Block) Position() Pos { return b.Pos }
func (b *Block) exprNode()     {}
func (b *Block) stmtNode()     {}
