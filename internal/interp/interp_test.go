package interp

import (
	"bytes"
	"testing"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/async"
	"github.com/apexforge/afns/internal/builtins"
	"github.com/apexforge/afns/internal/forge"
	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

// lazyRunner mirrors internal/session's indirection: the executor needs
// a Runner before the Interpreter it forwards to exists yet.
type lazyRunner struct{ it *Interpreter }

func (r *lazyRunner) Call(fn *value.Function, args []value.Value) (value.Value, error) {
	return r.it.CallFunction(fn, args)
}

func newTestInterp() *Interpreter {
	var buf bytes.Buffer
	ctx := forge.NewContext()
	runner := &lazyRunner{}
	ex := async.NewExecutor(runner, true)
	reg := builtins.New(&buf, ctx, ex)
	it := New(reg, ex)
	runner.it = it
	return it
}

func block(stmts ...ast.Stmt) *ast.Block { return &ast.Block{Stmts: stmts} }
func ret(e ast.Expr) *ast.ReturnStmt     { return &ast.ReturnStmt{Value: e} }
func lit(v value.Value) *ast.Literal {
	switch x := v.(type) {
	case value.Int:
		return &ast.Literal{Kind: ast.IntLit, Value: x.Val}
	case value.Str:
		return &ast.Literal{Kind: ast.StringLit, Value: x.Val}
	case value.Bool:
		return &ast.Literal{Kind: ast.BoolLit, Value: x.Val}
	default:
		panic("lit: unsupported value kind in test helper")
	}
}

func callApex(t *testing.T, it *Interpreter) (value.Value, error) {
	t.Helper()
	apex, err := it.Apex()
	require.NoError(t, err)
	return it.CallFunction(apex, nil)
}

func TestRegisterFileDefinesFunctionsAndFindsApex(t *testing.T) {
	it := newTestInterp()
	file := &ast.File{Items: []ast.Item{
		&ast.FuncDecl{Name: "apex", Body: block(ret(lit(value.Int{Val: 42})))},
	}}
	require.NoError(t, it.RegisterFile(file))
	v, err := callApex(t, it)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 42}, v)
}

func TestApexMissingErrors(t *testing.T) {
	it := newTestInterp()
	require.NoError(t, it.RegisterFile(&ast.File{}))
	_, err := it.Apex()
	require.Error(t, err)
}

func TestStructConstructionPositionalAndFieldAccess(t *testing.T) {
	it := newTestInterp()
	pointDecl := &ast.StructDecl{Name: "Point", Fields: []string{"x", "y"}}
	it.structs["Point"] = pointDecl

	v, err := it.constructStructPositional(pointDecl, []value.Value{value.Int{Val: 1}, value.Int{Val: 2}})
	require.NoError(t, err)
	st, ok := v.(value.Struct)
	require.True(t, ok)
	require.Equal(t, value.Int{Val: 1}, (*st.Fields)["x"])
}

func TestStructConstructionPositionalArityMismatch(t *testing.T) {
	it := newTestInterp()
	decl := &ast.StructDecl{Name: "Point", Fields: []string{"x", "y"}}
	_, err := it.constructStructPositional(decl, []value.Value{value.Int{Val: 1}})
	require.Error(t, err)
}

func TestStructLitRequiresEveryFieldNoExtras(t *testing.T) {
	it := newTestInterp()
	it.structs["Point"] = &ast.StructDecl{Name: "Point", Fields: []string{"x", "y"}}
	lit := &ast.StructLitExpr{TypeName: "Point"}

	_, err := it.constructStructLit(lit, map[string]value.Value{"x": value.Int{Val: 1}})
	require.Error(t, err, "missing field y")

	_, err = it.constructStructLit(lit, map[string]value.Value{
		"x": value.Int{Val: 1}, "y": value.Int{Val: 2}, "z": value.Int{Val: 3},
	})
	require.Error(t, err, "unknown field z")

	v, err := it.constructStructLit(lit, map[string]value.Value{"x": value.Int{Val: 1}, "y": value.Int{Val: 2}})
	require.NoError(t, err)
	require.Equal(t, "Point", v.(value.Struct).TypeName)
}

func TestEnumConstructionArityAndUnknownVariant(t *testing.T) {
	it := newTestInterp()
	it.enums["Shape"] = &ast.EnumDecl{Name: "Shape", Variants: []ast.EnumVariantDecl{
		{Name: "Circle", Arity: 1},
		{Name: "Point", Arity: 0},
	}}

	v, err := it.constructEnum("Shape", "Circle", []value.Value{value.Int{Val: 3}})
	require.NoError(t, err)
	ev := v.(value.EnumVariant)
	require.Equal(t, "Circle", ev.Variant)
	require.Equal(t, []value.Value{value.Int{Val: 3}}, ev.Payload)

	_, err = it.constructEnum("Shape", "Circle", nil)
	require.Error(t, err, "arity mismatch")

	_, err = it.constructEnum("Shape", "Square", nil)
	require.Error(t, err, "unknown variant")
}

func TestInherentMethodWinsOverTraitMethod(t *testing.T) {
	it := newTestInterp()
	inherent := &ast.FuncDecl{Name: "describe", Params: []ast.Param{{Name: "self"}},
		Body: block(ret(lit(value.Str{Val: "inherent"})))}
	traitImpl := &ast.FuncDecl{Name: "describe", Params: []ast.Param{{Name: "self"}},
		Body: block(ret(lit(value.Str{Val: "trait"})))}
	it.registerImpl(&ast.ImplDecl{Type: "Widget", Methods: []*ast.FuncDecl{inherent}})
	it.registerImpl(&ast.ImplDecl{Type: "Widget", Trait: "Describable", Methods: []*ast.FuncDecl{traitImpl}})

	resolved, err := it.resolveMethod("Widget", "describe")
	require.NoError(t, err)
	require.Same(t, inherent, resolved)
}

func TestAmbiguousMethodAcrossTwoTraitsErrors(t *testing.T) {
	it := newTestInterp()
	a := &ast.FuncDecl{Name: "render", Params: []ast.Param{{Name: "self"}}}
	b := &ast.FuncDecl{Name: "render", Params: []ast.Param{{Name: "self"}}}
	it.registerImpl(&ast.ImplDecl{Type: "Widget", Trait: "Drawable", Methods: []*ast.FuncDecl{a}})
	it.registerImpl(&ast.ImplDecl{Type: "Widget", Trait: "Renderable", Methods: []*ast.FuncDecl{b}})

	_, err := it.resolveMethod("Widget", "render")
	require.ErrorContains(t, err, "ambiguous method render")
}

func TestDispatchTraitMethodCallsTheMatchingTraitImpl(t *testing.T) {
	it := newTestInterp()
	fn := &ast.FuncDecl{
		Name:   "describe",
		Params: []ast.Param{{Name: "self"}},
		Body:   block(ret(lit(value.Str{Val: "drawn"}))),
	}
	it.registerImpl(&ast.ImplDecl{Type: "int", Trait: "Drawable", Methods: []*ast.FuncDecl{fn}})

	v, err := it.dispatchTraitMethod("Drawable", "describe", value.Int{Val: 1}, nil)
	require.NoError(t, err)
	require.Equal(t, value.Str{Val: "drawn"}, v)
}

func TestDispatchTraitMethodRequiresImplementation(t *testing.T) {
	it := newTestInterp()
	_, err := it.dispatchTraitMethod("Drawable", "describe", value.Int{Val: 1}, nil)
	require.ErrorContains(t, err, "does not implement trait")
}

func TestModuleAliasImportResolvesAndIsOverriddenByLocalBinding(t *testing.T) {
	it := newTestInterp()
	it.registerImport(&ast.ImportDecl{Path: "vec", Alias: "v"})
	mod, err := it.resolveModuleAlias(it.moduleAliases["v"])
	require.NoError(t, err)
	_, isModule := mod.(value.Module)
	require.True(t, isModule)

	file := &ast.File{
		Imports: []*ast.ImportDecl{{Path: "vec", Alias: "v"}},
		Items: []ast.Item{
			&ast.FuncDecl{Name: "apex", Body: block(
				&ast.LetStmt{Name: "v", Value: lit(value.Int{Val: 9})},
				ret(&ast.Ident{Name: "v"}),
			)},
		},
	}
	fresh := newTestInterp()
	require.NoError(t, fresh.RegisterFile(file))
	v, err := callApex(t, fresh)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 9}, v, "a local let binding must shadow a same-named module import")
}
