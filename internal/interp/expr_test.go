package interp

import (
	"testing"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

func TestEvalBinaryArithmeticAndComparison(t *testing.T) {
	it := newTestInterp()
	e := it.Global
	v, err := it.evalBinary(&ast.BinaryExpr{Op: "+", Left: lit(value.Int{Val: 2}), Right: lit(value.Int{Val: 3})}, e)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 5}, v)

	v, err = it.evalBinary(&ast.BinaryExpr{Op: "<", Left: lit(value.Int{Val: 2}), Right: lit(value.Int{Val: 3})}, e)
	require.NoError(t, err)
	require.Equal(t, value.Bool{Val: true}, v)
}

func TestEvalBinaryPlusRejectsStringOperands(t *testing.T) {
	it := newTestInterp()
	_, err := it.evalBinary(&ast.BinaryExpr{
		Op: "+", Left: lit(value.Str{Val: "a"}), Right: lit(value.Str{Val: "b"}),
	}, it.Global)
	require.ErrorContains(t, err, "does not support strings")
}

func TestEvalBinaryLogicalShortCircuits(t *testing.T) {
	it := newTestInterp()
	// Right side errors if evaluated (not a bool literal); && with a false
	// left operand must short-circuit before reaching it.
	badRight := &ast.CallExpr{Callee: &ast.Ident{Name: "nonexistent"}}
	v, err := it.evalBinary(&ast.BinaryExpr{Op: "&&", Left: lit(value.Bool{Val: false}), Right: badRight}, it.Global)
	require.NoError(t, err)
	require.Equal(t, value.Bool{Val: false}, v)

	v, err = it.evalBinary(&ast.BinaryExpr{Op: "||", Left: lit(value.Bool{Val: true}), Right: badRight}, it.Global)
	require.NoError(t, err)
	require.Equal(t, value.Bool{Val: true}, v)
}

func TestEvalBinaryLogicalRejectsNonBoolOperands(t *testing.T) {
	it := newTestInterp()
	_, err := it.evalBinary(&ast.BinaryExpr{Op: "&&", Left: lit(value.Int{Val: 1}), Right: lit(value.Bool{Val: true})}, it.Global)
	require.Error(t, err)
}

func TestIdentLookupPrefersLocalBindingOverModuleAlias(t *testing.T) {
	it := newTestInterp()
	it.moduleAliases["x"] = aliasTarget{modulePath: "vec"}
	scope := it.Global.Child()
	require.NoError(t, scope.Define("x", value.Int{Val: 1}, false))
	v, err := it.evalExpr(&ast.Ident{Name: "x"}, scope)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 1}, v)
}

func TestFieldExprReadsStructField(t *testing.T) {
	it := newTestInterp()
	st := value.NewStruct("Point", map[string]value.Value{"x": value.Int{Val: 7}})
	scope := it.Global.Child()
	require.NoError(t, scope.Define("p", st, false))
	v, err := it.evalExpr(&ast.FieldExpr{Target: &ast.Ident{Name: "p"}, Field: "x"}, scope)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 7}, v)
}

func TestIndexExprOnVecAndOutOfBounds(t *testing.T) {
	it := newTestInterp()
	vecExpr := &ast.VecExpr{Elements: []ast.Expr{lit(value.Int{Val: 10}), lit(value.Int{Val: 20})}}
	v, err := it.evalExpr(&ast.IndexExpr{Target: vecExpr, Index: lit(value.Int{Val: 1})}, it.Global)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 20}, v)

	_, err = it.evalExpr(&ast.IndexExpr{Target: vecExpr, Index: lit(value.Int{Val: 5})}, it.Global)
	require.Error(t, err)
}

func TestSwitchExprMatchesEnumPatternAndBindsPayload(t *testing.T) {
	it := newTestInterp()
	scrutinee := value.EnumVariant{EnumName: "Option", Variant: "Some", Payload: []value.Value{value.Int{Val: 5}}}
	sw := &ast.SwitchExpr{
		Scrutinee: &ast.Ident{Name: "scrutinee"},
		Arms: []ast.SwitchArm{
			{Pattern: &ast.EnumPattern{TypeName: "Option", Variant: "Some", Binds: []string{"n"}}, Body: &ast.Ident{Name: "n"}},
			{Pattern: &ast.WildcardPattern{}, Body: lit(value.Int{Val: -1})},
		},
	}
	scope := it.Global.Child()
	require.NoError(t, scope.Define("scrutinee", scrutinee, false))
	v, err := it.evalSwitch(sw, scope)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 5}, v)
}

func TestSwitchExprNonExhaustiveErrors(t *testing.T) {
	it := newTestInterp()
	scrutinee := value.EnumVariant{EnumName: "Option", Variant: "None"}
	sw := &ast.SwitchExpr{
		Scrutinee: &ast.Ident{Name: "scrutinee"},
		Arms: []ast.SwitchArm{
			{Pattern: &ast.EnumPattern{TypeName: "Option", Variant: "Some", Binds: []string{"n"}}, Body: &ast.Ident{Name: "n"}},
		},
	}
	scope := it.Global.Child()
	require.NoError(t, scope.Define("scrutinee", scrutinee, false))
	_, err := it.evalSwitch(sw, scope)
	require.ErrorContains(t, err, "non-exhaustive switch")
}

func TestCheckExprBindsItAndTakesFirstTrueGuard(t *testing.T) {
	it := newTestInterp()
	check := &ast.SwitchExpr{
		IsCheck:   true,
		Scrutinee: lit(value.Int{Val: 10}),
		Arms: []ast.SwitchArm{
			{Guard: &ast.BinaryExpr{Op: ">", Left: &ast.Ident{Name: "it"}, Right: lit(value.Int{Val: 100})}, Body: lit(value.Str{Val: "big"})},
			{Guard: &ast.BinaryExpr{Op: ">", Left: &ast.Ident{Name: "it"}, Right: lit(value.Int{Val: 1})}, Body: lit(value.Str{Val: "small"})},
		},
	}
	v, err := it.evalSwitch(check, it.Global)
	require.NoError(t, err)
	require.Equal(t, value.Str{Val: "small"}, v)
}

func TestTryOperatorUnwrapsOkAndPropagatesErr(t *testing.T) {
	it := newTestInterp()
	ok := value.EnumVariant{EnumName: "Result", Variant: "Ok", Payload: []value.Value{value.Int{Val: 1}}}
	v, err := it.evalTry(&ast.TryExpr{Expr: lit(value.Int{Val: 0})}, it.Global)
	require.Nil(t, v)
	require.Error(t, err, "non-option/result operand must error")

	scope := it.Global.Child()
	require.NoError(t, scope.Define("ok", ok, false))
	v, err = it.evalTry(&ast.TryExpr{Expr: &ast.Ident{Name: "ok"}}, scope)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 1}, v)

	failed := value.EnumVariant{EnumName: "Result", Variant: "Err", Payload: []value.Value{value.Str{Val: "bad"}}}
	require.NoError(t, scope.Define("failed", failed, false))
	_, err = it.evalTry(&ast.TryExpr{Expr: &ast.Ident{Name: "failed"}}, scope)
	require.Error(t, err)
}

func TestAwaitDrivesExecutorToCompletion(t *testing.T) {
	it := newTestInterp()
	fn := &value.Function{Params: nil, Body: block(ret(lit(value.Int{Val: 99}))), Env: it.Global}
	fut := it.Executor.Spawn(fn, nil)
	scope := it.Global.Child()
	require.NoError(t, scope.Define("f", fut, false))
	v, err := it.evalAwait(&ast.AwaitExpr{Expr: &ast.Ident{Name: "f"}}, scope)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 99}, v)
}

func TestMethodCallFallsBackToVecBuiltin(t *testing.T) {
	it := newTestInterp()
	vecExpr := &ast.VecExpr{Elements: []ast.Expr{lit(value.Int{Val: 1})}}
	v, err := it.evalMethodCall(&ast.MethodCallExpr{Receiver: vecExpr, Name: "len"}, it.Global)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 1}, v)
}

func TestMethodCallSelfMutRequiresMutableReceiver(t *testing.T) {
	it := newTestInterp()
	mutating := &ast.FuncDecl{
		Name:   "bump",
		Params: []ast.Param{{Name: "self", SelfMut: true}},
		Body:   block(ret(lit(value.Int{Val: 0}))),
	}
	it.registerImpl(&ast.ImplDecl{Type: "Point", Methods: []*ast.FuncDecl{mutating}})
	it.structs["Point"] = &ast.StructDecl{Name: "Point", Fields: []string{"x"}}

	pv, err := it.constructStructPositional(it.structs["Point"], []value.Value{value.Int{Val: 1}})
	require.NoError(t, err)

	scope := it.Global.Child()
	require.NoError(t, scope.Define("p", pv, false)) // let, immutable

	_, err = it.evalMethodCall(&ast.MethodCallExpr{Receiver: &ast.Ident{Name: "p"}, Name: "bump"}, scope)
	require.ErrorContains(t, err, "requires self_mut")
}
