package interp

import (
	"testing"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/diag"
	"github.com/apexforge/afns/internal/value"
	"github.com/stretchr/testify/require"
)

func TestLetBindingIsImmutableVarIsMutable(t *testing.T) {
	it := newTestInterp()
	scope := it.Global.Child()
	_, err := it.execStmt(&ast.LetStmt{Name: "a", Value: lit(value.Int{Val: 1}), Mutable: false}, scope)
	require.NoError(t, err)
	err = scope.Assign("a", value.Int{Val: 2})
	require.Error(t, err, "assigning to a let binding must fail")

	_, err = it.execStmt(&ast.LetStmt{Name: "b", Value: lit(value.Int{Val: 1}), Mutable: true}, scope)
	require.NoError(t, err)
	require.NoError(t, scope.Assign("b", value.Int{Val: 2}))
}

func TestAssignToStructFieldMutatesInPlace(t *testing.T) {
	it := newTestInterp()
	it.structs["Point"] = &ast.StructDecl{Name: "Point", Fields: []string{"x"}}
	pv, err := it.constructStructPositional(it.structs["Point"], []value.Value{value.Int{Val: 1}})
	require.NoError(t, err)

	scope := it.Global.Child()
	require.NoError(t, scope.Define("p", pv, true))
	err = it.execAssign(&ast.AssignStmt{
		Target: &ast.FieldTarget{Target: &ast.Ident{Name: "p"}, Field: "x"},
		Value:  lit(value.Int{Val: 99}),
	}, scope)
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 99}, (*pv.(value.Struct).Fields)["x"])
}

func TestAssignToUnknownFieldErrors(t *testing.T) {
	it := newTestInterp()
	it.structs["Point"] = &ast.StructDecl{Name: "Point", Fields: []string{"x"}}
	pv, err := it.constructStructPositional(it.structs["Point"], []value.Value{value.Int{Val: 1}})
	require.NoError(t, err)
	scope := it.Global.Child()
	require.NoError(t, scope.Define("p", pv, true))
	err = it.execAssign(&ast.AssignStmt{
		Target: &ast.FieldTarget{Target: &ast.Ident{Name: "p"}, Field: "z"},
		Value:  lit(value.Int{Val: 1}),
	}, scope)
	require.Error(t, err)
}

func TestAssignToMapIndexAlwaysInserts(t *testing.T) {
	it := newTestInterp()
	m := value.NewMap()
	scope := it.Global.Child()
	require.NoError(t, scope.Define("m", m, true))
	err := it.execAssign(&ast.AssignStmt{
		Target: &ast.IndexTarget{Target: &ast.Ident{Name: "m"}, Index: lit(value.Str{Val: "k"})},
		Value:  lit(value.Int{Val: 7}),
	}, scope)
	require.NoError(t, err)

	k, err := value.NewMapKey(value.Str{Val: "k"})
	require.NoError(t, err)
	require.Equal(t, value.Int{Val: 7}, (*m.Entries)[k])
}

func TestWhileLoopHonorsBreakAndContinue(t *testing.T) {
	it := newTestInterp()
	scope := it.Global.Child()
	require.NoError(t, scope.Define("i", value.Int{Val: 0}, true))
	require.NoError(t, scope.Define("sum", value.Int{Val: 0}, true))

	// while i < 5 { i = i + 1; if i == 3 { continue } if i == 5 { break } sum = sum + i }
	body := block(
		&ast.AssignStmt{Target: &ast.IdentTarget{Name: "i"}, Value: &ast.BinaryExpr{Op: "+", Left: &ast.Ident{Name: "i"}, Right: lit(value.Int{Val: 1})}},
		&ast.IfStmt{
			Cond: &ast.BinaryExpr{Op: "==", Left: &ast.Ident{Name: "i"}, Right: lit(value.Int{Val: 3})},
			Then: block(&ast.ContinueStmt{}),
		},
		&ast.IfStmt{
			Cond: &ast.BinaryExpr{Op: "==", Left: &ast.Ident{Name: "i"}, Right: lit(value.Int{Val: 5})},
			Then: block(&ast.BreakStmt{}),
		},
		&ast.AssignStmt{Target: &ast.IdentTarget{Name: "sum"}, Value: &ast.BinaryExpr{Op: "+", Left: &ast.Ident{Name: "sum"}, Right: &ast.Ident{Name: "i"}}},
	)
	stmt := &ast.WhileStmt{Cond: &ast.BinaryExpr{Op: "<", Left: &ast.Ident{Name: "i"}, Right: lit(value.Int{Val: 5})}, Body: body}
	_, err := it.execStmt(stmt, scope)
	require.NoError(t, err)
	sum, _ := scope.Lookup("sum")
	require.Equal(t, value.Int{Val: 1 + 2 + 4}, sum, "3 must be skipped by continue")
}

func TestForRangeIteratesHalfOpenBounds(t *testing.T) {
	it := newTestInterp()
	scope := it.Global.Child()
	require.NoError(t, scope.Define("total", value.Int{Val: 0}, true))
	stmt := &ast.ForStmt{
		Binder: "i", Kind: ast.ForRange,
		Low: lit(value.Int{Val: 0}), High: lit(value.Int{Val: 3}),
		Body: block(&ast.AssignStmt{
			Target: &ast.IdentTarget{Name: "total"},
			Value:  &ast.BinaryExpr{Op: "+", Left: &ast.Ident{Name: "total"}, Right: &ast.Ident{Name: "i"}},
		}),
	}
	require.NoError(t, it.execFor(stmt, scope))
	total, _ := scope.Lookup("total")
	require.Equal(t, value.Int{Val: 0 + 1 + 2}, total)
}

func TestForIterOverVecBindsEachElement(t *testing.T) {
	it := newTestInterp()
	scope := it.Global.Child()
	require.NoError(t, scope.Define("seen", value.NewVec(nil), true))
	stmt := &ast.ForStmt{
		Binder: "el", Kind: ast.ForIter,
		Iter: &ast.VecExpr{Elements: []ast.Expr{lit(value.Int{Val: 1}), lit(value.Int{Val: 2})}},
		Body: block(&ast.ExprStmt{Expr: &ast.MethodCallExpr{
			Receiver: &ast.Ident{Name: "seen"}, Name: "push", Args: []ast.Expr{&ast.Ident{Name: "el"}},
		}}),
	}
	require.NoError(t, it.execFor(stmt, scope))
	seen, _ := scope.Lookup("seen")
	require.Equal(t, 2, len(*seen.(value.Vec).Elems))
}

func TestTryCatchBindsCaughtMessage(t *testing.T) {
	it := newTestInterp()
	scope := it.Global.Child()
	stmt := &ast.TryStmt{
		Try:     block(&ast.ExprStmt{Expr: &ast.TryExpr{Expr: lit(value.Int{Val: 0})}}),
		CatchAs: "e",
		Catch:   block(ret(&ast.Ident{Name: "e"})),
	}
	_, err := it.execTry(stmt, scope)
	require.Error(t, err, "a ReturnSignal raised inside the catch block passes through uncaught")
	_, isReturn := err.(*diag.ReturnSignal)
	require.True(t, isReturn)
}

func TestTryPassesBreakSignalThroughUncaught(t *testing.T) {
	it := newTestInterp()
	scope := it.Global.Child()
	stmt := &ast.TryStmt{
		Try:   block(&ast.BreakStmt{}),
		Catch: block(),
	}
	_, err := it.execTry(stmt, scope)
	_, isBreak := err.(*diag.BreakSignal)
	require.True(t, isBreak)
}

func TestSwitchStmtDispatchesMatchingArmBody(t *testing.T) {
	it := newTestInterp()
	scope := it.Global.Child()
	require.NoError(t, scope.Define("out", value.Int{Val: 0}, true))
	stmt := &ast.SwitchStmt{
		Scrutinee: lit(value.Int{Val: 2}),
		Arms: []ast.SwitchStmtArm{
			{Pattern: &ast.LiteralPattern{Lit: &ast.Literal{Kind: ast.IntLit, Value: int64(1)}}, Body: block(&ast.AssignStmt{Target: &ast.IdentTarget{Name: "out"}, Value: lit(value.Int{Val: 10})})},
			{Pattern: &ast.WildcardPattern{}, Body: block(&ast.AssignStmt{Target: &ast.IdentTarget{Name: "out"}, Value: lit(value.Int{Val: 20})})},
		},
	}
	_, err := it.execSwitchStmt(stmt, scope)
	require.NoError(t, err)
	out, _ := scope.Lookup("out")
	require.Equal(t, value.Int{Val: 20}, out)
}
