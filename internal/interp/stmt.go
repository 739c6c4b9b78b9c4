package interp

import (
	"fmt"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/diag"
	"github.com/apexforge/afns/internal/env"
	"github.com/apexforge/afns/internal/value"
)

// execBlock runs a block's statements in a fresh child scope, returning
// the value of a trailing expression statement (spec §4.5: "Block (as
// expression): evaluates to its trailing statement's value, or null").
func (it *Interpreter) execBlock(b *ast.Block, parent *env.Environment) (value.Value, error) {
	scope := parent.Child()
	return it.execStmtsIn(b.Stmts, scope)
}

// execStmtsIn runs stmts directly in scope (no further child scope),
// used when the caller already created the scope a block's statements
// should share (a for-loop's binder scope, a catch scope, a switch arm's
// pattern scope).
func (it *Interpreter) execStmtsIn(stmts []ast.Stmt, scope *env.Environment) (value.Value, error) {
	var last value.Value = value.Null{}
	for _, s := range stmts {
		v, err := it.execStmt(s, scope)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (it *Interpreter) execStmt(s ast.Stmt, e *env.Environment) (value.Value, error) {
	switch stmt := s.(type) {
	case *ast.LetStmt:
		v, err := it.evalExpr(stmt.Value, e)
		if err != nil {
			return nil, err
		}
		if err := e.Define(stmt.Name, v, stmt.Mutable); err != nil {
			return nil, err
		}
		return value.Null{}, nil

	case *ast.AssignStmt:
		return value.Null{}, it.execAssign(stmt, e)

	case *ast.ReturnStmt:
		var v value.Value = value.Null{}
		if stmt.Value != nil {
			rv, err := it.evalExpr(stmt.Value, e)
			if err != nil {
				return nil, err
			}
			v = rv
		}
		return nil, &diag.ReturnSignal{Value: v}

	case *ast.BreakStmt:
		return nil, &diag.BreakSignal{}

	case *ast.ContinueStmt:
		return nil, &diag.ContinueSignal{}

	case *ast.IfStmt:
		cond, err := it.evalExpr(stmt.Cond, e)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("if condition must be bool, got %s", cond.Type())
		}
		if b.Val {
			return it.execBlock(stmt.Then, e)
		}
		if stmt.Else != nil {
			return it.execStmt(stmt.Else, e)
		}
		return value.Null{}, nil

	case *ast.WhileStmt:
		for {
			cond, err := it.evalExpr(stmt.Cond, e)
			if err != nil {
				return nil, err
			}
			b, ok := cond.(value.Bool)
			if !ok {
				return nil, fmt.Errorf("while condition must be bool, got %s", cond.Type())
			}
			if !b.Val {
				return value.Null{}, nil
			}
			if _, err := it.execBlock(stmt.Body, e); err != nil {
				if _, ok := err.(*diag.BreakSignal); ok {
					return value.Null{}, nil
				}
				if _, ok := err.(*diag.ContinueSignal); ok {
					continue
				}
				return nil, err
			}
		}

	case *ast.ForStmt:
		return value.Null{}, it.execFor(stmt, e)

	case *ast.TryStmt:
		return it.execTry(stmt, e)

	case *ast.SwitchStmt:
		return it.execSwitchStmt(stmt, e)

	case *ast.ExprStmt:
		return it.evalExpr(stmt.Expr, e)

	case *ast.Block:
		return it.execBlock(stmt, e)

	default:
		return nil, fmt.Errorf("unknown statement kind %T", s)
	}
}

func (it *Interpreter) execAssign(stmt *ast.AssignStmt, e *env.Environment) error {
	v, err := it.evalExpr(stmt.Value, e)
	if err != nil {
		return err
	}
	switch t := stmt.Target.(type) {
	case *ast.IdentTarget:
		return e.Assign(t.Name, v)
	case *ast.FieldTarget:
		target, err := it.evalExpr(t.Target, e)
		if err != nil {
			return err
		}
		st, ok := target.(value.Struct)
		if !ok {
			return fmt.Errorf("cannot assign field on non-struct value of type %s", target.Type())
		}
		if _, ok := (*st.Fields)[t.Field]; !ok {
			return fmt.Errorf("unknown field %s on %s", t.Field, st.TypeName)
		}
		(*st.Fields)[t.Field] = v
		return nil
	case *ast.IndexTarget:
		target, err := it.evalExpr(t.Target, e)
		if err != nil {
			return err
		}
		idx, err := it.evalExpr(t.Index, e)
		if err != nil {
			return err
		}
		return value.SetIndex(target, idx, v)
	default:
		return fmt.Errorf("unknown assignment target %T", stmt.Target)
	}
}

func (it *Interpreter) execFor(stmt *ast.ForStmt, e *env.Environment) error {
	runBody := func(binding value.Value) error {
		scope := e.Child()
		if err := scope.Define(stmt.Binder, binding, false); err != nil {
			return err
		}
		_, err := it.execStmtsIn(stmt.Body.Stmts, scope)
		return err
	}

	switch stmt.Kind {
	case ast.ForRange:
		lowV, err := it.evalExpr(stmt.Low, e)
		if err != nil {
			return err
		}
		highV, err := it.evalExpr(stmt.High, e)
		if err != nil {
			return err
		}
		low, ok := lowV.(value.Int)
		if !ok {
			return fmt.Errorf("for range bounds must be int, got %s", lowV.Type())
		}
		high, ok := highV.(value.Int)
		if !ok {
			return fmt.Errorf("for range bounds must be int, got %s", highV.Type())
		}
		for i := low.Val; i < high.Val; i++ {
			if err := runBody(value.Int{Val: i}); err != nil {
				if _, ok := err.(*diag.BreakSignal); ok {
					return nil
				}
				if _, ok := err.(*diag.ContinueSignal); ok {
					continue
				}
				return err
			}
		}
		return nil

	case ast.ForIter:
		iterV, err := it.evalExpr(stmt.Iter, e)
		if err != nil {
			return err
		}
		elems, err := iterableElements(iterV)
		if err != nil {
			return err
		}
		for _, el := range elems {
			if err := runBody(el); err != nil {
				if _, ok := err.(*diag.BreakSignal); ok {
					return nil
				}
				if _, ok := err.(*diag.ContinueSignal); ok {
					continue
				}
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown for-loop kind %v", stmt.Kind)
	}
}

func iterableElements(v value.Value) ([]value.Value, error) {
	switch x := v.(type) {
	case value.Vec:
		return *x.Elems, nil
	case value.Str:
		elems := make([]value.Value, 0, len(x.Val))
		for i := 0; i < len(x.Val); i++ {
			elems = append(elems, value.Char{Val: x.Val[i]})
		}
		return elems, nil
	case value.Set:
		elems := make([]value.Value, 0, len(*x.Order))
		for _, k := range *x.Order {
			elems = append(elems, k.Value())
		}
		return elems, nil
	default:
		return nil, fmt.Errorf("value of type %s is not iterable", v.Type())
	}
}

// execTry implements try/catch (spec §4.6, §4.8): Propagated/Throw/Panic
// signals are caught and the message bound into the catch body's scope;
// break/continue/return pass through uncaught.
func (it *Interpreter) execTry(stmt *ast.TryStmt, e *env.Environment) (value.Value, error) {
	v, err := it.execBlock(stmt.Try, e)
	if err == nil {
		return v, nil
	}
	if diag.IsLoopOrReturnSignal(err) {
		return nil, err
	}
	msg, caught := diag.CatchString(err)
	if !caught {
		return nil, err
	}
	scope := e.Child()
	if stmt.CatchAs != "" {
		if err := scope.Define(stmt.CatchAs, msg, false); err != nil {
			return nil, err
		}
	}
	return it.execStmtsIn(stmt.Catch.Stmts, scope)
}

func (it *Interpreter) execSwitchStmt(stmt *ast.SwitchStmt, e *env.Environment) (value.Value, error) {
	scrutinee, err := it.evalExpr(stmt.Scrutinee, e)
	if err != nil {
		return nil, err
	}
	for _, arm := range stmt.Arms {
		scope := e.Child()
		ok, err := it.matchPattern(arm.Pattern, scrutinee, scope)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if arm.Guard != nil {
			g, err := it.evalExpr(arm.Guard, scope)
			if err != nil {
				return nil, err
			}
			gb, ok := g.(value.Bool)
			if !ok || !gb.Val {
				continue
			}
		}
		return it.execStmtsIn(arm.Body.Stmts, scope)
	}
	kind := "switch"
	if stmt.IsCheck {
		kind = "check"
	}
	return nil, fmt.Errorf("non-exhaustive %s", kind)
}
