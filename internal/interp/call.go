package interp

import (
	"fmt"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/diag"
	"github.com/apexforge/afns/internal/env"
	"github.com/apexforge/afns/internal/value"
)

// Call implements async.Runner: the executor calls back into the
// interpreter to run a UserFunction/Spawn future's body (spec §4.9).
func (it *Interpreter) Call(fn *value.Function, args []value.Value) (value.Value, error) {
	return it.CallFunction(fn, args)
}

// CallFunction runs fn's body in a fresh child of its captured
// environment (spec §3: "captures bind by reference into the defining
// environment"), binding params left-to-right and honoring the call
// frame's Returned/Propagated/Panicked terminal states (spec §4.6).
func (it *Interpreter) CallFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, fmt.Errorf("arity mismatch: expected %d, got %d", len(fn.Params), len(args))
	}
	parent, ok := fn.Env.(*env.Environment)
	if !ok {
		return nil, fmt.Errorf("function has no captured environment")
	}
	fnEnv := parent.Child()
	for i, p := range fn.Params {
		if err := fnEnv.Define(p, args[i], true); err != nil {
			return nil, err
		}
	}
	body, ok := fn.Body.(*ast.Block)
	if !ok {
		return nil, fmt.Errorf("function body is not a block")
	}
	result, err := it.execBlock(body, fnEnv)
	if err == nil {
		return result, nil
	}
	if ret, ok := err.(*diag.ReturnSignal); ok {
		return ret.Value, nil
	}
	return nil, err
}

// dispatchCall evaluates a CallExpr's callee and invokes whichever
// callable kind it resolves to (spec §4.5: "Callable kinds: function,
// builtin, struct constructor, enum variant constructor, trait method").
func (it *Interpreter) dispatchCall(call *ast.CallExpr, e *env.Environment) (value.Value, error) {
	args, err := it.evalArgs(call.Args, e)
	if err != nil {
		return nil, err
	}

	switch callee := call.Callee.(type) {
	case *ast.Ident:
		if decl, ok := it.structs[callee.Name]; ok {
			return it.constructStructPositional(decl, args)
		}
		if v, lookupErr := e.Lookup(callee.Name); lookupErr == nil {
			return it.invoke(v, args)
		}
		if tgt, ok := it.moduleAliases[callee.Name]; ok {
			v, err := it.resolveModuleAlias(tgt)
			if err != nil {
				return nil, err
			}
			return it.invoke(v, args)
		}
		return nil, fmt.Errorf("unbound identifier %s", callee.Name)
	case *ast.TraitMethodExpr:
		if len(args) == 0 {
			return nil, fmt.Errorf("arity mismatch: expected 1, got 0")
		}
		return it.dispatchTraitMethod(callee.Trait, callee.Method, args[0], args[1:])
	default:
		calleeVal, err := it.evalExpr(call.Callee, e)
		if err != nil {
			return nil, err
		}
		return it.invoke(calleeVal, args)
	}
}

func (it *Interpreter) evalArgs(exprs []ast.Expr, e *env.Environment) ([]value.Value, error) {
	args := make([]value.Value, len(exprs))
	for i, a := range exprs {
		v, err := it.evalExpr(a, e)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// invoke calls a function or builtin Value with already-evaluated args.
func (it *Interpreter) invoke(callee value.Value, args []value.Value) (value.Value, error) {
	switch fn := callee.(type) {
	case *value.Function:
		return it.CallFunction(fn, args)
	case *value.Builtin:
		return fn.Fn(args)
	default:
		return nil, fmt.Errorf("value of type %s is not callable", callee.Type())
	}
}
