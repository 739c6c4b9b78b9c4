package interp

import (
	"fmt"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/diag"
	"github.com/apexforge/afns/internal/env"
	"github.com/apexforge/afns/internal/value"
)

// evalExpr is the C5 expression evaluator's recursive core, grounded on
// the teacher's evalNode switch (spec §4.5).
func (it *Interpreter) evalExpr(x ast.Expr, e *env.Environment) (value.Value, error) {
	switch node := x.(type) {
	case *ast.Literal:
		return evalLiteral(node), nil

	case *ast.Ident:
		if v, err := e.Lookup(node.Name); err == nil {
			return v, nil
		}
		if tgt, ok := it.moduleAliases[node.Name]; ok {
			return it.resolveModuleAlias(tgt)
		}
		if m, ok := it.Registry.Module(node.Name); ok {
			return m, nil
		}
		return nil, fmt.Errorf("unbound identifier %s", node.Name)

	case *ast.BinaryExpr:
		return it.evalBinary(node, e)

	case *ast.UnaryExpr:
		v, err := it.evalExpr(node.Expr, e)
		if err != nil {
			return nil, err
		}
		switch node.Op {
		case "-":
			return value.Neg(v)
		case "!":
			return value.Not(v)
		default:
			return nil, fmt.Errorf("unknown unary operator %s", node.Op)
		}

	case *ast.CallExpr:
		return it.dispatchCall(node, e)

	case *ast.MethodCallExpr:
		return it.evalMethodCall(node, e)

	case *ast.IndexExpr:
		target, err := it.evalExpr(node.Target, e)
		if err != nil {
			return nil, err
		}
		idx, err := it.evalExpr(node.Index, e)
		if err != nil {
			return nil, err
		}
		return value.Index(target, idx)

	case *ast.FieldExpr:
		target, err := it.evalExpr(node.Target, e)
		if err != nil {
			return nil, err
		}
		st, ok := target.(value.Struct)
		if !ok {
			return nil, fmt.Errorf("cannot access field %s on value of type %s", node.Field, target.Type())
		}
		v, ok := (*st.Fields)[node.Field]
		if !ok {
			return nil, fmt.Errorf("unknown field %s on %s", node.Field, st.TypeName)
		}
		return v, nil

	case *ast.IfExpr:
		cond, err := it.evalExpr(node.Cond, e)
		if err != nil {
			return nil, err
		}
		b, ok := cond.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("if condition must be bool, got %s", cond.Type())
		}
		if b.Val {
			return it.execBlock(node.Then, e)
		}
		if node.Else != nil {
			return it.evalExpr(node.Else, e)
		}
		return value.Null{}, nil

	case *ast.Block:
		return it.execBlock(node, e)

	case *ast.SwitchExpr:
		return it.evalSwitch(node, e)

	case *ast.AwaitExpr:
		return it.evalAwait(node, e)

	case *ast.TryExpr:
		return it.evalTry(node, e)

	case *ast.LambdaExpr:
		return &value.Function{Params: paramNames(node.Params), Body: node.Body, Env: e, Async: node.Async}, nil

	case *ast.VecExpr:
		elems := make([]value.Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := it.evalExpr(el, e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewVec(elems), nil

	case *ast.TupleExpr:
		elems := make([]value.Value, len(node.Elements))
		for i, el := range node.Elements {
			v, err := it.evalExpr(el, e)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.Tuple{Elements: elems}, nil

	case *ast.StructLitExpr:
		got := make(map[string]value.Value, len(node.Fields))
		for _, f := range node.Fields {
			v, err := it.evalExpr(f.Value, e)
			if err != nil {
				return nil, err
			}
			got[f.Name] = v
		}
		return it.constructStructLit(node, got)

	case *ast.EnumCtorExpr:
		args := make([]value.Value, len(node.Args))
		for i, a := range node.Args {
			v, err := it.evalExpr(a, e)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return it.constructEnum(node.TypeName, node.Variant, args)

	case *ast.CastExpr:
		v, err := it.evalExpr(node.Expr, e)
		if err != nil {
			return nil, err
		}
		return value.As(v, node.TypeName)

	case *ast.TraitMethodExpr:
		return nil, fmt.Errorf("trait method %s::%s used outside a call", node.Trait, node.Method)

	default:
		return nil, fmt.Errorf("unknown expression kind %T", x)
	}
}

func evalLiteral(l *ast.Literal) value.Value {
	switch l.Kind {
	case ast.IntLit:
		return value.Int{Val: l.Value.(int64)}
	case ast.FloatLit:
		return value.Float{Val: l.Value.(float64)}
	case ast.CharLit:
		return value.Char{Val: l.Value.(byte)}
	case ast.StringLit:
		return value.Str{Val: l.Value.(string)}
	case ast.BoolLit:
		return value.Bool{Val: l.Value.(bool)}
	default:
		return value.Null{}
	}
}

func (it *Interpreter) resolveModuleAlias(tgt aliasTarget) (value.Value, error) {
	if tgt.member == "" {
		if m, ok := it.Registry.Module(tgt.modulePath); ok {
			return m, nil
		}
		return nil, fmt.Errorf("unknown module %s", tgt.modulePath)
	}
	v, ok := it.Registry.Lookup(tgt.modulePath + "." + tgt.member)
	if !ok {
		return nil, fmt.Errorf("unknown member %s in module %s", tgt.member, tgt.modulePath)
	}
	return v, nil
}

// evalBinary implements arithmetic, comparison, and logical operators.
// `&&`/`||` short-circuit and require bool operands on both sides with
// no truthiness coercion (spec §4.1, §4.5).
func (it *Interpreter) evalBinary(b *ast.BinaryExpr, e *env.Environment) (value.Value, error) {
	if b.Op == "&&" || b.Op == "||" {
		left, err := it.evalExpr(b.Left, e)
		if err != nil {
			return nil, err
		}
		lb, ok := left.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("operator %s requires bool operands, got %s", b.Op, left.Type())
		}
		if b.Op == "&&" && !lb.Val {
			return value.Bool{Val: false}, nil
		}
		if b.Op == "||" && lb.Val {
			return value.Bool{Val: true}, nil
		}
		right, err := it.evalExpr(b.Right, e)
		if err != nil {
			return nil, err
		}
		rb, ok := right.(value.Bool)
		if !ok {
			return nil, fmt.Errorf("operator %s requires bool operands, got %s", b.Op, right.Type())
		}
		return rb, nil
	}

	left, err := it.evalExpr(b.Left, e)
	if err != nil {
		return nil, err
	}
	right, err := it.evalExpr(b.Right, e)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case "+":
		if _, ok := left.(value.Str); ok {
			return nil, fmt.Errorf("operator + does not support strings (use forge.str for concatenation)")
		}
		if _, ok := right.(value.Str); ok {
			return nil, fmt.Errorf("operator + does not support strings (use forge.str for concatenation)")
		}
		return value.Add(left, right)
	case "-":
		return value.Sub(left, right)
	case "*":
		return value.Mul(left, right)
	case "/":
		return value.Div(left, right)
	case "%":
		return value.Mod(left, right)
	case "==":
		return value.Bool{Val: value.Equal(left, right)}, nil
	case "!=":
		return value.Bool{Val: !value.Equal(left, right)}, nil
	case "<":
		ok, err := value.Less(left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: ok}, nil
	case "<=":
		lt, err := value.Less(left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: lt || value.Equal(left, right)}, nil
	case ">":
		lt, err := value.Less(left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: !lt && !value.Equal(left, right)}, nil
	case ">=":
		lt, err := value.Less(left, right)
		if err != nil {
			return nil, err
		}
		return value.Bool{Val: !lt}, nil
	default:
		return nil, fmt.Errorf("unknown binary operator %s", b.Op)
	}
}

// evalMethodCall dispatches `receiver.name(args...)`: a module receiver
// looks name up in its member table and passes args as-is; otherwise an
// inherent/trait impl on the receiver's type is tried, then the
// value-kind builtin table for vec/map/set/string/option/result receivers.
func (it *Interpreter) evalMethodCall(m *ast.MethodCallExpr, e *env.Environment) (value.Value, error) {
	recv, err := it.evalExpr(m.Receiver, e)
	if err != nil {
		return nil, err
	}
	args, err := it.evalArgs(m.Args, e)
	if err != nil {
		return nil, err
	}

	if mod, ok := recv.(value.Module); ok {
		member, ok := (*mod.Members)[m.Name]
		if !ok {
			return nil, fmt.Errorf("unknown member %s in module %s", m.Name, mod.Name)
		}
		return it.invoke(member, args)
	}

	typeName := recv.Type()
	if _, hasType := it.methods[typeName]; hasType {
		if _, hasMethod := it.methods[typeName][m.Name]; hasMethod {
			decl, err := it.resolveMethod(typeName, m.Name)
			if err != nil {
				return nil, err
			}
			return it.callMethod(decl, recv, args, m, e)
		}
	}

	if builtinMod, ok := it.builtinModuleFor(recv); ok {
		member, ok := (*builtinMod.Members)[m.Name]
		if !ok {
			return nil, fmt.Errorf("type %s has no method %s", typeName, m.Name)
		}
		full := append([]value.Value{recv}, args...)
		return it.invoke(member, full)
	}

	return nil, fmt.Errorf("type %s has no method %s", typeName, m.Name)
}

// builtinModuleFor maps a receiver's value kind to the module its
// value-kind builtins live in (vec/map/set, forge.str for strings,
// option/result), honoring the spec's "receiver is passed as the
// builtin's first argument" convention.
func (it *Interpreter) builtinModuleFor(v value.Value) (value.Module, bool) {
	switch v.(type) {
	case value.Str:
		m, ok := it.Registry.Module("forge.str")
		return m, ok
	case value.Vec:
		m, ok := it.Registry.Module("vec")
		return m, ok
	case value.Map:
		m, ok := it.Registry.Module("map")
		return m, ok
	case value.Set:
		m, ok := it.Registry.Module("set")
		return m, ok
	case value.EnumVariant:
		ev := v.(value.EnumVariant)
		if ev.EnumName == "Option" {
			m, ok := it.Registry.Module("option")
			return m, ok
		}
		if ev.EnumName == "Result" {
			m, ok := it.Registry.Module("result")
			return m, ok
		}
		return value.Module{}, false
	default:
		return value.Module{}, false
	}
}

// callMethod invokes a resolved inherent/trait method, checking the
// `self_mut` receiver-mutability requirement when the method's first
// parameter demands it (spec §4.5: "cannot borrow immutable value as
// mutable (method requires self_mut)").
func (it *Interpreter) callMethod(decl *ast.FuncDecl, recv value.Value, args []value.Value, m *ast.MethodCallExpr, e *env.Environment) (value.Value, error) {
	if len(decl.Params) > 0 && decl.Params[0].SelfMut {
		if ident, ok := m.Receiver.(*ast.Ident); ok {
			mutable, found := e.IsMutable(ident.Name)
			if found && !mutable {
				return nil, fmt.Errorf("cannot borrow immutable value as mutable (method requires self_mut)")
			}
		}
	}
	fn := &value.Function{Params: paramNames(decl.Params), Body: decl.Body, Env: it.Global, Async: decl.Async}
	full := append([]value.Value{recv}, args...)
	return it.CallFunction(fn, full)
}

// evalSwitch evaluates `switch`/`check` expressions (spec §4.5). `check`
// arms are boolean guards over an optional scrutinee bound as `it`.
func (it *Interpreter) evalSwitch(s *ast.SwitchExpr, e *env.Environment) (value.Value, error) {
	var scrutinee value.Value
	if s.Scrutinee != nil {
		v, err := it.evalExpr(s.Scrutinee, e)
		if err != nil {
			return nil, err
		}
		scrutinee = v
	}

	for _, arm := range s.Arms {
		scope := e.Child()
		if s.IsCheck {
			if scrutinee != nil {
				if err := scope.Define("it", scrutinee, false); err != nil {
					return nil, err
				}
			}
			if arm.Guard == nil {
				return it.evalExpr(arm.Body, scope)
			}
			g, err := it.evalExpr(arm.Guard, scope)
			if err != nil {
				return nil, err
			}
			gb, ok := g.(value.Bool)
			if !ok || !gb.Val {
				continue
			}
			return it.evalExpr(arm.Body, scope)
		}

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
		return it.evalExpr(arm.Body, scope)
	}

	kind := "switch"
	if s.IsCheck {
		kind = "check"
	}
	return nil, fmt.Errorf("non-exhaustive %s", kind)
}

// matchPattern tries to match scrutinee against p, binding into scope
// on success (spec §4.5).
func (it *Interpreter) matchPattern(p ast.Pattern, scrutinee value.Value, scope *env.Environment) (bool, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return true, nil
	case *ast.Ident:
		return true, scope.Define(pat.Name, scrutinee, false)
	case *ast.LiteralPattern:
		return value.Equal(evalLiteral(pat.Lit), scrutinee), nil
	case *ast.EnumPattern:
		ev, ok := scrutinee.(value.EnumVariant)
		if !ok || ev.EnumName != pat.TypeName || ev.Variant != pat.Variant {
			return false, nil
		}
		if len(pat.Binds) != len(ev.Payload) {
			return false, nil
		}
		for i, name := range pat.Binds {
			if name == "_" {
				continue
			}
			if err := scope.Define(name, ev.Payload[i], false); err != nil {
				return false, err
			}
		}
		return true, nil
	case *ast.TuplePattern:
		tup, ok := scrutinee.(value.Tuple)
		if !ok || len(tup.Elements) != len(pat.Elements) {
			return false, nil
		}
		for i, sub := range pat.Elements {
			ok, err := it.matchPattern(sub, tup.Elements[i], scope)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("unknown pattern kind %T", p)
	}
}

// evalAwait drives the executor to the future's terminal state (spec
// §4.9): Ready yields its value; Failed returns an *async.FailedError and
// Cancelled an *async.CancelledError ("future cancelled"). Both unwind
// like other runtime errors. try/catch binds their error string
// ("future failed: <value>" for Failed), not the failure value itself.
func (it *Interpreter) evalAwait(a *ast.AwaitExpr, e *env.Environment) (value.Value, error) {
	v, err := it.evalExpr(a.Expr, e)
	if err != nil {
		return nil, err
	}
	fut, ok := v.(value.Future)
	if !ok {
		return nil, fmt.Errorf("await requires a future, got %s", v.Type())
	}
	return it.Executor.Run(fut.Handle)
}

// evalTry implements the postfix `?` operator (spec §4.5, §4.8): Err/None
// short-circuits the enclosing function with a PropagatedSignal; Ok/Some
// unwraps to the payload. A non-Option/Result operand is an error.
func (it *Interpreter) evalTry(t *ast.TryExpr, e *env.Environment) (value.Value, error) {
	v, err := it.evalExpr(t.Expr, e)
	if err != nil {
		return nil, err
	}
	ev, ok := v.(value.EnumVariant)
	if !ok || !(value.IsOption(ev) || value.IsResult(ev)) {
		return nil, fmt.Errorf("'?' operator requires an option or result value, got %s", v.Type())
	}
	switch {
	case value.IsOption(ev) && ev.Variant == "Some":
		return ev.Payload[0], nil
	case value.IsOption(ev) && ev.Variant == "None":
		return nil, &diag.PropagatedSignal{Value: ev}
	case value.IsResult(ev) && ev.Variant == "Ok":
		return ev.Payload[0], nil
	default:
		return nil, &diag.PropagatedSignal{Value: ev}
	}
}
