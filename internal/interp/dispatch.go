package interp

import (
	"fmt"

	"github.com/apexforge/afns/internal/ast"
	"github.com/apexforge/afns/internal/value"
)

// constructStructPositional builds a struct from a `Name(args)` call
// site, binding args to fields in declaration order (spec §4.5: "struct
// constructor (captured by name)").
func (it *Interpreter) constructStructPositional(decl *ast.StructDecl, args []value.Value) (value.Value, error) {
	if len(args) != len(decl.Fields) {
		return nil, fmt.Errorf("arity mismatch: expected %d, got %d", len(decl.Fields), len(args))
	}
	fields := make(map[string]value.Value, len(decl.Fields))
	for i, name := range decl.Fields {
		fields[name] = args[i]
	}
	return value.NewStruct(decl.Name, fields), nil
}

// constructStructLit builds a struct from `Name { field: expr, ... }`
// (spec §4.7): every declared field must be supplied, no extras.
func (it *Interpreter) constructStructLit(lit *ast.StructLitExpr, got map[string]value.Value) (value.Value, error) {
	decl, ok := it.structs[lit.TypeName]
	if !ok {
		return nil, fmt.Errorf("unknown struct type %s", lit.TypeName)
	}
	fields := make(map[string]value.Value, len(decl.Fields))
	seen := make(map[string]bool, len(got))
	for _, name := range decl.Fields {
		v, ok := got[name]
		if !ok {
			return nil, fmt.Errorf("missing field %s in struct literal %s", name, lit.TypeName)
		}
		fields[name] = v
		seen[name] = true
	}
	for name := range got {
		if !seen[name] {
			return nil, fmt.Errorf("unknown field %s in struct literal %s", name, lit.TypeName)
		}
	}
	return value.NewStruct(lit.TypeName, fields), nil
}

// constructEnum builds an enum_variant from `Name::Variant(args...)` or
// the arity-0 bare form `Name::Variant` (spec §4.7).
func (it *Interpreter) constructEnum(typeName, variant string, args []value.Value) (value.Value, error) {
	decl, ok := it.enums[typeName]
	if !ok {
		return nil, fmt.Errorf("unknown enum type %s", typeName)
	}
	for _, v := range decl.Variants {
		if v.Name == variant {
			if len(args) != v.Arity {
				return nil, fmt.Errorf("arity mismatch: expected %d, got %d", v.Arity, len(args))
			}
			return value.EnumVariant{EnumName: typeName, Variant: variant, Payload: args}, nil
		}
	}
	return nil, fmt.Errorf("unknown variant %s::%s", typeName, variant)
}

// resolveMethod implements the C7 resolution order: inherent impl
// first, then any trait impl defining the method; two trait impls with
// no inherent override is an ambiguity error (spec §4.7).
func (it *Interpreter) resolveMethod(typeName, method string) (*ast.FuncDecl, error) {
	table, ok := it.methods[typeName]
	if !ok {
		return nil, fmt.Errorf("type %s has no method %s", typeName, method)
	}
	impls, ok := table[method]
	if !ok {
		return nil, fmt.Errorf("type %s has no method %s", typeName, method)
	}
	for _, m := range impls {
		if m.trait == "" {
			return m.fn, nil
		}
	}
	if len(impls) > 1 {
		return nil, fmt.Errorf("ambiguous method %s", method)
	}
	return impls[0].fn, nil
}

// dispatchTraitMethod implements `Trait::method(value, args...)` (spec
// §4.7): value's type must have registered an `impl Trait for Type`
// block defining method.
func (it *Interpreter) dispatchTraitMethod(trait, method string, receiver value.Value, args []value.Value) (value.Value, error) {
	typeName := receiver.Type()
	set, ok := it.traitImpls[typeName]
	if !ok || !set[trait] {
		return nil, fmt.Errorf("type %s does not implement trait %s", typeName, trait)
	}
	var m *implDecl
	for i, cand := range it.methods[typeName][method] {
		if cand.trait == trait {
			m = &it.methods[typeName][method][i]
			break
		}
	}
	if m == nil {
		return nil, fmt.Errorf("trait %s has no method %s for type %s", trait, method, typeName)
	}
	fn := &value.Function{Params: paramNames(m.fn.Params), Body: m.fn.Body, Env: it.Global, Async: m.fn.Async}
	full := append([]value.Value{receiver}, args...)
	return it.CallFunction(fn, full)
}
