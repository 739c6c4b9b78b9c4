package value

import (
	"fmt"
	"sort"
	"strings"
)

// Cell is an empty type that no container uses. Vec, Map, Set, Struct
// and Module share state through pointers to their backing slice or map
// instead; there is no manual refcounting, because Go's GC frees that
// storage once nothing references it (spec §3 "Lifecycles").
type Cell struct{}

// Vec is an ordered, heterogeneous, shared mutable sequence.
type Vec struct {
	Elems *[]Value
}

// NewVec builds a Vec with its own backing slice.
func NewVec(elems []Value) Vec {
	s := elems
	return Vec{Elems: &s}
}

func (v Vec) Type() string { return "vec" }
func (v Vec) String() string {
	parts := make([]string, len(*v.Elems))
	for i, e := range *v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MapKey is the restricted key domain for Map/Set: string|int|bool.
type MapKey struct {
	kind string
	s    string
	i    int64
	b    bool
}

// NewMapKey validates and builds a MapKey, or reports the violation so
// callers can surface it as Err (spec §3 invariant: "checked at insert").
func NewMapKey(v Value) (MapKey, error) {
	switch k := v.(type) {
	case Str:
		return MapKey{kind: "string", s: k.Val}, nil
	case Int:
		return MapKey{kind: "int", i: k.Val}, nil
	case Bool:
		return MapKey{kind: "bool", b: k.Val}, nil
	default:
		return MapKey{}, fmt.Errorf("invalid key type: %s (keys must be string|int|bool)", v.Type())
	}
}

// Value reconstructs the original Value from a MapKey.
func (k MapKey) Value() Value {
	switch k.kind {
	case "string":
		return Str{Val: k.s}
	case "int":
		return Int{Val: k.i}
	default:
		return Bool{Val: k.b}
	}
}

func (k MapKey) String() string { return k.Value().String() }

// Map is an unordered association with a restricted key domain.
type Map struct {
	Entries *map[MapKey]Value
	// Order preserves insertion order for deterministic iteration
	// (keys/values/items builtins), even though the value model calls
	// maps "unordered" — iteration order must still be stable run to run.
	Order *[]MapKey
}

// NewMap builds an empty Map.
func NewMap() Map {
	m := make(map[MapKey]Value)
	o := make([]MapKey, 0)
	return Map{Entries: &m, Order: &o}
}

func (m Map) Type() string { return "map" }
func (m Map) String() string {
	keys := make([]string, 0, len(*m.Order))
	for _, k := range *m.Order {
		keys = append(keys, fmt.Sprintf("%s=%s", k.String(), (*m.Entries)[k].String()))
	}
	return "{" + strings.Join(keys, ", ") + "}"
}

// Put inserts or overwrites a key, preserving first-insertion order.
func (m Map) Put(k MapKey, v Value) {
	if _, exists := (*m.Entries)[k]; !exists {
		*m.Order = append(*m.Order, k)
	}
	(*m.Entries)[k] = v
}

// Remove deletes a key, returning whether it was present.
func (m Map) Remove(k MapKey) bool {
	if _, exists := (*m.Entries)[k]; !exists {
		return false
	}
	delete(*m.Entries, k)
	for i, ok := range *m.Order {
		if ok == k {
			*m.Order = append((*m.Order)[:i], (*m.Order)[i+1:]...)
			break
		}
	}
	return true
}

// Set is a unique-membership collection with the same restricted key domain as Map.
type Set struct {
	Members *map[MapKey]struct{}
	Order   *[]MapKey
}

// NewSet builds an empty Set.
func NewSet() Set {
	m := make(map[MapKey]struct{})
	o := make([]MapKey, 0)
	return Set{Members: &m, Order: &o}
}

func (s Set) Type() string { return "set" }
func (s Set) String() string {
	parts := make([]string, 0, len(*s.Order))
	for _, k := range *s.Order {
		parts = append(parts, k.String())
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ", ") + "}"
}

// Insert adds a member, returning true if it was newly added.
func (s Set) Insert(k MapKey) bool {
	if _, exists := (*s.Members)[k]; exists {
		return false
	}
	(*s.Members)[k] = struct{}{}
	*s.Order = append(*s.Order, k)
	return true
}

// Remove deletes a member, returning whether it was present.
func (s Set) Remove(k MapKey) bool {
	if _, exists := (*s.Members)[k]; !exists {
		return false
	}
	delete(*s.Members, k)
	for i, ok := range *s.Order {
		if ok == k {
			*s.Order = append((*s.Order)[:i], (*s.Order)[i+1:]...)
			break
		}
	}
	return true
}

// Tuple is a fixed-length heterogeneous sequence.
type Tuple struct {
	Elements []Value
}

func (t Tuple) Type() string { return "tuple" }
func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Struct is an instance of a named struct type.
type Struct struct {
	TypeName string
	Fields   *map[string]Value
}

// NewStruct builds a Struct instance from a field map.
func NewStruct(typeName string, fields map[string]Value) Struct {
	f := fields
	return Struct{TypeName: typeName, Fields: &f}
}

func (s Struct) Type() string { return s.TypeName }
func (s Struct) String() string {
	keys := make([]string, 0, len(*s.Fields))
	for k := range *s.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, (*s.Fields)[k].String())
	}
	return s.TypeName + " { " + strings.Join(parts, ", ") + " }"
}

// Module is a named member table, recursively for nested modules.
type Module struct {
	Name    string
	Members *map[string]Value
}

// NewModule builds an empty Module value.
func NewModule(name string) Module {
	m := make(map[string]Value)
	return Module{Name: name, Members: &m}
}

func (m Module) Type() string   { return "module" }
func (m Module) String() string { return fmt.Sprintf("<module:%s>", m.Name) }
