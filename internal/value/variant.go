package value

import (
	"fmt"
	"strings"
)

// EnumVariant is an instance of a user enum, Option, or Result. Option and
// Result are modeled as ordinary enums named "Option" ("Some"/"None") and
// "Result" ("Ok"/"Err") so the formatting rules in spec §4.4 fall out of
// the general enum_variant rendering, with the two spellings spec calls
// out explicitly (Option::Some vs. Some) special-cased in String.
type EnumVariant struct {
	EnumName string
	Variant  string
	Payload  []Value
}

func (e EnumVariant) Type() string { return e.EnumName }

func (e EnumVariant) String() string {
	switch e.EnumName {
	case "Option":
		if e.Variant == "None" {
			return "None"
		}
		return fmt.Sprintf("Some(%s)", e.Payload[0].String())
	case "Result":
		if e.Variant == "Ok" {
			return fmt.Sprintf("Ok(%s)", e.Payload[0].String())
		}
		return fmt.Sprintf("Err(%s)", e.Payload[0].String())
	default:
		if len(e.Payload) == 0 {
			return fmt.Sprintf("%s::%s", e.EnumName, e.Variant)
		}
		parts := make([]string, len(e.Payload))
		for i, p := range e.Payload {
			parts[i] = p.String()
		}
		return fmt.Sprintf("%s::%s(%s)", e.EnumName, e.Variant, strings.Join(parts, ", "))
	}
}

// Some builds Option::Some(v).
func Some(v Value) EnumVariant { return EnumVariant{EnumName: "Option", Variant: "Some", Payload: []Value{v}} }

// None builds Option::None.
func None() EnumVariant { return EnumVariant{EnumName: "Option", Variant: "None"} }

// Ok builds Result::Ok(v).
func Ok(v Value) EnumVariant { return EnumVariant{EnumName: "Result", Variant: "Ok", Payload: []Value{v}} }

// Err builds Result::Err(v).
func Err(v Value) EnumVariant { return EnumVariant{EnumName: "Result", Variant: "Err", Payload: []Value{v}} }

// IsOption reports whether v is an Option (Some or None).
func IsOption(v Value) bool {
	e, ok := v.(EnumVariant)
	return ok && e.EnumName == "Option"
}

// IsResult reports whether v is a Result (Ok or Err).
func IsResult(v Value) bool {
	e, ok := v.(EnumVariant)
	return ok && e.EnumName == "Result"
}

// TraitObject pairs a struct/enum value with the trait it was explicitly
// constructed against (spec §3: "used only when explicitly constructed").
// Method resolution still goes through the interp package's dispatch
// tables keyed by (TypeName, method); this wrapper only remembers which
// trait view the program asked for.
type TraitObject struct {
	TraitName string
	Underlying Value
}

func (t TraitObject) Type() string   { return t.TraitName }
func (t TraitObject) String() string { return t.Underlying.String() }
