// Package diag provides the classified error taxonomy for the AFNS
// runtime core (spec §4.8, §7), grounded in the teacher's code-taxonomy
// idiom (internal/errors in the pack) but scoped to the ten runtime
// error kinds this spec defines.
package diag

// Kind classifies a runtime error (spec §4.8).
type Kind string

const (
	KindType       Kind = "TypeError"
	KindDomain     Kind = "DomainError"
	KindBounds     Kind = "BoundsError"
	KindUnbound    Kind = "UnboundName"
	KindArity      Kind = "ArityError"
	KindMatch      Kind = "MatchError"
	KindModule     Kind = "ModuleError"
	KindPropagated Kind = "PropagatedError"
	KindThrow      Kind = "Throw"
	KindPanic      Kind = "Panic"
)

// Code is a stable short identifier carried alongside a Kind, in the
// teacher's PAR001/LDR001-style taxonomy, for --trace consumers.
type Code string

const (
	CodeType       Code = "TYP001"
	CodeDomain     Code = "DOM001"
	CodeBounds     Code = "BND001"
	CodeUnbound    Code = "UNB001"
	CodeArity      Code = "ARI001"
	CodeMatch      Code = "MAT001"
	CodeModule     Code = "MOD001"
	CodePropagated Code = "PRP001"
	CodeThrow      Code = "THR001"
	CodePanic      Code = "PAN001"
)

var codeByKind = map[Kind]Code{
	KindType:       CodeType,
	KindDomain:     CodeDomain,
	KindBounds:     CodeBounds,
	KindUnbound:    CodeUnbound,
	KindArity:      CodeArity,
	KindMatch:      CodeMatch,
	KindModule:     CodeModule,
	KindPropagated: CodePropagated,
	KindThrow:      CodeThrow,
	KindPanic:      CodePanic,
}
