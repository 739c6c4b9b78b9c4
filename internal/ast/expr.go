package ast

// LitKind tags a Literal's Go-native payload type.
type LitKind int

const (
	IntLit LitKind = iota
	FloatLit
	CharLit
	StringLit
	BoolLit
	NullLit
)

// Literal is a constant: int64, float64, byte (char), string, or bool.
// NullLit carries no Value.
type Literal struct {
	Kind  LitKind
	Value interface{}
	Pos   Pos
}

func (l *Literal) Position() Pos { return l.Pos }
func (l *Literal) exprNode()     {}

// Ident is a variable/function reference.
type Ident struct {
	Name string
	Pos  Pos
}

func (i *Ident) Position() Pos { return i.Pos }
func (i *Ident) exprNode()     {}
func (i *Ident) patternNode()  {}

// BinaryExpr covers arithmetic, comparison, and logical operators.
// Operand evaluation is strictly left-to-right (spec §4.5).
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
	Pos   Pos
}

func (b *BinaryExpr) Position() Pos { return b.Pos }
func (b *BinaryExpr) exprNode()     {}

// UnaryExpr is `!x` or `-x`.
type UnaryExpr struct {
	Op   string
	Expr Expr
	Pos  Pos
}

func (u *UnaryExpr) Position() Pos { return u.Pos }
func (u *UnaryExpr) exprNode()     {}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Pos    Pos
}

func (c *CallExpr) Position() Pos { return c.Pos }
func (c *CallExpr) exprNode()     {}

// MethodCallExpr is `receiver.name(args...)`, dispatched per spec §4.5:
// inherent impl, then module builtin, then value-kind builtin dispatch.
type MethodCallExpr struct {
	Receiver Expr
	Name     string
	Args     []Expr
	Pos      Pos
}

func (m *MethodCallExpr) Position() Pos { return m.Pos }
func (m *MethodCallExpr) exprNode()     {}

// IndexExpr is `e[i]`.
type IndexExpr struct {
	Target Expr
	Index  Expr
	Pos    Pos
}

func (x *IndexExpr) Position() Pos { return x.Pos }
func (x *IndexExpr) exprNode()     {}

// FieldExpr is `e.field`.
type FieldExpr struct {
	Target Expr
	Field  string
	Pos    Pos
}

func (f *FieldExpr) Position() Pos { return f.Pos }
func (f *FieldExpr) exprNode()     {}

// IfExpr yields the matching branch's value; Else == nil yields null.
type IfExpr struct {
	Cond Expr
	Then *Block
	Else Expr // *Block or *IfExpr, nil if absent
	Pos  Pos
}

func (i *IfExpr) Position() Pos { return i.Pos }
func (i *IfExpr) exprNode()     {}

// SwitchArm is one arm of a switch/check expression.
type SwitchArm struct {
	Pattern Pattern // nil for a check-style boolean guard
	Guard   Expr    // the boolean condition for `check`, or nil for `switch`
	Body    Expr
}

// SwitchExpr covers both `switch` (pattern-matched) and `check`
// (boolean-guarded, optionally binding `it`) per spec §4.5.
type SwitchExpr struct {
	IsCheck  bool
	Scrutinee Expr // nil for a target-less `check`
	Arms     []SwitchArm
	Pos      Pos
}

func (s *SwitchExpr) Position() Pos { return s.Pos }
func (s *SwitchExpr) exprNode()     {}

// AwaitExpr is `await e`.
type AwaitExpr struct {
	Expr Expr
	Pos  Pos
}

func (a *AwaitExpr) Position() Pos { return a.Pos }
func (a *AwaitExpr) exprNode()     {}

// TryExpr is the postfix `e?` operator.
type TryExpr struct {
	Expr Expr
	Pos  Pos
}

func (t *TryExpr) Position() Pos { return t.Pos }
func (t *TryExpr) exprNode()     {}

// LambdaExpr is `fun(params) -> body`, capturing the defining environment
// by reference (spec §4.5, reserved closures feature).
type LambdaExpr struct {
	Params []Param
	Async  bool
	Body   *Block
	Pos    Pos
}

func (l *LambdaExpr) Position() Pos { return l.Pos }
func (l *LambdaExpr) exprNode()     {}

// VecExpr is a vec literal `[e1, e2, ...]`.
type VecExpr struct {
	Elements []Expr
	Pos      Pos
}

func (v *VecExpr) Position() Pos { return v.Pos }
func (v *VecExpr) exprNode()     {}

// TupleExpr is `(e1, e2, ...)`.
type TupleExpr struct {
	Elements []Expr
	Pos      Pos
}

func (t *TupleExpr) Position() Pos { return t.Pos }
func (t *TupleExpr) exprNode()     {}

// StructLitField is one `name: expr` pair in a struct literal.
type StructLitField struct {
	Name  string
	Value Expr
}

// StructLitExpr is `Name { field: expr, ... }`.
type StructLitExpr struct {
	TypeName string
	Fields   []StructLitField
	Pos      Pos
}

func (s *StructLitExpr) Position() Pos { return s.Pos }
func (s *StructLitExpr) exprNode()     {}

// EnumCtorExpr is `Name::Variant(args...)` or bare `Name::Variant`.
type EnumCtorExpr struct {
	TypeName string
	Variant  string
	Args     []Expr
	Pos      Pos
}

func (e *EnumCtorExpr) Position() Pos { return e.Pos }
func (e *EnumCtorExpr) exprNode()     {}

// CastExpr is `e as TypeName`.
type CastExpr struct {
	Expr     Expr
	TypeName string
	Pos      Pos
}

func (c *CastExpr) Position() Pos { return c.Pos }
func (c *CastExpr) exprNode()     {}

// TraitMethodExpr is `Trait::method` used as a callee, e.g.
// `Trait::method(value, args...)` (spec §4.7).
type TraitMethodExpr struct {
	Trait  string
	Method string
	Pos    Pos
}

func (t *TraitMethodExpr) Position() Pos { return t.Pos }
func (t *TraitMethodExpr) exprNode()     {}
