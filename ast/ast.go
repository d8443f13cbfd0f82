package ast

// Script is the root of a parsed program: a sequence of statements
// connected by the implicit pipe value (spec §2, §4.1).
type Script struct {
	base
	Statements []*Statement
}

// Statement is one top-level pipe chain.
type Statement struct {
	base
	Pipe *PipeChain
}

// Expression is any node that evaluates to a value.
type Expression interface {
	Node
	expression()
}

// ---- literals ----

// StringLiteral is a sequence of literal text parts interleaved with
// interpolated expressions (spec §4.8).
type StringLiteral struct {
	base
	Parts []StringPart
}

func (*StringLiteral) expression() {}

// StringPart is either a literal run of text or an embedded expression.
type StringPart struct {
	Text string     // set when Expr == nil
	Expr Expression // set when this part is an interpolation
}

// NumberLiteral is an IEEE-754 double literal.
type NumberLiteral struct {
	base
	Value float64
}

func (*NumberLiteral) expression() {}

// BoolLiteral is a literal true/false.
type BoolLiteral struct {
	base
	Value bool
}

func (*BoolLiteral) expression() {}

// NullLiteral is the literal null.
type NullLiteral struct {
	base
}

func (*NullLiteral) expression() {}

// ListLiteral constructs a list value from its elements, evaluated in
// order (spec §4.5.3 names this primary "Tuple"; renamed here to avoid
// colliding with the runtime Tuple value, which only the spread operator
// produces — see value.Tuple).
type ListLiteral struct {
	base
	Elements []Expression
}

func (*ListLiteral) expression() {}

// DictLiteral constructs a dict value, or — when it appears as a pipe
// target — serves as a dispatch table (spec §4.5.9). Dispatch's
// "defaultValue" is not a separate field: it is an ordinary entry keyed
// "default" (spec §8's dispatch example), consulted via a plain Get on
// the constructed dict.
type DictLiteral struct {
	base
	Entries []DictEntry
}

func (*DictLiteral) expression() {}

// DictEntry is one `key: value` pair. Keys is normally a single
// expression; a multi-key entry (len(Keys) > 1) matches a dispatch input
// against any candidate via deep equality (spec §4.5.9).
type DictEntry struct {
	Keys  []Expression
	Value Expression
}

// ---- closures ----

// Param is one formal parameter of a closure.
type Param struct {
	Name    string
	Type    string // optional type annotation, "" if absent
	Default Expression
}

// ClosureLiteral is a script callable literal `(params) { body }`.
// Defaults are evaluated eagerly in the defining context at construction
// time (spec §4.5.3); a zero-param closure becomes a property callable.
type ClosureLiteral struct {
	base
	Params      []Param
	Body        Node // *Block or a single Expression
	Annotations map[string]Expression
}

func (*ClosureLiteral) expression() {}

// ---- spread ----

// SpreadExpr is the explicit-operand form `*x` used as an argument value
// (spec §4.5.5). The bare pipe-target form is ast.SpreadTarget.
type SpreadExpr struct {
	base
	Operand Expression
}

func (*SpreadExpr) expression() {}

// ---- variables & access ----

// AccessLink is one link of a variable's access chain (spec §4.7).
type AccessLink interface {
	Node
	accessLink()
}

type linkBase struct {
	base
	Default Expression // optional: null-fallback declared for this link
}

// FieldAccess is `.name`.
type FieldAccess struct {
	linkBase
	Name string
}

func (*FieldAccess) accessLink() {}

// VarKeyAccess is `.$k`: the field name is the value of variable k.
type VarKeyAccess struct {
	linkBase
	KeyVar string
}

func (*VarKeyAccess) accessLink() {}

// ComputedKeyAccess is `.(expr)`.
type ComputedKeyAccess struct {
	linkBase
	Key Expression
}

func (*ComputedKeyAccess) accessLink() {}

// IndexAccess is `[expr]`.
type IndexAccess struct {
	linkBase
	Index Expression
}

func (*IndexAccess) accessLink() {}

// AltAccess is `.(a|b|c)`: the first non-null field wins.
type AltAccess struct {
	linkBase
	Names []string
}

func (*AltAccess) accessLink() {}

// AnnotationAccess is `.^annot`: reflects a closure's annotation value.
type AnnotationAccess struct {
	linkBase
	Name string
}

func (*AnnotationAccess) accessLink() {}

// Variable is a base (`$` for pipe value, or `$name`) plus an ordered
// access chain (spec §4.7).
type Variable struct {
	base
	Name    string // "" means bare pipe value $
	Chain   []AccessLink
	Default Expression // whole-chain default, applied if final value is null
}

func (*Variable) expression() {}

// ExistenceExpr is `?.field` — it returns a bool: whether the final link
// is present and non-null (and, if TypeQualifier is set, type-matching).
type ExistenceExpr struct {
	base
	Name          string
	Chain         []AccessLink
	TypeQualifier string // "" if not type-qualified
}

func (*ExistenceExpr) expression() {}

// ---- calls ----

// FunctionCall invokes a host function looked up by name (spec §4.9.1).
type FunctionCall struct {
	base
	Name string
	Args []Expression
}

func (*FunctionCall) expression() {}

// VariableCall invokes a closure held in a variable: `$fn(args)` (spec §4.9.2).
type VariableCall struct {
	base
	Callee *Variable
	Args   []Expression
}

func (*VariableCall) expression() {}

// BareMethodCall is `.method(args)` invoked with the implicit pipe value
// as receiver, when it heads a postfix chain rather than following
// another primary (spec §4.5.3: "MethodCall (bare .m)").
type BareMethodCall struct {
	base
	Name string
	Args []Expression
}

func (*BareMethodCall) expression() {}

// MethodCallSuffix is one `.method(args)` fold step in a Postfix chain
// (spec §4.5.2).
type MethodCallSuffix struct {
	base
	Name string
	Args []Expression
}

// Postfix evaluates Primary, then folds each suffix left-to-right through
// method dispatch (spec §4.5.2, §4.9.3).
type Postfix struct {
	base
	Primary Expression
	Calls   []MethodCallSuffix
}

func (*Postfix) expression() {}

// ---- blocks & control flow ----

// Block evaluates its statements in order; its value is the last
// statement's value (spec §4.6.2).
type Block struct {
	base
	Statements []*Statement
}

func (*Block) expression() {}

// ElifClause is one `elif`/chained-else branch.
type ElifClause struct {
	Cond BoolExpr
	Then Node
}

// Conditional is `if/elif/else` (spec §4.6.2). Then/Else/Elif bodies may
// be blocks, grouped expressions, pipe chains, or postfix expressions.
type Conditional struct {
	base
	Cond  BoolExpr
	Then  Node
	Elifs []ElifClause
	Else  Node // optional
}

func (*Conditional) expression() {}

// While evaluates MaxIterations once if present, then repeats Cond/Body.
type While struct {
	base
	MaxIterations Expression // optional
	Cond          BoolExpr
	Body          Node
}

func (*While) expression() {}

// DoWhile runs Body once before Cond gates further iterations.
type DoWhile struct {
	base
	Cond BoolExpr
	Body Node
}

func (*DoWhile) expression() {}

// For iterates the current pipe value: elements for a list, codepoints
// for a string, once for any other single value (spec §4.6.2).
type For struct {
	base
	Body Node
}

func (*For) expression() {}

// GroupedExpr is `( head -> targets )`: an arithmetic head, piped through
// nested targets, then its own terminator applied (spec §4.5.3).
type GroupedExpr struct {
	base
	Head       Expression
	Targets    []PipeTarget
	Terminator Terminator // optional
}

func (*GroupedExpr) expression() {}
