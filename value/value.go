// Package value implements Rill's tagged runtime value union (spec §3.1)
// and the callable model layered on top of it (spec §3.2). Every value
// the evaluator ever touches is a value.Value.
package value

// Kind names the closed set of runtime types. Type inference (InferType)
// and type-locking (rtctx) both key on Kind.
type Kind string

const (
	KindNull    Kind = "null"
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBool    Kind = "bool"
	KindList    Kind = "list"
	KindDict    Kind = "dict"
	KindTuple   Kind = "tuple"
	KindVector  Kind = "vector"
	KindClosure Kind = "closure" // all three callable kinds report this
)

// Value is implemented by every member of the runtime's tagged union.
type Value interface {
	Kind() Kind
}

// Null is the single absent value.
type Null struct{}

func (Null) Kind() Kind { return KindNull }

// Nil is the shared Null instance; use it instead of constructing Null{}.
var Nil Value = Null{}

// Str is a UTF-8 string value.
type Str string

func (Str) Kind() Kind { return KindString }

// Num is an IEEE-754 double value.
type Num float64

func (Num) Kind() Kind { return KindNumber }

// Bool is a two-valued boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// List is an ordered sequence of values.
type List struct {
	Elements []Value
}

func (*List) Kind() Kind { return KindList }

// NewList builds a list from its elements (no copy beyond the slice header).
func NewList(elements ...Value) *List {
	return &List{Elements: elements}
}
