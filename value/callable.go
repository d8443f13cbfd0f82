package value

import "github.com/opal-lang/rill/ast"

// CallableKind discriminates the three callable variants (spec §3.2).
type CallableKind string

const (
	ScriptCallable      CallableKind = "script"
	RuntimeCallable     CallableKind = "runtime"
	ApplicationCallable CallableKind = "application"
)

// Param is one formal parameter, with its default already evaluated
// eagerly in the defining context at construction time (spec §4.5.3).
type Param struct {
	Name       string
	Type       string // "" if no type annotation
	Default    Value
	HasDefault bool
}

// HostFunc is the shape a runtime/application callable's implementation
// takes. ctx is opaque here (an *rtctx.Context in practice) to avoid a
// value<->rtctx import cycle; the eval package performs the assertion.
type HostFunc func(ctx any, args []Value) (Value, error)

// Callable is the runtime representation of all three callable kinds
// (spec §3.2). Every callable is a Value in its own right (Kind ==
// KindClosure for all three variants).
type Callable struct {
	CallKind CallableKind

	// script
	Params        []Param
	Body          ast.Node // *ast.Block or a single ast.Expression
	DefiningScope any      // *rtctx.Context, opaque for the same reason as HostFunc
	Annotations   map[string]Value

	// runtime / application
	Name     string
	Host     HostFunc
	HostParams []Param // typed params for application callables; nil/empty skips validation (spec §9)

	// shared
	IsProperty bool  // zero-param closure, auto-invoked on dict field access
	BoundDict  *Dict // back-pointer installed once at dict finalization
}

func (*Callable) Kind() Kind { return KindClosure }
