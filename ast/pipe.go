package ast

// PipeChain is a head expression followed by zero or more pipe targets,
// with an optional terminator applied last (spec §4.5.1).
type PipeChain struct {
	base
	Head       Expression
	Targets    []PipeTarget
	Terminator Terminator // optional
}

func (*PipeChain) expression() {}

// Terminator is Capture, Break, or Return, applied once a pipe chain's
// targets are exhausted (spec §3.4, §4.5.1, §4.6.1).
type Terminator interface {
	Node
	terminator()
}

// CaptureTerm binds the chain's result to a variable: `:> $name` (or
// `:> $name: Type` when Type is set).
type CaptureTerm struct {
	base
	Name string
	Type string // optional type annotation, "" if absent
}

func (*CaptureTerm) terminator() {}

// BreakTerm exits the innermost loop, carrying the chain's result as the
// loop's value.
type BreakTerm struct {
	base
}

func (*BreakTerm) terminator() {}

// ReturnTerm exits the innermost closure body, carrying the chain's
// result as the call's result.
type ReturnTerm struct {
	base
}

func (*ReturnTerm) terminator() {}

// PipeTarget is one step of a pipe chain (spec §4.5.4 - §4.5.9).
type PipeTarget interface {
	Node
	pipeTarget() bool // unused value, narrows the set to this package's types
}

type targetBase struct {
	base
}

func (targetBase) pipeTarget() bool { return true }

// LiteralTarget replaces the pipe value with Expr's value — unless Expr
// is syntactically a dict literal, list literal, or a variable reference
// that resolves to a dict or list, in which case dispatch applies instead
// (spec §4.5.9). Grouped expressions, control flow, closures, calls, and
// plain literals all pass through this target kind as a plain expression.
type LiteralTarget struct {
	targetBase
	Expr Expression
}

// InvokeTarget invokes the current pipe value as a callable with
// explicit arguments (spec §4.5.4).
type InvokeTarget struct {
	targetBase
	Args []Expression
}

// ParallelSpreadTarget (`~`) maps a closure (or list of closures) over
// the current pipe value concurrently, preserving order (spec §4.5.8, §5).
type ParallelSpreadTarget struct {
	targetBase
	Target Expression
}

// ParallelFilterTarget (`~?`) runs Predicate over each element of the
// current pipe value concurrently and keeps elements where it is truthy
// (spec §4.5.8, §5).
type ParallelFilterTarget struct {
	targetBase
	Predicate Node // *Block or a closure-call expression
}

// SequentialSpreadTarget (`@`) folds the current pipe value through
// Target (a callable or a list of callables) left to right, each call
// receiving the previous call's result (spec §4.5.5).
type SequentialSpreadTarget struct {
	targetBase
	Target Expression
}

// DestructureTarget (`:<...>`) binds the current pipe value's elements
// or fields into named variables (spec §4.5.6).
type DestructureTarget struct {
	targetBase
	Pattern DestructurePattern
}

// SliceTarget (`/<start:stop:step>`) slices the current pipe value,
// which must be a list or string (spec §4.5.7). Each bound is optional.
type SliceTarget struct {
	targetBase
	Start Expression
	Stop  Expression
	Step  Expression
}

// EnumerateTarget (`@<>`) pairs each element of the current pipe value
// with its index (spec §4.5.7).
type EnumerateTarget struct {
	targetBase
}

// SpreadTarget (bare `*`) spreads the current pipe value into a Tuple
// value (spec §4.5.5).
type SpreadTarget struct {
	targetBase
}
