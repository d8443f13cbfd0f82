// Package rtctx implements the scoped runtime context of spec §3.3: a
// parent-chain tree of variable scopes sharing a single, read-only
// function/method table, callbacks, observability hooks,
// auto-exception patterns, timeout, and abort signal.
//
// Grounded on the lineage's runtime/executor/context.go immutable-clone
// pattern (With*/Clone methods producing a sibling rather than mutating
// in place), reworked from shell execution fields (workdir/environ/stdin)
// to Rill's scoped variable/function/method tree.
package rtctx

import (
	"log/slog"
	"regexp"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/invariant"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// AbortSignal lets a host request cancellation mid-script (spec §3.3, §5).
type AbortSignal interface {
	Aborted() bool
}

// Callbacks are the required host hooks (spec §6).
type Callbacks struct {
	OnLog func(value.Value)
}

// Observability is the optional per-step/per-call/per-capture hook set
// (spec §3.3, §6). Every field may be nil.
type Observability struct {
	OnStepStart      func(index int)
	OnStepEnd        func(index int, durationMS float64)
	OnCapture        func(name string, v value.Value)
	OnFunctionCall   func(name string, args []value.Value)
	OnFunctionReturn func(name string, result value.Value, durationMS float64)
	OnError          func(err error)
	OnLogEvent       func(v value.Value)
}

// Context is one node of the scope tree.
type Context struct {
	parent *Context

	variables     map[string]value.Value
	variableTypes map[string]string
	pipeValue     value.Value

	functions map[string]*value.Callable
	methods   map[string]*value.Callable

	callbacks      Callbacks
	observability  Observability
	autoExceptions []compiledPattern
	timeoutMS      int
	signal         AbortSignal
	logger         *slog.Logger
}

type compiledPattern struct {
	source string
	re     *regexp.Regexp
}

// spanZero is used for errors with no useful source location (e.g.
// variable-lock violations raised from rtctx, which has no AST access);
// the evaluator re-wraps these with the call-site span where relevant.
func spanZero() ast.Span { return ast.Span{} }

// Logger returns this context's logger (never nil).
func (c *Context) Logger() *slog.Logger { return c.logger }

// TimeoutMS returns the per-call timeout budget in milliseconds, or 0
// if no timeout was configured.
func (c *Context) TimeoutMS() int { return c.timeoutMS }

// Signal returns the configured abort handle, or nil.
func (c *Context) Signal() AbortSignal { return c.signal }

// Aborted reports whether the configured signal (if any) is set.
func (c *Context) Aborted() bool {
	return c.signal != nil && c.signal.Aborted()
}

// Callbacks returns the required callback set.
func (c *Context) Callbacks() Callbacks { return c.callbacks }

// Observability returns the optional hook set.
func (c *Context) Observability() Observability { return c.observability }

// Function looks up a host function by name (spec §4.9.1).
func (c *Context) Function(name string) (*value.Callable, bool) {
	f, ok := c.functions[name]
	return f, ok
}

// Method looks up a host method by name (spec §4.9.3).
func (c *Context) Method(name string) (*value.Callable, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// FunctionNames returns every registered function name, for "did you
// mean" suggestions (eval/suggest.go).
func (c *Context) FunctionNames() []string {
	names := make([]string, 0, len(c.functions))
	for n := range c.functions {
		names = append(names, n)
	}
	return names
}

// MethodNames returns every registered method name.
func (c *Context) MethodNames() []string {
	names := make([]string, 0, len(c.methods))
	for n := range c.methods {
		names = append(names, n)
	}
	return names
}

// PipeValue returns the current pipe value (spec §3.3).
func (c *Context) PipeValue() value.Value { return c.pipeValue }

// SetPipeValue replaces the current pipe value.
func (c *Context) SetPipeValue(v value.Value) { c.pipeValue = v }

// SnapshotPipe and RestorePipe implement the save/restore law of spec
// §3.3 invariant 5 and §8 invariant 3: callers snapshot before
// evaluating a side channel (argument list, filter predicate) and
// restore after, so sibling expressions see the pre-step pipe value.
func (c *Context) SnapshotPipe() value.Value { return c.pipeValue }

func (c *Context) RestorePipe(saved value.Value) { c.pipeValue = saved }

// Lookup resolves name by walking the parent chain (spec §3.3
// invariant 1).
func (c *Context) Lookup(name string) (value.Value, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if v, ok := cur.variables[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// LookupType returns the locked type name for a variable, if bound.
func (c *Context) LookupType(name string) (string, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if t, ok := cur.variableTypes[name]; ok {
			return t, true
		}
	}
	return "", false
}

// VariableNames returns every name visible from this scope (own scope
// plus every ancestor), for "did you mean" suggestions.
func (c *Context) VariableNames() []string {
	seen := make(map[string]bool)
	var names []string
	for cur := c; cur != nil; cur = cur.parent {
		for n := range cur.variables {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

func (c *Context) existsInAncestor(name string) bool {
	for cur := c.parent; cur != nil; cur = cur.parent {
		if _, ok := cur.variables[name]; ok {
			return true
		}
	}
	return false
}

// Set binds name in this scope, implementing type-locking (invariant 2)
// and the no-shadow-an-ancestor rule (invariant 3). explicitType is the
// variable's declared annotation, or "" to infer from v.
func (c *Context) Set(name string, v value.Value, explicitType string) error {
	newType := explicitType
	if newType == "" {
		newType = value.InferType(v)
	}

	invariant.Invariant(len(c.variables) == len(c.variableTypes),
		"variables and variableTypes must stay in sync, got %d vars and %d types", len(c.variables), len(c.variableTypes))

	if _, ownScope := c.variables[name]; ownScope {
		locked := c.variableTypes[name]
		if locked != newType {
			return rillerr.TypeError(spanZero(),
				"cannot reassign "+quote(name)+": locked type "+locked+", got "+newType).
				WithDetail("name", name).WithDetail("lockedType", locked).WithDetail("gotType", newType)
		}
		c.variables[name] = v
		return nil
	}

	if c.existsInAncestor(name) {
		return rillerr.TypeError(spanZero(),
			"cannot introduce "+quote(name)+" in a child scope: it already exists in an ancestor scope").
			WithDetail("name", name)
	}

	c.variables[name] = v
	c.variableTypes[name] = newType
	invariant.Postcondition(c.variableTypes[name] == newType, "type must be locked to %s after Set", newType)
	return nil
}

// NewChild creates an empty child scope for a block or loop body: it
// shares the global tables and does not pre-populate variables.
func (c *Context) NewChild() *Context {
	return &Context{
		parent:         c,
		variables:      make(map[string]value.Value),
		variableTypes:  make(map[string]string),
		pipeValue:      c.pipeValue,
		functions:      c.functions,
		methods:        c.methods,
		callbacks:      c.callbacks,
		observability:  c.observability,
		autoExceptions: c.autoExceptions,
		timeoutMS:      c.timeoutMS,
		signal:         c.signal,
		logger:         c.logger,
	}
}

// NewClosureCall creates the child context for a script callable
// invocation (spec §4.3.2c): its own variables start as a clone of the
// defining scope's OWN bindings (captured by reference means each
// invocation re-clones the live values, not a snapshot frozen at
// closure-creation time — see spec §9), then params are bound into that
// same map so reassigning a captured name during the call is a
// same-scope reassignment, not an illegal ancestor shadow.
func (c *Context) NewClosureCall(params map[string]value.Value, paramTypes map[string]string) *Context {
	vars := make(map[string]value.Value, len(c.variables)+len(params))
	types := make(map[string]string, len(c.variableTypes)+len(paramTypes))
	for k, v := range c.variables {
		vars[k] = v
	}
	for k, t := range c.variableTypes {
		types[k] = t
	}
	for k, v := range params {
		vars[k] = v
	}
	for k, t := range paramTypes {
		types[k] = t
	}
	return &Context{
		parent:         c,
		variables:      vars,
		variableTypes:  types,
		functions:      c.functions,
		methods:        c.methods,
		callbacks:      c.callbacks,
		observability:  c.observability,
		autoExceptions: c.autoExceptions,
		timeoutMS:      c.timeoutMS,
		signal:         c.signal,
		logger:         c.logger,
	}
}

// Clone produces an independent root context for a deterministic re-run
// (spec §8 invariant 1): variables and their locked types are copied
// into fresh maps (the values themselves are shared, not deep copied);
// the shared, read-only tables and configuration are preserved.
func (c *Context) Clone() *Context {
	vars := make(map[string]value.Value, len(c.variables))
	for k, v := range c.variables {
		vars[k] = v
	}
	types := make(map[string]string, len(c.variableTypes))
	for k, t := range c.variableTypes {
		types[k] = t
	}
	return &Context{
		parent:         c.parent,
		variables:      vars,
		variableTypes:  types,
		functions:      c.functions,
		methods:        c.methods,
		callbacks:      c.callbacks,
		observability:  c.observability,
		autoExceptions: c.autoExceptions,
		timeoutMS:      c.timeoutMS,
		signal:         c.signal,
		logger:         c.logger,
	}
}

// Snapshot returns a shallow copy of this scope's own variables, the
// shape execute() returns alongside the final value.
func (c *Context) Snapshot() map[string]value.Value {
	out := make(map[string]value.Value, len(c.variables))
	for k, v := range c.variables {
		out[k] = v
	}
	return out
}

// CheckAutoException tests s against every configured pattern (spec
// §4.4), returning the first matching pattern's source.
func (c *Context) CheckAutoException(s string) (string, bool) {
	for _, p := range c.autoExceptions {
		if p.re.MatchString(s) {
			return p.source, true
		}
	}
	return "", false
}

func quote(s string) string { return "\"" + s + "\"" }
