package eval

import (
	"strconv"
	"time"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/invariant"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// InvokeCallable is the evaluator's single callable-invocation entry
// point (spec §4.3): script callables bind params into a fresh child of
// their defining scope and evaluate their body as a block-expression;
// runtime/application callables call straight through to Host. Both
// variants pass through the abort check and timeout guard.
func InvokeCallable(c *value.Callable, args []value.Value, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	return invokeCallable(c, args, ctx, span, nil)
}

// invokeCallable is InvokeCallable plus pipeSeed, the pipe value a
// dispatch-site auto-invocation seeds into the callee's child context
// (spec §4.5.9: "auto-invoke it with pipeValue = piped input"). Ordinary
// call sites pass nil; boundDict (when set) always wins over pipeSeed.
func invokeCallable(c *value.Callable, args []value.Value, ctx *rtctx.Context, span ast.Span, pipeSeed value.Value) (value.Value, error) {
	invariant.NotNil(c, "callable")
	invariant.NotNil(ctx, "ctx")

	if err := checkAbort(ctx, span); err != nil {
		return nil, err
	}

	switch c.CallKind {
	case value.ScriptCallable:
		return invokeScriptCallable(c, args, ctx, span, pipeSeed)
	case value.RuntimeCallable, value.ApplicationCallable:
		return invokeHostCallable(c, args, ctx, span)
	default:
		return nil, rillerr.New(rillerr.CodeTypeError, span, "unknown callable kind")
	}
}

func invokeScriptCallable(c *value.Callable, args []value.Value, ctx *rtctx.Context, span ast.Span, pipeSeed value.Value) (value.Value, error) {
	paramVals, paramTypes, err := bindScriptArgs(c, args, span)
	if err != nil {
		return nil, err
	}

	defScope, _ := c.DefiningScope.(*rtctx.Context)
	if defScope == nil {
		defScope = ctx
	}
	child := defScope.NewClosureCall(paramVals, paramTypes)

	switch {
	case c.BoundDict != nil:
		child.SetPipeValue(c.BoundDict)
	case pipeSeed != nil:
		child.SetPipeValue(pipeSeed)
	}

	name := c.Name
	if name == "" {
		name = "<closure>"
	}
	return withTimeout(name, ctx, span, func() (value.Value, error) {
		result, _, err := catchReturn(func() (value.Value, error) { return Evaluate(c.Body, child) })
		return result, err
	})
}

func invokeHostCallable(c *value.Callable, args []value.Value, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	callArgs := args
	if c.BoundDict != nil && len(args) == 0 {
		callArgs = []value.Value{c.BoundDict}
	}
	if len(c.HostParams) > 0 {
		if err := validateHostParams(c.HostParams, callArgs, span); err != nil {
			return nil, err
		}
	}

	name := c.Name
	if name == "" {
		name = "<host>"
	}
	obs := ctx.Observability()
	if obs.OnFunctionCall != nil {
		obs.OnFunctionCall(name, callArgs)
	}
	start := time.Now()
	result, err := withTimeout(name, ctx, span, func() (value.Value, error) {
		return c.Host(ctx, callArgs)
	})
	if err == nil && obs.OnFunctionReturn != nil {
		obs.OnFunctionReturn(name, result, float64(time.Since(start).Microseconds())/1000)
	}
	return result, err
}

func validateHostParams(params []value.Param, args []value.Value, span ast.Span) error {
	for i, p := range params {
		if i >= len(args) {
			if p.HasDefault {
				continue
			}
			return rillerr.TypeError(span, "missing required argument "+quoteName(p.Name))
		}
		if want := expectedType(p); want != "" && value.InferType(args[i]) != want {
			return rillerr.TypeError(span,
				"parameter "+quoteName(p.Name)+" expects "+want+", got "+value.InferType(args[i]))
		}
	}
	return nil
}

// expectedType implements spec §4.3.2b: a param validates against its
// declared type if any, else the type inferred from its default if any,
// else it accepts anything.
func expectedType(p value.Param) string {
	if p.Type != "" {
		return p.Type
	}
	if p.HasDefault {
		return value.InferType(p.Default)
	}
	return ""
}

// bindScriptArgs implements spec §4.3.2a/b: a single tuple argument
// unpacks by position or name; otherwise arguments bind positionally
// against declared params, validating type and filling defaults.
func bindScriptArgs(c *value.Callable, args []value.Value, span ast.Span) (map[string]value.Value, map[string]string, error) {
	if len(args) == 1 {
		if tup, ok := args[0].(*value.Tuple); ok {
			return bindTupleArgs(c, tup, span)
		}
	}

	if len(args) > len(c.Params) {
		return nil, nil, rillerr.TypeError(span,
			"too many arguments: expected at most "+strconv.Itoa(len(c.Params))+", got "+strconv.Itoa(len(args)))
	}

	vars := make(map[string]value.Value, len(c.Params))
	types := make(map[string]string, len(c.Params))
	for i, p := range c.Params {
		v, err := bindOneParam(p, args, i, span)
		if err != nil {
			return nil, nil, err
		}
		vars[p.Name] = v
		types[p.Name] = value.InferType(v)
	}
	invariant.Postcondition(len(vars) == len(c.Params), "bound %d params, expected %d", len(vars), len(c.Params))
	return vars, types, nil
}

func bindOneParam(p value.Param, positional []value.Value, i int, span ast.Span) (value.Value, error) {
	if i < len(positional) {
		v := positional[i]
		if want := expectedType(p); want != "" && value.InferType(v) != want {
			return nil, rillerr.TypeError(span,
				"parameter "+quoteName(p.Name)+" expects "+want+", got "+value.InferType(v))
		}
		return v, nil
	}
	if p.HasDefault {
		return p.Default, nil
	}
	return nil, rillerr.TypeError(span, "missing required argument "+quoteName(p.Name))
}

func bindTupleArgs(c *value.Callable, tup *value.Tuple, span ast.Span) (map[string]value.Value, map[string]string, error) {
	vars := make(map[string]value.Value, len(c.Params))
	types := make(map[string]string, len(c.Params))

	if tup.IsNamed() {
		known := make(map[string]bool, len(c.Params))
		for _, p := range c.Params {
			known[p.Name] = true
		}
		for _, k := range tup.NamedKeys() {
			if !known[k] {
				return nil, nil, rillerr.TypeError(span, "unknown named argument "+quoteName(k))
			}
		}
		for _, p := range c.Params {
			v, ok := tup.NamedValue(p.Name)
			if !ok {
				if !p.HasDefault {
					return nil, nil, rillerr.TypeError(span, "missing required argument "+quoteName(p.Name))
				}
				v = p.Default
			} else if want := expectedType(p); want != "" && value.InferType(v) != want {
				return nil, nil, rillerr.TypeError(span,
					"parameter "+quoteName(p.Name)+" expects "+want+", got "+value.InferType(v))
			}
			vars[p.Name] = v
			types[p.Name] = value.InferType(v)
		}
		return vars, types, nil
	}

	pos := tup.Positional()
	if len(pos) > len(c.Params) {
		return nil, nil, rillerr.TypeError(span, "too many positional arguments in spread")
	}
	for i, p := range c.Params {
		v, err := bindOneParam(p, pos, i, span)
		if err != nil {
			return nil, nil, err
		}
		vars[p.Name] = v
		types[p.Name] = value.InferType(v)
	}
	return vars, types, nil
}

func quoteName(s string) string { return "\"" + s + "\"" }
