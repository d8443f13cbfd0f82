package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// dispatchKey is the string a dispatch dict/list entry is matched
// against. Dict keys are themselves strings, and formatValue is stable
// and injective for the primitive values dispatch keys are typically
// built from (spec §4.2), so matching the piped value's formatted form
// against the dict's string keys implements "deep equality with the key
// string" without needing a second, non-string-keyed index.
func dispatchKey(v value.Value) string { return value.FormatValue(v) }

// dispatchDict implements spec §4.5.9's dict-dispatch rule. "default" is
// not a distinct AST field — it is an ordinary entry under the key
// "default" (spec §8's dispatch example), consulted only on a miss.
func dispatchDict(input value.Value, d *value.Dict, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	key := dispatchKey(input)
	if v, ok := d.Get(key); ok {
		return applyDispatchMatch(v, input, ctx, span)
	}
	if v, ok := d.Get("default"); ok {
		return applyDispatchMatch(v, input, ctx, span)
	}
	return nil, rillerr.PropertyNotFound(span, key)
}

// dispatchList implements spec §4.5.9's list-dispatch rule: the input
// must be a number, truncated to an integer index with negative
// normalization and bounds checking.
func dispatchList(input value.Value, l *value.List, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	num, ok := input.(value.Num)
	if !ok {
		return nil, rillerr.TypeError(span, "list dispatch requires a number, got "+value.InferType(input))
	}
	idx := int(num)
	n := len(l.Elements)
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return nil, rillerr.PropertyNotFound(span, dispatchKey(input))
	}
	return applyDispatchMatch(l.Elements[idx], input, ctx, span)
}

// applyDispatchMatch auto-invokes a matched callable entry: zero-param
// script callables (first param, if any, must be named "$") receive
// pipeValue = input; parameterized application/runtime callables receive
// [input] as their sole argument. A script callable with user-defined
// parameters is rejected — dispatch never supplies arguments to one.
func applyDispatchMatch(matched value.Value, input value.Value, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	c, ok := matched.(*value.Callable)
	if !ok {
		return matched, nil
	}
	if c.CallKind == value.ScriptCallable {
		if len(c.Params) > 0 && c.Params[0].Name != "$" {
			return nil, rillerr.TypeError(span,
				"dispatch cannot invoke a callable with user-defined parameters")
		}
		return invokeCallable(c, nil, ctx, span, input)
	}
	if len(c.HostParams) > 0 {
		return invokeCallable(c, []value.Value{input}, ctx, span, input)
	}
	return invokeCallable(c, nil, ctx, span, input)
}

// resolveCallableOrName implements spec §4.5.5's "invoke target by
// callable or name" helper: expr is evaluated normally first (so a
// variable holding a closure wins); if that fails and expr is a bare
// variable reference, it falls back to a functions-table lookup by name.
func resolveCallableOrName(expr ast.Expression, ctx *rtctx.Context) (*value.Callable, error) {
	val, err := Evaluate(expr, ctx)
	if err == nil {
		c, ok := val.(*value.Callable)
		if !ok {
			return nil, rillerr.TypeError(expr.Position(), "expected a callable, got "+value.InferType(val))
		}
		return c, nil
	}
	if v, ok := expr.(*ast.Variable); ok && v.Name != "" && len(v.Chain) == 0 {
		if fn, found := ctx.Function(v.Name); found {
			return fn, nil
		}
		return nil, rillerr.UndefinedFunction(expr.Position(), v.Name)
	}
	return nil, err
}
