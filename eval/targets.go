package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluateTarget dispatches one pipe target by concrete type (spec
// §4.5.4 - §4.5.9). current is the pipe value entering this target.
func evaluateTarget(t ast.PipeTarget, current value.Value, ctx *rtctx.Context) (value.Value, error) {
	switch tgt := t.(type) {
	case *ast.LiteralTarget:
		return evaluateLiteralTarget(tgt, current, ctx)
	case *ast.InvokeTarget:
		return evaluateInvokeTarget(tgt, current, ctx)
	case *ast.ParallelSpreadTarget:
		return evaluateParallelSpread(tgt, current, ctx)
	case *ast.ParallelFilterTarget:
		return evaluateParallelFilter(tgt, current, ctx)
	case *ast.SequentialSpreadTarget:
		return evaluateSequentialSpread(tgt, current, ctx)
	case *ast.DestructureTarget:
		return evaluateDestructureTarget(tgt, current, ctx)
	case *ast.SliceTarget:
		return evaluateSliceTarget(tgt, current, ctx)
	case *ast.EnumerateTarget:
		return evaluateEnumerate(current, tgt.Position())
	case *ast.SpreadTarget:
		return spreadToTuple(current, tgt.Position())
	default:
		return nil, rillerr.New(rillerr.CodeTypeError, t.Position(), "unsupported pipe target")
	}
}

// evaluateLiteralTarget implements spec §4.5.9: a dict/list literal (or
// a variable resolving to one) used as a pipe target dispatches on the
// incoming value instead of just replacing it.
func evaluateLiteralTarget(t *ast.LiteralTarget, current value.Value, ctx *rtctx.Context) (value.Value, error) {
	switch expr := t.Expr.(type) {
	case *ast.DictLiteral:
		v, err := Evaluate(expr, ctx)
		if err != nil {
			return nil, err
		}
		return dispatchDict(current, v.(*value.Dict), ctx, t.Position())
	case *ast.ListLiteral:
		v, err := Evaluate(expr, ctx)
		if err != nil {
			return nil, err
		}
		return dispatchList(current, v.(*value.List), ctx, t.Position())
	case *ast.Variable:
		v, err := Evaluate(expr, ctx)
		if err != nil {
			return nil, err
		}
		switch vv := v.(type) {
		case *value.Dict:
			return dispatchDict(current, vv, ctx, t.Position())
		case *value.List:
			return dispatchList(current, vv, ctx, t.Position())
		default:
			return v, nil
		}
	default:
		return Evaluate(t.Expr, ctx)
	}
}

// evaluateInvokeTarget invokes the current pipe value as a callable
// with explicit arguments (spec §4.5.4).
func evaluateInvokeTarget(t *ast.InvokeTarget, current value.Value, ctx *rtctx.Context) (value.Value, error) {
	callable, ok := current.(*value.Callable)
	if !ok {
		return nil, rillerr.TypeError(t.Position(),
			"cannot invoke a "+value.InferType(current)+" as a callable")
	}
	args, err := evaluateArgsWithPipeRestore(t.Args, ctx)
	if err != nil {
		return nil, err
	}
	return InvokeCallable(callable, args, ctx, t.Position())
}
