package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluateArgsWithPipeRestore implements the save/restore law spec §5
// and §8 invariant 3 apply to every argument list: each argument
// evaluates against the pipeValue live when the call began, never one
// mutated by an earlier sibling argument, and the ambient pipeValue is
// restored once the whole list has been evaluated.
func evaluateArgsWithPipeRestore(args []ast.Expression, ctx *rtctx.Context) ([]value.Value, error) {
	saved := ctx.SnapshotPipe()
	out := make([]value.Value, len(args))
	for i, a := range args {
		ctx.RestorePipe(saved)
		v, err := Evaluate(a, ctx)
		if err != nil {
			ctx.RestorePipe(saved)
			return nil, err
		}
		out[i] = v
	}
	ctx.RestorePipe(saved)
	return out, nil
}

// evaluateFunctionCall implements spec §4.9.1: resolve by name in the
// function table, then, when no explicit arguments were written and the
// ambient pipeValue is non-null, supply it as the sole argument.
func evaluateFunctionCall(n *ast.FunctionCall, ctx *rtctx.Context) (value.Value, error) {
	fn, ok := ctx.Function(n.Name)
	if !ok {
		return nil, suggestUndefinedFunction(ctx, n.Name, n.Position())
	}
	args, err := evaluateArgsWithPipeRestore(n.Args, ctx)
	if err != nil {
		return nil, err
	}
	if len(n.Args) == 0 {
		if pv := ctx.PipeValue(); !isNull(pv) {
			args = []value.Value{pv}
		}
	}
	return InvokeCallable(fn, args, ctx, n.Position())
}

// evaluateVariableCall implements spec §4.9.2: the callee must already
// be a callable value. With no explicit arguments, the pipe value fills
// the first parameter only when that parameter has no default and the
// pipe value is not itself a callable (so piping a closure through a
// higher-order function doesn't get treated as that function's sole
// argument).
func evaluateVariableCall(n *ast.VariableCall, ctx *rtctx.Context) (value.Value, error) {
	calleeVal, err := Evaluate(n.Callee, ctx)
	if err != nil {
		return nil, err
	}
	c, ok := calleeVal.(*value.Callable)
	if !ok {
		return nil, rillerr.TypeError(n.Position(), "cannot call a "+value.InferType(calleeVal)+" as a closure")
	}
	args, err := evaluateArgsWithPipeRestore(n.Args, ctx)
	if err != nil {
		return nil, err
	}
	if len(n.Args) == 0 && c.CallKind == value.ScriptCallable && len(c.Params) > 0 && !c.Params[0].HasDefault {
		if pv := ctx.PipeValue(); !isNull(pv) {
			if _, pvIsCallable := pv.(*value.Callable); !pvIsCallable {
				args = []value.Value{pv}
			}
		}
	}
	return InvokeCallable(c, args, ctx, n.Position())
}

// evaluateBareMethodCall implements spec §4.5.3's bare-method pipe
// target: a method invoked on the ambient pipeValue.
func evaluateBareMethodCall(n *ast.BareMethodCall, ctx *rtctx.Context) (value.Value, error) {
	return dispatchMethod(ctx.PipeValue(), n.Name, n.Args, ctx, n.Position())
}

// evaluatePostfix implements spec §4.5.2: a primary expression followed
// by zero or more chained method calls, each folding into the receiver
// for the next.
func evaluatePostfix(n *ast.Postfix, ctx *rtctx.Context) (value.Value, error) {
	current, err := Evaluate(n.Primary, ctx)
	if err != nil {
		return nil, err
	}
	for _, call := range n.Calls {
		current, err = dispatchMethod(current, call.Name, call.Args, ctx, call.Position())
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// dispatchMethod implements spec §4.9.3: a callable receiver is
// rejected outright (the caller must ->() it first); a dict receiver
// whose entry under that name is itself a callable is invoked with the
// dict as receiver; otherwise the name resolves against the runtime
// method table with the receiver prepended as the first argument.
func dispatchMethod(receiver value.Value, name string, argExprs []ast.Expression, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	if _, ok := receiver.(*value.Callable); ok {
		return nil, rillerr.TypeError(span, "cannot call method ."+name+" on a callable; use ->() to invoke it first")
	}
	args, err := evaluateArgsWithPipeRestore(argExprs, ctx)
	if err != nil {
		return nil, err
	}

	if d, ok := receiver.(*value.Dict); ok {
		if v, present := d.Get(name); present {
			if c, ok := v.(*value.Callable); ok {
				return invokeCallable(c, args, ctx, span, receiver)
			}
		}
	}

	m, ok := ctx.Method(name)
	if !ok {
		return nil, suggestUndefinedMethod(ctx, name, span)
	}
	return InvokeCallable(m, append([]value.Value{receiver}, args...), ctx, span)
}
