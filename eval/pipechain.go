package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluatePipeChain implements spec §4.5.1. Terminators are handled
// here rather than in a separate executeStatement step (the "mixin"
// reading of the Open Question in spec §9: the source's two co-existing
// evaluators diverge on this, and §4.1's observable contract matches the
// mixin version).
func evaluatePipeChain(n *ast.PipeChain, ctx *rtctx.Context) (value.Value, error) {
	head, err := Evaluate(n.Head, ctx)
	if err != nil {
		return nil, err
	}
	result, err := runTargets(head, n.Targets, ctx, n.Position())
	if err != nil {
		return nil, err
	}
	return applyTerminator(result, n.Terminator, ctx)
}

// runTargets threads current through targets left-to-right, setting
// ctx's pipe value before and after each target (spec §4.5.1, §5: "pipe
// targets are evaluated strictly left-to-right"), and runs the
// auto-exception check (spec §4.4) on each target's string result.
func runTargets(initial value.Value, targets []ast.PipeTarget, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	current := initial
	for _, t := range targets {
		if ctx.Aborted() {
			return nil, &rillerr.AbortError{Span: span}
		}
		ctx.SetPipeValue(current)
		next, err := evaluateTarget(t, current, ctx)
		if err != nil {
			return nil, err
		}
		current = next
		ctx.SetPipeValue(current)
		if s, ok := current.(value.Str); ok {
			if source, matched := ctx.CheckAutoException(string(s)); matched {
				return nil, &rillerr.AutoExceptionError{PatternSource: source, Value: string(s), Span: t.Position()}
			}
		}
	}
	return current, nil
}

// applyTerminator implements spec §4.5.1/§4.6.1: a capture binds via
// setVariable and fires onCapture; break/return raise their signal.
func applyTerminator(v value.Value, term ast.Terminator, ctx *rtctx.Context) (value.Value, error) {
	switch t := term.(type) {
	case nil:
		return v, nil
	case *ast.CaptureTerm:
		if err := ctx.Set(t.Name, v, t.Type); err != nil {
			if re, ok := err.(*rillerr.RuntimeError); ok {
				re.Span = t.Position()
			}
			return nil, err
		}
		if cb := ctx.Observability().OnCapture; cb != nil {
			cb(t.Name, v)
		}
		return v, nil
	case *ast.BreakTerm:
		panic(breakSignal{value: v})
	case *ast.ReturnTerm:
		panic(returnSignal{value: v})
	default:
		return v, nil
	}
}
