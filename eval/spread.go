package eval

import (
	"strconv"
	"sync"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evalSpreadTargetValue evaluates a spread target expression, falling
// back to a functions-table lookup by name when plain evaluation fails
// (spec §4.5.5's "invoke target by callable or name" helper).
func evalSpreadTargetValue(expr ast.Expression, ctx *rtctx.Context) (value.Value, error) {
	v, err := Evaluate(expr, ctx)
	if err == nil {
		return v, nil
	}
	c, ferr := resolveCallableOrName(expr, ctx)
	if ferr != nil {
		return nil, err
	}
	return c, nil
}

// evaluateParallelSpread implements spec §4.5.5's broadcast rules for
// `~`, launching every invocation before awaiting any of them (spec §5).
func evaluateParallelSpread(t *ast.ParallelSpreadTarget, input value.Value, ctx *rtctx.Context) (value.Value, error) {
	targetVal, err := evalSpreadTargetValue(t.Target, ctx)
	if err != nil {
		return nil, err
	}

	inputList, inputIsList := input.(*value.List)
	targetList, targetIsList := targetVal.(*value.List)

	switch {
	case inputIsList && targetIsList:
		if len(inputList.Elements) != len(targetList.Elements) {
			return nil, rillerr.TypeError(t.Position(), "parallel spread length mismatch: "+
				strconv.Itoa(len(inputList.Elements))+" vs "+strconv.Itoa(len(targetList.Elements)))
		}
		callables, err := callablesOf(targetList, t.Position())
		if err != nil {
			return nil, err
		}
		return parallelInvoke(inputList.Elements, callables, ctx, t.Position())

	case inputIsList && !targetIsList:
		c, ok := targetVal.(*value.Callable)
		if !ok {
			return nil, rillerr.TypeError(t.Position(), "parallel spread target must be a callable or list of callables")
		}
		callables := make([]*value.Callable, len(inputList.Elements))
		for i := range callables {
			callables[i] = c
		}
		return parallelInvoke(inputList.Elements, callables, ctx, t.Position())

	case !inputIsList && targetIsList:
		callables, err := callablesOf(targetList, t.Position())
		if err != nil {
			return nil, err
		}
		inputs := make([]value.Value, len(callables))
		for i := range inputs {
			inputs[i] = input
		}
		return parallelInvoke(inputs, callables, ctx, t.Position())

	default:
		c, ok := targetVal.(*value.Callable)
		if !ok {
			return nil, rillerr.TypeError(t.Position(), "parallel spread target must be a callable")
		}
		result, err := InvokeCallable(c, []value.Value{input}, ctx, t.Position())
		if err != nil {
			return nil, err
		}
		return value.NewList(result), nil
	}
}

func callablesOf(list *value.List, span ast.Span) ([]*value.Callable, error) {
	out := make([]*value.Callable, len(list.Elements))
	for i, v := range list.Elements {
		c, ok := v.(*value.Callable)
		if !ok {
			return nil, rillerr.TypeError(span, "parallel spread target list must contain only callables")
		}
		out[i] = c
	}
	return out, nil
}

// parallelInvoke launches every call before awaiting any result,
// preserving output order regardless of completion order (spec §5).
func parallelInvoke(inputs []value.Value, callables []*value.Callable, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	n := len(inputs)
	results := make([]value.Value, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			results[i], errs[i] = InvokeCallable(callables[i], []value.Value{inputs[i]}, ctx, span)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return value.NewList(results...), nil
}

// evaluateParallelFilter implements spec §4.5.5's `~?`: each element is
// evaluated against Predicate in its own isolated child scope (so
// concurrent elements never race on a shared pipe value), and the
// caller's pipe value is left untouched throughout — runTargets restores
// it from the target's own return value, per spec's "restore the outer
// pipe value" rule.
func evaluateParallelFilter(t *ast.ParallelFilterTarget, input value.Value, ctx *rtctx.Context) (value.Value, error) {
	list, ok := input.(*value.List)
	if !ok {
		return nil, rillerr.TypeError(t.Position(), "parallel filter requires a list, got "+value.InferType(input))
	}
	n := len(list.Elements)
	keep := make([]bool, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			child := ctx.NewChild()
			child.SetPipeValue(list.Elements[i])
			v, err := Evaluate(t.Predicate, child)
			if err != nil {
				errs[i] = err
				return
			}
			keep[i] = value.IsTruthy(v)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	out := make([]value.Value, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, list.Elements[i])
		}
	}
	return value.NewList(out...), nil
}

// evaluateSequentialSpread implements spec §4.5.5's `@`: a left-to-right
// fold, each call awaited before the next begins.
func evaluateSequentialSpread(t *ast.SequentialSpreadTarget, input value.Value, ctx *rtctx.Context) (value.Value, error) {
	targetVal, err := evalSpreadTargetValue(t.Target, ctx)
	if err != nil {
		return nil, err
	}

	var callables []*value.Callable
	if list, ok := targetVal.(*value.List); ok {
		callables, err = callablesOf(list, t.Position())
		if err != nil {
			return nil, err
		}
	} else {
		c, ok := targetVal.(*value.Callable)
		if !ok {
			return nil, rillerr.TypeError(t.Position(), "sequential spread target must be a callable or list of callables")
		}
		callables = []*value.Callable{c}
	}

	current := input
	for _, c := range callables {
		if err := checkAbort(ctx, t.Position()); err != nil {
			return nil, err
		}
		current, err = InvokeCallable(c, []value.Value{current}, ctx, t.Position())
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

// spreadToTuple implements spec §4.5.5's bare spread `*`: a list becomes
// a positional tuple, a dict a named tuple; anything else is a type
// error.
func spreadToTuple(input value.Value, span ast.Span) (value.Value, error) {
	switch x := input.(type) {
	case *value.List:
		return value.NewPositionalTuple(append([]value.Value(nil), x.Elements...)), nil
	case *value.Dict:
		keys := x.Keys()
		named := make(map[string]value.Value, len(keys))
		for _, k := range keys {
			v, _ := x.Get(k)
			named[k] = v
		}
		return value.NewNamedTuple(keys, named), nil
	default:
		return nil, rillerr.TypeError(span, "cannot spread a "+value.InferType(input))
	}
}

// evaluateSpreadExpr is the explicit-operand spread form `*x` used to
// supply args to a callable (spec §4.5.5), as distinct from the bare
// pipe-target form (ast.SpreadTarget, handled in targets.go).
func evaluateSpreadExpr(n *ast.SpreadExpr, ctx *rtctx.Context) (value.Value, error) {
	v, err := Evaluate(n.Operand, ctx)
	if err != nil {
		return nil, err
	}
	return spreadToTuple(v, n.Position())
}
