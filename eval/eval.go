// Package eval implements the Rill expression/statement evaluator: the
// largest layer of the runtime (spec §2, ~50% of the core budget).
//
// Grounded on runtime/execution/evaluator.go's NodeEvaluator.EvaluateNode
// type-switch dispatch (a method on a stateless struct holding only a
// decorator registry); reworked here as free functions over
// *rtctx.Context, since no evaluator-local state survives a call the way
// NodeEvaluator's registry did — every piece of state the switch needs
// already lives on the context tree.
package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// Evaluate is the evaluator's single public entry point (spec §2: "the
// driver knows only the evaluator's public entry point"). driver.Execute
// and driver.Stepper call this once per top-level statement; everything
// else is internal recursion.
func Evaluate(node ast.Node, ctx *rtctx.Context) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Statement:
		return Evaluate(n.Pipe, ctx)
	case *ast.PipeChain:
		return evaluatePipeChain(n, ctx)
	case *ast.Block:
		return evaluateBlock(n, ctx)
	case *ast.Conditional:
		return evaluateConditional(n, ctx)
	case *ast.While:
		return evaluateWhile(n, ctx)
	case *ast.DoWhile:
		return evaluateDoWhile(n, ctx)
	case *ast.For:
		return evaluateFor(n, ctx)
	case *ast.GroupedExpr:
		return evaluateGrouped(n, ctx)
	case *ast.StringLiteral:
		return evaluateStringLiteral(n, ctx)
	case *ast.NumberLiteral:
		return value.Num(n.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(n.Value), nil
	case *ast.NullLiteral:
		return value.Nil, nil
	case *ast.ListLiteral:
		return evaluateListLiteral(n, ctx)
	case *ast.DictLiteral:
		return evaluateDictLiteral(n, ctx)
	case *ast.ClosureLiteral:
		return evaluateClosureLiteral(n, ctx)
	case *ast.SpreadExpr:
		return evaluateSpreadExpr(n, ctx)
	case *ast.Variable:
		return evaluateVariable(n, ctx)
	case *ast.ExistenceExpr:
		return evaluateExistence(n, ctx)
	case *ast.FunctionCall:
		return evaluateFunctionCall(n, ctx)
	case *ast.VariableCall:
		return evaluateVariableCall(n, ctx)
	case *ast.BareMethodCall:
		return evaluateBareMethodCall(n, ctx)
	case *ast.Postfix:
		return evaluatePostfix(n, ctx)
	case *ast.BinaryArith:
		return evaluateArith(n, ctx)
	case *ast.UnaryMinus:
		return evaluateUnaryMinus(n, ctx)
	default:
		return nil, rillerr.New(rillerr.CodeTypeError, node.Position(),
			"unsupported node in expression position")
	}
}

// evaluateBlock runs a block-expression's statements in its own child
// scope (spec §4.6.2): the result is the last statement's value, a
// ReturnSignal caught here yields its value, and a BreakSignal
// propagates to the enclosing loop untouched.
func evaluateBlock(n *ast.Block, ctx *rtctx.Context) (value.Value, error) {
	result, _, err := catchReturn(func() (value.Value, error) {
		child := ctx.NewChild()
		var last value.Value = value.Nil
		for _, stmt := range n.Statements {
			v, err := Evaluate(stmt, child)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil
	})
	return result, err
}

func evaluateConditional(n *ast.Conditional, ctx *rtctx.Context) (value.Value, error) {
	ok, err := evaluateBoolExpr(n.Cond, ctx)
	if err != nil {
		return nil, err
	}
	if ok {
		return Evaluate(n.Then, ctx)
	}
	for _, elif := range n.Elifs {
		ok, err := evaluateBoolExpr(elif.Cond, ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			return Evaluate(elif.Then, ctx)
		}
	}
	if n.Else != nil {
		return Evaluate(n.Else, ctx)
	}
	return value.Nil, nil
}

func evaluateWhile(n *ast.While, ctx *rtctx.Context) (value.Value, error) {
	maxIter := -1
	if n.MaxIterations != nil {
		v, err := Evaluate(n.MaxIterations, ctx)
		if err != nil {
			return nil, err
		}
		num, ok := v.(value.Num)
		if !ok {
			return nil, rillerr.TypeError(n.MaxIterations.Position(),
				"while maxIterations must be a number, got "+value.InferType(v))
		}
		maxIter = int(num)
	}
	var result value.Value = value.Nil
	for i := 0; maxIter < 0 || i < maxIter; i++ {
		if ctx.Aborted() {
			return nil, &rillerr.AbortError{Span: n.Position()}
		}
		ok, err := evaluateBoolExpr(n.Cond, ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, broke, err := catchBreak(func() (value.Value, error) { return Evaluate(n.Body, ctx) })
		if err != nil {
			return nil, err
		}
		result = v
		if broke {
			return result, nil
		}
	}
	return result, nil
}

func evaluateDoWhile(n *ast.DoWhile, ctx *rtctx.Context) (value.Value, error) {
	var result value.Value = value.Nil
	for {
		if ctx.Aborted() {
			return nil, &rillerr.AbortError{Span: n.Position()}
		}
		v, broke, err := catchBreak(func() (value.Value, error) { return Evaluate(n.Body, ctx) })
		if err != nil {
			return nil, err
		}
		result = v
		if broke {
			return result, nil
		}
		ok, err := evaluateBoolExpr(n.Cond, ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return result, nil
}

// evaluateFor iterates the current pipe value (spec §4.6.2): list
// elements, string codepoints, or a single run for any other value.
// BreakSignal caught here returns the signal's value instead of the
// accumulated result list.
func evaluateFor(n *ast.For, ctx *rtctx.Context) (value.Value, error) {
	input := ctx.PipeValue()
	var items []value.Value
	switch x := input.(type) {
	case *value.List:
		items = x.Elements
	case value.Str:
		for _, r := range string(x) {
			items = append(items, value.Str(string(r)))
		}
	default:
		items = []value.Value{input}
	}

	saved := ctx.SnapshotPipe()
	results := make([]value.Value, 0, len(items))
	for _, item := range items {
		if ctx.Aborted() {
			ctx.RestorePipe(saved)
			return nil, &rillerr.AbortError{Span: n.Position()}
		}
		ctx.SetPipeValue(item)
		v, broke, err := catchBreak(func() (value.Value, error) { return Evaluate(n.Body, ctx) })
		if err != nil {
			ctx.RestorePipe(saved)
			return nil, err
		}
		if broke {
			ctx.RestorePipe(saved)
			return v, nil
		}
		results = append(results, v)
	}
	ctx.RestorePipe(saved)
	return value.NewList(results...), nil
}

func evaluateGrouped(n *ast.GroupedExpr, ctx *rtctx.Context) (value.Value, error) {
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
