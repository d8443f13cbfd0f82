package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

func newTestCtx(t *testing.T) *rtctx.Context {
	t.Helper()
	ctx, err := rtctx.New(rtctx.Config{
		Callbacks: rtctx.Callbacks{OnLog: func(value.Value) {}},
	})
	require.NoError(t, err)
	return ctx
}

func addOneCallable() *value.Callable {
	return &value.Callable{
		CallKind: value.RuntimeCallable,
		Name:     "addOne",
		Host: func(ctx any, args []value.Value) (value.Value, error) {
			n := args[0].(value.Num)
			return value.Num(n + 1), nil
		},
		HostParams: []value.Param{{Name: "x"}},
	}
}

func doubleCallable() *value.Callable {
	return &value.Callable{
		CallKind: value.RuntimeCallable,
		Name:     "double",
		Host: func(ctx any, args []value.Value) (value.Value, error) {
			n := args[0].(value.Num)
			return value.Num(n * 2), nil
		},
		HostParams: []value.Param{{Name: "x"}},
	}
}

// TestEvaluateParallelSpreadZipListToList verifies a list input against a
// list target zips element-by-element (spec §4.5.5).
func TestEvaluateParallelSpreadZipListToList(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	targets := value.NewList(addOneCallable(), doubleCallable())
	tgt := &ast.ParallelSpreadTarget{Target: &ast.Variable{Name: "fns"}}
	ctx.Set("fns", targets, "")

	input := value.NewList(value.Num(1), value.Num(10))
	result, err := evaluateParallelSpread(tgt, input, ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(2), value.Num(20)), result))
}

// TestEvaluateParallelSpreadZipLengthMismatch verifies a list-input/list-
// target length mismatch raises a type error rather than silently
// truncating or panicking.
func TestEvaluateParallelSpreadZipLengthMismatch(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	targets := value.NewList(addOneCallable())
	ctx.Set("fns", targets, "")
	tgt := &ast.ParallelSpreadTarget{Target: &ast.Variable{Name: "fns"}}

	input := value.NewList(value.Num(1), value.Num(2))
	_, err := evaluateParallelSpread(tgt, input, ctx)
	require.Error(t, err)
}

// TestEvaluateParallelSpreadBroadcastListInputScalarTarget verifies a list
// input against a single callable target broadcasts that callable to
// every element.
func TestEvaluateParallelSpreadBroadcastListInputScalarTarget(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	ctx.Set("fn", doubleCallable(), "")
	tgt := &ast.ParallelSpreadTarget{Target: &ast.Variable{Name: "fn"}}

	input := value.NewList(value.Num(1), value.Num(2), value.Num(3))
	result, err := evaluateParallelSpread(tgt, input, ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(2), value.Num(4), value.Num(6)), result))
}

// TestEvaluateParallelSpreadBroadcastScalarInputListTarget verifies a
// scalar input against a list of callables broadcasts the input to each.
func TestEvaluateParallelSpreadBroadcastScalarInputListTarget(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	targets := value.NewList(addOneCallable(), doubleCallable())
	ctx.Set("fns", targets, "")
	tgt := &ast.ParallelSpreadTarget{Target: &ast.Variable{Name: "fns"}}

	result, err := evaluateParallelSpread(tgt, value.Num(5), ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(6), value.Num(10)), result))
}

// TestEvaluateParallelSpreadScalarToScalarWrapsInList verifies a scalar
// input against a single callable target still returns a one-element
// list (spec §4.5.5's default case).
func TestEvaluateParallelSpreadScalarToScalarWrapsInList(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	ctx.Set("fn", doubleCallable(), "")
	tgt := &ast.ParallelSpreadTarget{Target: &ast.Variable{Name: "fn"}}

	result, err := evaluateParallelSpread(tgt, value.Num(5), ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(10)), result))
}

// TestEvaluateSequentialSpreadFoldsLeftToRight verifies `@` threads the
// input through each callable in order, each seeing the prior's output.
func TestEvaluateSequentialSpreadFoldsLeftToRight(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	targets := value.NewList(addOneCallable(), doubleCallable())
	ctx.Set("fns", targets, "")
	tgt := &ast.SequentialSpreadTarget{Target: &ast.Variable{Name: "fns"}}

	result, err := evaluateSequentialSpread(tgt, value.Num(1), ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Num(4), result)
}

// TestEvaluateSequentialSpreadShortCircuitsOnError verifies a failure
// partway through the fold aborts the remaining steps rather than
// continuing with a zero/nil value.
func TestEvaluateSequentialSpreadShortCircuitsOnError(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	var ranSecond bool
	failing := &value.Callable{
		CallKind:   value.RuntimeCallable,
		Name:       "fail",
		HostParams: []value.Param{{Name: "x"}},
		Host: func(ctx any, args []value.Value) (value.Value, error) {
			return nil, assertErr{}
		},
	}
	tracking := &value.Callable{
		CallKind:   value.RuntimeCallable,
		Name:       "track",
		HostParams: []value.Param{{Name: "x"}},
		Host: func(ctx any, args []value.Value) (value.Value, error) {
			ranSecond = true
			return args[0], nil
		},
	}
	ctx.Set("fns", value.NewList(failing, tracking), "")
	tgt := &ast.SequentialSpreadTarget{Target: &ast.Variable{Name: "fns"}}

	_, err := evaluateSequentialSpread(tgt, value.Num(1), ctx)
	require.Error(t, err)
	assert.False(t, ranSecond, "sequential spread must not run later steps once one fails")
}

type assertErr struct{}

func (assertErr) Error() string { return "forced failure" }
