package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/value"
)

func numLit(n float64) ast.Expression { return &ast.NumberLiteral{Value: n} }

// TestEvaluateSliceTargetPositiveStepRange verifies an ordinary forward
// slice with explicit bounds (spec §4.5.7).
func TestEvaluateSliceTargetPositiveStepRange(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	input := value.NewList(value.Num(0), value.Num(1), value.Num(2), value.Num(3), value.Num(4))
	tgt := &ast.SliceTarget{Start: numLit(1), Stop: numLit(4)}

	result, err := evaluateSliceTarget(tgt, input, ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(1), value.Num(2), value.Num(3)), result))
}

// TestEvaluateSliceTargetNegativeStepDefaultBounds verifies the implicit
// bounds for a negative step are length-1/-1, producing a full reverse.
func TestEvaluateSliceTargetNegativeStepDefaultBounds(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	input := value.NewList(value.Num(1), value.Num(2), value.Num(3))
	tgt := &ast.SliceTarget{Step: numLit(-1)}

	result, err := evaluateSliceTarget(tgt, input, ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(3), value.Num(2), value.Num(1)), result))
}

// TestEvaluateSliceTargetNegativeStepClampsOutOfRangeStart verifies an
// explicit start beyond the list bounds under a negative step clamps to
// length-1 rather than erroring or indexing out of range.
func TestEvaluateSliceTargetNegativeStepClampsOutOfRangeStart(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	input := value.NewList(value.Num(1), value.Num(2), value.Num(3))
	tgt := &ast.SliceTarget{Start: numLit(100), Step: numLit(-1)}

	result, err := evaluateSliceTarget(tgt, input, ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(3), value.Num(2), value.Num(1)), result))
}

// TestEvaluateSliceTargetNegativeIndexWraps verifies a negative explicit
// bound wraps from the end of the sequence (spec §4.5.7).
func TestEvaluateSliceTargetNegativeIndexWraps(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	input := value.NewList(value.Num(0), value.Num(1), value.Num(2), value.Num(3))
	tgt := &ast.SliceTarget{Start: numLit(-2)}

	result, err := evaluateSliceTarget(tgt, input, ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(value.NewList(value.Num(2), value.Num(3)), result))
}

// TestEvaluateSliceTargetStepZeroErrors verifies a zero step is rejected
// rather than looping forever or dividing by zero.
func TestEvaluateSliceTargetStepZeroErrors(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	tgt := &ast.SliceTarget{Step: numLit(0)}
	_, err := evaluateSliceTarget(tgt, value.NewList(value.Num(1)), ctx)
	require.Error(t, err)
}

// TestEvaluateSliceTargetOnString verifies slicing works the same way
// over a string's codepoints.
func TestEvaluateSliceTargetOnString(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	tgt := &ast.SliceTarget{Start: numLit(1), Stop: numLit(3)}
	result, err := evaluateSliceTarget(tgt, value.Str("hello"), ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Str("el"), result)
}
