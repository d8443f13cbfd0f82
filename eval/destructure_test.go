package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// TestDestructurePositionalLengthMismatch verifies a positional pattern
// whose element count doesn't match the input list length raises a type
// error carrying both lengths as detail (spec §4.5.6).
func TestDestructurePositionalLengthMismatch(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	pattern := ast.DestructurePattern{Elements: []ast.DestructureElement{
		ast.BindElement{Name: "a"},
		ast.BindElement{Name: "b"},
	}}
	tgt := &ast.DestructureTarget{Pattern: pattern}

	_, err := evaluateDestructureTarget(tgt, value.NewList(value.Num(1)), ctx)
	require.Error(t, err)
	rerr, ok := err.(*rillerr.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, rillerr.CodeTypeError, rerr.Code)
	assert.Equal(t, 2, rerr.Detail["patternLen"])
	assert.Equal(t, 1, rerr.Detail["valueLen"])
}

// TestDestructurePositionalBindsAndPassesThrough verifies a matching
// positional pattern binds each name and returns the input unchanged.
func TestDestructurePositionalBindsAndPassesThrough(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	pattern := ast.DestructurePattern{Elements: []ast.DestructureElement{
		ast.BindElement{Name: "a"},
		ast.SkipElement{},
		ast.BindElement{Name: "c"},
	}}
	tgt := &ast.DestructureTarget{Pattern: pattern}
	input := value.NewList(value.Num(1), value.Num(2), value.Num(3))

	result, err := evaluateDestructureTarget(tgt, input, ctx)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(input, result), "destructure must pass the input through unchanged")

	a, ok := ctx.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, value.Num(1), a)
	c, ok := ctx.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, value.Num(3), c)
}

// TestDestructureKeyedMissingKeyErrors verifies keyed destructure raises
// a type error naming the missing key when the dict lacks it.
func TestDestructureKeyedMissingKeyErrors(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	pattern := ast.DestructurePattern{Elements: []ast.DestructureElement{
		ast.BindElement{Key: "name", Name: "n"},
	}}
	tgt := &ast.DestructureTarget{Pattern: pattern}

	d := value.NewDict()
	_, err := evaluateDestructureTarget(tgt, d, ctx)
	require.Error(t, err)
	rerr, ok := err.(*rillerr.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, rillerr.CodeTypeError, rerr.Code)
	assert.Equal(t, "name", rerr.Detail["key"])
}

// TestDestructureKeyedRejectsNestedElement verifies a nested pattern is
// not permitted once keyed mode is detected.
func TestDestructureKeyedRejectsNestedElement(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	pattern := ast.DestructurePattern{Elements: []ast.DestructureElement{
		ast.BindElement{Key: "a", Name: "a"},
		ast.NestedElement{Pattern: ast.DestructurePattern{}},
	}}
	tgt := &ast.DestructureTarget{Pattern: pattern}

	d := value.NewDict()
	d.Set("a", value.Num(1))
	_, err := evaluateDestructureTarget(tgt, d, ctx)
	require.Error(t, err)
}
