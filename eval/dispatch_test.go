package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// TestDispatchDictFallsBackToDefaultOnMiss verifies a dict dispatch with
// no matching key consults the "default" entry before raising (spec
// §4.5.9).
func TestDispatchDictFallsBackToDefaultOnMiss(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	d := value.NewDict()
	d.Set("1", value.Str("one"))
	d.Set("default", value.Str("fallback"))

	result, err := dispatchDict(value.Num(99), d, ctx, ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, value.Str("fallback"), result)
}

// TestDispatchDictExactKeyWinsOverDefault verifies a matching key is
// preferred over the default entry.
func TestDispatchDictExactKeyWinsOverDefault(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	d := value.NewDict()
	d.Set("1", value.Str("one"))
	d.Set("default", value.Str("fallback"))

	result, err := dispatchDict(value.Num(1), d, ctx, ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, value.Str("one"), result)
}

// TestDispatchDictNoDefaultRaises verifies a miss with no "default" entry
// raises R_PROPERTY_NOT_FOUND.
func TestDispatchDictNoDefaultRaises(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	d := value.NewDict()
	d.Set("1", value.Str("one"))

	_, err := dispatchDict(value.Num(99), d, ctx, ast.Span{})
	require.Error(t, err)
	rerr, ok := err.(*rillerr.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, rillerr.CodePropertyNotFound, rerr.Code)
}

// TestDispatchListOutOfRangeRaisesWithNoDefaultFallback verifies list
// dispatch has no default-consultation path: an out-of-range index
// always raises, unlike dict dispatch's "default" key fallback.
func TestDispatchListOutOfRangeRaisesWithNoDefaultFallback(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	l := value.NewList(value.Str("a"), value.Str("b"))

	_, err := dispatchList(value.Num(5), l, ctx, ast.Span{})
	require.Error(t, err)
	rerr, ok := err.(*rillerr.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, rillerr.CodePropertyNotFound, rerr.Code)
}

// TestDispatchListNegativeIndexWraps verifies list dispatch normalizes a
// negative index from the end, same as access-link indexing.
func TestDispatchListNegativeIndexWraps(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	l := value.NewList(value.Str("a"), value.Str("b"), value.Str("c"))

	result, err := dispatchList(value.Num(-1), l, ctx, ast.Span{})
	require.NoError(t, err)
	assert.Equal(t, value.Str("c"), result)
}

// TestDispatchListRequiresNumber verifies a non-number input to list
// dispatch is a type error, not a property-not-found.
func TestDispatchListRequiresNumber(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	l := value.NewList(value.Str("a"))

	_, err := dispatchList(value.Str("x"), l, ctx, ast.Span{})
	require.Error(t, err)
	rerr, ok := err.(*rillerr.RuntimeError)
	require.True(t, ok)
	assert.Equal(t, rillerr.CodeTypeError, rerr.Code)
}
