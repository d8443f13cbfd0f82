package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

func newCtx(t *testing.T) *rtctx.Context {
	t.Helper()
	ctx, err := rtctx.New(rtctx.Config{
		Callbacks: rtctx.Callbacks{OnLog: func(value.Value) {}},
	})
	require.NoError(t, err)
	return ctx
}

func call(t *testing.T, fns map[string]*value.Callable, name string, ctx *rtctx.Context, args ...value.Value) (value.Value, error) {
	t.Helper()
	c, ok := fns[name]
	require.True(t, ok, "builtin %q not registered", name)
	return c.Host(ctx, args)
}

func TestLogForwardsAndPassesThrough(t *testing.T) {
	t.Parallel()
	var logged []value.Value
	ctx, err := rtctx.New(rtctx.Config{
		Callbacks: rtctx.Callbacks{OnLog: func(v value.Value) { logged = append(logged, v) }},
	})
	require.NoError(t, err)

	result, err := call(t, Functions(), "log", ctx, value.Str("hello"))
	require.NoError(t, err)
	assert.Equal(t, value.Str("hello"), result)
	assert.Equal(t, []value.Value{value.Str("hello")}, logged)
}

func TestTypeReportsInferredType(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	result, err := call(t, Functions(), "type", ctx, value.NewList(value.Num(1)))
	require.NoError(t, err)
	assert.Equal(t, value.Str("list"), result)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	d := value.NewDict()
	d.Set("a", value.Num(1))
	d.Set("b", value.Str("two"))

	encoded, err := call(t, Functions(), "json", ctx, d)
	require.NoError(t, err)
	s, ok := encoded.(value.Str)
	require.True(t, ok)

	decoded, err := call(t, Functions(), "parse_json", ctx, s)
	require.NoError(t, err)
	assert.True(t, value.DeepEqual(d, decoded))
}

func TestRangeDefaultStep(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	result, err := call(t, Functions(), "range", ctx, value.Num(3))
	require.NoError(t, err)
	l, ok := result.(*value.List)
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Num(0), value.Num(1), value.Num(2)}, l.Elements)
}

func TestRangeWithStartAndStep(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	result, err := call(t, Functions(), "range", ctx, value.Num(1), value.Num(7), value.Num(2))
	require.NoError(t, err)
	l, ok := result.(*value.List)
	require.True(t, ok)
	assert.Equal(t, []value.Value{value.Num(1), value.Num(3), value.Num(5)}, l.Elements)
}

func TestRangeZeroStepErrors(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	_, err := call(t, Functions(), "range", ctx, value.Num(0), value.Num(5), value.Num(0))
	assert.Error(t, err)
}

func TestIterateAdvancesIndependently(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	list := value.NewList(value.Num(1), value.Num(2))

	it1, err := call(t, Functions(), "iterate", ctx, list)
	require.NoError(t, err)
	it2, err := call(t, Functions(), "iterate", ctx, list)
	require.NoError(t, err)

	d1 := it1.(*value.Dict)
	v, _ := d1.Get("value")
	assert.Equal(t, value.Num(1), v)

	next, _ := d1.Get("next")
	nextCallable := next.(*value.Callable)
	advanced, err := nextCallable.Host(ctx, nil)
	require.NoError(t, err)
	advancedDict := advanced.(*value.Dict)
	v2, _ := advancedDict.Get("value")
	assert.Equal(t, value.Num(2), v2)

	d2 := it2.(*value.Dict)
	v3, _ := d2.Get("value")
	assert.Equal(t, value.Num(1), v3, "a second iterator over the same list starts over")
}

func TestCollectionMethods(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	methods := Methods()

	l := value.NewList(value.Num(1), value.Num(2), value.Num(3))
	length, err := call(t, methods, "length", ctx, l)
	require.NoError(t, err)
	assert.Equal(t, value.Num(3), length)

	reversed, err := call(t, methods, "reverse", ctx, l)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Num(3), value.Num(2), value.Num(1)}, reversed.(*value.List).Elements)

	d := value.NewDict()
	d.Set("b", value.Num(2))
	d.Set("a", value.Num(1))
	keys, err := call(t, methods, "keys", ctx, d)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Str("a"), value.Str("b")}, keys.(*value.List).Elements)
}

func TestStringMethods(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	methods := Methods()

	upper, err := call(t, methods, "upper", ctx, value.Str("abc"))
	require.NoError(t, err)
	assert.Equal(t, value.Str("ABC"), upper)

	joined, err := call(t, methods, "join", ctx, value.NewList(value.Str("a"), value.Str("b")), value.Str(","))
	require.NoError(t, err)
	assert.Equal(t, value.Str("a,b"), joined)
}

func TestVectorMethods(t *testing.T) {
	t.Parallel()
	ctx := newCtx(t)
	methods := Methods()

	a := value.NewVector("embedding", []float64{1, 0})
	b := value.NewVector("embedding", []float64{0, 1})
	dot, err := call(t, methods, "dot", ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, value.Num(0), dot)
}
