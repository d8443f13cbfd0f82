package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsTruthyFalsyCases covers spec §4.2's exact falsy set: false, null,
// 0, "", [], {}, and a tuple with no entries.
func TestIsTruthyFalsyCases(t *testing.T) {
	t.Parallel()
	falsy := []Value{
		Bool(false),
		Nil,
		Num(0),
		Str(""),
		NewList(),
		NewDict(),
		NewPositionalTuple(nil),
		NewNamedTuple(nil, nil),
	}
	for _, v := range falsy {
		assert.False(t, IsTruthy(v), "expected %#v to be falsy", v)
	}
}

func TestIsTruthyTruthyCases(t *testing.T) {
	t.Parallel()
	truthy := []Value{
		Bool(true),
		Num(1),
		Num(-1),
		Str("x"),
		NewList(Num(1)),
		NewPositionalTuple([]Value{Num(1)}),
	}
	d := NewDict()
	d.Set("a", Num(1))
	truthy = append(truthy, d)

	for _, v := range truthy {
		assert.True(t, IsTruthy(v), "expected %#v to be truthy", v)
	}
}

// TestDeepEqualDictOrderIndependent verifies spec §4.2: two dicts with
// the same key/value pairs inserted in different orders are equal.
func TestDeepEqualDictOrderIndependent(t *testing.T) {
	t.Parallel()
	a := NewDict()
	a.Set("x", Num(1))
	a.Set("y", Num(2))

	b := NewDict()
	b.Set("y", Num(2))
	b.Set("x", Num(1))

	assert.True(t, DeepEqual(a, b))
}

func TestDeepEqualDictLengthMismatch(t *testing.T) {
	t.Parallel()
	a := NewDict()
	a.Set("x", Num(1))

	b := NewDict()
	b.Set("x", Num(1))
	b.Set("y", Num(2))

	assert.False(t, DeepEqual(a, b))
}

// TestDeepEqualListOrderMatters verifies lists, unlike dicts, compare
// element-by-element in order.
func TestDeepEqualListOrderMatters(t *testing.T) {
	t.Parallel()
	a := NewList(Num(1), Num(2))
	b := NewList(Num(2), Num(1))
	assert.False(t, DeepEqual(a, b))
	assert.True(t, DeepEqual(a, NewList(Num(1), Num(2))))
}

func TestDeepEqualNamedTupleByEntrySet(t *testing.T) {
	t.Parallel()
	a := NewNamedTuple([]string{"a", "b"}, map[string]Value{"a": Num(1), "b": Num(2)})
	b := NewNamedTuple([]string{"b", "a"}, map[string]Value{"b": Num(2), "a": Num(1)})
	assert.True(t, DeepEqual(a, b))
}

func TestDeepEqualNilAndNullAreTheSame(t *testing.T) {
	t.Parallel()
	assert.True(t, DeepEqual(nil, Nil))
	assert.True(t, DeepEqual(Nil, nil))
}

func TestFormatValueNumberAndList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "3", FormatValue(Num(3)))
	assert.Equal(t, "3.5", FormatValue(Num(3.5)))
	assert.Equal(t, "[1,2]", FormatValue(NewList(Num(1), Num(2))))
}

func TestInferTypeReportsKindString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "number", InferType(Num(1)))
	assert.Equal(t, "null", InferType(nil))
	assert.Equal(t, "closure", InferType(&Callable{CallKind: ScriptCallable}))
}
