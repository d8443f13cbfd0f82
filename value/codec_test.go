package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSnapshotRoundTrip verifies spec §8's round-trip law (modulo closure
// exclusion) across the full value union a variables map can hold.
func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	d := NewDict()
	d.Set("inner", Num(3))

	vars := map[string]Value{
		"s":      Str("hello"),
		"n":      Num(3.5),
		"b":      Bool(true),
		"nothing": Nil,
		"list":   NewList(Num(1), Str("x")),
		"dict":   d,
		"tuplePos":   NewPositionalTuple([]Value{Num(1), Num(2)}),
		"tupleNamed": NewNamedTuple([]string{"a", "b"}, map[string]Value{"a": Num(1), "b": Num(2)}),
		"vec":    NewVector("embedding", []float64{1, 2, 3}),
	}

	data, err := EncodeSnapshot(vars)
	require.NoError(t, err)

	got, err := DecodeSnapshot(data)
	require.NoError(t, err)

	for name, want := range vars {
		assert.True(t, DeepEqual(want, got[name]), "variable %q round-trip mismatch: want %#v got %#v", name, want, got[name])
	}
}

// TestSnapshotRejectsClosures verifies spec §8's closure-exclusion scope.
func TestSnapshotRejectsClosures(t *testing.T) {
	t.Parallel()
	vars := map[string]Value{"f": &Callable{CallKind: ScriptCallable}}
	_, err := EncodeSnapshot(vars)
	assert.Error(t, err)
}

// TestSnapshotDigestStableAcrossEncoding verifies the digest is a pure
// function of the canonical encoding, independent of Go map iteration
// order (the reason canonical CBOR was chosen over a raw hash).
func TestSnapshotDigestStableAcrossEncoding(t *testing.T) {
	t.Parallel()
	a := map[string]Value{"x": Num(1), "y": Num(2)}
	b := map[string]Value{"y": Num(2), "x": Num(1)}

	da, err := SnapshotDigest(a)
	require.NoError(t, err)
	db, err := SnapshotDigest(b)
	require.NoError(t, err)
	assert.Equal(t, da, db)
}
