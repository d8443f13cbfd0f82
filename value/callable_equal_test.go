package value

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opal-lang/rill/ast"
)

func numberBody(n float64) ast.Node {
	return &ast.Script{Statements: []*ast.Statement{
		{Pipe: &ast.PipeChain{Head: &ast.NumberLiteral{Value: n}}},
	}}
}

// TestCallableEqualStructuralSameShape verifies two distinct script
// callables with identical params/body/defining-scope/annotations compare
// equal (spec §3.2), including taking the Fingerprint fast path without
// it producing a false negative.
func TestCallableEqualStructuralSameShape(t *testing.T) {
	t.Parallel()
	scope := "scope-token"
	a := &Callable{
		CallKind:      ScriptCallable,
		Params:        []Param{{Name: "x", Type: "number"}},
		Body:          numberBody(1),
		DefiningScope: scope,
	}
	b := &Callable{
		CallKind:      ScriptCallable,
		Params:        []Param{{Name: "x", Type: "number"}},
		Body:          numberBody(1),
		DefiningScope: scope,
	}
	assert.True(t, a.Equal(b))

	fpA, err := a.Fingerprint()
	assert.NoError(t, err)
	fpB, err := b.Fingerprint()
	assert.NoError(t, err)
	assert.Equal(t, fpA, fpB, "identical params/body must fingerprint identically")
}

// TestCallableEqualDifferentBodyFingerprintShortCircuits verifies a body
// difference is caught (directly exercising the Fingerprint fast path in
// Equal, not just the full structural fallback).
func TestCallableEqualDifferentBodyFingerprintShortCircuits(t *testing.T) {
	t.Parallel()
	scope := "scope-token"
	a := &Callable{CallKind: ScriptCallable, Body: numberBody(1), DefiningScope: scope}
	b := &Callable{CallKind: ScriptCallable, Body: numberBody(2), DefiningScope: scope}

	fpA, err := a.Fingerprint()
	assert.NoError(t, err)
	fpB, err := b.Fingerprint()
	assert.NoError(t, err)
	assert.NotEqual(t, fpA, fpB)
	assert.False(t, a.Equal(b))
}

// TestCallableEqualDifferentDefiningScopeNotEqual verifies a fingerprint
// match alone is not sufficient: defining scope identity still matters.
func TestCallableEqualDifferentDefiningScopeNotEqual(t *testing.T) {
	t.Parallel()
	a := &Callable{CallKind: ScriptCallable, Body: numberBody(1), DefiningScope: "scope-a"}
	b := &Callable{CallKind: ScriptCallable, Body: numberBody(1), DefiningScope: "scope-b"}

	fpA, _ := a.Fingerprint()
	fpB, _ := b.Fingerprint()
	assert.Equal(t, fpA, fpB, "fingerprint excludes defining scope by design")
	assert.False(t, a.Equal(b), "Equal must still distinguish different defining scopes")
}

// TestCallableEqualIgnoresSpan verifies body comparison is location-
// independent (ast.StructurallyEqual skips Span fields).
func TestCallableEqualIgnoresSpan(t *testing.T) {
	t.Parallel()
	bodyA := numberBody(1)
	bodyB := numberBody(1)
	bodyB.(*ast.Script).Span = ast.Span{Start: ast.Position{Line: 5, Column: 1}}

	a := &Callable{CallKind: ScriptCallable, Body: bodyA, DefiningScope: "s"}
	b := &Callable{CallKind: ScriptCallable, Body: bodyB, DefiningScope: "s"}
	assert.True(t, a.Equal(b))
}

// TestCallableEqualRuntimeCallableByReferenceOnly verifies runtime/
// application callables never compare structurally equal unless they are
// literally the same Go value.
func TestCallableEqualRuntimeCallableByReferenceOnly(t *testing.T) {
	t.Parallel()
	host := func(ctx any, args []Value) (Value, error) { return Nil, nil }
	a := &Callable{CallKind: RuntimeCallable, Name: "f", Host: host}
	b := &Callable{CallKind: RuntimeCallable, Name: "f", Host: host}
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))
}

func TestFingerprintUndefinedForNonScriptCallable(t *testing.T) {
	t.Parallel()
	c := &Callable{CallKind: RuntimeCallable}
	_, err := c.Fingerprint()
	assert.Error(t, err)
}
