package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/value"
)

// TestEvaluateVariableAltAccessAllMissingYieldsNull verifies spec §4.7's
// alt-access rule: when none of the named alternatives are present (or
// all are null), the result is null with no default consulted, even if
// one happens to be declared.
func TestEvaluateVariableAltAccessAllMissingYieldsNull(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	d := value.NewDict()
	d.Set("c", value.Nil)
	ctx.Set("x", d, "")

	n := &ast.Variable{
		Name: "x",
		Chain: []ast.AccessLink{
			&ast.AltAccess{Names: []string{"a", "b", "c"}},
		},
	}
	result, err := evaluateVariable(n, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Nil, result)
}

// TestEvaluateVariableAltAccessFirstPresentWins verifies the first
// present, non-null alternative is returned.
func TestEvaluateVariableAltAccessFirstPresentWins(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	d := value.NewDict()
	d.Set("b", value.Num(7))
	ctx.Set("x", d, "")

	n := &ast.Variable{
		Name: "x",
		Chain: []ast.AccessLink{
			&ast.AltAccess{Names: []string{"a", "b"}},
		},
	}
	result, err := evaluateVariable(n, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Num(7), result)
}

// TestEvaluateVariableFieldAccessMissingUsesLinkDefault verifies a
// missing field falls back to the link's own declared default rather
// than erroring.
func TestEvaluateVariableFieldAccessMissingUsesLinkDefault(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	d := value.NewDict()
	ctx.Set("x", d, "")

	link := &ast.FieldAccess{Name: "missing"}
	link.Default = &ast.NumberLiteral{Value: 42}
	n := &ast.Variable{
		Name: "x",
		Chain: []ast.AccessLink{
			link,
		},
	}
	result, err := evaluateVariable(n, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Num(42), result)
}

// TestEvaluateVariableFieldAccessMissingNoDefaultErrors verifies a
// missing field with no declared default raises.
func TestEvaluateVariableFieldAccessMissingNoDefaultErrors(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	d := value.NewDict()
	ctx.Set("x", d, "")

	n := &ast.Variable{
		Name:  "x",
		Chain: []ast.AccessLink{&ast.FieldAccess{Name: "missing"}},
	}
	_, err := evaluateVariable(n, ctx)
	require.Error(t, err)
}

// TestEvaluateExistenceUndefinedVariableIsFalseNotError verifies `?.`
// swallows resolution failures as "not present" rather than propagating
// an error.
func TestEvaluateExistenceUndefinedVariableIsFalseNotError(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	n := &ast.ExistenceExpr{Name: "nope"}
	result, err := evaluateExistence(n, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), result)
}

// TestEvaluateExistenceTypeQualifierMismatchIsFalse verifies a present,
// non-null value whose type doesn't match the qualifier is still false.
func TestEvaluateExistenceTypeQualifierMismatchIsFalse(t *testing.T) {
	t.Parallel()
	ctx := newTestCtx(t)
	ctx.Set("x", value.Num(1), "")
	n := &ast.ExistenceExpr{Name: "x", TypeQualifier: "string"}
	result, err := evaluateExistence(n, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), result)
}
