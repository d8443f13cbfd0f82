package driver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// valueComparer treats value.Value as an opaque leaf compared via
// value.DeepEqual, since Dict/List carry unexported fields cmp can't
// walk into directly — the same structural-equality notion closure
// comparison (ast.StructurallyEqual) and dict dispatch already use.
var valueComparer = cmp.Comparer(func(a, b value.Value) bool {
	return value.DeepEqual(a, b)
})

func newTestContext(t *testing.T, cfg rtctx.Config) *rtctx.Context {
	t.Helper()
	if cfg.Callbacks.OnLog == nil {
		cfg.Callbacks.OnLog = func(value.Value) {}
	}
	ctx, err := rtctx.New(cfg)
	require.NoError(t, err)
	return ctx
}

func numberStatement(n float64) *ast.Statement {
	return &ast.Statement{Pipe: &ast.PipeChain{Head: &ast.NumberLiteral{Value: n}}}
}

func captureStatement(n float64, name string) *ast.Statement {
	return &ast.Statement{Pipe: &ast.PipeChain{
		Head:       &ast.NumberLiteral{Value: n},
		Terminator: &ast.CaptureTerm{Name: name},
	}}
}

// TestExecuteEmptyScript verifies an empty script yields null with no
// captured variables (spec §4.1: "final value is ... null for empty
// programs").
func TestExecuteEmptyScript(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, rtctx.Config{})
	result, err := Execute(&ast.Script{}, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Nil, result.Value)
	assert.Empty(t, result.Variables)
}

// TestExecuteCapturesVariable verifies a capture terminator binds into
// the returned variable snapshot.
func TestExecuteCapturesVariable(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, rtctx.Config{})
	script := &ast.Script{Statements: []*ast.Statement{captureStatement(5, "x")}}

	result, err := Execute(script, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Num(5), result.Value)
	assert.Equal(t, value.Num(5), result.Variables["x"])
}

// TestExecuteLastStatementWins verifies the final value is the last
// statement's, not the first.
func TestExecuteLastStatementWins(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, rtctx.Config{})
	script := &ast.Script{Statements: []*ast.Statement{
		numberStatement(1),
		numberStatement(2),
		numberStatement(3),
	}}

	result, err := Execute(script, ctx)
	require.NoError(t, err)
	assert.Equal(t, value.Num(3), result.Value)
}

// TestStepperFiresObservability verifies onStepStart/onStepEnd/onCapture
// fire once per statement, in order.
func TestStepperFiresObservability(t *testing.T) {
	t.Parallel()
	var starts, ends []int
	var captures []string

	ctx := newTestContext(t, rtctx.Config{
		Observability: rtctx.Observability{
			OnStepStart: func(i int) { starts = append(starts, i) },
			OnStepEnd:   func(i int, _ float64) { ends = append(ends, i) },
			OnCapture:   func(name string, _ value.Value) { captures = append(captures, name) },
		},
	})
	script := &ast.Script{Statements: []*ast.Statement{
		captureStatement(1, "a"),
		captureStatement(2, "b"),
	}}

	_, err := Execute(script, ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, starts)
	assert.Equal(t, []int{0, 1}, ends)
	assert.Equal(t, []string{"a", "b"}, captures)
}

// TestStepperAbortHalts verifies an already-tripped abort signal stops
// the stepper on its very next step and fires onError.
func TestStepperAbortHalts(t *testing.T) {
	t.Parallel()
	var errs []error
	ctx := newTestContext(t, rtctx.Config{
		Signal: alwaysAborted{},
		Observability: rtctx.Observability{
			OnError: func(err error) { errs = append(errs, err) },
		},
	})
	script := &ast.Script{Statements: []*ast.Statement{numberStatement(1)}}

	_, err := Execute(script, ctx)
	require.Error(t, err)
	assert.IsType(t, &rillerr.AbortError{}, err)
	assert.Len(t, errs, 1)
}

// TestExecuteAutoExceptionHalts verifies a string result matching a
// configured pattern raises AutoExceptionError and stops the stepper.
func TestExecuteAutoExceptionHalts(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, rtctx.Config{AutoExceptions: []string{"^ERROR:"}})
	script := &ast.Script{Statements: []*ast.Statement{
		{Pipe: &ast.PipeChain{Head: &ast.StringLiteral{Parts: []ast.StringPart{{Text: "ERROR: nope"}}}}},
	}}

	_, err := Execute(script, ctx)
	require.Error(t, err)
	autoErr, ok := err.(*rillerr.AutoExceptionError)
	require.True(t, ok)
	assert.Equal(t, "^ERROR:", autoErr.PatternSource)
}

// TestStepperStepsOneAtATime verifies the iterator-shaped stepper
// contract: done/index/total track progress and step() advances by one
// statement.
func TestStepperStepsOneAtATime(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, rtctx.Config{})
	script := &ast.Script{Statements: []*ast.Statement{numberStatement(1), numberStatement(2)}}
	s := NewStepper(script, ctx)

	assert.False(t, s.Done())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 2, s.Total())

	_, err := s.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index())
	assert.False(t, s.Done())

	_, err = s.Step()
	require.NoError(t, err)
	assert.True(t, s.Done())
	assert.Equal(t, value.Num(2), s.GetResult())
}

// TestExecuteVariableSnapshotStructuralDiff verifies the returned
// variable snapshot matches the expected map field-for-field, using
// cmp.Diff (rather than reflect.DeepEqual/testify's ObjectsAreEqual) so
// a mismatch reports exactly which variable and nested field differs.
func TestExecuteVariableSnapshotStructuralDiff(t *testing.T) {
	t.Parallel()
	ctx := newTestContext(t, rtctx.Config{})
	script := &ast.Script{Statements: []*ast.Statement{
		captureStatement(1, "a"),
		captureStatement(2, "b"),
	}}

	result, err := Execute(script, ctx)
	require.NoError(t, err)

	want := map[string]value.Value{"a": value.Num(1), "b": value.Num(2)}
	if diff := cmp.Diff(want, result.Variables, valueComparer); diff != "" {
		t.Errorf("variable snapshot mismatch (-want +got):\n%s", diff)
	}
}

type alwaysAborted struct{}

func (alwaysAborted) Aborted() bool { return true }
