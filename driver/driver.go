// Package driver implements the top-level execution driver of spec
// §4.1: a statement-by-statement stepper over a parsed script, with
// Execute as the synchronous convenience wrapper over it.
//
// Grounded on runtime/executor/context.go's step-execution shape
// (abort check, timed step, observability hooks around each unit of
// work), generalized from shell-command steps to pipe-chain statements.
package driver

import (
	"time"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/eval"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// Result is execute's return shape (spec §4.1).
type Result struct {
	Value     value.Value
	Variables map[string]value.Value
}

// Execute runs every statement of script in order against ctx and
// returns the last statement's value (null for an empty script) plus a
// snapshot of the root scope's variables.
func Execute(script *ast.Script, ctx *rtctx.Context) (Result, error) {
	s := NewStepper(script, ctx)
	for !s.Done() {
		if _, err := s.Step(); err != nil {
			return Result{}, err
		}
	}
	return Result{Value: s.GetResult(), Variables: ctx.Snapshot()}, nil
}

// Stepper is the iterator-shaped controller of spec §4.1: done, index,
// total, context, step(), and getResult().
type Stepper struct {
	script *ast.Script
	ctx    *rtctx.Context
	index  int
	result value.Value
}

// NewStepper constructs a stepper positioned before the first statement.
func NewStepper(script *ast.Script, ctx *rtctx.Context) *Stepper {
	return &Stepper{script: script, ctx: ctx, result: value.Nil}
}

func (s *Stepper) Done() bool          { return s.index >= len(s.script.Statements) }
func (s *Stepper) Index() int          { return s.index }
func (s *Stepper) Total() int          { return len(s.script.Statements) }
func (s *Stepper) Context() *rtctx.Context { return s.ctx }
func (s *Stepper) GetResult() value.Value  { return s.result }

// Step evaluates exactly one statement, implementing spec §4.1's
// per-statement contract: abort check, onStepStart, evaluate (capture
// terminators and their onCapture fire inside eval.Evaluate itself —
// see eval/pipechain.go's applyTerminator), auto-exception check,
// onStepEnd, and onError-then-reraise on any failure.
func (s *Stepper) Step() (value.Value, error) {
	if s.Done() {
		return s.result, nil
	}
	stmt := s.script.Statements[s.index]
	span := stmt.Position()
	obs := s.ctx.Observability()

	if s.ctx.Aborted() {
		err := &rillerr.AbortError{Span: span}
		s.fireError(err)
		return nil, err
	}
	if obs.OnStepStart != nil {
		obs.OnStepStart(s.index)
	}
	start := time.Now()

	v, err := eval.Evaluate(stmt, s.ctx)
	if err != nil {
		s.fireError(err)
		return nil, err
	}

	s.ctx.SetPipeValue(v)
	s.result = v

	if str, ok := v.(value.Str); ok {
		if source, matched := s.ctx.CheckAutoException(string(str)); matched {
			err := &rillerr.AutoExceptionError{PatternSource: source, Value: string(str), Span: span}
			s.fireError(err)
			return nil, err
		}
	}

	if obs.OnStepEnd != nil {
		obs.OnStepEnd(s.index, float64(time.Since(start).Microseconds())/1000)
	}

	s.index++
	return v, nil
}

func (s *Stepper) fireError(err error) {
	if obs := s.ctx.Observability(); obs.OnError != nil {
		obs.OnError(err)
	}
}
