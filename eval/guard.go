package eval

import (
	"time"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// withTimeout races fn against ctx's configured per-call timeout (spec
// §4.11). A context with no timeout runs fn directly and synchronously;
// otherwise fn runs on its own goroutine so a timer win can return
// promptly (the goroutine itself is not forcibly killed, matching
// spec §5's "outstanding host promises are not forcibly killed").
func withTimeout(fnName string, ctx *rtctx.Context, span ast.Span, fn func() (value.Value, error)) (value.Value, error) {
	ms := ctx.TimeoutMS()
	if ms <= 0 {
		return fn()
	}

	type result struct {
		v   value.Value
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.v, r.err
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return nil, &rillerr.TimeoutError{FunctionName: fnName, Ms: ms, Span: span}
	}
}

// checkAbort implements spec §4.11/§5's abort poll, run before every
// call and at every loop iteration.
func checkAbort(ctx *rtctx.Context, span ast.Span) error {
	if ctx.Aborted() {
		return &rillerr.AbortError{Span: span}
	}
	return nil
}
