package builtins

import (
	"strconv"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// zeroSpan is used for errors raised from inside a host function: the
// call site span isn't threaded through value.HostFunc, so these errors
// carry no location, same as rtctx's own construction-time errors.
var zeroSpan = ast.Span{}

// runtimeContext recovers the concrete context a host function needs
// (for callbacks/observability); ctx is any solely to avoid a
// value<->rtctx import cycle.
func runtimeContext(ctx any) (*rtctx.Context, error) {
	rc, ok := ctx.(*rtctx.Context)
	if !ok {
		return nil, rillerr.TypeError(zeroSpan, "builtin invoked without a runtime context")
	}
	return rc, nil
}

func requireArgs(name string, args []value.Value, n int) error {
	if len(args) < n {
		return rillerr.TypeError(zeroSpan,
			name+" requires "+strconv.Itoa(n)+" argument(s), got "+strconv.Itoa(len(args)))
	}
	return nil
}

func arg(args []value.Value, i int) value.Value {
	if i < 0 || i >= len(args) {
		return value.Nil
	}
	return args[i]
}

func requireString(name string, args []value.Value, i int) (string, error) {
	v := arg(args, i)
	s, ok := v.(value.Str)
	if !ok {
		return "", rillerr.TypeError(zeroSpan, name+" expects a string argument, got "+value.InferType(v))
	}
	return string(s), nil
}

func requireNumber(name string, args []value.Value, i int) (float64, error) {
	v := arg(args, i)
	n, ok := v.(value.Num)
	if !ok {
		return 0, rillerr.TypeError(zeroSpan, name+" expects a number argument, got "+value.InferType(v))
	}
	return float64(n), nil
}

func requireList(name string, v value.Value) (*value.List, error) {
	l, ok := v.(*value.List)
	if !ok {
		return nil, rillerr.TypeError(zeroSpan, name+" expects a list, got "+value.InferType(v))
	}
	return l, nil
}

func requireDict(name string, v value.Value) (*value.Dict, error) {
	d, ok := v.(*value.Dict)
	if !ok {
		return nil, rillerr.TypeError(zeroSpan, name+" expects a dict, got "+value.InferType(v))
	}
	return d, nil
}

func typeErrf(name string, v value.Value) error {
	return rillerr.TypeError(zeroSpan, name+" does not support "+value.InferType(v))
}

func requireVector(name string, v value.Value) (*value.Vector, error) {
	vec, ok := v.(*value.Vector)
	if !ok {
		return nil, rillerr.TypeError(zeroSpan, name+" expects a vector, got "+value.InferType(v))
	}
	return vec, nil
}
