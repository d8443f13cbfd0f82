package eval

import "github.com/opal-lang/rill/value"

// breakSignal and returnSignal are thrown via panic and caught only at
// their designated boundaries — the innermost loop for break, the
// innermost block-expression for return (spec §4.6.2, §9, §7). They are
// never promoted to user-visible errors.
type breakSignal struct{ value value.Value }

type returnSignal struct{ value value.Value }

// catchBreak runs fn, converting a breakSignal panic into (value, true).
// Any other panic (including returnSignal) propagates.
func catchBreak(fn func() (value.Value, error)) (result value.Value, broke bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if bs, ok := r.(breakSignal); ok {
				result, broke = bs.value, true
				return
			}
			panic(r)
		}
	}()
	result, err = fn()
	return
}

// catchReturn runs fn, converting a returnSignal panic into (value, true).
// BreakSignal and anything else propagates past a block-expression
// boundary untouched.
func catchReturn(fn func() (value.Value, error)) (result value.Value, returned bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rs, ok := r.(returnSignal); ok {
				result, returned = rs.value, true
				return
			}
			panic(r)
		}
	}()
	result, err = fn()
	return
}
