package builtins

import (
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// addGenerateFunctions registers "range" and "repeat", the two list
// constructors the enumerate/spread machinery (eval/enumerate.go,
// eval/spread.go) needs something to iterate over in the first place.
func addGenerateFunctions(out map[string]*value.Callable) {
	out["range"] = hostFunc("range", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("range", args, 1); err != nil {
			return nil, err
		}
		first, err := requireNumber("range", args, 0)
		if err != nil {
			return nil, err
		}
		start, stop, step := 0.0, first, 1.0
		if len(args) >= 2 {
			start = first
			if stop, err = requireNumber("range", args, 1); err != nil {
				return nil, err
			}
		}
		if len(args) >= 3 {
			if step, err = requireNumber("range", args, 2); err != nil {
				return nil, err
			}
		}
		return rangeList(start, stop, step)
	})

	out["repeat"] = hostFunc("repeat", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("repeat", args, 2); err != nil {
			return nil, err
		}
		times, err := requireNumber("repeat", args, 1)
		if err != nil {
			return nil, err
		}
		n := max(int(times), 0)
		elems := make([]value.Value, 0, n)
		for i := 0; i < n; i++ {
			elems = append(elems, args[0])
		}
		return value.NewList(elems...), nil
	})
}

func rangeList(start, stop, step float64) (value.Value, error) {
	if step == 0 {
		return nil, rillerr.TypeError(zeroSpan, "range step must not be zero")
	}
	var elems []value.Value
	if step > 0 {
		for x := start; x < stop; x += step {
			elems = append(elems, value.Num(x))
		}
	} else {
		for x := start; x > stop; x += step {
			elems = append(elems, value.Num(x))
		}
	}
	return value.NewList(elems...), nil
}
