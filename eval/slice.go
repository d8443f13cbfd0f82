package eval

import (
	"strings"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluateSliceTarget implements spec §4.5.7. Omitted bounds default to
// the natural start/end of the iteration direction (0/len for a
// positive step, len-1/-1 for a negative step) before the shared
// normalize-then-clamp rule applies to whichever bounds were given
// explicitly.
func evaluateSliceTarget(t *ast.SliceTarget, input value.Value, ctx *rtctx.Context) (value.Value, error) {
	step := 1
	if t.Step != nil {
		n, err := evalToNumber(t.Step, ctx)
		if err != nil {
			return nil, err
		}
		step = int(n)
		if step == 0 {
			return nil, rillerr.TypeError(t.Position(), "slice step must not be 0")
		}
	}

	var list *value.List
	var runes []rune
	isString := false
	switch x := input.(type) {
	case *value.List:
		list = x
	case value.Str:
		runes = []rune(string(x))
		isString = true
	default:
		return nil, rillerr.TypeError(t.Position(), "slice requires a list or string, got "+value.InferType(input))
	}

	length := len(runes)
	if !isString {
		length = len(list.Elements)
	}

	start, stop, err := sliceBounds(t, step, length, ctx)
	if err != nil {
		return nil, err
	}

	var indices []int
	if step > 0 {
		for i := start; i < stop; i += step {
			indices = append(indices, i)
		}
	} else {
		for i := start; i > stop; i += step {
			indices = append(indices, i)
		}
	}

	if isString {
		var b strings.Builder
		for _, i := range indices {
			if i >= 0 && i < len(runes) {
				b.WriteRune(runes[i])
			}
		}
		return value.Str(b.String()), nil
	}

	out := make([]value.Value, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(list.Elements) {
			out = append(out, list.Elements[i])
		}
	}
	return value.NewList(out...), nil
}

func sliceBounds(t *ast.SliceTarget, step, length int, ctx *rtctx.Context) (int, int, error) {
	normalize := func(expr ast.Expression, def int) (int, error) {
		if expr == nil {
			return def, nil
		}
		v, err := evalToNumber(expr, ctx)
		if err != nil {
			return 0, err
		}
		n := int(v)
		if n < 0 {
			n += length
		}
		return n, nil
	}

	defStart, defStop := 0, length
	if step < 0 {
		defStart, defStop = length-1, -1
	}

	start, err := normalize(t.Start, defStart)
	if err != nil {
		return 0, 0, err
	}
	stop, err := normalize(t.Stop, defStop)
	if err != nil {
		return 0, 0, err
	}

	if step > 0 {
		start = clamp(start, 0, length)
		stop = clamp(stop, 0, length)
	} else {
		start = clamp(start, -1, length-1)
		stop = clamp(stop, -1, length-1)
	}
	return start, stop, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
