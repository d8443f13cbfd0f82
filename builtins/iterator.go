package builtins

import "github.com/opal-lang/rill/value"

// addIteratorFunctions registers "iterate", constructing the iterator
// protocol spec §9 describes: "iterators are plain dicts ... expose the
// three fields (value, done, next)". Each call to iterate() builds a
// fresh dict whose next is a runtime callable closing over a private
// cursor, so advancing one iterator never disturbs another built from
// the same list.
func addIteratorFunctions(out map[string]*value.Callable) {
	out["iterate"] = hostFunc("iterate", func(ctx any, args []value.Value) (value.Value, error) {
		l, err := requireList("iterate", arg(args, 0))
		if err != nil {
			return nil, err
		}
		return newListIterator(l.Elements), nil
	})
}

func newListIterator(elems []value.Value) *value.Dict {
	pos := 0

	var step func() (value.Value, error)
	build := func() *value.Dict {
		d := value.NewDict()
		if pos < len(elems) {
			d.Set("value", elems[pos])
			d.Set("done", value.Bool(false))
		} else {
			d.Set("value", value.Nil)
			d.Set("done", value.Bool(true))
		}
		d.Set("next", hostFunc("next", func(ctx any, args []value.Value) (value.Value, error) {
			return step()
		}))
		return value.FinalizeDict(d)
	}

	step = func() (value.Value, error) {
		if pos < len(elems) {
			pos++
		}
		return build(), nil
	}

	return build()
}
