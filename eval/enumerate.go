package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/value"
)

// evaluateEnumerate implements spec §4.5.8: lists become
// [{index, value}, ...]; dicts become [{index, key, value}, ...] with
// keys sorted ascending, the deterministic order spec §8 invariant 8
// requires.
func evaluateEnumerate(input value.Value, span ast.Span) (value.Value, error) {
	switch x := input.(type) {
	case *value.List:
		out := make([]value.Value, len(x.Elements))
		for i, v := range x.Elements {
			d := value.NewDict()
			d.Set("index", value.Num(i))
			d.Set("value", v)
			out[i] = d
		}
		return value.NewList(out...), nil
	case *value.Dict:
		keys := x.SortedKeys()
		out := make([]value.Value, len(keys))
		for i, k := range keys {
			v, _ := x.Get(k)
			d := value.NewDict()
			d.Set("index", value.Num(i))
			d.Set("key", value.Str(k))
			d.Set("value", v)
			out[i] = d
		}
		return value.NewList(out...), nil
	default:
		return nil, rillerr.TypeError(span, "enumerate requires a list or dict, got "+value.InferType(input))
	}
}
