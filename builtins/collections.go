package builtins

import (
	"strings"

	"github.com/opal-lang/rill/value"
)

// addCollectionMethods registers the list/dict methods whose names
// value/dict.go's reservedKeys deliberately forbids as literal dict
// entries ("keys"/"values"/"entries" would shadow these), plus the
// generic length/contains/push/reverse methods every collection wants.
// Receivers arrive as args[0] (spec §4.9.3: the receiver is prepended as
// the first positional argument by eval/calls.go's dispatchMethod).
func addCollectionMethods(out map[string]*value.Callable) {
	out["length"] = hostFunc("length", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("length", args, 1); err != nil {
			return nil, err
		}
		switch x := args[0].(type) {
		case *value.List:
			return value.Num(len(x.Elements)), nil
		case *value.Dict:
			return value.Num(x.Len()), nil
		case value.Str:
			return value.Num(len([]rune(string(x)))), nil
		case *value.Tuple:
			return value.Num(x.Len()), nil
		default:
			return nil, typeErrf("length", x)
		}
	})

	out["keys"] = hostFunc("keys", func(ctx any, args []value.Value) (value.Value, error) {
		d, err := requireDict("keys", arg(args, 0))
		if err != nil {
			return nil, err
		}
		ks := d.SortedKeys()
		elems := make([]value.Value, len(ks))
		for i, k := range ks {
			elems[i] = value.Str(k)
		}
		return value.NewList(elems...), nil
	})

	out["values"] = hostFunc("values", func(ctx any, args []value.Value) (value.Value, error) {
		d, err := requireDict("values", arg(args, 0))
		if err != nil {
			return nil, err
		}
		ks := d.SortedKeys()
		elems := make([]value.Value, len(ks))
		for i, k := range ks {
			v, _ := d.Get(k)
			elems[i] = v
		}
		return value.NewList(elems...), nil
	})

	out["entries"] = hostFunc("entries", func(ctx any, args []value.Value) (value.Value, error) {
		d, err := requireDict("entries", arg(args, 0))
		if err != nil {
			return nil, err
		}
		ks := d.SortedKeys()
		elems := make([]value.Value, len(ks))
		for i, k := range ks {
			v, _ := d.Get(k)
			pair := value.NewDict()
			pair.Set("key", value.Str(k))
			pair.Set("value", v)
			elems[i] = pair
		}
		return value.NewList(elems...), nil
	})

	out["contains"] = hostFunc("contains", func(ctx any, args []value.Value) (value.Value, error) {
		if err := requireArgs("contains", args, 2); err != nil {
			return nil, err
		}
		needle := args[1]
		switch x := args[0].(type) {
		case *value.List:
			for _, e := range x.Elements {
				if value.DeepEqual(e, needle) {
					return value.Bool(true), nil
				}
			}
			return value.Bool(false), nil
		case *value.Dict:
			key, ok := needle.(value.Str)
			if !ok {
				return value.Bool(false), nil
			}
			_, present := x.Get(string(key))
			return value.Bool(present), nil
		case value.Str:
			sub, ok := needle.(value.Str)
			if !ok {
				return nil, typeErrf("contains", needle)
			}
			return value.Bool(strings.Contains(string(x), string(sub))), nil
		default:
			return nil, typeErrf("contains", x)
		}
	})

	out["push"] = hostFunc("push", func(ctx any, args []value.Value) (value.Value, error) {
		l, err := requireList("push", arg(args, 0))
		if err != nil {
			return nil, err
		}
		if err := requireArgs("push", args, 2); err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(l.Elements)+1)
		copy(elems, l.Elements)
		elems[len(l.Elements)] = args[1]
		return value.NewList(elems...), nil
	})

	out["reverse"] = hostFunc("reverse", func(ctx any, args []value.Value) (value.Value, error) {
		l, err := requireList("reverse", arg(args, 0))
		if err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(l.Elements))
		for i, e := range l.Elements {
			elems[len(elems)-1-i] = e
		}
		return value.NewList(elems...), nil
	})
}
