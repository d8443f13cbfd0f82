package value

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// formatJSON renders plain data as canonical JSON (encoding/json already
// sorts map[string]any keys, giving the stable ordering formatValue
// needs for dicts).
func formatJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// InferType is a total function from value to type name (spec §4.2,
// §3.1). It returns Kind as a plain string; "closure" is reported for
// every callable variant.
func InferType(v Value) string {
	if v == nil {
		return string(KindNull)
	}
	return string(v.Kind())
}

// IsTruthy implements spec §4.2: false, null, 0, "", [], {}, and a
// tuple with no entries are falsy; everything else (including every
// callable) is truthy.
func IsTruthy(v Value) bool {
	switch x := v.(type) {
	case nil, Null:
		return false
	case Bool:
		return bool(x)
	case Num:
		return float64(x) != 0
	case Str:
		return x != ""
	case *List:
		return len(x.Elements) != 0
	case *Dict:
		return x.Len() != 0
	case *Tuple:
		return !x.Empty()
	default:
		return true
	}
}

// FormatValue renders v for string interpolation, diagnostics, and the
// lexicographic comparison fallback (spec §4.2, §4.8, §4.10).
func FormatValue(v Value) string {
	switch x := v.(type) {
	case nil, Null:
		return ""
	case Str:
		return string(x)
	case Num:
		return formatNumber(float64(x))
	case Bool:
		if bool(x) {
			return "true"
		}
		return "false"
	case *List:
		return formatJSON(toPlain(x))
	case *Dict:
		return formatJSON(toPlain(x))
	case *Tuple:
		return formatTuple(x)
	case *Vector:
		return formatVector(x)
	case *Callable:
		return formatCallable(x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatTuple(t *Tuple) string {
	var b strings.Builder
	b.WriteString("*[")
	if t.IsNamed() {
		for i, k := range t.NamedKeys() {
			if i > 0 {
				b.WriteString(", ")
			}
			v, _ := t.NamedValue(k)
			fmt.Fprintf(&b, "%s: %s", k, FormatValue(v))
		}
	} else {
		for i, v := range t.Positional() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValue(v))
		}
	}
	b.WriteString("]")
	return b.String()
}

func formatVector(v *Vector) string {
	parts := make([]string, len(v.Data))
	for i, x := range v.Data {
		parts[i] = formatNumber(x)
	}
	return fmt.Sprintf("vector<%s>[%s]", v.Model, strings.Join(parts, ", "))
}

func formatCallable(c *Callable) string {
	names := make([]string, len(c.Params))
	for i, p := range c.Params {
		names[i] = p.Name
	}
	return fmt.Sprintf("(%s) { ... }", strings.Join(names, ", "))
}

// toPlain converts a Value tree into plain Go data for canonical JSON
// rendering. Callables become a placeholder string since JSON cannot
// represent them.
func toPlain(v Value) any {
	switch x := v.(type) {
	case nil, Null:
		return nil
	case Str:
		return string(x)
	case Num:
		return float64(x)
	case Bool:
		return bool(x)
	case *List:
		out := make([]any, len(x.Elements))
		for i, e := range x.Elements {
			out[i] = toPlain(e)
		}
		return out
	case *Dict:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			ev, _ := x.Get(k)
			out[k] = toPlain(ev)
		}
		return out
	case *Tuple:
		return formatTuple(x)
	case *Vector:
		return formatVector(x)
	case *Callable:
		return formatCallable(x)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// DeepEqual implements spec §4.2: structural recursion on lists and
// dicts (order-independent for dicts, by key set then per-key value),
// entry-set comparison for tuples, and the callable-equality rule for
// closures.
func DeepEqual(a, b Value) bool {
	if a == nil {
		a = Nil
	}
	if b == nil {
		b = Nil
	}
	switch x := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Str:
		y, ok := b.(Str)
		return ok && x == y
	case Num:
		y, ok := b.(Num)
		return ok && x == y
	case Bool:
		y, ok := b.(Bool)
		return ok && x == y
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !DeepEqual(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case *Dict:
		y, ok := b.(*Dict)
		if !ok || x.Len() != y.Len() {
			return false
		}
		for _, k := range x.Keys() {
			xv, _ := x.Get(k)
			yv, ok := y.Get(k)
			if !ok || !DeepEqual(xv, yv) {
				return false
			}
		}
		return true
	case *Tuple:
		y, ok := b.(*Tuple)
		if !ok || x.IsNamed() != y.IsNamed() || x.Len() != y.Len() {
			return false
		}
		if x.IsNamed() {
			for _, k := range x.NamedKeys() {
				xv, _ := x.NamedValue(k)
				yv, ok := y.NamedValue(k)
				if !ok || !DeepEqual(xv, yv) {
					return false
				}
			}
			return true
		}
		for i, xv := range x.Positional() {
			if !DeepEqual(xv, y.Positional()[i]) {
				return false
			}
		}
		return true
	case *Vector:
		y, ok := b.(*Vector)
		if !ok || x.Model != y.Model || len(x.Data) != len(y.Data) {
			return false
		}
		for i := range x.Data {
			if x.Data[i] != y.Data[i] {
				return false
			}
		}
		return true
	case *Callable:
		y, ok := b.(*Callable)
		return ok && x.Equal(y)
	default:
		return false
	}
}
