// value/json.go backs the builtin json()/parse_json() functions and the
// round-trip law of spec §8 ("json ∘ parse-json is identity ... modulo
// closure exclusion"). Grounded on the same toPlain conversion
// FormatValue already uses for dict/list interpolation (helpers.go),
// plus a symmetric decode path.
package value

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ToJSON renders v as a JSON document. A closure passed as v itself has
// no JSON representation and is rejected; a closure nested inside a
// list or dict is rendered as the placeholder string FormatValue gives
// it.
func ToJSON(v Value) (string, error) {
	if _, ok := v.(*Callable); ok {
		return "", fmt.Errorf("closures are not serializable")
	}
	b, err := json.Marshal(toPlain(v))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FromJSON parses a JSON document into the corresponding Value tree:
// objects become Dict, arrays become List, and JSON's single number type
// becomes Num.
func FromJSON(s string) (Value, error) {
	var decoded any
	if err := json.Unmarshal([]byte(s), &decoded); err != nil {
		return nil, err
	}
	return FromPlain(decoded), nil
}

// FromPlain converts a plain Go value decoded by encoding/json or
// gopkg.in/yaml.v3 (json.Unmarshal/yaml.Unmarshal into an `any`) into the
// corresponding Value tree. Shared by FromJSON and the frontmatter
// package's YAML `variables` block, since both decoders produce the same
// shape for strings/bools/nil/slices/maps and differ only in how they
// represent numbers (float64 for JSON; int, int64, or float64 for YAML).
func FromPlain(p any) Value {
	switch x := p.(type) {
	case nil:
		return Nil
	case string:
		return Str(x)
	case float64:
		return Num(x)
	case int:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case bool:
		return Bool(x)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = FromPlain(e)
		}
		return NewList(elems...)
	case map[string]any:
		d := NewDict()
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return CompareStrings(keys[i], keys[j]) < 0 })
		for _, k := range keys {
			d.Set(k, FromPlain(x[k]))
		}
		return d
	default:
		return Nil
	}
}
