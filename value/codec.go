// value/codec.go implements canonical snapshot encoding for hosts that
// ship an execute() variables result across a process boundary (e.g. a
// web-fiddle backend). Grounded on the lineage's
// canonicalize-then-hash two-pass approach (core/planfmt/canonical.go):
// build a canonical, closure-free form first, then encode it with CBOR's
// canonical (sorted-map-key) options so the same variables always
// produce the same bytes and the same hash.
package value

import (
	"crypto/sha256"
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var canonicalEncMode = func() cbor.EncMode {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		panic(err) // fixed, valid options; cannot fail at init time
	}
	return mode
}()

// canonicalDecMode decodes nested CBOR maps as map[string]any instead of
// the default map[interface{}]interface{}, so DecodeSnapshot can type-assert
// through the snapshotTuple/snapshotVector markers uniformly.
var canonicalDecMode = func() cbor.DecMode {
	opts := cbor.DecOptions{DefaultMapType: reflect.TypeOf(map[string]any{})}
	mode, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// snapshotTuple and snapshotVector are the CBOR-visible shapes for the
// two value kinds a plain map/slice/scalar can't represent directly.
type snapshotTuple struct {
	Tuple   bool           `cbor:"__tuple"`
	Named   bool           `cbor:"named"`
	Keys    []string       `cbor:"keys,omitempty"`
	Entries map[string]any `cbor:"entries,omitempty"`
	Values  []any          `cbor:"values,omitempty"`
}

type snapshotVector struct {
	Vector bool      `cbor:"__vector"`
	Model  string    `cbor:"model"`
	Data   []float64 `cbor:"data"`
}

// EncodeSnapshot renders a variables map to canonical CBOR bytes.
// Closures are rejected: the round-trip law of spec §8 is scoped
// "modulo closure exclusion".
func EncodeSnapshot(vars map[string]Value) ([]byte, error) {
	plain := make(map[string]any, len(vars))
	for name, v := range vars {
		p, err := toSnapshotValue(v)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		plain[name] = p
	}
	return canonicalEncMode.Marshal(plain)
}

// DecodeSnapshot reconstructs a variables map from bytes produced by
// EncodeSnapshot.
func DecodeSnapshot(data []byte) (map[string]Value, error) {
	var plain map[string]any
	if err := canonicalDecMode.Unmarshal(data, &plain); err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(plain))
	for name, p := range plain {
		out[name] = fromSnapshotValue(p)
	}
	return out, nil
}

// SnapshotDigest returns the sha256 digest of a snapshot's canonical
// encoding, suitable as a stable cache or dedup key.
func SnapshotDigest(vars map[string]Value) ([32]byte, error) {
	b, err := EncodeSnapshot(vars)
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(b), nil
}

func toSnapshotValue(v Value) (any, error) {
	switch x := v.(type) {
	case nil, Null:
		return nil, nil
	case Str:
		return string(x), nil
	case Num:
		return float64(x), nil
	case Bool:
		return bool(x), nil
	case *List:
		out := make([]any, len(x.Elements))
		for i, e := range x.Elements {
			p, err := toSnapshotValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case *Dict:
		out := make(map[string]any, x.Len())
		for _, k := range x.Keys() {
			ev, _ := x.Get(k)
			p, err := toSnapshotValue(ev)
			if err != nil {
				return nil, err
			}
			out[k] = p
		}
		return out, nil
	case *Tuple:
		if x.IsNamed() {
			entries := make(map[string]any, len(x.NamedKeys()))
			for _, k := range x.NamedKeys() {
				ev, _ := x.NamedValue(k)
				p, err := toSnapshotValue(ev)
				if err != nil {
					return nil, err
				}
				entries[k] = p
			}
			return snapshotTuple{Tuple: true, Named: true, Keys: x.NamedKeys(), Entries: entries}, nil
		}
		values := make([]any, len(x.Positional()))
		for i, ev := range x.Positional() {
			p, err := toSnapshotValue(ev)
			if err != nil {
				return nil, err
			}
			values[i] = p
		}
		return snapshotTuple{Tuple: true, Values: values}, nil
	case *Vector:
		return snapshotVector{Vector: true, Model: x.Model, Data: x.Data}, nil
	case *Callable:
		return nil, fmt.Errorf("closures are not serializable")
	default:
		return nil, fmt.Errorf("unrecognized value kind %T", v)
	}
}

func fromSnapshotValue(p any) Value {
	switch x := p.(type) {
	case nil:
		return Nil
	case string:
		return Str(x)
	case float64:
		return Num(x)
	case bool:
		return Bool(x)
	case []any:
		elems := make([]Value, len(x))
		for i, e := range x {
			elems[i] = fromSnapshotValue(e)
		}
		return NewList(elems...)
	case map[string]any:
		if isTrue(x["__tuple"]) {
			return fromSnapshotTuple(x)
		}
		if isTrue(x["__vector"]) {
			return fromSnapshotVector(x)
		}
		d := NewDict()
		for k, v := range x {
			d.Set(k, fromSnapshotValue(v))
		}
		return d
	default:
		return Nil
	}
}

func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

func fromSnapshotTuple(x map[string]any) Value {
	if isTrue(x["named"]) {
		entries, _ := x["entries"].(map[string]any)
		keysAny, _ := x["keys"].([]any)
		keys := make([]string, len(keysAny))
		named := make(map[string]Value, len(entries))
		for i, k := range keysAny {
			ks, _ := k.(string)
			keys[i] = ks
		}
		for k, v := range entries {
			named[k] = fromSnapshotValue(v)
		}
		return NewNamedTuple(keys, named)
	}
	valuesAny, _ := x["values"].([]any)
	values := make([]Value, len(valuesAny))
	for i, v := range valuesAny {
		values[i] = fromSnapshotValue(v)
	}
	return NewPositionalTuple(values)
}

func fromSnapshotVector(x map[string]any) Value {
	model, _ := x["model"].(string)
	dataAny, _ := x["data"].([]any)
	data := make([]float64, len(dataAny))
	for i, d := range dataAny {
		f, _ := d.(float64)
		data[i] = f
	}
	return NewVector(model, data)
}
