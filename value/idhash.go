// value/idhash.go implements a content-hash fast path for script
// callable structural equality (spec §3.2): hash the param list and the
// AST-structural body before falling back to the full recursive
// comparison in Callable.Equal. Grounded on the lineage's
// core/planfmt/idfactory.go, which derives a stable digest via HKDF over
// SHA3 rather than a raw hash, so two callables that happen to share a
// body hash cannot be conflated by a host that persists the digest
// across callables with different purposes.
package value

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sort"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/opal-lang/rill/ast"
)

var fingerprintInfo = []byte("rill/value/callable-fingerprint/v1")

var astSpanType = reflect.TypeOf(ast.Span{})

// Fingerprint returns a derived digest of a script callable's params and
// body, ignoring source location, suitable as an equality fast path: if
// two callables' fingerprints differ they are never equal; if they
// match, Callable.Equal must still confirm (defining-scope identity is
// not part of the digest).
func (c *Callable) Fingerprint() ([]byte, error) {
	if c.CallKind != ScriptCallable {
		return nil, fmt.Errorf("fingerprint is only defined for script callables")
	}

	digest := sha3.New256()
	for _, p := range c.Params {
		digest.Write([]byte(p.Name))
		digest.Write([]byte(p.Type))
		if p.HasDefault {
			digest.Write([]byte(FormatValue(p.Default)))
		}
	}
	writeFingerprint(digest, reflect.ValueOf(c.Body))
	sum := digest.Sum(nil)

	kdf := hkdf.New(sha3.New256, sum, nil, fingerprintInfo)
	out := make([]byte, 32)
	if _, err := kdf.Read(out); err != nil {
		return nil, err
	}
	return out, nil
}

func writeFingerprint(h interface{ Write([]byte) (int, error) }, v reflect.Value) {
	if !v.IsValid() {
		h.Write([]byte{0})
		return
	}
	if v.Type() == astSpanType {
		return // location-independent, per spec §3.2
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			h.Write([]byte{0})
			return
		}
		writeFingerprint(h, v.Elem())
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if !f.CanInterface() {
				continue
			}
			writeFingerprint(h, f)
		}
	case reflect.Slice, reflect.Array:
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(v.Len()))
		h.Write(n[:])
		for i := 0; i < v.Len(); i++ {
			writeFingerprint(h, v.Index(i))
		}
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprintf("%v", keys[i].Interface()) < fmt.Sprintf("%v", keys[j].Interface())
		})
		for _, k := range keys {
			writeFingerprint(h, k)
			writeFingerprint(h, v.MapIndex(k))
		}
	case reflect.String:
		h.Write([]byte(v.String()))
	case reflect.Bool:
		if v.Bool() {
			h.Write([]byte{1})
		} else {
			h.Write([]byte{0})
		}
	case reflect.Float32, reflect.Float64:
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(v.Float()))
		h.Write(n[:])
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n [8]byte
		binary.LittleEndian.PutUint64(n[:], uint64(v.Int()))
		h.Write(n[:])
	default:
		h.Write([]byte(fmt.Sprintf("%v", v.Interface())))
	}
}
