package value

import "sort"

// Dict is a mapping from string key to value. Iteration order is
// insertion order; Keys() preserves that, SortedKeys() returns the
// key-ascending order enumerate() and the keys/values/entries methods
// rely on (spec §3.1, §4.5.8).
type Dict struct {
	order   []string
	entries map[string]Value
}

func (*Dict) Kind() Kind { return KindDict }

// NewDict builds an empty dict ready for Set calls in source order.
func NewDict() *Dict {
	return &Dict{entries: make(map[string]Value)}
}

// Set inserts or overwrites key, preserving its original insertion
// position on overwrite.
func (d *Dict) Set(key string, v Value) {
	if _, ok := d.entries[key]; !ok {
		d.order = append(d.order, key)
	}
	d.entries[key] = v
}

// Get returns the value at key and whether it is present.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.entries[key]
	return v, ok
}

// Delete removes key if present.
func (d *Dict) Delete(key string) {
	if _, ok := d.entries[key]; !ok {
		return
	}
	delete(d.entries, key)
	for i, k := range d.order {
		if k == key {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.order) }

// Keys returns keys in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// SortedKeys returns keys in collation order (CompareStrings), the
// order enumerate() and the keys/values/entries methods use.
func (d *Dict) SortedKeys() []string {
	out := d.Keys()
	sort.Slice(out, func(i, j int) bool { return CompareStrings(out[i], out[j]) < 0 })
	return out
}

// Clone makes a shallow copy: the same values, a fresh order/map.
func (d *Dict) Clone() *Dict {
	nd := &Dict{
		order:   make([]string, len(d.order)),
		entries: make(map[string]Value, len(d.entries)),
	}
	copy(nd.order, d.order)
	for k, v := range d.entries {
		nd.entries[k] = v
	}
	return nd
}

// reservedKeys are forbidden as dict literal keys (spec §4.5.3, §4.6.3):
// they would shadow the built-in .keys/.values/.entries methods.
var reservedKeys = map[string]bool{
	"keys":    true,
	"values":  true,
	"entries": true,
}

// IsReservedKey reports whether name cannot be used as a dict key.
func IsReservedKey(name string) bool { return reservedKeys[name] }
