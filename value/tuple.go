package value

// Tuple is the opaque "unpacked arguments" value produced by the spread
// operator and consumed by callable invocation (spec §3.1). It is either
// positional or named, never both.
type Tuple struct {
	positional []Value
	namedKeys  []string
	named      map[string]Value
	isNamed    bool
}

func (*Tuple) Kind() Kind { return KindTuple }

// NewPositionalTuple builds a positional tuple from ordered values.
func NewPositionalTuple(values []Value) *Tuple {
	return &Tuple{positional: values}
}

// NewNamedTuple builds a named tuple. keys gives the insertion order;
// values must contain an entry for every key.
func NewNamedTuple(keys []string, values map[string]Value) *Tuple {
	return &Tuple{isNamed: true, namedKeys: keys, named: values}
}

// IsNamed reports whether this tuple binds by name rather than position.
func (t *Tuple) IsNamed() bool { return t.isNamed }

// Positional returns the positional entries (nil for a named tuple).
func (t *Tuple) Positional() []Value { return t.positional }

// NamedKeys returns the named entries' keys in insertion order (nil for
// a positional tuple).
func (t *Tuple) NamedKeys() []string { return t.namedKeys }

// NamedValue looks up a named entry.
func (t *Tuple) NamedValue(key string) (Value, bool) {
	v, ok := t.named[key]
	return v, ok
}

// Len returns the number of entries regardless of mode.
func (t *Tuple) Len() int {
	if t.isNamed {
		return len(t.namedKeys)
	}
	return len(t.positional)
}

// Empty reports whether the tuple carries no entries — the falsy case
// named in spec §4.2 ("tuple-with-no-entries").
func (t *Tuple) Empty() bool { return t.Len() == 0 }
