package value

import (
	"bytes"

	"github.com/opal-lang/rill/ast"
)

// Equal implements the callable-equality rule of spec §3.2: script
// callables compare structurally (same params, AST-structural body,
// same defining scope by reference, same annotations); runtime and
// application callables compare by reference (identity of the Go value
// each variable holds).
func (c *Callable) Equal(other *Callable) bool {
	if c == other {
		return true
	}
	if other == nil || c.CallKind != other.CallKind {
		return false
	}
	if c.CallKind != ScriptCallable {
		return false // reference equality already handled by the c == other check
	}

	// Fingerprint is a fast-path short-circuit: a digest mismatch proves
	// inequality without walking params/body/annotations. A match proves
	// nothing on its own (DefiningScope isn't part of the digest), so the
	// full comparison below still runs.
	if cfp, err := c.Fingerprint(); err == nil {
		if ofp, err := other.Fingerprint(); err == nil && !bytes.Equal(cfp, ofp) {
			return false
		}
	}

	if len(c.Params) != len(other.Params) {
		return false
	}
	for i := range c.Params {
		a, b := c.Params[i], other.Params[i]
		if a.Name != b.Name || a.Type != b.Type || a.HasDefault != b.HasDefault {
			return false
		}
		if a.HasDefault && !DeepEqual(a.Default, b.Default) {
			return false
		}
	}
	if c.DefiningScope != other.DefiningScope {
		return false
	}
	if !equalAnnotations(c.Annotations, other.Annotations) {
		return false
	}
	if c.Body == nil || other.Body == nil {
		return c.Body == nil && other.Body == nil
	}
	return ast.StructurallyEqual(c.Body, other.Body)
}

func equalAnnotations(a, b map[string]Value) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !DeepEqual(v, bv) {
			return false
		}
	}
	return true
}
