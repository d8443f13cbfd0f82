package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluateVariable implements spec §4.7: resolve the base ($  or $name),
// walk the access chain, and fall back to the whole-chain default if the
// final value is null.
func evaluateVariable(n *ast.Variable, ctx *rtctx.Context) (value.Value, error) {
	base, err := resolveBase(n.Name, ctx, n.Position())
	if err != nil {
		return nil, err
	}
	v, err := applyChain(base, n.Chain, ctx)
	if err != nil {
		return nil, err
	}
	if isNull(v) && n.Default != nil {
		return Evaluate(n.Default, ctx)
	}
	return v, nil
}

func resolveBase(name string, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	if name == "" {
		return ctx.PipeValue(), nil
	}
	v, ok := ctx.Lookup(name)
	if !ok {
		return nil, suggestUndefinedVariable(ctx, name, span)
	}
	return v, nil
}

func isNull(v value.Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(value.Null)
	return ok
}

func applyChain(current value.Value, chain []ast.AccessLink, ctx *rtctx.Context) (value.Value, error) {
	for _, link := range chain {
		v, err := applyLink(current, link, ctx)
		if err != nil {
			return nil, err
		}
		current = v
	}
	return current, nil
}

// linkDefault extracts the per-link fallback default declared at this
// access link (spec §4.7: "a default if one is declared").
func linkDefault(link ast.AccessLink) ast.Expression {
	switch l := link.(type) {
	case *ast.FieldAccess:
		return l.Default
	case *ast.VarKeyAccess:
		return l.Default
	case *ast.ComputedKeyAccess:
		return l.Default
	case *ast.IndexAccess:
		return l.Default
	case *ast.AltAccess:
		return l.Default
	case *ast.AnnotationAccess:
		return l.Default
	default:
		return nil
	}
}

// applyLink implements spec §4.7's per-link-kind rules. A failure (null
// input, wrong receiver type, missing key, out-of-range index) falls
// back to the link's own declared default when present, otherwise
// errors.
func applyLink(current value.Value, link ast.AccessLink, ctx *rtctx.Context) (value.Value, error) {
	def := linkDefault(link)
	fail := func(err error) (value.Value, error) {
		if def != nil {
			return Evaluate(def, ctx)
		}
		return nil, err
	}

	if isNull(current) {
		return fail(rillerr.TypeError(link.Position(), "cannot access a field on null"))
	}

	switch l := link.(type) {
	case *ast.FieldAccess:
		d, ok := current.(*value.Dict)
		if !ok {
			return fail(rillerr.TypeError(link.Position(), "cannot access field ."+l.Name+" on a "+value.InferType(current)))
		}
		v, present := d.Get(l.Name)
		if !present {
			return fail(rillerr.PropertyNotFound(link.Position(), l.Name))
		}
		return autoInvokeProperty(v, ctx, link.Position())

	case *ast.VarKeyAccess:
		keyVal, err := resolveBase(l.KeyVar, ctx, link.Position())
		if err != nil {
			return nil, err
		}
		return dictFieldByKey(current, keyVal, ctx, link.Position(), fail)

	case *ast.ComputedKeyAccess:
		keyVal, err := Evaluate(l.Key, ctx)
		if err != nil {
			return nil, err
		}
		return dictFieldByKey(current, keyVal, ctx, link.Position(), fail)

	case *ast.IndexAccess:
		idxVal, err := Evaluate(l.Index, ctx)
		if err != nil {
			return nil, err
		}
		switch x := current.(type) {
		case *value.List:
			num, ok := idxVal.(value.Num)
			if !ok {
				return fail(rillerr.TypeError(link.Position(), "index must be a number"))
			}
			idx := int(num)
			if idx < 0 {
				idx += len(x.Elements)
			}
			if idx < 0 || idx >= len(x.Elements) {
				return fail(rillerr.TypeError(link.Position(), "index out of range"))
			}
			return x.Elements[idx], nil
		default:
			return dictFieldByKey(current, idxVal, ctx, link.Position(), fail)
		}

	case *ast.AltAccess:
		d, ok := current.(*value.Dict)
		if !ok {
			return fail(rillerr.TypeError(link.Position(), "cannot access alternatives on a "+value.InferType(current)))
		}
		for _, name := range l.Names {
			if v, present := d.Get(name); present && !isNull(v) {
				return autoInvokeProperty(v, ctx, link.Position())
			}
		}
		// spec §4.7: "all-missing yields null" — no default consulted.
		return value.Nil, nil

	case *ast.AnnotationAccess:
		c, ok := current.(*value.Callable)
		if !ok {
			return fail(rillerr.TypeError(link.Position(), "cannot reflect an annotation on a "+value.InferType(current)))
		}
		v, present := c.Annotations[l.Name]
		if !present {
			if def != nil {
				return Evaluate(def, ctx)
			}
			return nil, rillerr.UndefinedAnnotation(link.Position(), l.Name)
		}
		return v, nil

	default:
		return nil, rillerr.New(rillerr.CodeTypeError, link.Position(), "unsupported access link")
	}
}

func dictFieldByKey(current value.Value, keyVal value.Value, ctx *rtctx.Context, span ast.Span, fail func(error) (value.Value, error)) (value.Value, error) {
	d, ok := current.(*value.Dict)
	if !ok {
		return fail(rillerr.TypeError(span, "cannot access a field on a "+value.InferType(current)))
	}
	key, ok := keyVal.(value.Str)
	if !ok {
		return fail(rillerr.TypeError(span, "dict key must be a string, got "+value.InferType(keyVal)))
	}
	v, present := d.Get(string(key))
	if !present {
		return fail(rillerr.PropertyNotFound(span, string(key)))
	}
	return autoInvokeProperty(v, ctx, span)
}

// autoInvokeProperty implements spec §4.7's last sentence and §3.2's
// isProperty rule: a property callable reached through field access is
// invoked with its boundDict as the receiver; any other value (including
// a non-property callable) passes through unchanged.
func autoInvokeProperty(v value.Value, ctx *rtctx.Context, span ast.Span) (value.Value, error) {
	c, ok := v.(*value.Callable)
	if !ok || !c.IsProperty {
		return v, nil
	}
	return invokeCallable(c, nil, ctx, span, nil)
}

// evaluateExistence implements spec §4.7's ?. operator: presence and
// non-null-ness of the final chain value, optionally type-qualified.
// Any resolution failure along the way (undefined variable, missing
// key, wrong receiver type) is "not present", not an error.
func evaluateExistence(n *ast.ExistenceExpr, ctx *rtctx.Context) (value.Value, error) {
	base, err := resolveBase(n.Name, ctx, n.Position())
	if err != nil {
		if _, ok := err.(*rillerr.RuntimeError); ok {
			return value.Bool(false), nil
		}
		return nil, err
	}
	v, err := applyChain(base, n.Chain, ctx)
	if err != nil {
		if _, ok := err.(*rillerr.RuntimeError); ok {
			return value.Bool(false), nil
		}
		return nil, err
	}
	if isNull(v) {
		return value.Bool(false), nil
	}
	if n.TypeQualifier != "" && value.InferType(v) != n.TypeQualifier {
		return value.Bool(false), nil
	}
	return value.Bool(true), nil
}
