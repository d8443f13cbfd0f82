package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

func evaluateListLiteral(n *ast.ListLiteral, ctx *rtctx.Context) (value.Value, error) {
	elems := make([]value.Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := Evaluate(e, ctx)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.NewList(elems...), nil
}

// evaluateDictLiteral implements spec §4.6.3's construction rules: a
// reserved key name is rejected outright, a bare closure is created
// eagerly as usual, a bare block is wrapped as a zero-parameter
// block-closure, and any other entry expression is evaluated once. An
// entry naming more than one key (DictEntry.Keys) binds every candidate
// key to that single evaluated value. value.FinalizeDict back-binds
// boundDict on every property/block-closure the dict now holds, so
// §4.5.9 dispatch and §4.7 field-access auto-invocation both see a
// receiver.
func evaluateDictLiteral(n *ast.DictLiteral, ctx *rtctx.Context) (value.Value, error) {
	d := value.NewDict()
	for _, entry := range n.Entries {
		v, err := evaluateDictEntryValue(entry.Value, ctx)
		if err != nil {
			return nil, err
		}
		for _, keyExpr := range entry.Keys {
			kv, err := Evaluate(keyExpr, ctx)
			if err != nil {
				return nil, err
			}
			key := value.FormatValue(kv)
			if value.IsReservedKey(key) {
				return nil, rillerr.TypeError(keyExpr.Position(), "dict key "+quoteName(key)+" is reserved")
			}
			d.Set(key, v)
		}
	}
	return value.FinalizeDict(d), nil
}

func evaluateDictEntryValue(expr ast.Expression, ctx *rtctx.Context) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.ClosureLiteral:
		return evaluateClosureLiteral(e, ctx)
	case *ast.Block:
		return makeBlockClosure(e, ctx), nil
	default:
		return Evaluate(expr, ctx)
	}
}

// makeBlockClosure wraps a bare block as a property callable (spec
// §4.6.3's "block-closure"). It declares no formal parameters: the body
// reaches its receiver through the bare pipe variable $, which
// invokeCallable seeds from boundDict the same way it does for any
// other property callable.
func makeBlockClosure(block *ast.Block, ctx *rtctx.Context) *value.Callable {
	return &value.Callable{
		CallKind:      value.ScriptCallable,
		Body:          block,
		DefiningScope: ctx,
		IsProperty:    true,
	}
}

// evaluateClosureLiteral implements spec §4.6.2: the closure captures
// its defining scope by reference, parameter defaults are evaluated
// eagerly in the current scope (not lazily at call time), and a
// zero-parameter closure is a property callable.
func evaluateClosureLiteral(n *ast.ClosureLiteral, ctx *rtctx.Context) (value.Value, error) {
	params := make([]value.Param, len(n.Params))
	for i, p := range n.Params {
		vp := value.Param{Name: p.Name, Type: p.Type}
		if p.Default != nil {
			dv, err := Evaluate(p.Default, ctx)
			if err != nil {
				return nil, err
			}
			vp.Default = dv
			vp.HasDefault = true
		}
		params[i] = vp
	}

	var annotations map[string]value.Value
	if len(n.Annotations) > 0 {
		annotations = make(map[string]value.Value, len(n.Annotations))
		for name, expr := range n.Annotations {
			v, err := Evaluate(expr, ctx)
			if err != nil {
				return nil, err
			}
			annotations[name] = v
		}
	}

	return &value.Callable{
		CallKind:      value.ScriptCallable,
		Params:        params,
		Body:          n.Body,
		DefiningScope: ctx,
		Annotations:   annotations,
		IsProperty:    len(params) == 0,
	}, nil
}
