package eval

import (
	"strconv"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluateDestructureTarget implements spec §4.5.6: destructure always
// returns the input unchanged (identity pass-through), binding via
// ctx.Set so outer-scope reassignment and type-lock rules apply.
func evaluateDestructureTarget(t *ast.DestructureTarget, input value.Value, ctx *rtctx.Context) (value.Value, error) {
	if err := destructureBind(t.Pattern, input, ctx, t.Position()); err != nil {
		return nil, err
	}
	return input, nil
}

func destructureBind(pattern ast.DestructurePattern, input value.Value, ctx *rtctx.Context, span ast.Span) error {
	if isKeyedPattern(pattern) {
		return destructureKeyed(pattern, input, ctx, span)
	}
	return destructurePositional(pattern, input, ctx, span)
}

// isKeyedPattern implements spec §4.5.6's mode test: keyed mode is
// signalled by the first non-skip element being a keyed binding.
func isKeyedPattern(pattern ast.DestructurePattern) bool {
	for _, el := range pattern.Elements {
		switch e := el.(type) {
		case ast.SkipElement:
			continue
		case ast.BindElement:
			return e.Key != ""
		default:
			return false
		}
	}
	return false
}

func destructurePositional(pattern ast.DestructurePattern, input value.Value, ctx *rtctx.Context, span ast.Span) error {
	list, ok := input.(*value.List)
	if !ok {
		return rillerr.TypeError(span, "destructure requires a list, got "+value.InferType(input))
	}
	if len(list.Elements) != len(pattern.Elements) {
		return rillerr.TypeError(span, "destructure length mismatch: pattern has "+
			strconv.Itoa(len(pattern.Elements))+" elements, value has "+strconv.Itoa(len(list.Elements))).
			WithDetail("patternLen", len(pattern.Elements)).
			WithDetail("valueLen", len(list.Elements))
	}
	for i, el := range pattern.Elements {
		v := list.Elements[i]
		switch e := el.(type) {
		case ast.SkipElement:
			continue
		case ast.BindElement:
			if err := ctx.Set(e.Name, v, e.Type); err != nil {
				return rewrapSpan(err, span)
			}
		case ast.NestedElement:
			if err := destructureBind(e.Pattern, v, ctx, span); err != nil {
				return err
			}
		}
	}
	return nil
}

func destructureKeyed(pattern ast.DestructurePattern, input value.Value, ctx *rtctx.Context, span ast.Span) error {
	dict, ok := input.(*value.Dict)
	if !ok {
		return rillerr.TypeError(span, "keyed destructure requires a dict, got "+value.InferType(input))
	}
	for _, el := range pattern.Elements {
		switch e := el.(type) {
		case ast.SkipElement:
			continue
		case ast.BindElement:
			v, present := dict.Get(e.Key)
			if !present {
				return rillerr.TypeError(span, "destructure key "+quoteName(e.Key)+" not present").
					WithDetail("key", e.Key)
			}
			if err := ctx.Set(e.Name, v, e.Type); err != nil {
				return rewrapSpan(err, span)
			}
		case ast.NestedElement:
			return rillerr.TypeError(span, "nested patterns are not permitted inside keyed destructure")
		}
	}
	return nil
}
