package eval

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
	"github.com/opal-lang/rill/rtctx"
)

// suggestUndefinedFunction, suggestUndefinedMethod, and
// suggestUndefinedVariable attach a "did you mean" hint to the
// corresponding undefined-name error, fuzzy-matching against every name
// currently registered in ctx.
func suggestUndefinedFunction(ctx *rtctx.Context, name string, span ast.Span) error {
	return withSuggestion(rillerr.UndefinedFunction(span, name), name, ctx.FunctionNames())
}

func suggestUndefinedMethod(ctx *rtctx.Context, name string, span ast.Span) error {
	return withSuggestion(rillerr.UndefinedMethod(span, name), name, ctx.MethodNames())
}

func suggestUndefinedVariable(ctx *rtctx.Context, name string, span ast.Span) error {
	return withSuggestion(rillerr.UndefinedVariable(span, name), name, ctx.VariableNames())
}

func withSuggestion(err *rillerr.RuntimeError, name string, candidates []string) error {
	if len(candidates) == 0 {
		return err
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return err
	}
	return err.WithDetail("suggestion", ranks[0].Target)
}
