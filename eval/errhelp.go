package eval

import (
	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rillerr"
)

// rewrapSpan attaches span to err when it came from a layer with no AST
// access (rtctx.Set raises with a zero span; see rtctx/context.go's
// spanZero) so the caller's call-site location survives into the
// reported error.
func rewrapSpan(err error, span ast.Span) error {
	if re, ok := err.(*rillerr.RuntimeError); ok && re.Span == (ast.Span{}) {
		re.Span = span
	}
	return err
}
