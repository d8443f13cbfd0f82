package eval

import (
	"strings"

	"github.com/opal-lang/rill/ast"
	"github.com/opal-lang/rill/rtctx"
	"github.com/opal-lang/rill/value"
)

// evaluateStringLiteral implements spec §4.8: every interpolated part
// evaluates against the pipeValue that was live when the string began,
// not whatever a sibling interpolation left behind, and the ambient
// pipeValue is restored once the whole literal is built.
func evaluateStringLiteral(n *ast.StringLiteral, ctx *rtctx.Context) (value.Value, error) {
	saved := ctx.SnapshotPipe()
	var b strings.Builder
	for _, part := range n.Parts {
		if part.Expr == nil {
			b.WriteString(part.Text)
			continue
		}
		ctx.RestorePipe(saved)
		v, err := Evaluate(part.Expr, ctx)
		if err != nil {
			ctx.RestorePipe(saved)
			return nil, err
		}
		b.WriteString(value.FormatValue(v))
	}
	ctx.RestorePipe(saved)
	return value.Str(b.String()), nil
}
