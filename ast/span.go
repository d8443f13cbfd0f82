// Package ast defines the node shapes the Rill runtime consumes.
//
// The lexer and recursive-descent parser that produce these trees are out
// of scope for this module (see spec §1, Non-goals): this package is the
// input contract, not a parser. Every node carries a Span; the runtime
// only ever reads Span.Start for diagnostics (spec §3.4).
package ast

import "fmt"

// Position is a single point in source text.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

// String renders a position for error messages.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is the source range a node was parsed from.
type Span struct {
	Start Position
	End   Position
}

// String renders a span for error messages.
func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%d:%d-%d", s.Start.Line, s.Start.Column, s.End.Column)
	}
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}

// Node is implemented by every AST node.
type Node interface {
	Position() Span
}

// base embeds into every concrete node to provide Position() once.
type base struct {
	Span Span
}

func (b base) Position() Span { return b.Span }
