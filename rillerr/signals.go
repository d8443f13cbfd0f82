package rillerr

import (
	"fmt"

	"github.com/opal-lang/rill/ast"
)

// TimeoutError is raised by the timeout guard (spec §4.11) when a call
// loses its race against ctx.timeout.
type TimeoutError struct {
	FunctionName string
	Ms           int
	Span         ast.Span
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("call to %q exceeded %dms at %s", e.FunctionName, e.Ms, e.Span.Start)
}

func (e *TimeoutError) Location() ast.Span { return e.Span }

// AbortError is raised by the abort poll (spec §4.11) when ctx.signal is set.
type AbortError struct {
	Span ast.Span
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("aborted at %s", e.Span.Start)
}

func (e *AbortError) Location() ast.Span { return e.Span }

// AutoExceptionError is raised by the auto-exception check (spec §4.4)
// when a string pipe value matches a configured pattern.
type AutoExceptionError struct {
	PatternSource string
	Value         string
	Span          ast.Span
}

func (e *AutoExceptionError) Error() string {
	return fmt.Sprintf("value matched auto-exception pattern %q at %s", e.PatternSource, e.Span.Start)
}

func (e *AutoExceptionError) Location() ast.Span { return e.Span }
