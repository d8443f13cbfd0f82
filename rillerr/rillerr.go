// Package rillerr implements Rill's single tagged error family (spec §7):
// a stable code, a human-readable message, an optional source location,
// and an optional detail dict. Grounded on the lineage's
// Type/Message/Cause/Context shape (pkgs/errors), reworked so Type is a
// Code constant grouped by origin (L/P/R/C) and Context becomes Detail.
package rillerr

import (
	"fmt"

	"github.com/opal-lang/rill/ast"
)

// Code is a stable error code. The leading letter names the origin
// group: L (lexer), P (parser), R (runtime), C (compiler/configuration).
// This module only ever raises R and C codes — L and P are reserved for
// the lexer/parser inputs this runtime consumes (spec §1, Non-goals).
type Code string

const (
	// Runtime codes (spec §7).
	CodeUndefinedVariable   Code = "R_UNDEFINED_VARIABLE"
	CodeUndefinedFunction   Code = "R_UNDEFINED_FUNCTION"
	CodeUndefinedMethod     Code = "R_UNDEFINED_METHOD"
	CodeUndefinedAnnotation Code = "R_UNDEFINED_ANNOTATION"
	CodeTypeError           Code = "R_TYPE_ERROR"
	CodePropertyNotFound    Code = "R_PROPERTY_NOT_FOUND"
	CodeInvalidPattern      Code = "R_INVALID_PATTERN"

	// Configuration codes.
	CodeInvalidConfig Code = "C_INVALID_CONFIG"
)

// Located is satisfied by every error this package raises, letting
// callers extract a source position uniformly.
type Located interface {
	error
	Location() ast.Span
}

// RuntimeError is the core tagged error type.
type RuntimeError struct {
	Code     Code
	Message  string
	Span     ast.Span
	Detail   map[string]any
	Cause    error
}

func (e *RuntimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s at %s (caused by: %v)", e.Code, e.Message, e.Span.Start, e.Cause)
	}
	return fmt.Sprintf("%s: %s at %s", e.Code, e.Message, e.Span.Start)
}

func (e *RuntimeError) Unwrap() error { return e.Cause }

// Location implements Located.
func (e *RuntimeError) Location() ast.Span { return e.Span }

// New builds a RuntimeError with no cause and no detail.
func New(code Code, span ast.Span, message string) *RuntimeError {
	return &RuntimeError{Code: code, Span: span, Message: message}
}

// Wrap builds a RuntimeError around a host-raised cause.
func Wrap(code Code, span ast.Span, message string, cause error) *RuntimeError {
	return &RuntimeError{Code: code, Span: span, Message: message, Cause: cause}
}

// WithDetail attaches a detail entry and returns the receiver for chaining.
func (e *RuntimeError) WithDetail(key string, v any) *RuntimeError {
	if e.Detail == nil {
		e.Detail = make(map[string]any)
	}
	e.Detail[key] = v
	return e
}

// Is reports whether err carries code, unwrapping RuntimeError chains.
func Is(err error, code Code) bool {
	for err != nil {
		if re, ok := err.(*RuntimeError); ok && re.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// ---- named constructors for the codes the core raises directly ----

func UndefinedVariable(span ast.Span, name string) *RuntimeError {
	return New(CodeUndefinedVariable, span, fmt.Sprintf("undefined variable %q", name)).
		WithDetail("name", name)
}

func UndefinedFunction(span ast.Span, name string) *RuntimeError {
	return New(CodeUndefinedFunction, span, fmt.Sprintf("undefined function %q", name)).
		WithDetail("name", name)
}

func UndefinedMethod(span ast.Span, name string) *RuntimeError {
	return New(CodeUndefinedMethod, span, fmt.Sprintf("undefined method %q", name)).
		WithDetail("name", name)
}

func UndefinedAnnotation(span ast.Span, name string) *RuntimeError {
	return New(CodeUndefinedAnnotation, span, fmt.Sprintf("undefined annotation %q", name)).
		WithDetail("name", name)
}

func TypeError(span ast.Span, message string) *RuntimeError {
	return New(CodeTypeError, span, message)
}

func PropertyNotFound(span ast.Span, key string) *RuntimeError {
	return New(CodePropertyNotFound, span, fmt.Sprintf("no matching entry for %q and no default", key)).
		WithDetail("key", key)
}

func InvalidPattern(pattern string, cause error) *RuntimeError {
	return Wrap(CodeInvalidPattern, ast.Span{}, fmt.Sprintf("invalid autoException pattern %q", pattern), cause).
		WithDetail("pattern", pattern)
}
