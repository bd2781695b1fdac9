package community

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for detection and comparison
var (
	ErrEmptyGraph              = errors.New("graph has no nodes")
	ErrInvalidParameter        = errors.New("invalid parameter")
	ErrAlgorithmUnavailable    = errors.New("algorithm unavailable")
	ErrAlgorithmRuntime        = errors.New("algorithm failed")
	ErrImplementationInvariant = errors.New("fallback chain exhausted")
)

// DetectionError provides structured error information for detection runs.
type DetectionError struct {
	Op        string // Operation that failed (e.g., "Detect", "Compare")
	Algorithm string // Algorithm involved, if any
	Param     string // Offending parameter, if any
	Context   string // Additional context
	Cause     error  // Sentinel classifying the failure
	Details   []error
}

// Error implements the error interface.
func (e *DetectionError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Algorithm != "" {
		fmt.Fprintf(&b, " %s", e.Algorithm)
	}
	if e.Param != "" {
		fmt.Fprintf(&b, " %s", e.Param)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " (%s)", e.Context)
	}
	fmt.Fprintf(&b, ": %v", e.Cause)
	if len(e.Details) > 0 {
		msgs := make([]string, len(e.Details))
		for i, d := range e.Details {
			msgs[i] = d.Error()
		}
		fmt.Fprintf(&b, ": %s", strings.Join(msgs, "; "))
	}
	return b.String()
}

// Unwrap exposes the cause and every detail to errors.Is and errors.As.
func (e *DetectionError) Unwrap() []error {
	out := make([]error, 0, len(e.Details)+1)
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return append(out, e.Details...)
}

// ErrorBuilder provides a fluent interface for building DetectionErrors.
type ErrorBuilder struct {
	err DetectionError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: DetectionError{Op: op}}
}

// Algorithm sets the algorithm name.
func (b *ErrorBuilder) Algorithm(name string) *ErrorBuilder {
	b.err.Algorithm = name
	return b
}

// Param sets the offending parameter.
func (b *ErrorBuilder) Param(name string) *ErrorBuilder {
	b.err.Param = name
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the sentinel cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Wrap attaches underlying errors.
func (b *ErrorBuilder) Wrap(errs ...error) *ErrorBuilder {
	b.err.Details = append(b.err.Details, errs...)
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}

// IsFatal reports whether err ended a run without a result: a caller error
// or an exhausted fallback chain
func IsFatal(err error) bool {
	return errors.Is(err, ErrEmptyGraph) ||
		errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrImplementationInvariant)
}
