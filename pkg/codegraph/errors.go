package codegraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph construction and partition checks
var (
	ErrDuplicateNode     = errors.New("duplicate node")
	ErrDanglingEdge      = errors.New("edge references unknown node")
	ErrSelfLoop          = errors.New("self-loop not allowed")
	ErrInvalidWeight     = errors.New("edge weight must be a finite non-negative number")
	ErrInvalidNode       = errors.New("invalid node")
	ErrInvalidKind       = errors.New("invalid kind")
	ErrNodeNotFound      = errors.New("node not found")
	ErrPartitionMismatch = errors.New("partition does not match graph")
	ErrInvalidDocument   = errors.New("invalid graph document")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "AddNode", "AddEdge")
	Entity  string // Entity type (e.g., "node", "edge", "partition")
	ID      string // Entity identifier, if any
	Context string // Additional context
	Cause   error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.ID != "" && e.Context != "":
		return fmt.Sprintf("%s %s %q (%s): %v", e.Op, e.Entity, e.ID, e.Context, e.Cause)
	case e.ID != "":
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Node sets the entity to "node" with the given ID.
func (b *ErrorBuilder) Node(id string) *ErrorBuilder {
	b.err.Entity = "node"
	b.err.ID = id
	return b
}

// Edge sets the entity to "edge", identified by its endpoints.
func (b *ErrorBuilder) Edge(source, target string) *ErrorBuilder {
	b.err.Entity = "edge"
	b.err.ID = source + "->" + target
	return b
}

// Kind sets the entity to "kind" with the offending value.
func (b *ErrorBuilder) Kind(value string) *ErrorBuilder {
	b.err.Entity = "kind"
	b.err.ID = value
	return b
}

// Document sets the entity to "document".
func (b *ErrorBuilder) Document() *ErrorBuilder {
	b.err.Entity = "document"
	return b
}

// Partition sets the entity to "partition".
func (b *ErrorBuilder) Partition() *ErrorBuilder {
	b.err.Entity = "partition"
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	e := b.err
	return &e
}

// IsConstructionError reports whether err is a graph construction invariant violation.
func IsConstructionError(err error) bool {
	return errors.Is(err, ErrDuplicateNode) ||
		errors.Is(err, ErrDanglingEdge) ||
		errors.Is(err, ErrSelfLoop) ||
		errors.Is(err, ErrInvalidWeight) ||
		errors.Is(err, ErrInvalidNode) ||
		errors.Is(err, ErrInvalidKind) ||
		errors.Is(err, ErrInvalidDocument)
}
