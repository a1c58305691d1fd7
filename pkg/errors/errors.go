// Package errors provides structured error handling for reactive collections.
//
// Failures in the collection engine are local and synchronous: a bad index or
// a mutation of a read-only projection returns a *CollectionError to the caller.
// Conditions that are not failures (a source without change notifications, a
// suppression scope nobody listens to) are reported as Warnings through the
// global ErrorHandler.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRange indicates an index or count outside the valid range.
	KindRange
	// KindArgument indicates a missing or invalid argument.
	KindArgument
	// KindUnsupported indicates an operation that is never supported,
	// such as mutating a derived collection.
	KindUnsupported
	// KindDegraded indicates reduced functionality rather than a failure.
	KindDegraded
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindArgument:
		return "argument"
	case KindUnsupported:
		return "unsupported"
	case KindDegraded:
		return "degraded"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrOutOfRange is wrapped by errors about indices outside the collection.
	ErrOutOfRange = stderrors.New("index out of range")
	// ErrReadOnly is wrapped by every mutation attempted on a derived collection.
	ErrReadOnly = stderrors.New("derived collections are read-only")
	// ErrUnsupported is wrapped by operations a collection never supports.
	ErrUnsupported = stderrors.New("operation not supported")
	// ErrNilArgument is wrapped by errors about required arguments that were nil.
	ErrNilArgument = stderrors.New("required argument is nil")
)

// CollectionError represents a structured error raised by a collection operation.
type CollectionError struct {
	// Op is the operation that failed (e.g., "List.Insert").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Index is the offending index, or -1 when no index is involved.
	Index int
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack when the error was reported.
	StackTrace string
	// Timestamp is when the error was reported.
	Timestamp time.Time
}

func (e *CollectionError) Error() string {
	if e.Index >= 0 && e.Kind == KindRange {
		return fmt.Sprintf("%s [%s] index=%d: %v", e.Op, e.Kind, e.Index, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *CollectionError) Unwrap() error {
	return e.Err
}

// OutOfRange returns a KindRange error for index in op.
// Bounds describes the accepted range, e.g. "[0, 3)".
func OutOfRange(op string, index int, bounds string) *CollectionError {
	return &CollectionError{
		Op:    op,
		Kind:  KindRange,
		Index: index,
		Err:   fmt.Errorf("%w: want %s", ErrOutOfRange, bounds),
	}
}

// ReadOnly returns the error every mutation of a derived collection fails with.
func ReadOnly(op string) *CollectionError {
	return &CollectionError{Op: op, Kind: KindUnsupported, Index: -1, Err: ErrReadOnly}
}

// Unsupported returns a KindUnsupported error describing why op cannot run.
func Unsupported(op, reason string) *CollectionError {
	return &CollectionError{
		Op:    op,
		Kind:  KindUnsupported,
		Index: -1,
		Err:   fmt.Errorf("%w: %s", ErrUnsupported, reason),
	}
}

// NilArgument returns a KindArgument error for the named argument.
func NilArgument(op, name string) *CollectionError {
	return &CollectionError{
		Op:    op,
		Kind:  KindArgument,
		Index: -1,
		Err:   fmt.Errorf("%w: %s", ErrNilArgument, name),
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "platform.UIScheduler").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Warning describes a condition that reduces functionality without failing.
type Warning struct {
	// Op is the operation that noticed the condition.
	Op string
	// Kind categorizes the warning, usually KindDegraded.
	Kind ErrorKind
	// Subject names what the warning is about, such as a Go type.
	Subject string
	// Message is a human-readable description.
	Message string
	// Timestamp is when the warning was raised.
	Timestamp time.Time
}

func (w *Warning) String() string {
	if w.Subject != "" {
		return fmt.Sprintf("%s [%s] %s: %s", w.Op, w.Kind, w.Subject, w.Message)
	}
	return fmt.Sprintf("%s [%s]: %s", w.Op, w.Kind, w.Message)
}

// ErrorHandler receives errors and warnings reported by the collection engine.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *CollectionError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleWarning is called for degraded-but-legal conditions.
	HandleWarning(w *Warning)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}
