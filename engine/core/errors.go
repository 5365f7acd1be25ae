package core

import (
	"errors"
	"fmt"
)

var (
	ErrNoSurface         = errors.New("no active surface")
	ErrNilContextPointer = errors.New("context pointer cannot be nil")
	ErrBackendInit       = errors.New("failed to initialize windowing backend")
	ErrInvalidProgram    = errors.New("invalid program id")
)

// ErrorKind classifies a failure.
type ErrorKind uint8

const (
	// Surface, context or program creation failed.
	KindResource ErrorKind = iota + 1
	// Scene, mesh, texture or geometry processing failed.
	KindLoad
	// A null handle or nil argument was passed where one is required.
	KindPrecondition
)

func (k ErrorKind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindLoad:
		return "load"
	case KindPrecondition:
		return "precondition"
	default:
		return "unknown"
	}
}

// Error carries the subsystem and operation a failure was raised from.
type Error struct {
	Kind      ErrorKind
	Subsystem string
	Op        string
	Err       error
}

// NewError builds an Error. Only the innermost Error of a chain is logged, as
// a subsystem/operation/message triple; wrapping layers add context silently.
func NewError(kind ErrorKind, subsystem, op string, err error) *Error {
	e := &Error{Kind: kind, Subsystem: subsystem, Op: op, Err: err}
	var inner *Error
	if !errors.As(err, &inner) {
		LogErrorOp(subsystem, op, "%s", err)
	}
	return e
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Subsystem, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err, or any error it wraps, is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == kind {
			return true
		}
		return IsKind(e.Err, kind)
	}
	return false
}
