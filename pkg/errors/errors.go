// Package errors provides structured error handling for bridges and their
// supporting packages.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLifecycle indicates misuse of a bridge lifecycle, such as calls
	// after destruction.
	KindLifecycle
	// KindDefinition indicates an invalid or unloadable definition.
	KindDefinition
	// KindCallback indicates a failure returned by a caller-supplied callback.
	KindCallback
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates a configuration error.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindLifecycle:
		return "lifecycle"
	case KindDefinition:
		return "definition"
	case KindCallback:
		return "callback"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// BridgeError represents a structured error raised by a bridge or one of its
// collaborators.
type BridgeError struct {
	// Op is the operation that failed (e.g., "bridge.Set").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Name is the accessor or event name involved, if applicable.
	Name string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BridgeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s [%s] name=%s: %v", e.Op, e.Kind, e.Name, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *BridgeError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "bridge.exclusive").
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

// ParseError represents a failure to decode a definition document.
type ParseError struct {
	// Source is the file or document name.
	Source string
	// Line is the 1-based line of the offending node, or 0 if unknown.
	Line int
	// Msg describes the problem.
	Msg string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Msg)
}

// ErrorHandler receives errors reported by bridges.
type ErrorHandler interface {
	// HandleError is called when an error occurs with no caller to return it to.
	HandleError(err *BridgeError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
