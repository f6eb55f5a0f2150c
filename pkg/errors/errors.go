// Package errors provides structured error handling for the vdom runtime.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindNotInRenderContext indicates a hook used outside its component's render.
	KindNotInRenderContext
	// KindInvalidContainer indicates a mount without a surface container.
	KindInvalidContainer
	// KindNullRoot indicates a mount without a root node.
	KindNullRoot
	// KindRender indicates a reconciliation pass that did not complete,
	// usually wrapping the *PanicError of the component that failed.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates an unreadable or invalid configuration file.
	KindConfig
	// KindScenario indicates an unreadable or invalid scenario file.
	KindScenario
)

func (k Kind) String() string {
	switch k {
	case KindNotInRenderContext:
		return "not-in-render-context"
	case KindInvalidContainer:
		return "invalid-container"
	case KindNullRoot:
		return "null-root"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	case KindScenario:
		return "scenario"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching. An *Error matches the sentinel of its Kind.
var (
	ErrNotInRenderContext = errors.New("hooks can only be called inside a component render")
	ErrInvalidContainer   = errors.New("a container is required for rendering")
	ErrNullRoot           = errors.New("cannot render a nil root node")
	ErrRender             = errors.New("render pass failed")
	ErrConfig             = errors.New("invalid configuration")
	ErrScenario           = errors.New("invalid scenario")
)

func sentinel(k Kind) error {
	switch k {
	case KindNotInRenderContext:
		return ErrNotInRenderContext
	case KindInvalidContainer:
		return ErrInvalidContainer
	case KindNullRoot:
		return ErrNullRoot
	case KindRender:
		return ErrRender
	case KindConfig:
		return ErrConfig
	case KindScenario:
		return ErrScenario
	default:
		return nil
	}
}

// Error represents a structured error raised by the runtime.
type Error struct {
	// Op is the operation that failed (e.g., "core.MountRoot").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error. When nil, the Kind's sentinel is used.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New builds an *Error of the given kind, wrapping the kind's sentinel.
func New(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind, Err: sentinel(kind), Timestamp: time.Now()}
}

// Wrap builds an *Error of the given kind around err. It returns nil when err
// is nil.
func Wrap(op string, kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

func (e *Error) Error() string {
	err := e.Err
	if err == nil {
		err = sentinel(e.Kind)
	}
	if err == nil {
		return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e's Kind.
func (e *Error) Is(target error) bool {
	s := sentinel(e.Kind)
	return s != nil && s == target
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "vdom.render").
	Op string
	// Value is the value passed to panic().
	Value any
	// Path is the position that failed, such as a component path, if known.
	Path string
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	at := ""
	if e.Path != "" {
		at = " at " + e.Path
	}
	if e.Op != "" {
		return fmt.Sprintf("panic in %s%s: %v", e.Op, at, e.Value)
	}
	return fmt.Sprintf("panic%s: %v", at, e.Value)
}

// Unwrap returns the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Handler receives errors reported by a surrounding application.
type Handler interface {
	// HandleError is called when an error is reported.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is, As and Join re-export the standard helpers so callers need one import.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)
