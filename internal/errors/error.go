package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryPath     Category = "path"
	CategoryHandle   Category = "handle"
	CategoryShape    Category = "shape"
	CategorySequence Category = "sequence"
	CategoryDriver   Category = "driver"
	CategoryConfig   Category = "config"
	CategoryInspect  Category = "inspect"
)

// CoreError is a structured error with a registered code and a suggestion.
type CoreError struct {
	// Code is a unique error identifier (e.g., "VC001").
	Code string

	// Category is the error type (path, handle, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Fatal marks logic errors that abort the current pass.
	Fatal bool

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CoreError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CoreError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target carries the same code.
func (e *CoreError) Is(target error) bool {
	t, ok := target.(*CoreError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CoreError) WithSuggestion(s string) *CoreError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *CoreError) WithDetail(d string) *CoreError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *CoreError) WithDetailf(format string, args ...any) *CoreError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *CoreError) Wrap(err error) *CoreError {
	e.Wrapped = err
	return e
}

// New creates a CoreError from a registered error code.
func New(code string) *CoreError {
	template, ok := registry[code]
	if !ok {
		return &CoreError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CoreError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
		Fatal:    template.Fatal,
	}
}

// Newf creates a new CoreError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *CoreError {
	return &CoreError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a CoreError.
func FromError(err error, code string) *CoreError {
	if err == nil {
		return nil
	}
	var ce *CoreError
	if stderrors.As(err, &ce) {
		return ce
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first CoreError in err's chain, or "".
func Code(err error) string {
	var ce *CoreError
	if stderrors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// Panic aborts the current pass with a registered logic error.
func Panic(code string, format string, args ...any) {
	panic(New(code).WithDetailf(format, args...))
}

// Recovered converts a recovered panic value into a *CoreError.
// It returns nil if v is nil.
func Recovered(v any) *CoreError {
	switch val := v.(type) {
	case nil:
		return nil
	case *CoreError:
		return val
	case error:
		return &CoreError{Category: CategoryDriver, Message: "panic", Fatal: true, Wrapped: val, Detail: val.Error()}
	default:
		return &CoreError{Category: CategoryDriver, Message: "panic", Fatal: true, Detail: fmt.Sprint(val)}
	}
}
