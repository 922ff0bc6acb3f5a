package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryProtocol Category = "protocol"
	CategoryPublish  Category = "publish"
	CategoryCLI      Category = "cli"
)

// TooltipError is a structured error with a code, detail and suggestion.
type TooltipError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *TooltipError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *TooltipError) Unwrap() error {
	return e.Wrapped
}

// Is matches another TooltipError by code.
func (e *TooltipError) Is(target error) bool {
	t, ok := target.(*TooltipError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation.
func (e *TooltipError) WithDetail(d string) *TooltipError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detailed explanation.
func (e *TooltipError) WithDetailf(format string, args ...any) *TooltipError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *TooltipError) WithSuggestion(s string) *TooltipError {
	e.Suggestion = s
	return e
}

// Wrap sets the underlying cause.
func (e *TooltipError) Wrap(err error) *TooltipError {
	e.Wrapped = err
	return e
}

// New creates a TooltipError from a registered error code.
func New(code string) *TooltipError {
	template, ok := registry[code]
	if !ok {
		return &TooltipError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &TooltipError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new TooltipError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *TooltipError {
	return &TooltipError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a TooltipError. Errors that already
// contain a TooltipError are returned as that error.
func FromError(err error, code string) *TooltipError {
	if err == nil {
		return nil
	}
	var te *TooltipError
	if stderrors.As(err, &te) {
		return te
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first TooltipError in err's chain.
func Code(err error) string {
	var te *TooltipError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}
