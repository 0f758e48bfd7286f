// Package errors provides structured error handling for termout.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Category represents the error category.
type Category string

// Error categories.
const (
	CategoryIO       Category = "io"
	CategoryConfig   Category = "config"
	CategoryTerminal Category = "terminal"
	CategoryInternal Category = "internal"
)

// Error codes for each category.
const (
	// IO errors
	CodeStreamWrite = "STREAM_WRITE"
	CodeStreamFlush = "STREAM_FLUSH"

	// Config errors
	CodeConfigNotFound = "CONFIG_NOT_FOUND"
	CodeConfigParse    = "CONFIG_PARSE"
	CodeConfigInvalid  = "CONFIG_INVALID"

	// Terminal errors
	CodeVerbosityInvalid = "VERBOSITY_INVALID"
	CodeTypeInvalid      = "TYPE_INVALID"
	CodeEncodingUnknown  = "ENCODING_UNKNOWN"
	CodeStyleInvalid     = "STYLE_INVALID"

	// Internal errors
	CodeInternal = "INTERNAL"
)

// Error is a structured error with category, code, and user-friendly hints.
type Error struct {
	Category Category
	Code     string
	Message  string
	Cause    error
	Hint     string
	Context  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s/%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s/%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserFriendly returns a user-friendly error message with hints.
func (e *Error) UserFriendly() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", e.Message))

	if e.Cause != nil {
		sb.WriteString(fmt.Sprintf("Cause: %s\n", e.Cause.Error()))
	}

	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\nHint: %s\n", e.Hint))
	}

	if len(e.Context) > 0 {
		sb.WriteString("\nContext:\n")
		for _, k := range e.ContextKeys() {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, e.Context[k]))
		}
	}

	return sb.String()
}

// ContextKeys returns the context keys in sorted order.
func (e *Error) ContextKeys() []string {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithHint adds a hint to the error.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// WithContext adds context to the error.
func (e *Error) WithContext(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string)
	}
	e.Context[key] = value
	return e
}

// New creates a new Error.
func New(category Category, code string, message string) *Error {
	return &Error{
		Category: category,
		Code:     code,
		Message:  message,
		Context:  make(map[string]string),
	}
}

// Newf creates a new Error with formatted message.
func Newf(category Category, code string, format string, args ...interface{}) *Error {
	return New(category, code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error as an Error.
func Wrap(err error, category Category, code string, message string) *Error {
	return New(category, code, message).WithCause(err)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, category Category, code string, format string, args ...interface{}) *Error {
	return Wrap(err, category, code, fmt.Sprintf(format, args...))
}

// Is checks if the error is an Error with the given code.
func Is(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCategory returns the category of an Error, or empty string if not an Error.
func GetCategory(err error) Category {
	var e *Error
	if errors.As(err, &e) {
		return e.Category
	}
	return ""
}

// GetCode returns the code of an Error, or empty string if not an Error.
func GetCode(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// As attempts to convert an error to an Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// StreamWrite wraps a failed write to an output stream.
func StreamWrite(cause error) *Error {
	return Wrap(cause, CategoryIO, CodeStreamWrite, "failed to write to stream")
}

// StreamFlush wraps a failed flush of an output stream.
func StreamFlush(cause error) *Error {
	return Wrap(cause, CategoryIO, CodeStreamFlush, "failed to flush stream")
}

// ConfigNotFound creates a config not found error.
func ConfigNotFound(path string, cause error) *Error {
	return Wrap(cause, CategoryConfig, CodeConfigNotFound, "configuration file not found").
		WithContext("path", path).
		WithHint("Pass an existing file with --config or remove the flag")
}

// ConfigParse creates a config parse error.
func ConfigParse(path string, cause error) *Error {
	return Wrap(cause, CategoryConfig, CodeConfigParse, "failed to parse configuration").
		WithContext("path", path).
		WithHint("Check the YAML or JSON syntax of the configuration file")
}

// ConfigInvalid creates a config validation error.
func ConfigInvalid(field string, cause error) *Error {
	return Wrap(cause, CategoryConfig, CodeConfigInvalid, fmt.Sprintf("invalid value for %s", field)).
		WithContext("field", field)
}

// VerbosityInvalid reports an unknown verbosity name.
func VerbosityInvalid(name string) *Error {
	return Newf(CategoryTerminal, CodeVerbosityInvalid, "unknown verbosity %q", name).
		WithHint("Use one of: quiet, normal, verbose, very-verbose, debug")
}

// TypeInvalid reports an unknown output type name.
func TypeInvalid(name string) *Error {
	return Newf(CategoryTerminal, CodeTypeInvalid, "unknown output type %q", name).
		WithHint("Use one of: normal, raw, plain")
}

// EncodingUnknown reports an encoding name that no codec recognises.
func EncodingUnknown(name string, cause error) *Error {
	return Wrapf(cause, CategoryTerminal, CodeEncodingUnknown, "unknown encoding %q", name)
}

// StyleInvalid reports a style definition that cannot be built.
func StyleInvalid(style string, message string) *Error {
	return Newf(CategoryTerminal, CodeStyleInvalid, "style %s: %s", style, message).
		WithContext("style", style)
}

// Internal creates an internal error.
func Internal(message string, cause error) *Error {
	return Wrap(cause, CategoryInternal, CodeInternal, message).
		WithHint("This is a bug in termout, please report it")
}
