package errors

import (
	stderrors "errors"

	"github.com/goalinstitute/admin-console/internal/platform/errors/i18n"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Internal message (for logs/telemetry)
	Metadata map[string]string // Additional context, e.g. the offending field
	Cause    error             // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error with metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var domainErr *Error
	if stderrors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeUnknown
}

// UserMessage returns text safe to show an operator for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return CodeOf(err).UserMessage()
}

// LocalizedMessage renders the user-facing text for err in locale, filling
// the message template with the error's metadata.
func LocalizedMessage(err error, locale string) string {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		return i18n.GetCatalog(locale).Format(string(CodeUnknown), nil)
	}
	return i18n.GetCatalog(locale).Format(string(domainErr.Code), domainErr.Metadata)
}
