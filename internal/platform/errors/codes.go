// Package errors provides the admin console's structured error type.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Validation
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	CodeNotFound        Code = "NOT_FOUND"

	// Authentication
	CodeInvalidCredentials  Code = "INVALID_CREDENTIALS"
	CodeSessionTokenInvalid Code = "SESSION_TOKEN_INVALID"
	CodeSessionTokenExpired Code = "SESSION_TOKEN_EXPIRED"
	CodeRateLimited         Code = "RATE_LIMITED"

	// Backend transport
	CodeTransport Code = "TRANSPORT"

	// Asset upload
	CodeUploadInvalidType       Code = "UPLOAD_INVALID_TYPE"
	CodeUploadTooLarge          Code = "UPLOAD_TOO_LARGE"
	CodeUploadInvalidDimensions Code = "UPLOAD_INVALID_DIMENSIONS"
	CodeUploadRejected          Code = "UPLOAD_REJECTED"
)

// defaultMessages holds the user-facing text shown when a caller has no
// server-provided message to surface.
var defaultMessages = map[Code]string{
	CodeUnknown:                 "Something went wrong",
	CodeInvalidArgument:         "Invalid request",
	CodeNotFound:                "Not found",
	CodeInvalidCredentials:      "Login failed",
	CodeSessionTokenInvalid:     "Session is no longer valid",
	CodeSessionTokenExpired:     "Session has expired",
	CodeRateLimited:             "Too many attempts, try again shortly",
	CodeTransport:               "Network error",
	CodeUploadInvalidType:       "Unsupported file type",
	CodeUploadTooLarge:          "File is too large",
	CodeUploadInvalidDimensions: "Image has the wrong dimensions",
	CodeUploadRejected:          "Upload failed",
}

// UserMessage returns the default user-facing text for the code.
func (c Code) UserMessage() string {
	if msg, ok := defaultMessages[c]; ok {
		return msg
	}
	return defaultMessages[CodeUnknown]
}

// HTTPStatus maps domain codes to HTTP response statuses.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidArgument,
		CodeUploadInvalidType,
		CodeUploadInvalidDimensions:
		return http.StatusBadRequest
	case CodeUploadTooLarge:
		return http.StatusRequestEntityTooLarge
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidCredentials,
		CodeSessionTokenInvalid,
		CodeSessionTokenExpired:
		return http.StatusUnauthorized
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodeTransport, CodeUploadRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
