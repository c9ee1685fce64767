package apiclient

import "net/http"

// NetworkErrorMessage is shown for transport failures and unreadable bodies.
const NetworkErrorMessage = "Network error"

const requestFailedMessage = "Request failed"

// Result is the normalized outcome of a backend call.
type Result[T any] struct {
	Success bool
	Data    T
	Message string
	// Status is the HTTP status, or 0 when no response arrived.
	Status int
}

func succeed[T any](data T, status int) Result[T] {
	return Result[T]{Success: true, Data: data, Status: status}
}

func fail[T any](message string, status int) Result[T] {
	if message == "" {
		message = requestFailedMessage
	}
	return Result[T]{Message: message, Status: status}
}

// Unauthorized reports whether the backend rejected the bearer token.
func (r Result[T]) Unauthorized() bool {
	return r.Status == http.StatusUnauthorized
}

// NotFound reports a 404 from the backend.
func (r Result[T]) NotFound() bool {
	return r.Status == http.StatusNotFound
}
