package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidToken is returned by login when the access token cannot be decoded
// or carries no subject. Its message is shown to the user as-is.
var ErrInvalidToken = errors.New("Invalid authentication token. Please contact support.")

// ErrContextMissing signals that the session store was requested from a
// context that was never scoped with one. It is a programming error.
var ErrContextMissing = errors.New("session store accessed outside of its scope")

var ErrNoSession = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")
var ErrStorageKeyNotFound = errors.New("storage key not found")

// APIError is a non-success HTTP response from the banking API.
type APIError struct {
	Status  int
	Message string
	// Structured is set when Message came from the response body rather
	// than the status line.
	Structured bool
}

func (e *APIError) Error() string {
	return e.Message
}

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError carries a user-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
