package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for provider operations.
var (
	// ErrUnknownProvider indicates the requested provider is not registered.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrConfiguration indicates an invalid combination of inputs or settings,
	// such as requesting streaming or supplying two image sources.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrValidation indicates a required request field is missing or malformed.
	ErrValidation = errors.New("invalid request")

	// ErrTimeout indicates the request did not complete within its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrResponseFormat indicates the service returned a body that is not
	// the expected JSON shape.
	ErrResponseFormat = errors.New("malformed response")

	// ErrUnavailable indicates the LLM service could not be reached.
	ErrUnavailable = errors.New("LLM service unavailable")
)

// HTTPError is returned when the service answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Retryable reports whether the status is usually transient.
func (e *HTTPError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// FileError is returned when a local input file cannot be read.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Error wraps provider errors with context.
type Error struct {
	Provider  string // Provider name ("ollama")
	Op        string // Operation that failed ("generate", "chat")
	RequestID string // Correlation ID, empty if the call never left the client
	Err       error  // Underlying error
	Retryable bool   // Whether the error is likely transient
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new provider error.
func NewError(provider, op string, err error, retryable bool) *Error {
	return &Error{
		Provider:  provider,
		Op:        op,
		Err:       err,
		Retryable: retryable,
	}
}

// IsRetryable checks if an error is likely transient and worth retrying.
// Providers never retry on their own; this is for callers that want to.
func IsRetryable(err error) bool {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr.Retryable
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Retryable()
	}

	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, ErrTimeout)
}

// IsTimeout checks if an error was caused by a call deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsHTTPStatus checks if err carries an HTTPError with the given status.
func IsHTTPStatus(err error, status int) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == status
}
