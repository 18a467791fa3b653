package holiday

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid holiday event API configuration")
	// ErrInvalidArgument indicates a request was rejected before being sent
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnauthorized indicates authentication failure
	ErrUnauthorized = errors.New("unauthorized: invalid API key")
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrRateLimited indicates the monthly quota or request rate was exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrBadRequest indicates the server rejected the request parameters
	ErrBadRequest = errors.New("bad request")
	// ErrServer indicates a 5xx response
	ErrServer = errors.New("server error")
	// ErrDecode indicates a response body did not match the expected shape
	ErrDecode = errors.New("failed to parse response")
)

// APIError represents a non-2xx response from the Holiday and Event API
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	RateLimit  RateLimit
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("holiday event API error: status %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code to one of the classification errors so callers
// can use errors.Is(err, ErrRateLimited) and friends.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case e.StatusCode >= 500 && e.StatusCode < 600:
		return ErrServer
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return ErrBadRequest
	default:
		return nil
	}
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimited checks if the error indicates the quota was exhausted
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsServerError checks if the error is a 5xx response
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// DecodeError wraps a JSON error for a 2xx response whose body could not be parsed.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("can't parse %s response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is reports DecodeError as ErrDecode.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// errorMessage picks the message surfaced for a failed response: the body's
// "error" field (or the gateway's "message"), else the status text, else the
// bare status code.
func errorMessage(statusCode int, payload *errorPayload) string {
	if payload != nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return strconv.Itoa(statusCode)
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
