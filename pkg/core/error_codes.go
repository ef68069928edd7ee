package core

import "errors"

// ErrorCode represents a stable identifier for a specific failure.
type ErrorCode string

// Error code constants.
const (
	// ErrCodeNetwork indicates a network connectivity failure.
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	// ErrCodeTimeout indicates the request exceeded its deadline.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeDecode indicates a response that is not valid JSON.
	ErrCodeDecode ErrorCode = "DECODE_ERROR"
	// ErrCodeInvalidArgument indicates a rejected caller argument.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// Configuration errors
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	ErrCodeNoCredentials ErrorCode = "NO_CREDENTIALS"

	// Client state errors
	ErrCodeClientClosed ErrorCode = "CLIENT_CLOSED"

	// Circuit breaker errors
	ErrCodeCircuitBreaker ErrorCode = "CIRCUIT_BREAKER_OPEN"
)

// IsErrorCode checks if the error matches the specified error code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
