package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// ErrorType represents the category of a client failure.
type ErrorType int

// Error type constants. Business rejections reported by the exchange are
// not errors at all: they come back as a Response carrying an error field.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeConfiguration indicates the client cannot issue the call as configured.
	ErrorTypeConfiguration
	// ErrorTypeTransport indicates a network, timeout or connection failure.
	ErrorTypeTransport
	// ErrorTypeDecode indicates the response body is not valid JSON.
	ErrorTypeDecode
	// ErrorTypeInvalidArgument indicates a caller-supplied value was rejected before sending.
	ErrorTypeInvalidArgument
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"CONFIGURATION",
		"TRANSPORT",
		"DECODE",
		"INVALID_ARGUMENT",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrNoCredentials is returned when a private call is made without key or secret.
	ErrNoCredentials = errors.New("invalid key/secret in config")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrCircuitBreakerOpen is returned when circuit breaker is open.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// Error is a failure raised by the client itself.
type Error struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// Code is a stable machine-readable identifier.
	Code ErrorCode `json:"code"`
	// Command is the API command being issued, when known.
	Command string `json:"command,omitempty"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Err is the underlying cause.
	Err error `json:"-"`
	// Timestamp is when the error occurred.
	Timestamp time.Time `json:"timestamp"`
}

// Error returns a formatted string with type, code, command and message.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = msg + ": " + e.Err.Error()
		}
	}
	if e.Command != "" {
		return fmt.Sprintf("%s (%s) %s: %s", e.Type, e.Code, e.Command, msg)
	}
	return fmt.Sprintf("%s (%s): %s", e.Type, e.Code, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new Error. The timestamp is set to the current time.
func NewError(errorType ErrorType, code ErrorCode, command, message string, cause error) *Error {
	return &Error{
		Type:      errorType,
		Code:      code,
		Command:   command,
		Message:   message,
		Err:       cause,
		Timestamp: time.Now(),
	}
}

// NewConfigurationError reports a call that cannot be made as configured.
func NewConfigurationError(command string, cause error) *Error {
	code := ErrCodeInvalidConfig
	if errors.Is(cause, ErrNoCredentials) {
		code = ErrCodeNoCredentials
	}
	return NewError(ErrorTypeConfiguration, code, command, "cannot call trading API", cause)
}

// NewTransportError wraps a network level failure. Timeouts get their own code.
func NewTransportError(command string, cause error) *Error {
	code := ErrCodeNetwork
	switch {
	case errors.Is(cause, ErrClientClosed):
		code = ErrCodeClientClosed
	case errors.Is(cause, ErrCircuitBreakerOpen):
		code = ErrCodeCircuitBreaker
	case isTimeout(cause):
		code = ErrCodeTimeout
	}
	return NewError(ErrorTypeTransport, code, command, "", cause)
}

// NewDecodeError reports a response body that could not be parsed.
func NewDecodeError(command string, cause error) *Error {
	return NewError(ErrorTypeDecode, ErrCodeDecode, command, "invalid JSON response", cause)
}

// NewInvalidArgumentError reports a rejected argument.
func NewInvalidArgumentError(command, message string) *Error {
	return NewError(ErrorTypeInvalidArgument, ErrCodeInvalidArgument, command, message, nil)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func errorType(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsConfigurationError returns true if the call was refused before any request was sent.
func IsConfigurationError(err error) bool {
	return errorType(err) == ErrorTypeConfiguration
}

// IsTransportError returns true if the error is a network connectivity issue.
// Transport errors are safe for the caller to retry.
func IsTransportError(err error) bool {
	return errorType(err) == ErrorTypeTransport
}

// IsTimeoutError returns true if the transport gave up waiting.
func IsTimeoutError(err error) bool {
	return IsErrorCode(err, ErrCodeTimeout)
}

// IsDecodeError returns true if the response body was not valid JSON.
func IsDecodeError(err error) bool {
	return errorType(err) == ErrorTypeDecode
}

// IsInvalidArgumentError returns true if an argument was rejected locally.
func IsInvalidArgumentError(err error) bool {
	return errorType(err) == ErrorTypeInvalidArgument
}
