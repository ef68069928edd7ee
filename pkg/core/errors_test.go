package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		name      string
		errorType ErrorType
		want      string
	}{
		{"unknown", ErrorTypeUnknown, "UNKNOWN"},
		{"configuration", ErrorTypeConfiguration, "CONFIGURATION"},
		{"transport", ErrorTypeTransport, "TRANSPORT"},
		{"decode", ErrorTypeDecode, "DECODE"},
		{"invalid_argument", ErrorTypeInvalidArgument, "INVALID_ARGUMENT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.errorType.String())
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with_command",
			err:  NewInvalidArgumentError("returnChartData", "unsupported chart period 60"),
			want: "INVALID_ARGUMENT (INVALID_ARGUMENT) returnChartData: unsupported chart period 60",
		},
		{
			name: "without_command",
			err:  NewInvalidArgumentError("", "bad value"),
			want: "INVALID_ARGUMENT (INVALID_ARGUMENT): bad value",
		},
		{
			name: "cause_only",
			err:  NewTransportError("returnTicker", errors.New("connection refused")),
			want: "TRANSPORT (NETWORK_ERROR) returnTicker: connection refused",
		},
		{
			name: "message_and_cause",
			err:  NewConfigurationError("buy", ErrNoCredentials),
			want: "CONFIGURATION (NO_CREDENTIALS) buy: cannot call trading API: invalid key/secret in config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewDecodeError("returnBalances", cause)

	assert.ErrorIs(t, err, cause)
	assert.False(t, err.Timestamp.IsZero())

	wrapped := fmt.Errorf("outer: %w", err)
	var e *Error
	assert.ErrorAs(t, wrapped, &e)
	assert.Equal(t, ErrCodeDecode, e.Code)
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestNewTransportError_Codes(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  ErrorCode
	}{
		{"network", errors.New("connection reset"), ErrCodeNetwork},
		{"deadline", fmt.Errorf("get: %w", context.DeadlineExceeded), ErrCodeTimeout},
		{"net_timeout", timeoutError{}, ErrCodeTimeout},
		{"closed", ErrClientClosed, ErrCodeClientClosed},
		{"breaker", ErrCircuitBreakerOpen, ErrCodeCircuitBreaker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewTransportError("returnTicker", tt.cause)
			assert.Equal(t, tt.want, err.Code)
			assert.True(t, IsTransportError(err))
			assert.Equal(t, tt.want == ErrCodeTimeout, IsTimeoutError(err))
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	configErr := NewConfigurationError("buy", ErrNoCredentials)
	decodeErr := NewDecodeError("buy", errors.New("bad json"))
	argErr := NewInvalidArgumentError("buy", "unknown flag")
	plain := errors.New("plain")

	assert.True(t, IsConfigurationError(configErr))
	assert.True(t, IsErrorCode(configErr, ErrCodeNoCredentials))
	assert.ErrorIs(t, configErr, ErrNoCredentials)
	assert.False(t, IsTransportError(configErr))

	assert.True(t, IsDecodeError(decodeErr))
	assert.False(t, IsInvalidArgumentError(decodeErr))

	assert.True(t, IsInvalidArgumentError(argErr))
	assert.True(t, IsErrorCode(argErr, ErrCodeInvalidArgument))

	assert.False(t, IsConfigurationError(plain))
	assert.False(t, IsTransportError(plain))
	assert.False(t, IsErrorCode(plain, ErrCodeNetwork))
	assert.False(t, IsErrorCode(nil, ErrCodeNetwork))

	assert.Equal(t, ErrCodeInvalidConfig, NewConfigurationError("", errors.New("other")).Code)
}
