package types

import "fmt"

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Session errors
	ErrSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	ErrBattleNotFound  ErrorCode = "BATTLE_NOT_FOUND"

	// Donation errors
	ErrInvalidAmount ErrorCode = "INVALID_AMOUNT"

	// Identity errors
	ErrUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrInvalidCredential ErrorCode = "INVALID_CREDENTIAL"
	ErrUserNotFound      ErrorCode = "USER_NOT_FOUND"

	// Request errors
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	// System errors
	ErrInternalError ErrorCode = "INTERNAL_ERROR"
	ErrDatabaseError ErrorCode = "DATABASE_ERROR"
)

// StreamError represents a platform-level error with a stable code
type StreamError struct {
	Code    ErrorCode
	Message string
	Err     error // Underlying error, if any
}

// Error implements the error interface
func (e *StreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *StreamError) Unwrap() error {
	return e.Err
}

// NewStreamError creates a new StreamError
func NewStreamError(code ErrorCode, message string) *StreamError {
	return &StreamError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error in a StreamError
func WrapError(code ErrorCode, message string, err error) *StreamError {
	return &StreamError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsStreamError checks if an error is a StreamError and has a specific code
func IsStreamError(err error, code ErrorCode) bool {
	var streamErr *StreamError
	if err == nil {
		return false
	}
	if ok := As(err, &streamErr); !ok {
		return false
	}
	return streamErr.Code == code
}

// As is a helper function to safely type assert an error to a StreamError
func As(err error, target **StreamError) bool {
	if target == nil {
		return false
	}
	if streamErr, ok := err.(*StreamError); ok {
		*target = streamErr
		return true
	}
	return false
}
