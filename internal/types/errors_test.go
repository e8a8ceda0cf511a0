package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNewStreamError() {
	// Setup
	code := ErrSessionNotFound
	message := "session not found"

	// Execute
	err := NewStreamError(code, message)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Nil(err.Err, "Underlying error should be nil")
}

func (s *ErrorTestSuite) TestWrapError() {
	// Setup
	code := ErrDatabaseError
	message := "wallet update failed"
	underlying := errors.New("connection failed")

	// Execute
	err := WrapError(code, message, underlying)

	// Assert
	s.Equal(code, err.Code, "Error code should match")
	s.Equal(message, err.Message, "Error message should match")
	s.Equal(underlying, err.Err, "Underlying error should match")
}

func (s *ErrorTestSuite) TestErrorString() {
	testCases := []struct {
		name     string
		err      *StreamError
		expected string
	}{
		{
			name:     "Simple error",
			err:      NewStreamError(ErrSessionNotFound, "session not found"),
			expected: "SESSION_NOT_FOUND: session not found",
		},
		{
			name:     "Wrapped error",
			err:      WrapError(ErrDatabaseError, "wallet update failed", errors.New("connection failed")),
			expected: "DATABASE_ERROR: wallet update failed (connection failed)",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.err.Error(), "Error string should match expected format")
		})
	}
}

func (s *ErrorTestSuite) TestIsStreamError() {
	// Setup
	streamErr := NewStreamError(ErrInvalidAmount, "amount must be positive")
	regularErr := errors.New("regular error")

	testCases := []struct {
		name     string
		err      error
		code     ErrorCode
		expected bool
	}{
		{
			name:     "Matching code",
			err:      streamErr,
			code:     ErrInvalidAmount,
			expected: true,
		},
		{
			name:     "Different code",
			err:      streamErr,
			code:     ErrSessionNotFound,
			expected: false,
		},
		{
			name:     "Regular error",
			err:      regularErr,
			code:     ErrInvalidAmount,
			expected: false,
		},
		{
			name:     "Nil error",
			err:      nil,
			code:     ErrInvalidAmount,
			expected: false,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, IsStreamError(tc.err, tc.code), "IsStreamError result should match")
		})
	}
}

func (s *ErrorTestSuite) TestUnwrap() {
	// Setup
	underlying := errors.New("connection failed")
	err := WrapError(ErrDatabaseError, "wallet update failed", underlying)

	// Execute & Assert
	s.True(errors.Is(err, underlying), "errors.Is should find the underlying error")
}
