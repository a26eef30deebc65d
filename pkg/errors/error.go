// Package errors provides coded errors shared by every layer of the signal engine.
//
// Codes are grouped by range:
//   - 1-99 general
//   - 100-199 validation (bad parameters, malformed or short series)
//   - 200-299 data and resources
//   - 300-399 indicator calculation
//   - 400-499 strategy lookup, configuration and signal domains
//   - 600-699 backtest runs and result output
//   - 700-799 market data providers
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeInvalidPeriod, "window must be positive, got %d", window)
//	if errors.HasCode(err, errors.ErrCodeInvalidPeriod) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is a structured error carrying an ErrorCode.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Wrapf attaches a code and formatted message to an underlying error.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is is errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the first coded error in err's chain.
// An InsufficientDataError maps to ErrCodeInsufficientData, anything else to ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	var insufficient *InsufficientDataError
	if errors.As(err, &insufficient) {
		return ErrCodeInsufficientData
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// InsufficientDataError is returned when a series is too short for a calculation.
type InsufficientDataError struct {
	Required int    // Minimum number of bars required
	Actual   int    // Number of bars supplied
	Symbol   string // Optional symbol context
	Message  string
}

// NewInsufficientDataError creates a new InsufficientDataError.
func NewInsufficientDataError(required, actual int, symbol, message string) *InsufficientDataError {
	return &InsufficientDataError{
		Required: required,
		Actual:   actual,
		Symbol:   symbol,
		Message:  message,
	}
}

// NewInsufficientDataErrorf creates a new InsufficientDataError with a formatted message.
func NewInsufficientDataErrorf(required, actual int, symbol, format string, args ...any) *InsufficientDataError {
	return NewInsufficientDataError(required, actual, symbol, fmt.Sprintf(format, args...))
}

func (e *InsufficientDataError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s: %s (required %d, got %d)", e.Symbol, e.Message, e.Required, e.Actual)
	}

	return fmt.Sprintf("%s (required %d, got %d)", e.Message, e.Required, e.Actual)
}

// IsInsufficientDataError checks whether err's chain holds an InsufficientDataError.
func IsInsufficientDataError(err error) bool {
	var insufficientErr *InsufficientDataError

	return errors.As(err, &insufficientErr)
}
