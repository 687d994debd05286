// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrorType categorizes pipeline failures.
type ErrorType string

const (
	// ErrorTypeInvalidInput fails fast before any external call is made.
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	// ErrorTypeRateLimited fails fast and carries a retry hint.
	ErrorTypeRateLimited ErrorType = "rate_limited"
	// ErrorTypeRetrievalDegraded is swallowed internally and logged only.
	ErrorTypeRetrievalDegraded ErrorType = "retrieval_degraded"
	// ErrorTypeModelStream surfaces as a terminal error stream event.
	ErrorTypeModelStream ErrorType = "model_stream_failure"
	// ErrorTypePersistence surfaces as a terminal error stream event,
	// distinct from a stream failure since the text already reached the caller.
	ErrorTypePersistence ErrorType = "persistence_failure"
	// ErrorTypeNotFound covers reads of unknown plan ids.
	ErrorTypeNotFound ErrorType = "not_found"
)

// AppError is the application error carried across pipeline layers.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string

	// RetryAfterSeconds is set only for rate-limited errors.
	RetryAfterSeconds int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with a stable machine-readable code.
func NewAppError(errType ErrorType, message string, originalError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     originalError,
		Code:    generateErrorCode(errType),
	}
}

// NewInvalidInputError creates a validation error.
func NewInvalidInputError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeInvalidInput, message, originalError)
}

// NewRateLimitedError creates a rate-limit rejection with a retry hint.
func NewRateLimitedError(message string, retryAfterSeconds int) *AppError {
	e := NewAppError(ErrorTypeRateLimited, message, nil)
	e.RetryAfterSeconds = retryAfterSeconds
	return e
}

// NewRetrievalDegradedError marks a failed reference retrieval. It is
// never returned to the caller, only logged.
func NewRetrievalDegradedError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeRetrievalDegraded, message, originalError)
}

// NewModelStreamError creates a model streaming failure.
func NewModelStreamError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeModelStream, message, originalError)
}

// NewPersistenceError creates a document store failure.
func NewPersistenceError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypePersistence, message, originalError)
}

// NewNotFoundError creates a missing-document error.
func NewNotFoundError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, originalError)
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type == errType
	}
	return false
}

// IsInvalidInputError reports whether err is a validation error.
func IsInvalidInputError(err error) bool { return IsType(err, ErrorTypeInvalidInput) }

// IsRateLimitedError reports whether err is a rate-limit rejection.
func IsRateLimitedError(err error) bool { return IsType(err, ErrorTypeRateLimited) }

// IsNotFoundError reports whether err is a missing-document error.
func IsNotFoundError(err error) bool { return IsType(err, ErrorTypeNotFound) }

// generateErrorCode keeps the wire code aligned with the error type; the
// type values double as the machine-readable reason codes callers match on.
func generateErrorCode(errType ErrorType) string {
	switch errType {
	case ErrorTypeInvalidInput, ErrorTypeRateLimited, ErrorTypeRetrievalDegraded,
		ErrorTypeModelStream, ErrorTypePersistence, ErrorTypeNotFound:
		return string(errType)
	default:
		return "unknown_error"
	}
}

// WrapError wraps an existing error, preserving an AppError's type.
func WrapError(err error, message string, errType ErrorType) error {
	if err == nil {
		return nil
	}

	var appError *AppError
	if errors.As(err, &appError) {
		return &AppError{
			Type:    appError.Type,
			Message: fmt.Sprintf("%s: %s", message, appError.Message),
			Err:     appError,
			Code:    appError.Code,
		}
	}

	return NewAppError(errType, message, err)
}
