/*
Package errors defines application-layer error codes.

Design:
 1. Standard library errors only, no third-party dependency.
 2. Codes are for cross-layer communication; no HTTP concepts here.
 3. HTTP status mapping lives in api/response.
 4. errors.Is() classifies domain errors, never string matching.
 5. Stack capture happens at the logging boundary, not in this struct.

Flow: domain error -> errors.Is() classification -> AppError (this
package) -> api/response maps Code to an HTTP status.
*/
package errors

import (
	"errors"
	"fmt"

	"comandas/domain/shared"
)

// ErrorCode classifies an AppError for cross-layer communication.
type ErrorCode string

const (
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest ErrorCode = "BAD_REQUEST"
	CodeNotFound   ErrorCode = "NOT_FOUND"
	CodeConflict   ErrorCode = "CONFLICT"
	CodeValidation ErrorCode = "VALIDATION_ERROR"

	CodeOrderImmutable            ErrorCode = "ORDER_IMMUTABLE"
	CodePaymentMismatch            ErrorCode = "PAYMENT_MISMATCH"
	CodeStructuralExtraNotAllowed ErrorCode = "STRUCTURAL_EXTRA_NOT_ALLOWED"
	CodeTablesStillOpen           ErrorCode = "TABLES_STILL_OPEN"
	CodeDayAlreadyClosed          ErrorCode = "DAY_ALREADY_CLOSED"
	CodeConflictingName           ErrorCode = "CONFLICTING_NAME"
)

// AppError is the application-layer error. No Stack field: stacks are
// captured on demand by the logging boundary, not carried here.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: fmt.Errorf("%s: %w", message, err)}
}

func BadRequest(message string) *AppError { return New(CodeBadRequest, message) }
func NotFound(message string) *AppError   { return New(CodeNotFound, message) }
func Internal(message string) *AppError   { return New(CodeInternal, message) }
func Conflict(message string) *AppError   { return New(CodeConflict, message) }
func Validation(message string) *AppError { return New(CodeValidation, message) }

// Is reports whether err is an AppError carrying the given code.
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError converts err to an AppError, wrapping unknown errors as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}

// FromDomainError maps a domain error to an AppError — the domain-to-
// application error translation boundary.
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, shared.ErrOrderImmutable):
		return &AppError{Code: CodeOrderImmutable, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrPaymentMismatch):
		return &AppError{Code: CodePaymentMismatch, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrStructuralExtraNotAllowed):
		return &AppError{Code: CodeStructuralExtraNotAllowed, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrTablesStillOpen):
		return &AppError{Code: CodeTablesStillOpen, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrDayAlreadyClosed):
		return &AppError{Code: CodeDayAlreadyClosed, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrConflictingName):
		return &AppError{Code: CodeConflictingName, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrNotFound):
		return &AppError{Code: CodeNotFound, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrConflict), errors.Is(err, shared.ErrTransient):
		return &AppError{Code: CodeConflict, Message: err.Error(), Err: err}

	case errors.Is(err, shared.ErrInvalidInput):
		return &AppError{Code: CodeValidation, Message: err.Error(), Err: err}

	default:
		return &AppError{Code: CodeInternal, Message: "internal server error", Err: err}
	}
}
