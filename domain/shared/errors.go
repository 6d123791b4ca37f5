// Package shared holds the kernel every comandas aggregate depends on:
// sentinel errors, the event/aggregate contracts, specifications, money,
// clock and tenancy.
//
// Error design: sentinels for errors.Is() type checks, a single DomainError
// carrying business context plus a lazily-formatted stack (captured at
// construction, formatted only when logged), no HTTP concepts leaking in.
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Sentinel errors — check with errors.Is(), never by comparing DomainError fields.
var (
	ErrNotFound                  = errors.New("not found")
	ErrConflict                  = errors.New("conflict")
	ErrInvalidInput              = errors.New("invalid input")
	ErrOrderImmutable            = errors.New("order is closed")
	ErrPaymentMismatch           = errors.New("payment total does not match order total")
	ErrStructuralExtraNotAllowed = errors.New("structural extra cannot be normalized")
	ErrTablesStillOpen           = errors.New("tables still open")
	ErrDayAlreadyClosed          = errors.New("operative day already closed")
	ErrConflictingName           = errors.New("name already in use")
	ErrTransient                 = errors.New("transient failure, retry")
)

// DomainError carries business context and an on-demand stack trace.
// Details holds error-kind-specific payload (e.g. "count", "date",
// "expected", "given") for callers that need more than a message.
type DomainError struct {
	Err     error
	Entity  string
	Message string
	Field   string
	Details map[string]any
	stack   []uintptr
}

func (e *DomainError) Error() string { return e.Message }
func (e *DomainError) Unwrap() error { return e.Err }

// Stack formats the captured frames; call only when actually logging.
func (e *DomainError) Stack() []string { return FormatStack(e.stack) }

// CaptureStack captures the caller's frames. skip=3 covers Callers,
// CaptureStack, and the NewXxxError wrapper.
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack renders captured frames, dropping runtime-internal ones,
// capped at 10 entries.
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

func NewNotFoundError(entity, id string) error {
	return &DomainError{
		Err:     ErrNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s %s not found", entity, id),
		Details: map[string]any{"id": id},
		stack:   CaptureStack(3),
	}
}

func NewValidationError(entity, field, reason string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Entity:  entity,
		Field:   field,
		Message: reason,
		stack:   CaptureStack(3),
	}
}

func NewConflictingNameError(entity, name string) error {
	return &DomainError{
		Err:     ErrConflictingName,
		Entity:  entity,
		Message: fmt.Sprintf("%s name %q already in use", entity, name),
		Details: map[string]any{"name": name},
		stack:   CaptureStack(3),
	}
}

func NewOrderImmutableError(orderID string) error {
	return &DomainError{
		Err:     ErrOrderImmutable,
		Entity:  "order",
		Message: fmt.Sprintf("order %s is closed", orderID),
		stack:   CaptureStack(3),
	}
}

func NewPaymentMismatchError(expected, given string) error {
	return &DomainError{
		Err:     ErrPaymentMismatch,
		Entity:  "order",
		Message: fmt.Sprintf("payments sum to %s, expected %s", given, expected),
		Details: map[string]any{"expected": expected, "given": given},
		stack:   CaptureStack(3),
	}
}

func NewStructuralExtraNotAllowedError(productName string) error {
	return &DomainError{
		Err:     ErrStructuralExtraNotAllowed,
		Entity:  "order_item",
		Message: fmt.Sprintf("%s has no compatible variant for the requested structural extras", productName),
		Details: map[string]any{"productName": productName},
		stack:   CaptureStack(3),
	}
}

func NewTablesStillOpenError(count int) error {
	return &DomainError{
		Err:     ErrTablesStillOpen,
		Entity:  "cash_journal",
		Message: fmt.Sprintf("%d table(s) still open", count),
		Details: map[string]any{"count": count},
		stack:   CaptureStack(3),
	}
}

func NewDayAlreadyClosedError(date string) error {
	return &DomainError{
		Err:     ErrDayAlreadyClosed,
		Entity:  "cash_journal",
		Message: fmt.Sprintf("operative day %s already closed", date),
		Details: map[string]any{"date": date},
		stack:   CaptureStack(3),
	}
}

func NewTransientError(cause error) error {
	return &DomainError{
		Err:     ErrTransient,
		Entity:  "transaction",
		Message: "transaction aborted, retry",
		Details: map[string]any{"cause": cause},
		stack:   CaptureStack(3),
	}
}

// Stacker is implemented by any error exposing a formatted call stack, for
// the API layer to pull diagnostics without importing domain internals.
type Stacker interface {
	Stack() []string
}
