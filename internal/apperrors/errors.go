package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the actor lacks the capability for the operation.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the resource's current state.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected failure that should not be surfaced in detail.
var ErrInternal = errors.New("internal error")

// ErrRateNotFound indicates no exchange rate resolves for a currency/date.
// Entry creation must fail on this; the engine never defaults to rate 1.0.
var ErrRateNotFound = errors.New("no applicable exchange rate")

// ErrForbiddenTransition indicates an entry status transition that the state
// machine or the actor's capabilities do not permit. Logged as a
// security-relevant audit event, distinct from ordinary transitions.
var ErrForbiddenTransition = errors.New("forbidden status transition")

// ErrOverpayment indicates a payment that would push paid_amount past
// due_amount without an explicit override.
var ErrOverpayment = errors.New("payment exceeds due amount")

// AppError wraps an underlying error with an HTTP-ish status code and a
// message safe to surface to callers.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationError creates an AppError that matches errors.Is(_, ErrValidation).
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}
