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

// ErrDuplicateKeyCode and ErrDuplicateKeyRole narrow ErrDuplicate to the
// unique key that was violated on the accounts table. Both satisfy
// errors.Is(err, ErrDuplicate).
var (
	ErrDuplicateKeyCode = fmt.Errorf("%w: account code", ErrDuplicate)
	ErrDuplicateKeyRole = fmt.Errorf("%w: payment role", ErrDuplicate)
)

// ErrConflict indicates that the operation conflicts with the current state of a resource.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with an internal code and message.
// Repositories use it to attach context without losing the cause.
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

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
