package economy

import (
	"errors"
	"fmt"
)

// Domain-level error values returned by the economy service.
var (
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrInsufficientItems    = errors.New("insufficient items")
	ErrEntryAlreadyResolved = errors.New("entry already resolved")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidUserID        = errors.New("invalid user id")
	ErrInvalidAdminID       = errors.New("invalid admin id")
	ErrInvalidEntryID       = errors.New("invalid entry id")
	ErrInvalidEntryKind     = errors.New("invalid entry kind")
	ErrInvalidEntryStatus   = errors.New("invalid entry status")
	ErrInvalidItemKind      = errors.New("invalid item kind")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidCatalog       = errors.New("invalid catalog")
	ErrInvalidServiceConfig = errors.New("invalid service config")
	ErrNotEntryOwner        = errors.New("not entry owner")
	ErrCooldownActive       = errors.New("cooldown active")
)

// OperationError wraps a failure with a stable operation code.
type OperationError struct {
	operation string
	subject   string
	code      string
	err       error
}

// Error returns the formatted error message.
func (operationError OperationError) Error() string {
	return fmt.Sprintf("%s.%s.%s: %v", operationError.operation, operationError.subject, operationError.code, operationError.err)
}

// Unwrap returns the underlying error.
func (operationError OperationError) Unwrap() error {
	return operationError.err
}

// Operation returns the operation segment.
func (operationError OperationError) Operation() string {
	return operationError.operation
}

// Subject returns the subject segment.
func (operationError OperationError) Subject() string {
	return operationError.subject
}

// Code returns the stable error code segment.
func (operationError OperationError) Code() string {
	return operationError.code
}

// WrapError wraps an error with operation, subject, and code metadata.
func WrapError(operation string, subject string, code string, err error) error {
	if err == nil {
		return nil
	}
	return OperationError{
		operation: operation,
		subject:   subject,
		code:      code,
		err:       err,
	}
}
