package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates a conflict with existing data
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeInternal indicates an internal server error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeConfiguration indicates missing or invalid process configuration
	ErrorTypeConfiguration ErrorType = "CONFIGURATION"

	// ErrorTypeTransientGenerator indicates the text generator failed in a retryable way
	ErrorTypeTransientGenerator ErrorType = "TRANSIENT_GENERATOR"

	// ErrorTypeMalformedOutput indicates generator output that could not be turned into a plan
	ErrorTypeMalformedOutput ErrorType = "MALFORMED_OUTPUT"

	// ErrorTypeEmptyPlan indicates a plan with no days reached persistence
	ErrorTypeEmptyPlan ErrorType = "EMPTY_PLAN"

	// ErrorTypePersistence indicates a transactional write failed
	ErrorTypePersistence ErrorType = "PERSISTENCE"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
	}
}

// NewTransientGeneratorError creates a new retryable generator error
func NewTransientGeneratorError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTransientGenerator,
		Message: message,
		Err:     err,
	}
}

// NewMalformedOutputError creates a new malformed generator output error
func NewMalformedOutputError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeMalformedOutput,
		Message: message,
	}
}

// NewEmptyPlanError creates a new empty plan error
func NewEmptyPlanError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeEmptyPlan,
		Message: message,
	}
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypePersistence,
		Message: message,
		Err:     err,
	}
}
