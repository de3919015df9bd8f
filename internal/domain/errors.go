package domain

import (
	"fmt"
)

// Common error types
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ErrJobNotFound is returned when a background job is not found
type ErrJobNotFound struct {
	Message string
}

func (e *ErrJobNotFound) Error() string {
	return e.Message
}

// Job-specific errors
type ErrJobExecution struct {
	JobID  string
	Reason string
	Err    error
}

func (e *ErrJobExecution) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("job execution failed [%s]: %s - %v", e.JobID, e.Reason, e.Err)
	}
	return fmt.Sprintf("job execution failed [%s]: %s", e.JobID, e.Reason)
}

func (e *ErrJobExecution) Unwrap() error {
	return e.Err
}

type ErrJobTimeout struct {
	JobID      string
	MaxRuntime int
}

func (e *ErrJobTimeout) Error() string {
	return fmt.Sprintf("job timed out [%s] after %d seconds", e.JobID, e.MaxRuntime)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}
