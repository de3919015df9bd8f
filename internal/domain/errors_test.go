package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrNotFound_Error(t *testing.T) {
	err := &ErrNotFound{
		Entity: "lead",
		ID:     "12345",
	}

	expected := "lead not found with ID: 12345"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestErrJobExecution_Error(t *testing.T) {
	// Test with nil wrapped error
	err1 := &ErrJobExecution{
		JobID:  "job123",
		Reason: "processor not found",
	}

	expected1 := "job execution failed [job123]: processor not found"
	if err1.Error() != expected1 {
		t.Errorf("Expected error message '%s', got '%s'", expected1, err1.Error())
	}

	// Test with wrapped error
	underlyingErr := fmt.Errorf("database connection failed")
	err2 := &ErrJobExecution{
		JobID:  "job456",
		Reason: "database error",
		Err:    underlyingErr,
	}

	expected2 := "job execution failed [job456]: database error - database connection failed"
	if err2.Error() != expected2 {
		t.Errorf("Expected error message '%s', got '%s'", expected2, err2.Error())
	}

	// Test error unwrapping
	if !errors.Is(err2, underlyingErr) {
		t.Error("errors.Is() failed to find the wrapped error")
	}
}

func TestErrJobTimeout_Error(t *testing.T) {
	err := &ErrJobTimeout{
		JobID:      "job789",
		MaxRuntime: 60,
	}

	expected := "job timed out [job789] after 60 seconds"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestErrorTypeAssertion(t *testing.T) {
	var err error

	err = &ErrNotFound{Entity: "job", ID: "123"}
	if _, ok := err.(*ErrNotFound); !ok {
		t.Error("Type assertion for ErrNotFound failed")
	}

	err = &ErrJobExecution{JobID: "456", Reason: "test"}
	if _, ok := err.(*ErrJobExecution); !ok {
		t.Error("Type assertion for ErrJobExecution failed")
	}

	// Negative test - wrong type
	if _, ok := err.(*ErrNotFound); ok {
		t.Error("Type assertion incorrectly succeeded for wrong error type")
	}
}

func TestValidationError_Error(t *testing.T) {
	err := NewValidationError("limit must be positive")

	expected := "validation error: limit must be positive"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	if _, ok := err.(ValidationError); !ok {
		t.Error("Type assertion for ValidationError failed")
	}
}
