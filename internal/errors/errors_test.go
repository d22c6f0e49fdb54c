package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("Message is required")

	if err.Error() != "Message is required" {
		t.Errorf("Error() = %s, want %s", err.Error(), "Message is required")
	}
	if !errors.Is(err, ErrValidation) {
		t.Error("Expected error to match ErrValidation")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Expected error not to match ErrNotFound")
	}

	wrapped := fmt.Errorf("submit: %w", err)
	var target *ValidationError
	if !errors.As(wrapped, &target) {
		t.Fatal("Expected errors.As to find ValidationError")
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("session", "abc")

	expected := "session not found: abc"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
	if !errors.Is(fmt.Errorf("lookup: %w", err), ErrNotFound) {
		t.Error("Expected wrapped error to match ErrNotFound")
	}
	if NewNotFoundError("session", "").Error() != "session not found" {
		t.Errorf("unexpected message without id: %s", NewNotFoundError("session", "").Error())
	}
}

func TestExternalServiceError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewExternalServiceError("completion", cause)

	if !errors.Is(err, ErrExternalService) {
		t.Error("Expected error to match ErrExternalService")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("Expected error not to match ErrValidation")
	}

	expected := "completion request failed: connection reset"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}
}
