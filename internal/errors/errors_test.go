package errors

import (
	"errors"
	"testing"
)

func TestNotFoundError_Creation(t *testing.T) {
	message := "part with id 42 not found"
	err := NewNotFoundError(message)

	if err.Message != message {
		t.Errorf("expected message %q, got %q", message, err.Message)
	}
}

func TestNotFoundError_IsNotFoundError(t *testing.T) {
	err := NewNotFoundError("test not found")

	notFoundErr, ok := IsNotFoundError(err)
	if !ok {
		t.Fatalf("expected IsNotFoundError to return true")
	}
	if notFoundErr.Message != "test not found" {
		t.Errorf("unexpected message %q", notFoundErr.Message)
	}
}

func TestNotFoundError_IsNotFoundError_WithOtherError(t *testing.T) {
	err := errors.New("plain error")

	notFoundErr, ok := IsNotFoundError(err)
	if ok {
		t.Errorf("expected IsNotFoundError to return false")
	}
	if notFoundErr != nil {
		t.Errorf("expected nil error, got %v", notFoundErr)
	}
}

func TestNotFoundError_ErrorInterface(t *testing.T) {
	var err error = NewNotFoundError("entity not found")

	if err.Error() != "entity not found" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}

func TestConflictError_Creation(t *testing.T) {
	err := NewConflictError("part already exists")

	if err.Message != "part already exists" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if _, ok := IsConflictError(err); !ok {
		t.Errorf("expected IsConflictError to return true")
	}
}

func TestConflictError_WithOtherError(t *testing.T) {
	if _, ok := IsConflictError(errors.New("plain error")); ok {
		t.Errorf("expected IsConflictError to return false")
	}
}

func TestValidationError_Creation(t *testing.T) {
	err := NewValidationError("invalid payload", ValidationDetail{
		Field:   "price",
		Message: "price must be a positive number",
	})

	if err.Message != "invalid payload" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if len(err.Details) != 1 || err.Details[0].Field != "price" {
		t.Errorf("unexpected details %v", err.Details)
	}
	if _, ok := IsValidationError(err); !ok {
		t.Errorf("expected IsValidationError to return true")
	}
}

func TestInternalError_Creation(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := NewInternalError("querying parts", cause)

	want := "querying parts: driver: bad connection"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestInternalError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError("wrapper", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to match the cause")
	}
}

func TestInternalError_NilCause(t *testing.T) {
	err := NewInternalError("standalone failure", nil)

	if err.Error() != "standalone failure" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}
