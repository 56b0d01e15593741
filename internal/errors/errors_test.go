package errors

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Field: "title", Message: "must not be empty"}
	expected := "validation error on field 'title': must not be empty"
	if err.Error() != expected {
		t.Errorf("Expected %s, got %s", expected, err.Error())
	}
}

func TestTransitionError_Error(t *testing.T) {
	err := TransitionError{From: "resolved", To: "bidding"}
	expected := "cannot transition from 'resolved' to 'bidding'"
	if err.Error() != expected {
		t.Errorf("Expected %s, got %s", expected, err.Error())
	}
}

func TestDatabaseError(t *testing.T) {
	inner := errors.New("connection refused")
	err := DatabaseError{Operation: "upsert", Err: inner}

	expected := "database error during upsert: connection refused"
	if err.Error() != expected {
		t.Errorf("Expected %s, got %s", expected, err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Expected DatabaseError to unwrap to inner error")
	}
}

func TestMultiError(t *testing.T) {
	var multi MultiError

	if multi.HasErrors() {
		t.Error("empty MultiError should report no errors")
	}
	if multi.Error() != "no errors" {
		t.Errorf("Expected 'no errors', got %s", multi.Error())
	}

	multi.Add(nil)
	if multi.HasErrors() {
		t.Error("adding nil must not record an error")
	}

	multi.Add(errors.New("first"))
	if multi.Error() != "first" {
		t.Errorf("Expected 'first', got %s", multi.Error())
	}

	multi.Add(errors.New("second"))
	expected := "first (and 1 more errors)"
	if multi.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, multi.Error())
	}
}
