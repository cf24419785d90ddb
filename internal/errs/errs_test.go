package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"format", Format("comment"), ErrFormat},
		{"not found", NotFound("session", "0005512"), ErrNotFound},
		{"capacity", &CapacityExceededError{SessionCode: "0005589"}, ErrCapacityExceeded},
		{"status", &StatusError{ID: "111444777", Status: "Suspended"}, ErrStatus},
		{"block", &ReferentialBlockError{ServiceCode: "0000001"}, ErrReferentialBlock},
		{"duplicate", &DuplicateError{MemberNo: "111444777", SessionCode: "0005589"}, ErrDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("engine: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", wrapped, tt.sentinel)
			}
			if errors.Is(wrapped, ErrPersistence) {
				t.Errorf("%v unexpectedly matches ErrPersistence", wrapped)
			}
		})
	}
}

func TestField(t *testing.T) {
	field, ok := Field(fmt.Errorf("create: %w", Format("memberNo")))
	if !ok || field != "memberNo" {
		t.Errorf("Field() = %q, %v; want memberNo, true", field, ok)
	}
	if _, ok := Field(NotFound("service", "x")); ok {
		t.Error("Field() on NotFoundError reported ok")
	}
}
