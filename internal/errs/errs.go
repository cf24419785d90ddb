// Package errs holds the error kinds surfaced by the scheduling engine.
// Every typed error matches one sentinel through errors.Is so callers can
// branch on the kind without caring about the details.
package errs

import (
	"errors"
	"fmt"
)

var (
	ErrFormat           = errors.New("invalid format")
	ErrNotFound         = errors.New("not found")
	ErrCapacityExceeded = errors.New("maximum capacity reached")
	ErrStatus           = errors.New("account status forbids action")
	ErrReferentialBlock = errors.New("dependent records exist")
	ErrDuplicate        = errors.New("already exists")
	ErrPersistence      = errors.New("persistence failed")
)

// FormatError reports a field that failed a length, pattern or range check.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format for attribute: %s", e.Field)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// Format is shorthand for &FormatError{Field: field}.
func Format(field string) error {
	return &FormatError{Field: field}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

type CapacityExceededError struct {
	SessionCode string
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("session %s: maximum capacity reached", e.SessionCode)
}

func (e *CapacityExceededError) Is(target error) bool { return target == ErrCapacityExceeded }

// StatusError carries the status message of the account that was refused.
type StatusError struct {
	ID     string
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.ID, e.Status)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

type ReferentialBlockError struct {
	ServiceCode string
}

func (e *ReferentialBlockError) Error() string {
	return fmt.Sprintf("service %s has recorded attendance this week and cannot be removed", e.ServiceCode)
}

func (e *ReferentialBlockError) Is(target error) bool { return target == ErrReferentialBlock }

// DuplicateError rejects a second registration of a member for the same session.
type DuplicateError struct {
	MemberNo    string
	SessionCode string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("member %s is already registered for session %s", e.MemberNo, e.SessionCode)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// Field returns the offending field of a FormatError anywhere in err's chain.
func Field(err error) (string, bool) {
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe.Field, true
	}
	return "", false
}
