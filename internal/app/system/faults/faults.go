// internal/app/system/faults/faults.go

// Package faults defines the typed, recoverable outcomes the core returns
// to callers. Handlers map each fault to an HTTP status; the core itself
// never formats user-facing text or logs.
package faults

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an entity id has no record. Stores
	// convert every mongo.ErrNoDocuments into this before any field of
	// the missing record could be touched.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyMember is returned when a user already appears as head or
	// member of an organization.
	ErrAlreadyMember = errors.New("already in an organization")

	// ErrAlreadyInProject is returned when an email already appears in the
	// target project's participant lists.
	ErrAlreadyInProject = errors.New("already added in this project")

	// ErrLimitExceeded is returned when an email has reached the
	// per-user project ceiling.
	ErrLimitExceeded = errors.New("user already involved in the maximum number of projects")

	// ErrUnauthorized is returned by the permission gate on denial.
	ErrUnauthorized = errors.New("not authorized")

	// ErrRoleResolution is returned when a commenter cannot be found in
	// either participant list of the issue's owning project.
	ErrRoleResolution = errors.New("commenter is not a participant of the project")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Required builds a ValidationError for an empty required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Msg: "is required"}
}

// Invalid builds a ValidationError with a custom message.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
