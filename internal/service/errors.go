package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated is returned for missing, malformed, or expired tokens.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrStorageFailure is returned when the media backend is unreachable.
	// It never implies a rollback of an already-committed database mutation.
	ErrStorageFailure = errors.New("media storage failure")
)

// ValidationError marks client input that was rejected before any state
// change. Its message names the offending fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// missingFields builds a ValidationError naming every absent required field.
func missingFields(fields []string) error {
	return &ValidationError{Message: fmt.Sprintf("required fields missing: %s", strings.Join(fields, ", "))}
}
