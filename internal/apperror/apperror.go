// Package apperror defines the application's error taxonomy.
//
// Every layer below the handlers returns these domain errors instead of HTTP
// status codes. The handlers translate them at the edge (see handler/response.go
// for the JSON mapping and the QA handlers for the redirect mapping). This keeps
// services and repositories protocol-agnostic — the same error works for an HTML
// page, a JSON API, or a test.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // sentinel category, checked with errors.Is
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// DuplicateUser is returned when registration finds an existing user with the
// same name. The check happens via a read before the insert, so two concurrent
// registrations can still both pass it — that race is a known property of the
// schema (no UNIQUE constraint on users.name).
func DuplicateUser(name string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("user %q already exists", name),
		Field:   "name",
	}
}

// UnknownUser is the login failure for a name with no matching user.
// Kept distinct from WrongPassword — both surface as different messages
// on the login page.
func UnknownUser(name string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: fmt.Sprintf("no user named %q", name),
		Field:   "name",
	}
}

// WrongPassword is the login failure for a bad password on a known user.
func WrongPassword() *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: "incorrect password",
		Field:   "password",
	}
}

// AuthenticationFailed is the member API's rejection for missing or wrong
// HTTP Basic credentials. Handlers map it to 403 with a JSON body.
func AuthenticationFailed() *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: "Authentication failed!",
	}
}
