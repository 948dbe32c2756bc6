package domain

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	openapierrors "github.com/go-openapi/errors"
	"github.com/go-openapi/validate"
)

var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrBackend         = errors.New("backend request failed")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// User-facing validation messages.
const (
	MsgAllFieldsRequired = "All fields are required!"
	MsgCampusRequired    = "Campus is required!"
	MsgFillRequired      = "Please fill in all required fields."
	MsgPasswordMismatch  = "Passwords do not match"
	MsgQuadIncomplete    = "Each of the four points needs both a latitude and a longitude"
	MsgDocumentsRequired = "All rider documents are required!"
)

// ValidationError is a client-side validation failure. Message is the single
// notification shown to the user; Field and Inline carry an optional message
// rendered next to one input.
type ValidationError struct {
	Level   Level
	Message string
	Field   string
	Inline  string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return e.Cause }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Notification() Notification {
	level := e.Level
	if level == "" {
		level = LevelError
	}
	return Notification{Level: level, Message: e.Message}
}

// BackendError is a non-2xx answer from the campus-ride API.
type BackendError struct {
	Operation string
	Status    int
	Message   string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Operation, e.Status, e.Message)
}

func (e *BackendError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return ErrBackend
	}
}

func incompleteQuad() *ValidationError {
	return &ValidationError{
		Level:   LevelError,
		Message: MsgAllFieldsRequired,
		Field:   "coordinates",
		Inline:  MsgQuadIncomplete,
	}
}

func invalidQuad(idx int, axis string, cause error) *ValidationError {
	name := "latitude"
	if axis == AxisLng {
		name = "longitude"
	}
	msg := fmt.Sprintf("%s %s must be a number", capitalize(Corner(idx).String()), name)
	return &ValidationError{
		Level:   LevelError,
		Message: msg,
		Field:   "coordinates",
		Inline:  msg,
		Cause:   cause,
	}
}

func notANumber(label string, cause error) *ValidationError {
	return &ValidationError{
		Level:   LevelError,
		Message: label + " must be a number",
		Cause:   cause,
	}
}

// missingFields runs a presence check over the named fields and returns the
// composite of every failure, or nil.
func missingFields(d Draft, fields ...string) error {
	var errs []error
	for _, f := range fields {
		if verr := validate.RequiredString(f, "body", d.Trimmed(f)); verr != nil {
			errs = append(errs, verr)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return openapierrors.CompositeValidationError(errs...)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
