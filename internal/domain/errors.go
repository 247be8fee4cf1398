package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Sentinel errors for errors.Is() checking.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
)

// Stable machine-readable error codes carried by domain errors so API layers
// can map them to status codes without parsing message text.
const (
	CodeDomainError       = "DOMAIN_ERROR"
	CodeEntityNotFound    = "ENTITY_NOT_FOUND"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeInvalidTransition = "INVALID_STATUS_TRANSITION"
	CodeAccessDenied      = "ACCESS_DENIED"
	CodeConflict          = "CONFLICT"
)

// Coded is implemented by every domain error type. ErrorCode returns the
// stable code for the error; unknown errors map to CodeDomainError.
type Coded interface {
	error
	ErrorCode() string
}

// Code extracts the machine-readable code from an error chain.
// Errors raised outside the domain taxonomy report CodeDomainError.
func Code(err error) string {
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	return CodeDomainError
}

// ValidationError provides programmatic access to field-level validation
// failures. Use errors.Is(err, ErrValidation) for simple checks, or
// errors.As(err, &verr) to access verr.Fields for per-field details.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ErrorCode implements Coded.
func (e *ValidationError) ErrorCode() string {
	return CodeValidationFailed
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// NotFoundError reports a lookup miss for a specific entity. It carries the
// entity type name and the requested id so callers can distinguish a miss
// from a validation failure without string matching.
type NotFoundError struct {
	EntityType string
	EntityID   uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %q not found", e.EntityType, e.EntityID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ErrorCode implements Coded.
func (e *NotFoundError) ErrorCode() string {
	return CodeEntityNotFound
}

// NewNotFoundError builds a NotFoundError for the given entity type and id.
func NewNotFoundError(entityType string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{EntityType: entityType, EntityID: id}
}

// AccessDeniedError reports that a user lacks the permission required for an
// operation on a shared list.
type AccessDeniedError struct {
	TodoListID uuid.UUID
	UserID     uuid.UUID
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("user %q has no access to todo list %q", e.UserID, e.TodoListID)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrForbidden
}

// ErrorCode implements Coded.
func (e *AccessDeniedError) ErrorCode() string {
	return CodeAccessDenied
}

// ConflictError reports an operation that would violate a uniqueness rule,
// such as sharing a list twice with the same user.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict.Error(), e.Message)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ErrorCode implements Coded.
func (e *ConflictError) ErrorCode() string {
	return CodeConflict
}
