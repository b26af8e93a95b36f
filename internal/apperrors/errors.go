package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrPolicyViolation indicates that a business policy (e.g. a credit limit) would be breached.
// Policy violations are advisory; callers decide whether to proceed.
var ErrPolicyViolation = errors.New("policy violation")

// ErrConsistency indicates that an internal cross-check failed. This is a programming-logic bug,
// never a user error.
var ErrConsistency = errors.New("consistency failure")

// ErrForbidden indicates that the caller may not act on the requested workplace.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in a collaborator (database, cache, ...).
var ErrInternal = errors.New("internal error")

// EntityError carries the failing entity and the attempted value alongside an error kind.
// errors.Is(err, apperrors.ErrNotFound) etc. matches on Kind.
type EntityError struct {
	Kind   error
	Entity string // "party", "sale", "account", ...
	ID     string
	Value  string // attempted value, if any
	Reason string
}

func (e *EntityError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", e.Kind, e.Entity, e.ID)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Value != "" {
		msg += " (value " + e.Value + ")"
	}
	return msg
}

func (e *EntityError) Unwrap() error { return e.Kind }

// NotFound builds a NotFound error for the given entity.
func NotFound(entity, id string) error {
	return &EntityError{Kind: ErrNotFound, Entity: entity, ID: id}
}

// Validation builds a ValidationError for the given entity and attempted value.
func Validation(entity, id, value, reason string) error {
	return &EntityError{Kind: ErrValidation, Entity: entity, ID: id, Value: value, Reason: reason}
}

// PolicyViolation builds a PolicyViolation error.
func PolicyViolation(entity, id, value, reason string) error {
	return &EntityError{Kind: ErrPolicyViolation, Entity: entity, ID: id, Value: value, Reason: reason}
}

// Consistency builds a ConsistencyFailure error.
func Consistency(entity, id, reason string) error {
	return &EntityError{Kind: ErrConsistency, Entity: entity, ID: id, Reason: reason}
}

// AppError wraps an infrastructure error with an HTTP-ish status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped error; when none is set it reports ErrInternal.
func (e *AppError) Unwrap() error {
	if e.Err == nil {
		return ErrInternal
	}
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
