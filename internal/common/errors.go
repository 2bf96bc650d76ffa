// Package common defines shared constants and sentinel errors used across
// MusicBox server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid credentials")
	ErrorValidation   = errors.New("validation error")

	// Auth transport errors (malformed request, not failed credentials).
	ErrorInvalidAuthHeaderFormat = errors.New("invalid authorization header format")

	// Token lifecycle errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenRevoked   = errors.New("token revoked")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// ValidationError carries a user-facing message for rejected input.
// errors.Is(err, ErrorValidation) matches it.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string        { return e.Msg }
func (e *ValidationError) Is(target error) bool { return target == ErrorValidation }

func NewValidationError(msg string) error { return &ValidationError{Msg: msg} }

// ConflictError carries a user-facing message for uniqueness conflicts.
// errors.Is(err, ErrorAlreadyExists) matches it.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string        { return e.Msg }
func (e *ConflictError) Is(target error) bool { return target == ErrorAlreadyExists }

func NewConflictError(msg string) error { return &ConflictError{Msg: msg} }
