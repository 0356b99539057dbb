// Package common defines shared constants and sentinel errors used across
// the repository, service and HTTP layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Field detail travels in *ValidationError.
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid, malformed or forged token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Rendering errors (scannable code generation).
	ErrRender = errors.New("render error")
)
