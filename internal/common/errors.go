// Package common defines shared constants and sentinel errors used across
// the store, service and transport layers of itemkeeper. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorOwnerNotFound = errors.New("owner not found")

	// Boundary validation errors.
	ErrorValidation = errors.New("validation error")

	// Auth errors. ErrMissingToken, ErrInvalidToken and ErrTokenExpired mean the
	// credential itself is unusable; ErrUnresolvableToken means it is well formed
	// but names nobody we know.
	ErrMissingToken      = errors.New("missing token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrUnresolvableToken = errors.New("user not found")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// IsAuthError reports whether err belongs to the authentication family and
// should be surfaced as "unauthenticated".
func IsAuthError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUnresolvableToken) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrRefreshTokenExpired) ||
		errors.Is(err, ErrorUnauthorized)
}
