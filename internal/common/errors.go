// Package common defines shared sentinel errors and small utility helpers
// used across TaskFlow components. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Store-level errors. Store operations return exactly one of these
	// (possibly wrapped); they are never raised as panics.
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// Session restore errors (invalid or stale persisted token).
	ErrInvalidToken = errors.New("invalid token")
)
