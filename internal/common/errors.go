// Package common defines shared constants and sentinel errors used across
// the PADIPS client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorSessionExpired signals that a user identity was required at the
	// point of use but no session is available.
	ErrorSessionExpired = errors.New("session expired")

	// Validation errors surfaced inline by the CLI.
	ErrorValidation = errors.New("validation error")
)
