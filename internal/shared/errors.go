package shared

import "errors"

// Sentinel errors shared across the auth and gate layers. Handlers map
// these onto HTTP statuses; services return them unwrapped so callers
// can match with errors.Is.
var (
	// ErrNotFound reports a missing row or resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers every login failure, so responses
	// never reveal whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCSRFTokenMissing reports a mutating request without a token.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch reports a token that failed verification.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)
