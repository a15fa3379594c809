package session

import "errors"

// Pre-request validation errors, detected before any network call.
var (
	ErrEmailRequired     = errors.New("session: email is required")
	ErrPasswordRequired  = errors.New("session: password is required")
	ErrFirstNameRequired = errors.New("session: first name is required")
	ErrLastNameRequired  = errors.New("session: last name is required")
)

var (
	// ErrAuthenticationFailed wraps any login failure: rejected credentials,
	// transport failure, or a malformed token response. The server-provided
	// message is included when present.
	ErrAuthenticationFailed = errors.New("session: authentication failed")

	// ErrRegistrationFailed wraps a rejected sign-up attempt.
	ErrRegistrationFailed = errors.New("session: registration failed")
)
