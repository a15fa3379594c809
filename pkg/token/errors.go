package token

import "errors"

var (
	// ErrMalformedToken indicates the token is not a three-segment JWT or its
	// payload segment is not valid base64url-encoded JSON.
	ErrMalformedToken = errors.New("token: malformed token")

	// ErrEmptyToken indicates an empty string was passed where a token was expected.
	ErrEmptyToken = errors.New("token: empty token")
)
