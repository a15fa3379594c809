package credstore

import "errors"

var (
	// ErrNotFound indicates no token is currently persisted.
	ErrNotFound = errors.New("credstore: no stored token")

	// ErrEmptyToken indicates Set was called with an empty string.
	ErrEmptyToken = errors.New("credstore: empty token")
)
