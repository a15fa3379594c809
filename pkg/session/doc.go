// Package session owns the authenticated-user identity of the client process.
//
// The Manager is a three-state machine:
//
//	Initializing ──Init──▶ Authenticated(user) | Anonymous
//	Anonymous    ──Login──▶ Authenticated(user)
//	Authenticated ──Logout──▶ Anonymous
//
// Init performs the one silent re-authentication attempt of the process
// lifetime: a stored, unexpired token is attached as the bearer credential and
// validated against GET /users/me/. Any failure on that path degrades to
// Anonymous without surfacing an error; an expired or revoked token is an
// expected state, not an exceptional one.
//
// Every state transition notifies subscribers exactly once, synchronously, in
// registration order, after the transition has completed. The reservation
// cache subscribes so it can never serve another user's list.
//
// Invariant: the user is present if and only if a non-expired token was
// validated against the server in the current process lifetime. Only the
// token persists across runs; the user object is always re-fetched.
package session
