package session

import "github.com/Isma450/django-library-management/pkg/apiclient"

// State names the session's position in its lifecycle.
type State string

const (
	// StateInitializing holds only during the initial silent
	// re-authentication attempt; the session never returns to it.
	StateInitializing State = "initializing"

	// StateAuthenticated means a non-expired token was validated against the
	// server in this process lifetime.
	StateAuthenticated State = "authenticated"

	// StateAnonymous means no valid session exists.
	StateAnonymous State = "anonymous"
)

// Identity is the resolved session identity delivered to subscribers on every
// state transition. User is nil unless State is StateAuthenticated.
type Identity struct {
	State State
	User  *apiclient.User
}

// Authenticated reports whether the identity carries a signed-in user.
func (i Identity) Authenticated() bool {
	return i.State == StateAuthenticated && i.User != nil
}

// Subscriber receives the resolved identity after each state transition.
// Called synchronously; long-running work belongs in the subscriber's own
// goroutine.
type Subscriber func(Identity)
