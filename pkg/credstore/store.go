package credstore

// Store abstracts bearer-token persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the stored token, or ErrNotFound when nothing is persisted.
	// Never makes a network call.
	Get() (string, error)

	// Set persists the token, replacing any previous value.
	Set(token string) error

	// Clear removes the persisted token. Clearing an empty store is a no-op.
	Clear() error
}
