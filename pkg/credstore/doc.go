// Package credstore persists the bearer token between client runs.
//
// The token lives in a small YAML credentials file with restrictive
// permissions. The file is not a security boundary, only a convenience so a
// restart can attempt silent re-authentication.
//
// Two implementations are provided: FileStore for real use and MemoryStore
// for tests and embedding. Both perform whole-value overwrites, so there is
// no partial-write window to coordinate around.
package credstore
