// Package apiclient is the HTTP transport for the library backend.
//
// It wraps a pooled net/http client with the cross-cutting concerns every
// call needs: the bearer credential, JSON encoding, an X-Request-ID header
// for correlation, and translation of the backend's error bodies into typed
// errors. Higher-level packages (session, reservation, catalog) never touch
// net/http directly.
//
// Error contract: transport-level failures wrap ErrNetwork; any non-2xx
// response becomes an *APIError carrying the HTTP status and the
// human-readable message extracted from the Django REST Framework error body
// (`detail`, `error`, `non_field_errors`, or a bare string array).
//
// The bearer token is mutable at runtime: the session manager attaches it
// after login and detaches it on logout. All methods are safe for concurrent
// use.
package apiclient
