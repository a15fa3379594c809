// Package libclient is the Go client for the online-library API: catalog
// browsing, authentication, book reservations, and the administrative CRUD
// surface, with the session and reservation state kept consistent with the
// server across restarts, token expiry, and concurrent actions.
//
// The Client aggregate wires the pieces together with an explicit lifecycle:
//
//	cfg, err := libclient.LoadConfig()
//	if err != nil { ... }
//
//	lib, err := libclient.New(cfg)
//	if err != nil { ... }
//
//	lib.Init(ctx) // one silent re-authentication from the stored token
//
//	if err := lib.Session.Login(ctx, email, password); err != nil { ... }
//	if lib.Reservations.CanReserveMore() {
//	    err = lib.Reservations.Reserve(ctx, bookID)
//	}
//
// The reservation cache follows the session automatically: login, logout and
// the initial resolution each re-synchronize it, so it never serves another
// user's list. No teardown is needed; state dies with the process and only
// the bearer token persists (see pkg/credstore).
package libclient
