// Package reservation caches the authenticated user's reservation list and
// the eligibility rules derived from it.
//
// The cache is a mirror of the server's authoritative list, never a source of
// truth: every refresh replaces the items wholesale, and mutations
// (Reserve, Cancel) re-synchronize instead of patching locally, so the local
// view can never drift from the backend.
//
// The cache subscribes to the session manager at construction. Whenever the
// resolved identity changes it refreshes itself, and an anonymous identity
// empties the list without a network call.
// The list therefore never carries another user's reservations.
//
// Overlapping refreshes are coalesced with a generation counter: only the
// most recently started refresh may land its result, and identity changes
// bump the generation so an in-flight fetch for a previous user is discarded.
//
// Quota and uniqueness are enforced server-side; CanReserveMore and
// IsReserved exist for UI responsiveness only. Server rejections are
// classified by matching the backend's error text (see classify.go).
package reservation
