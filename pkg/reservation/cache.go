package reservation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Isma450/django-library-management/pkg/apiclient"
	"github.com/Isma450/django-library-management/pkg/session"
)

// Quota is the maximum number of simultaneous active reservations per user.
// The server enforces it; the client mirrors it for responsiveness.
const Quota = 3

// SessionSource is the slice of the session manager the cache depends on.
type SessionSource interface {
	Identity() session.Identity
	Subscribe(session.Subscriber)
}

// Cache mirrors the authenticated user's reservation list.
// All methods are safe for concurrent use.
type Cache struct {
	api    *apiclient.Client
	sess   SessionSource
	logger *slog.Logger

	mu         sync.RWMutex
	items      []apiclient.Reservation
	loading    bool
	lastErr    error
	generation uint64
}

// Option configures cache creation.
type Option func(*Cache)

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a cache bound to the given session. The cache subscribes to
// identity changes immediately, so constructing it before session.Init means
// the initial resolution already triggers the first synchronization.
// Panics on nil dependencies to fail fast on wiring mistakes.
func New(api *apiclient.Client, sess SessionSource, opts ...Option) *Cache {
	if api == nil {
		panic("reservation: api client is required")
	}
	if sess == nil {
		panic("reservation: session source is required")
	}

	c := &Cache{
		api:    api,
		sess:   sess,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	sess.Subscribe(c.onIdentity)

	return c
}

// onIdentity reacts to session transitions: authenticated identities trigger
// a full re-fetch, anonymous ones empty the list locally. Identity-triggered
// refreshes are bounded by the transport's timeout rather than a caller
// context, since they run from the session's notification path.
func (c *Cache) onIdentity(id session.Identity) {
	if id.Authenticated() {
		if err := c.Refresh(context.Background()); err != nil {
			c.logger.Warn("refresh after identity change failed", slog.Any("error", err))
		}
		return
	}

	c.mu.Lock()
	c.items = nil
	c.lastErr = nil
	c.loading = false
	c.generation++ // an in-flight fetch for the previous user may not land
	c.mu.Unlock()
}

// Refresh replaces the cached list with the server's. When the session is
// not authenticated it empties the list and returns without a network call.
// Overlapping calls are coalesced: each call takes a generation, and a
// response only lands while its generation is still the newest.
func (c *Cache) Refresh(ctx context.Context) error {
	if !c.sess.Identity().Authenticated() {
		c.mu.Lock()
		c.items = nil
		c.lastErr = nil
		c.loading = false
		c.generation++
		c.mu.Unlock()
		return nil
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.mu.Unlock()

	items, err := c.api.MyReservations(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A newer refresh (or an identity change) superseded this one;
		// its outcome no longer describes the current user.
		return nil
	}

	c.loading = false
	if err != nil {
		c.lastErr = err
		return fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	c.items = items
	c.lastErr = nil
	return nil
}

// Reserve places a reservation for the given book and re-synchronizes on
// success. Callers should check CanReserveMore first for responsiveness, but
// the server remains the authority: rejections come back classified as
// ErrQuotaExceeded, ErrAlreadyReserved, a pass-through network error, or
// *Error with the server's message. The cached list is untouched on failure.
func (c *Cache) Reserve(ctx context.Context, bookID int64) error {
	message, err := c.api.ReserveBook(ctx, bookID)
	if err != nil {
		return classify(err)
	}

	c.logger.Info("book reserved",
		slog.Int64("book_id", bookID),
		slog.String("message", message),
	)

	if err := c.Refresh(ctx); err != nil {
		// The reservation itself succeeded; the stale list heals on the
		// next refresh.
		c.logger.Warn("refresh after reserve failed", slog.Any("error", err))
	}

	return nil
}

// Cancel deletes a reservation and re-synchronizes on success. On failure
// the cached list is untouched and the error wraps ErrCancelFailed.
func (c *Cache) Cancel(ctx context.Context, reservationID int64) error {
	if err := c.api.CancelReservation(ctx, reservationID); err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrCancelFailed, apiErr.Message)
		}
		return fmt.Errorf("%w: %w", ErrCancelFailed, err)
	}

	c.logger.Info("reservation cancelled", slog.Int64("reservation_id", reservationID))

	if err := c.Refresh(ctx); err != nil {
		c.logger.Warn("refresh after cancel failed", slog.Any("error", err))
	}

	return nil
}

// Items returns a copy of the cached list, in the server's order.
func (c *Cache) Items() []apiclient.Reservation {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Count returns the number of cached reservations.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// CanReserveMore reports whether the user is below the reservation quota.
func (c *Cache) CanReserveMore() bool {
	return c.Count() < Quota
}

// IsReserved reports whether any cached reservation points at the book.
func (c *Cache) IsReserved(bookID int64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.ContainsFunc(c.items, func(r apiclient.Reservation) bool {
		return r.Book.ID == bookID
	})
}

// RemainingQuota returns how many reservations the user may still place.
// Not clamped at zero; the server is authoritative if the list ever exceeds
// the quota.
func (c *Cache) RemainingQuota() int {
	return Quota - c.Count()
}

// Loading reports whether a refresh is in flight.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the most recent refresh failure, cleared by the next
// successful refresh or identity change.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
