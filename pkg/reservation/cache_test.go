package reservation_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Isma450/django-library-management/pkg/apiclient"
	"github.com/Isma450/django-library-management/pkg/credstore"
	"github.com/Isma450/django-library-management/pkg/reservation"
	"github.com/Isma450/django-library-management/pkg/session"
)

// fakeSession is a controllable SessionSource.
type fakeSession struct {
	mu   sync.Mutex
	id   session.Identity
	subs []session.Subscriber
}

func newFakeSession(id session.Identity) *fakeSession {
	return &fakeSession{id: id}
}

func authenticated() session.Identity {
	return session.Identity{
		State: session.StateAuthenticated,
		User:  &apiclient.User{ID: 3, Email: "reader@example.com"},
	}
}

func anonymous() session.Identity {
	return session.Identity{State: session.StateAnonymous}
}

func (f *fakeSession) Identity() session.Identity {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id
}

func (f *fakeSession) Subscribe(fn session.Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, fn)
}

func (f *fakeSession) resolve(id session.Identity) {
	f.mu.Lock()
	f.id = id
	subs := append([]session.Subscriber(nil), f.subs...)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(id)
	}
}

func reservationJSON(ids ...int64) string {
	items := make([]map[string]any, 0, len(ids))
	for i, id := range ids {
		items = append(items, map[string]any{
			"id":          id,
			"user":        3,
			"book":        40 + id,
			"reserved_at": fmt.Sprintf("2024-03-0%dT10:00:00Z", i+1),
		})
	}
	body, _ := json.Marshal(map[string]any{"reservations": items})
	return string(body)
}

func newCacheClient(t *testing.T, handler http.Handler) *apiclient.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := apiclient.New(server.URL)
	require.NoError(t, err)
	return client
}

func TestRefresh_AnonymousSkipsNetwork(t *testing.T) {
	t.Parallel()

	requests := 0
	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		requests++
		w.Write([]byte(reservationJSON(1)))
	})

	cache := reservation.New(newCacheClient(t, r), newFakeSession(anonymous()))

	require.NoError(t, cache.Refresh(context.Background()))
	assert.Empty(t, cache.Items())
	assert.Zero(t, requests)
}

func TestRefresh_ReplacesWholesale(t *testing.T) {
	t.Parallel()

	body := reservationJSON(1, 2)
	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(body))
	})

	cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))

	require.NoError(t, cache.Refresh(context.Background()))
	items := cache.Items()
	require.Len(t, items, 2)
	// Server response order is preserved, not client-sorted.
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)

	body = reservationJSON(7)
	require.NoError(t, cache.Refresh(context.Background()))
	items = cache.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
}

func TestRefresh_FailureKeepsItems(t *testing.T) {
	t.Parallel()

	failing := false
	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		if failing {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"boom"}`))
			return
		}
		w.Write([]byte(reservationJSON(1)))
	})

	cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))
	require.NoError(t, cache.Refresh(context.Background()))
	require.Len(t, cache.Items(), 1)

	failing = true
	err := cache.Refresh(context.Background())
	assert.ErrorIs(t, err, reservation.ErrRefreshFailed)
	assert.Len(t, cache.Items(), 1)
	assert.Error(t, cache.LastError())

	failing = false
	require.NoError(t, cache.Refresh(context.Background()))
	assert.NoError(t, cache.LastError())
}

func TestEligibilityPredicates(t *testing.T) {
	t.Parallel()

	var body string
	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(body))
	})

	cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))

	tests := []struct {
		size      int
		canMore   bool
		remaining int
	}{
		{size: 0, canMore: true, remaining: 3},
		{size: 1, canMore: true, remaining: 2},
		{size: 2, canMore: true, remaining: 1},
		{size: 3, canMore: false, remaining: 0},
		{size: 4, canMore: false, remaining: -1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d reservations", tt.size), func(t *testing.T) {
			ids := make([]int64, tt.size)
			for i := range ids {
				ids[i] = int64(i + 1)
			}
			body = reservationJSON(ids...)

			require.NoError(t, cache.Refresh(context.Background()))
			assert.Equal(t, tt.size, cache.Count())
			assert.Equal(t, tt.canMore, cache.CanReserveMore())
			assert.Equal(t, tt.remaining, cache.RemainingQuota())
		})
	}
}

func TestIsReserved(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		// Book ids are 40+reservation id with reservationJSON.
		w.Write([]byte(reservationJSON(1, 2)))
	})

	cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))

	// Empty list: nothing is reserved.
	assert.False(t, cache.IsReserved(41))

	require.NoError(t, cache.Refresh(context.Background()))
	assert.True(t, cache.IsReserved(41))
	assert.True(t, cache.IsReserved(42))
	assert.False(t, cache.IsReserved(99))
}

func TestReserve_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "quota exceeded",
			status: http.StatusBadRequest,
			body:   `["You already have 3 active reservations. Please return a book before reserving another."]`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, reservation.ErrQuotaExceeded)
			},
		},
		{
			name:   "already reserved",
			status: http.StatusBadRequest,
			body:   `["You have already reserved this book."]`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, reservation.ErrAlreadyReserved)
			},
		},
		{
			name:   "unknown server message",
			status: http.StatusBadRequest,
			body:   `{"non_field_errors":["Ce livre n'est pas disponible pour la réservation."]}`,
			check: func(t *testing.T, err error) {
				var resErr *reservation.Error
				require.ErrorAs(t, err, &resErr)
				assert.Contains(t, resErr.Message, "pas disponible")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := chi.NewRouter()
			r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
				w.Write([]byte(reservationJSON(1, 2, 3)))
			})
			r.Post("/books/{id}/reserver/", func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))
			require.NoError(t, cache.Refresh(context.Background()))

			err := cache.Reserve(context.Background(), 42)
			require.Error(t, err)
			tt.check(t, err)

			// Failed mutations never touch the cached list.
			assert.Equal(t, 3, cache.Count())
		})
	}
}

func TestReserve_NetworkErrorPassesThrough(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	client, err := apiclient.New(server.URL)
	require.NoError(t, err)
	server.Close()

	cache := reservation.New(client, newFakeSession(authenticated()))
	err = cache.Reserve(context.Background(), 42)
	assert.ErrorIs(t, err, apiclient.ErrNetwork)
}

func TestReserve_SuccessRefreshes(t *testing.T) {
	t.Parallel()

	reserved := false
	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		if reserved {
			w.Write([]byte(reservationJSON(1, 2)))
			return
		}
		w.Write([]byte(reservationJSON(1)))
	})
	r.Post("/books/{id}/reserver/", func(w http.ResponseWriter, req *http.Request) {
		reserved = true
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"You have successfully reserved the book: Germinal."}`))
	})

	cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))
	require.NoError(t, cache.Refresh(context.Background()))
	require.Equal(t, 1, cache.Count())

	require.NoError(t, cache.Reserve(context.Background(), 42))
	assert.Equal(t, 2, cache.Count())
}

func TestCancel(t *testing.T) {
	t.Parallel()

	t.Run("success drops the reservation", func(t *testing.T) {
		t.Parallel()

		cancelled := false
		r := chi.NewRouter()
		r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
			if cancelled {
				w.Write([]byte(reservationJSON(2)))
				return
			}
			w.Write([]byte(reservationJSON(7, 2)))
		})
		r.Delete("/reservations/{id}/", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "7", chi.URLParam(req, "id"))
			cancelled = true
			w.Write([]byte(`{"message":"Reservation successfully canceled."}`))
		})

		cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))
		require.NoError(t, cache.Refresh(context.Background()))
		require.Equal(t, 2, cache.Count())

		require.NoError(t, cache.Cancel(context.Background(), 7))

		items := cache.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].ID)
	})

	t.Run("failure keeps items and classifies", func(t *testing.T) {
		t.Parallel()

		r := chi.NewRouter()
		r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(reservationJSON(7)))
		})
		r.Delete("/reservations/{id}/", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Not found."}`))
		})

		cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))
		require.NoError(t, cache.Refresh(context.Background()))

		err := cache.Cancel(context.Background(), 7)
		require.ErrorIs(t, err, reservation.ErrCancelFailed)
		assert.Contains(t, err.Error(), "Not found")
		assert.Equal(t, 1, cache.Count())
	})
}

func TestIdentityChanges(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(reservationJSON(1, 2)))
	})

	sess := newFakeSession(session.Identity{State: session.StateInitializing})
	cache := reservation.New(newCacheClient(t, r), sess)

	// Initial resolution to authenticated populates the cache with no
	// explicit Refresh call.
	sess.resolve(authenticated())
	assert.Equal(t, 2, cache.Count())

	// Logout empties it, again without an explicit call.
	sess.resolve(anonymous())
	assert.Empty(t, cache.Items())
	assert.NoError(t, cache.LastError())
}

func TestRefresh_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls int
	var mu sync.Mutex

	r := chi.NewRouter()
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			close(firstEntered)
			<-releaseFirst
			w.Write([]byte(reservationJSON(1)))
			return
		}
		w.Write([]byte(reservationJSON(2, 3)))
	})

	cache := reservation.New(newCacheClient(t, r), newFakeSession(authenticated()))

	done := make(chan error, 1)
	go func() {
		done <- cache.Refresh(context.Background())
	}()

	<-firstEntered

	// A second refresh starts while the first is still in flight; the second
	// is newer, so its result must win even though the first completes last.
	require.NoError(t, cache.Refresh(context.Background()))
	require.Equal(t, 2, cache.Count())

	close(releaseFirst)
	require.NoError(t, <-done)

	// The first call's late response was discarded.
	items := cache.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	assert.Equal(t, int64(3), items[1].ID)
}

func TestEndToEnd_LogoutEmptiesCache(t *testing.T) {
	t.Parallel()

	// Full wiring: real session manager, real cache, fake backend.
	accessToken := "x.eyJ1c2VyX2lkIjozLCJleHAiOjQ4NzE2MjQ4MzJ9.y" // exp 2124, user 3

	r := chi.NewRouter()
	r.Post("/token/", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access": accessToken})
	})
	r.Get("/users/me/", func(w http.ResponseWriter, req *http.Request) {
		json.NewEncoder(w).Encode(apiclient.User{ID: 3, Email: "reader@example.com"})
	})
	r.Get("/my-reservations/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(reservationJSON(1)))
	})

	client := newCacheClient(t, r)
	mgr := session.New(client, credstore.NewMemoryStore())
	cache := reservation.New(client, mgr)

	mgr.Init(context.Background())
	require.NoError(t, mgr.Login(context.Background(), "reader@example.com", "Secret1!"))
	require.Equal(t, 1, cache.Count())

	mgr.Logout()
	assert.Empty(t, cache.Items())
}
