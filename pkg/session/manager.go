package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Isma450/django-library-management/pkg/apiclient"
	"github.com/Isma450/django-library-management/pkg/credstore"
	"github.com/Isma450/django-library-management/pkg/token"
)

// Manager owns the session state machine. All methods are safe for
// concurrent use.
type Manager struct {
	api        *apiclient.Client
	store      credstore.Store
	adminEmail string
	logger     *slog.Logger

	mu          sync.RWMutex
	state       State
	user        *apiclient.User
	token       string
	subscribers []Subscriber
}

// Option configures manager creation.
type Option func(*Manager)

// WithAdminEmail sets the administrator address IsAdmin compares against.
// Comes from deployment configuration, never hardcoded.
func WithAdminEmail(email string) Option {
	return func(m *Manager) { m.adminEmail = email }
}

// WithLogger attaches a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a session manager in StateInitializing.
// Panics on nil dependencies to fail fast on wiring mistakes.
func New(api *apiclient.Client, store credstore.Store, opts ...Option) *Manager {
	if api == nil {
		panic("session: api client is required")
	}
	if store == nil {
		panic("session: credential store is required")
	}

	m := &Manager{
		api:    api,
		store:  store,
		state:  StateInitializing,
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Subscribe registers a subscriber for identity changes. Subscribers are
// notified in registration order, once per transition. Registration after
// Init still sees every subsequent transition.
func (m *Manager) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}

	m.mu.Lock()
	m.subscribers = append(m.subscribers, fn)
	m.mu.Unlock()
}

// Init resolves the initial state from the stored token: the one silent
// re-authentication attempt of the process lifetime. Absent or expired tokens
// resolve to Anonymous without a network call; a present token is validated
// against the server and any failure degrades to Anonymous silently. Calling
// Init after the state has resolved is a no-op.
func (m *Manager) Init(ctx context.Context) {
	m.mu.Lock()
	if m.state != StateInitializing {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	stored, err := m.store.Get()
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.WarnContext(ctx, "reading stored token failed", slog.Any("error", err))
		}
		m.transition(StateAnonymous, nil, "")
		return
	}

	if token.IsExpired(stored) {
		m.logger.DebugContext(ctx, "stored token expired, discarding")
		_ = m.store.Clear()
		m.transition(StateAnonymous, nil, "")
		return
	}

	m.api.SetToken(stored)

	user, err := m.api.Me(ctx)
	if err != nil {
		// Expected path: revoked token, unreachable server. Degrade silently.
		m.logger.DebugContext(ctx, "silent re-authentication failed", slog.Any("error", err))
		_ = m.store.Clear()
		m.api.ClearToken()
		m.transition(StateAnonymous, nil, "")
		return
	}

	m.logger.InfoContext(ctx, "session restored", slog.String("email", user.Email))
	m.transition(StateAuthenticated, &user, stored)
}

// Login authenticates with the token-issuance endpoint and resolves the user
// profile. On any failure the session state is left unchanged and the error
// wraps ErrAuthenticationFailed, carrying the server's message when present.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}

	prevToken := m.currentToken()

	access, err := m.api.IssueToken(ctx, email, password)
	if err != nil {
		return m.authFailure(ctx, prevToken, err)
	}

	if _, err := token.Decode(access); err != nil {
		return m.authFailure(ctx, prevToken, err)
	}

	m.api.SetToken(access)

	user, err := m.api.Me(ctx)
	if err != nil {
		return m.authFailure(ctx, prevToken, err)
	}

	// Persistence failure is not an authentication failure: the session is
	// live, it just will not survive a restart.
	if err := m.store.Set(access); err != nil {
		m.logger.WarnContext(ctx, "persisting token failed", slog.Any("error", err))
	}

	m.logger.InfoContext(ctx, "login succeeded", slog.String("email", user.Email))
	m.transition(StateAuthenticated, &user, access)
	return nil
}

// authFailure restores the previous bearer credential and classifies err.
func (m *Manager) authFailure(ctx context.Context, prevToken string, err error) error {
	if prevToken != "" {
		m.api.SetToken(prevToken)
	} else {
		m.api.ClearToken()
	}

	m.logger.DebugContext(ctx, "login failed", slog.Any("error", err))

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Errorf("%w: %s", ErrAuthenticationFailed, apiErr.Message)
	}
	return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
}

// Register creates an account. The new account is not signed in; the caller
// follows up with Login, mirroring the backend's signup flow.
func (m *Manager) Register(ctx context.Context, params apiclient.RegisterParams) error {
	switch {
	case params.Email == "":
		return ErrEmailRequired
	case params.Password == "":
		return ErrPasswordRequired
	case params.FirstName == "":
		return ErrFirstNameRequired
	case params.LastName == "":
		return ErrLastNameRequired
	}

	if err := m.api.Register(ctx, params); err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return fmt.Errorf("%w: %s", ErrRegistrationFailed, apiErr.Message)
		}
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	return nil
}

// Logout clears the stored token, detaches the bearer credential, and
// transitions to Anonymous. Never fails, makes no network call, and repeated
// calls are no-ops after the first.
func (m *Manager) Logout() {
	m.mu.RLock()
	alreadyAnonymous := m.state == StateAnonymous
	m.mu.RUnlock()

	if err := m.store.Clear(); err != nil {
		m.logger.Warn("clearing stored token failed", slog.Any("error", err))
	}
	m.api.ClearToken()

	if alreadyAnonymous {
		return
	}

	m.logger.Info("logged out")
	m.transition(StateAnonymous, nil, "")
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// CurrentUser returns the authenticated user, if any.
func (m *Manager) CurrentUser() (apiclient.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return apiclient.User{}, false
	}
	return *m.user, true
}

// Identity returns the current resolved identity.
func (m *Manager) Identity() Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Identity{State: m.state, User: m.user}
}

// IsAdmin reports whether the authenticated user is the configured
// administrator.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state == StateAuthenticated &&
		m.user != nil &&
		m.adminEmail != "" &&
		m.user.Email == m.adminEmail
}

func (m *Manager) currentToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// transition replaces the session wholesale and notifies subscribers, in
// registration order, after the new state is visible.
func (m *Manager) transition(state State, user *apiclient.User, tok string) {
	m.mu.Lock()
	m.state = state
	m.user = user
	m.token = tok
	subscribers := slices.Clone(m.subscribers)
	m.mu.Unlock()

	identity := Identity{State: state, User: user}
	for _, fn := range subscribers {
		fn(identity)
	}
}
