package libclient

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Isma450/django-library-management/pkg/apiclient"
	"github.com/Isma450/django-library-management/pkg/catalog"
	"github.com/Isma450/django-library-management/pkg/credstore"
	"github.com/Isma450/django-library-management/pkg/logger"
	"github.com/Isma450/django-library-management/pkg/reservation"
	"github.com/Isma450/django-library-management/pkg/session"
)

// Client aggregates the library client's managers. State is owned by the
// managers themselves; consumers read through them and mutate only via their
// operations.
type Client struct {
	API          *apiclient.Client
	Session      *session.Manager
	Reservations *reservation.Cache
	Catalog      *catalog.Service
}

type options struct {
	httpClient *http.Client
	store      credstore.Store
	logger     *slog.Logger
}

// Option overrides a default dependency.
type Option func(*options)

// WithHTTPClient replaces the transport's HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithCredentialStore replaces the file-based token store.
func WithCredentialStore(s credstore.Store) Option {
	return func(o *options) {
		if s != nil {
			o.store = s
		}
	}
}

// WithLogger replaces the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New wires the full client from configuration. The reservation cache is
// subscribed to the session before Init runs, so the initial identity
// resolution already synchronizes it.
func New(cfg Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		format := logger.Format(cfg.LogFormat)
		if format == "" {
			format = logger.FormatText
		}
		log = logger.New(
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithFormat(format),
		)
	}

	apiOpts := []apiclient.Option{
		apiclient.WithTimeout(cfg.HTTPTimeout),
		apiclient.WithLogger(log.With(slog.String("component", "apiclient"))),
	}
	if o.httpClient != nil {
		apiOpts = append(apiOpts, apiclient.WithHTTPClient(o.httpClient))
	}

	api, err := apiclient.New(cfg.BaseURL, apiOpts...)
	if err != nil {
		return nil, err
	}

	store := o.store
	if store == nil {
		path, err := defaultCredentialsPath(cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		store = credstore.NewFileStore(path)
	}

	sess := session.New(api, store,
		session.WithAdminEmail(cfg.AdminEmail),
		session.WithLogger(log.With(slog.String("component", "session"))),
	)

	reservations := reservation.New(api, sess,
		reservation.WithLogger(log.With(slog.String("component", "reservation"))),
	)

	return &Client{
		API:          api,
		Session:      sess,
		Reservations: reservations,
		Catalog:      catalog.New(api),
	}, nil
}

// Init performs the one silent re-authentication attempt of the process
// lifetime. Idempotent; the session resolves to Authenticated or Anonymous
// and the reservation cache follows through its subscription.
func (c *Client) Init(ctx context.Context) {
	c.Session.Init(ctx)
}

func defaultCredentialsPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("libclient: resolve credentials path: %w", err)
	}
	return filepath.Join(dir, "library-client", "credentials.yaml"), nil
}
