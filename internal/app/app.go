// ABOUTME: Application context wiring configuration, session, API client and services
// ABOUTME: One App per process replaces module-level singletons; commands and the TUI receive it explicitly

package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/markalston/academia-console/internal/apiclient"
	"github.com/markalston/academia-console/internal/apperror"
	"github.com/markalston/academia-console/internal/config"
	"github.com/markalston/academia-console/internal/navigation"
	"github.com/markalston/academia-console/internal/recent"
	"github.com/markalston/academia-console/internal/services"
	"github.com/markalston/academia-console/internal/session"
	"github.com/markalston/academia-console/internal/validate"
)

type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Session  *session.Store
	History  *navigation.History
	API      *apiclient.Client
	Services *services.Services
	Recent   *recent.Users

	storage session.Storage
}

type Option func(*buildOptions)

type buildOptions struct {
	logger        *slog.Logger
	storage       session.Storage
	clientOptions []apiclient.Option
	sessionOpts   []session.Option
}

func WithLogger(l *slog.Logger) Option { return func(o *buildOptions) { o.logger = l } }

// WithStorage replaces the bbolt session file (tests use MemoryStorage).
func WithStorage(s session.Storage) Option { return func(o *buildOptions) { o.storage = s } }

// WithClientOptions appends options to the API client.
func WithClientOptions(opts ...apiclient.Option) Option {
	return func(o *buildOptions) { o.clientOptions = append(o.clientOptions, opts...) }
}

// WithSessionOptions appends options to the session store.
func WithSessionOptions(opts ...session.Option) Option {
	return func(o *buildOptions) { o.sessionOpts = append(o.sessionOpts, opts...) }
}

// New builds the application and restores any persisted session. A stored
// session that no longer decodes is cleared, not reported as an error.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	o := buildOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	storage := o.storage
	if storage == nil {
		bolt, err := session.OpenBolt(cfg.SessionPath())
		if err != nil {
			return nil, fmt.Errorf("opening session storage: %w", err)
		}
		storage = bolt
	}

	history := &navigation.History{}
	store := session.New(storage, history, append([]session.Option{session.WithLogger(o.logger)}, o.sessionOpts...)...)
	if err := store.Restore(); err != nil {
		o.logger.Debug("No usable stored session", "error", err)
	}

	clientOpts := []apiclient.Option{
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(o.logger),
		apiclient.WithAllProxy(cfg.AllProxy),
		apiclient.WithMiddleware(
			apiclient.RequestID(),
			apiclient.LogRequests(o.logger),
			apiclient.BearerAuth(store),
		),
	}
	api := apiclient.New(cfg.APIURL, append(clientOpts, o.clientOptions...)...)

	return &App{
		Config:   cfg,
		Logger:   o.logger,
		Session:  store,
		History:  history,
		API:      api,
		Services: services.New(api, services.WithLogger(o.logger)),
		Recent:   recent.New(cfg.DataDir),
		storage:  storage,
	}, nil
}

// Login validates the credentials, authenticates against the API and
// starts the session.
func (a *App) Login(ctx context.Context, req session.LoginRequest) error {
	if err := validate.Struct(req); err != nil {
		var fields validate.FieldErrors
		if errors.As(err, &fields) {
			return apperror.Wrap("auth.login", apperror.Validation(fields))
		}
		return err
	}

	resp, err := a.API.Login(ctx, req)
	if err != nil {
		a.Logger.Warn("Login failed", "op", "auth.login", "username", req.Username, "error", err)
		return apperror.Wrap("auth.login", err)
	}
	if err := a.Session.LoginWithResponse(*resp); err != nil {
		a.Logger.Warn("Login response rejected", "op", "auth.login", "error", err)
		return apperror.Wrap("auth.login", err)
	}

	if err := a.Recent.Add(req.Username); err != nil {
		a.Logger.Debug("Could not remember username", "error", err)
	}
	a.Logger.Info("Logged in", "username", resp.Username, "role", resp.Role)
	return nil
}

// Logout ends the session and clears durable storage.
func (a *App) Logout() {
	a.Session.Logout()
}

// Close releases the session storage and background workers.
func (a *App) Close() error {
	a.Services.Close()
	if c, ok := a.storage.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
