package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/minipost/pkg/blogsdk"
	"github.com/aussiebroadwan/minipost/pkg/credstore"
	"github.com/aussiebroadwan/minipost/pkg/cryptox"
	"github.com/aussiebroadwan/minipost/pkg/httpx"
	"github.com/aussiebroadwan/minipost/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	sealerInfo = "minipost-credentials-v1"
)

// Application owns the client side session and everything it depends on.
// Build it with New, call Start once, and Close when done.
type Application struct {
	cfg    Config
	logger *slog.Logger

	store   credstore.Store
	session *blogsdk.Session
	client  *blogsdk.SDKClient

	notifier  blogsdk.Notifier
	navigator blogsdk.Navigator
}

// Option configures an Application.
type Option func(*Application)

// WithNotifier routes session notices (logout, expiry) to n.
func WithNotifier(n blogsdk.Notifier) Option {
	return func(a *Application) { a.notifier = n }
}

// WithNavigator routes post-login navigation to n.
func WithNavigator(n blogsdk.Navigator) Option {
	return func(a *Application) { a.navigator = n }
}

// WithLogger replaces the logger built from Config.
func WithLogger(l *slog.Logger) Option {
	return func(a *Application) { a.logger = l }
}

// New creates an Application with all dependencies initialized.
func New(cfg Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slogx.New(slogx.Config{
			Service: "minipost",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		})
	}

	store, err := openStore(cfg, app.logger)
	if err != nil {
		return nil, err
	}
	app.store = store

	app.initSDK()
	return app, nil
}

func (app *Application) initSDK() {
	sessionOpts := []blogsdk.SessionOption{
		blogsdk.WithLogger(app.logger),
		blogsdk.WithClockSkew(app.cfg.ClockSkew),
	}
	if app.notifier != nil {
		sessionOpts = append(sessionOpts, blogsdk.WithNotifier(app.notifier))
	}
	app.session = blogsdk.NewSession(app.store, sessionOpts...)

	// Outbound chain: request-id + logging -> per-host rate limit -> network.
	transport := slogx.NewTransport(
		httpx.NewRateLimitTransport(http.DefaultTransport, app.cfg.RateLimit),
		app.logger,
	)

	clientOpts := []blogsdk.Option{
		blogsdk.WithDoer(&http.Client{Timeout: app.cfg.HTTPTimeout, Transport: transport}),
		blogsdk.WithClientLogger(app.logger),
	}
	if app.navigator != nil {
		clientOpts = append(clientOpts, blogsdk.WithNavigator(app.navigator))
	}
	app.client = blogsdk.NewSDKClient(app.cfg.APIBaseURL, app.session, clientOpts...)
}

// Start restores the previous session. A broken credential store is logged
// and the application carries on with an in-memory session.
func (app *Application) Start(ctx context.Context) error {
	err := app.client.Resume(ctx)

	var storageErr *credstore.StorageError
	switch {
	case err == nil:
	case errors.As(err, &storageErr):
		app.logger.WarnContext(ctx, "continuing without stored credentials", "error", err)
	case errors.Is(err, blogsdk.ErrSessionExpired):
		// Already cleared and announced by the session.
	default:
		return fmt.Errorf("resume session: %w", err)
	}

	if app.session.IsLoggedIn() {
		app.logger.DebugContext(ctx, "session restored",
			"user", app.session.Identity().Username,
			"expires_at", app.session.ExpiresAt(),
		)
	}
	return nil
}

// Close releases the credential store.
func (app *Application) Close() error {
	if app.store == nil {
		return nil
	}
	return app.store.Close()
}

func (app *Application) Client() *blogsdk.SDKClient { return app.client }
func (app *Application) Session() *blogsdk.Session  { return app.session }
func (app *Application) Logger() *slog.Logger       { return app.logger }
func (app *Application) Config() Config             { return app.cfg }

func openStore(cfg Config, logger *slog.Logger) (credstore.Store, error) {
	switch cfg.CredentialStore {
	case StoreMemory:
		return credstore.NewMemoryStore(), nil

	case StoreSQLite:
		path, err := credstore.ResolvePath(cfg.CredentialPath, "credentials.db")
		if err != nil {
			return nil, err
		}
		store, err := credstore.NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		if err := store.ApplyMigrations(); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to migrate credential store: %w", err)
		}
		logger.Debug("credential store opened", "backend", StoreSQLite, "path", path)
		return store, nil

	default:
		path, err := credstore.ResolvePath(cfg.CredentialPath, "credentials.json")
		if err != nil {
			return nil, err
		}

		key, err := cfg.masterKey()
		if err != nil {
			return nil, err
		}

		var opts []credstore.FileOption
		if len(key) > 0 {
			sealer, err := cryptox.NewSealer(key, sealerInfo)
			if err != nil {
				return nil, err
			}
			opts = append(opts, credstore.WithSealer(sealer))
		}

		logger.Debug("credential store opened", "backend", StoreFile, "path", path, "sealed", len(opts) > 0)
		return credstore.NewFileStore(path, opts...), nil
	}
}
