package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/mailtrack/modules/dashboard"
	"github.com/dmitrymomot/mailtrack/modules/tracking"
	"github.com/dmitrymomot/mailtrack/modules/ui"
	"github.com/dmitrymomot/mailtrack/pkg/cache"
	"github.com/dmitrymomot/mailtrack/pkg/clientip"
	"github.com/dmitrymomot/mailtrack/pkg/cookie"
	"github.com/dmitrymomot/mailtrack/pkg/environment"
	"github.com/dmitrymomot/mailtrack/pkg/file"
	"github.com/dmitrymomot/mailtrack/pkg/httpserver"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
	"github.com/dmitrymomot/mailtrack/pkg/redis"
	"github.com/dmitrymomot/mailtrack/pkg/requestid"
	"github.com/dmitrymomot/mailtrack/pkg/session"
	"github.com/dmitrymomot/mailtrack/svc/tracker"
)

const uploadsPath = "/uploads/"

// app is the wired dashboard.
type app struct {
	handler  http.Handler
	sessions *session.Manager
	onSweep  func()
	ready    []func(context.Context) error
	cleanup  []func() error
}

func (a *app) Close() error {
	var firstErr error
	for _, fn := range a.cleanup {
		if err := fn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// newApp builds every component from cfg. store overrides SESSION_STORE when set.
func newApp(ctx context.Context, cfg Config, log *slog.Logger, store session.Store) (*app, error) {
	env := environment.Environment(cfg.AppEnv).Normalize()
	a := &app{}

	client, err := tracker.New(cfg.BackendURL,
		tracker.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}),
		tracker.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("tracker client: %w", err)
	}
	a.ready = append(a.ready, client.Healthcheck())

	cookies, err := newCookieManager(cfg.Cookie, env, log)
	if err != nil {
		return nil, fmt.Errorf("cookies: %w", err)
	}

	if store == nil {
		store, err = newSessionStore(ctx, cfg, a)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
	}
	a.sessions = session.New(store, cookies, session.WithConfig(cfg.Session), session.WithLogger(log))

	uploader, files, err := newUploader(ctx, cfg, client)
	if err != nil {
		return nil, fmt.Errorf("uploads: %w", err)
	}

	workspaces := cache.NewRegistry[*dashboard.Workspace](cfg.WorkspaceTTL, cfg.Session.CleanupInterval)
	controllers := cache.NewRegistry[*tracking.Controller](cfg.WorkspaceTTL, cfg.Session.CleanupInterval)
	a.onSweep = func() {
		workspaces.Purge()
		controllers.Purge()
		log.DebugContext(ctx, "page state", logger.Component("dashboard"),
			slog.Int("workspaces", workspaces.Len()),
			slog.Int("controllers", controllers.Len()),
		)
	}

	nav := func(active string) []ui.NavItem {
		return []ui.NavItem{
			{Title: "Dashboard", Href: "/", Active: active == "/"},
			{Title: "Tracking", Href: "/admin", Active: active == "/admin"},
		}
	}

	dash := dashboard.NewHandlers(client, uploader, workspaces,
		dashboard.WithLogger(log),
		dashboard.WithNav(nav("/")...),
		dashboard.WithMaxUploadSize(cfg.UploadMaxSize),
		dashboard.WithRedirectURL(cfg.RedirectURL),
	)
	admin := tracking.NewHandlers(client, controllers,
		tracking.WithLogger(log),
		tracking.WithPrefix("/admin"),
		tracking.WithRefreshInterval(cfg.RefreshInterval),
		tracking.WithNav(nav("/admin")...),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware(cfg.TrustProxy), environment.Middleware(env))

	r.Get("/health/live", httpserver.HealthCheckHandler(log))
	r.Get("/health/ready", httpserver.HealthCheckHandler(log, a.ready...))
	if files != nil {
		r.Handle(uploadsPath+"*", http.StripPrefix(uploadsPath, http.FileServer(http.Dir(files.Dir()))))
	}

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)
		r.Mount("/admin", admin.Routes())
		r.Mount("/", dash.Routes())
	})

	a.handler = r
	return a, nil
}

// newCookieManager signs with COOKIE_SECRETS. Outside production a missing
// secret is replaced by a random one, which invalidates sessions on restart.
func newCookieManager(cfg cookie.Config, env environment.Environment, log *slog.Logger) (*cookie.Manager, error) {
	if len(cfg.SecretList()) == 0 && !env.IsProduction() {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, err
		}
		cfg.Secrets = hex.EncodeToString(b)
		log.Warn("COOKIE_SECRETS is empty, using a random secret", logger.Component("cookie"))
	}
	return cookie.NewFromConfig(cfg, cookie.WithHTTPOnly(true), cookie.WithPath("/"))
}

func newSessionStore(ctx context.Context, cfg Config, a *app) (session.Store, error) {
	switch strings.ToLower(cfg.Session.Store) {
	case "", "memory":
		return session.NewMemoryStore(), nil
	case "redis":
		client, err := redisConnect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		a.cleanup = append(a.cleanup, client.Close)
		a.ready = append(a.ready, redis.Healthcheck(client))
		return session.NewRedisStore(client, cfg.AppName+":session:"), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// newUploader picks the image store. Local storage is also returned so its
// directory can be served.
func newUploader(ctx context.Context, cfg Config, client *tracker.Client) (dashboard.ImageUploader, *file.LocalStorage, error) {
	switch strings.ToLower(cfg.UploadDriver) {
	case "", DriverAPI:
		return dashboard.NewAPIUploader(client), nil, nil
	case DriverLocal:
		storage, err := file.NewLocalStorage(cfg.UploadLocalDir, cfg.UploadPublicURL)
		if err != nil {
			return nil, nil, err
		}
		return dashboard.NewStorageUploader(storage, "images"), storage, nil
	case DriverS3:
		storage, err := file.NewS3Storage(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return dashboard.NewStorageUploader(storage, "images"), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown upload driver %q", cfg.UploadDriver)
	}
}
