package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/mailtrack/pkg/cookie"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
)

// Manager binds sessions to browsers through a signed cookie.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	cfg     Config
	log     *slog.Logger
	now     func() time.Time
}

type Option func(*Manager)

func WithConfig(cfg Config) Option {
	return func(m *Manager) { m.cfg = cfg }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// New creates a Manager. A nil store means a MemoryStore; a nil cookie
// manager panics since tokens would travel unsigned.
func New(store Store, cookies *cookie.Manager, opts ...Option) *Manager {
	if cookies == nil {
		panic("session: cookie manager is required")
	}
	if store == nil {
		store = NewMemoryStore()
	}
	m := &Manager{
		store:   store,
		cookies: cookies,
		cfg:     DefaultConfig(),
		log:     slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Ensure returns the request's session, creating one and setting the cookie
// when it is missing, expired or forged.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	s, err := m.Get(ctx, r)
	if err == nil {
		m.touch(ctx, s)
		return s, nil
	}
	if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	s = NewSession(token, m.now(), m.cfg.IdleTimeout)
	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	m.cookies.SetSigned(w, m.cfg.CookieName, token, cookie.WithMaxAge(int(m.cfg.IdleTimeout.Seconds())))
	return s, nil
}

// Get loads the session named by the request cookie.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.cookies.GetSigned(r, m.cfg.CookieName)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return m.store.Get(ctx, token)
}

// Destroy removes the session and its cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.cookies.GetSigned(r, m.cfg.CookieName); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			return err
		}
	}
	m.cookies.Delete(w, m.cfg.CookieName)
	return nil
}

// touch slides the expiry, at most once per ActivityUpdateThreshold.
func (m *Manager) touch(ctx context.Context, s *Session) {
	now := m.now()
	if now.Sub(s.LastActivityAt) < m.cfg.ActivityUpdateThreshold {
		return
	}
	s.LastActivityAt = now
	s.ExpiresAt = now.Add(m.cfg.IdleTimeout)
	if err := m.store.Touch(ctx, s.Token, s.LastActivityAt, s.ExpiresAt); err != nil {
		m.log.WarnContext(ctx, "failed to update session activity", logger.Error(err), logger.Component("session"))
	}
}

// Middleware ensures every request carries a session in its context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Ensure(r.Context(), w, r)
		if err != nil {
			m.log.ErrorContext(r.Context(), "failed to ensure session", logger.Error(err), logger.Component("session"))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RunCleanup deletes expired sessions every CleanupInterval until ctx ends.
// onSweep, when set, runs after every successful sweep.
func (m *Manager) RunCleanup(ctx context.Context, onSweep func()) error {
	if m.cfg.CleanupInterval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := m.store.DeleteExpired(ctx); err != nil {
				m.log.WarnContext(ctx, "session cleanup failed", logger.Error(err), logger.Component("session"))
				continue
			}
			if onSweep != nil {
				onSweep()
			}
		}
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
