package session

import (
	"context"
	"time"
)

// Store persists sessions by token.
type Store interface {
	Create(ctx context.Context, s *Session) error
	// Get returns ErrSessionNotFound or ErrSessionExpired when the token is unusable.
	Get(ctx context.Context, token string) (*Session, error)
	// Touch slides the expiry of an existing session.
	Touch(ctx context.Context, token string, lastActivity, expiresAt time.Time) error
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
