package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is an anonymous browser session.
type Session struct {
	ID             uuid.UUID `json:"id"`
	Token          string    `json:"token"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewSession creates a session that expires ttl after now.
func NewSession(token string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

func (s *Session) IsExpired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}
