package session

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/mailtrack/pkg/logger"
)

type sessionContextKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	return s, ok && s != nil
}

// IDFromContext returns the session id as a string, or "".
func IDFromContext(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.ID.String()
	}
	return ""
}

// LoggerExtractor adds "session_id" to log records.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := IDFromContext(ctx); id != "" {
			return logger.SessionID(id), true
		}
		return slog.Attr{}, false
	}
}
