package redis

import "errors"

var (
	ErrEmptyURL   = errors.New("redis: REDIS_URL is empty")
	ErrInvalidURL = errors.New("redis: invalid connection url")
	// ErrNotReady is returned when no ping succeeded within the connect budget.
	ErrNotReady  = errors.New("redis: server not ready")
	ErrUnhealthy = errors.New("redis: ping failed")
)
