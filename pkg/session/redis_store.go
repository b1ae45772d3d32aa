package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "mailtrack:session:"

// RedisStore keeps sessions as JSON values whose key TTL follows ExpiresAt.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a store on client. An empty prefix means DefaultRedisPrefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (s *RedisStore) key(token string) string { return s.prefix + token }

func (s *RedisStore) save(ctx context.Context, sess *Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrSessionExpired
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", ErrStore, err)
	}
	if err := s.client.Set(ctx, s.key(sess.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}
	return s.save(ctx, sess)
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %w", ErrStore, err)
	}
	if sess.IsExpired(s.now()) {
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

func (s *RedisStore) Touch(ctx context.Context, token string, lastActivity, expiresAt time.Time) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	sess.LastActivityAt = lastActivity
	sess.ExpiresAt = expiresAt
	return s.save(ctx, sess)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires keys on its own.
func (s *RedisStore) DeleteExpired(context.Context) error { return nil }
