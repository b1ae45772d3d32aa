package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/pkg/session"
)

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, ""), mr
}

func TestStores(t *testing.T) {
	t.Parallel()

	stores := map[string]func(t *testing.T) session.Store{
		"memory": func(*testing.T) session.Store { return session.NewMemoryStore() },
		"redis": func(t *testing.T) session.Store {
			s, _ := newRedisStore(t)
			return s
		},
	}

	for name, newStore := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(t, err, session.ErrSessionNotFound)

			assert.ErrorIs(t, store.Create(ctx, &session.Session{}), session.ErrInvalidSession)

			now := time.Now()
			s := session.NewSession("tok", now, time.Hour)
			require.NoError(t, store.Create(ctx, s))

			got, err := store.Get(ctx, "tok")
			require.NoError(t, err)
			assert.Equal(t, s.ID, got.ID)
			assert.WithinDuration(t, s.ExpiresAt, got.ExpiresAt, time.Millisecond)

			later := now.Add(time.Minute)
			require.NoError(t, store.Touch(ctx, "tok", later, later.Add(time.Hour)))
			got, err = store.Get(ctx, "tok")
			require.NoError(t, err)
			assert.WithinDuration(t, later, got.LastActivityAt, time.Millisecond)

			assert.ErrorIs(t, store.Touch(ctx, "missing", later, later), session.ErrSessionNotFound)

			require.NoError(t, store.Delete(ctx, "tok"))
			_, err = store.Get(ctx, "tok")
			assert.ErrorIs(t, err, session.ErrSessionNotFound)
			require.NoError(t, store.DeleteExpired(ctx))
		})
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := session.NewMemoryStore()
	require.NoError(t, store.Create(ctx, session.NewSession("old", time.Now().Add(-2*time.Hour), time.Hour)))
	require.NoError(t, store.Create(ctx, session.NewSession("old2", time.Now().Add(-2*time.Hour), time.Hour)))
	require.NoError(t, store.Create(ctx, session.NewSession("fresh", time.Now(), time.Hour)))

	_, err := store.Get(ctx, "old")
	assert.ErrorIs(t, err, session.ErrSessionExpired)

	require.NoError(t, store.DeleteExpired(ctx))
	assert.Equal(t, 1, store.Len())
}

func TestRedisStoreTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store, mr := newRedisStore(t)
	require.NoError(t, store.Create(ctx, session.NewSession("tok", time.Now(), time.Hour)))

	key := session.DefaultRedisPrefix + "tok"
	assert.True(t, mr.Exists(key))
	ttl := mr.TTL(key)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	mr.FastForward(2 * time.Hour)
	_, err := store.Get(ctx, "tok")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	err = store.Create(ctx, session.NewSession("past", time.Now().Add(-2*time.Hour), time.Hour))
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	t.Parallel()

	store, mr := newRedisStore(t)
	require.NoError(t, mr.Set(session.DefaultRedisPrefix+"bad", "{not json"))

	_, err := store.Get(context.Background(), "bad")
	assert.ErrorIs(t, err, session.ErrStore)
}
