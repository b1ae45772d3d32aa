package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailtrack/pkg/environment"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Parallel()

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
	assert.Equal(t, "error", logger.Error(errors.New("boom")).Key)

	assert.Equal(t, "tracking_id", logger.TrackingID("abc").Key)
	assert.True(t, logger.TrackingID("").Equal(slog.Attr{}))
	assert.Equal(t, int64(3), logger.Page(3).Value.Int64())
	assert.Equal(t, "bob", logger.Search("bob").Value.String())
	assert.Equal(t, int64(5), logger.Recipients(5).Value.Int64())
	assert.Equal(t, "session_id", logger.SessionID("s1").Key)
	assert.Equal(t, "req-1", logger.RequestID("req-1").Value.String())
	assert.Equal(t, "dashboard", logger.Component("dashboard").Value.String())
}

func TestWithEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("development is text with debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment(environment.Development, "svc"), logger.WithOutput(buf))
		log.Debug("msg")
		assert.Contains(t, buf.String(), "DEBUG")
		assert.Contains(t, buf.String(), "service=svc")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("production is json without debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := logger.New(logger.WithEnvironment("prod", "svc"), logger.WithOutput(buf))
		log.Debug("hidden")
		assert.Empty(t, buf.String())

		log.Info("msg")
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "svc", entry["service"])
		assert.Equal(t, "production", entry["env"])
	})
}

func TestWithContextExtractors(t *testing.T) {
	t.Parallel()

	type key string
	k := key("id")
	extractor := func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(k).(string); ok {
			return slog.String("id", v), true
		}
		return slog.Attr{}, false
	}

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithFormat(logger.FormatJSON),
		logger.WithOutput(buf),
		logger.WithContextExtractors(extractor, nil),
	)
	log.With(slog.String("static", "yes")).InfoContext(context.WithValue(context.Background(), k, "123"), "msg")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "123", entry["id"])
	assert.Equal(t, "yes", entry["static"])
}

func TestWithFormatPanicsOnUnknown(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { logger.New(logger.WithFormat("xml")) })
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	log := logger.Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}
