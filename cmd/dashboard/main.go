// Command dashboard serves the email tracking dashboard in front of the tracking backend.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/mailtrack/pkg/clientip"
	"github.com/dmitrymomot/mailtrack/pkg/config"
	"github.com/dmitrymomot/mailtrack/pkg/environment"
	"github.com/dmitrymomot/mailtrack/pkg/httpserver"
	"github.com/dmitrymomot/mailtrack/pkg/logger"
	"github.com/dmitrymomot/mailtrack/pkg/redis"
	"github.com/dmitrymomot/mailtrack/pkg/requestid"
	"github.com/dmitrymomot/mailtrack/pkg/session"
)

// redisConnect is swapped in tests.
var redisConnect = func(ctx context.Context, cfg redis.Config) (*goredis.Client, error) {
	return redis.Connect(ctx, cfg)
}

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(environment.Environment(cfg.AppEnv), cfg.AppName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			session.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("dashboard stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("cleanup failed", logger.Error(err))
		}
	}()

	server := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx, a.handler) })
	g.Go(func() error { return a.sessions.RunCleanup(ctx, a.onSweep) })
	return g.Wait()
}
