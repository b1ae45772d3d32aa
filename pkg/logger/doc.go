// Package logger builds the dashboard's slog loggers.
//
// New assembles a JSON or text handler, attaches static attributes and wraps it
// with a decorator that copies request-scoped values (request id, environment)
// from the context of every record:
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "mailtrack"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "tracking page loaded", logger.Page(2), logger.Search("bob"))
//
// The attribute helpers keep key names consistent across packages.
package logger
