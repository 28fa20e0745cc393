// Package logger builds structured slog loggers with context extraction
// and optional Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithService("todo"),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "task created", slog.Int64("task_id", id))
//
// Output is JSON on stdout unless WithFormat(FormatText) or WithWriter
// say otherwise.
//
// # Context Extractors
//
// A ContextExtractor pulls one attribute out of a context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every record, so values attached to the request
// context after the logger was built still show up.
//
// # Configuration
//
// NewFromConfig reads a Config loaded from the environment:
//
//	LOG_LEVEL           debug, info, warn or error (default: info)
//	LOG_FORMAT          json or text (default: json)
//	APP_NAME            value of the "service" attribute (default: todo)
//	SENTRY_DSN          enables Sentry when set
//	SENTRY_ENVIRONMENT  Sentry environment (default: production)
//
// With Sentry enabled, errors create issues and warnings are stored as
// logs. Call Flush before exit so buffered events are delivered.
//
// NewNope returns a logger that discards everything and is the default of
// every component that accepts a logger.
package logger
