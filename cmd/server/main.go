package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/todo"
	"github.com/dmitrymomot/todo/handlers"
	"github.com/dmitrymomot/todo/middlewares"
	"github.com/dmitrymomot/todo/pkg/config"
	"github.com/dmitrymomot/todo/pkg/cookie"
	"github.com/dmitrymomot/todo/pkg/db"
	"github.com/dmitrymomot/todo/pkg/health"
	"github.com/dmitrymomot/todo/pkg/logger"
	"github.com/dmitrymomot/todo/pkg/session"
	"github.com/dmitrymomot/todo/pkg/token"
	"github.com/dmitrymomot/todo/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log, err := logger.NewFromConfig(cfg.Log, logger.WithExtractors(middlewares.RequestIDExtractor()))
	if err != nil {
		return err
	}
	defer logger.Flush(2 * time.Second)

	tokens, err := token.New(cfg.Token)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}
	sessions := session.NewFromConfig(tokens, cfg.Session)

	ctx := context.Background()
	st, checks, runOpts, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	router := todo.NewRouter(
		todo.WithLogger(log),
		todo.WithCookieManager(cookie.NewFromConfig(cfg.Cookie)),
		todo.WithBodyLimit(cfg.BodyLimit),
		todo.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Logging(log),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.RefreshIdentity(sessions),
		),
		todo.WithHandlers(
			handlers.NewAuth(st, sessions,
				handlers.WithAuthLogger(log),
				handlers.WithPasswordCost(cfg.PasswordCost),
			),
			handlers.NewTasks(st, handlers.WithTaskLogger(log)),
		),
	)
	for _, rt := range router.Routes() {
		log.Debug("route registered", slog.String("method", rt.Method), slog.String("path", rt.Path))
	}

	mux := chi.NewRouter()
	mux.Mount("/health", health.Routes(checks, health.WithLogger(log)))
	mux.Mount("/", router)

	return todo.Run(mux, append(runOpts,
		todo.Address(cfg.Addr),
		todo.Logger(log),
		todo.ShutdownTimeout(cfg.ShutdownTimeout),
	)...)
}

// openStore picks PostgreSQL when a connection string is configured and
// the in-memory store otherwise.
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (store.Store, health.Checks, []todo.RunOption, error) {
	if !cfg.DB.Enabled() {
		log.Warn("DATABASE_CONN_URL is empty, using in-memory store")
		return store.NewMemory(), health.Checks{}, nil, nil
	}

	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(ctx, pool, store.Migrations(), cfg.DB.MigrationsTable, log); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}

	checks := health.Checks{"postgres": health.CheckFunc(db.Healthcheck(pool))}
	opts := []todo.RunOption{todo.ShutdownHook(db.Shutdown(pool))}
	return store.NewPostgres(pool), checks, opts, nil
}
