// Package db provides PostgreSQL helpers on top of pgxpool: pool setup with
// startup retries, goose migrations from an embedded filesystem, a
// readiness check, a shutdown hook and a transaction helper.
//
// # Configuration
//
//	DATABASE_CONN_URL            PostgreSQL URL; empty disables the database
//	DATABASE_MIGRATIONS_TABLE    goose version table (default: schema_migrations)
//	DATABASE_MAX_CONNS           pool size (default: 10)
//	DATABASE_MIN_CONNS           idle connections kept open (default: 2)
//	DATABASE_HEALTHCHECK_PERIOD  pool health check interval (default: 1m)
//	DATABASE_MAX_CONN_IDLE_TIME  idle connection lifetime (default: 10m)
//	DATABASE_MAX_CONN_LIFETIME   connection lifetime (default: 30m)
//	DATABASE_RETRY_ATTEMPTS      connect attempts (default: 3)
//	DATABASE_RETRY_INTERVAL      base delay between attempts (default: 2s)
//
// # Usage
//
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, store.Migrations(), cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
//	checks := health.Checks{"postgres": db.Healthcheck(pool)}
//	todo.Run(router, todo.ShutdownHook(db.Shutdown(pool)))
//
// WithTx commits when the callback succeeds and rolls back otherwise:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "DELETE FROM tasks WHERE user_id = $1", id)
//		return err
//	})
package db
