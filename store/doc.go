// Package store persists accounts and tasks.
//
// Memory keeps everything in process and backs local runs without a
// database. Postgres uses a pgx pool; apply Migrations with db.Migrate
// before use. Both satisfy Store and behave the same: tasks are always
// scoped to their owner, and update and delete calls report the number of
// affected rows instead of failing when nothing matched.
package store
