package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/todo/pkg/db"
)

const uniqueViolation = "23505"

// Postgres is a Store backed by a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool. Run db.Migrate with Migrations first.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

const userColumns = `id, email, password_hash, created_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func (p *Postgres) CreateUser(ctx context.Context, email string, passwordHash []byte) (User, error) {
	row := p.pool.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3) RETURNING `+userColumns,
		uuid.New(), email, passwordHash,
	)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("store: create user: %w", err)
	}
	return u, nil
}

func (p *Postgres) UserByID(ctx context.Context, id uuid.UUID) (User, error) {
	return scanUser(p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(p.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (p *Postgres) DeleteUser(ctx context.Context, id uuid.UUID) (int64, error) {
	var n int64
	err := db.WithTx(ctx, p.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		n = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("store: delete user: %w", err)
	}
	return n, nil
}

const taskColumns = `id, user_id, title, done, created_at, updated_at`

func scanTask(row pgx.Row) (Task, error) {
	var t Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Task{}, ErrNotFound
		}
		return Task{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func (p *Postgres) CreateTask(ctx context.Context, userID uuid.UUID, title string) (Task, error) {
	now := time.Now().UTC()
	row := p.pool.QueryRow(ctx,
		`INSERT INTO tasks (id, user_id, title, created_at, updated_at)
		 SELECT $1::uuid, $2::uuid, $3::text, $4::timestamptz, $4::timestamptz
		 WHERE EXISTS (SELECT 1 FROM users WHERE id = $2::uuid)
		 RETURNING `+taskColumns,
		uuid.New(), userID, title, now,
	)
	t, err := scanTask(row)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Task{}, fmt.Errorf("store: create task: %w", err)
	}
	return t, err
}

func (p *Postgres) TaskByID(ctx context.Context, userID, id uuid.UUID) (Task, error) {
	return scanTask(p.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`, id, userID))
}

func (p *Postgres) ListTasks(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1
		ORDER BY created_at DESC, id OFFSET $2`
	args := []any{userID, max(offset, 0)}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list tasks: %w", err)
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Task, error) {
		return scanTask(row)
	})
	if err != nil {
		return nil, fmt.Errorf("store: list tasks: %w", err)
	}
	return tasks, nil
}

func (p *Postgres) CountTasks(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM tasks WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count tasks: %w", err)
	}
	return n, nil
}

func (p *Postgres) UpdateTask(ctx context.Context, userID, id uuid.UUID, upd TaskUpdate) (int64, error) {
	if upd.Empty() {
		return 0, nil
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE tasks SET title = COALESCE($3, title), done = COALESCE($4, done), updated_at = now()
		 WHERE id = $1 AND user_id = $2`,
		id, userID, upd.Title, upd.Done,
	)
	if err != nil {
		return 0, fmt.Errorf("store: update task: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) DeleteTask(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	tag, err := p.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return 0, fmt.Errorf("store: delete task: %w", err)
	}
	return tag.RowsAffected(), nil
}
