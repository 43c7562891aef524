package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the users table on first boot. The UNIQUE
// constraint on email is what the registration path relies on; the
// check-then-insert in handlers is a courtesy, not the guarantee.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id            UUID PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL CHECK (role IN ('user', 'admin')),
			created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)

	return err
}
