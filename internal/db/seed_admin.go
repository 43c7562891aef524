package db

import (
	"context"
	"errors"
	"time"

	"github.com/PedroSilva44/sistema-de-login/internal/config"
	"github.com/PedroSilva44/sistema-de-login/internal/domain/user"
	"github.com/PedroSilva44/sistema-de-login/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser provisions the default admin account if no admin exists
// yet. Check and insert run inside one transaction, so replicas booting at
// the same time cannot each seed an admin. Running it again is a no-op.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) (created bool, err error) {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})

	if err != nil {
		return false, err
	}

	defer func() { _ = tx.Rollback(ctx) }()

	var dummy string

	err = tx.QueryRow(ctx,
		`SELECT id FROM users WHERE role = $1 LIMIT 1 FOR UPDATE`,
		user.RoleAdmin,
	).Scan(&dummy)

	if err == nil {
		// an admin already exists, nothing to do
		return false, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return false, err
	}

	u := user.User{
		ID:           uuid.NewString(),
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (email) DO NOTHING`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.CreatedAt,
	)

	if err != nil {
		return false, err
	}

	err = tx.Commit(ctx)

	if err != nil {
		return false, err
	}

	return true, nil
}
