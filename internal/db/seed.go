package db

import (
	"context"
	"errors"

	"github.com/SAUL-ALVES/useradmin/internal/config"
	"github.com/SAUL-ALVES/useradmin/internal/domain/user"
	"github.com/SAUL-ALVES/useradmin/internal/security"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSeedUser inserts the configured first user if no row with that email
// exists yet. A no-op when the seed vars are unset.
func EnsureSeedUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedEmail == "" || cfg.SeedPassword == "" {
		return nil
	}

	email := user.NormalizeEmail(cfg.SeedEmail)

	// check if the user exists

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.SeedPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		`,
		cfg.SeedName, email, hash,
	)

	return err
}
