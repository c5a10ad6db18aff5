package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SAUL-ALVES/useradmin/internal/db/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded goose migrations. Goose needs a
// database/sql handle, so a short-lived one is opened through the pgx
// stdlib driver and closed when done.
func RunMigrations(ctx context.Context, dbURL string) error {
	handle, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}

	defer handle.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, handle, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
