package internal

import (
	"database/sql"
	"fmt"

	"github.com/dukerupert/vanir/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies any pending schema migrations from the embedded
// migrations directory. Called once at startup before the pool is opened.
func RunMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.MigrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
