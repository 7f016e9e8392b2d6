package db

import (
	"context"
	"embed"
	"fmt"

	"todo_backend/internal/logger"

	"github.com/jmoiron/sqlx"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Schema returns the bootstrap DDL for driver.
func Schema(driver string) (name, ddl string, err error) {
	name = "schema/sqlite.sql"
	if driver == DriverPostgres {
		name = "schema/postgres.sql"
	}
	b, err := schemaFS.ReadFile(name)
	if err != nil {
		return name, "", fmt.Errorf("read %s: %w", name, err)
	}
	return name, string(b), nil
}

// Migrate creates the categories and todos tables if they do not exist.
// Every statement is idempotent, so it runs on each startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	name, ddl, err := Schema(db.DriverName())
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}

	logger.Debug("schema applied", "file", name)
	return nil
}
