// Package migrations embeds the goose schema migrations for each supported
// SQL dialect and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/dmitrijs2005/itemkeeper/internal/dbx"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// FS returns the migration files for d, rooted at the directory that holds
// the .sql files.
func FS(d dbx.Dialect) (fs.FS, goose.Dialect, error) {
	switch d {
	case dbx.DialectPostgres:
		sub, err := fs.Sub(postgresFS, "postgres")
		return sub, goose.DialectPostgres, err
	case dbx.DialectSQLite:
		sub, err := fs.Sub(sqliteFS, "sqlite")
		return sub, goose.DialectSQLite3, err
	default:
		return nil, "", fmt.Errorf("no migrations for dialect %q", d)
	}
}

// Up applies every pending migration for d.
func Up(ctx context.Context, db *sql.DB, d dbx.Dialect) error {
	fsys, dialect, err := FS(d)
	if err != nil {
		return err
	}

	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
