package dbx

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL backend a DSN points at.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// DialectFromDSN picks the backend from the DSN scheme. Anything that is not
// a postgres URL is treated as a SQLite path or file: URI.
func DialectFromDSN(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// OpenPostgres opens a pgx-backed pool and checks connectivity lazily.
func OpenPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// sqlitePragmas are applied to every pooled connection through the DSN.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
}

// OpenSQLite opens a modernc SQLite database at path (a file name or a
// file: URI) with foreign keys, WAL and a busy timeout enabled.
func OpenSQLite(path string) (*sql.DB, error) {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	dsn += sep + strings.Join(sqlitePragmas, "&")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// Open opens dsn with the driver matching its dialect.
func Open(dsn string) (*sql.DB, Dialect, error) {
	d := DialectFromDSN(dsn)
	var (
		db  *sql.DB
		err error
	)
	switch d {
	case DialectPostgres:
		db, err = OpenPostgres(dsn)
	default:
		db, err = OpenSQLite(dsn)
	}
	if err != nil {
		return nil, "", err
	}
	return db, d, nil
}
