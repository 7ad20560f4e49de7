// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql and the pure-Go modernc driver. It is the default backend for
// local runs and tests; DDL generated for DB2 is executed as-is, so models
// used against SQLite should avoid identity columns and deferred foreign keys.
package sqlite

import (
	"context"
	"strings"

	"db2schema/internal/storage/sqldb"

	_ "modernc.org/sqlite"
)

const tablesQuery = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	*sqldb.DB
	cfg Config
}

// NewRepository opens a SQLite database and returns a Repository plus a
// Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	dsn := cfg.DSN
	if cfg.ForeignKeys {
		dsn = withForeignKeys(dsn)
	}
	db, err := sqldb.Open(ctx, sqldb.Options{
		Name:        "sqlite",
		Driver:      "sqlite",
		DSN:         dsn,
		PingTimeout: cfg.PingTimeout,
		TablesQuery: tablesQuery,
	})
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() { db.Close() }
	return &Repository{DB: db, cfg: cfg}, closeFn, nil
}

// withForeignKeys asks the driver to enable foreign keys on every pooled
// connection; a one-off PRAGMA would only reach the connection it ran on.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// QuoteName double-quotes an identifier, keeping its case.
func (r *Repository) QuoteName(name string) string { return sqlIdent(name) }

func sqlIdent(name string) string {
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' &&
		!strings.Contains(strings.ReplaceAll(name[1:len(name)-1], `""`, ""), `"`) {
		return name
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
