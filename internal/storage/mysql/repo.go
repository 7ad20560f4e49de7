// Package mysql implements a MySQL-backed storage.Repository using
// go-sql-driver/mysql. Identifiers are backtick-quoted and the catalog is read
// from information_schema for the connection's default database.
package mysql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"db2schema/internal/storage/sqldb"
)

const tablesQuery = `SELECT table_name FROM information_schema.tables
 WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
 ORDER BY table_name`

// Config holds MySQL repository configuration.
type Config struct {
	DSN         string
	PingTimeout time.Duration
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	*sqldb.DB
	cfg Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	dsn, err := normalizeDSN(cfg.DSN, cfg.PingTimeout)
	if err != nil {
		return nil, nil, err
	}
	db, err := sqldb.Open(ctx, sqldb.Options{
		Name:        "mysql",
		Driver:      "mysql",
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

// QuoteName implements ddl.Quoter.
func (r *Repository) QuoteName(name string) string { return myIdent(name) }

// normalizeDSN validates dsn and requires a default database, since the
// catalog query is scoped to DATABASE(). A dial timeout is filled in when the
// DSN has none.
func normalizeDSN(dsn string, timeout time.Duration) (string, error) {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("mysql dsn: %w", err)
	}
	if mc.DBName == "" {
		return "", fmt.Errorf("mysql dsn: no database selected")
	}
	if mc.Timeout == 0 {
		if timeout <= 0 {
			timeout = sqldb.DefaultPingTimeout
		}
		mc.Timeout = timeout
	}
	return mc.FormatDSN(), nil
}

// myIdent backtick-quotes an identifier, doubling embedded backticks.
func myIdent(id string) string { return "`" + strings.ReplaceAll(id, "`", "``") + "`" }
