// Package mssql implements a Microsoft SQL Server storage.Repository using
// go-mssqldb. Identifiers are bracket-quoted and the catalog is read from
// INFORMATION_SCHEMA.
package mssql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/microsoft/go-mssqldb/msdsn"

	"db2schema/internal/storage/sqldb"
)

const tablesQuery = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
 WHERE TABLE_TYPE = 'BASE TABLE'
   AND TABLE_SCHEMA = COALESCE(NULLIF(@p1, ''), SCHEMA_NAME())
 ORDER BY TABLE_NAME`

// Config holds MSSQL repository configuration.
type Config struct {
	DSN         string
	Schema      string // schema to introspect; empty means the login's default schema
	PingTimeout time.Duration
}

// Repository is an MSSQL-backed implementation of storage.Repository.
type Repository struct {
	*sqldb.DB
	cfg Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	// Validate DSN early to fail fast on obvious mistakes.
	if _, err := msdsn.Parse(cfg.DSN); err != nil {
		return nil, nil, fmt.Errorf("mssql dsn: %w", err)
	}
	db, err := sqldb.Open(ctx, sqldb.Options{
		Name:        "mssql",
		Driver:      "sqlserver",
		DSN:         cfg.DSN,
		PingTimeout: cfg.PingTimeout,
		TablesQuery: tablesQuery,
		TablesArgs:  []any{cfg.Schema},
	})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { db.Close() }
	return &Repository{DB: db, cfg: cfg}, closeFn, nil
}

// QuoteName implements ddl.Quoter.
func (r *Repository) QuoteName(name string) string { return msIdent(name) }

// ErrorNumber returns the SQL Server error number carried by err, if any.
func ErrorNumber(err error) (int32, bool) {
	var msErr mssql.Error
	if errors.As(err, &msErr) {
		return msErr.Number, true
	}
	return 0, false
}

// msIdent brackets a single identifier, escaping closing brackets.
func msIdent(id string) string { return `[` + strings.ReplaceAll(id, `]`, `]]`) + `]` }
