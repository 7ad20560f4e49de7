//go:build db2

package db2

import (
	"context"
	"time"

	_ "github.com/ibmdb/go_ibm_db"

	dialect "db2schema/internal/db2"
	"db2schema/internal/storage/sqldb"
)

// Config holds DB2 repository configuration.
type Config struct {
	// DSN is a CLI keyword string, e.g.
	// "HOSTNAME=localhost;PORT=50000;DATABASE=testdb;UID=db2inst1;PWD=secret".
	DSN string

	// Schema, when set, becomes the connection's CURRENT SCHEMA.
	Schema string

	PingTimeout time.Duration
}

// Repository is a DB2-backed implementation of storage.Repository.
type Repository struct {
	*sqldb.DB
	cfg Config
}

// NewRepository connects to DB2 and returns a Repository plus a Close
// function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	dsn, err := withCurrentSchema(cfg.DSN, cfg.Schema)
	if err != nil {
		return nil, nil, err
	}
	db, err := sqldb.Open(ctx, sqldb.Options{
		Name:        "db2",
		Driver:      "go_ibm_db",
		DSN:         dsn,
		PingTimeout: cfg.PingTimeout,
		TablesQuery: tablesQuery,
		// The CLI driver rejects a trailing statement terminator.
		TrimTerminator: true,
	})
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() { db.Close() }
	return &Repository{DB: db, cfg: cfg}, closeFn, nil
}

// QuoteName implements ddl.Quoter with DB2's upper-case folding.
func (r *Repository) QuoteName(name string) string { return dialect.QuoteName(name) }
