// Package postgres implements a Postgres-backed storage.Repository using
// pgx v5. Cursors pin one pooled connection; the catalog is read from
// information_schema.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"db2schema/internal/storage"
)

const tablesQuery = `SELECT table_name FROM information_schema.tables
 WHERE table_schema = COALESCE(NULLIF($1, ''), current_schema())
   AND table_type = 'BASE TABLE'
 ORDER BY table_name`

// Config holds Postgres repository configuration.
type Config struct {
	DSN         string        // connection string for pgxpool
	Schema      string        // schema to introspect; empty means current_schema()
	MaxConns    int32         // pool size; zero keeps the pgxpool default
	PingTimeout time.Duration // bounds the connectivity check on open
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
}

// NewRepository constructs a Repository and returns a Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: parse dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}

	closeFn := func() { pool.Close() }
	return &Repository{pool: pool, cfg: cfg}, closeFn, nil
}

// QuoteName implements ddl.Quoter.
func (r *Repository) QuoteName(name string) string { return pgIdent(name) }

// Exec executes an arbitrary SQL statement (typically DDL) on the pool.
func (r *Repository) Exec(ctx context.Context, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := r.pool.Exec(ctx, sql); err != nil {
		return wrapPgErr("exec", err)
	}
	return nil
}

// TableNames lists the base tables of the configured schema.
func (r *Repository) TableNames(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, tablesQuery, r.cfg.Schema)
	if err != nil {
		return nil, wrapPgErr("list tables", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapPgErr("list tables", err)
	}
	return names, nil
}

// Cursor acquires a dedicated pooled connection.
func (r *Repository) Cursor(ctx context.Context) (storage.Cursor, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: acquire: %w", err)
	}
	return &cursor{conn: conn}, nil
}

type cursor struct {
	conn *pgxpool.Conn
}

func (c *cursor) Execute(ctx context.Context, sql string) error {
	if c.conn == nil {
		return errors.New("postgres: cursor is closed")
	}
	if _, err := c.conn.Exec(ctx, sql); err != nil {
		return wrapPgErr("execute", err)
	}
	return nil
}

func (c *cursor) Close() error {
	if c.conn != nil {
		c.conn.Release()
		c.conn = nil
	}
	return nil
}

// wrapPgErr surfaces the server's SQLSTATE while keeping err in the chain.
func wrapPgErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("postgres: %s: %s (%s): %w", op, pgErr.Message, pgErr.SQLState(), err)
	}
	return fmt.Errorf("postgres: %s: %w", op, err)
}

// pgIdent safely quotes a single identifier segment for Postgres.
func pgIdent(id string) string { return `"` + strings.ReplaceAll(id, `"`, `""`) + `"` }
