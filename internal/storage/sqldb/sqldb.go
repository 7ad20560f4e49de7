// Package sqldb holds the database/sql plumbing shared by the backends that
// talk to their engine through a database/sql driver (db2, sqlite, mssql,
// mysql). It is built on sqlx for catalog queries.
package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"db2schema/internal/storage"
)

// DefaultPingTimeout bounds the connectivity check in Open.
const DefaultPingTimeout = 5 * time.Second

// Options configures a DB.
type Options struct {
	// Name prefixes every error ("db2", "sqlite", ...).
	Name string

	// Driver is the database/sql driver name and DSN the data source.
	Driver string
	DSN    string

	// PingTimeout bounds the initial ping. Zero means DefaultPingTimeout.
	PingTimeout time.Duration

	// TablesQuery lists the user tables of the current schema, one name per
	// row. TablesArgs are bound to its placeholders.
	TablesQuery string
	TablesArgs  []any

	// TrimTerminator strips a trailing ";" before execution, for drivers
	// that reject statement terminators.
	TrimTerminator bool
}

// DB wraps an sqlx handle with the operations storage.Repository needs.
type DB struct {
	db   *sqlx.DB
	opts Options
}

// Open connects and pings. The returned DB must be closed.
func Open(ctx context.Context, opts Options) (*DB, error) {
	if strings.TrimSpace(opts.DSN) == "" {
		return nil, fmt.Errorf("%s: DSN must not be empty", opts.Name)
	}
	db, err := sqlx.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s: open: %w", opts.Name, err)
	}

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: ping: %w", opts.Name, err)
	}
	return &DB{db: db, opts: opts}, nil
}

// Exec executes one statement on the pool.
func (d *DB) Exec(ctx context.Context, sql string) error {
	if d.opts.TrimTerminator {
		sql = TrimTerminator(sql)
	}
	if strings.TrimSpace(sql) == "" {
		return nil
	}
	if _, err := d.db.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("%s: exec: %w", d.opts.Name, err)
	}
	return nil
}

// TableNames runs the configured catalog query.
func (d *DB) TableNames(ctx context.Context) ([]string, error) {
	if d.opts.TablesQuery == "" {
		return nil, fmt.Errorf("%s: no catalog query configured", d.opts.Name)
	}
	var names []string
	if err := d.db.SelectContext(ctx, &names, d.opts.TablesQuery, d.opts.TablesArgs...); err != nil {
		return nil, fmt.Errorf("%s: list tables: %w", d.opts.Name, err)
	}
	return names, nil
}

// Cursor pins one pooled connection for the lifetime of the cursor.
func (d *DB) Cursor(ctx context.Context) (storage.Cursor, error) {
	conn, err := d.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: acquire connection: %w", d.opts.Name, err)
	}
	return &connCursor{conn: conn, opts: d.opts}, nil
}

// Close closes the pool.
func (d *DB) Close() { _ = d.db.Close() }

type connCursor struct {
	conn *sqlx.Conn
	opts Options
}

func (c *connCursor) Execute(ctx context.Context, sql string) error {
	if c.conn == nil {
		return fmt.Errorf("%s: %w", c.opts.Name, ErrCursorClosed)
	}
	if c.opts.TrimTerminator {
		sql = TrimTerminator(sql)
	}
	if _, err := c.conn.ExecContext(ctx, sql); err != nil {
		return fmt.Errorf("%s: execute: %w", c.opts.Name, err)
	}
	return nil
}

func (c *connCursor) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// ErrCursorClosed is returned by Execute after Close.
var ErrCursorClosed = errors.New("cursor is closed")

// TrimTerminator removes trailing whitespace and a single trailing ";".
func TrimTerminator(sql string) string {
	s := strings.TrimRight(sql, " \t\r\n")
	return strings.TrimRight(strings.TrimSuffix(s, ";"), " \t\r\n")
}
