// Package testdb prepares a database for a test run: it drops the tables of
// the registered models and recreates them through schema sync.
package testdb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"db2schema/internal/config"
	"db2schema/internal/ddl"
	"db2schema/internal/introspect"
	"db2schema/internal/metrics"
	"db2schema/internal/model"
	"db2schema/internal/storage"
	"db2schema/internal/syncdb"
)

// SchemaSyncer applies the model schema to the database.
type SchemaSyncer interface {
	Sync(ctx context.Context, opts syncdb.Options) (syncdb.Result, error)
}

// TableSource lists the model tables that currently exist, in drop order.
type TableSource interface {
	Tables(ctx context.Context) ([]string, error)
}

// CursorOpener hands out execution sessions.
type CursorOpener interface {
	Cursor(ctx context.Context) (storage.Cursor, error)
}

// Creation runs test database setup and teardown against one connection.
type Creation struct {
	Cursors CursorOpener
	Tables  TableSource
	Quoter  ddl.Quoter
	Syncer  SchemaSyncer

	// Job labels recorded metrics.
	Job string
	// Logger receives progress lines; nil means log.Default().
	Logger *log.Logger
}

// New wires a Creation to repo: tables are introspected and dropped through
// it, and syncer recreates them.
func New(repo storage.Repository, reg *model.Registry, syncer SchemaSyncer) *Creation {
	return &Creation{
		Cursors: repo,
		Tables:  introspect.Existing{Lister: repo, Registry: reg},
		Quoter:  repo,
		Syncer:  syncer,
	}
}

// CreateTestDB resolves the test database name, marks settings as
// transaction-capable, drops the existing model tables and runs a
// non-interactive schema sync. It returns the resolved name.
func (c *Creation) CreateTestDB(ctx context.Context, settings *config.Database, verbosity int) (name string, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(c.Job, metrics.StepCreateTestDB, err, time.Since(start)) }()

	c.logger().Printf("testdb: Preparing Database...")
	name, err = settings.TestDatabaseName()
	if err != nil {
		return "", err
	}
	if c.Syncer == nil {
		return "", errors.New("testdb: schema syncer is required")
	}
	settings.SupportsTransactions = true

	if err := c.cleanUp(ctx); err != nil {
		return "", err
	}

	opts := syncdb.Options{
		Verbosity:   verbosity,
		Database:    settings.AliasOrDefault(),
		Interactive: false,
	}
	if _, err := c.Syncer.Sync(ctx, opts); err != nil {
		return "", fmt.Errorf("testdb: sync %s: %w", name, err)
	}
	if verbosity >= 1 {
		c.logger().Printf("testdb: ready name=%s alias=%s", name, opts.Database)
	}
	return name, nil
}

// DestroyTestDB resolves the test database name and returns it. Nothing is
// dropped; removing the database belongs to whatever provisioned it.
func (c *Creation) DestroyTestDB(_ context.Context, settings *config.Database, verbosity int) (name string, err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(c.Job, metrics.StepDestroyTestDB, err, time.Since(start)) }()

	c.logger().Printf("testdb: Destroying Database...")
	name, err = settings.TestDatabaseName()
	if err != nil {
		return "", err
	}
	if verbosity >= 1 {
		c.logger().Printf("testdb: left in place name=%s", name)
	}
	return name, nil
}

// CleanUp drops every existing model table. See cleanUp.
func (c *Creation) CleanUp(ctx context.Context) error { return c.cleanUp(ctx) }

// cleanUp issues one DROP TABLE per existing model table, in the order the
// TableSource returns them, and stops at the first failure. The cursor is
// closed on every path.
func (c *Creation) cleanUp(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { metrics.RecordStep(c.Job, metrics.StepCleanup, err, time.Since(start)) }()

	if c.Cursors == nil || c.Tables == nil || c.Quoter == nil {
		return errors.New("testdb: cursor opener, table source and quoter are required")
	}
	cur, err := c.Cursors.Cursor(ctx)
	if err != nil {
		return fmt.Errorf("testdb: open cursor: %w", err)
	}
	defer func() {
		if cerr := cur.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("testdb: close cursor: %w", cerr)
		}
	}()

	tables, err := c.Tables.Tables(ctx)
	if err != nil {
		return fmt.Errorf("testdb: list tables: %w", err)
	}
	for _, t := range tables {
		if err := cur.Execute(ctx, fmt.Sprintf("DROP TABLE %s;", c.Quoter.QuoteName(t))); err != nil {
			return fmt.Errorf("testdb: drop %s: %w", t, err)
		}
		metrics.RecordStatement(c.Job, metrics.KindDropTable)
	}
	return nil
}

func (c *Creation) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}
